package models

import (
	"errors"
	"fmt"
)

// Default simulation parameters
const (
	DefaultIdealLength       = 50.0
	DefaultCoolingFactor     = 0.2
	DefaultNodeMass          = 5.0
	DefaultCompliance        = 0.001
	DefaultNodeTotal         = 50
	DefaultInteractionRadius = 49.0

	DefaultPlacementRadius = 500.0
	DefaultNodeSize        = 5.0
	DefaultTimeStep        = 1.0 / 60.0
	DefaultSubsteps        = 6
)

// DefaultParams returns the parameters used when nothing is configured
func DefaultParams() Params {
	return Params{
		IdealLength:       DefaultIdealLength,
		CoolingFactor:     DefaultCoolingFactor,
		NodeMass:          DefaultNodeMass,
		Compliance:        DefaultCompliance,
		NodeTotal:         DefaultNodeTotal,
		InteractionRadius: DefaultInteractionRadius,
		PlacementRadius:   DefaultPlacementRadius,
		NodeSize:          DefaultNodeSize,
		TimeStep:          DefaultTimeStep,
		Substeps:          DefaultSubsteps,
	}
}

// Damping returns the linear damping coefficient derived from the cooling factor
func (p Params) Damping() float64 {
	return 1 / p.CoolingFactor
}

// Validate checks that every parameter is usable
func (p Params) Validate() error {
	var errs []error
	positive := []struct {
		name  string
		value float64
	}{
		{"ideal_length", p.IdealLength},
		{"cooling_factor", p.CoolingFactor},
		{"node_mass", p.NodeMass},
		{"interaction_radius", p.InteractionRadius},
		{"placement_radius", p.PlacementRadius},
		{"node_size", p.NodeSize},
		{"time_step", p.TimeStep},
	}
	for _, f := range positive {
		if !(f.value > 0) {
			errs = append(errs, fmt.Errorf("%s must be positive, got %g", f.name, f.value))
		}
	}
	if p.Compliance < 0 {
		errs = append(errs, fmt.Errorf("compliance must not be negative, got %g", p.Compliance))
	}
	if p.NodeTotal < 0 {
		errs = append(errs, fmt.Errorf("node_total must not be negative, got %d", p.NodeTotal))
	}
	if p.Substeps < 1 {
		errs = append(errs, fmt.Errorf("substeps must be at least 1, got %d", p.Substeps))
	}
	return errors.Join(errs...)
}
