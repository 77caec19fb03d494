package cmd

import (
	"fmt"

	"github.com/fatih/color"
)

var (
	brand  = color.New(color.FgHiGreen, color.Bold)
	subtle = color.New(color.FgHiBlack)
	warn   = color.New(color.FgYellow)
	bad    = color.New(color.FgRed)
)

// row prints an aligned "label  value" summary line
func row(label string, format string, args ...any) {
	fmt.Printf("  %s  %s\n", brand.Sprintf("%-16s", label), fmt.Sprintf(format, args...))
}
