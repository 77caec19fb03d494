package cmd

import (
	"github.com/TFMV/tetherlayout/viewer"
	"github.com/spf13/cobra"
)

func viewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Open an interactive window; drag nodes with the mouse, D toggles debug",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				bad.Printf("  %v\n", err)
				return err
			}
			driver, err := buildDriver(cfg.Simulation)
			if err != nil {
				bad.Printf("  %v\n", err)
				return err
			}
			return viewer.Run(viewer.New(driver), cfg.Viewer.Width, cfg.Viewer.Height, cfg.Viewer.Title)
		},
	}
}
