package main

import (
	"github.com/spf13/cobra"

	"student-portal/config"
)

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "portalctl",
		Short: "Inspect the course catalog and preview timetables",
		Long: `portalctl applies the student portal's enrollment cap and timetable
placement to a list of courses, using the same configuration as the server.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default ./config/config.yaml)")

	load := func() (*config.PortalConfig, error) {
		return config.LoadPortal(configPath)
	}
	root.AddCommand(newCatalogCmd(load), newTimetableCmd(load))
	return root
}
