package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"student-portal/config"
	"student-portal/internal/timetable"
)

func newCatalogCmd(load func() (*config.PortalConfig, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the courses offered for enrollment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("Course catalog (cap %d credit hours)", cfg.CreditCap)))
			for _, c := range timetable.Catalog {
				fmt.Fprintf(out, "• %s %s %s\n",
					c.Name,
					creditStyle.Render(fmt.Sprintf("[%d CH]", c.CreditHours)),
					mutedStyle.Render(c.Instructor))
			}
			return nil
		},
	}
}

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true).Padding(1, 0)
	dayStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	creditStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	nowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)
