package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"student-portal/config"
	"student-portal/internal/timetable"
)

var errUnknownCourse = errors.New("unknown course")

// now is replaced in tests.
var now = time.Now

// classOut is the yaml shape of one placed class.
type classOut struct {
	Name        string `yaml:"name"`
	Instructor  string `yaml:"instructor"`
	CreditHours int    `yaml:"credit_hours"`
	Room        string `yaml:"room"`
	Day         string `yaml:"day"`
	Time        string `yaml:"time"`
	Current     bool   `yaml:"current,omitempty"`
}

type timetableOut struct {
	TotalCredits int        `yaml:"total_credits"`
	CreditCap    int        `yaml:"credit_cap"`
	Overlaps     int        `yaml:"overlaps"`
	Date         string     `yaml:"date,omitempty"`
	Classes      []classOut `yaml:"classes"`
}

func newTimetableCmd(load func() (*config.PortalConfig, error)) *cobra.Command {
	var (
		courses string
		date    string
		output  string
	)

	cmd := &cobra.Command{
		Use:   "timetable",
		Short: "Preview the weekly timetable for a list of courses",
		Long: `Enroll the given courses in order, stopping at the first one that would
exceed the credit cap, and print the generated timetable. With --date only
the classes of that day are shown and the one in progress is marked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "text" && output != "yaml" {
				return fmt.Errorf("unsupported output %q (want text or yaml)", output)
			}

			cfg, err := load()
			if err != nil {
				return err
			}
			grid, err := cfg.Grid()
			if err != nil {
				return err
			}
			loc, err := cfg.Location()
			if err != nil {
				return err
			}

			set, err := enroll(timetable.NewSelector(cfg.CreditCap), splitCourses(courses))
			if err != nil {
				return err
			}
			schedule := timetable.NewGenerator(grid).Generate(set)

			result := timetableOut{
				TotalCredits: timetable.TotalCredits(set),
				CreditCap:    cfg.CreditCap,
				Overlaps:     timetable.Overlaps(schedule),
				Classes:      []classOut{},
			}

			classes := schedule
			highlighted := map[string]bool{}
			if date != "" {
				day, err := time.ParseInLocation("2006-01-02", date, loc)
				if err != nil {
					return fmt.Errorf("invalid --date %q: %w", date, err)
				}
				view := timetable.Project(schedule, day, now().In(loc))
				classes, highlighted = view.Visible, view.Highlighted
				result.Date = date
			}
			for _, c := range classes {
				result.Classes = append(result.Classes, classOut{
					Name:        c.Course.Name,
					Instructor:  c.Course.Instructor,
					CreditHours: c.Course.CreditHours,
					Room:        c.Room,
					Day:         c.DayName(),
					Time:        c.Slot.Display(),
					Current:     highlighted[c.ID],
				})
			}

			out := cmd.OutOrStdout()
			if output == "yaml" {
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(result); err != nil {
					return err
				}
				return enc.Close()
			}
			printTimetable(out, grid, result)
			return nil
		},
	}

	cmd.Flags().StringVar(&courses, "courses", "", `Comma separated course names in enrollment order, e.g. "Database Systems,Linear Algebra"`)
	cmd.Flags().StringVar(&date, "date", "", "Only show classes on this date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format: text or yaml")
	_ = cmd.MarkFlagRequired("courses")
	return cmd
}

func splitCourses(s string) []string {
	var names []string
	for _, n := range strings.Split(s, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}

// enroll toggles names into an empty set. A name listed twice is toggled
// back out, as it would be in the portal.
func enroll(sel *timetable.Selector, names []string) ([]timetable.Course, error) {
	set := []timetable.Course{}
	for _, name := range names {
		course, ok := timetable.LookupCourse(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", errUnknownCourse, name)
		}
		next, err := sel.Toggle(course, set)
		if err != nil {
			return nil, fmt.Errorf("enroll %q: %w", name, err)
		}
		set = next
	}
	return set, nil
}

func printTimetable(out io.Writer, grid timetable.Grid, t timetableOut) {
	title := fmt.Sprintf("Timetable (%d/%d credit hours)", t.TotalCredits, t.CreditCap)
	if t.Date != "" {
		title = fmt.Sprintf("Classes on %s", t.Date)
	}
	fmt.Fprintln(out, titleStyle.Render(title))

	if t.Overlaps > 0 {
		fmt.Fprintln(out, warnStyle.Render(fmt.Sprintf("%d cells hold more than one class", t.Overlaps)))
	}
	if len(t.Classes) == 0 {
		fmt.Fprintln(out, mutedStyle.Render("No classes for this day."))
		return
	}

	byDay := make(map[string][]classOut)
	for _, c := range t.Classes {
		byDay[c.Day] = append(byDay[c.Day], c)
	}
	for _, d := range grid.Days {
		classes := byDay[timetable.DayName(d)]
		if len(classes) == 0 {
			continue
		}
		fmt.Fprintln(out, dayStyle.Render(d.String()))
		for _, c := range classes {
			line := fmt.Sprintf("  %-20s %s %s", c.Time, c.Name, mutedStyle.Render(fmt.Sprintf("(%s, %s)", c.Instructor, c.Room)))
			if c.Current {
				line = nowStyle.Render("▶ ") + strings.TrimPrefix(line, "  ")
			}
			fmt.Fprintln(out, line)
		}
	}
}
