package cmd

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"guems-backend/lib/scrapers/icloudems"
)

func init() {
	rootCmd.AddCommand(parseCmd)
}

func formatClock(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("15:04")
}

var parseCmd = &cobra.Command{
	Use:   "parse <file.html>",
	Short: "Parses a saved timetable page and prints both schedules.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		source, err := os.ReadFile(args[0])
		if err != nil {
			log.Fatal(err)
		}
		page, err := icloudems.ParseTimetablePage(cmd.Context(), string(source))
		if err != nil {
			log.Fatal(err)
		}

		fmt.Printf("Class: %s\n\n", page.Class)

		week := table.NewWriter()
		week.SetOutputMirror(os.Stdout)
		week.SetTitle("Weekly schedule")
		week.AppendHeader(table.Row{"Day", "Date", "Start", "End", "Faculty", "Course", "Type", "Code", "Room"})
		for _, day := range icloudems.Weekdays {
			for _, entry := range page.Week[day] {
				week.AppendRow(table.Row{
					day,
					entry.Date.Format("2006-01-02"),
					formatClock(entry.StartTime),
					formatClock(entry.EndTime),
					entry.FacultyName,
					entry.Slot.CourseName,
					entry.Slot.CourseType,
					entry.Slot.CourseCode,
					entry.Slot.Room,
				})
			}
		}
		week.Render()

		replacements := table.NewWriter()
		replacements.SetOutputMirror(os.Stdout)
		replacements.SetTitle("Replacements")
		replacements.AppendHeader(table.Row{"Day", "Date", "Start", "End", "Faculty", "Alternate", "Course"})
		for _, day := range icloudems.Weekdays {
			for _, entry := range page.Replacements[day] {
				replacements.AppendRow(table.Row{
					day,
					entry.Date.Format("2006-01-02"),
					formatClock(entry.StartTime),
					formatClock(entry.EndTime),
					entry.FacultyName,
					entry.AlternateFacultyName,
					entry.Slot.CourseName,
				})
			}
		}
		replacements.Render()
	},
}
