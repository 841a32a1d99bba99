package dashboard

import (
	"strconv"
	"strings"

	"github.com/noah-isme/automated-attendance/internal/models"
	"github.com/noah-isme/automated-attendance/pkg/export"
)

// SummaryDataset lays the summary out as metric rows followed by trend rows.
func SummaryDataset(s models.DashboardSummary) export.Dataset {
	headers := []string{"Metric", "Value"}
	rows := []map[string]string{
		{"Metric": "Total Students", "Value": strconv.Itoa(s.Statistics.Students)},
		{"Metric": "Total Instructors", "Value": strconv.Itoa(s.Statistics.Instructors)},
		{"Metric": "Total Courses", "Value": strconv.Itoa(s.Statistics.Courses)},
	}
	for _, p := range s.Trend {
		rows = append(rows, map[string]string{"Metric": "New students " + p.Label, "Value": strconv.Itoa(p.Count)})
	}
	return export.Dataset{Headers: headers, Rows: rows}
}

// CoursesDataset flattens courses, one row per course with schedules joined.
func CoursesDataset(courses []models.Course) export.Dataset {
	headers := []string{"Course Code", "Course Name", "Instructor", "Room", "Program", "Year/Section", "Schedules"}
	rows := make([]map[string]string, 0, len(courses))
	for _, c := range courses {
		instructor := c.Instructor
		if c.InstructorName != "" && c.InstructorName != c.Instructor {
			instructor = c.InstructorName + " (" + c.Instructor + ")"
		}
		slots := make([]string, 0, len(c.Schedules))
		for _, s := range c.Schedules {
			slots = append(slots, s.Day+" "+s.StartTime+"-"+s.EndTime)
		}
		rows = append(rows, map[string]string{
			"Course Code":  c.CourseCode,
			"Course Name":  c.CourseName,
			"Instructor":   instructor,
			"Room":         c.Room,
			"Program":      c.Program,
			"Year/Section": c.YearSection,
			"Schedules":    strings.Join(slots, "; "),
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}
}
