package dashboard

import (
	"time"

	"github.com/noah-isme/automated-attendance/internal/models"
)

// TrendDays is the number of daily buckets in the registration trend.
const TrendDays = 7

// Summarize counts the three lists and builds the trend from the students.
func Summarize(students, instructors []models.Account, courses []models.Course, now time.Time) models.DashboardSummary {
	return models.DashboardSummary{
		Statistics: models.Statistics{
			Students:    len(students),
			Instructors: len(instructors),
			Courses:     len(courses),
		},
		Trend:       Trend(students, now),
		GeneratedAt: now,
	}
}

// Trend buckets student createdAt values into the TrendDays days ending
// today, oldest first. Days start at local midnight in now's location.
func Trend(students []models.Account, now time.Time) []models.TrendPoint {
	loc := now.Location()
	y, m, d := now.Date()

	points := make([]models.TrendPoint, TrendDays)
	for i := range points {
		start := time.Date(y, m, d-(TrendDays-1-i), 0, 0, 0, 0, loc)
		points[i] = models.TrendPoint{Label: start.Format("01/02"), Date: start}
	}
	end := time.Date(y, m, d+1, 0, 0, 0, 0, loc)

	for _, s := range students {
		if s.CreatedAt.IsZero() {
			continue
		}
		at := s.CreatedAt.In(loc)
		if at.Before(points[0].Date) || !at.Before(end) {
			continue
		}
		for i := TrendDays - 1; i >= 0; i-- {
			if !at.Before(points[i].Date) {
				points[i].Count++
				break
			}
		}
	}
	return points
}
