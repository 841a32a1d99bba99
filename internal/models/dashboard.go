package models

import "time"

// Statistics are the headline counts on the admin dashboard.
type Statistics struct {
	Students    int `json:"students"`
	Instructors int `json:"instructors"`
	Courses     int `json:"courses"`
}

// TrendPoint is one day of student registrations.
type TrendPoint struct {
	Label string    `json:"label"`
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

// DashboardSummary is the payload of GET /api/dashboard.
type DashboardSummary struct {
	Statistics  Statistics   `json:"statistics"`
	Trend       []TrendPoint `json:"trend"`
	GeneratedAt time.Time    `json:"generatedAt"`
}
