package models

import "time"

// Schedule is one weekly meeting of a course.
type Schedule struct {
	Day       string `json:"day" validate:"required"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
}

// Course is the stored course record. InstructorName is a cache of the
// instructor resolved from Instructor, not authoritative.
type Course struct {
	ID             string     `json:"_id"`
	CourseCode     string     `json:"courseCode"`
	CourseName     string     `json:"courseName"`
	Instructor     string     `json:"instructor"`
	InstructorName string     `json:"instructorName,omitempty"`
	Room           string     `json:"room,omitempty"`
	Program        string     `json:"program,omitempty"`
	YearSection    string     `json:"yearSection,omitempty"`
	Schedules      []Schedule `json:"schedules"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// CourseInput is the canonical write body for course create and update.
// Instructor carries the instructor idNumber only.
type CourseInput struct {
	CourseCode  string     `json:"courseCode" validate:"required"`
	CourseName  string     `json:"courseName" validate:"required"`
	Instructor  string     `json:"instructor" validate:"required"`
	Room        string     `json:"room"`
	Program     string     `json:"program"`
	YearSection string     `json:"yearSection"`
	Schedules   []Schedule `json:"schedules" validate:"dive"`
}

// UpdateInstructorIDsRequest rewrites courses that still reference an
// instructor by name so they reference the idNumber instead.
type UpdateInstructorIDsRequest struct {
	InstructorName string `json:"instructorName" validate:"required"`
	InstructorID   string `json:"instructorId" validate:"required"`
}

// UpdateInstructorIDsResponse reports how many courses were rewritten.
type UpdateInstructorIDsResponse struct {
	Success  bool  `json:"success"`
	Modified int64 `json:"modified"`
}
