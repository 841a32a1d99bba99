package course

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/automated-attendance/internal/models"
)

var (
	// ErrInvalidTimes aborts a save when any schedule time is not 12-hour form.
	ErrInvalidTimes = errors.New("Please correct time formats in schedules (HH:MM AM/PM)")
	// ErrRequiredFields aborts a save when instructor, course code or course name is missing.
	ErrRequiredFields = errors.New("Please fill in instructor, course code and course name")
	// ErrInvalidDay aborts a save when a schedule day is not one of the seven weekdays.
	ErrInvalidDay = errors.New("Please choose a day of the week for every schedule")
)

var validate = validator.New()

// Schedule is a schedule entry as edited in the form.
type Schedule struct {
	Day       Weekday `json:"day"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
}

// DefaultSchedule is the entry inserted when a schedule is added.
func DefaultSchedule() Schedule {
	return Schedule{Day: Monday, StartTime: "8:00 AM", EndTime: "9:30 AM"}
}

// Payload is the canonical body sent on course create and update.
type Payload = models.CourseInput

// Form is the editable, denormalised shape of a course.
type Form struct {
	ID          string        `json:"_id,omitempty"`
	Instructor  InstructorRef `json:"instructor"`
	CourseCode  string        `json:"courseCode"`
	CourseName  string        `json:"courseName"`
	Room        string        `json:"room"`
	Program     string        `json:"program"`
	YearSection string        `json:"yearSection"`
	Schedules   []Schedule    `json:"schedules"`
}

// NewForm returns a blank form holding one default schedule.
func NewForm() Form {
	return Form{Schedules: []Schedule{DefaultSchedule()}}
}

// Editing reports whether the form targets an existing course.
func (f *Form) Editing() bool {
	return f.ID != ""
}

// AddSchedule appends a default schedule entry.
func (f *Form) AddSchedule() {
	f.Schedules = append(f.Schedules, DefaultSchedule())
}

// RemoveSchedule drops the entry at index i. Out-of-range indexes are ignored.
func (f *Form) RemoveSchedule(i int) {
	if i < 0 || i >= len(f.Schedules) {
		return
	}
	f.Schedules = append(f.Schedules[:i:i], f.Schedules[i+1:]...)
}

// FormFromCourse loads a stored course into the editor. 24-hour times are
// converted for display. Values that cannot be converted are kept and
// reported as warnings.
func FormFromCourse(c models.Course) (Form, []error) {
	f := Form{
		ID:          c.ID,
		CourseCode:  c.CourseCode,
		CourseName:  c.CourseName,
		Room:        c.Room,
		Program:     c.Program,
		YearSection: c.YearSection,
	}
	if c.InstructorName != "" && c.InstructorName != c.Instructor {
		f.Instructor = SelectedInstructor(c.InstructorName, c.Instructor)
	} else {
		f.Instructor = RawInstructor(c.Instructor)
	}

	if len(c.Schedules) == 0 {
		f.Schedules = []Schedule{DefaultSchedule()}
		return f, nil
	}

	var warnings []error
	f.Schedules = make([]Schedule, 0, len(c.Schedules))
	for i, s := range c.Schedules {
		day, err := ParseWeekday(s.Day)
		if err != nil {
			day = Weekday(s.Day)
			warnings = append(warnings, fmt.Errorf("schedule %d: %w", i+1, err))
		}
		start, err := To12Hour(s.StartTime)
		if err != nil {
			warnings = append(warnings, fmt.Errorf("schedule %d start: %w", i+1, err))
		}
		end, err := To12Hour(s.EndTime)
		if err != nil {
			warnings = append(warnings, fmt.Errorf("schedule %d end: %w", i+1, err))
		}
		f.Schedules = append(f.Schedules, Schedule{Day: day, StartTime: start, EndTime: end})
	}
	return f, warnings
}

// Payload builds the write body. It fails when a required field is missing
// or blank, or when any schedule time is invalid; nothing partial is returned.
func (f Form) Payload() (*Payload, error) {
	id, _ := f.Instructor.Resolve()
	p := &Payload{
		CourseCode:  f.CourseCode,
		CourseName:  f.CourseName,
		Instructor:  id,
		Room:        f.Room,
		Program:     f.Program,
		YearSection: f.YearSection,
		Schedules:   make([]models.Schedule, 0, len(f.Schedules)),
	}

	required := struct {
		Instructor string `validate:"required"`
		CourseCode string `validate:"required"`
		CourseName string `validate:"required"`
	}{strings.TrimSpace(p.Instructor), strings.TrimSpace(p.CourseCode), strings.TrimSpace(p.CourseName)}
	if err := validate.Struct(required); err != nil {
		return nil, ErrRequiredFields
	}

	for _, s := range f.Schedules {
		if !ValidTime(s.StartTime) || !ValidTime(s.EndTime) {
			return nil, ErrInvalidTimes
		}
		if !s.Day.Valid() {
			return nil, ErrInvalidDay
		}
		p.Schedules = append(p.Schedules, models.Schedule{
			Day:       string(s.Day),
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
		})
	}
	return p, nil
}
