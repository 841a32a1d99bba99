package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/automated-attendance/internal/course"
	"github.com/noah-isme/automated-attendance/internal/dashboard"
	"github.com/noah-isme/automated-attendance/pkg/export"
)

// scheduleFlags collects repeated -schedule "Monday 8:00 AM-9:30 AM" values.
type scheduleFlags []course.Schedule

func (s *scheduleFlags) String() string {
	parts := make([]string, 0, len(*s))
	for _, e := range *s {
		parts = append(parts, fmt.Sprintf("%s %s-%s", e.Day, e.StartTime, e.EndTime))
	}
	return strings.Join(parts, ", ")
}

func (s *scheduleFlags) Set(raw string) error {
	entry, err := parseSchedule(raw)
	if err != nil {
		return err
	}
	*s = append(*s, entry)
	return nil
}

func parseSchedule(raw string) (course.Schedule, error) {
	day, span, ok := strings.Cut(strings.TrimSpace(raw), " ")
	if !ok {
		return course.Schedule{}, fmt.Errorf("schedule %q: want \"Day H:MM AM-H:MM PM\"", raw)
	}
	start, end, ok := strings.Cut(span, "-")
	if !ok {
		return course.Schedule{}, fmt.Errorf("schedule %q: missing end time", raw)
	}
	weekday, err := course.ParseWeekday(day)
	if err != nil {
		return course.Schedule{}, err
	}
	return course.Schedule{Day: weekday, StartTime: strings.TrimSpace(start), EndTime: strings.TrimSpace(end)}, nil
}

func (cli *commandLine) courses(ctx context.Context, args []string) error {
	if len(args) == 0 {
		cli.printUsage()
		return errHelp
	}
	if err := cli.requireAdmin(); err != nil {
		return err
	}

	switch args[0] {
	case "list":
		courses, err := cli.editor.Refresh(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "_ID\tCODE\tNAME\tINSTRUCTOR\tSCHEDULES")
		for _, c := range courses {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", c.ID, c.CourseCode, c.CourseName, c.Instructor, len(c.Schedules))
		}
		return w.Flush()

	case "save":
		return cli.saveCourse(ctx, args[1:])

	case "delete":
		fs := cli.flagSet("courses delete")
		id := fs.String("id", "", "Course _id.")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *id == "" {
			fs.Usage()
			return errHelp
		}
		if err := cli.editor.Delete(ctx, *id); err != nil {
			return err
		}
		fmt.Fprintln(cli.out, "Course deleted")
		return nil

	case "sync-ids":
		modified, err := cli.editor.SyncInstructorIDs(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "%d course(s) updated\n", modified)
		return nil

	case "export":
		fs := cli.flagSet("courses export")
		format := fs.String("format", "csv", "csv, pdf or xlsx.")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		courses, err := cli.editor.Refresh(ctx)
		if err != nil {
			return err
		}
		return cli.export(*format, "courses", "Courses", dashboard.CoursesDataset(courses))

	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) saveCourse(ctx context.Context, args []string) error {
	fs := cli.flagSet("courses save")
	id := fs.String("id", "", "Course _id to edit. Omit to create.")
	code := fs.String("code", "", "Course code.")
	name := fs.String("name", "", "Course name.")
	instructor := fs.String("instructor", "", "Instructor ID number.")
	room := fs.String("room", "", "Room.")
	program := fs.String("program", "", "Program.")
	section := fs.String("section", "", "Year and section.")
	var schedules scheduleFlags
	fs.Var(&schedules, "schedule", "Schedule as \"Day H:MM AM-H:MM PM\". Repeatable.")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *id == "" {
		cli.editor.New()
	} else {
		courses, err := cli.editor.Refresh(ctx)
		if err != nil {
			return err
		}
		found := false
		for _, c := range courses {
			if c.ID == *id {
				for _, w := range cli.editor.Open(c) {
					cli.logger.Warn("stored course needs attention", zap.String("course_id", c.ID), zap.Error(w))
				}
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("no course with _id %q", *id)
		}
	}

	form := cli.editor.Form()
	setIfGiven(&form.CourseCode, *code)
	setIfGiven(&form.CourseName, *name)
	setIfGiven(&form.Room, *room)
	setIfGiven(&form.Program, *program)
	setIfGiven(&form.YearSection, *section)
	if *instructor != "" {
		form.Instructor = course.RawInstructor(*instructor)
	}
	if len(schedules) > 0 {
		form.Schedules = schedules
	}

	saved, err := cli.editor.Save(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Course %s saved (%s)\n", saved.CourseCode, saved.ID)
	return nil
}

func setIfGiven(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func (cli *commandLine) export(rawFormat, base, title string, data export.Dataset) error {
	format, err := export.ParseFormat(rawFormat)
	if err != nil {
		return err
	}
	renderer, err := export.RendererFor(format)
	if err != nil {
		return err
	}
	content, err := renderer.Render(data, title)
	if err != nil {
		return err
	}
	path, err := cli.exports.Save(format.Filename(base+"-"+time.Now().Format("20060102-150405")), content)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Exported to %s\n", path)
	return nil
}
