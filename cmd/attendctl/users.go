package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/noah-isme/automated-attendance/internal/models"
	"github.com/noah-isme/automated-attendance/internal/roster"
)

func (cli *commandLine) users(ctx context.Context, args []string) error {
	if len(args) == 0 {
		cli.printUsage()
		return errHelp
	}
	if err := cli.requireAdmin(); err != nil {
		return err
	}

	switch args[0] {
	case "list":
		fs := cli.flagSet("users list")
		query := fs.String("q", "", "Filter by ID number, name or type.")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		entries, err := cli.roster.Load(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "_ID\tID NUMBER\tNAME\tTYPE")
		for _, e := range roster.Filter(entries, *query) {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.ID, e.IDNumber, e.Name, e.TypeLabel())
		}
		return w.Flush()

	case "edit":
		fs := cli.flagSet("users edit")
		id := fs.String("id", "", "Account _id.")
		idNumber := fs.String("idnumber", "", "New ID number.")
		name := fs.String("name", "", "New full name.")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *id == "" || *idNumber == "" || *name == "" {
			fs.Usage()
			return errHelp
		}
		entry, err := cli.findEntry(ctx, *id)
		if err != nil {
			return err
		}
		if err := cli.roster.Update(ctx, entry, *idNumber, *name); err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "%s updated\n", entry.TypeLabel())
		return nil

	case "delete":
		fs := cli.flagSet("users delete")
		id := fs.String("id", "", "Account _id.")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *id == "" {
			fs.Usage()
			return errHelp
		}
		entry, err := cli.findEntry(ctx, *id)
		if err != nil {
			return err
		}
		if err := cli.roster.Delete(ctx, entry); err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "%s deleted\n", entry.TypeLabel())
		return nil

	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) findEntry(ctx context.Context, id string) (roster.Entry, error) {
	if _, err := cli.roster.Load(ctx); err != nil {
		return roster.Entry{}, err
	}
	entry, ok := cli.roster.Find(id)
	if !ok {
		return roster.Entry{}, fmt.Errorf("no account with _id %q", id)
	}
	return entry, nil
}

func (cli *commandLine) signup(ctx context.Context, args []string) error {
	fs := cli.flagSet("signup")
	kind := fs.String("type", "", "student or instructor.")
	idNumber := fs.String("idnumber", "", "ID number.")
	name := fs.String("name", "", "Full name.")
	courseName := fs.String("course", "", "Student course, defaults to "+roster.DefaultCourse+".")
	year := fs.String("year", "", "Student year, defaults to "+roster.DefaultYear+".")
	section := fs.String("section", "", "Student section, defaults to "+roster.DefaultSection+".")
	department := fs.String("department", "", "Instructor department, defaults to "+roster.DefaultDepartment+".")
	if err := fs.Parse(args); err != nil {
		return err
	}
	role, ok := models.ParseRole(*kind)
	if !ok || role == models.RoleAdmin {
		fs.Usage()
		return errHelp
	}
	if err := cli.requireAdmin(); err != nil {
		return err
	}
	pwd, err := cli.promptPassword()
	if err != nil {
		return err
	}

	account, err := cli.roster.Signup(ctx, roster.SignupRequest{
		Role:       role,
		IDNumber:   *idNumber,
		FullName:   *name,
		Password:   pwd,
		Course:     *courseName,
		Year:       *year,
		Section:    *section,
		Department: *department,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%s %s created (%s)\n", role.Label(), account.IDNumber, account.ID)
	return nil
}
