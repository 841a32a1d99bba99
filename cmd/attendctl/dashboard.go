package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/noah-isme/automated-attendance/internal/dashboard"
	"github.com/noah-isme/automated-attendance/internal/models"
)

func (cli *commandLine) dashboard(ctx context.Context, args []string) error {
	fs := cli.flagSet("dashboard")
	format := fs.String("export", "", "Also write the summary as csv, pdf or xlsx.")
	fromServer := fs.Bool("server", false, "Use the server-side summary instead of counting the lists here.")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := cli.requireAdmin(); err != nil {
		return err
	}

	var summary models.DashboardSummary
	if *fromServer {
		remote, err := cli.api.Dashboard(ctx)
		if err != nil {
			return err
		}
		summary = *remote
	} else {
		summary = cli.collector.Collect(ctx)
	}
	w := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Total Students\t%d\n", summary.Statistics.Students)
	fmt.Fprintf(w, "Total Instructors\t%d\n", summary.Statistics.Instructors)
	fmt.Fprintf(w, "Total Courses\t%d\n", summary.Statistics.Courses)
	for _, p := range summary.Trend {
		fmt.Fprintf(w, "%s\t%d\n", p.Label, p.Count)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if *format == "" {
		return nil
	}
	return cli.export(*format, "dashboard", "Dashboard", dashboard.SummaryDataset(summary))
}
