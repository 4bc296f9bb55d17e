package main

import (
	"github.com/spf13/cobra"

	"github.com/trezcool/academia/core/dashboard"
	"github.com/trezcool/academia/core/export"
	"github.com/trezcool/academia/core/report"
)

func (cli *commandLine) dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the dashboard summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.load(cmd.Context()); err != nil {
				return err
			}
			sum := cli.ctrl.Summary()

			c := sum.Counts
			cli.printf("%d students, %d courses, %d faculty, %d grades; average score %d\n",
				c.Students, c.Courses, c.Faculty, c.Grades, c.AverageScore)
			cli.printf("\nTop students\n")
			cli.printTable(report.StandingRecords(sum.TopStudents))
			cli.printf("\nPopular courses\n")
			cli.printTable(report.CourseEnrollmentRecords(sum.PopularCourses))
			cli.printf("\nRecent grades\n")
			rows := make([]export.Record, len(sum.RecentGrades))
			for i, g := range sum.RecentGrades {
				rows[i] = export.NewRecord("ID", g.ID, "Student", g.StudentID, "Course", g.CourseID, "Score", g.Score, "Letter", g.Letter)
			}
			cli.printTable(rows)
			cli.printf("\nEnrollments by month\n")
			cli.printTable(report.MonthRecords(sum.EnrollmentByMonth))
			cli.printJoinStats(cli.ctrl.View().JoinStats)
			return nil
		},
	}
}

func (cli *commandLine) reportCmd() *cobra.Command {
	var (
		limit int
		out   string
	)
	cmd := &cobra.Command{
		Use:   "report NAME",
		Short: "Print a report, or export it with --out file.csv|file.xlsx",
		Args:  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{
			string(dashboard.ReportLeaderboard),
			string(dashboard.ReportPopularCourses),
			string(dashboard.ReportEnrollments),
			string(dashboard.ReportEnrollmentsByCourse),
			string(dashboard.ReportTopByCourse),
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.load(cmd.Context()); err != nil {
				return err
			}
			r := dashboard.Report(args[0])
			if out == "" {
				rows, err := cli.ctrl.Records(r, limit)
				if err != nil {
					return err
				}
				cli.printTable(rows)
				return nil
			}

			path, err := cli.ctrl.Export(r, limit, out)
			if err != nil {
				return err
			}
			if path == "" {
				cli.printf("nothing to export\n")
				return nil
			}
			cli.printf("exported to %s\n", path)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "rankings size")
	cmd.Flags().StringVar(&out, "out", "", "export file name (.csv or .xlsx), written in the export directory")
	return cmd
}
