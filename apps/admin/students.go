package main

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trezcool/academia/core/course"
	"github.com/trezcool/academia/core/export"
	"github.com/trezcool/academia/core/student"
	"github.com/trezcool/academia/core/view"
)

func parseIDs(args []string) ([]int, error) {
	ids := make([]int, len(args))
	for i, arg := range args {
		id, err := strconv.Atoi(arg)
		if err != nil || id < 1 {
			return nil, errors.Errorf("invalid id %q", arg)
		}
		ids[i] = id
	}
	return ids, nil
}

func studentRecords(students []student.Student) []export.Record {
	rows := make([]export.Record, len(students))
	for i, s := range students {
		rows[i] = export.NewRecord("ID", s.ID, "Name", s.FullName(), "Email", s.Email, "Year", s.Year, "Major", s.Major)
	}
	return rows
}

func courseRecords(courses []course.Course) []export.Record {
	rows := make([]export.Record, len(courses))
	for i, c := range courses {
		rows[i] = export.NewRecord("ID", c.ID, "Code", c.Code, "Title", c.Title, "Department", c.Department, "Credits", c.Credits)
	}
	return rows
}

func (cli *commandLine) studentsCmd() *cobra.Command {
	var (
		search   string
		year     string
		courseID int
		page     int
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List students",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.load(cmd.Context()); err != nil {
				return err
			}
			d := cli.ctrl.Dispatch(
				view.SetStudentSearch{Query: search},
				view.SetStudentYear{Year: year},
				view.SetStudentCourse{CourseID: courseID},
				view.SetStudentPage{Page: page},
			)
			cli.printTable(studentRecords(d.Students.Items))
			printPage(cli, d.Students)
			return nil
		},
	}
	list.Flags().StringVar(&search, "search", "", "name or email contains")
	list.Flags().StringVar(&year, "year", "all", "year level")
	list.Flags().IntVar(&courseID, "course", 0, "enrolled in course ID")
	list.Flags().IntVar(&page, "page", 1, "page number")

	profile := &cobra.Command{
		Use:   "profile ID",
		Short: "Show a student with its courses and GPA",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			if err = cli.load(cmd.Context()); err != nil {
				return err
			}
			p, err := cli.ctrl.Profile(ids[0])
			if err != nil {
				return err
			}
			cli.printf("%s <%s>, %s in %s\n", p.Student.FullName(), p.Student.Email, p.Student.Year, p.Student.Major)
			rows := make([]export.Record, len(p.Courses))
			for i, ec := range p.Courses {
				rows[i] = export.NewRecord("Code", ec.Course.Code, "Course", ec.Course.Title, "Score", ec.Grade.Score, "Letter", ec.Grade.Letter)
			}
			cli.printTable(rows)
			cli.printf("GPA %.2f, average score %d\n", p.GPA, p.AverageScore)
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete ID...",
		Short: "Delete students and their grades",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			if err = cli.load(cmd.Context()); err != nil {
				return err
			}
			for _, id := range ids {
				if err = cli.ctrl.DeleteStudent(cmd.Context(), id); err != nil {
					return errors.Wrapf(err, "student #%d", id)
				}
				cli.printf("student #%d deleted\n", id)
			}
			return nil
		},
	}

	return groupCmd("students", "Manage students", list, profile, del)
}

func (cli *commandLine) coursesCmd() *cobra.Command {
	var (
		search string
		page   int
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List courses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.load(cmd.Context()); err != nil {
				return err
			}
			d := cli.ctrl.Dispatch(view.SetCourseSearch{Query: search}, view.SetCoursePage{Page: page})
			cli.printTable(courseRecords(d.Courses.Items))
			printPage(cli, d.Courses)
			return nil
		},
	}
	list.Flags().StringVar(&search, "search", "", "title, code or department contains")
	list.Flags().IntVar(&page, "page", 1, "page number")

	del := &cobra.Command{
		Use:   "delete ID...",
		Short: "Delete courses and their grades",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			if err = cli.load(cmd.Context()); err != nil {
				return err
			}
			for _, id := range ids {
				if err = cli.ctrl.DeleteCourse(cmd.Context(), id); err != nil {
					return errors.Wrapf(err, "course #%d", id)
				}
				cli.printf("course #%d deleted\n", id)
			}
			return nil
		},
	}

	return groupCmd("courses", "Manage courses", list, del)
}

func (cli *commandLine) rosterCmd() *cobra.Command {
	var (
		search string
		page   int
	)
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "List grades with their student and course",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.load(cmd.Context()); err != nil {
				return err
			}
			d := cli.ctrl.Dispatch(view.SetRosterSearch{Query: search}, view.SetRosterPage{Page: page})
			rows := make([]export.Record, len(d.Roster.Items))
			for i, r := range d.Roster.Items {
				rows[i] = export.NewRecord(
					"Student", r.Student.FullName(),
					"Course", r.Course.Code,
					"Score", r.Grade.Score,
					"Letter", r.Grade.Letter,
				)
			}
			cli.printTable(rows)
			printPage(cli, d.Roster)
			cli.printJoinStats(d.JoinStats)
			return nil
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "student name, course code or title contains")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	return cmd
}
