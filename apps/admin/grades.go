package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/trezcool/academia/core/grade"
)

// enrollmentFlags are the flags identifying a (student, course) pair with a score.
type enrollmentFlags struct {
	studentID int
	courseID  int
	score     float64
}

func (ef *enrollmentFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&ef.studentID, "student", 0, "student ID")
	cmd.Flags().IntVar(&ef.courseID, "course", 0, "course ID")
	cmd.Flags().Float64Var(&ef.score, "score", 0, "score (0-100)")
	_ = cmd.MarkFlagRequired("student")
	_ = cmd.MarkFlagRequired("course")
	_ = cmd.MarkFlagRequired("score")
}

// readGrades reads a YAML list of {student_id, course_id, score}.
func readGrades(path string) ([]grade.NewGrade, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading grades file")
	}
	var ngs []grade.NewGrade
	if err = yaml.Unmarshal(data, &ngs); err != nil {
		return nil, errors.Wrap(err, "parsing grades file")
	}
	return ngs, nil
}

func (cli *commandLine) gradesCmd() *cobra.Command {
	var assignFlags, updateFlags enrollmentFlags

	assign := &cobra.Command{
		Use:   "assign",
		Short: "Enroll a student in a course with a score",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.load(cmd.Context()); err != nil {
				return err
			}
			g, err := cli.ctrl.AssignGrade(cmd.Context(), grade.NewGrade{
				StudentID: assignFlags.studentID,
				CourseID:  assignFlags.courseID,
				Score:     assignFlags.score,
			})
			if err != nil {
				return err
			}
			cli.printf("grade #%d: %v (%s)\n", g.ID, g.Score, g.Letter)
			return nil
		},
	}
	assignFlags.register(assign)

	update := &cobra.Command{
		Use:   "update",
		Short: "Set the score of a student in a course",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.load(cmd.Context()); err != nil {
				return err
			}
			g, err := cli.ctrl.UpdateGrade(cmd.Context(), grade.EnrollmentScore{
				StudentID: updateFlags.studentID,
				CourseID:  updateFlags.courseID,
				Score:     updateFlags.score,
			})
			if err != nil {
				return err
			}
			cli.printf("grade #%d: %v (%s)\n", g.ID, g.Score, g.Letter)
			return nil
		},
	}
	updateFlags.register(update)

	bulkCmd := &cobra.Command{
		Use:   "bulk FILE",
		Short: "Enroll students in bulk from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ngs, err := readGrades(args[0])
			if err != nil {
				return err
			}
			if err = cli.load(cmd.Context()); err != nil {
				return err
			}
			res := cli.ctrl.BulkEnroll(cmd.Context(), ngs)
			cli.printf("%d of %d grade(s) created\n", len(res.Succeeded), res.Total())
			for _, f := range res.Failed {
				cli.printf("  #%d (student %d, course %d): %v\n", f.Index, f.Item.StudentID, f.Item.CourseID, f.Err)
			}
			return res.Err()
		},
	}

	del := &cobra.Command{
		Use:   "delete ID...",
		Short: "Delete grades",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			if err = cli.load(cmd.Context()); err != nil {
				return err
			}
			if err = cli.ctrl.DeleteGrades(cmd.Context(), ids...); err != nil {
				return err
			}
			cli.printf("%d grade(s) deleted\n", len(ids))
			return nil
		},
	}

	return groupCmd("grades", "Manage grades", assign, update, bulkCmd, del)
}
