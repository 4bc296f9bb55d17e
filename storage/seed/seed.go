// Package seed loads the initial academic records (faculty, students, courses and grades) into a store.
package seed

import (
	"context"
	"io/fs"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/course"
	"github.com/trezcool/academia/core/faculty"
	"github.com/trezcool/academia/core/grade"
	"github.com/trezcool/academia/core/student"
	appfs "github.com/trezcool/academia/fs"
)

const defaultFile = "seed.yaml"

type (
	// Repositories are the write sides a Fixture is loaded through.
	Repositories struct {
		Students student.Repository
		Courses  course.Repository
		Faculty  faculty.Repository
		Grades   grade.Repository
	}

	// Fixture IDs are local to the file: they only link rows together and are
	// replaced by the IDs the store assigns.
	Fixture struct {
		Faculty  []faculty.Faculty `yaml:"faculty"`
		Students []Student         `yaml:"students"`
		Courses  []Course          `yaml:"courses"`
		Grades   []Grade           `yaml:"grades"`
	}

	Student struct {
		ID                 int       `yaml:"id"`
		CreatedAt          time.Time `yaml:"created_at"`
		student.NewStudent `yaml:",inline"`
	}

	Course struct {
		ID               int       `yaml:"id"`
		CreatedAt        time.Time `yaml:"created_at"`
		course.NewCourse `yaml:",inline"`
	}

	Grade struct {
		StudentID int       `yaml:"student_id"`
		CourseID  int       `yaml:"course_id"`
		Score     float64   `yaml:"score"`
		CreatedAt time.Time `yaml:"created_at"`
	}
)

func Parse(data []byte) (*Fixture, error) {
	var fx Fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, errors.Wrap(err, "parsing seed")
	}
	return &fx, nil
}

// Default returns the fixture embedded in the binary.
func Default() (*Fixture, error) {
	data, err := fs.ReadFile(appfs.FS, defaultFile)
	if err != nil {
		return nil, errors.Wrap(err, "reading "+defaultFile)
	}
	return Parse(data)
}

// Load saves the fixture through repos. Rows referencing unknown fixture IDs are kept as-is:
// orphaned grades are valid data that views are expected to skip.
func (fx *Fixture) Load(ctx context.Context, repos Repositories) error {
	facultyIDs := make(map[int]int, len(fx.Faculty))
	for _, f := range fx.Faculty {
		localID := f.ID
		saved, err := repos.Faculty.CreateFaculty(ctx, f)
		if err != nil {
			return errors.Wrapf(err, "faculty %d", localID)
		}
		facultyIDs[localID] = saved.ID
	}

	studentIDs := make(map[int]int, len(fx.Students))
	for _, s := range fx.Students {
		saved, err := repos.Students.CreateStudent(ctx, student.Student{
			FirstName:  s.FirstName,
			LastName:   s.LastName,
			Email:      core.CleanString(s.Email, true),
			Year:       s.Year,
			Major:      s.Major,
			Notes:      s.Notes,
			Attributes: core.CleanKeyValues(s.Attributes),
			CreatedAt:  createdAt(s.CreatedAt),
		})
		if err != nil {
			return errors.Wrapf(err, "student %d", s.ID)
		}
		studentIDs[s.ID] = saved.ID
	}

	courseIDs := make(map[int]int, len(fx.Courses))
	for _, c := range fx.Courses {
		fids := make([]int, 0, len(c.FacultyIDs))
		for _, id := range c.FacultyIDs {
			fids = append(fids, remap(facultyIDs, id))
		}
		saved, err := repos.Courses.CreateCourse(ctx, course.Course{
			Code:        c.Code,
			Title:       c.Title,
			Department:  c.Department,
			Credits:     c.Credits,
			Description: c.Description,
			FacultyIDs:  fids,
			Metadata:    core.CleanKeyValues(c.Metadata),
			CreatedAt:   createdAt(c.CreatedAt),
		})
		if err != nil {
			return errors.Wrapf(err, "course %d", c.ID)
		}
		courseIDs[c.ID] = saved.ID
	}

	for i, g := range fx.Grades {
		letter, err := grade.ScoreToLetter(g.Score)
		if err != nil {
			return errors.Wrapf(err, "grade #%d", i)
		}
		at := createdAt(g.CreatedAt)
		if _, err := repos.Grades.CreateGrade(ctx, grade.Grade{
			StudentID: remap(studentIDs, g.StudentID),
			CourseID:  remap(courseIDs, g.CourseID),
			Score:     g.Score,
			Letter:    letter,
			CreatedAt: at,
			UpdatedAt: at,
		}); err != nil {
			return errors.Wrapf(err, "grade #%d", i)
		}
	}
	return nil
}

func remap(ids map[int]int, id int) int {
	if newID, ok := ids[id]; ok {
		return newID
	}
	return id
}

func createdAt(t time.Time) time.Time {
	if t.IsZero() {
		return core.NowFunc()
	}
	return t.UTC()
}
