package course

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/academia/core"
)

const (
	MinCredits = 1
	MaxCredits = 10
)

type Course struct {
	ID          int             `json:"id"`
	Code        string          `json:"code"`
	Title       string          `json:"title"`
	Department  string          `json:"department"`
	Credits     int             `json:"credits"`
	Description string          `json:"description,omitempty"`
	FacultyIDs  []int           `json:"faculty_ids"`
	Metadata    []core.KeyValue `json:"metadata"`
	CreatedAt   time.Time       `json:"created_at"` // UTC
}

// HasFaculty reports whether the faculty member teaches the course.
func (c Course) HasFaculty(facultyID int) bool {
	for _, id := range c.FacultyIDs {
		if id == facultyID {
			return true
		}
	}
	return false
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	Code        string          `json:"code" yaml:"code" validate:"required,code_"`
	Title       string          `json:"title" yaml:"title" validate:"required"`
	Department  string          `json:"department" yaml:"department" validate:"required"`
	Credits     int             `json:"credits" yaml:"credits" validate:"min=1,max=10"`
	Description string          `json:"description" yaml:"description"`
	FacultyIDs  []int           `json:"faculty_ids" yaml:"faculty_ids" validate:"dive,min=1"`
	Metadata    []core.KeyValue `json:"metadata" yaml:"metadata" validate:"dive"`
}

func (nc *NewCourse) clean() {
	nc.Code = strings.ToUpper(core.CleanString(nc.Code))
	nc.Title = core.CleanString(nc.Title)
	nc.Department = core.CleanString(nc.Department)
	nc.Description = core.CleanString(nc.Description)
	nc.FacultyIDs = uniqueIDs(nc.FacultyIDs)
	nc.Metadata = core.CleanKeyValues(nc.Metadata)
}

func (nc *NewCourse) Validate(ctx context.Context, validate *validator.Validate, svc *Service) error {
	nc.clean()
	if err := validate.Struct(nc); err != nil {
		return err
	}
	return svc.checkUniqueness(ctx, nc.Code)
}

// UpdateCourse defines what information may be provided to modify an existing Course.
// Nil fields are left untouched.
type UpdateCourse struct {
	Code        *string          `json:"code" validate:"omitempty,code_"`
	Title       *string          `json:"title" validate:"omitempty,notblank_"`
	Department  *string          `json:"department" validate:"omitempty,notblank_"`
	Credits     *int             `json:"credits" validate:"omitempty,min=1,max=10"`
	Description *string          `json:"description"`
	FacultyIDs  *[]int           `json:"faculty_ids" validate:"omitempty,dive,min=1"`
	Metadata    *[]core.KeyValue `json:"metadata" validate:"omitempty,dive"`
}

func (uc *UpdateCourse) Validate(ctx context.Context, orig Course, validate *validator.Validate, svc *Service) error {
	if uc.Code != nil {
		code := strings.ToUpper(core.CleanString(*uc.Code))
		uc.Code = &code
	}
	for _, s := range []*string{uc.Title, uc.Department, uc.Description} {
		if s != nil {
			*s = core.CleanString(*s)
		}
	}
	if uc.FacultyIDs != nil {
		ids := uniqueIDs(*uc.FacultyIDs)
		uc.FacultyIDs = &ids
	}
	if uc.Metadata != nil {
		md := core.CleanKeyValues(*uc.Metadata)
		uc.Metadata = &md
	}

	if err := validate.Struct(uc); err != nil {
		return err
	}
	if uc.Code != nil && *uc.Code != orig.Code {
		return svc.checkUniqueness(ctx, *uc.Code, orig)
	}
	return nil
}

// Apply returns a copy of c with the set fields of uc.
func (uc UpdateCourse) Apply(c Course) Course {
	if uc.Code != nil {
		c.Code = *uc.Code
	}
	if uc.Title != nil {
		c.Title = *uc.Title
	}
	if uc.Department != nil {
		c.Department = *uc.Department
	}
	if uc.Credits != nil {
		c.Credits = *uc.Credits
	}
	if uc.Description != nil {
		c.Description = *uc.Description
	}
	if uc.FacultyIDs != nil {
		c.FacultyIDs = append([]int{}, *uc.FacultyIDs...)
	}
	if uc.Metadata != nil {
		c.Metadata = append([]core.KeyValue{}, *uc.Metadata...)
	}
	return c
}

type QueryFilter struct {
	Search     string            `query:"search"`
	Department string            `query:"department"`
	FacultyID  int               `query:"faculty_id"`
	Orderings  []core.DBOrdering `query:"-"`
}

// OrderingFields lists the fields courses can be ordered by.
var OrderingFields = []string{"id", "code", "title", "department", "credits", "created_at"}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Department = core.CleanString(qf.Department)
	qf.Orderings = core.CleanOrderings(qf.Orderings, OrderingFields...)
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Department == "" && qf.FacultyID == 0 && len(qf.Orderings) == 0
}

// Match reports whether c satisfies the filter. Search matches the title, code or department, ignoring case.
func (qf *QueryFilter) Match(c Course) bool {
	if qf.Department != "" && !strings.EqualFold(c.Department, qf.Department) {
		return false
	}
	if qf.FacultyID != 0 && !c.HasFaculty(qf.FacultyID) {
		return false
	}
	if qf.Search != "" &&
		!core.ContainsFold(c.Title, qf.Search) &&
		!core.ContainsFold(c.Code, qf.Search) &&
		!core.ContainsFold(c.Department, qf.Search) {
		return false
	}
	return true
}

// uniqueIDs drops duplicate ids, keeping the first occurrence. It never returns nil.
func uniqueIDs(ids []int) []int {
	seen := make(map[int]bool, len(ids))
	uniq := make([]int, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			uniq = append(uniq, id)
		}
	}
	return uniq
}
