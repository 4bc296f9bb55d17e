package student

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/academia/core"
)

// Year levels, in order.
const (
	YearFreshman  = "Freshman"
	YearSophomore = "Sophomore"
	YearJunior    = "Junior"
	YearSenior    = "Senior"
	YearGraduate  = "Graduate"
)

var Years = []string{YearFreshman, YearSophomore, YearJunior, YearSenior, YearGraduate}

// YearRank returns the position of year in Years, -1 if unknown.
func YearRank(year string) int {
	for i, y := range Years {
		if y == year {
			return i
		}
	}
	return -1
}

type Student struct {
	ID         int             `json:"id"`
	FirstName  string          `json:"first_name"`
	LastName   string          `json:"last_name"`
	Email      string          `json:"email"`
	Year       string          `json:"year"`
	Major      string          `json:"major"`
	Notes      string          `json:"notes,omitempty"`
	Attributes []core.KeyValue `json:"attributes"`
	CreatedAt  time.Time       `json:"created_at"` // UTC
}

func (s Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

// NewStudent contains information needed to create a new Student.
type NewStudent struct {
	FirstName  string          `json:"first_name" yaml:"first_name" validate:"required"`
	LastName   string          `json:"last_name" yaml:"last_name" validate:"required"`
	Email      string          `json:"email" yaml:"email" validate:"required,email"`
	Year       string          `json:"year" yaml:"year" validate:"required,year"`
	Major      string          `json:"major" yaml:"major" validate:"required"`
	Notes      string          `json:"notes" yaml:"notes"`
	Attributes []core.KeyValue `json:"attributes" yaml:"attributes" validate:"dive"`
}

func (ns *NewStudent) clean() {
	ns.FirstName = core.CleanString(ns.FirstName)
	ns.LastName = core.CleanString(ns.LastName)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	ns.Year = core.CleanString(ns.Year)
	ns.Major = core.CleanString(ns.Major)
	ns.Notes = core.CleanString(ns.Notes)
	ns.Attributes = core.CleanKeyValues(ns.Attributes)
}

func (ns *NewStudent) Validate(ctx context.Context, validate *validator.Validate, svc *Service) error {
	ns.clean()
	if err := validate.Struct(ns); err != nil {
		return err
	}
	return svc.checkUniqueness(ctx, ns.Email)
}

// UpdateStudent defines what information may be provided to modify an existing Student.
// Nil fields are left untouched.
type UpdateStudent struct {
	FirstName  *string          `json:"first_name" validate:"omitempty,notblank_"`
	LastName   *string          `json:"last_name" validate:"omitempty,notblank_"`
	Email      *string          `json:"email" validate:"omitempty,email"`
	Year       *string          `json:"year" validate:"omitempty,year"`
	Major      *string          `json:"major" validate:"omitempty,notblank_"`
	Notes      *string          `json:"notes"`
	Attributes *[]core.KeyValue `json:"attributes" validate:"omitempty,dive"`
}

func cleanPtr(s *string, lower ...bool) {
	if s != nil {
		*s = core.CleanString(*s, lower...)
	}
}

func (us *UpdateStudent) Validate(ctx context.Context, orig Student, validate *validator.Validate, svc *Service) error {
	cleanPtr(us.FirstName)
	cleanPtr(us.LastName)
	cleanPtr(us.Email, true /* lower */)
	cleanPtr(us.Year)
	cleanPtr(us.Major)
	cleanPtr(us.Notes)
	if us.Attributes != nil {
		attrs := core.CleanKeyValues(*us.Attributes)
		us.Attributes = &attrs
	}

	if err := validate.Struct(us); err != nil {
		return err
	}
	if us.Email != nil && *us.Email != orig.Email {
		return svc.checkUniqueness(ctx, *us.Email, orig)
	}
	return nil
}

// Apply returns a copy of s with the set fields of us.
func (us UpdateStudent) Apply(s Student) Student {
	if us.FirstName != nil {
		s.FirstName = *us.FirstName
	}
	if us.LastName != nil {
		s.LastName = *us.LastName
	}
	if us.Email != nil {
		s.Email = *us.Email
	}
	if us.Year != nil {
		s.Year = *us.Year
	}
	if us.Major != nil {
		s.Major = *us.Major
	}
	if us.Notes != nil {
		s.Notes = *us.Notes
	}
	if us.Attributes != nil {
		s.Attributes = append([]core.KeyValue{}, *us.Attributes...)
	}
	return s
}

type QueryFilter struct {
	Search    string            `query:"search"`
	Year      string            `query:"year"`
	Orderings []core.DBOrdering `query:"-"`
}

// OrderingFields lists the fields students can be ordered by.
var OrderingFields = []string{"id", "first_name", "last_name", "email", "year", "created_at"}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Year = core.CleanString(qf.Year)
	if qf.Year == "all" {
		qf.Year = ""
	}
	qf.Orderings = core.CleanOrderings(qf.Orderings, OrderingFields...)
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Year == "" && len(qf.Orderings) == 0
}

// Match reports whether s satisfies the filter. Search matches the full name or the email, ignoring case.
func (qf *QueryFilter) Match(s Student) bool {
	if qf.Year != "" && s.Year != qf.Year {
		return false
	}
	if qf.Search != "" && !core.ContainsFold(s.FullName(), qf.Search) && !core.ContainsFold(s.Email, qf.Search) {
		return false
	}
	return true
}
