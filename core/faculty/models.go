package faculty

import "github.com/trezcool/academia/core"

// Faculty is a teaching staff member. Faculty are read-only through the API.
type Faculty struct {
	ID         int    `json:"id" yaml:"id" db:"id"`
	Name       string `json:"name" yaml:"name" db:"name"`
	Email      string `json:"email" yaml:"email" db:"email"`
	Department string `json:"department" yaml:"department" db:"department"`
	Title      string `json:"title" yaml:"title" db:"title"`
}

type QueryFilter struct {
	Search     string `query:"search"`
	Department string `query:"department"`
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Department = core.CleanString(qf.Department)
}

func (qf *QueryFilter) Match(f Faculty) bool {
	if qf.Department != "" && f.Department != qf.Department {
		return false
	}
	return qf.Search == "" || core.ContainsFold(f.Name, qf.Search) || core.ContainsFold(f.Email, qf.Search)
}
