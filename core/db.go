package core

import "strings"

type DBOrdering struct {
	Field     string
	Ascending bool
}

func (ord DBOrdering) String() string {
	direction := "DESC"
	if ord.Ascending {
		direction = "ASC"
	}
	return ord.Field + " " + direction
}

// CleanOrderings drops orderings on fields that are not in allowed.
func CleanOrderings(orderings []DBOrdering, allowed ...string) []DBOrdering {
	var clean []DBOrdering
	for _, ord := range orderings {
		for _, fld := range allowed {
			if strings.EqualFold(ord.Field, fld) {
				ord.Field = fld
				clean = append(clean, ord)
				break
			}
		}
	}
	return clean
}
