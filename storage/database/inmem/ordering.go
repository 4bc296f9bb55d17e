package inmemdb

import (
	"sort"

	"github.com/trezcool/academia/core"
)

// orderBy sorts rows by orderings, using the less funcs keyed by field name.
// Unknown fields are ignored; rows stay ordered by ID otherwise.
func orderBy[T any](rows []T, orderings []core.DBOrdering, less map[string]func(a, b T) bool) {
	if len(orderings) == 0 {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		for _, ord := range orderings {
			lessFn, ok := less[ord.Field]
			if !ok {
				continue
			}
			a, b := rows[i], rows[j]
			if !ord.Ascending {
				a, b = b, a
			}
			if lessFn(a, b) {
				return true
			}
			if lessFn(b, a) {
				return false
			}
		}
		return false
	})
}
