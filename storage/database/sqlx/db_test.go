package sqlxrepos

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/academia/core"
)

func TestWhere(t *testing.T) {
	var w where
	assert.Equal(t, "", w.String())

	w.add("year = ?", "Senior")
	w.add("(name ILIKE ? OR email ILIKE ?)", "%ada%")
	assert.Equal(t, " WHERE year = $1 AND (name ILIKE $2 OR email ILIKE $2)", w.String())
	assert.Equal(t, []interface{}{"Senior", "%ada%"}, w.args)
}

func TestOrderBy(t *testing.T) {
	tests := []struct {
		name      string
		orderings []core.DBOrdering
		want      string
	}{
		{name: "default", want: " ORDER BY id ASC"},
		{
			name:      "mapped column",
			orderings: []core.DBOrdering{{Field: "title", Ascending: true}, {Field: "credits"}},
			want:      " ORDER BY lower(title) ASC, credits DESC, id ASC",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, orderBy(tc.orderings, courseOrderColumns))
		})
	}
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, `%100\%\_off%`, likePattern("100%_off"))
}
