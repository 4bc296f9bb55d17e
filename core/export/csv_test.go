package export

import (
	"testing"
)

func TestToCSV(t *testing.T) {
	tests := []struct {
		name string
		rows []Record
		want string
	}{
		{name: "no rows", rows: nil, want: ""},
		{
			name: "header from first row",
			rows: []Record{NewRecord("Month", "Jan 2024", "Enrollments", 5)},
			want: "\"Month\",\"Enrollments\"\n\"Jan 2024\",\"5\"",
		},
		{
			name: "insertion order is kept",
			rows: []Record{NewRecord("b", 1, "a", 2), NewRecord("a", 3, "b", 4)},
			want: "\"b\",\"a\"\n\"1\",\"2\"\n\"4\",\"3\"",
		},
		{
			name: "quotes are doubled",
			rows: []Record{NewRecord("Title", `The "Best" Course`, "Note", `a,b`)},
			want: "\"Title\",\"Note\"\n\"The \"\"Best\"\" Course\",\"a,b\"",
		},
		{
			name: "nil renders empty",
			rows: []Record{NewRecord("Course", "CS101", "Top Student", nil)},
			want: "\"Course\",\"Top Student\"\n\"CS101\",\"\"",
		},
		{
			name: "missing key renders empty, extra key is ignored",
			rows: []Record{NewRecord("a", 1, "b", 2), NewRecord("b", 3, "c", 4)},
			want: "\"a\",\"b\"\n\"1\",\"2\"\n\"\",\"3\"",
		},
		{
			name: "numbers in shortest form",
			rows: []Record{NewRecord("gpa", 2.35, "score", 93.0, "half", 0.5)},
			want: "\"gpa\",\"score\",\"half\"\n\"2.35\",\"93\",\"0.5\"",
		},
		{
			name: "newlines stay inside quotes",
			rows: []Record{NewRecord("notes", "line1\nline2")},
			want: "\"notes\"\n\"line1\nline2\"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToCSV(tt.rows); got != tt.want {
				t.Errorf("ToCSV() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRecord(t *testing.T) {
	r := NewRecord("a", 1, "b", 2).Set("a", 10).Set("c", nil)
	if got := r.Keys(); len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("Keys() = %v, want [a b c]", got)
	}
	if v, ok := r.Get("a"); !ok || v != 10 {
		t.Errorf("Get(a) = %v, %v; want 10, true", v, ok)
	}
	if _, ok := r.Get("z"); ok {
		t.Errorf("Get(z) found a value")
	}
}

func TestNewRecord_panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("NewRecord() did not panic")
		}
	}()
	NewRecord("a")
}
