package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/trezcool/academia/core/export"
	"github.com/trezcool/academia/core/view"
)

func (cli *commandLine) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(cli.out, format, args...)
}

// printTable prints rows aligned in columns, headed by the keys of the first row.
func (cli *commandLine) printTable(rows []export.Record) {
	if len(rows) == 0 {
		cli.printf("(none)\n")
		return
	}
	header := rows[0].Keys()
	w := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, row := range rows {
		cells := make([]string, len(header))
		for i, key := range header {
			v, _ := row.Get(key)
			cells[i] = export.FormatValue(v)
		}
		_, _ = fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	_ = w.Flush()
}

func printPage[T any](cli *commandLine, p view.Page[T]) {
	nav := ""
	if p.HasPrev() {
		nav += " [prev]"
	}
	if p.HasNext() {
		nav += " [next]"
	}
	cli.printf("page %d/%d, %d item(s)%s\n", p.CurrentPage, p.TotalPages, p.TotalItems, nav)
}

func (cli *commandLine) printJoinStats(stats view.JoinStats) {
	if stats.Dropped() > 0 {
		cli.printf("%d grade(s) left out: %d without student, %d without course\n",
			stats.Dropped(), stats.MissingStudents, stats.MissingCourses)
	}
}
