package export

import "strings"

// ToCSV renders rows as CSV text. The header is the keys of the first row in insertion order;
// every row is mapped by header lookup, so a missing key gives an empty cell and an extra key is ignored.
// Every cell is quoted, with inner quotes doubled. Lines are separated by "\n" and zero rows render as "".
func ToCSV(rows []Record) string {
	if len(rows) == 0 {
		return ""
	}
	header, cells := table(rows)

	var b strings.Builder
	writeLine(&b, len(header), func(i int) string { return header[i] })
	for _, line := range cells {
		b.WriteByte('\n')
		writeLine(&b, len(line), func(i int) string { return FormatValue(line[i]) })
	}
	return b.String()
}

func writeLine(b *strings.Builder, n int, cell func(int) string) {
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(cell(i), `"`, `""`))
		b.WriteByte('"')
	}
}
