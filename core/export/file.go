package export

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Formats
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

var ErrUnknownFormat = errors.New("unknown export format")

// FormatOf returns the export format of a file name from its extension.
func FormatOf(filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return "", errors.Wrap(ErrUnknownFormat, filename)
	}
}

// Encode renders rows in format.
func Encode(rows []Record, format string) ([]byte, error) {
	switch format {
	case FormatCSV:
		return []byte(ToCSV(rows)), nil
	case FormatXLSX:
		return ToXLSX(rows)
	default:
		return nil, errors.Wrap(ErrUnknownFormat, format)
	}
}

// ContentType returns the MIME type of format.
func ContentType(format string) string {
	if format == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// WriteFile writes rows to dir/filename in the format given by its extension and returns the path.
// Nothing is written for zero rows and the returned path is then "".
func WriteFile(dir, filename string, rows []Record) (string, error) {
	if len(rows) == 0 {
		return "", nil
	}
	format, err := FormatOf(filename)
	if err != nil {
		return "", err
	}
	data, err := Encode(rows, format)
	if err != nil {
		return "", errors.Wrap(err, "encoding rows")
	}

	path := filepath.Join(dir, filepath.Base(filename))
	if err = os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.Wrap(err, "writing export")
	}
	return path, nil
}
