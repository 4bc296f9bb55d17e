// Package export serializes flat records into CSV and XLSX files.
package export

import (
	"fmt"
	"strconv"
)

type Field struct {
	Key   string
	Value interface{}
}

// Record is a flat record whose keys keep their insertion order.
type Record []Field

// NewRecord builds a record from alternating keys and values.
// It panics on an odd number of arguments or a non-string key.
func NewRecord(kvs ...interface{}) Record {
	if len(kvs)%2 != 0 {
		panic("export.NewRecord: odd number of arguments")
	}
	r := make(Record, 0, len(kvs)/2)
	for i := 0; i < len(kvs); i += 2 {
		key, ok := kvs[i].(string)
		if !ok {
			panic(fmt.Sprintf("export.NewRecord: key %v is not a string", kvs[i]))
		}
		r = r.Set(key, kvs[i+1])
	}
	return r
}

// Set returns r with key set to value: replaced in place if present, appended otherwise.
func (r Record) Set(key string, value interface{}) Record {
	for i, f := range r {
		if f.Key == key {
			r[i].Value = value
			return r
		}
	}
	return append(r, Field{Key: key, Value: value})
}

// Get returns the value of key and whether it is present.
func (r Record) Get(key string) (interface{}, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

func (r Record) Keys() []string {
	keys := make([]string, len(r))
	for i, f := range r {
		keys[i] = f.Key
	}
	return keys
}

// FormatValue renders a cell value as text. nil renders as "" and numbers in their shortest form.
func FormatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case *string:
		if val == nil {
			return ""
		}
		return *val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// table returns the header (the first record's keys) and every record's cells mapped by header lookup.
func table(rows []Record) ([]string, [][]interface{}) {
	header := rows[0].Keys()
	cells := make([][]interface{}, len(rows))
	for i, r := range rows {
		line := make([]interface{}, len(header))
		for j, key := range header {
			line[j], _ = r.Get(key)
		}
		cells[i] = line
	}
	return header, cells
}
