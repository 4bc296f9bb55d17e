package core

import (
	"strings"
	"time"
)

// NowFunc returns the current wall-clock time in UTC.
var NowFunc = func() time.Time { return time.Now().UTC() } // mockable

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// ContainsFold reports whether substr is within s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// KeyValue is an ordered key/value pair attached to students (attributes) and courses (metadata).
type KeyValue struct {
	Key   string `json:"key" yaml:"key" validate:"notblank_"`
	Value string `json:"value" yaml:"value" validate:"notblank_"`
}

// CleanKeyValues trims every pair in place and returns the slice (never nil).
func CleanKeyValues(kvs []KeyValue) []KeyValue {
	if kvs == nil {
		return []KeyValue{}
	}
	for i := range kvs {
		kvs[i].Key = CleanString(kvs[i].Key)
		kvs[i].Value = CleanString(kvs[i].Value)
	}
	return kvs
}
