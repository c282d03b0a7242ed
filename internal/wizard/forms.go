package wizard

import (
	"sort"
	"strconv"
	"strings"
)

// FormValues wraps submitted form fields with the normalization rules the
// step actions share: checkbox-presence booleans, trimmed comma lists, and
// numerically indexed repeating groups.
type FormValues map[string][]string

// Get returns the first trimmed value for a field, or empty string
func (f FormValues) Get(key string) string {
	values, ok := f[key]
	if !ok || len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0])
}

// Has reports whether the field was submitted at all. Checkbox booleans
// derive from presence, not value.
func (f FormValues) Has(key string) bool {
	_, ok := f[key]
	return ok
}

// CommaList splits a comma-separated field, trimming entries and dropping
// empty ones
func (f FormValues) CommaList(key string) []string {
	raw := f.Get(key)
	if raw == "" {
		return []string{}
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

// IndexedGroups collects fields named "<prefix>-<n>" into one record per
// numeric suffix, returned in ascending index order. Each record maps
// prefix to the trimmed submitted value.
func (f FormValues) IndexedGroups(prefixes ...string) []map[string]string {
	records := make(map[int]map[string]string)

	for key := range f {
		for _, prefix := range prefixes {
			rest, ok := strings.CutPrefix(key, prefix+"-")
			if !ok {
				continue
			}
			index, err := strconv.Atoi(rest)
			if err != nil || index < 0 {
				continue
			}
			if records[index] == nil {
				records[index] = make(map[string]string)
			}
			records[index][prefix] = f.Get(key)
		}
	}

	indexes := make([]int, 0, len(records))
	for index := range records {
		indexes = append(indexes, index)
	}
	sort.Ints(indexes)

	out := make([]map[string]string, 0, len(indexes))
	for _, index := range indexes {
		out = append(out, records[index])
	}
	return out
}
