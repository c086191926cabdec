package product

import "strings"

// ParseList splits a comma separated form value ("S, M, L") into trimmed,
// non-empty entries.
func ParseList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// FormatList joins entries back into the form representation.
func FormatList(items []string) string {
	return strings.Join(items, ", ")
}
