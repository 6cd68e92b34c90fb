// Package imei normalizes and validates raw IMEI input before it is
// submitted to the lookup pipeline.
package imei

import (
	"regexp"
	"strings"
)

// Length is the number of digits in a canonical IMEI.
const Length = 15

var canonicalPattern = regexp.MustCompile(`^\d{15}$`)

// Partition holds the disjoint groups a request's raw entries fall into.
// Valid carries canonical (digits-only) forms in first-seen order;
// WrongFormat and Duplicates carry the original entries as supplied.
type Partition struct {
	Valid       []string `json:"valid"`
	WrongFormat []string `json:"wrongFormat"`
	Duplicates  []string `json:"duplicates"`
}

// Total returns the number of input entries accounted for.
func (p Partition) Total() int {
	return len(p.Valid) + len(p.WrongFormat) + len(p.Duplicates)
}

// Clean strips every non-digit character from a raw entry.
func Clean(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsCanonical reports whether s is a digits-only 15-character IMEI.
func IsCanonical(s string) bool {
	return canonicalPattern.MatchString(s)
}

// Validate partitions raw entries into valid, wrong-format and duplicate
// groups. Every entry lands in exactly one group. Duplicate detection is
// scoped to this call: the first occurrence of a canonical form is accepted,
// later occurrences go to Duplicates with their original spelling.
func Validate(records []string) Partition {
	var p Partition
	seen := make(map[string]struct{}, len(records))

	for _, rec := range records {
		if rec == "" {
			p.WrongFormat = append(p.WrongFormat, rec)
			continue
		}

		cleaned := Clean(rec)
		if !IsCanonical(cleaned) {
			p.WrongFormat = append(p.WrongFormat, rec)
			continue
		}

		if _, dup := seen[cleaned]; dup {
			p.Duplicates = append(p.Duplicates, rec)
			continue
		}
		seen[cleaned] = struct{}{}
		p.Valid = append(p.Valid, cleaned)
	}

	return p
}
