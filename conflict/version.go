package conflict

import (
	"strings"
	"unicode"
)

// qualifierRanks orders well-known release qualifiers. Unlisted qualifiers rank 0
// and compare lexically among themselves.
var qualifierRanks = map[string]int{
	"dev":      -1,
	"rc":       1,
	"snapshot": 2,
	"final":    3,
	"ga":       4,
	"release":  5,
	"sp":       6,
}

// CompareVersions orders two version strings the way Gradle orders static versions.
//
// Versions are split into parts on '.', '-', '_' and '+' and wherever digits meet
// letters. Numeric parts compare numerically and rank above qualifiers. Qualifiers
// compare by rank, then lexically. When one version runs out of parts, an extra
// numeric part makes the other version higher and an extra qualifier makes it lower,
// so 1.2.1 > 1.2 > 1.2-rc.
func CompareVersions(a, b string) int {
	pa, pb := versionParts(a), versionParts(b)
	for i := 0; i < len(pa) && i < len(pb); i++ {
		if c := compareParts(pa[i], pb[i]); c != 0 {
			return c
		}
	}

	switch {
	case len(pa) == len(pb):
		return 0
	case len(pa) < len(pb):
		if isNumeric(pb[len(pa)]) {
			return -1
		}
		return 1
	default:
		if isNumeric(pa[len(pb)]) {
			return 1
		}
		return -1
	}
}

func versionParts(v string) []string {
	var parts []string
	var current strings.Builder
	lastDigit := false

	flush := func() {
		if current.Len() > 0 {
			parts = append(parts, current.String())
			current.Reset()
		}
	}

	for _, r := range v {
		switch {
		case r == '.' || r == '-' || r == '_' || r == '+':
			flush()
			continue
		case current.Len() > 0 && unicode.IsDigit(r) != lastDigit:
			flush()
		}
		current.WriteRune(r)
		lastDigit = unicode.IsDigit(r)
	}
	flush()
	return parts
}

func compareParts(a, b string) int {
	numA, numB := isNumeric(a), isNumeric(b)
	switch {
	case numA && numB:
		return compareNumeric(a, b)
	case numA:
		return 1
	case numB:
		return -1
	}

	rankA, rankB := qualifierRanks[strings.ToLower(a)], qualifierRanks[strings.ToLower(b)]
	if rankA != rankB {
		if rankA < rankB {
			return -1
		}
		return 1
	}
	if rankA != 0 {
		return 0
	}
	return strings.Compare(a, b)
}

// compareNumeric compares digit strings of any length without overflow.
func compareNumeric(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}
