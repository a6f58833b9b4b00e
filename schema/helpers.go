package schema

import (
	"slices"
	"sort"
	"strings"
	"unicode"
)

// cleanParts cleans a slice of name parts by trimming non-alphanumeric punctuation from ends,
// and additionally trims trailing periods for looser handling.
func cleanParts(parts []string) []string {
	var cleaned []string
	for _, p := range parts {
		cp := strings.TrimFunc(p, func(r rune) bool {
			if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '-' || r == '\'' || r == '.' {
				return false
			}
			return true
		})
		cp = strings.TrimSuffix(cp, ".")
		if cp != "" {
			cleaned = append(cleaned, cp)
		}
	}
	return cleaned
}

// getInitial extracts the initial from the last name part, using the first rune for Unicode safety.
func getInitial(last string) string {
	rr := []rune(last)
	if len(rr) > 0 {
		return string(rr[0])
	}
	return ""
}

// AbbreviateName formats "Samuel Huang" to "Samuel H".
// It handles names with parentheses, quotes, backticks, hyphens, and apostrophes appropriately.
// It also handles single-word names by returning them unchanged, and bot accounts without abbreviation.
func AbbreviateName(name string) string {
	// Trim leading/trailing whitespace.
	trimmedName := strings.TrimSpace(name)

	// Special case: bot accounts (e.g., dependabot[bot]) are not abbreviated.
	if strings.Contains(name, "[bot]") {
		parts := strings.Fields(trimmedName)
		if len(parts) > 0 {
			return strings.Join(parts, " ")
		}
		return trimmedName
	}

	// Remove outer punctuation.
	trimmedName = strings.Trim(trimmedName, "()\"'`")

	// Split into parts.
	parts := strings.Fields(trimmedName)
	cleaned := cleanParts(parts)

	// Handle based on number of cleaned parts.
	if len(cleaned) >= 2 {
		first := cleaned[0]
		last := cleaned[len(cleaned)-1]
		initial := getInitial(last)
		if initial != "" {
			return first + " " + initial
		}
		return first
	}

	if len(cleaned) == 1 {
		return cleaned[0]
	}

	// Fallback.
	return trimmedName
}

// FormatNames formats developer names as "Samuel H, John D".
func FormatNames(names []string) string {
	abbreviated := make([]string, 0, len(names))
	for _, name := range names {
		abbreviated = append(abbreviated, AbbreviateName(name))
	}
	return strings.Join(abbreviated, ", ")
}

// SameMembers compares two slices, considering them equal if they contain the same entries
// regardless of order.
func SameMembers(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}

	aSorted := slices.Clone(a)
	slices.Sort(aSorted)
	bSorted := slices.Clone(b)
	slices.Sort(bSorted)

	return slices.Equal(aSorted, bSorted)
}

// DisplayNames maps developer keys to display names. Keys without a display name map to themselves.
func DisplayNames(profiles []DeveloperProfile) map[string]string {
	names := make(map[string]string, len(profiles))
	for _, p := range profiles {
		if p.DisplayName != "" {
			names[p.DeveloperKey] = p.DisplayName
		} else {
			names[p.DeveloperKey] = p.DeveloperKey
		}
	}
	return names
}

// NameOf returns the display name for key, falling back to the key itself.
func NameOf(names map[string]string, key string) string {
	if name, ok := names[key]; ok && name != "" {
		return name
	}
	return key
}

// SortedByDisplayName returns developer keys ordered alphabetically by display name,
// breaking ties by key.
func SortedByDisplayName(profiles []DeveloperProfile) []string {
	sorted := slices.Clone(profiles)
	sort.SliceStable(sorted, func(i, j int) bool {
		ni, nj := strings.ToLower(sorted[i].DisplayName), strings.ToLower(sorted[j].DisplayName)
		if ni != nj {
			return ni < nj
		}
		return sorted[i].DeveloperKey < sorted[j].DeveloperKey
	})
	keys := make([]string, len(sorted))
	for i, p := range sorted {
		keys[i] = p.DeveloperKey
	}
	return keys
}
