// Package layout implements the deterministic fitting algorithms for the
// badge: cultural name parsing and truncation, tag-row auto-shrink, the
// title-line estimate, and the vertical flow cascade.
//
// Everything here is pure computation over the text-width oracle and the
// geometry constants in pkg/config. Given identical inputs the outputs
// are always identical; there is no hidden state, locale dependence, or
// randomness beyond the closed lookup tables below.
package layout

import "strings"

// ParsedName is the structured decomposition of a raw full-name string.
// It is created per render call and owned by the truncation that
// requested it.
type ParsedName struct {
	Original       string
	FirstName      string
	LastName       string
	MiddleNames    []string
	Patronymic     string
	Connectors     []string
	IsEasternOrder bool
}

// Closed lookup tables for cultural name markers. The parser is
// script-agnostic: it relies only on whitespace tokenization plus these
// tables, so apostrophes, diacritics, and non-Latin scripts pass through
// untouched.
var (
	// connectors are nobiliary/familial particles that join name parts
	// and are never middle names ("bin Rashid", "van Berg", "al Saud").
	connectors = map[string]bool{
		"bin": true, "ibn": true, "bint": true,
		"al": true, "el": true,
		"de": true, "del": true, "della": true,
		"van": true, "von": true, "zu": true,
	}

	// patronymicEndings identify name components derived from a parent's
	// given name (Russian -ovich/-ovna, Nordic -son/-dóttir).
	patronymicEndings = []string{"ovich", "evich", "ovna", "evna", "son", "dóttir"}

	// easternSurnames is the closed family-name list used to detect
	// Eastern order (family name first) in two-token names.
	easternSurnames = map[string]bool{
		"Zhang": true, "Wang": true, "Li": true, "Liu": true,
		"Chen": true, "Kim": true, "Park": true, "Lee": true,
	}
)

// ParseName decomposes a full name into semantic parts.
//
// Empty or whitespace-only input yields empty fields with the original
// preserved. A single token becomes the first name. Two tokens whose
// first is a known East-Asian family name parse in Eastern order (family
// name first); everything else parses in Western order. Hyphenated
// surnames are single tokens and are never decomposed.
func ParseName(fullName string) ParsedName {
	tokens := strings.Fields(fullName)

	switch len(tokens) {
	case 0:
		return ParsedName{Original: fullName}
	case 1:
		return ParsedName{Original: fullName, FirstName: tokens[0]}
	}

	if len(tokens) == 2 && easternSurnames[tokens[0]] {
		return ParsedName{
			Original:       fullName,
			FirstName:      tokens[1], // given name is last
			LastName:       tokens[0], // family name is first
			IsEasternOrder: true,
		}
	}

	return parseWestern(tokens, fullName)
}

// parseWestern handles First [Middle...] Last names, classifying interior
// tokens as connectors, at most one patronymic, or middle names.
func parseWestern(tokens []string, original string) ParsedName {
	parsed := ParsedName{
		Original:  original,
		FirstName: tokens[0],
		LastName:  tokens[len(tokens)-1],
	}

	interior := tokens[1 : len(tokens)-1]

	connectorAt := make(map[int]bool, len(interior))
	for i, token := range interior {
		if connectors[strings.ToLower(token)] {
			parsed.Connectors = append(parsed.Connectors, token)
			connectorAt[i] = true
		}
	}

	// At most one patronymic, preferring the structurally middle token:
	// tokens[1] for three-token names, the central token otherwise.
	patronymicAt := -1
	if len(tokens) >= 3 {
		idx := 0
		if len(tokens) > 3 {
			idx = len(tokens)/2 - 1 // interior index of tokens[len/2]
		}
		if idx >= 0 && idx < len(interior) && !connectorAt[idx] && hasPatronymicEnding(interior[idx]) {
			parsed.Patronymic = interior[idx]
			patronymicAt = idx
		}
	}

	for i, token := range interior {
		if connectorAt[i] || i == patronymicAt {
			continue
		}
		parsed.MiddleNames = append(parsed.MiddleNames, token)
	}

	return parsed
}

func hasPatronymicEnding(token string) bool {
	lower := strings.ToLower(token)
	for _, ending := range patronymicEndings {
		if strings.HasSuffix(lower, ending) {
			return true
		}
	}
	return false
}

// Reconstruct assembles a display name from the parsed components.
// includeMiddle drops or keeps the middle names; includePatronymic does
// the same for the patronymic. Connectors are re-attached immediately
// before the family name (their usual linguistic slot) and survive both
// reductions. Eastern-order names assemble family name first.
func (p ParsedName) Reconstruct(includeMiddle, includePatronymic bool) string {
	if p.IsEasternOrder {
		parts := []string{p.LastName}
		if includeMiddle {
			parts = append(parts, p.MiddleNames...)
		}
		parts = append(parts, p.FirstName)
		return strings.Join(parts, " ")
	}

	parts := []string{p.FirstName}
	if includeMiddle {
		parts = append(parts, p.MiddleNames...)
	}
	if includePatronymic && p.Patronymic != "" {
		parts = append(parts, p.Patronymic)
	}
	if p.LastName != "" {
		parts = append(parts, p.Connectors...)
		parts = append(parts, p.LastName)
	}
	return strings.Join(parts, " ")
}
