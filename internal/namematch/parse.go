package namematch

import "strings"

// ParsedName is a free-form display name split into its components.
type ParsedName struct {
	Given  string
	Family string
}

// Parse splits a display name into given and family components.
//
// "Family, Given" order is used when the input contains a comma. Otherwise
// the last whitespace-delimited token is the family name and the preceding
// tokens form the given name. A single token is treated as a given name.
func Parse(displayName string) ParsedName {
	if idx := strings.Index(displayName, ","); idx >= 0 {
		return ParsedName{
			Given:  strings.Join(strings.Fields(displayName[idx+1:]), " "),
			Family: strings.Join(strings.Fields(displayName[:idx]), " "),
		}
	}

	tokens := strings.Fields(displayName)
	switch len(tokens) {
	case 0:
		return ParsedName{}
	case 1:
		return ParsedName{Given: tokens[0]}
	default:
		return ParsedName{
			Given:  strings.Join(tokens[:len(tokens)-1], " "),
			Family: tokens[len(tokens)-1],
		}
	}
}
