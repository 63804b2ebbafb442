// Package keywords extracts follow-up search keywords from video metadata.
package keywords

import (
	"regexp"
	"sort"
	"strings"
)

// wordRegex matches a maximal run of word characters (alphanumeric or underscore).
var wordRegex = regexp.MustCompile(`\w+`)

// Extract returns the deduplicated lowercase word tokens found in the title
// and description combined, sorted so that iteration order is deterministic.
//
// A video with no description never spawns further searches, so an empty
// description returns nil regardless of the title content.
func Extract(title, description string) []string {
	if description == "" {
		return nil
	}

	seen := make(map[string]struct{})
	for _, field := range []string{title, description} {
		for _, token := range wordRegex.FindAllString(strings.ToLower(field), -1) {
			seen[token] = struct{}{}
		}
	}

	if len(seen) == 0 {
		return nil
	}

	tokens := make([]string, 0, len(seen))
	for token := range seen {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)

	return tokens
}
