package recipient

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

const MaxSearchResults = 10

type fuzzySource []Entry

func (s fuzzySource) String(i int) string {
	return strings.ToLower(s[i].DisplayName + " " + s[i].Address)
}

func (s fuzzySource) Len() int {
	return len(s)
}

// Search returns the entries best matching query by display name or
// address, best match first.
func (l List) Search(query string) []Entry {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []Entry{}
	}
	matches := fuzzy.FindFrom(query, fuzzySource(l.entries))
	result := []Entry{}
	for i := 0; i < len(matches) && i < MaxSearchResults; i++ {
		result = append(result, l.entries[matches[i].Index])
	}
	return result
}
