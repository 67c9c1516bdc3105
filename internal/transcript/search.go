package transcript

import (
	"regexp"
	"strings"
)

// Match is one search hit. Excerpt shows up to ten runes on each side of the
// match within the flattened document.
type Match struct {
	Name    string
	Excerpt string
}

const excerptContext = 10

// Search scans the documents of folder, flattened without line breaks, for
// pattern. With absent set it reports documents that do not match instead.
// At most limit documents are reported; limit <= 0 reports all.
func (s *Store) Search(folder string, pattern *regexp.Regexp, absent bool, limit int) ([]Match, error) {
	names, err := s.List(folder)
	if err != nil {
		return nil, err
	}
	var matches []Match
	for _, name := range names {
		data, err := s.ReadRaw(folder, name)
		if err != nil {
			return nil, err
		}
		content := strings.NewReplacer("\r", "", "\n", "").Replace(string(data))
		loc := pattern.FindStringIndex(content)
		switch {
		case loc != nil && !absent:
			matches = append(matches, Match{Name: name, Excerpt: excerpt(content, loc[0], loc[1])})
		case loc == nil && absent:
			matches = append(matches, Match{Name: name})
		default:
			continue
		}
		if limit > 0 && len(matches) >= limit {
			break
		}
	}
	return matches, nil
}

func excerpt(content string, start, end int) string {
	before := []rune(content[:start])
	after := []rune(content[end:])
	if len(before) > excerptContext {
		before = before[len(before)-excerptContext:]
	}
	if len(after) > excerptContext {
		after = after[:excerptContext]
	}
	return string(before) + content[start:end] + string(after)
}
