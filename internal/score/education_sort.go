package score

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"resumeforge/internal/types"
)

// SortOrder selects the direction of an education sort.
type SortOrder string

const (
	SortDescending SortOrder = "desc"
	SortAscending  SortOrder = "asc"
)

// degreeLevels maps recognizable degree tokens to a rank. Matching is
// case-insensitive substring search; the two-letter tokens additionally
// require word boundaries so "ma" does not match inside "informatics".
var degreeLevels = []struct {
	weight int
	tokens []string
}{
	{5, []string{"phd", "ph.d", "doctorate", "doctoral"}},
	{4, []string{"master", "mba", "msc", "m.s", "m.tech", "mtech", "ms", "ma"}},
	{3, []string{"bachelor", "btech", "b.tech", "bsc", "b.s", "b.a", "beng", "ba", "bs"}},
	{2, []string{"diploma", "associate"}},
	{1, []string{"high school", "highschool", "secondary", "ssc", "hsc"}},
}

var shortTokenPatterns = map[string]*regexp.Regexp{}

func init() {
	for _, level := range degreeLevels {
		for _, tok := range level.tokens {
			if len(tok) <= 2 {
				shortTokenPatterns[tok] = regexp.MustCompile(`\b` + tok + `\b`)
			}
		}
	}
}

// DegreeWeight ranks a degree string by recognized level. Unrecognized
// or empty degrees rank at zero.
func DegreeWeight(degree string) int {
	lowered := strings.ToLower(degree)
	if strings.TrimSpace(lowered) == "" {
		return 0
	}
	for _, level := range degreeLevels {
		for _, tok := range level.tokens {
			if p, short := shortTokenPatterns[tok]; short {
				if p.MatchString(lowered) {
					return level.weight
				}
			} else if strings.Contains(lowered, tok) {
				return level.weight
			}
		}
	}
	return 0
}

var sortDateLayouts = []string{
	"2006-01-02",
	"2006-01",
	"01/2006",
	"Jan 2006",
	"January 2006",
	"2006",
}

// entryTime extracts the sortable date of an entry: endDate when
// parsable, otherwise startDate. Unparsable entries get the zero time
// and rank lowest.
func entryTime(e types.Education) time.Time {
	for _, raw := range []string{e.EndDate, e.StartDate} {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		for _, layout := range sortDateLayouts {
			if t, err := time.Parse(layout, trimmed); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}

// SortEducation returns a sorted copy of the entries. The primary key is
// the entry date (end date, falling back to start date); equal or absent
// dates fall back to degree level. Descending puts the most recent date,
// or the highest degree, first. The sort is stable, so fully tied
// entries keep their stored order.
func SortEducation(entries []types.Education, order SortOrder) []types.Education {
	sorted := make([]types.Education, len(entries))
	copy(sorted, entries)

	less := func(a, b types.Education) bool {
		ta, tb := entryTime(a), entryTime(b)
		if !ta.Equal(tb) {
			return ta.After(tb)
		}
		return DegreeWeight(a.Degree) > DegreeWeight(b.Degree)
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if order == SortAscending {
			return less(sorted[j], sorted[i])
		}
		return less(sorted[i], sorted[j])
	})
	return sorted
}
