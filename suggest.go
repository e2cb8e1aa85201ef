package funcli

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// suggestThreshold is the minimum normalized similarity (0-1, higher is
// closer) for a command name to be suggested.
const suggestThreshold = 0.5

// suggestCommands ranks known command names by similarity to name and
// returns the closest ones, best first.
func suggestCommands(name string, known []string) []string {
	if name == "" || len(known) == 0 {
		return nil
	}

	type scored struct {
		name  string
		score float64
	}
	var results []scored
	a := strings.ToLower(name)
	for _, k := range known {
		b := strings.ToLower(k)
		maxLen := len(a)
		if len(b) > maxLen {
			maxLen = len(b)
		}
		if maxLen == 0 {
			continue
		}
		score := 1.0 - float64(levenshtein.ComputeDistance(a, b))/float64(maxLen)
		if score >= suggestThreshold {
			results = append(results, scored{k, score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].score > results[j].score })
	if len(results) > 3 {
		results = results[:3]
	}
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.name
	}
	return out
}
