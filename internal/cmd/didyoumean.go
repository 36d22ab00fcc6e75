package cmd

import (
	"strings"

	"github.com/easemob/easemob-cli/internal/resolve"
)

// levenshtein computes the edit distance between two strings.
func levenshtein(a, b string) int {
	la, lb := len(a), len(b)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	row := make([]int, lb+1)
	for j := range row {
		row[j] = j
	}
	for i := 1; i <= la; i++ {
		prev := i - 1
		row[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			val := min(row[j]+1, row[j-1]+1, prev+cost)
			prev = row[j]
			row[j] = val
		}
	}
	return row[lb]
}

// closest returns the candidate within edit distance 3 of unknown, or "".
func closest(unknown string, candidates []string, key func(string) string) string {
	unknown = strings.ToLower(key(unknown))
	if unknown == "" {
		return ""
	}
	bestDist := 4
	bestMatch := ""
	for _, c := range candidates {
		if d := levenshtein(unknown, strings.ToLower(key(c))); d < bestDist {
			bestDist = d
			bestMatch = c
		}
	}
	return bestMatch
}

func suggestCommand(unknown string, commands []string) string {
	return closest(unknown, commands, func(s string) string { return s })
}

// suggestFlag compares names without their leading dashes but returns the
// match with its original prefix.
func suggestFlag(unknown string, flagNames []string) string {
	return closest(unknown, flagNames, func(s string) string { return strings.TrimLeft(s, "-") })
}

// suggestField returns configuration field names resembling name. Edit
// distance catches typos; fuzzy matching catches abbreviations.
func suggestField(name string, fields []string) []string {
	var out []string
	if c := closest(name, fields, func(s string) string { return s }); c != "" {
		out = append(out, c)
	}
	for _, s := range resolve.Suggest(name, fields, 3) {
		if len(out) > 0 && out[0] == s {
			continue
		}
		out = append(out, s)
	}
	return out
}
