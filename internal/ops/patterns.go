package ops

import (
	"encoding/json"
	"sort"
	"strings"
)

// errorIndicators is the fixed vocabulary marking a pattern as
// error-related. Matching is case-insensitive substring containment.
var errorIndicators = []string{"error", "exception", "fail", "timeout", "fatal"}

// PatternCount is one aggregated pattern with its occurrence count.
type PatternCount struct {
	Pattern string `json:"pattern"`
	Count   int    `json:"count"`
}

// TopPatterns groups rows by the value of key, counts occurrences, and
// returns the limit most frequent patterns in descending count order.
// Ties keep first-seen order (stable sort). Rows without the key are
// skipped.
func TopPatterns(rows []map[string]string, key string, limit int) []PatternCount {
	counts := make(map[string]int)
	var order []string
	for _, row := range rows {
		value, ok := row[key]
		if !ok || value == "" {
			continue
		}
		if counts[value] == 0 {
			order = append(order, value)
		}
		counts[value]++
	}

	out := make([]PatternCount, 0, len(order))
	for _, pattern := range order {
		out = append(out, PatternCount{Pattern: pattern, Count: counts[pattern]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// TopErrorPatterns is TopPatterns restricted to rows whose pattern text
// contains one of the error indicators.
func TopErrorPatterns(rows []map[string]string, key string, limit int) []PatternCount {
	var filtered []map[string]string
	for _, row := range rows {
		if ContainsErrorIndicator(row[key]) {
			filtered = append(filtered, row)
		}
	}
	return TopPatterns(filtered, key, limit)
}

// ContainsErrorIndicator reports whether s contains any term of the
// error vocabulary, ignoring case.
func ContainsErrorIndicator(s string) bool {
	lower := strings.ToLower(s)
	for _, indicator := range errorIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}

// CleanPatternRows strips the verbose bookkeeping fields the pattern
// command attaches to each row and trims @logSamples to a single sample.
// Rows are modified in place.
func CleanPatternRows(rows []map[string]string) {
	for _, row := range rows {
		delete(row, "@tokens")
		delete(row, "@visualization")

		samples, ok := row["@logSamples"]
		if !ok {
			continue
		}
		var parsed []json.RawMessage
		if err := json.Unmarshal([]byte(samples), &parsed); err != nil {
			continue
		}
		if len(parsed) > 1 {
			parsed = parsed[:1]
		}
		if trimmed, err := json.Marshal(parsed); err == nil {
			row["@logSamples"] = string(trimmed)
		}
	}
}
