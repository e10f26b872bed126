package grading

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// normalize lowercases, strips punctuation and collapses whitespace so
// "The Mitochondria!" and "the mitochondria" compare equal.
func normalize(s string) string {
	out := make([]rune, 0, len(s))
	pendingSpace := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			pendingSpace = true
		case unicode.IsPunct(r):
		default:
			if pendingSpace && len(out) > 0 {
				out = append(out, ' ')
			}
			pendingSpace = false
			out = append(out, unicode.ToLower(r))
		}
	}
	return string(out)
}

// levenshtein is the single-row edit distance with unit costs.
func levenshtein(a, b string) int {
	ar, br := []rune(a), []rune(b)
	if len(ar) == 0 {
		return len(br)
	}
	if len(br) == 0 {
		return len(ar)
	}
	row := make([]int, len(br)+1)
	for j := range row {
		row[j] = j
	}
	for i := 1; i <= len(ar); i++ {
		prev := row[0]
		row[0] = i
		for j := 1; j <= len(br); j++ {
			cur := row[j]
			cost := 0
			if ar[i-1] != br[j-1] {
				cost = 1
			}
			row[j] = minInt(row[j]+1, minInt(row[j-1]+1, prev+cost))
			prev = cur
		}
	}
	return row[len(br)]
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// parseFloatLoose accepts "3.14" as well as "3.14 kg", reading the
// leading token as the value.
func parseFloatLoose(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, true
	}
	if fields := strings.Fields(s); len(fields) > 0 {
		if v, err := strconv.ParseFloat(fields[0], 64); err == nil {
			return v, true
		}
	}
	return 0, false
}

// numericClose compares with a 0.1% relative tolerance to absorb
// rounding in the student's answer.
func numericClose(a, b float64) bool {
	diff := math.Abs(a - b)
	if b == 0 {
		return diff < 1e-9
	}
	return diff <= 0.001*math.Abs(b)
}
