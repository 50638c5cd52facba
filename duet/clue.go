package duet

import (
	"fmt"
	"strings"
)

// Strictness controls how aggressively clues are checked against the
// board words.
type Strictness string

const (
	StrictnessBasic      Strictness = "basic"
	StrictnessStrict     Strictness = "strict"
	StrictnessVeryStrict Strictness = "very_strict"
)

// suffixes stripped by the very_strict root heuristic, longest first.
var clueSuffixes = []string{"ING", "EST", "ED", "ER", "ES", "LY", "S"}

// CheckClue validates a clue against the words still in play. Returns ok
// plus a reason suitable for showing the player. Checks are ordered and
// case-insensitive; the very_strict root comparison is a crude heuristic,
// not a stemmer.
func CheckClue(clue string, inPlay []string, strictness Strictness) (bool, string) {
	c := strings.ToUpper(strings.TrimSpace(clue))
	if c == "" {
		return false, "clue cannot be empty"
	}
	if strings.ContainsAny(clue, " \t\n") {
		return false, "clue must be a single word"
	}
	for _, w := range inPlay {
		bw := strings.ToUpper(w)
		if c == bw {
			return false, fmt.Sprintf("%q is a board word", clue)
		}
		if strictness == StrictnessStrict || strictness == StrictnessVeryStrict {
			if strings.Contains(bw, c) {
				return false, fmt.Sprintf("%q is contained in board word %q", clue, w)
			}
			if strings.Contains(c, bw) {
				return false, fmt.Sprintf("%q contains board word %q", clue, w)
			}
		}
		if strictness == StrictnessVeryStrict {
			if root(c) == root(bw) {
				return false, fmt.Sprintf("%q shares a root with board word %q", clue, w)
			}
		}
	}
	return true, ""
}

// root strips the longest matching suffix, but only when at least 3
// letters remain, so short words are never hollowed out.
func root(w string) string {
	for _, suf := range clueSuffixes {
		if !strings.HasSuffix(w, suf) {
			continue
		}
		if rest := len(w) - len(suf); rest >= 3 {
			return w[:rest]
		}
	}
	return w
}
