// Package words provides the dictionary-legality oracle and the word lists
// the games draw from. The engines only ever see the Dictionary interface.
package words

import (
	"bufio"
	_ "embed"
	"io"
	"math/rand"
	"os"
	"strings"
)

// Dictionary answers "is this a playable word". Implementations must be
// safe for concurrent readers.
type Dictionary interface {
	IsValidWord(word string) bool
}

// Set is a map-backed Dictionary.
type Set map[string]struct{}

func (s Set) IsValidWord(word string) bool {
	_, ok := s[strings.ToUpper(strings.TrimSpace(word))]
	return ok
}

// Permissive accepts every word. Used when dictionary mode is off.
type Permissive struct{}

func (Permissive) IsValidWord(string) bool { return true }

//go:embed default_board_words.txt
var embeddedBoardWords string

//go:embed default_dictionary.txt
var embeddedDictionary string

// Read collects one uppercased word per line, skipping blanks.
func Read(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := strings.ToUpper(strings.TrimSpace(sc.Text()))
		if w == "" {
			continue
		}
		out = append(out, w)
	}
	return out, sc.Err()
}

// LoadSet reads a dictionary file into a Set.
func LoadSet(path string) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	list, err := Read(f)
	if err != nil {
		return nil, err
	}
	return NewSet(list), nil
}

func NewSet(list []string) Set {
	s := make(Set, len(list))
	for _, w := range list {
		s[strings.ToUpper(w)] = struct{}{}
	}
	return s
}

// BoardWords is the pool the cooperative games deal from.
func BoardWords() []string {
	list, _ := Read(strings.NewReader(embeddedBoardWords))
	return list
}

// DefaultDictionary is a small embedded word list, enough for local play
// and tests. Production deployments point WORDTABLE_DICTIONARY_FILE at a
// full list.
func DefaultDictionary() Set {
	list, _ := Read(strings.NewReader(embeddedDictionary))
	return NewSet(list)
}

// Draw picks n distinct words from the pool.
func Draw(rng *rand.Rand, pool []string, n int) []string {
	idx := make([]int, len(pool))
	for i := range idx {
		idx[i] = i
	}
	rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
	out := make([]string, 0, n)
	for _, i := range idx[:n] {
		out = append(out, pool[i])
	}
	return out
}
