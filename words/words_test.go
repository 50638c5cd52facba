package words

import (
	"math/rand"
	"strings"
	"testing"
)

func TestSet(t *testing.T) {
	s := NewSet([]string{"apple", "PEAR"})
	for _, w := range []string{"APPLE", "apple", " pear "} {
		if !s.IsValidWord(w) {
			t.Errorf("expected %q valid", w)
		}
	}
	if s.IsValidWord("PLUM") {
		t.Error("expected PLUM invalid")
	}
}

func TestRead(t *testing.T) {
	list, err := Read(strings.NewReader("one\n\n  two \nTHREE\n"))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"ONE", "TWO", "THREE"}
	if len(list) != len(want) {
		t.Fatalf("got %v", list)
	}
	for i := range want {
		if list[i] != want[i] {
			t.Errorf("got %q, want %q", list[i], want[i])
		}
	}
}

func TestDraw(t *testing.T) {
	pool := []string{"A", "B", "C", "D", "E"}
	rng := rand.New(rand.NewSource(3))
	got := Draw(rng, pool, 3)
	if len(got) != 3 {
		t.Fatalf("drew %d", len(got))
	}
	seen := map[string]bool{}
	for _, w := range got {
		if seen[w] {
			t.Errorf("duplicate %q", w)
		}
		seen[w] = true
	}
}

func TestEmbedded(t *testing.T) {
	if len(BoardWords()) < 25 {
		t.Error("board word list too short to deal a board")
	}
	if !DefaultDictionary().IsValidWord("CAT") {
		t.Error("default dictionary missing CAT")
	}
}
