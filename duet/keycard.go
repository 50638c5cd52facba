package duet

import (
	"math/rand"

	"github.com/oddtable/wordtable/game"
)

// KeyCardSide is one player's secret view: which word indices are agents
// and which are assassins. Everything else is a bystander.
type KeyCardSide struct {
	Agents    []int `json:"agents"`
	Assassins []int `json:"assassins"`
}

func (s KeyCardSide) TypeOf(idx int) CardType {
	if game.IntListContains(s.Assassins, idx) {
		return CardAssassin
	}
	if game.IntListContains(s.Agents, idx) {
		return CardAgent
	}
	return CardBystander
}

// KeyCard is the dual-sided secret map. Generated once, never mutated.
//
// Layout: 3 shared agents, 1 shared assassin, 6 exclusive agents per side,
// 15 unique agents total. Each side carries 3 assassins: the shared one,
// one that is the partner's agent, and one that is the partner's bystander.
type KeyCard struct {
	Sides [2]KeyCardSide `json:"sides"`
}

// NewKeyCard shuffles the 25 board indices and slices them up. 18 indices
// are consumed, leaving 7 pure bystanders.
func NewKeyCard(rng *rand.Rand) KeyCard {
	seq := game.ShuffledRange(rng, BoardSize)

	sharedAgents := seq[0:3]
	sharedAssassin := seq[3]
	side0Agents := seq[4:10]
	side1Agents := seq[10:16]

	// One of each side's exclusive agents is an assassin for the partner.
	assassinForSide1 := side0Agents[0]
	assassinForSide0 := side1Agents[0]

	// One more assassin each, a bystander on the partner's side.
	side0Bystander := seq[16]
	side1Bystander := seq[17]

	var kc KeyCard
	kc.Sides[0].Agents = append(append([]int{}, sharedAgents...), side0Agents...)
	kc.Sides[1].Agents = append(append([]int{}, sharedAgents...), side1Agents...)
	kc.Sides[0].Assassins = []int{sharedAssassin, assassinForSide0, side0Bystander}
	kc.Sides[1].Assassins = []int{sharedAssassin, assassinForSide1, side1Bystander}
	return kc
}

// AgentUnion lists the unique agent indices across both sides.
func (k KeyCard) AgentUnion() []int {
	seen := map[int]bool{}
	var out []int
	for _, side := range k.Sides {
		for _, a := range side.Agents {
			if !seen[a] {
				seen[a] = true
				out = append(out, a)
			}
		}
	}
	return out
}
