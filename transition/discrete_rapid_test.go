package transition

import (
	"testing"

	"pgregory.net/rapid"

	"mdpenv/rng"
)

// TestTerminalAbsorptionRapid checks spec.md §8: for every terminal s and
// every action a, P(s,a) = s.
func TestTerminalAbsorptionRapid(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		stateSize := rapid.IntRange(2, 20).Draw(t, "stateSize")
		actionSize := rapid.IntRange(1, stateSize).Draw(t, "actionSize")
		numTerminal := rapid.IntRange(1, stateSize).Draw(t, "numTerminal")
		seed := rapid.Int64().Draw(t, "seed")

		isTerminal := func(s int) bool { return s >= stateSize-numTerminal }
		suite := rng.NewSuite(seed)
		d, err := NewDiscrete(DiscreteConfig{
			RelevantStateSize:  stateSize,
			RelevantActionSize: actionSize,
			IsTerminal:         isTerminal,
			RelevantStream:     suite.RelevantStateSpace,
		})
		if err != nil {
			t.Fatal(err)
		}

		for s := stateSize - numTerminal; s < stateSize; s++ {
			for a := 0; a < actionSize; a++ {
				next, _, err := d.Step(s, a)
				if err != nil {
					t.Fatal(err)
				}
				if next != s {
					t.Fatalf("P(%d,%d) = %d, want %d (terminal absorption)", s, a, next, s)
				}
			}
		}
	})
}

// TestCompletelyConnectedRapid checks spec.md §8: when enabled, each row
// of the discrete P table is a permutation of the relevant-state set.
func TestCompletelyConnectedRapid(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		stateSize := rapid.IntRange(1, 15).Draw(t, "stateSize")
		actionSize := rapid.IntRange(1, stateSize).Draw(t, "actionSize")
		seed := rapid.Int64().Draw(t, "seed")

		suite := rng.NewSuite(seed)
		d, err := NewDiscrete(DiscreteConfig{
			RelevantStateSize:   stateSize,
			RelevantActionSize:  actionSize,
			CompletelyConnected: true,
			IsTerminal:          func(int) bool { return false },
			RelevantStream:      suite.RelevantStateSpace,
		})
		if err != nil {
			t.Fatal(err)
		}

		for s, row := range d.RelevantTable() {
			if len(row) != actionSize {
				t.Fatalf("row %d has length %d, want %d", s, len(row), actionSize)
			}
			seen := map[int]bool{}
			for _, v := range row {
				if seen[v] {
					t.Fatalf("row %d is not a permutation: repeated value %d", s, v)
				}
				seen[v] = true
			}
		}
	})
}
