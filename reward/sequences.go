// Package reward implements the engine's reward function R: a discrete
// rewardable-sequence matcher (sparse or prefix-dense) and, for continuous
// domains, the move_to_a_point and move_along_a_line reward shapes.
package reward

import (
	"math"

	"mdpenv/mdperr"
	"mdpenv/rng"
)

// SoftCapSequences is the rewardable-sequence count above which
// construction logs a warning but proceeds.
const SoftCapSequences = 1000

// HardCapSequences is the rewardable-sequence count above which
// construction fails with RewardSetTooLarge.
const HardCapSequences = 20000

// Sequence is a length-sequence_length tuple of relevant non-terminal
// state indices. Being a slice it is not itself comparable, so lookups
// go through key(), which encodes it as a string map key.
type Sequence []int

// key turns a Sequence into a comparable map key.
func key(s Sequence) string {
	b := make([]byte, 0, len(s)*4)
	for _, v := range s {
		b = append(b, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
	}
	return string(b)
}

// Set is the immutable collection of rewardable sequences chosen at
// construction, keyed for full-tuple equality lookup.
type Set struct {
	length   int
	members  map[string]struct{}
	ordered  []Sequence
}

// Len returns the number of rewardable sequences.
func (s *Set) Len() int { return len(s.ordered) }

// All returns the rewardable sequences in construction order. Callers must
// not mutate the returned slice's elements.
func (s *Set) All() []Sequence { return s.ordered }

// Contains reports whether seq is a rewardable sequence.
func (s *Set) Contains(seq Sequence) bool {
	_, ok := s.members[key(seq)]
	return ok
}

// NewSet chooses round(density*N) distinct sequences of the given length
// out of the non-terminal relevant state space, per spec.md §4.5.
//
// repeatsAllowed=true draws distinct integers from [0, nonTerminalSize^L)
// without replacement and decodes each to a length-L tuple in base
// nonTerminalSize (digits read least-significant first, matching the
// Python original's repeated `% base; // base` loop).
//
// repeatsAllowed=false draws distinct integers from [0, nPk) and decodes
// each via a factorial-number-system (Lehmer code) digit sequence: at step
// j the remaining candidate pool has nonTerminalSize-j entries, so that
// count is used directly as the radix for that digit, and the picked index
// is removed from the pool before the next digit - this guarantees no two
// decoded sequences clash, by construction.
func NewSet(nonTerminalSize, length int, density float64, repeatsAllowed bool, stream *rng.Stream) (*Set, error) {
	if length <= 0 {
		return nil, mdperr.New(mdperr.ConfigInvalid, "sequence_length must be positive")
	}
	if density < 0 || density > 1 {
		return nil, mdperr.New(mdperr.ConfigInvalid, "reward_density must be in [0, 1]")
	}

	var total int
	var decode func(code int) Sequence

	if repeatsAllowed {
		total = intPow(nonTerminalSize, length)
		decode = func(code int) Sequence {
			seq := make(Sequence, length)
			for i := 0; i < length; i++ {
				seq[i] = code % nonTerminalSize
				code /= nonTerminalSize
			}
			return seq
		}
	} else {
		if length > nonTerminalSize {
			return nil, mdperr.New(mdperr.ConfigInvalid, "sequence_length exceeds non-terminal state count without repeats")
		}
		factors := make([]int, length)
		for i := 0; i < length; i++ {
			factors[i] = nonTerminalSize - i
		}
		total = 1
		for _, f := range factors {
			if f > 1 && total > math.MaxInt/f {
				total = math.MaxInt
				break
			}
			total *= f
		}
		decode = func(code int) Sequence {
			remaining := make([]int, nonTerminalSize)
			for i := range remaining {
				remaining[i] = i
			}
			seq := make(Sequence, length)
			for j := 0; j < length; j++ {
				poolSize := nonTerminalSize - j
				rem := code % poolSize
				seq[j] = remaining[rem]
				remaining = append(remaining[:rem], remaining[rem+1:]...)
				code /= poolSize
			}
			return seq
		}
	}

	count := int(density*float64(total) + 0.5)
	if count > HardCapSequences {
		return nil, mdperr.New(mdperr.RewardSetTooLarge, "reward_density implies more rewardable sequences than the hard cap allows")
	}

	codes, err := sampleDistinct(stream, total, count)
	if err != nil {
		return nil, err
	}

	set := &Set{
		length:  length,
		members: make(map[string]struct{}, count),
		ordered: make([]Sequence, 0, count),
	}
	for _, c := range codes {
		seq := decode(c)
		set.ordered = append(set.ordered, seq)
		set.members[key(seq)] = struct{}{}
	}
	return set, nil
}

// sampleDistinct draws count distinct integers from [0, total) without
// replacement by rejection sampling against a set of already-drawn values.
// No index slice of size total is built, since `total` can be
// astronomically large; memory is proportional to count, which the hard
// cap keeps small.
func sampleDistinct(stream *rng.Stream, total, count int) ([]int, error) {
	if count > total {
		return nil, mdperr.New(mdperr.ConfigInvalid, "reward_density implies more sequences than exist")
	}
	if count == 0 {
		return nil, nil
	}
	seen := make(map[int]struct{}, count)
	out := make([]int, 0, count)
	// Rejection sampling is safe here because count never exceeds
	// HardCapSequences and total-count is always large relative to count
	// in any configuration that passed the cap check above.
	for len(out) < count {
		c := stream.Intn(total)
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out, nil
}

// intPow computes base^exp, saturating at math.MaxInt instead of wrapping
// around if the product would overflow - nonTerminalSize^length can run far
// past the hard cap for reasonable configs, and a wrapped (possibly
// negative or tiny) total would defeat the HardCapSequences check below.
func intPow(base, exp int) int {
	if base <= 1 {
		return 1
	}
	out := 1
	for i := 0; i < exp; i++ {
		if out > math.MaxInt/base {
			return math.MaxInt
		}
		out *= base
	}
	return out
}
