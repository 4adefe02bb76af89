package reward

// DiscreteMatcher computes the discrete reward function R over a
// rewardable Set, in either sparse or prefix-dense mode (spec.md §4.5).
type DiscreteMatcher struct {
	set        *Set
	delay      int
	length     int
	makeDenser bool
	scale      float64

	// possibleRemaining[j] holds the multiset (as counts) of length-(j+1)
	// prefixes of rewardable sequences still attainable given the recent
	// history, for j in 0..length-1. Only used when makeDenser is true.
	possibleRemaining []map[string]int
}

// NewDiscreteMatcher builds a matcher over set. delay is the number of
// steps the rewardable window must have ended in the past; scale is
// reward_scale.
func NewDiscreteMatcher(set *Set, delay int, makeDenser bool, scale float64) *DiscreteMatcher {
	m := &DiscreteMatcher{
		set:        set,
		delay:      delay,
		length:     set.length,
		makeDenser: makeDenser,
		scale:      scale,
	}
	if makeDenser {
		m.resetDense()
	}
	return m
}

// resetDense seeds possibleRemaining[0] with every length-1 prefix of
// every rewardable sequence, per spec.md §4.5's reset() behavior, and
// clears the rest.
func (m *DiscreteMatcher) resetDense() {
	m.possibleRemaining = make([]map[string]int, m.length)
	for j := range m.possibleRemaining {
		m.possibleRemaining[j] = make(map[string]int)
	}
	for _, seq := range m.set.All() {
		p := Sequence(append([]int(nil), seq[:1]...))
		m.possibleRemaining[0][key(p)]++
	}
}

// Reset restores the matcher's dense-mode bookkeeping to its
// post-construction state. No-op in sparse mode.
func (m *DiscreteMatcher) Reset() {
	if m.makeDenser {
		m.resetDense()
	}
}

// Reward computes the reward contribution for one step given the current
// augmented state (relevant-state indices only, oldest first, length
// delay+sequence_length+1). It does not add reward_noise, reward_shift, or
// term_state_reward - those are layered on by the caller (env.Engine),
// matching spec.md §4.5's ordering ("add reward_noise... then
// reward_shift; a terminal transition additionally adds...").
func (m *DiscreteMatcher) Reward(augmented []int) float64 {
	if m.makeDenser {
		return m.denseReward(augmented)
	}
	return m.sparseReward(augmented)
}

// sparseReward checks whether the window ending delay steps before the
// present equals a rewardable sequence.
func (m *DiscreteMatcher) sparseReward(augmented []int) float64 {
	n := len(augmented)
	lo := 1
	hi := n - m.delay
	if lo > hi || hi-lo != m.length {
		return 0
	}
	window := Sequence(augmented[lo:hi])
	if m.set.Contains(window) {
		return m.scale
	}
	return 0
}

// denseReward awards partial credit for every prefix of a rewardable
// sequence still consistent with history, then rebuilds the
// possibleRemaining prefix sets for the next step, per spec.md §4.5.
func (m *DiscreteMatcher) denseReward(augmented []int) float64 {
	n := len(augmented)
	reward := 0.0

	for j := 1; j <= m.length; j++ {
		lo := n - j - m.delay
		hi := n - m.delay
		if lo < 0 {
			continue
		}
		curr := Sequence(augmented[lo:hi])
		k := key(curr)
		if count, ok := m.possibleRemaining[j-1][k]; ok {
			reward += float64(count) * m.scale * float64(j) / float64(m.length)
		}
	}

	next := make([]map[string]int, m.length)
	for j := range next {
		next[j] = make(map[string]int)
	}
	for j := 0; j < m.length; j++ {
		lo := n - j - m.delay
		hi := n - m.delay
		if lo < 0 {
			continue
		}
		curr := Sequence(augmented[lo:hi])
		for _, seq := range m.set.All() {
			if j >= len(seq) {
				continue
			}
			if sequenceEqual(curr, seq[:j]) {
				extended := Sequence(append([]int(nil), seq[:j+1]...))
				next[j][key(extended)]++
			}
		}
	}
	m.possibleRemaining = next

	return reward
}

func sequenceEqual(a, b Sequence) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
