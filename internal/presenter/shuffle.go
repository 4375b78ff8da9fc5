// Package presenter shows quiz questions with shuffled answer options and
// grades the learner's selection against the canonical answer key.
package presenter

// NoCorrectIndex marks a mapping whose canonical key is absent or out of range.
const NoCorrectIndex = -1

// Rand is the randomness source used for shuffling. *math/rand.Rand satisfies it.
type Rand interface {
	// Intn returns a uniform value in [0, n).
	Intn(n int) int
}

// Mapping reconciles the shuffled display order with the canonical order.
// Options[p] == canonical[IndexMap[p]] for every position p.
type Mapping struct {
	Options      []string // options in display order
	IndexMap     []int    // canonical position shown at each display position
	CorrectIndex int      // display position of the correct option, or NoCorrectIndex
}

// Shuffle returns a uniformly random permutation of options together with the
// index map back to canonical order. The input slice is not modified.
func Shuffle(options []string, correctIndex *int, rng Rand) *Mapping {
	n := len(options)
	shuffled := make([]string, n)
	copy(shuffled, options)

	indexMap := make([]int, n)
	for i := range indexMap {
		indexMap[i] = i
	}

	// Fisher-Yates, walking down from the last position.
	for i := n - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		indexMap[i], indexMap[j] = indexMap[j], indexMap[i]
	}

	m := &Mapping{
		Options:      shuffled,
		IndexMap:     indexMap,
		CorrectIndex: NoCorrectIndex,
	}

	if correctIndex == nil || *correctIndex < 0 || *correctIndex >= n {
		return m
	}

	for p, canonical := range indexMap {
		if canonical == *correctIndex {
			m.CorrectIndex = p
			break
		}
	}

	return m
}

// Canonical returns the canonical index of the option at display position p.
func (m *Mapping) Canonical(p int) (int, bool) {
	if p < 0 || p >= len(m.IndexMap) {
		return 0, false
	}
	return m.IndexMap[p], true
}
