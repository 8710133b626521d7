package search

// TopK retains the k candidates with the most sheltered distance seen so far.
//
// The first k offers fill the set unconditionally. After that a candidate
// replaces the lowest-scoring one only if its score is strictly greater and no
// retained candidate already has exactly the same score.
type TopK struct {
	k     int
	items []Candidate
}

// NewTopK creates an empty set holding at most k candidates.
func NewTopK(k int) *TopK {
	return &TopK{k: k, items: make([]Candidate, 0, k)}
}

// Offer considers c for the set and reports whether it was kept.
func (t *TopK) Offer(c Candidate) bool {
	if len(t.items) < t.k {
		t.items = append(t.items, c)
		return true
	}
	if len(t.items) == 0 {
		return false
	}
	lowest := 0
	for i := 1; i < len(t.items); i++ {
		if t.items[i].CoveredDistance < t.items[lowest].CoveredDistance {
			lowest = i
		}
	}
	if c.CoveredDistance <= t.items[lowest].CoveredDistance {
		return false
	}
	for _, it := range t.items {
		if it.CoveredDistance == c.CoveredDistance {
			return false
		}
	}
	t.items[lowest] = c
	return true
}

// Len returns the number of retained candidates.
func (t *TopK) Len() int { return len(t.items) }

// Candidates returns the retained candidates in slot order.
func (t *TopK) Candidates() []Candidate {
	out := make([]Candidate, len(t.items))
	copy(out, t.items)
	return out
}
