package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func offerAll(k int, scores ...float64) (*TopK, []bool) {
	top := NewTopK(k)
	kept := make([]bool, len(scores))
	for i, s := range scores {
		kept[i] = top.Offer(Candidate{CoveredDistance: s})
	}
	return top, kept
}

func TestTopK(t *testing.T) {
	tests := []struct {
		name     string
		scores   []float64
		want     []float64
		wantKept []bool
	}{
		{
			name:     "replaces the lowest",
			scores:   []float64{100, 50, 200, 150},
			want:     []float64{100, 150, 200},
			wantKept: []bool{true, true, true, true},
		},
		{
			name:     "lower score is dropped",
			scores:   []float64{100, 50, 200, 40},
			want:     []float64{100, 50, 200},
			wantKept: []bool{true, true, true, false},
		},
		{
			name:     "equal to the lowest is dropped",
			scores:   []float64{100, 50, 200, 50},
			want:     []float64{100, 50, 200},
			wantKept: []bool{true, true, true, false},
		},
		{
			name:     "tie with a retained score is dropped",
			scores:   []float64{100, 50, 200, 100},
			want:     []float64{100, 50, 200},
			wantKept: []bool{true, true, true, false},
		},
		{
			name:     "duplicates accepted while filling",
			scores:   []float64{70, 70, 70, 80},
			want:     []float64{80, 70, 70},
			wantKept: []bool{true, true, true, true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			top, kept := offerAll(3, tt.scores...)
			assert.Equal(t, tt.want, covered(top.Candidates()))
			assert.Equal(t, tt.wantKept, kept)
		})
	}
}

func TestTopK_CandidatesIsACopy(t *testing.T) {
	top, _ := offerAll(2, 10, 20)
	got := top.Candidates()
	got[0].CoveredDistance = 999
	assert.Equal(t, []float64{10, 20}, covered(top.Candidates()))
	assert.Equal(t, 2, top.Len())
}
