//go:build !integration

package reco

import (
	"testing"
	"time"

	"skinMatch/domain"
)

func TestRankCandidates_OrdersByScoreThenTieBreaks(t *testing.T) {
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	candidates := []ScoredCandidate{
		{ProductID: 1, Score: 0.7, CreatedAt: base},
		{ProductID: 2, Score: 0.9, CreatedAt: base},
		// same score as 4: popular wins
		{ProductID: 3, Score: 0.8, IsPopular: false, CreatedAt: base},
		{ProductID: 4, Score: 0.8, IsPopular: true, CreatedAt: base},
		// same score, both unpopular: newer catalog entry wins
		{ProductID: 5, Score: 0.6, CreatedAt: base},
		{ProductID: 6, Score: 0.6, CreatedAt: base.Add(24 * time.Hour)},
		// fully tied: lower product id wins
		{ProductID: 8, Score: 0.5, CreatedAt: base},
		{ProductID: 7, Score: 0.5, CreatedAt: base},
	}

	ranked := rankCandidates(candidates, 0)

	wantOrder := []uint64{2, 4, 3, 1, 6, 5, 7, 8}
	if len(ranked) != len(wantOrder) {
		t.Fatalf("expected %d results, got %d", len(wantOrder), len(ranked))
	}
	for i, want := range wantOrder {
		if ranked[i].ProductID != want {
			t.Fatalf("position %d: got product %d, want %d", i, ranked[i].ProductID, want)
		}
	}
}

func TestRankCandidates_TruncatesToLimit(t *testing.T) {
	candidates := make([]ScoredCandidate, 30)
	for i := range candidates {
		candidates[i] = ScoredCandidate{
			ProductID: uint64(i + 1),
			Score:     float64(i) / 100,
		}
	}

	ranked := rankCandidates(candidates, 20)
	if len(ranked) != 20 {
		t.Fatalf("expected 20 results, got %d", len(ranked))
	}

	// best first: highest input score survives truncation
	if ranked[0].ProductID != 30 {
		t.Fatalf("expected product 30 first, got %d", ranked[0].ProductID)
	}
}

func TestRankCandidates_DoesNotMutateInput(t *testing.T) {
	candidates := []ScoredCandidate{
		{ProductID: 1, Score: 0.2},
		{ProductID: 2, Score: 0.9},
	}

	_ = rankCandidates(candidates, 1)

	if candidates[0].ProductID != 1 || candidates[1].ProductID != 2 {
		t.Fatalf("input slice was reordered: %+v", candidates)
	}
}

func TestPriorityForScore_Thresholds(t *testing.T) {
	cfg := DefaultConfig()

	cases := []struct {
		score float64
		want  string
	}{
		{1.0, domain.PriorityHigh},
		{0.8, domain.PriorityHigh},
		{0.79, domain.PriorityMedium},
		{0.6, domain.PriorityMedium},
		{0.59, domain.PriorityLow},
		{0.1, domain.PriorityLow},
	}

	for _, tc := range cases {
		if got := priorityForScore(cfg, tc.score); got != tc.want {
			t.Fatalf("score %v: got %s, want %s", tc.score, got, tc.want)
		}
	}
}
