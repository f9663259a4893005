package reco

import (
	"sort"

	"skinMatch/domain"
)

// rankCandidates orders candidates best-first and truncates to limit. Ties on
// score go to popular items, then newer catalog entries, then the lower
// product id, so identical inputs always produce identical output order.
func rankCandidates(candidates []ScoredCandidate, limit int) []ScoredCandidate {
	ranked := make([]ScoredCandidate, len(candidates))
	copy(ranked, candidates)

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		if ranked[i].IsPopular != ranked[j].IsPopular {
			return ranked[i].IsPopular
		}
		if !ranked[i].CreatedAt.Equal(ranked[j].CreatedAt) {
			return ranked[i].CreatedAt.After(ranked[j].CreatedAt)
		}
		return ranked[i].ProductID < ranked[j].ProductID
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	return ranked
}

// priorityForScore is a pure threshold function of the score; no other state
// feeds it.
func priorityForScore(cfg Config, score float64) string {
	switch {
	case score >= cfg.HighPriorityCutoff:
		return domain.PriorityHigh
	case score >= cfg.MediumPriorityCutoff:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}
