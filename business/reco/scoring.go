package reco

import (
	"time"

	"skinMatch/domain"
)

// ScoredCandidate is the ephemeral output of scoring one catalog item for one
// user. It carries the catalog attributes the ranker needs so the ranking
// pass stays free of catalog lookups.
type ScoredCandidate struct {
	ProductID uint64
	Score     float64
	Reasons   []string
	Priority  string
	Category  string
	IsPopular bool
	CreatedAt time.Time
}

// ScoreItem computes the bounded score and reason trail for one
// (context, item) pair. Pure and total: any malformed optional input
// contributes nothing rather than failing.
func ScoreItem(cfg Config, sc ScoringContext, item domain.CatalogItem) ScoredCandidate {
	score := cfg.BaseScore
	reasons := make([]string, 0, 8)

	for _, f := range scoringFactors {
		for _, hit := range f.eval(cfg, sc, item) {
			score += hit.delta
			if hit.reason != "" {
				reasons = append(reasons, hit.reason)
			}
		}
	}

	score = clampScore(score, cfg.MinScore, cfg.MaxScore)

	return ScoredCandidate{
		ProductID: item.ID,
		Score:     score,
		Reasons:   dedupeReasons(reasons),
		Priority:  priorityForScore(cfg, score),
		Category:  item.Category,
		IsPopular: item.IsPopular,
		CreatedAt: item.CreatedAt,
	}
}

func clampScore(score, min, max float64) float64 {
	if score < min {
		return min
	}
	if score > max {
		return max
	}
	return score
}

// dedupeReasons drops repeated entries while preserving first-seen order.
func dedupeReasons(reasons []string) []string {
	seen := make(map[string]struct{}, len(reasons))
	out := reasons[:0]
	for _, r := range reasons {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}
