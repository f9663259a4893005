package reco

import (
	"context"

	"skinMatch/domain"
	"skinMatch/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// persistCandidates converts ranked candidates into recommendation rows and
// upserts them one by one. The repository's upsert only assigns
// score/reasons/category/priority/updated_at on conflict, so engagement flags
// survive every recompute. A single failed write is logged, counted, and
// skipped; the rest of the batch continues.
func (s *Service) persistCandidates(
	ctx context.Context,
	userID uint,
	ranked []ScoredCandidate,
) []domain.Recommendation {

	out := make([]domain.Recommendation, 0, len(ranked))

	for _, cand := range ranked {
		rec := domain.Recommendation{
			ID:        uuid.NewString(),
			UserID:    userID,
			ProductID: cand.ProductID,
			Score:     cand.Score,
			Reasons:   datatypes.NewJSONSlice(cand.Reasons),
			Category:  cand.Category,
			Priority:  cand.Priority,
		}

		if err := s.recoRepo.Upsert(ctx, &rec); err != nil {
			logger.Error("failed to upsert recommendation, skipping",
				"user_id", userID,
				"product_id", cand.ProductID,
				"error", err,
			)
			UpsertFailuresTotal.Inc()
			continue
		}

		out = append(out, rec)
	}

	return out
}
