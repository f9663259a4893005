package reco

import (
	"context"
	"fmt"
	"time"

	"skinMatch/domain"
	"skinMatch/pkg/logger"

	"gorm.io/datatypes"
)

// ---- Repository interfaces ----

type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID uint) (domain.SkinProfile, error)
}

type PreferencesRepository interface {
	FindByUserID(ctx context.Context, userID uint) (domain.UserPreferences, error)
}

type MeasurementRepository interface {
	// FindRecent returns up to limit snapshots ordered newest-first.
	FindRecent(ctx context.Context, userID uint, limit int) ([]domain.MeasurementSnapshot, error)
}

type CatalogRepository interface {
	FindAll(ctx context.Context, limit int, category string) ([]domain.CatalogItem, error)
}

type RecommendationRepository interface {
	// Upsert inserts or updates the row keyed by (user_id, product_id),
	// never touching the engagement flags on update. The passed record is
	// refreshed with the row as persisted.
	Upsert(ctx context.Context, rec *domain.Recommendation) error
	FindByUser(ctx context.Context, userID uint, limit int) ([]domain.Recommendation, error)
	FindByUserAndProduct(ctx context.Context, userID uint, productID uint64) (domain.Recommendation, error)
	MarkClicked(ctx context.Context, userID uint, productID uint64) error
	MarkPurchased(ctx context.Context, userID uint, productID uint64) error
}

type EngagementRepository interface {
	SaveEvent(ctx context.Context, event domain.EngagementEvent) error
}

// ---- Usecase / Service ----

type Service struct {
	profileRepo     ProfileRepository
	prefsRepo       PreferencesRepository
	measurementRepo MeasurementRepository
	catalogRepo     CatalogRepository
	recoRepo        RecommendationRepository
	engagementRepo  EngagementRepository
	cfgRepo         ConfigRepository
	defaultCfg      Config
}

func NewService(
	profileRepo ProfileRepository,
	prefsRepo PreferencesRepository,
	measurementRepo MeasurementRepository,
	catalogRepo CatalogRepository,
	recoRepo RecommendationRepository,
	engagementRepo EngagementRepository,
	cfgRepo ConfigRepository,
	defaultCfg Config,
) *Service {
	return &Service{
		profileRepo:     profileRepo,
		prefsRepo:       prefsRepo,
		measurementRepo: measurementRepo,
		catalogRepo:     catalogRepo,
		recoRepo:        recoRepo,
		engagementRepo:  engagementRepo,
		cfgRepo:         cfgRepo,
		defaultCfg:      defaultCfg,
	}
}

// Generate recomputes the full recommendation set for one user: bulk reads,
// a pure scoring loop over the catalog snapshot, ranking, then per-item
// upserts. A missing profile or a failed catalog fetch aborts the run; no
// partially-scored output is ever persisted.
func (s *Service) Generate(ctx context.Context, userID uint) ([]domain.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	cfg := s.loadConfig(ctx, configScopeDefault)

	sc, err := s.buildScoringContext(ctx, userID, cfg)
	if err != nil {
		return nil, err
	}

	items, err := s.catalogRepo.FindAll(ctx, cfg.CandidateLimit, "")
	if err != nil {
		return []domain.Recommendation{}, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	if len(items) == 0 {
		return []domain.Recommendation{}, nil
	}

	tid := TraceIDFromContext(ctx)
	logger.Debug("reco_generate",
		"trace_id", tid,
		"user_id", userID,
		"skin_type", sc.Profile.SkinType,
		"has_preferences", sc.Preferences != nil,
		"history_len", len(sc.History),
		"candidate_count", len(items),
	)

	// Pure scoring loop: no I/O from here until ranking is done.
	scored := make([]ScoredCandidate, 0, len(items))
	for _, item := range items {
		scored = append(scored, ScoreItem(cfg, sc, item))
	}

	ranked := rankCandidates(scored, cfg.ResultLimit)

	recs := s.persistCandidates(ctx, userID, ranked)

	RecommendationsGeneratedTotal.Add(float64(len(recs)))

	return recs, nil
}

// ListForUser returns the currently persisted recommendation set, newest
// score first.
func (s *Service) ListForUser(ctx context.Context, userID uint, limit int) ([]domain.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		limit = s.defaultCfg.ResultLimit
	}

	return s.recoRepo.FindByUser(ctx, userID, limit)
}

// Engagement event types accepted by RecordEngagement.
const (
	EventClick    = "click"
	EventPurchase = "purchase"
)

// RecordEngagement flips the matching flag on the stored recommendation and
// appends an audit event. Flags only ever go from false to true; recomputes
// never reset them.
func (s *Service) RecordEngagement(
	ctx context.Context,
	userID uint,
	productID uint64,
	eventType string,
	eventCtx map[string]any,
) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	switch eventType {
	case EventClick:
		if err := s.recoRepo.MarkClicked(ctx, userID, productID); err != nil {
			return fmt.Errorf("failed to mark recommendation clicked: %w", err)
		}
	case EventPurchase:
		if err := s.recoRepo.MarkPurchased(ctx, userID, productID); err != nil {
			return fmt.Errorf("failed to mark recommendation purchased: %w", err)
		}
	default:
		return fmt.Errorf("unknown event type: %s", eventType)
	}

	event := domain.EngagementEvent{
		UserID:    userID,
		ProductID: productID,
		EventType: eventType,
		Context:   datatypes.JSONMap(eventCtx),
		CreatedAt: time.Now(),
	}

	if err := s.engagementRepo.SaveEvent(ctx, event); err != nil {
		return fmt.Errorf("failed to save engagement event: %w", err)
	}

	EngagementEventsTotal.WithLabelValues(eventType).Inc()

	return nil
}

// GetConfig exposes the stored per-scope config (admin surface).
func (s *Service) GetConfig(ctx context.Context, scope string) (domain.RecoConfig, bool, error) {
	if s.cfgRepo == nil {
		return domain.RecoConfig{}, false, nil
	}
	return s.cfgRepo.GetConfig(ctx, scope)
}

func (s *Service) UpsertConfig(ctx context.Context, cfg domain.RecoConfig) error {
	if s.cfgRepo == nil {
		return fmt.Errorf("config repository is not configured")
	}
	if cfg.Scope == "" {
		cfg.Scope = configScopeDefault
	}
	return s.cfgRepo.UpsertConfig(ctx, cfg)
}
