//go:build !integration

package reco

import (
	"context"
	"errors"
	"testing"
	"time"

	"skinMatch/domain"

	"gorm.io/datatypes"
)

// ---- fakes ----

type fakeProfileRepo struct {
	profile domain.SkinProfile
	err     error
}

func (f *fakeProfileRepo) FindByUserID(_ context.Context, _ uint) (domain.SkinProfile, error) {
	return f.profile, f.err
}

type fakePrefsRepo struct {
	prefs domain.UserPreferences
	err   error
}

func (f *fakePrefsRepo) FindByUserID(_ context.Context, _ uint) (domain.UserPreferences, error) {
	return f.prefs, f.err
}

type fakeMeasurementRepo struct {
	history []domain.MeasurementSnapshot
	err     error
}

func (f *fakeMeasurementRepo) FindRecent(_ context.Context, _ uint, limit int) ([]domain.MeasurementSnapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit > 0 && len(f.history) > limit {
		return f.history[:limit], nil
	}
	return f.history, nil
}

type fakeCatalogRepo struct {
	items []domain.CatalogItem
	err   error
}

func (f *fakeCatalogRepo) FindAll(_ context.Context, _ int, _ string) ([]domain.CatalogItem, error) {
	return f.items, f.err
}

type fakeRecoRepo struct {
	upserts   []domain.Recommendation
	upsertErr error
	stored    map[uint64]*domain.Recommendation
	clicked   []uint64
	purchased []uint64
	markErr   error
}

func (f *fakeRecoRepo) Upsert(_ context.Context, rec *domain.Recommendation) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	if f.stored == nil {
		f.stored = make(map[uint64]*domain.Recommendation)
	}
	if existing, ok := f.stored[rec.ProductID]; ok {
		// simulate the limited-column conflict update
		existing.Score = rec.Score
		existing.Reasons = rec.Reasons
		existing.Category = rec.Category
		existing.Priority = rec.Priority
		*rec = *existing
	} else {
		cp := *rec
		f.stored[rec.ProductID] = &cp
	}
	f.upserts = append(f.upserts, *rec)
	return nil
}

func (f *fakeRecoRepo) FindByUser(_ context.Context, _ uint, _ int) ([]domain.Recommendation, error) {
	out := make([]domain.Recommendation, 0, len(f.stored))
	for _, rec := range f.stored {
		out = append(out, *rec)
	}
	return out, nil
}

func (f *fakeRecoRepo) FindByUserAndProduct(_ context.Context, _ uint, productID uint64) (domain.Recommendation, error) {
	if rec, ok := f.stored[productID]; ok {
		return *rec, nil
	}
	return domain.Recommendation{}, domain.ErrRecommendationNotFound
}

func (f *fakeRecoRepo) MarkClicked(_ context.Context, _ uint, productID uint64) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.clicked = append(f.clicked, productID)
	return nil
}

func (f *fakeRecoRepo) MarkPurchased(_ context.Context, _ uint, productID uint64) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.purchased = append(f.purchased, productID)
	return nil
}

type fakeEngagementRepo struct {
	events []domain.EngagementEvent
	err    error
}

func (f *fakeEngagementRepo) SaveEvent(_ context.Context, event domain.EngagementEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

type fakeConfigRepo struct {
	cfg domain.RecoConfig
	ok  bool
	err error
}

func (f *fakeConfigRepo) GetConfig(_ context.Context, _ string) (domain.RecoConfig, bool, error) {
	return f.cfg, f.ok, f.err
}

func (f *fakeConfigRepo) UpsertConfig(_ context.Context, cfg domain.RecoConfig) error {
	f.cfg = cfg
	f.ok = true
	return nil
}

func newTestService(
	profiles *fakeProfileRepo,
	prefs *fakePrefsRepo,
	measurements *fakeMeasurementRepo,
	catalog *fakeCatalogRepo,
	recos *fakeRecoRepo,
	engagements *fakeEngagementRepo,
	cfgRepo ConfigRepository,
) *Service {
	return NewService(profiles, prefs, measurements, catalog, recos, engagements, cfgRepo, DefaultConfig())
}

func oilyProfile() domain.SkinProfile {
	return domain.SkinProfile{
		UserID:   1,
		SkinType: domain.SkinTypeOily,
		Concerns: datatypes.NewJSONSlice([]string{"pore"}),
	}
}

// ---- Generate ----

func TestGenerate_MissingProfileAbortsRun(t *testing.T) {
	recos := &fakeRecoRepo{}
	svc := newTestService(
		&fakeProfileRepo{err: domain.ErrProfileNotFound},
		&fakePrefsRepo{err: domain.ErrPreferencesNotFound},
		&fakeMeasurementRepo{},
		&fakeCatalogRepo{items: []domain.CatalogItem{{ID: 1}}},
		recos,
		&fakeEngagementRepo{},
		nil,
	)

	_, err := svc.Generate(context.Background(), 1)
	if !errors.Is(err, domain.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
	if len(recos.upserts) != 0 {
		t.Fatalf("nothing must be persisted, got %d upserts", len(recos.upserts))
	}
}

func TestGenerate_CatalogFailureReturnsEmptySetAndPersistsNothing(t *testing.T) {
	recos := &fakeRecoRepo{}
	svc := newTestService(
		&fakeProfileRepo{profile: oilyProfile()},
		&fakePrefsRepo{err: domain.ErrPreferencesNotFound},
		&fakeMeasurementRepo{},
		&fakeCatalogRepo{err: errors.New("connection refused")},
		recos,
		&fakeEngagementRepo{},
		nil,
	)

	recs, err := svc.Generate(context.Background(), 1)
	if !errors.Is(err, domain.ErrCatalogUnavailable) {
		t.Fatalf("expected ErrCatalogUnavailable, got %v", err)
	}
	if recs == nil || len(recs) != 0 {
		t.Fatalf("expected empty non-nil set, got %v", recs)
	}
	if len(recos.upserts) != 0 {
		t.Fatalf("nothing must be persisted on catalog failure, got %d upserts", len(recos.upserts))
	}
}

func TestGenerate_MissingPreferencesAndHistoryStillScores(t *testing.T) {
	recos := &fakeRecoRepo{}
	svc := newTestService(
		&fakeProfileRepo{profile: oilyProfile()},
		&fakePrefsRepo{err: domain.ErrPreferencesNotFound},
		&fakeMeasurementRepo{},
		&fakeCatalogRepo{items: []domain.CatalogItem{
			{ID: 1, Category: "toner", Rating: 3.0, SuitableTypes: datatypes.NewJSONSlice([]string{"oily"})},
			{ID: 2, Category: "toner", Rating: 3.0},
		}},
		recos,
		&fakeEngagementRepo{},
		nil,
	)

	recs, err := svc.Generate(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(recs))
	}

	// type match ranks item 1 first
	if recs[0].ProductID != 1 {
		t.Fatalf("expected product 1 first, got %d", recs[0].ProductID)
	}
	if recs[0].Score <= recs[1].Score {
		t.Fatalf("ranking not score-descending: %v then %v", recs[0].Score, recs[1].Score)
	}
}

func TestGenerate_PrefsRepoFailureDegradesToProfileOnly(t *testing.T) {
	recos := &fakeRecoRepo{}
	svc := newTestService(
		&fakeProfileRepo{profile: oilyProfile()},
		&fakePrefsRepo{err: errors.New("timeout")},
		&fakeMeasurementRepo{err: errors.New("timeout")},
		&fakeCatalogRepo{items: []domain.CatalogItem{{ID: 1, Rating: 3.0}}},
		recos,
		&fakeEngagementRepo{},
		nil,
	)

	recs, err := svc.Generate(context.Background(), 1)
	if err != nil {
		t.Fatalf("degraded run must still succeed, got %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}
}

func TestGenerate_TruncatesToResultLimit(t *testing.T) {
	items := make([]domain.CatalogItem, 35)
	for i := range items {
		items[i] = domain.CatalogItem{ID: uint64(i + 1), Category: "toner", Rating: 3.0}
	}

	recos := &fakeRecoRepo{}
	svc := newTestService(
		&fakeProfileRepo{profile: oilyProfile()},
		&fakePrefsRepo{err: domain.ErrPreferencesNotFound},
		&fakeMeasurementRepo{},
		&fakeCatalogRepo{items: items},
		recos,
		&fakeEngagementRepo{},
		nil,
	)

	recs, err := svc.Generate(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != DefaultConfig().ResultLimit {
		t.Fatalf("expected %d results, got %d", DefaultConfig().ResultLimit, len(recs))
	}
	if len(recos.upserts) != DefaultConfig().ResultLimit {
		t.Fatalf("only the truncated set may be persisted, got %d upserts", len(recos.upserts))
	}
}

func TestGenerate_RecomputePreservesEngagementFlags(t *testing.T) {
	recos := &fakeRecoRepo{
		stored: map[uint64]*domain.Recommendation{
			1: {ID: "existing", UserID: 1, ProductID: 1, Score: 0.5, Purchased: true, Clicked: true},
		},
	}
	svc := newTestService(
		&fakeProfileRepo{profile: oilyProfile()},
		&fakePrefsRepo{err: domain.ErrPreferencesNotFound},
		&fakeMeasurementRepo{},
		&fakeCatalogRepo{items: []domain.CatalogItem{
			{ID: 1, Category: "toner", Rating: 4.0, SuitableTypes: datatypes.NewJSONSlice([]string{"oily"})},
		}},
		recos,
		&fakeEngagementRepo{},
		nil,
	)

	recs, err := svc.Generate(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}
	if !recs[0].Purchased || !recs[0].Clicked {
		t.Fatalf("recompute must not reset engagement flags: %+v", recs[0])
	}
	if recs[0].ID != "existing" {
		t.Fatalf("recompute must keep the canonical row id, got %s", recs[0].ID)
	}
	if recs[0].Score <= 0.5 {
		t.Fatalf("score must be refreshed, got %v", recs[0].Score)
	}
}

func TestGenerate_UpsertFailureSkipsRowAndContinues(t *testing.T) {
	recos := &fakeRecoRepo{upsertErr: errors.New("deadlock")}
	svc := newTestService(
		&fakeProfileRepo{profile: oilyProfile()},
		&fakePrefsRepo{err: domain.ErrPreferencesNotFound},
		&fakeMeasurementRepo{},
		&fakeCatalogRepo{items: []domain.CatalogItem{{ID: 1, Rating: 3.0}, {ID: 2, Rating: 3.0}}},
		recos,
		&fakeEngagementRepo{},
		nil,
	)

	recs, err := svc.Generate(context.Background(), 1)
	if err != nil {
		t.Fatalf("persist failures must not fail the run, got %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("failed rows must not be returned, got %d", len(recs))
	}
}

func TestGenerate_CancelledContextAborts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := newTestService(
		&fakeProfileRepo{profile: oilyProfile()},
		&fakePrefsRepo{},
		&fakeMeasurementRepo{},
		&fakeCatalogRepo{},
		&fakeRecoRepo{},
		&fakeEngagementRepo{},
		nil,
	)

	if _, err := svc.Generate(ctx, 1); err == nil {
		t.Fatal("expected context error")
	}
}

// ---- config loading ----

func TestLoadConfig_FallsBackToDefaultsOnRepoError(t *testing.T) {
	svc := newTestService(
		&fakeProfileRepo{}, &fakePrefsRepo{}, &fakeMeasurementRepo{},
		&fakeCatalogRepo{}, &fakeRecoRepo{}, &fakeEngagementRepo{},
		&fakeConfigRepo{err: errors.New("down")},
	)

	cfg := svc.loadConfig(context.Background(), configScopeDefault)
	if cfg.ResultLimit != defaultResultLimit || cfg.BaseScore != defaultBaseScore {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadConfig_SparseOverrideKeepsOtherDefaults(t *testing.T) {
	svc := newTestService(
		&fakeProfileRepo{}, &fakePrefsRepo{}, &fakeMeasurementRepo{},
		&fakeCatalogRepo{}, &fakeRecoRepo{}, &fakeEngagementRepo{},
		&fakeConfigRepo{
			ok: true,
			cfg: domain.RecoConfig{
				Scope:       configScopeDefault,
				ResultLimit: 10,
				Weights:     domain.RecoWeights{TypeMatchBonus: 0.25},
			},
		},
	)

	cfg := svc.loadConfig(context.Background(), configScopeDefault)
	if cfg.ResultLimit != 10 {
		t.Fatalf("expected override limit 10, got %d", cfg.ResultLimit)
	}
	if cfg.TypeMatchBonus != 0.25 {
		t.Fatalf("expected override bonus 0.25, got %v", cfg.TypeMatchBonus)
	}
	if cfg.BaseScore != defaultBaseScore || cfg.NeedMatchBonus != defaultNeedMatchBonus {
		t.Fatalf("untouched fields must keep defaults, got %+v", cfg)
	}
}

// ---- engagement ----

func TestRecordEngagement_ClickMarksAndAudits(t *testing.T) {
	recos := &fakeRecoRepo{stored: map[uint64]*domain.Recommendation{
		7: {ID: "r", UserID: 1, ProductID: 7},
	}}
	engagements := &fakeEngagementRepo{}
	svc := newTestService(
		&fakeProfileRepo{}, &fakePrefsRepo{}, &fakeMeasurementRepo{},
		&fakeCatalogRepo{}, recos, engagements, nil,
	)

	err := svc.RecordEngagement(context.Background(), 1, 7, EventClick, map[string]any{"surface": "home"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recos.clicked) != 1 || recos.clicked[0] != 7 {
		t.Fatalf("expected product 7 marked clicked, got %v", recos.clicked)
	}
	if len(engagements.events) != 1 {
		t.Fatalf("expected 1 audit event, got %d", len(engagements.events))
	}
	event := engagements.events[0]
	if event.EventType != EventClick || event.ProductID != 7 || event.UserID != 1 {
		t.Fatalf("bad audit event: %+v", event)
	}
	if event.CreatedAt.IsZero() || time.Since(event.CreatedAt) > time.Minute {
		t.Fatalf("audit event timestamp not set: %+v", event)
	}
}

func TestRecordEngagement_PurchaseMarks(t *testing.T) {
	recos := &fakeRecoRepo{}
	engagements := &fakeEngagementRepo{}
	svc := newTestService(
		&fakeProfileRepo{}, &fakePrefsRepo{}, &fakeMeasurementRepo{},
		&fakeCatalogRepo{}, recos, engagements, nil,
	)

	if err := svc.RecordEngagement(context.Background(), 1, 9, EventPurchase, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recos.purchased) != 1 || recos.purchased[0] != 9 {
		t.Fatalf("expected product 9 marked purchased, got %v", recos.purchased)
	}
}

func TestRecordEngagement_RejectsUnknownEventType(t *testing.T) {
	engagements := &fakeEngagementRepo{}
	svc := newTestService(
		&fakeProfileRepo{}, &fakePrefsRepo{}, &fakeMeasurementRepo{},
		&fakeCatalogRepo{}, &fakeRecoRepo{}, engagements, nil,
	)

	if err := svc.RecordEngagement(context.Background(), 1, 9, "impression", nil); err == nil {
		t.Fatal("expected error for unknown event type")
	}
	if len(engagements.events) != 0 {
		t.Fatalf("no audit event may be written, got %d", len(engagements.events))
	}
}

func TestRecordEngagement_MissingRecommendationSurfacesError(t *testing.T) {
	recos := &fakeRecoRepo{markErr: domain.ErrRecommendationNotFound}
	svc := newTestService(
		&fakeProfileRepo{}, &fakePrefsRepo{}, &fakeMeasurementRepo{},
		&fakeCatalogRepo{}, recos, &fakeEngagementRepo{}, nil,
	)

	err := svc.RecordEngagement(context.Background(), 1, 9, EventClick, nil)
	if !errors.Is(err, domain.ErrRecommendationNotFound) {
		t.Fatalf("expected ErrRecommendationNotFound, got %v", err)
	}
}
