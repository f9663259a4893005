//go:build !integration

package profile

import (
	"context"
	"errors"
	"math"
	"testing"

	"skinMatch/domain"

	"gorm.io/datatypes"
)

type fakeProfileRepo struct {
	profiles map[uint]domain.SkinProfile
	saved    []domain.SkinProfile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uint]domain.SkinProfile)}
}

func (f *fakeProfileRepo) FindByUserID(_ context.Context, userID uint) (domain.SkinProfile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return domain.SkinProfile{}, domain.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfileRepo) Save(_ context.Context, profile *domain.SkinProfile) error {
	f.profiles[profile.UserID] = *profile
	f.saved = append(f.saved, *profile)
	return nil
}

func (f *fakeProfileRepo) UpdateAggregates(_ context.Context, userID uint, avgScore float64, totalEvaluations int) error {
	p, ok := f.profiles[userID]
	if !ok {
		return domain.ErrProfileNotFound
	}
	p.AvgSkinScore = avgScore
	p.TotalEvaluations = totalEvaluations
	f.profiles[userID] = p
	return nil
}

func TestSaveProfile_RejectsInvalidSkinType(t *testing.T) {
	svc := NewProfileService(newFakeProfileRepo())

	_, err := svc.SaveProfile(context.Background(), 1, "metallic", nil)
	if err == nil || err.Error() != "invalid skin type" {
		t.Fatalf("expected invalid skin type error, got %v", err)
	}
}

func TestSaveProfile_PreservesAggregatesOnReplace(t *testing.T) {
	repo := newFakeProfileRepo()
	repo.profiles[1] = domain.SkinProfile{
		UserID:           1,
		SkinType:         domain.SkinTypeDry,
		AvgSkinScore:     72.5,
		TotalEvaluations: 4,
	}

	svc := NewProfileService(repo)

	saved, err := svc.SaveProfile(context.Background(), 1, domain.SkinTypeOily, []string{"pore"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.SkinType != domain.SkinTypeOily {
		t.Fatalf("skin type not replaced: %+v", saved)
	}
	if saved.AvgSkinScore != 72.5 || saved.TotalEvaluations != 4 {
		t.Fatalf("aggregates must survive a profile edit: %+v", saved)
	}
}

func TestRecordEvaluation_RunningAverage(t *testing.T) {
	repo := newFakeProfileRepo()
	repo.profiles[1] = domain.SkinProfile{
		UserID:   1,
		SkinType: domain.SkinTypeNormal,
		Concerns: datatypes.NewJSONSlice([]string{}),
	}

	svc := NewProfileService(repo)

	scores := []float64{80, 60, 70}
	for _, score := range scores {
		if err := svc.RecordEvaluation(context.Background(), 1, score); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	got := repo.profiles[1]
	if got.TotalEvaluations != 3 {
		t.Fatalf("expected 3 evaluations, got %d", got.TotalEvaluations)
	}
	if math.Abs(got.AvgSkinScore-70) > 1e-9 {
		t.Fatalf("expected running average 70, got %v", got.AvgSkinScore)
	}
}

func TestRecordEvaluation_MissingProfileFails(t *testing.T) {
	svc := NewProfileService(newFakeProfileRepo())

	err := svc.RecordEvaluation(context.Background(), 42, 80)
	if !errors.Is(err, domain.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}
