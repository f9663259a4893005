package postgres

import (
	"context"
	"encoding/json"

	"skinMatch/business/reco"
	"skinMatch/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RecoConfigRepository struct {
	DB *gorm.DB
}

var _ reco.ConfigRepository = (*RecoConfigRepository)(nil)

func NewRecoConfigRepository(db *gorm.DB) *RecoConfigRepository {
	return &RecoConfigRepository{DB: db}
}

func (r *RecoConfigRepository) GetConfig(ctx context.Context, scope string) (domain.RecoConfig, bool, error) {
	var cfg domain.RecoConfig

	err := r.DB.WithContext(ctx).
		Where("scope = ?", scope).
		First(&cfg).Error
	if err == gorm.ErrRecordNotFound {
		return domain.RecoConfig{}, false, nil
	}
	if err != nil {
		return domain.RecoConfig{}, false, err
	}

	if len(cfg.WeightsRaw) > 0 {
		_ = json.Unmarshal(cfg.WeightsRaw, &cfg.Weights)
	}
	return cfg, true, nil
}

func (r *RecoConfigRepository) UpsertConfig(ctx context.Context, cfg domain.RecoConfig) error {
	// if Weights struct is set but WeightsRaw is empty, serialize it
	if len(cfg.WeightsRaw) == 0 && (cfg.Weights != (domain.RecoWeights{})) {
		raw, _ := json.Marshal(cfg.Weights)
		cfg.WeightsRaw = raw
	}
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "scope"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"result_limit",
				"weights",
			}),
		}).
		Create(&cfg).Error
}
