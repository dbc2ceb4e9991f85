package pricingrepo

import (
	"context"
	"errors"

	"paperdesk/internal/core/domain/model/kernel"
	"paperdesk/internal/core/domain/model/pricing"
	"paperdesk/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPricingRepository implements ports.PricingRepository. It only reads;
// the tables are filled by Seed and edited by administrators.
type GormPricingRepository struct {
	db *gorm.DB
}

func NewGormPricingRepository(db *gorm.DB) *GormPricingRepository {
	return &GormPricingRepository{db: db}
}

func (r *GormPricingRepository) GetAcademicLevel(ctx context.Context, id kernel.UUID) (pricing.AcademicLevel, error) {
	var dto AcademicLevelDTO
	if err := r.first(ctx, &dto, "academic level", id); err != nil {
		return pricing.AcademicLevel{}, err
	}
	return dto.toDomain()
}

func (r *GormPricingRepository) GetServiceType(ctx context.Context, id kernel.UUID) (pricing.ServiceType, error) {
	var dto ServiceTypeDTO
	if err := r.first(ctx, &dto, "service type", id); err != nil {
		return pricing.ServiceType{}, err
	}
	return dto.toDomain()
}

func (r *GormPricingRepository) GetDeadlineType(ctx context.Context, id kernel.UUID) (pricing.DeadlineType, error) {
	var dto DeadlineTypeDTO
	if err := r.first(ctx, &dto, "deadline type", id); err != nil {
		return pricing.DeadlineType{}, err
	}
	return dto.toDomain()
}

func (r *GormPricingRepository) GetLanguage(ctx context.Context, id kernel.UUID) (pricing.Language, error) {
	var dto LanguageDTO
	if err := r.first(ctx, &dto, "language", id); err != nil {
		return pricing.Language{}, err
	}
	return dto.toDomain()
}

func (r *GormPricingRepository) FindPreset(
	ctx context.Context, levelID, serviceID, deadlineID kernel.UUID,
) (*pricing.Preset, error) {
	var dtos []PresetDTO
	err := r.db.WithContext(ctx).
		Where("academic_level_id = ? AND service_type_id = ? AND deadline_type_id = ?",
			levelID.Bytes(), serviceID.Bytes(), deadlineID.Bytes()).
		Limit(1).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}
	if len(dtos) == 0 {
		return nil, nil
	}

	preset, err := dtos[0].toDomain()
	if err != nil {
		return nil, err
	}
	return &preset, nil
}

// ListRates returns the rate table ordered by bucket size.
func (r *GormPricingRepository) ListRates(ctx context.Context) ([]pricing.RateRow, error) {
	var dtos []RateDTO
	if err := r.db.WithContext(ctx).Order("hours").Find(&dtos).Error; err != nil {
		return nil, err
	}

	rows := make([]pricing.RateRow, 0, len(dtos))
	for _, dto := range dtos {
		row, err := dto.toDomain()
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (r *GormPricingRepository) first(ctx context.Context, dest any, name string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).Where("id = ?", id.Bytes()).First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError(name, id)
	}
	return err
}
