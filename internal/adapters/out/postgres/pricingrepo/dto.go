// Package pricingrepo stores the pricing configuration: academic levels,
// service types, deadlines, languages, the rate table and presets.
package pricingrepo

import (
	"paperdesk/internal/core/domain/model/kernel"
	"paperdesk/internal/core/domain/model/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AcademicLevelDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" yaml:"id"`
	Name string    `gorm:"type:varchar(64);not null;uniqueIndex" yaml:"name"`
	Tier string    `gorm:"type:varchar(32);not null" yaml:"tier"`
}

func (AcademicLevelDTO) TableName() string {
	return "academic_levels"
}

type ServiceTypeDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" yaml:"id"`
	Name            string          `gorm:"type:varchar(64);not null;uniqueIndex" yaml:"name"`
	AdjustmentKind  string          `gorm:"type:varchar(16);not null" yaml:"adjustment_kind"`
	AdjustmentValue decimal.Decimal `gorm:"type:numeric(12,4);not null" yaml:"adjustment_value"`
}

func (ServiceTypeDTO) TableName() string {
	return "service_types"
}

type DeadlineTypeDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey" yaml:"id"`
	Name  string    `gorm:"type:varchar(64);not null;uniqueIndex" yaml:"name"`
	Hours int       `gorm:"not null" yaml:"hours"`
}

func (DeadlineTypeDTO) TableName() string {
	return "deadline_types"
}

type LanguageDTO struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey" yaml:"id"`
	Name             string          `gorm:"type:varchar(64);not null;uniqueIndex" yaml:"name"`
	SurchargePercent decimal.Decimal `gorm:"type:numeric(6,2);not null" yaml:"surcharge_percent"`
}

func (LanguageDTO) TableName() string {
	return "languages"
}

type RateDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" yaml:"id"`
	Hours         int             `gorm:"not null;uniqueIndex" yaml:"hours"`
	HighSchool    decimal.Decimal `gorm:"type:numeric(12,2);not null" yaml:"high_school"`
	UnderGraduate decimal.Decimal `gorm:"type:numeric(12,2);not null" yaml:"under_graduate"`
	Masters       decimal.Decimal `gorm:"type:numeric(12,2);not null" yaml:"masters"`
	PhD           decimal.Decimal `gorm:"column:phd;type:numeric(12,2);not null" yaml:"phd"`
}

func (RateDTO) TableName() string {
	return "pricing_rates"
}

type PresetDTO struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey" yaml:"id"`
	AcademicLevelID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_pricing_presets_combo" yaml:"academic_level_id"`
	ServiceTypeID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_pricing_presets_combo" yaml:"service_type_id"`
	DeadlineTypeID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_pricing_presets_combo" yaml:"deadline_type_id"`
	BasePricePerPage decimal.Decimal `gorm:"type:numeric(12,2);not null" yaml:"base_price_per_page"`
	Multiplier       decimal.Decimal `gorm:"type:numeric(8,4);not null" yaml:"multiplier"`
}

func (PresetDTO) TableName() string {
	return "pricing_presets"
}

func (d AcademicLevelDTO) toDomain() (pricing.AcademicLevel, error) {
	id, err := kernel.UUIDFromGoogle(d.ID)
	if err != nil {
		return pricing.AcademicLevel{}, err
	}
	return pricing.AcademicLevel{ID: id, Name: d.Name, Tier: pricing.Tier(d.Tier)}, nil
}

func (d ServiceTypeDTO) toDomain() (pricing.ServiceType, error) {
	id, err := kernel.UUIDFromGoogle(d.ID)
	if err != nil {
		return pricing.ServiceType{}, err
	}
	return pricing.ServiceType{
		ID:              id,
		Name:            d.Name,
		AdjustmentKind:  pricing.AdjustmentKind(d.AdjustmentKind),
		AdjustmentValue: d.AdjustmentValue,
	}, nil
}

func (d DeadlineTypeDTO) toDomain() (pricing.DeadlineType, error) {
	id, err := kernel.UUIDFromGoogle(d.ID)
	if err != nil {
		return pricing.DeadlineType{}, err
	}
	return pricing.DeadlineType{ID: id, Name: d.Name, Hours: d.Hours}, nil
}

func (d LanguageDTO) toDomain() (pricing.Language, error) {
	id, err := kernel.UUIDFromGoogle(d.ID)
	if err != nil {
		return pricing.Language{}, err
	}
	return pricing.Language{ID: id, Name: d.Name, SurchargePercent: d.SurchargePercent}, nil
}

func (d RateDTO) toDomain() (pricing.RateRow, error) {
	id, err := kernel.UUIDFromGoogle(d.ID)
	if err != nil {
		return pricing.RateRow{}, err
	}
	return pricing.RateRow{
		ID:            id,
		Hours:         d.Hours,
		HighSchool:    kernel.MoneyFromDecimal(d.HighSchool),
		UnderGraduate: kernel.MoneyFromDecimal(d.UnderGraduate),
		Masters:       kernel.MoneyFromDecimal(d.Masters),
		PhD:           kernel.MoneyFromDecimal(d.PhD),
	}, nil
}

func (d PresetDTO) toDomain() (pricing.Preset, error) {
	var (
		p   pricing.Preset
		err error
	)
	if p.ID, err = kernel.UUIDFromGoogle(d.ID); err != nil {
		return pricing.Preset{}, err
	}
	if p.AcademicLevelID, err = kernel.UUIDFromGoogle(d.AcademicLevelID); err != nil {
		return pricing.Preset{}, err
	}
	if p.ServiceTypeID, err = kernel.UUIDFromGoogle(d.ServiceTypeID); err != nil {
		return pricing.Preset{}, err
	}
	if p.DeadlineTypeID, err = kernel.UUIDFromGoogle(d.DeadlineTypeID); err != nil {
		return pricing.Preset{}, err
	}
	p.BasePricePerPage = kernel.MoneyFromDecimal(d.BasePricePerPage)
	p.Multiplier = d.Multiplier
	return p, nil
}

func (d AcademicLevelDTO) validate() error {
	v, err := d.toDomain()
	if err != nil {
		return err
	}
	return v.Validate()
}

func (d ServiceTypeDTO) validate() error {
	v, err := d.toDomain()
	if err != nil {
		return err
	}
	return v.Validate()
}

func (d DeadlineTypeDTO) validate() error {
	v, err := d.toDomain()
	if err != nil {
		return err
	}
	return v.Validate()
}

func (d LanguageDTO) validate() error {
	v, err := d.toDomain()
	if err != nil {
		return err
	}
	return v.Validate()
}

func (d RateDTO) validate() error {
	v, err := d.toDomain()
	if err != nil {
		return err
	}
	return v.Validate()
}

func (d PresetDTO) validate() error {
	v, err := d.toDomain()
	if err != nil {
		return err
	}
	return v.Validate()
}
