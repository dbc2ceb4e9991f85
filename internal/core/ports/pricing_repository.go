package ports

import (
	"context"

	"paperdesk/internal/core/domain/model/kernel"
	"paperdesk/internal/core/domain/model/pricing"
)

// PricingRepository reads the pricing configuration. It satisfies
// services.PricingCatalog.
type PricingRepository interface {
	GetAcademicLevel(ctx context.Context, id kernel.UUID) (pricing.AcademicLevel, error)
	GetServiceType(ctx context.Context, id kernel.UUID) (pricing.ServiceType, error)
	GetDeadlineType(ctx context.Context, id kernel.UUID) (pricing.DeadlineType, error)
	GetLanguage(ctx context.Context, id kernel.UUID) (pricing.Language, error)

	// FindPreset returns nil, nil when no preset exists for the combination.
	FindPreset(ctx context.Context, levelID, serviceID, deadlineID kernel.UUID) (*pricing.Preset, error)

	ListRates(ctx context.Context) ([]pricing.RateRow, error)
}
