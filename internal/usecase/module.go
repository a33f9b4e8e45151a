package usecase

import (
	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewLedgerUseCase,
	NewRedemptionUseCase,
	NewOrderUseCase,
	NewAuthUseCase,
	NewUserUseCase,
	NewProductUseCase,
	NewRewardUseCase,
	NewAnnouncementUseCase,
	newOrderSettings,
	newAuthSettings,
)

func newOrderSettings(cfg *config.Config) OrderSettings {
	return OrderSettings{
		ReferralPercentage: cfg.ReferralPercentage,
		StrictTransitions:  cfg.StrictOrderTransitions,
	}
}

func newAuthSettings(cfg *config.Config) AuthSettings {
	return AuthSettings{StartingCredits: cfg.StartingCredits}
}
