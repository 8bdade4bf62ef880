package bootstrap

import (
	"bookhub/internal/domain/policy"
	"bookhub/internal/pkg/config"

	"go.uber.org/fx"
)

var PolicyModule = fx.Module("policy",
	fx.Provide(
		NewPolicyEngine,
	),
)

func NewPolicyEngine(cfg config.Config) *policy.Engine {
	return policy.NewEngine(policy.Limits{
		MaxActiveLoans:        cfg.Lending.MaxActiveLoans,
		MaxActiveReservations: cfg.Lending.MaxActiveReservations,
		MaxRenewals:           cfg.Lending.MaxRenewals,
		RenewalsAllowed:       cfg.Lending.RenewalsAllowed,
		LoanPeriodDays:        cfg.Lending.LoanPeriodDays,
		ReservationExpiryDays: cfg.Lending.ReservationExpiryDays,
	})
}
