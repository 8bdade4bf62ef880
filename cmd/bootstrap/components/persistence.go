package components

import (
	"bookhub/internal/infra/readstore"
	"bookhub/internal/infra/uow"
	"bookhub/internal/usecase/queries"
	"bookhub/internal/usecase/shared"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		// UnitOfWork owns the write side; repositories are reachable only
		// through its transactions.
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		// Read stores query the pool directly, outside any transaction.
		fx.Annotate(
			readstore.NewBookReadStore,
			fx.As(new(queries.BookViewRepo)),
		),
		fx.Annotate(
			readstore.NewLoanReadStore,
			fx.As(new(queries.LoanViewRepo)),
		),
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationViewRepo)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserViewRepo)),
			fx.As(new(queries.UserReadStore)),
		),
	),
)
