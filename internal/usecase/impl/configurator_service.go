package impl

import (
	"context"
	"log/slog"

	deliverycontext "lumera/internal/delivery/context"
	"lumera/internal/domain/configurator"
	"lumera/internal/usecase"
)

type configuratorService struct {
	logger *slog.Logger
}

// NewConfiguratorService is the constructor for configuratorService.
func NewConfiguratorService(logger *slog.Logger) usecase.ConfiguratorUsecase {
	return &configuratorService{logger: logger}
}

func (srv *configuratorService) Options(_ context.Context) configurator.Catalog {
	return configurator.DefaultCatalog()
}

// Quote prices a build for the given quantity and reports which steps may proceed.
func (srv *configuratorService) Quote(ctx context.Context, cfg configurator.Configuration, quantity int) *usecase.ConfiguratorQuote {
	quantity = configurator.ClampQuantity(quantity)
	unit := cfg.Price()

	quote := &usecase.ConfiguratorQuote{
		UnitPrice:   unit,
		Quantity:    quantity,
		Total:       unit * int64(quantity),
		Gates:       configurator.Gates(cfg),
		CanAddToBag: cfg.CanAddToBag(),
	}

	if problems := cfg.Validate(); len(problems) > 0 {
		quote.Problems = problems
		quote.CanAddToBag = false
		deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Debug("Configurator quote has problems", slog.Any("problems", problems))
	}

	return quote
}
