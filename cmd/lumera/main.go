package main

import (
	"context"
	"log/slog"
	"os"

	"lumera/config"
	"lumera/internal/delivery"
	"lumera/internal/delivery/api"
	"lumera/internal/delivery/api/middleware"
	"lumera/internal/delivery/api/router/handler"
	"lumera/internal/domain/pricing"
	"lumera/internal/infra/auth"
	"lumera/internal/infra/auth/google"
	"lumera/internal/infra/cache"
	logs "lumera/internal/infra/log"
	"lumera/internal/infra/mail"
	"lumera/internal/infra/payment/razorpay"
	"lumera/internal/infra/persistence/mongodb"
	"lumera/internal/infra/persistence/postgres"
	"lumera/internal/infra/pubsub"
	"lumera/internal/infra/qrcode"
	"lumera/internal/infra/storage"
	"lumera/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
		mongodb.New,
		cache.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewAuthRepository,
			postgres.NewRefreshTokenRepository,
			postgres.NewPasswordResetRepository,
			postgres.NewOrderRepository,
			postgres.NewCouponRepository,
			postgres.NewTransactionManager,
			mongodb.NewProductRepository,
			mongodb.NewCollectionRepository,
			mongodb.NewMediaRepository,
			cache.NewCartRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			pricing.NewCalculator,
			auth.NewBcryptHasher,
			auth.NewJWTService,
			google.NewAuthService,
			cache.NewCatalogCache,
			storage.New,
			mail.NewSMTPMailer,
			razorpay.NewGateway,
			qrcode.NewQRCodeService,
			pubsub.NewEventPublisher,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewPasswordResetService,
			impl.NewCatalogService,
			impl.NewMediaService,
			impl.NewCartService,
			impl.NewConfiguratorService,
			impl.NewCheckoutService,
			impl.NewPaymentService,
			impl.NewOrderService,
			impl.NewCouponService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewCatalogHandler,
			handler.NewMediaHandler,
			handler.NewCartHandler,
			handler.NewCheckoutHandler,
			handler.NewPaymentHandler,
			handler.NewOrderHandler,
			handler.NewCouponHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
