package payment_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"khqrpay/internal/api/controllers"
	"khqrpay/internal/gateway"
	"khqrpay/internal/repositories"
	"khqrpay/internal/services"
	"khqrpay/pkg/config"
)

var Module = fx.Provide(
	provideTransactionRepo,
	provideGateway,
	provideIntentService,
	provideStatusService,
	provideCallbackProcessor,
	controllers.NewPaymentController,
)

func provideTransactionRepo(db *gorm.DB) repositories.TransactionRepositoryInterface {
	return repositories.NewTransactionRepository(db)
}

func provideGateway(cfg config.Config, logger *zap.Logger) gateway.PspGatewayInterface {
	return gateway.NewBakongClient(cfg, logger)
}

func provideIntentService(
	repo repositories.TransactionRepositoryInterface,
	gw gateway.PspGatewayInterface,
	cfg config.Config,
	logger *zap.Logger,
) services.PaymentIntentServiceInterface {
	return services.NewPaymentIntentService(repo, gw, cfg, logger)
}

func provideStatusService(repo repositories.TransactionRepositoryInterface) services.StatusQueryServiceInterface {
	return services.NewStatusQueryService(repo)
}

func provideCallbackProcessor(
	repo repositories.TransactionRepositoryInterface,
	cfg config.Config,
	logger *zap.Logger,
) services.CallbackProcessorInterface {
	return services.NewCallbackProcessor(repo, cfg, logger)
}
