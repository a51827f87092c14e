package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"khqrpay/cmd/fx/config_fx"
	"khqrpay/cmd/fx/db_fx"
	"khqrpay/cmd/fx/logger_fx"
	"khqrpay/cmd/fx/payment_fx"
	"khqrpay/internal/api/controllers"
	"khqrpay/pkg/config"
	"khqrpay/pkg/middleware"
)

func main() {
	app := fx.New(
		config_fx.Module,
		logger_fx.Module,
		db_fx.Module,
		payment_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Printf("Starting HTTP server at :%s", cfg.Port)
				if err := engine.Run(":" + cfg.Port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(paymentController *controllers.PaymentController, cfg config.Config) *gin.Engine {
	r := gin.Default()
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, paymentController, cfg)

	return r
}

func RegisterRoutes(r *gin.Engine, paymentController *controllers.PaymentController, cfg config.Config) {
	api := r.Group("/api/v1")

	khqr := api.Group("/khqr")
	khqr.POST("/callback", paymentController.HandleCallback)

	merchant := khqr.Group("")
	merchant.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	merchant.POST("/generate", paymentController.GenerateKhqr)
	merchant.GET("/status/:reference", paymentController.GetPaymentStatus)
	merchant.GET("/transactions", paymentController.ListTransactions)

	r.GET("/healthz", paymentController.Healthz)
}
