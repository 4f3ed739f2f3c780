package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	httpadp "ebursary-backend/internal/adapter/http"
	"ebursary-backend/internal/adapter/middleware"
	"ebursary-backend/internal/adapter/repository/mysql"
	"ebursary-backend/internal/config"
	"ebursary-backend/internal/domain/application"
	"ebursary-backend/internal/domain/history"
	"ebursary-backend/internal/infrastructure/cache"
	"ebursary-backend/internal/infrastructure/db"
	"ebursary-backend/internal/infrastructure/logger"
	allocuc "ebursary-backend/internal/usecase/allocation"
	appuc "ebursary-backend/internal/usecase/application"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid config", zap.Error(err))
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN(), db.ParseLogLevel(cfg.GormLogLevel), log)
	if err != nil {
		log.Fatal("mysql connect failed", zap.Error(err))
	}
	if err := gdb.AutoMigrate(&application.Application{}, &history.Entry{}); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, 3*time.Second)
	if err != nil {
		log.Fatal("redis connect failed", zap.Error(err))
	}
	defer rdb.Close()

	apps := mysql.NewApplicationRepository(gdb)
	hist := mysql.NewHistoryRepository(gdb)
	tx := mysql.NewGormUoW(gdb)

	h := httpadp.NewHandler()
	appHandler := httpadp.NewApplicationHandler(appuc.NewUsecase(apps, hist, tx, log))
	allocHandler := httpadp.NewAllocationHandler(allocuc.NewUsecase(apps, tx, cfg.Location(), log))

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Recover(), echomw.RequestID())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				log.Error("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			log.Info("request", fields...)
			return nil
		},
	}))

	// routes
	e.GET("/health", h.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api",
		middleware.JWTAuth([]byte(cfg.JWTSecret)),
		middleware.IdempotencyMiddleware(rdb, cfg.IdempTTL(), log),
	)
	httpadp.RegisterRoutes(api, h, appHandler, allocHandler)

	addr := ":" + cfg.AppPort
	go func() {
		log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.AppEnv))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
}
