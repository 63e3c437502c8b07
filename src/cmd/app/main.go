package main

import (
	"agent-portal-service/src/internal/config"
	"agent-portal-service/src/internal/worker"
	"agent-portal-service/src/pkg/log"
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/hibiken/asynq"
)

func main() {

	viperConfig := config.NewViper()
	viperConfig.SetDefault("log.level", "DEBUG")
	viperConfig.SetDefault("app.name", "AGENT_PORTAL_SERVICE")
	viperConfig.SetDefault("web.port", 8080)
	viperConfig.SetDefault("session.ttl", 12*time.Hour)
	viperConfig.SetDefault("backend.base_url", "https://api.datamartgh.shop")
	log.InitLogger(viperConfig)
	logger := log.GetLogger()
	config.LoadRedisConfig(viperConfig)
	redisClient := config.NewRedis()
	backendClient := config.NewBackendClient(viperConfig, logger)
	asynqClient := config.NewAsynqClient(viperConfig)
	asynqServer := config.NewAsynqServer(viperConfig)
	asynqMux := asynq.NewServeMux()
	validate := config.NewValidator()
	app := config.NewFiber(viperConfig)
	config.Bootstrap(&config.BootstrapConfig{
		App:         app,
		Log:         logger,
		Validate:    validate,
		Config:      viperConfig,
		Redis:       redisClient,
		Backend:     backendClient,
		AsynqClient: asynqClient,
		Async:       asynqMux,
	})

	schedulerCtx, stopScheduler := context.WithCancel(context.Background())
	worker.Schedule(schedulerCtx, asynqClient, viperConfig, logger)

	go func() {
		if err := asynqServer.Run(asynqMux); err != nil {
			logger.Error("main", fmt.Sprintf("Failed to start background worker: %v", err), "main", "")
		}
	}()

	done := make(chan bool)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)

	go func() {
		<-quit
		logger.Info("main", "Server agent-portal-service is shutting down...", "graceful", "")

		stopScheduler()
		asynqServer.Shutdown()

		_, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := app.Shutdown(); err != nil {
			logger.Error("main", fmt.Sprintf("Error during shutdown: %v", err), "graceful", "")
		}
		close(done)
	}()

	webPort := viperConfig.GetInt("web.port")
	if err := app.Listen(fmt.Sprintf(":%d", webPort)); err != nil {
		logger.Error("main", fmt.Sprintf("Failed to start server: %v", err), "main", "")
	}

	<-done
	logger.Info("main", fmt.Sprintf("Server %s stopped", viperConfig.GetString("app.name")), "graceful", "")
}
