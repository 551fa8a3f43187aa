package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/bagbupads/hiba-pneumo/internal/config"
	"github.com/bagbupads/hiba-pneumo/internal/database"
	"github.com/bagbupads/hiba-pneumo/internal/httpapi"
	"github.com/bagbupads/hiba-pneumo/internal/logger"
	"github.com/bagbupads/hiba-pneumo/internal/repository"
	"github.com/bagbupads/hiba-pneumo/internal/service"
	"github.com/bagbupads/hiba-pneumo/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "hiba-pneumo")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	{
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn("redis unavailable, danger flag caching degraded", zap.Error(err))
		}
		cancel()
	}
	kv := store.NewRedisKV(redisClient)

	patientsRepo := repository.NewPostgresPatientsRepo(db, log)
	vitalsRepo := repository.NewPostgresVitalSignsRepo(db, log)
	analysesRepo := repository.NewPostgresAnalysesRepo(db, log)

	monitoringSvc := service.NewMonitoringService(patientsRepo, vitalsRepo, analysesRepo, kv, cfg, log)
	rosterSvc := service.NewRosterService(patientsRepo, vitalsRepo, analysesRepo, kv, cfg, log)
	patientSvc := service.NewPatientService(patientsRepo, log)

	monitoringHandler := httpapi.NewMonitoringHandler(monitoringSvc, log)
	patientHandler := httpapi.NewPatientHandler(patientSvc, log)
	rosterHandler := httpapi.NewRosterHandler(rosterSvc, log)
	diagHandler := httpapi.NewDiagHandler(db, redisClient, log)
	diagHandler.EnablePprof(os.Getenv("PPROF_ENABLED") == "true")

	router := httpapi.NewRouter(log)
	router.RegisterMonitoringRoutes(monitoringHandler)
	router.RegisterPatientRoutes(patientHandler, monitoringHandler)
	router.RegisterRosterRoutes(rosterHandler)
	router.RegisterDiagRoutes(diagHandler)

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
	case err := <-errCh:
		log.Error("server stopped", zap.Error(err))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
	_ = redisClient.Close()
}
