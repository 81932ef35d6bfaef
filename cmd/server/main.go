package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	_ "github.com/campuscare/complaint-api/docs"
	"github.com/campuscare/complaint-api/internal/api"
	"github.com/campuscare/complaint-api/internal/core/domain"
	"github.com/campuscare/complaint-api/internal/core/ports"
	"github.com/campuscare/complaint-api/internal/infrastructure/config"
	mongoinfra "github.com/campuscare/complaint-api/internal/infrastructure/db/mongo"
	redisinfra "github.com/campuscare/complaint-api/internal/infrastructure/db/redis"
	"github.com/campuscare/complaint-api/internal/infrastructure/storage"
	"github.com/campuscare/complaint-api/pkg/logger"
)

// @title        College Complaint Portal API
// @version      1.0
// @description  REST API for filing, triaging and resolving campus complaints.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongoinfra.Connect(ctx, mongoinfra.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	rdb, err := redisinfra.Connect(ctx, redisinfra.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	complaintRepo := mongoinfra.NewComplaintRepository(db)
	userRepo := mongoinfra.NewUserRepository(db)

	if err := complaintRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("complaint indexes failed")
	}
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user indexes failed")
	}

	if err := ensureAdmin(ctx, userRepo, cfg.Admin); err != nil {
		log.Fatal().Err(err).Msg("admin bootstrap failed")
	}

	uploads, err := storage.NewUploadStore(cfg.Uploads.Dir, cfg.Uploads.MaxFileSize)
	if err != nil {
		log.Fatal().Err(err).Msg("upload store initialisation failed")
	}

	e := api.NewRouter(db, rdb, uploads, cfg.JWTSecret, log)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}

// ensureAdmin creates the bootstrap admin account when it does not already
// exist, so a fresh deployment is administrable out of the box.
func ensureAdmin(ctx context.Context, users ports.UserRepository, cfg config.AdminConfig) error {
	_, err := users.FindByEmail(ctx, cfg.Email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = users.Create(ctx, &domain.User{
		Name:         cfg.Name,
		Email:        cfg.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	return err
}
