package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/sparkconnect/directory/internal/api"
	"github.com/sparkconnect/directory/internal/core/domain"
	"github.com/sparkconnect/directory/internal/core/ports"
	"github.com/sparkconnect/directory/internal/core/service"
	"github.com/sparkconnect/directory/internal/infrastructure/config"
	mongodb "github.com/sparkconnect/directory/internal/infrastructure/db/mongo"
	redisdb "github.com/sparkconnect/directory/internal/infrastructure/db/redis"
	"github.com/sparkconnect/directory/internal/infrastructure/google"
	"github.com/sparkconnect/directory/internal/infrastructure/mail"
	"github.com/sparkconnect/directory/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "no .env file loaded: %v\n", err)
	}
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Dependencies ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	repo := mongodb.NewUserRepository(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}
	if err := seedDirectory(ctx, repo); err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}

	mailLog := logger.Component("mail")
	mailQueue := mail.NewQueue(0, mail.NewSMTPMailer(mail.Config{
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		Username: cfg.Mail.Username,
		Password: cfg.Mail.Password,
		Sender:   cfg.Mail.Sender,
	}, mailLog), mailLog)
	mailQueue.Start(ctx)

	authService := service.NewAuthService(repo,
		google.NewVerifier(cfg.GoogleClientID),
		mailQueue,
		cfg.SecretKey, cfg.ResetURL, time.Hour, logger.Component("auth"))
	directoryService := service.NewDirectoryService(repo, logger.Component("directory"))
	mediaService := service.NewMediaService(cfg.UploadDir, cfg.UploadPrefix, logger.Component("media"))
	sessions := redisdb.NewSessionStore(rdb)

	e := api.NewRouter(api.Dependencies{
		DB:        db,
		Redis:     rdb,
		Auth:      authService,
		Directory: directoryService,
		Media:     mediaService,
		Sessions:  sessions,
		UploadDir: cfg.UploadDir,
		Log:       log,
	})

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(addr); err != nil {
			log.Info().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// seedDirectory bootstraps an empty database with the default directory and
// the administrative account. A non-empty database is left untouched.
func seedDirectory(ctx context.Context, repo ports.UserRepository) error {
	n, err := repo.Count(ctx)
	if err != nil || n > 0 {
		return err
	}

	for _, acc := range domain.SeedAccounts() {
		hash, err := bcrypt.GenerateFromPassword([]byte(acc.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash seed password: %w", err)
		}
		listing := acc.Listing
		listing.Email = acc.Email
		listing.PasswordHash = string(hash)
		if _, err := repo.Create(ctx, &listing); err != nil {
			return fmt.Errorf("seed %s: %w", acc.Email, err)
		}
	}
	return nil
}
