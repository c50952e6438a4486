package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/scribehq/scribe/internal/api"
	"github.com/scribehq/scribe/internal/app"
	"github.com/scribehq/scribe/internal/app/maintenance"
	iauth "github.com/scribehq/scribe/internal/auth"
	"github.com/scribehq/scribe/internal/database"
	"github.com/scribehq/scribe/internal/services"
	"github.com/scribehq/scribe/internal/store"
	"github.com/scribehq/scribe/pkg/logger"
	"github.com/scribehq/scribe/pkg/mail"
)

// runtimeStack bundles long-lived services used by the HTTP server.
type runtimeStack struct {
	DB      *gorm.DB
	AuthSvc *services.AuthService
	NoteSvc *services.NoteService
	Cleaner *maintenance.Cleaner
	Router  *gin.Engine
}

// bootstrapRuntime initialises the database, services, background jobs, and the HTTP router.
func bootstrapRuntime(cfg *app.Config, log *zap.Logger) (*runtimeStack, error) {
	stack := &runtimeStack{}
	var err error
	success := false

	defer func() {
		if !success {
			stack.Shutdown(context.Background(), log)
		}
	}()

	// enable gin debug mode only when explicitly requested
	if debug, _ := os.LookupEnv("GIN_DEBUG"); debug != "true" {
		gin.SetMode(gin.ReleaseMode)
	}

	stack.DB, err = initialiseDatabase(cfg)
	if err != nil {
		return nil, err
	}

	users, err := store.NewUsers(stack.DB)
	if err != nil {
		return nil, fmt.Errorf("initialise user store: %w", err)
	}
	notes, err := store.NewNotes(stack.DB)
	if err != nil {
		return nil, fmt.Errorf("initialise note store: %w", err)
	}
	codes, err := store.NewOtpCodes(stack.DB)
	if err != nil {
		return nil, fmt.Errorf("initialise otp store: %w", err)
	}

	jwtSvc, err := iauth.NewJWTService(cfg.Auth.JWTServiceConfig())
	if err != nil {
		return nil, fmt.Errorf("initialise jwt service: %w", err)
	}

	mailer, err := mail.NewMailer(cfg.Email.MailerSettings())
	if err != nil {
		return nil, fmt.Errorf("initialise mailer: %w", err)
	}

	stack.AuthSvc, err = services.NewAuthService(services.AuthServiceConfig{
		Users:  users,
		Codes:  codes,
		Tokens: jwtSvc,
		Mailer: mailer,
		OTPTTL: cfg.Auth.OTPTTL(),
		Logger: logger.WithModule("auth"),
	})
	if err != nil {
		return nil, fmt.Errorf("initialise auth service: %w", err)
	}

	stack.NoteSvc, err = services.NewNoteService(notes)
	if err != nil {
		return nil, fmt.Errorf("initialise note service: %w", err)
	}

	if cfg.Maintenance.OTPCleanup.Enabled {
		stack.Cleaner = maintenance.NewCleaner(codes,
			maintenance.WithSchedule(cfg.Maintenance.OTPCleanup.Schedule))
		if err := stack.Cleaner.Start(); err != nil {
			return nil, fmt.Errorf("start maintenance jobs: %w", err)
		}
	}

	stack.Router, err = api.NewRouter(cfg, api.Deps{
		DB:    stack.DB,
		JWT:   jwtSvc,
		Auth:  stack.AuthSvc,
		Notes: stack.NoteSvc,
	})
	if err != nil {
		return nil, fmt.Errorf("build api router: %w", err)
	}

	success = true
	return stack, nil
}

// Shutdown gracefully stops background jobs and releases resources.
func (s *runtimeStack) Shutdown(ctx context.Context, log *zap.Logger) {
	if s == nil {
		return
	}

	if s.Cleaner != nil {
		stopCtx := s.Cleaner.Stop()
		if stopCtx != nil {
			ctx = stopCtx
		}
		if err := s.Cleaner.RunOnce(ctx); err != nil {
			log.Warn("maintenance shutdown cleanup failed", zap.Error(err))
		}
	}

	if s.DB != nil {
		closeDatabase(s.DB, log)
	}
}

func initialiseDatabase(cfg *app.Config) (*gorm.DB, error) {
	dbCfg := cfg.Database.Connection()
	db, err := database.Open(dbCfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("auto-migrate database: %w", err)
	}

	log := logger.WithModule("database")
	log.Info("database connected", zap.String("driver", strings.ToLower(strings.TrimSpace(dbCfg.Driver))))

	return db, nil
}

func closeDatabase(db *gorm.DB, log *zap.Logger) {
	if db == nil {
		return
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Warn("failed to obtain underlying sql DB for closing", zap.Error(err))
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Warn("failed to close database", zap.Error(err))
	}
}
