package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/crimewatch/backend/internal/api"
	"github.com/crimewatch/backend/internal/pkg/constants"
	"github.com/crimewatch/backend/internal/pkg/logger"
	"github.com/crimewatch/backend/internal/pkg/store"
	"github.com/crimewatch/backend/internal/pkg/store/xpgx"
	"github.com/crimewatch/backend/migrations"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := initConfig(); err != nil {
		logger.Fatalf(ctx, "read config: %s", err.Error())
	}
	if viper.GetBool(constants.ViperDevMode) {
		logger.Init(zap.Must(zap.NewDevelopment()))
	}
	defer logger.Sync()

	dsn := viper.GetString(constants.ViperDatabaseURL)

	pool, err := xpgx.NewPool(ctx, dsn)
	if err != nil {
		logger.Fatalf(ctx, "connect to postgres: %s", err.Error())
	}
	defer pool.Close()

	// The database may still be coming up alongside us.
	ping := func() error { return pool.Ping(ctx) }
	if err := backoff.Retry(ping, backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 10), ctx)); err != nil {
		logger.Fatalf(ctx, "ping postgres: %s", err.Error())
	}

	if err := runMigrations(dsn); err != nil {
		logger.Fatalf(ctx, "apply migrations: %s", err.Error())
	}

	if dir := viper.GetString(constants.ViperUploadDir); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Fatalf(ctx, "create upload dir: %s", err.Error())
		}
	}

	svc, err := api.NewAPIService(store.NewStore(pool))
	if err != nil {
		logger.Fatalf(ctx, "init api: %s", err.Error())
	}

	addr := viper.GetString(constants.ViperListenAddr)
	logger.Infof(ctx, "listening on %s", addr)
	go svc.Serve(addr)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := svc.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(shutdownCtx, "shutdown: %s", err.Error())
	}
}

func initConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault(constants.ViperListenAddr, ":8080")
	viper.SetDefault(constants.ViperUploadDir, "uploads")
	viper.SetDefault(constants.ViperCORSOrigins, []string{"*"})

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}

	return nil
}

func runMigrations(dsn string) error {
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("iofs.New: %w", err)
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("sql.Open: %w", err)
	}

	driver, err := migratepgx.WithInstance(db, &migratepgx.Config{})
	if err != nil {
		return fmt.Errorf("migratepgx.WithInstance: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "pgx5", driver)
	if err != nil {
		return fmt.Errorf("migrate.NewWithInstance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate.Up: %w", err)
	}

	return nil
}
