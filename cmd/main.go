package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"travel-kernel/cmd/bootstrap"
	"travel-kernel/internal/handler/middleware"
	"travel-kernel/internal/infra/db"
	"travel-kernel/internal/pkg/config"
	"travel-kernel/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func init() {
	// 設定ミスでもデバッグ情報を公開しない（フェイルセーフ）
	gin.SetMode(gin.ReleaseMode)

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}
}

func newRootCmd() *cobra.Command {
	serve := newServeCmd()
	root := &cobra.Command{
		Use:           "travel-kernel",
		Short:         "Reservation, payment and billing API for flights, hotels and car rentals",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}
	root.AddCommand(serve, newSweepCmd(), newMigrateCmd())
	return root
}

// @title           travel-kernel
// @version         1.0
// @description     Checkout, booking, billing and saved-card API.

// @BasePath  /
// @schemes http https
// @in header
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the hold sweeper",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := fx.New(
				bootstrap.Module,
				fx.Provide(
					func() *gin.Engine {
						return gin.New()
					},
				),
				fx.Invoke(
					startServer,
				),
			)

			if err := app.Start(cmd.Context()); err != nil {
				return fmt.Errorf("アプリケーションの起動に失敗しました: %w", err)
			}

			<-app.Done()

			if err := app.Stop(context.Background()); err != nil {
				slog.Error("アプリケーションの停止に失敗しました", "error", err)
			}
			slog.Info("アプリケーションが正常に停止しました")
			return nil
		},
	}
}

func startServer(lc fx.Lifecycle, engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	gin.EnableJsonDecoderDisallowUnknownFields()
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			logger.Info("🚀 サーバーを起動します", "address", srv.Addr, "mode", gin.Mode())
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("サーバーの起動に失敗しました", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("🛑 サーバーを停止します")
			ctx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	})
}

// newSweepCmd runs a single expiry pass, for hosts that schedule it with cron
// instead of the in-process worker.
func newSweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Fail every Pending hold older than the hold horizon and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				sweeper *worker.Sweeper
				logger  *slog.Logger
			)
			app := fx.New(
				bootstrap.CoreModule,
				fx.NopLogger,
				fx.Populate(&sweeper, &logger),
			)
			ctx := cmd.Context()
			if err := app.Start(ctx); err != nil {
				return err
			}
			defer func() {
				if err := app.Stop(context.Background()); err != nil {
					logger.Error("アプリケーションの停止に失敗しました", "error", err)
				}
			}()

			ids, err := sweeper.RunOnce(ctx)
			if err != nil {
				return err
			}
			logger.Info("sweep finished", "expired", len(ids))
			return nil
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply ledger schema migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			return db.Migrate(cmd.Context(), cfg.DB, middleware.NewLogger(cfg.Log).Slog())
		},
	}
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		slog.Error("コマンドの実行に失敗しました", "error", err)
		os.Exit(1)
	}
}
