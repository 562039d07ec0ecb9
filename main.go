package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aishape/payment-webhook/config"
	"github.com/aishape/payment-webhook/documents"
	"github.com/aishape/payment-webhook/handlers"
	"github.com/aishape/payment-webhook/pkg/wayforpay"
	"github.com/aishape/payment-webhook/providers"
	"github.com/aishape/payment-webhook/routes"
	service "github.com/aishape/payment-webhook/services"
	"github.com/aishape/payment-webhook/store"
	"github.com/aishape/payment-webhook/utils"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	echo "github.com/labstack/echo/v4"
)

var Version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	utils.InitLogger()
	logger := utils.Logger

	rootCmd := &cobra.Command{
		Use:          "aishape-webhook",
		Short:        "WayForPay webhook that delivers paid AIShape plans over Telegram",
		Version:      Version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(signCmd())
	rootCmd.AddCommand(renderCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the webhook HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(ctx context.Context) error {
	logger := utils.Logger

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	utils.ConfigureLogger(cfg.LogLevel, cfg.LogFormat)
	logger = utils.Logger

	plan, err := documents.DefaultPlan()
	if err != nil {
		return err
	}
	generator := documents.NewGenerator(plan, cfg.DocumentFontPath)

	sender, err := providers.NewTelegramSender(cfg.BotToken, cfg.TelegramAPIEndpoint, cfg.SendTimeout)
	if err != nil {
		return err
	}
	if bot, err := sender.CheckToken(); err != nil {
		logger.Warn().Err(err).Msg("telegram token check failed")
	} else {
		logger.Info().Str("bot", bot).Msg("telegram bot authorized")
	}

	deliveries, closeDeliveries, err := setupDeliveryStore(ctx, &cfg)
	if err != nil {
		return err
	}
	defer closeDeliveries()

	services := service.NewServices(&cfg, generator, sender, deliveries)
	newHandlers := handlers.NewHandlers(services)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = utils.JSONSerializer{}
	e.HTTPErrorHandler = utils.HTTPErrorHandler

	routes.Register(e, newHandlers)

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("port", cfg.Port).Str("version", Version).Msg("AIShape payment webhook running")
		errCh <- e.Start(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func setupDeliveryStore(ctx context.Context, cfg *config.Config) (store.DeliveryStore, func(), error) {
	if !cfg.DeduplicationEnabled() {
		utils.Logger.Info().Msg("REDIS_URL not set, webhook deliveries are not deduplicated")
		return store.NoopDeliveryStore{}, func() {}, nil
	}

	redisClient, err := utils.NewRedis(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	closeFn := func() {
		if err := redisClient.Close(); err != nil {
			utils.Logger.Error().Err(err).Msg("error closing redis")
		}
	}
	return store.NewRedisDeliveryStore(redisClient.GetClient(), cfg.DeliveryTTL), closeFn, nil
}

func signCmd() *cobra.Command {
	var secret string

	cmd := &cobra.Command{
		Use:   "sign [payload.json]",
		Short: "Sign a webhook payload and print it with merchantSignature set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				_ = godotenv.Load()
				secret = os.Getenv("WAYFORPAY_SECRET_KEY")
			}
			if secret == "" {
				return errors.New("no secret: pass --secret or set WAYFORPAY_SECRET_KEY")
			}

			body, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			payload, err := wayforpay.ParsePayload(body)
			if err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}

			payload[wayforpay.FieldMerchantSignature] = wayforpay.Sign(payload, secret)
			out, err := payload.Marshal()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&secret, "secret", "s", "", "Merchant secret key (defaults to WAYFORPAY_SECRET_KEY)")

	return cmd
}

func renderCmd() *cobra.Command {
	var fontPath string

	cmd := &cobra.Command{
		Use:   "render [name] [out.pdf]",
		Short: "Render the plan document for a customer name to a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := documents.DefaultPlan()
			if err != nil {
				return err
			}

			doc, err := documents.NewGenerator(plan, fontPath).Render(args[0])
			if err != nil {
				return err
			}
			return os.WriteFile(args[1], doc.Content, 0o644)
		},
	}

	cmd.Flags().StringVar(&fontPath, "font", "DejaVuSans.ttf", "Path to a unicode TTF font")

	return cmd
}
