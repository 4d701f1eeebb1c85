// Command local serves the flux-web API over plain HTTP for development.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"

	"flux-web/handler"
	"flux-web/internal/bootstrap"
	"flux-web/internal/integrations/emailjs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := bootstrap.Config{
		TableName:        envOr("TABLE_NAME", "flux-web-local"),
		ParamPrefix:      envOr("PARAM_PREFIX", "/flux-web"),
		MaxMessageLen:    envInt("MAX_MESSAGE_LENGTH", 500),
		HistoryLimit:     envInt("HISTORY_LIMIT", 100),
		ReplyDelay:       time.Duration(envInt("REPLY_DELAY_MS", 1000)) * time.Millisecond,
		DynamoDBEndpoint: os.Getenv("DYNAMODB_ENDPOINT"),
	}
	if id := os.Getenv("EMAILJS_SERVICE_ID"); id != "" {
		cfg.EmailJS = &emailjs.Credentials{
			ServiceID:  id,
			TemplateID: os.Getenv("EMAILJS_TEMPLATE_ID"),
			PublicKey:  os.Getenv("EMAILJS_PUBLIC_KEY"),
		}
	}

	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		slog.Error("failed to load AWS config", "err", err)
		os.Exit(1)
	}
	svc, err := bootstrap.Services(cfg, awsCfg, slog.Default())
	if err != nil {
		slog.Error("failed to build services", "err", err)
		os.Exit(1)
	}
	h, err := handler.NewHandler(svc)
	if err != nil {
		slog.Error("failed to create handler", "err", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + envOr("PORT", "8080"),
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown failed", "err", err)
		}
	}()

	slog.Info("listening", "addr", srv.Addr, "table", cfg.TableName)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "err", err)
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return n
}
