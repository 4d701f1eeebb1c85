package main

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/gin-gonic/gin"

	"flux-web/handler"
	"flux-web/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// ---- Configuration (read only here) ----
	cfg := bootstrap.Config{
		TableName:     mustEnv("TABLE_NAME"),
		ParamPrefix:   mustEnv("PARAM_PREFIX"),
		MaxMessageLen: envInt("MAX_MESSAGE_LENGTH", 500),
		HistoryLimit:  envInt("HISTORY_LIMIT", 100),
		ReplyDelay:    time.Duration(envInt("REPLY_DELAY_MS", 0)) * time.Millisecond,
	}

	// ---- AWS SDK config ----
	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		slog.Error("failed to load AWS config", "err", err)
		os.Exit(1)
	}

	// ---- Handler ----
	svc, err := bootstrap.Services(cfg, awsCfg, logger)
	if err != nil {
		slog.Error("failed to build services", "err", err)
		os.Exit(1)
	}

	gin.SetMode(gin.ReleaseMode)
	h, err := handler.NewHandler(svc, handler.WithLogger(logger))
	if err != nil {
		slog.Error("failed to create handler", "err", err)
		os.Exit(1)
	}

	lambda.Start(h.Handle)
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		slog.Error("required environment variable is not set", "key", key)
		os.Exit(1)
	}
	return v
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("ignoring malformed integer environment variable", "key", key, "value", v)
		return def
	}
	return n
}
