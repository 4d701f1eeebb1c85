// Package bootstrap wires the AWS clients, repositories and use cases behind
// the HTTP handler. Both entry points build their services here.
package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"

	"flux-web/handler"
	"flux-web/internal/catalog"
	"flux-web/internal/integrations/emailjs"
	"flux-web/internal/integrations/paramstore"
	"flux-web/internal/repository"
	"flux-web/internal/usecase"
)

type Config struct {
	TableName   string
	ParamPrefix string

	MaxMessageLen int
	HistoryLimit  int
	ReplyDelay    time.Duration

	// DynamoDBEndpoint points the DynamoDB client at a local emulator.
	DynamoDBEndpoint string
	// EmailJS, when set, replaces the credentials stored in SSM.
	EmailJS *emailjs.Credentials
}

// Services builds every use case from cfg and the AWS configuration.
func Services(cfg Config, awsCfg aws.Config, logger *slog.Logger) (handler.Services, error) {
	if strings.TrimSpace(cfg.TableName) == "" {
		return handler.Services{}, errors.New("bootstrap: table name is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	dynamo := awsdynamodb.NewFromConfig(awsCfg, func(o *awsdynamodb.Options) {
		if cfg.DynamoDBEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		}
	})
	store, err := repository.New(dynamo, cfg.TableName)
	if err != nil {
		return handler.Services{}, fmt.Errorf("bootstrap: repository: %w", err)
	}
	tables := repository.NewTables(store)

	params, err := paramstore.New(awsssm.NewFromConfig(awsCfg))
	if err != nil {
		return handler.Services{}, fmt.Errorf("bootstrap: paramstore: %w", err)
	}

	var emailOpts []emailjs.Option
	if cfg.EmailJS != nil {
		emailOpts = append(emailOpts, emailjs.WithCredentials(*cfg.EmailJS))
	}
	mailer, err := emailjs.NewClient(params, paramstore.Name(cfg.ParamPrefix, "emailjs"), emailOpts...)
	if err != nil {
		return handler.Services{}, fmt.Errorf("bootstrap: emailjs: %w", err)
	}

	var svc handler.Services
	var errs []error
	add := func(err error) { errs = append(errs, err) }

	chat, err := usecase.NewChatService(store, usecase.ChatConfig{
		MaxMessageLen: cfg.MaxMessageLen,
		HistoryLimit:  cfg.HistoryLimit,
		ReplyDelay:    cfg.ReplyDelay,
	}, logger)
	add(err)
	svc.Chat = chat

	contact, err := usecase.NewContactService(mailer, params, tables.Messages, tables.Profiles, cfg.ParamPrefix, logger)
	add(err)
	svc.Contact = contact

	cat, err := usecase.NewCatalogService(tables.Services, tables.Projects, catalog.Default(), logger)
	add(err)
	svc.Catalog = cat

	expos, err := usecase.NewExpoService(tables.Expos)
	add(err)
	svc.Expos = expos

	booths, err := usecase.NewBoothService(tables.Booths)
	add(err)
	svc.Booths = booths

	sessions, err := usecase.NewSessionService(tables.Sessions)
	add(err)
	svc.Sessions = sessions

	apps, err := usecase.NewApplicationService(tables.Applications, tables.Booths, store)
	add(err)
	svc.Applications = apps

	regs, err := usecase.NewRegistrationService(tables.ExpoRegistrations, tables.SessionRegistrations)
	add(err)
	svc.Registrations = regs

	messages, err := usecase.NewMessageService(tables.Messages)
	add(err)
	svc.Messages = messages

	profiles, err := usecase.NewProfileService(tables.Profiles)
	add(err)
	svc.Profiles = profiles

	analytics, err := usecase.NewAnalyticsService(tables.Expos, tables.Booths, tables.Sessions, tables.Applications, tables.ExpoRegistrations, tables.Profiles)
	add(err)
	svc.Analytics = analytics

	if err := errors.Join(errs...); err != nil {
		return handler.Services{}, fmt.Errorf("bootstrap: %w", err)
	}
	return svc, nil
}
