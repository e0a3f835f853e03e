package telegram

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"clubbot/internal/application"
	"clubbot/internal/config"
	"clubbot/internal/infrastructure/i18n"
	"clubbot/internal/ports/output"
)

// Bot is the Telegram adapter. It owns the update loop and the background
// scheduler; everything else is wired ports: output adapters -> application
// (use cases) -> handler.
type Bot struct {
	api       *tgbotapi.BotAPI
	config    *config.Config
	handler   *Handler
	scheduler *application.Scheduler
}

// NewBot builds the Telegram session and wires the application services.
func NewBot(
	cfg *config.Config,
	eventRepo output.EventRepository,
	requestRepo output.RequestRepository,
	signupRepo output.SignupRepository,
	jobRepo output.JobRepository,
	userRepo output.UserRepository,
	locationRepo output.LocationRepository,
	ledger output.CapacityLedger,
	relay *RelayStore,
) (*Bot, error) {
	api, err := newAPI(cfg)
	if err != nil {
		return nil, fmt.Errorf("create telegram session: %w", err)
	}

	translator := i18n.NewTranslator("ru")
	notifier := NewNotifier(api, cfg.AdminChatID)

	approvalUC := application.NewApprovalService(eventRepo, requestRepo, signupRepo, jobRepo, userRepo, ledger, notifier, translator)
	signupUC := application.NewSignupService(eventRepo, signupRepo, userRepo, ledger, notifier, translator)
	eventUC := application.NewEventService(eventRepo, locationRepo, userRepo, notifier)
	scheduler := application.NewScheduler(eventRepo, signupRepo, jobRepo, userRepo, locationRepo, notifier, translator)

	handler := NewHandler(api, approvalUC, signupUC, eventUC, userRepo, translator, relay, cfg.AdminChatID)

	return &Bot{
		api:       api,
		config:    cfg,
		handler:   handler,
		scheduler: scheduler,
	}, nil
}

// newAPI creates the Bot API client, honoring the optional proxy.
func newAPI(cfg *config.Config) (*tgbotapi.BotAPI, error) {
	client := &http.Client{Timeout: 90 * time.Second}
	if cfg.ProxyURL != "" {
		proxy, err := url.Parse(cfg.ProxyURL)
		if err != nil {
			return nil, fmt.Errorf("parse proxy url: %w", err)
		}
		client.Transport = &http.Transport{Proxy: http.ProxyURL(proxy)}
	}
	return tgbotapi.NewBotAPIWithClient(cfg.Token, tgbotapi.APIEndpoint, client)
}

// Start runs the scheduler and the update loop until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	go b.scheduler.Run(ctx)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	log.Printf("🤖 Bot @%s online! Press CTRL+C to quit.", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handler.HandleUpdate(ctx, update)
		}
	}
}
