package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xavierca1/vital-sales-pro/internal/config"
	"github.com/xavierca1/vital-sales-pro/internal/entity"
	"github.com/xavierca1/vital-sales-pro/internal/infra/cache"
	"github.com/xavierca1/vital-sales-pro/internal/infra/database"
	"github.com/xavierca1/vital-sales-pro/internal/infra/http/handlers"
	"github.com/xavierca1/vital-sales-pro/internal/infra/http/middleware"
	"github.com/xavierca1/vital-sales-pro/internal/infra/integration/firecrawl"
	"github.com/xavierca1/vital-sales-pro/internal/infra/integration/kommo"
	"github.com/xavierca1/vital-sales-pro/internal/infra/integration/llm"
	"github.com/xavierca1/vital-sales-pro/internal/infra/integration/whatsapp"
	"github.com/xavierca1/vital-sales-pro/internal/infra/mail"
	"github.com/xavierca1/vital-sales-pro/internal/infra/queue"
	"github.com/xavierca1/vital-sales-pro/internal/infra/worker"
	"github.com/xavierca1/vital-sales-pro/internal/logging"
	"github.com/xavierca1/vital-sales-pro/internal/usecase"
)

const version = "1.0.0"

func main() {
	cfg := config.Load()
	logger := logging.Setup(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	checks := map[string]handlers.Check{
		"database": nil,
		"redis":    nil,
		"rabbitmq": nil,
	}

	// 1. Repositório de leads
	var leadRepo entity.LeadRepositoryInterface
	if cfg.DatabaseURL != "" {
		db, err := database.NewDBConnection(ctx, cfg.DatabaseURL)
		if err != nil {
			logging.Fatal("falha ao conectar no banco", "error", err)
		}
		defer db.Close()

		repo := database.NewLeadRepository(db, logger)
		if err := repo.EnsureSchema(ctx); err != nil {
			logging.Fatal("falha ao criar tabela de leads", "error", err)
		}
		leadRepo = repo
		checks["database"] = repo.Ping
		logger.Info("leads no PostgreSQL")
	} else {
		leadRepo = database.NewMemoryLeadRepository()
		logger.Warn("DATABASE_URL não definido, leads em memória")
	}

	// 2. Mensageria
	var events usecase.EventPublisherInterface
	var rabbitMQ *queue.RabbitMQ
	if cfg.RabbitMQURL != "" {
		var err error
		rabbitMQ, err = queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			logging.Fatal("falha ao conectar no RabbitMQ", "error", err)
		}
		defer rabbitMQ.Close()

		events = queue.NewProducer(rabbitMQ.Ch)
		checks["rabbitmq"] = func(context.Context) error {
			if !rabbitMQ.Healthy() {
				return errors.New("connection closed")
			}
			return nil
		}
	} else {
		logger.Warn("RABBITMQ_URL não definido, eventos de lead desativados")
	}

	// 3. Gateways
	completion := llm.NewClient(llm.Config{
		APIKey:      cfg.AIAPIKey,
		BaseURL:     cfg.AIBaseURL,
		Model:       cfg.AIModel,
		Temperature: cfg.AITemperature,
		MaxTokens:   cfg.AIMaxTokens,
	}, logger)
	if cfg.AIAPIKey == "" {
		logger.Warn("AI_API_KEY não definido, chamadas de IA vão falhar")
	}

	var search usecase.SearchClient = firecrawl.NewClient(cfg.FirecrawlAPIKey, cfg.FirecrawlBaseURL, logger)
	if cfg.RedisURL != "" {
		redisClient, err := cache.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			logging.Fatal("falha ao conectar no Redis", "error", err)
		}
		defer redisClient.Close()

		search = cache.NewSearchCache(search, redisClient, cfg.SearchCacheTTL, logger)
		checks["redis"] = redisClient.Ping
	}

	var delivery usecase.MessageDelivery
	if wa := whatsapp.NewClient(cfg.WhatsAppToken, cfg.WhatsAppPhoneID, cfg.WhatsAppBaseURL, logger); wa.Configured() {
		delivery = wa
	}

	// 4. UseCases
	leads := usecase.NewManageLeadsUseCase(leadRepo, events, cfg.CardThresholds, logger)
	if cfg.SeedDemoLeads {
		n, err := leads.SeedDemoLeads(ctx)
		if err != nil {
			logging.Fatal("falha ao popular leads de demonstração", "error", err)
		}
		if n > 0 {
			logger.Info("leads de demonstração criados", "count", n)
		}
	}

	ai := usecase.NewOrchestrator(completion, cfg.AITimeout, logger)
	prospector := usecase.NewProspectUseCase(search, completion, cfg.SearchTimeout, cfg.AITimeout, logger)
	store := usecase.NewSessionStore()
	sessions := usecase.NewSessionUseCase(store, leads, ai, prospector, delivery, cfg.PromotionThresholds, logger)

	// 5. Workers
	if rabbitMQ != nil {
		var crm queue.LeadSyncer
		if k := kommo.NewClient(cfg.KommoToken, cfg.KommoBaseURL, cfg.KommoStatusID, logger); k.Configured() {
			crm = k
		}
		var alerts queue.HotLeadNotifier
		if m := mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPassword, cfg.MailFrom, cfg.MailTo); m.Configured() {
			alerts = m
		}

		leadWorker := queue.NewWorker(rabbitMQ.Ch, crm, alerts, cfg.DashboardURL, logger)
		go func() {
			if err := leadWorker.Start(ctx, queue.QueueName); err != nil {
				logger.Error("worker de leads parou", "error", err)
			}
		}()
	}

	go worker.NewSessionExpirationWorker(store, cfg.SessionTTL, logger).Start(ctx)

	limiter := middleware.NewRateLimiter(cfg.AIRateLimitPerMinute)
	go limiter.Cleanup(ctx, 10*time.Minute)

	// 6. Router
	router := handlers.NewRouter(handlers.RouterConfig{
		Leads:          handlers.NewLeadHandler(leads, logger),
		AI:             handlers.NewAIHandler(ai),
		Prospect:       handlers.NewProspectHandler(prospector, logger),
		Sessions:       handlers.NewSessionHandler(sessions, logger),
		Health:         handlers.NewHealthHandler(version, checks),
		AILimiter:      limiter,
		AllowedOrigins: cfg.AllowedOrigins,
		AccessLog:      cfg.AccessLog,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("servidor Vital Sales Pro rodando", "port", cfg.Port, "version", version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("falha no servidor HTTP", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("desligando servidor")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("falha no desligamento", "error", err)
	}
}
