// File: twinmind/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"twinmind/config"
	twincron "twinmind/cron"
	"twinmind/database"
	scheduleRepo "twinmind/database/repository/schedule"
	"twinmind/handlers"
	"twinmind/middleware"
	"twinmind/routes"
	"twinmind/services/calendar"
	ai "twinmind/services/intelligence"
	"twinmind/services/mail"
	"twinmind/services/planner"
	"twinmind/services/scheduling"
	"twinmind/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()
	utils.InitAIContextCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Repositories.
	repo := scheduleRepo.NewMongoScheduleRepo()

	// Scheduling engine, configured from the owner's working hours.
	hours, err := utils.WorkingHoursFromConfig(
		config.AppConfig.ScheduleStartHour,
		config.AppConfig.ScheduleEndHour,
		config.AppConfig.ScheduleWorkDays,
	)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid working hours config: %v", err)
	}
	engine, err := scheduling.NewDefaultSchedulingEngine(hours)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid scheduling config: %v", err)
	}
	if config.AppConfig.ScheduleMaxDays > 0 {
		engine.MaxDays = config.AppConfig.ScheduleMaxDays
	}
	if config.AppConfig.ScheduleStepMinutes > 0 {
		engine.StepMinutes = config.AppConfig.ScheduleStepMinutes
	}

	// External calendar sources. Google is both a busy source and the event
	// sink; ICS feeds are read-only.
	var busySources []calendar.BusySource
	var sink calendar.EventSink
	if config.AppConfig.GoogleCredentialsFile != "" {
		gcal, err := calendar.NewGoogleCalendarClient(
			context.Background(),
			config.AppConfig.GoogleCredentialsFile,
			config.AppConfig.GoogleCalendarID,
			logger,
		)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize Google Calendar: %v", err)
		}
		busySources = append(busySources, gcal)
		sink = gcal
	}
	if raw := config.AppConfig.ICSFeedURLs; raw != "" {
		var urls []string
		for _, u := range strings.Split(raw, ",") {
			if u = strings.TrimSpace(u); u != "" {
				urls = append(urls, u)
			}
		}
		if len(urls) > 0 {
			busySources = append(busySources, calendar.NewICSBusySource(urls, logger))
		}
	}
	var busy calendar.BusySource
	if len(busySources) > 0 {
		busy = calendar.NewMergedBusySource(busySources...)
	}

	// Reminder queue client.
	reminderClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer reminderClient.Close()

	plannerSvc := &planner.DefaultPlannerService{
		Engine:    engine,
		Busy:      busy,
		Sink:      sink,
		Repo:      repo,
		Reminders: reminderClient,
		LeadTime:  time.Duration(config.AppConfig.ReminderLeadMinutes) * time.Minute,
		Logger:    logger,
	}

	// LLM fallback chain: Ollama first, then OpenAI, then Gemini.
	var providers []ai.Provider
	if config.AppConfig.OllamaURL != "" {
		providers = append(providers, ai.NewOllamaClient(config.AppConfig.OllamaURL, config.AppConfig.OllamaModel))
	}
	if config.AppConfig.OpenAIAPIKey != "" {
		providers = append(providers, ai.NewOpenAIClient(config.AppConfig.OpenAIAPIKey, config.AppConfig.OpenAIModel))
	}
	if config.AppConfig.GeminiAPIKey != "" {
		gemini, err := ai.NewGeminiClient(config.AppConfig.GeminiAPIKey)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize Gemini client: %v", err)
		}
		providers = append(providers, gemini)
	}
	chain := ai.NewFallbackChain(logger, providers...)

	ctxStore := ai.NewRedisContextStore(utils.GetAIContextCacheClient(), 30*time.Minute)
	assistantSvc := ai.NewDefaultAssistantService(chain, ctxStore, plannerSvc, logger)

	// IMAP mailbox, optional.
	var mailClient *mail.Client
	if imapCfg := mail.ConfigFromApp(); imapCfg.Enabled() {
		mailClient = mail.NewClient(imapCfg, logger)
		defer mailClient.Close()
	}

	// Background reminder worker.
	twincron.InitReminderWorker(repo, logger)

	// Periodic inbox poll keeps the IMAP session warm and surfaces new
	// unread counts in the logs.
	var poller *cron.Cron
	if mailClient != nil {
		poller = cron.New()
		if _, err := poller.AddFunc(config.AppConfig.IMAPPollSpec, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			summaries, err := mailClient.FetchUnread(ctx, 20)
			if err != nil {
				logger.Warn("inbox poll failed", zap.Error(err))
				return
			}
			logger.Info("inbox polled", zap.Int("unread", len(summaries)))
		}); err != nil {
			logger.Sugar().Fatalf("main: invalid IMAP_POLL_SPEC: %v", err)
		}
		poller.Start()
		defer poller.Stop()
	}

	// Dependency health checks.
	redisClients := []*redis.Client{
		utils.GetCacheClient(),
		utils.GetAuthCacheClient(),
		utils.GetAIContextCacheClient(),
	}
	utils.StartHealthMonitor(redisClients, database.MongoClient, chain)

	// Handlers.
	scheduleHandler := handlers.NewScheduleHandler(plannerSvc, repo)
	assistantHandler := handlers.NewAssistantHandler(assistantSvc)
	mailHandler := handlers.NewMailHandler(mailClient)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// Auth endpoints.
		LoginHandler:  handlers.LoginHandler,
		LogoutHandler: handlers.LogoutHandler,

		// Schedule endpoints.
		PlanHandler:          scheduleHandler.PlanHandler,
		AgendaHandler:        scheduleHandler.AgendaHandler,
		CancelEventHandler:   scheduleHandler.CancelEventHandler,
		NotificationsHandler: scheduleHandler.NotificationsHandler,

		// Assistant endpoints.
		ChatHandler: assistantHandler.ChatHandler,

		// Mail endpoints.
		UnreadMailHandler: mailHandler.UnreadHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
