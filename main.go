package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"webcraft/config"
	"webcraft/cron"
	"webcraft/handlers"
	"webcraft/middleware"
	"webcraft/routes"
	"webcraft/services/notification"
	"webcraft/services/tasks"
	"webcraft/utils"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("main: %v", err)
	}
	utils.InitializeLogger(cfg.IsProduction(), cfg.LogLevel)
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	cache, err := utils.NewRedisClient(utils.RedisOptions{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisCacheDB,
	})
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	defer cache.Close()

	mailer, err := notification.NewMailer(cfg, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize mailer: %v", err)
	}

	var calendar notification.Calendar
	if cfg.GoogleCalendarEnabled {
		gc, err := notification.NewGoogleCalendarFromFile(context.Background(),
			cfg.GoogleCredentialsFile, cfg.GoogleImpersonate, cfg.GoogleCalendarID)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize google calendar: %v", err)
		}
		calendar = gc
	} else {
		logger.Info("Google Calendar disabled, bookings will not get a meet link")
	}

	queueOpts := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	}
	queue := asynq.NewClient(queueOpts)
	defer queue.Close()

	notificationService, err := notification.NewDefaultNotificationService(notification.Options{
		Mailer:   mailer,
		Calendar: calendar,
		Policy: notification.Policy{
			From:            cfg.MailFrom,
			AdminRecipients: config.SplitList(cfg.AdminEmails),
			AlwaysBCC:       config.SplitList(cfg.AlwaysBCC),
		},
		MeetLinks:          notification.NewRedisMeetLinkStore(cache, cfg.MeetLinkTTL),
		Subscribers:        notification.NewRedisSubscriberStore(cache),
		Reminders:          tasks.NewAsynqReminderScheduler(queue),
		Logger:             logger.Named("notification"),
		Location:           cfg.Location(),
		ConsultationLength: time.Duration(cfg.ConsultationMinutes) * time.Minute,
		ReminderLead:       cfg.ReminderLead,
	})
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}

	worker := cron.InitReminderWorker(queueOpts, notificationService, logger.Named("reminders"))

	monitor := utils.NewHealthMonitor(cache)
	healthJob, err := cron.StartHealthMonitor(monitor, logger.Named("health"))
	if err != nil {
		logger.Sugar().Fatalf("main: failed to start health monitor: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))

	consultationHandler := handlers.NewConsultationHandler(notificationService)
	handlerBundle := &handlers.HandlerBundle{
		SubmitContact:    handlers.NewContactHandler(notificationService).Submit,
		BookConsultation: consultationHandler.Book,
		GetConsultation:  consultationHandler.Get,
		SubmitProject:    handlers.NewProjectHandler(notificationService).Submit,
		Subscribe:        handlers.NewNewsletterHandler(notificationService).Subscribe,
		Health:           handlers.HealthHandler(monitor),
	}
	routes.RegisterRoutes(router, handlerBundle, config.SplitList(cfg.AllowedOrigins))

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
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
	logger.Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	<-healthJob.Stop().Done()
	worker.Shutdown()

	logger.Info("main: server stopped gracefully")
}
