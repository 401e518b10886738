package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/bkalafat/barberly/internal/cache"
	"github.com/bkalafat/barberly/internal/config"
	dbpkg "github.com/bkalafat/barberly/internal/db"
	"github.com/bkalafat/barberly/internal/events"
	infraRepo "github.com/bkalafat/barberly/internal/infra/repository"
	"github.com/bkalafat/barberly/internal/middleware"
	"github.com/bkalafat/barberly/internal/notification"
	"github.com/bkalafat/barberly/internal/routes"
	"github.com/bkalafat/barberly/internal/worker"
)

func main() {

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	store := cache.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	slotCache := cache.NewSlotCache(store)

	// ------------------------------
	// Events -> outbox
	// ------------------------------
	outboxRepo := infraRepo.NewOutboxGormRepository(db)
	directoryRepo := infraRepo.NewDirectoryGormRepository(db)
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	dispatcher := events.NewDispatcher()
	notifier := notification.NewNotifier(outboxRepo, directoryRepo, cfg.Notification.MaxRetries)
	notifier.Register(dispatcher)

	// ------------------------------
	// Background workers
	// ------------------------------
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sender := notification.NewSMTPSender(cfg.SMTP)
	outboxWorker := worker.NewDispatcher(outboxRepo, sender, cfg.Notification)
	go outboxWorker.Run(ctx)

	reminderScanner := worker.NewReminderScanner(appointmentRepo, outboxRepo, directoryRepo, cfg.Notification)
	reminderCron := reminderScanner.Start(ctx)
	defer reminderCron.Stop()

	// ------------------------------
	// HTTP server
	// ------------------------------
	r := gin.Default()
	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, slotCache, dispatcher)

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	go func() {
		log.Printf("Server running on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
}
