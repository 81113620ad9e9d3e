package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/danielhkuo/quickly-meet/cliparse"
	"github.com/danielhkuo/quickly-meet/db"
	"github.com/danielhkuo/quickly-meet/metrics"
	"github.com/danielhkuo/quickly-meet/middleware"
	"github.com/danielhkuo/quickly-meet/reminders"
	"github.com/danielhkuo/quickly-meet/router"
	"github.com/danielhkuo/quickly-meet/scheduler"
	"github.com/danielhkuo/quickly-meet/sl"
	"github.com/danielhkuo/quickly-meet/store"
)

func main() {
	var err error

	// A missing .env is fine; the environment may already be populated
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env file", sl.Err(err))
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", sl.Err(err))
		os.Exit(1)
	}

	// Connect to the database
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", sl.Err(err))
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn, cfg.DatabaseType); err != nil {
		slog.Error("schema creation failed", sl.Err(err))
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	if cfg.CronSecret == "" {
		slog.Warn("CRON_SECRET not set, the send-reminders endpoint will reject every call")
	}

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Reminder dispatcher
	st := store.New(dbConn)
	dispatcher, closeDispatcher, err := reminders.FromConfig(cfg, st, m)
	if err != nil {
		slog.Error("reminder dispatcher setup failed", sl.Err(err))
		os.Exit(1)
	}
	defer closeDispatcher()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.ScheduleReminders {
		sched := scheduler.New(dispatcher, scheduler.EveryWindow)
		if err := sched.Start(ctx); err != nil {
			slog.Error("reminder scheduler setup failed", sl.Err(err))
			os.Exit(1)
		}
		defer sched.Stop()
	}

	// Create router
	mux := router.NewRouter(st, cfg, dispatcher, metrics.Handler(reg))

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal. In-flight reminder runs keep their context
		// until the deferred sched.Stop has drained them.
		<-ctrlc
		server.Shutdown(context.Background())
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "base_url", cfg.BaseURL)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", sl.Err(err))
	} else {
		slog.Info("Server closed", "error", err)
	}
}
