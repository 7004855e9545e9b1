package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"firemonitor/internal/config"
	"firemonitor/internal/hub"
	"firemonitor/internal/logger"
	"firemonitor/internal/monitor"
	"firemonitor/internal/mqtt"
	"firemonitor/internal/notify"
	"firemonitor/internal/routes"
	"firemonitor/internal/status"
	sqliterepo "firemonitor/internal/repository/sqlite"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config  *config.Config
	logger  *logger.Logger
	db      *sqliterepo.DB
	hub     *hub.Hub
	store   *status.Store
	monitor *monitor.Monitor
	mqtt    *mqtt.Client
	router  http.Handler
}

func NewApp() (*App, error) {
	cfg := config.Load()
	log := logger.NewLogger(cfg.LogDirectory)

	for _, dir := range []string{cfg.ImageDirectory, cfg.PublicDirectory} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sqliterepo.New(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	alertRepo := sqliterepo.NewAlertRepository(db)
	statsRepo := sqliterepo.NewStatisticsRepository(db)

	viewerHub := hub.New(log)
	notifier := notify.NewTelegram(cfg.TelegramBotToken, cfg.TelegramChatID, log)
	store := status.NewStore(alertRepo, statsRepo, viewerHub, notifier, log)

	// The MQTT handler closes over the monitor, which in turn needs the
	// MQTT client as its transport; the closure resolves the cycle.
	var mon *monitor.Monitor
	mqttClient := mqtt.New(cfg.MQTTBroker, cfg.MQTTClientID, func(topic string, payload []byte) {
		mon.HandleMessage(topic, payload)
	}, log)
	mon = monitor.New(store, viewerHub, mqttClient, log)

	router := routes.SetupRoutes(mon, viewerHub, alertRepo, statsRepo, cfg, log)

	return &App{
		config:  cfg,
		logger:  log,
		db:      db,
		hub:     viewerHub,
		store:   store,
		monitor: mon,
		mqtt:    mqttClient,
		router:  router,
	}, nil
}

func (a *App) Run() error {
	// Broker connection retries in the background; the HTTP surface and
	// viewers do not wait for it.
	go func() {
		if err := a.mqtt.Connect(); err != nil {
			a.logger.Error("MQTT connection error: %v", err)
		}
	}()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", a.config.Port),
		Handler: a.router,
	}

	fmt.Println("==================================================")
	fmt.Println("🔥 Fire Monitor Web Server")
	fmt.Println("==================================================")
	fmt.Printf("🌐 URL: http://localhost:%d\n", a.config.Port)
	fmt.Printf("📡 MQTT broker: %s\n", a.config.MQTTBroker)
	fmt.Printf("📁 Images: %s\n", a.config.ImageDirectory)
	fmt.Printf("💾 Database: %s\n", a.config.DatabasePath)
	fmt.Println("==================================================")

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}

	a.logger.Info("🛑 Shutting down server...")
	a.mqtt.Disconnect()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}

	if err := a.db.Close(); err != nil {
		a.logger.Error("Error closing database: %v", err)
	}

	a.logger.Info("✓ Server stopped")
	return nil
}
