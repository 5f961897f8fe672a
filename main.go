package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"adminconsole/apiclient"
	"adminconsole/config"
	"adminconsole/controllers"
	"adminconsole/logging"
	"adminconsole/notifier"
	"adminconsole/prefs"
	"adminconsole/routers"
	"adminconsole/session"
	"adminconsole/views"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(cfg.LogFile)
	defer logger.Sync()

	store, err := prefs.Open(cfg.DBConnection, cfg.DefaultPageSize)
	if err != nil {
		logger.Fatal("opening preference store", zap.Error(err))
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = store.Migrate(ctx)
	cancel()
	if err != nil {
		logger.Fatal("migrating preference store", zap.Error(err))
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   0,
	})
	defer rdb.Close()

	client := apiclient.New(cfg.APIBaseURL,
		apiclient.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		apiclient.WithServiceToken(cfg.APIToken),
		apiclient.WithLogger(logger.Named("apiclient")))

	api := controllers.NewAPI()
	api.Client = client
	api.Log = logger
	api.Prefs = store
	api.Sessions = session.NewService(rdb, client, cfg.SessionKey, cfg.SessionTTL, logger.Named("session"))
	api.Views = views.Catalog(client, cfg.PollIntervalFor, logger.Named("views"))

	if cfg.MailEnabled() {
		api.Mailer = notifier.NewSMTP(cfg.SMTPServer, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword,
			cfg.EmailFrom, cfg.NotifyEmail, logger.Named("notifier"))
	}

	pollCtx, stopPolling := context.WithCancel(context.Background())
	api.Views.StartAll(pollCtx)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      routers.Route(api),
		WriteTimeout: 60 * time.Second,
		ReadTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}

	stopPolling()
	api.Views.StopAll()
}
