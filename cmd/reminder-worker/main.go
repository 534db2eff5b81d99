// Command reminder-worker publishes due reminders to the message broker and
// marks them notified.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-tracker/internal/config"
	"github.com/carson-networks/budget-tracker/internal/logging"
	"github.com/carson-networks/budget-tracker/internal/metrics"
	"github.com/carson-networks/budget-tracker/internal/notify"
	"github.com/carson-networks/budget-tracker/internal/storage"
)

func main() {
	logger := logging.SetupLogging()
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.WithError(err).Warn("godotenv.Load")
	}

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logger.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}
	if err := envConfig.Validate(); err != nil {
		logger.WithError(err).Fatal("config.Validate")
		return
	}
	if err := logging.SetLevel(logger, envConfig.LogLevel); err != nil {
		logger.WithError(err).Fatal("logging.SetLevel")
		return
	}

	store, err := storage.NewStorage(envConfig)
	if err != nil {
		logger.WithError(err).Fatal("storage.NewStorage")
		return
	}
	defer store.Close()

	var publisher notify.Publisher = notify.LogPublisher{Logger: logger}
	if envConfig.AMQPURL != "" {
		client, err := notify.NewClient(envConfig.AMQPURL, envConfig.AMQPExchange, envConfig.AMQPQueue, logger)
		if err != nil {
			logger.WithError(err).Fatal("notify.NewClient")
			return
		}
		defer client.Close()
		publisher = client
	} else {
		logger.Warn("AMQP_URL not set, due reminders are only logged")
	}

	dispatcher := notify.NewDispatcher(store.Reminders, publisher, metrics.New(), logger)
	location := envConfig.Location()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(envConfig.ReminderPollInterval)
	defer ticker.Stop()

	logger.WithField("interval", envConfig.ReminderPollInterval.String()).Info("reminder-worker starting")
	for {
		sent, err := dispatcher.DispatchDue(ctx, time.Now().In(location))
		entry := logger.WithFields(logrus.Fields{"sent": sent})
		if err != nil {
			entry.WithError(err).Error("Dispatcher.DispatchDue")
		} else if sent > 0 {
			entry.Info("Dispatcher.DispatchDue")
		}

		select {
		case <-ctx.Done():
			logger.Info("reminder-worker stopped")
			return
		case <-ticker.C:
		}
	}
}
