package main

import (
	"context"
	"os"

	"expenses/internal/amqp"
	"expenses/internal/cli"
	applog "expenses/internal/log"
	"expenses/internal/worker"
)

func main() {
	cli.LoadEnvFile()

	cfg, logger, err := cli.LoadConfig()
	if err != nil {
		logger.Error("Configuration validation failed",
			applog.FieldError, err.Error(),
			applog.FieldErrorType, applog.ErrorTypeConfiguration)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the summary worker")
		os.Exit(1)
	}

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

	client, err := amqp.NewClient(ctx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client",
			applog.FieldError, err.Error(),
			applog.FieldErrorType, applog.ErrorTypeNetwork)
		os.Exit(1)
	}
	defer client.Close()

	logger.Info("Starting summary worker",
		"exchange", cfg.AMQPExchange,
		"queue", cfg.AMQPQueue)

	if err := worker.NewSummaryWorker(client, logger).Run(ctx); err != nil {
		logger.Error("Summary worker error", applog.FieldError, err.Error())
		os.Exit(1)
	}
	logger.Info("Summary worker stopped gracefully")
}
