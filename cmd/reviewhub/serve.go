package main

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"reviewhub/database"
	"reviewhub/internal/mailer"
	"reviewhub/internal/server"
	"reviewhub/pkg/validator"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := bootstrap()
		if err != nil {
			return err
		}

		if err := validator.RegisterCustom(); err != nil {
			return fmt.Errorf("register validators: %w", err)
		}

		db, err := database.ConnectDB(cfg, logger)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}

		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("parse redis url: %w", err)
		}
		redisClient := redis.NewClient(redisOpts)
		defer redisClient.Close()

		mail := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.EmailFrom)

		return server.NewServer(cfg, db, redisClient, mail, logger).Run()
	},
}
