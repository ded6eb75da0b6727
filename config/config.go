package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration, sourced from the environment.
type Config struct {
	Port string

	StripeSecretKey     string
	StripeWebhookSecret string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	EmailFrom    string

	// OrderInbox receives the internal order notification for every paid order.
	OrderInbox string

	// FrontendURL is the base for checkout success/cancel redirects.
	FrontendURL string

	// DatabaseURL enables the notification ledger when set. Without it the
	// service re-sends notifications on every paid status observation.
	DatabaseURL string

	// KafkaBrokers enables order-paid event publishing when non-empty.
	KafkaBrokers []string

	// TaxesEnabled adds GST/QST line items to every checkout session.
	TaxesEnabled bool
}

func LoadConfig() *Config {
	cfg := &Config{
		Port:                os.Getenv("PORT"),
		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		SMTPHost:            os.Getenv("SMTP_HOST"),
		SMTPUsername:        os.Getenv("SMTP_USERNAME"),
		SMTPPassword:        os.Getenv("SMTP_PASSWORD"),
		EmailFrom:           os.Getenv("EMAIL_FROM"),
		OrderInbox:          os.Getenv("ORDER_INBOX"),
		FrontendURL:         os.Getenv("FRONTEND_URL"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		TaxesEnabled:        os.Getenv("TAXES_ENABLED") == "true",
	}

	if cfg.StripeSecretKey == "" {
		log.Fatal("STRIPE_SECRET_KEY environment variable not set.")
	}
	if cfg.StripeWebhookSecret == "" {
		log.Fatal("STRIPE_WEBHOOK_SECRET environment variable not set.")
	}
	if cfg.SMTPHost == "" {
		log.Fatal("SMTP_HOST environment variable not set.")
	}
	if cfg.SMTPUsername == "" {
		log.Fatal("SMTP_USERNAME environment variable not set.")
	}
	if cfg.SMTPPassword == "" {
		log.Fatal("SMTP_PASSWORD environment variable not set.")
	}
	if cfg.OrderInbox == "" {
		log.Fatal("ORDER_INBOX environment variable not set.")
	}
	if cfg.EmailFrom == "" {
		cfg.EmailFrom = cfg.SMTPUsername
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("PORT environment variable not set, defaulting to %s", cfg.Port)
	}
	if cfg.FrontendURL == "" {
		cfg.FrontendURL = "http://localhost:" + cfg.Port
	}
	cfg.FrontendURL = strings.TrimRight(cfg.FrontendURL, "/")

	cfg.SMTPPort = 587
	if p := os.Getenv("SMTP_PORT"); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			log.Fatalf("invalid SMTP_PORT %q: %v", p, err)
		}
		cfg.SMTPPort = port
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	return cfg
}
