package main

import (
	"database/sql"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/joho/godotenv/autoload"
	"github.com/pressly/goose/v3"
	"github.com/stripe/stripe-go/v81"

	"song-order-service/config"
	"song-order-service/handlers"
	"song-order-service/internal/fulfillment"
	"song-order-service/internal/notify"
	"song-order-service/internal/orders"
	"song-order-service/internal/stores/kafka"
	"song-order-service/migrations"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	cfg := config.LoadConfig()

	stripe.Key = cfg.StripeSecretKey
	stripe.SetBackend(stripe.APIBackend, stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}))

	finalizer := &fulfillment.Finalizer{
		Composer: notify.Composer{Inbox: cfg.OrderInbox, Taxed: cfg.TaxesEnabled},
	}

	sender, err := notify.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.EmailFrom)
	if err != nil {
		log.Fatalf("failed to initialize SMTP sender: %v", err)
	}
	finalizer.Sender = sender

	if cfg.DatabaseURL != "" {
		db, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		goose.SetBaseFS(migrations.FS)
		if err := goose.SetDialect("postgres"); err != nil {
			log.Fatalf("failed to set goose dialect: %v", err)
		}
		if err := goose.Up(db, "."); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}

		ledger, err := orders.NewConf(db)
		if err != nil {
			log.Fatalf("failed to initialize notification ledger: %v", err)
		}
		finalizer.Ledger = ledger
		slog.Info("notification ledger enabled")
	} else {
		slog.Warn("DATABASE_URL not set, notifications are re-sent on every paid status observation")
	}

	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewConf(cfg.KafkaBrokers)
		if err != nil {
			log.Fatalf("failed to initialize kafka producer: %v", err)
		}
		defer producer.Close()
		finalizer.Producer = producer
		slog.Info("order event publishing enabled", slog.Int("brokers", len(cfg.KafkaBrokers)))
	}

	h := handlers.NewHandler(handlers.NewStripeClient(), finalizer, cfg.FrontendURL, cfg.StripeWebhookSecret, cfg.TaxesEnabled)
	r := handlers.API(h)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	slog.Info("starting server", slog.String("port", cfg.Port))
	log.Fatal(srv.ListenAndServe())
}
