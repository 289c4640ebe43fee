package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/CampusDesk/notification-service/internal/config"
	"github.com/CampusDesk/notification-service/internal/handler"
	"github.com/CampusDesk/notification-service/internal/mailer"
	"github.com/CampusDesk/notification-service/internal/rabbitmq"
	"github.com/CampusDesk/notification-service/internal/repository"
	"github.com/CampusDesk/notification-service/internal/repository/postgres"
	"github.com/CampusDesk/notification-service/internal/service"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := loadEnv(); err != nil {
		log.Fatalf("failed to load environment variables: %s", err.Error())
	}

	if err := initConfig(); err != nil {
		log.Fatalf("failed to initialize config: %s", err.Error())
	}

	logger, err := newLogger()
	if err != nil {
		log.Fatalf("failed to create zap logger: %s", err.Error())
	}

	mq, err := rabbitmq.New(os.Getenv("RABBITMQ_CONN_STRING"))
	if err != nil {
		log.Fatalf("failed to connect to rabbitmq: %s", err.Error())
	}

	db, err := postgres.Connect(ctx, config.DBConfig{
		Username: os.Getenv("POSTGRES_USER"),
		Password: os.Getenv("POSTGRES_PASSWORD"),
		Host: os.Getenv("POSTGRES_HOST"),
		Port: os.Getenv("POSTGRES_PORT"),
		DBName: os.Getenv("POSTGRES_DB"),
		SSLMode: os.Getenv("POSTGRES_SSLMODE"),
	})
	if err != nil {
		log.Panicf("db connection error: %s", err.Error())
	}
	if err := db.Ping(ctx); err != nil {
		log.Panicf("couldn't ping postgres db: %s", err.Error())
	}
	log.Println("Successfully connected to PostgreSQL")

	rdb := redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
	})
	pong, err := rdb.Ping(ctx).Result()
	if err != nil {
		panic("failed to ping redis: " + err.Error())
	}
	log.Printf("Successfully connected to Redis: %s\n", pong)

	smtpPort, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		log.Fatalf("invalid SMTP_PORT: %s", err.Error())
	}
	transport := mailer.NewSMTPTransport(config.SMTPConfig{
		Host: os.Getenv("SMTP_HOST"),
		Port: smtpPort,
		Username: os.Getenv("SMTP_USER"),
		Password: os.Getenv("SMTP_PASS"),
		From: os.Getenv("SMTP_FROM"),
	})

	repo := repository.New(db)
	mail := mailer.New(logger, transport)
	services := service.New(logger, repo, rdb, mq, mail)
	handlers := handler.New(services)

	go services.Student.StartCreating(ctx)
	go services.Student.StartUpdating(ctx)
	go services.Notifier.StartProcessingGradeUpdates(ctx)
	go services.Notifier.StartProcessingAttendanceAlerts(ctx)
	go services.Notifier.StartProcessingFeeReminders(ctx)
	go services.Notifier.StartProcessingTimetableUpdates(ctx)
	go services.Notifier.StartProcessingAnnouncements(ctx)

	go services.Notification.StartJobs()

	go http.ListenAndServe(viper.GetString("app.port"), handlers.SetupRoutes())

	log.Println("Notification service started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	log.Println("Notification service shutting down")
}

func loadEnv() error {
	return godotenv.Load(".env")
}

func initConfig() error {
	viper.AddConfigPath(".")
	viper.SetConfigType("yaml")
	viper.SetConfigName("app")
	return viper.ReadInConfig()
}

func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{
		"./app.log",
	}
	return cfg.Build()
}
