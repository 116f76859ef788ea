package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/LavaJover/shvark-withdrawal-service/internal/client"
	"github.com/LavaJover/shvark-withdrawal-service/internal/config"
	"github.com/LavaJover/shvark-withdrawal-service/internal/delivery/httpapi"
	"github.com/LavaJover/shvark-withdrawal-service/internal/infrastructure/kafka"
	"github.com/LavaJover/shvark-withdrawal-service/internal/infrastructure/metrics"
	"github.com/LavaJover/shvark-withdrawal-service/internal/infrastructure/migrate"
	"github.com/LavaJover/shvark-withdrawal-service/internal/infrastructure/postgres"
	"github.com/LavaJover/shvark-withdrawal-service/internal/infrastructure/postgres/repository"
	"github.com/LavaJover/shvark-withdrawal-service/internal/infrastructure/redisstore"
	"github.com/LavaJover/shvark-withdrawal-service/internal/usecase"
	withdrawalusecase "github.com/LavaJover/shvark-withdrawal-service/internal/usecase/withdrawal"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	// Init database
	db := postgres.MustInitDB(cfg)
	if cfg.WithdrawalDB.MigrationsPath != "" {
		if err := migrate.RunMigrations(db, cfg.WithdrawalDB.MigrationsPath); err != nil {
			log.Fatalf("failed to apply migrations: %v", err)
		}
	}
	// Init redis
	rdb := redisstore.MustInitRedis(cfg)

	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	pub := kafka.NewDefaultKafkaPublisher(brokers)
	sub := kafka.NewDefaultKafkaSubscriber(brokers)

	// Init repos
	withdrawalRepo := repository.NewDefaultWithdrawalRepository(db)
	reviewerRepo := repository.NewDefaultReviewerRepository(db)
	transferRepo := repository.NewDefaultTransferRepository(db)

	// Init redis-backed stores
	rotationQueue := redisstore.NewRedisRotationQueue(rdb)
	statsStore := redisstore.NewRedisStatsStore(rdb)
	historyCache := redisstore.NewHistoryCache(rdb)

	withdrawalMetrics := metrics.NewWithdrawalMetrics()

	// Init payment provider client
	paymentClient, err := client.NewHTTPPaymentClient(fmt.Sprintf("http://%s:%s", cfg.PaymentService.Host, cfg.PaymentService.Port))
	if err != nil {
		log.Fatalf("failed to init payment client: %v", err)
	}

	// Init usecases
	statisticsUsecase := usecase.NewDefaultStatisticsUsecase(statsStore)
	reviewerUsecase := usecase.NewDefaultReviewerUsecase(reviewerRepo, withdrawalRepo, transferRepo, rotationQueue, withdrawalMetrics)
	withdrawalUsecase := withdrawalusecase.NewDefaultWithdrawalUsecase(
		withdrawalRepo,
		reviewerRepo,
		transferRepo,
		rotationQueue,
		statisticsUsecase,
		paymentClient,
		pub,
		sub,
		historyCache,
		withdrawalMetrics,
		cfg.KafkaService.EventsTopic,
		cfg.KafkaService.RequestsTopic,
		cfg.KafkaService.GroupID,
	)

	// Init handlers
	withdrawalHandler := httpapi.NewWithdrawalHandler(withdrawalUsecase, statisticsUsecase)
	reviewerHandler := httpapi.NewReviewerHandler(reviewerUsecase)
	router := httpapi.NewRouter(withdrawalHandler, reviewerHandler)

	// Kafka-sourced withdrawal requests
	go withdrawalUsecase.StartRequestConsumer(context.Background())

	// Rotation queue drift repair
	go reviewerUsecase.StartRotationReconciler(
		context.Background(),
		time.Duration(cfg.Rotation.ReconcileIntervalSeconds)*time.Second,
	)

	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	log.Printf("HTTP server started on %s\n", addr)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("failed to serve: %v\n", err)
	}
}
