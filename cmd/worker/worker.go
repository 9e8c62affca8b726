package main

import (
	"context"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"techdocs-rag-platform/internal/ai"
	"techdocs-rag-platform/internal/config"
	"techdocs-rag-platform/internal/convert"
	"techdocs-rag-platform/internal/logger"
	"techdocs-rag-platform/internal/queue"
	"techdocs-rag-platform/internal/storage"
	"techdocs-rag-platform/internal/telemetry"
	"techdocs-rag-platform/internal/tokenizer"
	"techdocs-rag-platform/internal/vectorindex"
	"techdocs-rag-platform/services"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger.InitLogger(cfg)

	shutdownTracer, err := telemetry.InitTracer("techdocs-rag-worker")
	if err != nil {
		logger.Warn("tracing disabled", "error", err)
	} else {
		defer shutdownTracer()
	}

	mongoClient, err := config.ConnectMongoDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		mongoClient.Disconnect(ctx)
	}()

	redisClient, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	ctx := context.Background()

	blobs, err := storage.NewS3Store(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to initialize S3 store:", err)
	}

	embedder, err := ai.NewGeminiEmbedder(ctx, cfg.GeminiAPIKey, cfg.EmbeddingModel)
	if err != nil {
		log.Fatal("Failed to initialize embedder:", err)
	}
	defer embedder.Close()

	index := vectorindex.NewClient(vectorindex.Config{
		Host:   cfg.PineconeHost,
		APIKey: cfg.PineconeAPIKey,
	})

	converter := convert.NewPDFConverter()
	chunker := services.NewChunker(tokenizer.NewEstimator(), cfg.MaxChunkTokens)
	documents := services.NewDocumentStore(mongoClient.Database(cfg.DBName))
	structures := services.NewStructureStore(blobs, redisClient)
	pipeline := services.NewIndexingPipeline(blobs, converter, chunker, embedder, index, structures, cfg.UpsertBatch)

	processor := queue.NewTaskProcessor(pipeline, documents)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.RedisURL,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		},
		asynq.Config{
			Concurrency: 4,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logger.Error("task failed", "type", task.Type(), "error", err)
			}),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(queue.TaskIndexDocument, processor.IndexDocument)

	logger.Info("worker starting", "redis", cfg.RedisURL)
	if err := srv.Run(mux); err != nil {
		log.Fatal("Failed to run worker:", err)
	}
}
