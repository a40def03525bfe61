package main

import (
	"fmt"
	"log"

	"claimproc/internal/config"
	"claimproc/internal/handler"
	"claimproc/internal/llm"
	_ "claimproc/internal/llm/cerebras"
	_ "claimproc/internal/llm/openai"
	"claimproc/internal/pdftext"
	"claimproc/internal/pipeline"
	"claimproc/internal/repository/postgres"
	"claimproc/internal/router"
	"claimproc/internal/service"
	s3storage "claimproc/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	claimRepo := postgres.NewClaimRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize the chat-completion client and processing pipeline
	completer, err := llm.NewCompleter(&cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to initialize LLM client: %w", err)
	}
	pipe := pipeline.New(completer, cfg.Pipeline.ClassifyConcurrency)
	extractor := pdftext.NewExtractor()

	// Initialize services
	claimSvc := service.NewClaimService(claimRepo, s3Client, extractor, pipe, &cfg.S3)

	// Initialize handlers
	claimH := handler.NewClaimHandler(claimSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(claimH, healthH, cfg.CORS.AllowedOrigins)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
