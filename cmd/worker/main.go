package main

import (
	"fmt"
	"log"
	"time"

	"posyandu/internal/config"
	"posyandu/internal/handler"
	"posyandu/internal/port"
	"posyandu/internal/preprocess"
	"posyandu/internal/recognize"
	"posyandu/internal/recognize/gemini"
	"posyandu/internal/repository/postgres"
	"posyandu/internal/router"
	"posyandu/internal/service"
	s3storage "posyandu/internal/storage/s3"
	"posyandu/internal/tabledetect"
	"posyandu/internal/tabledetect/ppstructure"
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

	// Repositories
	docRepo := postgres.NewDocumentRepo(db)
	rowRepo := postgres.NewExtractedRowRepo(db)

	// Document store
	storage, err := s3storage.NewS3Client(&cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Pipeline stages
	preprocessor := preprocess.New(storage, cfg.Storage.Bucket)
	detector := tabledetect.NewFallbackDetector(
		[]port.TableDetector{
			tabledetect.NewLayoutStrategy(ppstructure.NewClient(&cfg.Detector)),
			tabledetect.NewMorphologicalStrategy(),
		},
		[]string{"layout-model", "morphological"},
	)
	recognizer := recognize.New(gemini.NewClient(&cfg.Recognizer), cfg.Recognizer.Concurrency)

	pipeline := service.NewPipelineService(
		docRepo, rowRepo, storage,
		preprocessor, detector, recognizer,
		cfg.Storage.Bucket,
	)

	// Handlers
	processH := handler.NewProcessHandler(pipeline, time.Duration(cfg.Worker.PipelineTimeoutSecs)*time.Second)
	exportH := handler.NewExportHandler(docRepo, rowRepo)
	healthH := handler.NewHealthHandler(db)

	r := router.Setup(cfg.Worker.Secret, processH, exportH, healthH)

	log.Printf("OCR worker starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
