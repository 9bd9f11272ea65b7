package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/Aashish23092/ocr-financial-aid/client"
	"github.com/Aashish23092/ocr-financial-aid/config"
	"github.com/Aashish23092/ocr-financial-aid/handler"
	"github.com/Aashish23092/ocr-financial-aid/logger"
	"github.com/Aashish23092/ocr-financial-aid/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Configure(cfg.LogLevel, cfg.Environment)
	log := logger.GetLogger()
	defer logger.Close()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	tesseractClient := client.NewTesseractClient(cfg.TesseractDataPath, cfg.OCRLanguage)

	// PaddleOCR is only a fallback and stays off unless its URL is configured
	var fallback client.OCRProvider
	if cfg.PaddleEnabled() {
		fallback = client.NewPaddleClient(cfg.PaddleOCRURL)
	}

	documentService := service.NewDocumentService(
		tesseractClient,
		fallback,
		service.NewPDFProcessor(),
		client.NewBarcodeReader(),
		service.NewDocumentStore(),
		service.Options{
			WorkerConcurrency: cfg.WorkerConcurrency,
			MinTextLayerChars: cfg.MinTextLayerChars,
		},
	)

	router := handler.NewRouter(
		handler.NewDocumentHandler(documentService, cfg.MaxFileSize),
		cfg.AllowedOrigins,
	)

	log.Infow("Starting OCR Financial Aid service",
		"port", cfg.ServerPort,
		"tessdata", cfg.TesseractDataPath,
		"paddleFallback", cfg.PaddleEnabled(),
		"workers", cfg.WorkerConcurrency)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
