/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/tieubaoca/docuquery-be/config"
	"github.com/tieubaoca/docuquery-be/database"
	"github.com/tieubaoca/docuquery-be/handler"
	"github.com/tieubaoca/docuquery-be/service"
	"github.com/tieubaoca/docuquery-be/types"
)

// startServerCmd represents the start command
var startServerCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the document query server",
	Long:  `Starts a server that ingests PDF documents and answers queries against them`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		embedder := service.NewOpenAIEmbedder(
			cfg.Embedder.Endpoint,
			cfg.Embedder.APIKey,
			cfg.Embedder.Model,
			cfg.Embedder.Dimension,
		)

		// Collections are sized to whatever the embedder produces.
		vectorDB, err := database.NewQdrantStore(cfg.Qdrant, embedder.Dimension())
		if err != nil {
			log.Fatalf("Failed to create Qdrant store: %v", err)
		}

		imageService, err := service.NewImageService(cfg.ImageDir)
		if err != nil {
			log.Fatalf("Failed to create image store: %v", err)
		}
		chunker := service.NewTextChunker(types.DocumentServiceConfig{
			MaxChunkSize: cfg.Chunker.ChunkSize,
			OverlapSize:  cfg.Chunker.Overlap,
		})
		generator := newGenerator(cfg)

		ingestService := service.NewIngestService(
			vectorDB,
			embedder,
			chunker,
			service.NewPDFService(),
			imageService,
			cfg.DefaultCollection,
		)
		queryService := service.NewQueryService(
			vectorDB,
			embedder,
			generator,
			imageService,
			cfg.Retrieval.TopK,
			cfg.Retrieval.ImageScoreThreshold,
		)

		// Initialize handlers
		corsHandler := handler.NewCorsHandler()
		uploadHandler := handler.NewUploadHandler(ingestService)
		queryHandler := handler.NewQueryHandler(queryService)
		collectionHandler := handler.NewCollectionHandler(vectorDB)

		// Setup Gin router
		router := gin.Default()
		router.Use(corsHandler.CorsMiddleware)

		router.POST("/upload/", uploadHandler.HandleUpload)
		router.POST("/query", queryHandler.HandleQuery)
		router.GET("/list_collections", collectionHandler.HandleList)
		router.POST("/create_collection", collectionHandler.HandleCreate)
		router.DELETE("/delete_collection", collectionHandler.HandleDelete)

		log.Printf("Starting server on port %s...\n", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal("Server error:", err)
		}
	},
}

// newGenerator picks the generative backend from config. Queries fail with a
// dependency-not-ready error until one is configured.
func newGenerator(cfg *config.Config) service.AIService {
	switch cfg.Generator.Provider {
	case "gemini":
		generator, err := service.NewGeminiService(context.Background(), cfg.Generator.GeminiAPIKey, cfg.Generator.Model)
		if err != nil {
			log.Printf("Warning: gemini generator unavailable: %v", err)
			return nil
		}
		return generator
	case "openai":
		if cfg.Generator.Model == "" {
			log.Println("Warning: no generator model configured")
			return nil
		}
		return service.NewOpenAIService(cfg.Generator.Endpoint, cfg.Generator.APIKey, cfg.Generator.Model)
	default:
		log.Printf("Warning: unknown generator provider %q", cfg.Generator.Provider)
		return nil
	}
}

func init() {
	rootCmd.AddCommand(startServerCmd)
}
