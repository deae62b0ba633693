/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tieubaoca/docuquery-be/config"
	"github.com/tieubaoca/docuquery-be/database"
	"github.com/tieubaoca/docuquery-be/service"
	"github.com/tieubaoca/docuquery-be/types"
)

// uploadDocumentCmd ingests a local PDF without running the server.
var uploadDocumentCmd = &cobra.Command{
	Use:   "upload-document",
	Short: "Ingest a local PDF file into a collection",
	Run: func(cmd *cobra.Command, args []string) {
		filePath, _ := cmd.Flags().GetString("file")
		collection, _ := cmd.Flags().GetString("collection")
		if filePath == "" {
			log.Fatal("--file is required")
		}

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
		ingestService := service.NewIngestService(
			vectorDB,
			embedder,
			chunker,
			service.NewPDFService(),
			imageService,
			cfg.DefaultCollection,
		)

		contents, err := os.ReadFile(filePath)
		if err != nil {
			log.Fatalf("Failed to read %s: %v", filePath, err)
		}

		summary, err := ingestService.Ingest(context.Background(), contents, filepath.Base(filePath), collection)
		if err != nil {
			log.Fatalf("Failed to ingest document: %v", err)
		}
		fmt.Printf("%s: %d chunks stored, %d images stored, %d chunks failed\n",
			summary.Message, summary.ChunksStored, summary.ImagesStored, summary.ChunksFailed)
	},
}

func init() {
	rootCmd.AddCommand(uploadDocumentCmd)

	uploadDocumentCmd.Flags().StringP("file", "f", "", "Path to the PDF file to upload")
	uploadDocumentCmd.Flags().String("collection", "", "Target collection (defaults to the configured default)")
}
