/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/tieubaoca/docuquery-be/config"
	"github.com/tieubaoca/docuquery-be/database"
	"github.com/tieubaoca/docuquery-be/types"
)

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "Manage vector store collections",
}

var listCollectionsCmd = &cobra.Command{
	Use:   "list",
	Short: "List all collections",
	Run: func(cmd *cobra.Command, args []string) {
		store := mustQdrantStore()
		names, err := store.ListCollections(context.Background())
		if err != nil {
			log.Fatalf("Failed to list collections: %v", err)
		}
		for _, name := range names {
			fmt.Println(name)
		}
	},
}

var createCollectionCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a collection (no-op if it already exists)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store := mustQdrantStore()
		if err := store.EnsureCollection(context.Background(), args[0]); err != nil {
			log.Fatalf("Failed to create collection: %v", err)
		}
		fmt.Printf("created %s\n", args[0])
	},
}

var deleteCollectionCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a collection",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store := mustQdrantStore()
		err := store.DeleteCollection(context.Background(), args[0])
		if errors.Is(err, types.ErrCollectionNotFound) {
			log.Fatalf("Collection %s not found", args[0])
		}
		if err != nil {
			log.Fatalf("Failed to delete collection: %v", err)
		}
		fmt.Printf("deleted %s\n", args[0])
	},
}

func mustQdrantStore() *database.QdrantStore {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	store, err := database.NewQdrantStore(cfg.Qdrant, cfg.Embedder.Dimension)
	if err != nil {
		log.Fatalf("Failed to create Qdrant store: %v", err)
	}
	return store
}

func init() {
	collectionsCmd.AddCommand(listCollectionsCmd, createCollectionCmd, deleteCollectionCmd)
	rootCmd.AddCommand(collectionsCmd)
}
