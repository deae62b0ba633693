package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tieubaoca/docuquery-be/database"
	"github.com/tieubaoca/docuquery-be/types"
)

type CollectionHandler struct {
	vectorDB database.VectorDatabase
}

func NewCollectionHandler(vectorDB database.VectorDatabase) *CollectionHandler {
	return &CollectionHandler{
		vectorDB: vectorDB,
	}
}

func (h *CollectionHandler) HandleList(c *gin.Context) {
	names, err := h.vectorDB.ListCollections(c.Request.Context())
	if err != nil {
		// Clients expect a list either way.
		log.Printf("Error listing collections: %v", err)
		names = []string{}
	}
	c.JSON(http.StatusOK, types.CollectionsResponse{
		Collections: names,
	})
}

func (h *CollectionHandler) HandleCreate(c *gin.Context) {
	var req types.CollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CollectionName == "" {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Status: "error",
			Error:  "collection_name is required",
		})
		return
	}
	if err := h.vectorDB.EnsureCollection(c.Request.Context(), req.CollectionName); err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Status: "error",
			Error:  "Failed to create collection: " + err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, types.CollectionStatusResponse{
		Status:         "created",
		CollectionName: req.CollectionName,
	})
}

func (h *CollectionHandler) HandleDelete(c *gin.Context) {
	var req types.CollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CollectionName == "" {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Status: "error",
			Error:  "collection_name is required",
		})
		return
	}
	if err := h.vectorDB.DeleteCollection(c.Request.Context(), req.CollectionName); err != nil {
		if errors.Is(err, types.ErrCollectionNotFound) {
			c.JSON(http.StatusNotFound, types.ErrorResponse{
				Status: "error",
				Error:  "Collection '" + req.CollectionName + "' not found.",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Status: "error",
			Error:  "Failed to delete collection: " + err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, types.CollectionStatusResponse{
		Status:         "deleted",
		CollectionName: req.CollectionName,
	})
}
