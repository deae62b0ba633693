package handler

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tieubaoca/docuquery-be/service"
	"github.com/tieubaoca/docuquery-be/types"
)

const maxUploadSize = 50 << 20

type UploadHandler struct {
	ingestService *service.IngestService
}

func NewUploadHandler(ingestService *service.IngestService) *UploadHandler {
	return &UploadHandler{
		ingestService: ingestService,
	}
}

func (h *UploadHandler) HandleUpload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Status: "error",
			Error:  "Invalid file",
		})
		return
	}
	defer file.Close()

	if !isPDF(header.Filename, header.Header.Get("Content-Type")) {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Status: "error",
			Error:  "Only PDF files allowed.",
		})
		return
	}
	if header.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Status: "error",
			Error:  "File too large",
		})
		return
	}

	contents, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Status: "error",
			Error:  "Failed to read file",
		})
		return
	}

	collectionName := c.PostForm("collection_name")
	summary, err := h.ingestService.Ingest(c.Request.Context(), contents, header.Filename, collectionName)
	if err != nil {
		var parseErr *types.ParseError
		if errors.As(err, &parseErr) {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status: "error",
				Error:  err.Error(),
			})
			return
		}
		c.JSON(http.StatusServiceUnavailable, types.ErrorResponse{
			Status: "error",
			Error:  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func isPDF(filename, contentType string) bool {
	if strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return true
	}
	return strings.Contains(strings.ToLower(contentType), "pdf")
}
