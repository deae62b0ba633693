package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tieubaoca/docuquery-be/service"
	"github.com/tieubaoca/docuquery-be/types"
)

type QueryHandler struct {
	queryService *service.QueryService
}

func NewQueryHandler(queryService *service.QueryService) *QueryHandler {
	return &QueryHandler{
		queryService: queryService,
	}
}

func (h *QueryHandler) HandleQuery(c *gin.Context) {
	var req types.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Status: "error",
			Error:  "Invalid request body",
		})
		return
	}
	if req.Query == "" || req.CollectionName == "" {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Status: "error",
			Error:  "query and collection_name are required",
		})
		return
	}

	result, err := h.queryService.Query(c.Request.Context(), req.Query, req.CollectionName)
	if err != nil {
		c.JSON(queryErrorStatus(err), types.ErrorResponse{
			Status: "error",
			Error:  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// queryErrorStatus classifies pipeline failures: unavailable dependencies are
// 503, anything else is a plain server error.
func queryErrorStatus(err error) int {
	var embErr *types.EmbeddingError
	var storeErr *types.VectorStoreError
	switch {
	case errors.Is(err, types.ErrGeneratorNotReady),
		errors.As(err, &embErr),
		errors.As(err, &storeErr):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
