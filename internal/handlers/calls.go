package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/ivrlabs/callstore/api/v1"
	"github.com/ivrlabs/callstore/internal/services"
)

const (
	defaultPageSize = 0 // 0 means no pagination: the full collection
	maxPageSize     = 500
)

// ListCalls returns call records with optional filtering and pagination
// (GET /calls)
func (h *Handler) ListCalls(c *gin.Context, params v1.ListCallsParams) {
	// Parse pagination. Without a page or page_size parameter the whole
	// collection is returned in file order.
	page := 1
	if params.Page != nil && *params.Page > 0 {
		page = *params.Page
	}
	pageSize := defaultPageSize
	if params.PageSize != nil && *params.PageSize > 0 {
		pageSize = *params.PageSize
		if pageSize > maxPageSize {
			pageSize = maxPageSize
		}
	} else if params.Page != nil {
		pageSize = 50
	}

	svcParams := services.CallListParams{
		Statuses:       params.Status,
		ResponseTypes:  params.ResponseType,
		ActionRequired: params.ActionRequired,
		MinConfidence:  params.MinConfidence,
	}
	if pageSize > 0 {
		svcParams.Limit = uint64(pageSize)
		svcParams.Offset = uint64((page - 1) * pageSize)
	}

	result, err := h.callSrv.List(c.Request.Context(), svcParams)
	if err != nil {
		writeError(c, err)
		return
	}

	pageCount := 1
	if pageSize > 0 {
		pageCount = (result.Total + pageSize - 1) / pageSize
		if pageCount == 0 {
			pageCount = 1
		}
	}

	apiCalls := make([]v1.CallRecord, 0, len(result.Calls))
	for _, rec := range result.Calls {
		apiCalls = append(apiCalls, v1.NewCallFromModel(rec))
	}

	c.JSON(http.StatusOK, v1.CallListResponse{
		Page:      page,
		PageCount: pageCount,
		Total:     result.Total,
		Calls:     apiCalls,
	})
}

// GetCall returns the record with the given call id
// (GET /calls/{id})
func (h *Handler) GetCall(c *gin.Context, id int) {
	rec, err := h.callSrv.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, v1.NewCallFromModel(*rec))
}

// CreateCall creates a new call record with a unique call id
// (POST /calls)
func (h *Handler) CreateCall(c *gin.Context) {
	var req v1.CallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, v1.Error{Error: "invalid request body"})
		return
	}

	rec, err := req.ToModel()
	if err != nil {
		writeError(c, err)
		return
	}

	created, err := h.callSrv.Create(c.Request.Context(), rec)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, v1.NewCallFromModel(*created))
}

// ReplaceCall replaces an existing record or inserts a new one (upsert). The
// call id in the URL and body must match.
// (PUT /calls/{id})
func (h *Handler) ReplaceCall(c *gin.Context, id int) {
	var req v1.CallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, v1.Error{Error: "invalid request body"})
		return
	}

	rec, err := req.ToModel()
	if err != nil {
		writeError(c, err)
		return
	}

	stored, err := h.callSrv.Replace(c.Request.Context(), id, rec)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, v1.NewCallFromModel(*stored))
}

// PatchCall updates selected fields of a call record
// (PATCH /calls/{id})
func (h *Handler) PatchCall(c *gin.Context, id int) {
	var req v1.CallPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, v1.Error{Error: "invalid request body"})
		return
	}

	merged, err := h.callSrv.Patch(c.Request.Context(), id, req.ToModel())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, v1.NewCallFromModel(*merged))
}

// DeleteCall removes a call record. Deleting the same id twice returns 404.
// (DELETE /calls/{id})
func (h *Handler) DeleteCall(c *gin.Context, id int) {
	if err := h.callSrv.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
