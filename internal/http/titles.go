package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"paragraph-titler/internal/service"
)

type generateTitleRequest struct {
	Paragraph  string `json:"paragraph"`
	MaxLength  *int   `json:"max_length"`
	MinLength  *int   `json:"min_length"`
	SaveResult *bool  `json:"save_result"`
}

type generateTitlesRequest struct {
	Paragraphs  []string `json:"paragraphs" binding:"required,min=1"`
	MaxLength   *int     `json:"max_length"`
	MinLength   *int     `json:"min_length"`
	SaveResults *bool    `json:"save_results"`
}

func generateOptions(maxLength, minLength *int, save *bool) service.GenerateOptions {
	opts := service.GenerateOptions{
		MaxLength: service.DefaultMaxLength,
		MinLength: service.DefaultMinLength,
		Save:      true,
	}
	if maxLength != nil {
		opts.MaxLength = *maxLength
	}
	if minLength != nil {
		opts.MinLength = *minLength
	}
	if save != nil {
		opts.Save = *save
	}
	return opts
}

func (h *Handler) generateTitle(c *gin.Context) {
	var req generateTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	user := currentUser(c)
	opts := generateOptions(req.MaxLength, req.MinLength, req.SaveResult)
	result, err := h.titles.GenerateTitle(c.Request.Context(), user.ID, req.Paragraph, opts)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, TitleEnvelope{
		Success: true,
		Data:    titleToResponse(*result),
		Message: "Title generated successfully",
	})
}

func (h *Handler) generateTitles(c *gin.Context) {
	var req generateTitlesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	user := currentUser(c)
	opts := generateOptions(req.MaxLength, req.MinLength, req.SaveResults)
	batch, err := h.titles.GenerateTitles(c.Request.Context(), user.ID, req.Paragraphs, opts)
	if err != nil {
		h.writeError(c, err)
		return
	}

	data := make([]TitleResponse, len(batch.Results))
	for i := range batch.Results {
		data[i] = titleToResponse(batch.Results[i])
	}
	c.JSON(http.StatusOK, BatchEnvelope{
		Success:               true,
		Data:                  data,
		TotalParagraphs:       len(data),
		TotalProcessingTimeMs: batch.TotalProcessingTimeMs,
		Message:               fmt.Sprintf("Successfully generated %d titles", len(data)),
	})
}

func (h *Handler) listSavedResults(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(service.DefaultPageSize)))
	if err != nil {
		badRequest(c, "invalid limit")
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		badRequest(c, "invalid offset")
		return
	}

	user := currentUser(c)
	results, total, err := h.titles.ListSaved(c.Request.Context(), user.ID, limit, offset)
	if err != nil {
		h.writeError(c, err)
		return
	}

	data := make([]TitleResponse, len(results))
	for i := range results {
		data[i] = titleToResponse(results[i])
	}
	c.JSON(http.StatusOK, SavedResultsEnvelope{
		Success:      true,
		Data:         data,
		TotalResults: total,
		Message:      fmt.Sprintf("Retrieved %d saved results", len(data)),
	})
}

func (h *Handler) deleteSavedResult(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("result_id"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid result id")
		return
	}

	user := currentUser(c)
	if err := h.titles.DeleteSaved(c.Request.Context(), user.ID, id); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Result deleted successfully"})
}

func (h *Handler) exportSavedResults(c *gin.Context) {
	user := currentUser(c)
	export, err := h.exports.Export(c.Request.Context(), user.ID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": ExportResponse{
			Key:         export.Key,
			Location:    export.Location,
			DownloadURL: export.DownloadURL,
			ResultCount: export.Count,
		},
		"message": fmt.Sprintf("Exported %d saved results", export.Count),
	})
}

func (h *Handler) listExports(c *gin.Context) {
	user := currentUser(c)
	exports, err := h.exports.List(c.Request.Context(), user.ID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	data := make([]ExportResponse, len(exports))
	for i := range exports {
		data[i] = exportToResponse(exports[i])
	}
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"data":          data,
		"total_exports": len(data),
	})
}
