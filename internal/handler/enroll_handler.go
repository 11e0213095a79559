package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Zxun2/teammates/internal/dto"
	"github.com/Zxun2/teammates/internal/models"
	appErrors "github.com/Zxun2/teammates/pkg/errors"
	"github.com/Zxun2/teammates/pkg/response"
)

type enrollService interface {
	SubmitEnrollData(ctx context.Context, courseID string, req dto.SubmitEnrollRequest, actor *models.JWTClaims) (*dto.EnrollOutcome, error)
	SubmitModifiedData(ctx context.Context, courseID string, actor *models.JWTClaims) (*dto.EnrollOutcome, error)
	RecordCellEdit(courseID string, event dto.CellEditEvent) ([]int, error)
	ResetEdits(courseID string)
	SubmissionHistory(ctx context.Context, courseID string, limit int) ([]models.AuditLog, error)
}

// EnrollHandler exposes the spreadsheet submission endpoints.
type EnrollHandler struct {
	enrolls enrollService
}

// NewEnrollHandler constructs EnrollHandler.
func NewEnrollHandler(enrolls enrollService) *EnrollHandler {
	return &EnrollHandler{enrolls: enrolls}
}

// Submit godoc
// @Summary Submit the new-students grid for enrollment
// @Tags Enroll
// @Accept json
// @Produce json
// @Param courseId path string true "Course ID"
// @Param payload body dto.SubmitEnrollRequest true "Grid rows and column headers"
// @Success 200 {object} response.Envelope
// @Router /courses/{courseId}/enroll [post]
func (h *EnrollHandler) Submit(c *gin.Context) {
	var req dto.SubmitEnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	outcome, err := h.enrolls.SubmitEnrollData(c.Request.Context(), c.Param("courseId"), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, outcome)
}

// SubmitModified godoc
// @Summary Submit the tracked modified rows of the existing-students grid
// @Tags Enroll
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{courseId}/enroll/modified [post]
func (h *EnrollHandler) SubmitModified(c *gin.Context) {
	outcome, err := h.enrolls.SubmitModifiedData(c.Request.Context(), c.Param("courseId"), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, outcome)
}

// RecordEdit godoc
// @Summary Record a cell edit in the existing-students grid
// @Tags Enroll
// @Accept json
// @Produce json
// @Param courseId path string true "Course ID"
// @Param payload body dto.CellEditEvent true "Cell edit event"
// @Success 200 {object} response.Envelope
// @Router /courses/{courseId}/enroll/edits [post]
func (h *EnrollHandler) RecordEdit(c *gin.Context) {
	var event dto.CellEditEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	indices, err := h.enrolls.RecordCellEdit(c.Param("courseId"), event)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"modifiedRowsIndex": indices})
}

// ResetEdits godoc
// @Summary Discard all tracked edits for a course
// @Tags Enroll
// @Param courseId path string true "Course ID"
// @Success 204
// @Router /courses/{courseId}/enroll/edits [delete]
func (h *EnrollHandler) ResetEdits(c *gin.Context) {
	h.enrolls.ResetEdits(c.Param("courseId"))
	response.NoContent(c)
}

// History godoc
// @Summary List recent enrollment submissions for a course
// @Tags Enroll
// @Produce json
// @Param courseId path string true "Course ID"
// @Param limit query int false "Maximum entries"
// @Success 200 {object} response.Envelope
// @Router /courses/{courseId}/enroll/history [get]
func (h *EnrollHandler) History(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	logs, err := h.enrolls.SubmissionHistory(c.Request.Context(), c.Param("courseId"), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, logs)
}
