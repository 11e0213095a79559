package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zxun2/teammates/internal/dto"
	"github.com/Zxun2/teammates/internal/models"
	"github.com/Zxun2/teammates/pkg/response"
)

type rosterService interface {
	Snapshot(ctx context.Context, courseID string) ([]models.Student, error)
	Refresh(ctx context.Context, courseID string) ([]models.Student, error)
	Export(ctx context.Context, courseID, format string) ([]byte, string, string, error)
	CheckResponses(ctx context.Context, courseID string) (*dto.ResponsesCheck, error)
}

// RosterHandler exposes course roster endpoints.
type RosterHandler struct {
	rosters rosterService
}

// NewRosterHandler constructs RosterHandler.
func NewRosterHandler(rosters rosterService) *RosterHandler {
	return &RosterHandler{rosters: rosters}
}

// List godoc
// @Summary List enrolled students of a course
// @Tags Roster
// @Produce json
// @Param courseId path string true "Course ID"
// @Param refresh query bool false "Bypass the cached snapshot"
// @Success 200 {object} response.Envelope
// @Router /courses/{courseId}/students [get]
func (h *RosterHandler) List(c *gin.Context) {
	courseID := c.Param("courseId")
	fetch := h.rosters.Snapshot
	if c.Query("refresh") == "true" {
		fetch = h.rosters.Refresh
	}
	students, err := fetch(c.Request.Context(), courseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"students": students})
}

// Export godoc
// @Summary Download the course roster as CSV or PDF
// @Tags Roster
// @Produce octet-stream
// @Param courseId path string true "Course ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200
// @Router /courses/{courseId}/students/export [get]
func (h *RosterHandler) Export(c *gin.Context) {
	payload, contentType, filename, err := h.rosters.Export(c.Request.Context(), c.Param("courseId"), c.DefaultQuery("format", "csv"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, payload)
}

// CheckResponses godoc
// @Summary Check whether the course already holds feedback responses
// @Tags Roster
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{courseId}/responses/check [get]
func (h *RosterHandler) CheckResponses(c *gin.Context) {
	check, err := h.rosters.CheckResponses(c.Request.Context(), c.Param("courseId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, check)
}
