package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Zxun2/teammates/internal/dto"
	"github.com/Zxun2/teammates/internal/models"
	"github.com/Zxun2/teammates/pkg/response"
)

type sessionsService interface {
	CourseTable(ctx context.Context, courseID string, by models.SortBy, order models.SortOrder) (*dto.SessionsTable, error)
}

// SessionsHandler exposes the sessions table endpoint.
type SessionsHandler struct {
	sessions sessionsService
}

// NewSessionsHandler constructs SessionsHandler.
func NewSessionsHandler(sessions sessionsService) *SessionsHandler {
	return &SessionsHandler{sessions: sessions}
}

// Table godoc
// @Summary Render the feedback sessions table for a course
// @Tags Sessions
// @Produce json
// @Param courseId path string true "Course ID"
// @Param sort query string false "SESSION_NAME, SESSION_START_DATE, or SESSION_END_DATE"
// @Param order query string false "ASC or DESC" default(ASC)
// @Success 200 {object} response.Envelope
// @Router /courses/{courseId}/sessions/table [get]
func (h *SessionsHandler) Table(c *gin.Context) {
	by := models.SortBy(strings.ToUpper(c.DefaultQuery("sort", string(models.SortByNone))))
	order := models.SortOrder(strings.ToUpper(c.DefaultQuery("order", string(models.SortOrderAsc))))

	table, err := h.sessions.CourseTable(c.Request.Context(), c.Param("courseId"), by, order)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, table)
}
