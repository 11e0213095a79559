package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Zxun2/teammates/internal/dto"
	"github.com/Zxun2/teammates/internal/models"
	appErrors "github.com/Zxun2/teammates/pkg/errors"
)

type fakeSessionsSrv struct {
	table     *dto.SessionsTable
	err       error
	lastBy    models.SortBy
	lastOrder models.SortOrder
}

func (f *fakeSessionsSrv) CourseTable(_ context.Context, _ string, by models.SortBy, order models.SortOrder) (*dto.SessionsTable, error) {
	f.lastBy = by
	f.lastOrder = order
	return f.table, f.err
}

func newSessionsTestContext(path string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, path, nil)
	c.Params = gin.Params{{Key: "courseId", Value: "CS1101"}}
	return c, rec
}

func TestSessionsHandlerTableDefaults(t *testing.T) {
	srv := &fakeSessionsSrv{table: &dto.SessionsTable{SortBy: models.SortByNone, Order: models.SortOrderAsc}}
	handler := NewSessionsHandler(srv)

	c, rec := newSessionsTestContext("/courses/CS1101/sessions/table")
	handler.Table(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.SortByNone, srv.lastBy)
	assert.Equal(t, models.SortOrderAsc, srv.lastOrder)
}

func TestSessionsHandlerTableParsesSortParams(t *testing.T) {
	srv := &fakeSessionsSrv{table: &dto.SessionsTable{}}
	handler := NewSessionsHandler(srv)

	c, rec := newSessionsTestContext("/courses/CS1101/sessions/table?sort=session_end_date&order=desc")
	handler.Table(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.SortBySessionEndDate, srv.lastBy)
	assert.Equal(t, models.SortOrderDesc, srv.lastOrder)
}

func TestSessionsHandlerTableUpstreamError(t *testing.T) {
	srv := &fakeSessionsSrv{err: appErrors.Clone(appErrors.ErrUpstream, "course not found")}
	handler := NewSessionsHandler(srv)

	c, rec := newSessionsTestContext("/courses/CS1101/sessions/table")
	handler.Table(c)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
