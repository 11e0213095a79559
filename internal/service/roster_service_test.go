package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zxun2/teammates/internal/models"
	appErrors "github.com/Zxun2/teammates/pkg/errors"
)

type mockRosterAPI struct {
	students []models.Student
	byCourse map[string]bool
	err      error
	fetches  int
}

func (m *mockRosterAPI) GetStudents(context.Context, string) ([]models.Student, error) {
	m.fetches++
	if m.err != nil {
		return nil, m.err
	}
	return m.students, nil
}

func (m *mockRosterAPI) HasResponsesForCourse(context.Context, string) (map[string]bool, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.byCourse, nil
}

type memoryCacheRepo struct {
	values map[string][]byte
}

func (m *memoryCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	raw, ok := m.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	if m.values == nil {
		m.values = make(map[string][]byte)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.values[key] = raw
	return nil
}

func (m *memoryCacheRepo) Delete(_ context.Context, key string) error {
	delete(m.values, key)
	return nil
}

func newTestRosterService(api *mockRosterAPI, repo CacheRepository) *RosterService {
	cacheSvc := NewCacheService(repo, nil, time.Minute, nil, repo != nil)
	return NewRosterService(api, cacheSvc, time.Minute, nil)
}

func TestSnapshotCachesRoster(t *testing.T) {
	api := &mockRosterAPI{students: []models.Student{
		{Email: "alice@example.com", CourseID: "CS1101", Name: "Alice"},
	}}
	svc := newTestRosterService(api, &memoryCacheRepo{})

	first, err := svc.Snapshot(context.Background(), "CS1101")
	require.NoError(t, err)
	second, err := svc.Snapshot(context.Background(), "CS1101")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, api.fetches)
}

func TestSnapshotWithoutCacheAlwaysFetches(t *testing.T) {
	api := &mockRosterAPI{}
	svc := newTestRosterService(api, nil)

	_, err := svc.Snapshot(context.Background(), "CS1101")
	require.NoError(t, err)
	_, err = svc.Snapshot(context.Background(), "CS1101")
	require.NoError(t, err)

	assert.Equal(t, 2, api.fetches)
}

func TestRefreshReplacesCachedSnapshot(t *testing.T) {
	api := &mockRosterAPI{students: []models.Student{
		{Email: "alice@example.com", CourseID: "CS1101", Name: "Alice"},
	}}
	svc := newTestRosterService(api, &memoryCacheRepo{})

	_, err := svc.Snapshot(context.Background(), "CS1101")
	require.NoError(t, err)

	api.students = append(api.students, models.Student{Email: "bob@example.com", CourseID: "CS1101", Name: "Bob"})
	refreshed, err := svc.Refresh(context.Background(), "CS1101")
	require.NoError(t, err)
	assert.Len(t, refreshed, 2)

	cached, err := svc.Snapshot(context.Background(), "CS1101")
	require.NoError(t, err)
	assert.Len(t, cached, 2)
	assert.Equal(t, 2, api.fetches)
}

func TestRefreshPropagatesUpstreamError(t *testing.T) {
	api := &mockRosterAPI{err: appErrors.Clone(appErrors.ErrUpstream, "course not found")}
	svc := newTestRosterService(api, nil)

	_, err := svc.Refresh(context.Background(), "CS1101")

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUpstream.Code, appErrors.FromError(err).Code)
}

func TestExportCSV(t *testing.T) {
	api := &mockRosterAPI{students: []models.Student{
		{Email: "alice@example.com", CourseID: "CS1101", Name: "Alice", TeamName: "T1", SectionName: "A", JoinState: models.JoinStateJoined},
	}}
	svc := newTestRosterService(api, nil)

	payload, contentType, filename, err := svc.Export(context.Background(), "CS1101", "csv")

	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)
	assert.Equal(t, "CS1101_students.csv", filename)
	body := string(payload)
	assert.True(t, strings.HasPrefix(body, "Section,Team,Name,Email,Comments,Status"))
	assert.Contains(t, body, "alice@example.com")
	assert.Contains(t, body, "JOINED")
}

func TestExportPDF(t *testing.T) {
	api := &mockRosterAPI{students: []models.Student{
		{Email: "alice@example.com", CourseID: "CS1101", Name: "Alice"},
	}}
	svc := newTestRosterService(api, nil)

	payload, contentType, filename, err := svc.Export(context.Background(), "CS1101", "pdf")

	require.NoError(t, err)
	assert.Equal(t, "application/pdf", contentType)
	assert.Equal(t, "CS1101_students.pdf", filename)
	assert.True(t, strings.HasPrefix(string(payload), "%PDF"))
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	svc := newTestRosterService(&mockRosterAPI{}, nil)

	_, _, _, err := svc.Export(context.Background(), "CS1101", "xlsx")

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCheckResponsesSetsWarning(t *testing.T) {
	api := &mockRosterAPI{byCourse: map[string]bool{
		"Session 1": false,
		"Session 2": true,
	}}
	svc := newTestRosterService(api, nil)

	check, err := svc.CheckResponses(context.Background(), "CS1101")

	require.NoError(t, err)
	assert.True(t, check.HasResponses)
	assert.Equal(t, preModificationWarning, check.Warning)
}

func TestCheckResponsesNoResponses(t *testing.T) {
	api := &mockRosterAPI{byCourse: map[string]bool{"Session 1": false}}
	svc := newTestRosterService(api, nil)

	check, err := svc.CheckResponses(context.Background(), "CS1101")

	require.NoError(t, err)
	assert.False(t, check.HasResponses)
	assert.Equal(t, "", check.Warning)
}
