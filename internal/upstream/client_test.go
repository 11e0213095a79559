package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zxun2/teammates/internal/models"
	"github.com/Zxun2/teammates/pkg/config"
	appErrors "github.com/Zxun2/teammates/pkg/errors"
)

func newTestClient(baseURL string) *Client {
	return NewClient(config.UpstreamConfig{
		BaseURL:    baseURL,
		Timeout:    5 * time.Second,
		BackendKey: "test-key",
	}, nil)
}

func TestEnrollStudentsSendsChunkAndParsesResult(t *testing.T) {
	var captured struct {
		method  string
		query   string
		backend string
		payload enrollStudentsRequest
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.method = r.Method
		captured.query = r.URL.RawQuery
		captured.backend = r.Header.Get("Backend-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured.payload))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"studentsData": {"students": [
				{"email": "alice@example.com", "courseId": "CS1101", "name": "Alice", "teamName": "T1", "sectionName": "A", "joinState": "NOT_JOINED"}
			]},
			"unsuccessfulEnrolls": [
				{"studentEmail": "bob@example.com", "errorMessage": "invalid email"}
			]
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	result, err := client.EnrollStudents(context.Background(), "CS1101", []models.EnrollRequest{
		{Section: "A", Team: "T1", Name: "Alice", Email: "alice@example.com"},
	})

	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, captured.method)
	assert.Equal(t, "courseid=CS1101", captured.query)
	assert.Equal(t, "test-key", captured.backend)
	require.Len(t, captured.payload.StudentEnrollRequests, 1)
	require.Len(t, result.Students, 1)
	assert.Equal(t, "alice@example.com", result.Students[0].Email)
	require.Len(t, result.UnsuccessfulEnrolls, 1)
	assert.Equal(t, "bob@example.com", result.UnsuccessfulEnrolls[0].StudentEmail)
}

func TestEnrollStudentsSurfacesStructuredErrorMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message": "The request is not valid."}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.EnrollStudents(context.Background(), "CS1101", nil)

	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrUpstream.Code, appErr.Code)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Equal(t, "The request is not valid.", appErr.Message)
}

func TestEnrollStudentsFallsBackToStatusLine(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.EnrollStudents(context.Background(), "CS1101", nil)

	require.Error(t, err)
	assert.Equal(t, "upstream returned status 502", appErrors.FromError(err).Message)
}

func TestGetStudents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/students", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"students": [
			{"email": "alice@example.com", "courseId": "CS1101", "name": "Alice", "joinState": "JOINED"}
		]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	students, err := client.GetStudents(context.Background(), "CS1101")

	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, models.JoinStateJoined, students[0].JoinState)
}

func TestGetSessionsFiltersRecycleBin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sessions", r.URL.Path)
		assert.Equal(t, "false", r.URL.Query().Get("isinrecyclebin"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"feedbackSessions": [
			{"courseId": "CS1101", "feedbackSessionName": "Midterm", "submissionStatus": "OPEN", "publishStatus": "NOT_PUBLISHED"}
		]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	sessions, err := client.GetSessions(context.Background(), "CS1101")

	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "Midterm", sessions[0].FeedbackSessionName)
}

func TestHasResponsesForCourse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/responses/check", r.URL.Path)
		assert.Equal(t, "course", r.URL.Query().Get("entitytype"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"hasResponsesBySession": {"Midterm": true, "Final": false}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	bySession, err := client.HasResponsesForCourse(context.Background(), "CS1101")

	require.NoError(t, err)
	assert.True(t, bySession["Midterm"])
	assert.False(t, bySession["Final"])
}

func TestClientObserverReceivesOperation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"students": []}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	var operations []string
	client.SetObserver(func(operation string, _ time.Duration) {
		operations = append(operations, operation)
	})

	_, err := client.GetStudents(context.Background(), "CS1101")

	require.NoError(t, err)
	assert.Equal(t, []string{"get_students"}, operations)
}
