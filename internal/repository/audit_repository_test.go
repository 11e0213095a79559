package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zxun2/teammates/internal/models"
)

func newAuditRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestAuditRepositoryCreateAssignsIDAndTimestamp(t *testing.T) {
	db, mock, cleanup := newAuditRepoMock(t)
	defer cleanup()

	repo := NewAuditRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO audit_logs")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	courseID := "CS1101"
	entry := &models.AuditLog{
		Action:     models.AuditActionEnrollSubmit,
		Resource:   "enrollment",
		ResourceID: &courseID,
		NewValues:  []byte(`{"attempted":2,"enrolled":2,"failed":0}`),
	}
	require.NoError(t, repo.CreateAuditLog(context.Background(), entry))

	assert.NotEmpty(t, entry.ID)
	assert.False(t, entry.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditRepositoryListByCourse(t *testing.T) {
	db, mock, cleanup := newAuditRepoMock(t)
	defer cleanup()

	repo := NewAuditRepository(db)
	courseID := "CS1101"
	userID := "inst-1"
	rows := sqlmock.NewRows([]string{"id", "user_id", "action", "resource", "resource_id", "new_values", "ip_address", "user_agent", "created_at"}).
		AddRow("log-2", userID, models.AuditActionEnrollModify, "enrollment", courseID, []byte(`{}`), "", "", time.Now()).
		AddRow("log-1", userID, models.AuditActionEnrollSubmit, "enrollment", courseID, []byte(`{}`), "", "", time.Now().Add(-time.Hour))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, action, resource, resource_id, new_values, ip_address, user_agent, created_at FROM audit_logs")).
		WithArgs(courseID, 20).
		WillReturnRows(rows)

	logs, err := repo.ListByCourse(context.Background(), courseID, 0)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "log-2", logs[0].ID)
	assert.Equal(t, models.AuditActionEnrollModify, logs[0].Action)
	require.NoError(t, mock.ExpectationsWereMet())
}
