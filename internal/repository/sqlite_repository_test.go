package repository_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tenantchat/backend/internal/model"
	"tenantchat/backend/internal/repository"
)

func setupRepo(t *testing.T) (repository.Repository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return repository.NewSQLiteRepository(db), mock, db
}

func TestSQLiteRepository_IsSlugAvailable(t *testing.T) {
	ctx := context.Background()

	t.Run("Available when no tenant holds the slug", func(t *testing.T) {
		repo, mock, _ := setupRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(1) FROM tenants WHERE slug = ?")).
			WithArgs("acme").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		available, err := repo.IsSlugAvailable(ctx, "acme", "")
		require.NoError(t, err)
		assert.True(t, available)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Taken when another tenant holds the slug", func(t *testing.T) {
		repo, mock, _ := setupRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(1) FROM tenants WHERE slug = ?")).
			WithArgs("acme").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		available, err := repo.IsSlugAvailable(ctx, "acme", "")
		require.NoError(t, err)
		assert.False(t, available)
	})

	t.Run("Self-exclusion during rename", func(t *testing.T) {
		repo, mock, _ := setupRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(1) FROM tenants WHERE slug = ? AND id != ?")).
			WithArgs("acme", "tenant-1").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		available, err := repo.IsSlugAvailable(ctx, "acme", "tenant-1")
		require.NoError(t, err)
		assert.True(t, available)
	})
}

func TestSQLiteRepository_UpdateMessageContent(t *testing.T) {
	ctx := context.Background()

	t.Run("Finalizes a pending message within scope", func(t *testing.T) {
		repo, mock, _ := setupRepo(t)
		mock.ExpectExec("UPDATE messages SET content = \\?, status = \\?").
			WithArgs("Hello", model.MessageStatusFinalized,
				"msg-1", "tenant-1", "conv-1", model.MessageStatusPending,
				"conv-1", "tenant-1", "profile-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateMessageContent(ctx, "tenant-1", "profile-1", "conv-1", "msg-1", "Hello")
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Out-of-scope or already-finalized update matches nothing", func(t *testing.T) {
		repo, mock, _ := setupRepo(t)
		mock.ExpectExec("UPDATE messages SET content = \\?, status = \\?").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateMessageContent(ctx, "other-tenant", "profile-1", "conv-1", "msg-1", "Hello")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestSQLiteRepository_MarkMessageFailed(t *testing.T) {
	repo, mock, _ := setupRepo(t)
	mock.ExpectExec("UPDATE messages SET status = \\?, error = \\?").
		WithArgs(model.MessageStatusFailed, "stream produced no structured object",
			"msg-1", "tenant-1", "conv-1", model.MessageStatusPending,
			"conv-1", "tenant-1", "profile-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.MarkMessageFailed(context.Background(), "tenant-1", "profile-1", "conv-1", "msg-1", "stream produced no structured object")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteRepository_CreateMessage(t *testing.T) {
	repo, mock, _ := setupRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO messages").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE conversations SET updated_at").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	msg := &model.Message{
		ID:             "msg-1",
		ConversationID: "conv-1",
		TenantID:       "tenant-1",
		Role:           model.RoleAssistant,
		Status:         model.MessageStatusPending,
		Sources:        []model.SourceRecord{{DocumentID: "doc-1", DocumentName: "Handbook"}},
		CreatedAt:      time.Now(),
	}
	err := repo.CreateMessage(context.Background(), msg)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteRepository_GetTenantBySlug_NotFound(t *testing.T) {
	repo, mock, _ := setupRepo(t)
	mock.ExpectQuery("SELECT id, name, slug").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetTenantBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
