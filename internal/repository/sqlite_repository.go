package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tenantchat/backend/internal/model"
)

type sqliteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateTenant(ctx context.Context, tenant *model.Tenant) error {
	query := `INSERT INTO tenants (id, name, slug, grounding_prompt, system_prompt, default_model, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		tenant.ID, tenant.Name, tenant.Slug,
		tenant.GroundingPrompt, tenant.SystemPrompt, tenant.DefaultModel,
		tenant.CreatedAt, tenant.UpdatedAt,
	)
	return err
}

func (r *sqliteRepository) GetTenant(ctx context.Context, tenantID string) (*model.Tenant, error) {
	query := `SELECT id, name, slug, grounding_prompt, system_prompt, default_model, created_at, updated_at
		FROM tenants WHERE id = ?`
	return r.scanTenant(r.db.QueryRowContext(ctx, query, tenantID))
}

func (r *sqliteRepository) GetTenantBySlug(ctx context.Context, slug string) (*model.Tenant, error) {
	query := `SELECT id, name, slug, grounding_prompt, system_prompt, default_model, created_at, updated_at
		FROM tenants WHERE slug = ?`
	return r.scanTenant(r.db.QueryRowContext(ctx, query, slug))
}

func (r *sqliteRepository) scanTenant(row *sql.Row) (*model.Tenant, error) {
	var tenant model.Tenant
	var groundingPrompt, systemPrompt sql.NullString
	err := row.Scan(&tenant.ID, &tenant.Name, &tenant.Slug,
		&groundingPrompt, &systemPrompt, &tenant.DefaultModel,
		&tenant.CreatedAt, &tenant.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if groundingPrompt.Valid {
		tenant.GroundingPrompt = &groundingPrompt.String
	}
	if systemPrompt.Valid {
		tenant.SystemPrompt = &systemPrompt.String
	}
	return &tenant, nil
}

func (r *sqliteRepository) UpdateTenantSettings(ctx context.Context, tenant *model.Tenant) error {
	query := `UPDATE tenants SET grounding_prompt = ?, system_prompt = ?, default_model = ?, updated_at = ?
		WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query,
		tenant.GroundingPrompt, tenant.SystemPrompt, tenant.DefaultModel,
		time.Now().UTC(), tenant.ID)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *sqliteRepository) IsSlugAvailable(ctx context.Context, slug, excludeTenantID string) (bool, error) {
	// Excluding the owning tenant makes "keep my current slug" a
	// non-collision during renames.
	query := "SELECT COUNT(1) FROM tenants WHERE slug = ?"
	args := []any{slug}
	if excludeTenantID != "" {
		query += " AND id != ?"
		args = append(args, excludeTenantID)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}

func (r *sqliteRepository) CreateConversation(ctx context.Context, conversation *model.Conversation) error {
	query := `INSERT INTO conversations (id, tenant_id, profile_id, title, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		conversation.ID, conversation.TenantID, conversation.ProfileID,
		conversation.Title, conversation.CreatedAt, conversation.UpdatedAt)
	return err
}

func (r *sqliteRepository) GetConversations(ctx context.Context, tenantID, profileID string) ([]*model.Conversation, error) {
	query := `SELECT id, tenant_id, profile_id, title, created_at, updated_at
		FROM conversations WHERE tenant_id = ? AND profile_id = ?
		ORDER BY updated_at DESC`
	rows, err := r.db.QueryContext(ctx, query, tenantID, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conversations []*model.Conversation
	for rows.Next() {
		var c model.Conversation
		if err := rows.Scan(&c.ID, &c.TenantID, &c.ProfileID, &c.Title, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		conversations = append(conversations, &c)
	}
	return conversations, rows.Err()
}

func (r *sqliteRepository) GetConversation(ctx context.Context, tenantID, conversationID string) (*model.Conversation, error) {
	query := `SELECT id, tenant_id, profile_id, title, created_at, updated_at
		FROM conversations WHERE id = ? AND tenant_id = ?`
	var c model.Conversation
	err := r.db.QueryRowContext(ctx, query, conversationID, tenantID).
		Scan(&c.ID, &c.TenantID, &c.ProfileID, &c.Title, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *sqliteRepository) UpdateConversationTitle(ctx context.Context, tenantID, conversationID, title string) error {
	query := "UPDATE conversations SET title = ?, updated_at = ? WHERE id = ? AND tenant_id = ?"
	result, err := r.db.ExecContext(ctx, query, title, time.Now().UTC(), conversationID, tenantID)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// CreateMessage inserts the message and bumps the conversation's updated_at
// in one transaction, so conversation ordering always tracks activity.
func (r *sqliteRepository) CreateMessage(ctx context.Context, message *model.Message) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	sources, err := model.MarshalSources(message.Sources)
	if err != nil {
		return fmt.Errorf("could not marshal sources: %w", err)
	}
	var sourcesValue sql.NullString
	if sources != nil {
		sourcesValue = sql.NullString{String: string(sources), Valid: true}
	}

	insertQuery := `INSERT INTO messages (id, conversation_id, tenant_id, role, content, status, model, provider, sources, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = tx.ExecContext(ctx, insertQuery,
		message.ID, message.ConversationID, message.TenantID,
		message.Role, message.Content, message.Status,
		message.Model, message.Provider, sourcesValue, message.Error,
		message.CreatedAt)
	if err != nil {
		return fmt.Errorf("could not insert message: %w", err)
	}

	touchQuery := "UPDATE conversations SET updated_at = ? WHERE id = ? AND tenant_id = ?"
	if _, err := tx.ExecContext(ctx, touchQuery, time.Now().UTC(), message.ConversationID, message.TenantID); err != nil {
		return fmt.Errorf("could not update conversation timestamp: %w", err)
	}

	return tx.Commit()
}

func (r *sqliteRepository) GetMessages(ctx context.Context, tenantID, conversationID string) ([]model.Message, error) {
	query := `SELECT id, conversation_id, tenant_id, role, content, status, model, provider, sources, error, created_at
		FROM messages WHERE conversation_id = ? AND tenant_id = ?
		ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, query, conversationID, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []model.Message
	for rows.Next() {
		var msg model.Message
		var content, modelName, providerName, sources, errorMessage sql.NullString

		if err := rows.Scan(&msg.ID, &msg.ConversationID, &msg.TenantID,
			&msg.Role, &content, &msg.Status, &modelName, &providerName,
			&sources, &errorMessage, &msg.CreatedAt); err != nil {
			return nil, err
		}

		if content.Valid {
			msg.Content = &content.String
		}
		if modelName.Valid {
			msg.Model = &modelName.String
		}
		if providerName.Valid {
			msg.Provider = &providerName.String
		}
		if errorMessage.Valid {
			msg.Error = &errorMessage.String
		}
		if sources.Valid {
			if err := json.Unmarshal([]byte(sources.String), &msg.Sources); err != nil {
				return nil, fmt.Errorf("could not decode sources for message %s: %w", msg.ID, err)
			}
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

func (r *sqliteRepository) UpdateMessageContent(ctx context.Context, tenantID, profileID, conversationID, messageID, content string) error {
	// The pending-status guard makes finalization a one-shot transition;
	// the EXISTS clause enforces tenant/profile/conversation scoping.
	query := `UPDATE messages SET content = ?, status = ?
		WHERE id = ? AND tenant_id = ? AND conversation_id = ? AND status = ?
		AND EXISTS (
			SELECT 1 FROM conversations
			WHERE id = ? AND tenant_id = ? AND profile_id = ?
		)`
	result, err := r.db.ExecContext(ctx, query,
		content, model.MessageStatusFinalized,
		messageID, tenantID, conversationID, model.MessageStatusPending,
		conversationID, tenantID, profileID)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *sqliteRepository) MarkMessageFailed(ctx context.Context, tenantID, profileID, conversationID, messageID, errorMessage string) error {
	query := `UPDATE messages SET status = ?, error = ?
		WHERE id = ? AND tenant_id = ? AND conversation_id = ? AND status = ?
		AND EXISTS (
			SELECT 1 FROM conversations
			WHERE id = ? AND tenant_id = ? AND profile_id = ?
		)`
	result, err := r.db.ExecContext(ctx, query,
		model.MessageStatusFailed, errorMessage,
		messageID, tenantID, conversationID, model.MessageStatusPending,
		conversationID, tenantID, profileID)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func requireRow(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
