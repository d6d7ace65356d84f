package chat

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

var _ ConversationsModel = (*customConversationsModel)(nil)

type (
	// ConversationsModel is an interface to be customized, add more methods here,
	// and implement the added methods in customConversationsModel.
	ConversationsModel interface {
		conversationsModel
		// ListByUser returns conversations for a user (desc by id)
		ListByUser(ctx context.Context, userId int64, offset, limit int64) ([]*Conversations, error)
		// UpdateTitle sets the generated title without touching other columns
		UpdateTitle(ctx context.Context, id int64, title string) error
		// UpdateState persists the dialogue status and preserved budget
		UpdateState(ctx context.Context, id int64, status string, budgetCents sql.NullInt64) error
	}

	customConversationsModel struct {
		*defaultConversationsModel
	}
)

// NewConversationsModel returns a model for the database table.
func NewConversationsModel(conn sqlx.SqlConn, c cache.CacheConf, opts ...cache.Option) ConversationsModel {
	return &customConversationsModel{
		defaultConversationsModel: newConversationsModel(conn, c, opts...),
	}
}

func (m *customConversationsModel) ListByUser(ctx context.Context, userId int64, offset, limit int64) ([]*Conversations, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	var rows []Conversations
	query := fmt.Sprintf("select %s from %s where `user_id` = ? order by `id` desc limit ? offset ?", conversationsRows, m.table)
	if err := m.QueryRowsNoCacheCtx(ctx, &rows, query, userId, limit, offset); err != nil {
		return nil, err
	}
	res := make([]*Conversations, 0, len(rows))
	for i := range rows {
		res = append(res, &rows[i])
	}
	return res, nil
}

func (m *customConversationsModel) UpdateTitle(ctx context.Context, id int64, title string) error {
	conversationsIdKey := fmt.Sprintf("%s%v", cacheConversationsIdPrefix, id)
	_, err := m.ExecCtx(ctx, func(ctx context.Context, conn sqlx.SqlConn) (sql.Result, error) {
		query := fmt.Sprintf("update %s set `title` = ? where `id` = ?", m.table)
		return conn.ExecCtx(ctx, query, title, id)
	}, conversationsIdKey)
	return err
}

func (m *customConversationsModel) UpdateState(ctx context.Context, id int64, status string, budgetCents sql.NullInt64) error {
	conversationsIdKey := fmt.Sprintf("%s%v", cacheConversationsIdPrefix, id)
	_, err := m.ExecCtx(ctx, func(ctx context.Context, conn sqlx.SqlConn) (sql.Result, error) {
		query := fmt.Sprintf("update %s set `status` = ?, `budget_cents` = ? where `id` = ?", m.table)
		return conn.ExecCtx(ctx, query, status, budgetCents, id)
	}, conversationsIdKey)
	return err
}
