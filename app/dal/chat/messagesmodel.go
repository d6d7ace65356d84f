package chat

import (
	"context"
	"fmt"

	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

var _ MessagesModel = (*customMessagesModel)(nil)

type (
	// MessagesModel is an interface to be customized, add more methods here,
	// and implement the added methods in customMessagesModel.
	MessagesModel interface {
		messagesModel
		// ListByConversation returns all messages of a conversation (asc by id)
		ListByConversation(ctx context.Context, conversationId int64) ([]*Messages, error)
		// FindFirstByRole returns the oldest message of a role in a conversation
		FindFirstByRole(ctx context.Context, conversationId int64, role string) (*Messages, error)
		DeleteByConversation(ctx context.Context, conversationId int64) error
	}

	customMessagesModel struct {
		*defaultMessagesModel
	}
)

// NewMessagesModel returns a model for the database table.
func NewMessagesModel(conn sqlx.SqlConn) MessagesModel {
	return &customMessagesModel{
		defaultMessagesModel: newMessagesModel(conn),
	}
}

func (m *customMessagesModel) ListByConversation(ctx context.Context, conversationId int64) ([]*Messages, error) {
	var rows []Messages
	query := fmt.Sprintf("select %s from %s where `conversation_id` = ? order by `id` asc", messagesRows, m.table)
	if err := m.conn.QueryRowsCtx(ctx, &rows, query, conversationId); err != nil {
		return nil, err
	}
	res := make([]*Messages, 0, len(rows))
	for i := range rows {
		res = append(res, &rows[i])
	}
	return res, nil
}

func (m *customMessagesModel) FindFirstByRole(ctx context.Context, conversationId int64, role string) (*Messages, error) {
	var resp Messages
	query := fmt.Sprintf("select %s from %s where `conversation_id` = ? and `role` = ? order by `id` asc limit 1", messagesRows, m.table)
	err := m.conn.QueryRowCtx(ctx, &resp, query, conversationId, role)
	switch err {
	case nil:
		return &resp, nil
	case sqlx.ErrNotFound:
		return nil, ErrNotFound
	default:
		return nil, err
	}
}

func (m *customMessagesModel) DeleteByConversation(ctx context.Context, conversationId int64) error {
	query := fmt.Sprintf("delete from %s where `conversation_id` = ?", m.table)
	_, err := m.conn.ExecCtx(ctx, query, conversationId)
	return err
}
