package chat

import (
	"context"
	"fmt"

	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

var _ OutfitsModel = (*customOutfitsModel)(nil)

type (
	// OutfitsModel is an interface to be customized, add more methods here,
	// and implement the added methods in customOutfitsModel.
	OutfitsModel interface {
		outfitsModel
		// FindOneByMessageOption returns the stored outfit option shown in a message
		FindOneByMessageOption(ctx context.Context, messageId, optionIndex int64) (*Outfits, error)
		// FindLatestOption returns the newest stored outfit option of a conversation
		FindLatestOption(ctx context.Context, conversationId, optionIndex int64) (*Outfits, error)
		// ListByMessage returns all outfit options of one assistant message (asc by option_index)
		ListByMessage(ctx context.Context, messageId int64) ([]*Outfits, error)
		// ListByConversation returns every stored option of a conversation (asc by message_id, option_index)
		ListByConversation(ctx context.Context, conversationId int64) ([]*Outfits, error)
		DeleteByConversation(ctx context.Context, conversationId int64) error
	}

	customOutfitsModel struct {
		*defaultOutfitsModel
	}
)

// NewOutfitsModel returns a model for the database table.
func NewOutfitsModel(conn sqlx.SqlConn) OutfitsModel {
	return &customOutfitsModel{
		defaultOutfitsModel: newOutfitsModel(conn),
	}
}

func (m *customOutfitsModel) FindOneByMessageOption(ctx context.Context, messageId, optionIndex int64) (*Outfits, error) {
	var resp Outfits
	query := fmt.Sprintf("select %s from %s where `message_id` = ? and `option_index` = ? limit 1", outfitsRows, m.table)
	err := m.conn.QueryRowCtx(ctx, &resp, query, messageId, optionIndex)
	switch err {
	case nil:
		return &resp, nil
	case sqlx.ErrNotFound:
		return nil, ErrNotFound
	default:
		return nil, err
	}
}

func (m *customOutfitsModel) FindLatestOption(ctx context.Context, conversationId, optionIndex int64) (*Outfits, error) {
	var resp Outfits
	query := fmt.Sprintf("select %s from %s where `conversation_id` = ? and `option_index` = ? order by `message_id` desc limit 1", outfitsRows, m.table)
	err := m.conn.QueryRowCtx(ctx, &resp, query, conversationId, optionIndex)
	switch err {
	case nil:
		return &resp, nil
	case sqlx.ErrNotFound:
		return nil, ErrNotFound
	default:
		return nil, err
	}
}

func (m *customOutfitsModel) ListByMessage(ctx context.Context, messageId int64) ([]*Outfits, error) {
	var rows []Outfits
	query := fmt.Sprintf("select %s from %s where `message_id` = ? order by `option_index` asc", outfitsRows, m.table)
	if err := m.conn.QueryRowsCtx(ctx, &rows, query, messageId); err != nil {
		return nil, err
	}
	res := make([]*Outfits, 0, len(rows))
	for i := range rows {
		res = append(res, &rows[i])
	}
	return res, nil
}

func (m *customOutfitsModel) ListByConversation(ctx context.Context, conversationId int64) ([]*Outfits, error) {
	var rows []Outfits
	query := fmt.Sprintf("select %s from %s where `conversation_id` = ? order by `message_id` asc, `option_index` asc", outfitsRows, m.table)
	if err := m.conn.QueryRowsCtx(ctx, &rows, query, conversationId); err != nil {
		return nil, err
	}
	res := make([]*Outfits, 0, len(rows))
	for i := range rows {
		res = append(res, &rows[i])
	}
	return res, nil
}

func (m *customOutfitsModel) DeleteByConversation(ctx context.Context, conversationId int64) error {
	query := fmt.Sprintf("delete from %s where `conversation_id` = ?", m.table)
	_, err := m.conn.ExecCtx(ctx, query, conversationId)
	return err
}
