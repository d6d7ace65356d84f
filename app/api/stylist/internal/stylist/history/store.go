package history

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"StylistAI/app/api/stylist/internal/stylist/outfit"
	"StylistAI/app/api/stylist/internal/stylist/planner"
	"StylistAI/app/common/consts/biz"
	"StylistAI/app/common/snowflake"
	"StylistAI/app/dal/chat"

	"github.com/zeromicro/go-zero/core/collection"
	"github.com/zeromicro/go-zero/core/logx"
)

const (
	defaultCacheLimit  = 256
	defaultCacheExpire = time.Minute
)

// Snapshot 会话历史与最近一次展示的搭配选项
type Snapshot struct {
	Exchanges []planner.Exchange
	// Options 最新含搭配的助手消息下的各套选项, 下标即 option_index
	Options       [][]planner.PreviousItem
	TargetMessage int64
}

// Option 返回指定下标的上一轮选项, 越界时回退到第一套
func (s *Snapshot) Option(idx int) []planner.PreviousItem {
	if s == nil || len(s.Options) == 0 {
		return nil
	}
	if idx < 0 || idx >= len(s.Options) {
		idx = 0
	}
	return s.Options[idx]
}

type rawSnapshot struct {
	messages      []*chat.Messages
	options       [][]planner.PreviousItem
	targetMessage int64
}

// Store 负责会话、消息与搭配记录的读写及历史快照组装
type Store struct {
	log           logx.Logger
	conversations chat.ConversationsModel
	messages      chat.MessagesModel
	outfits       chat.OutfitsModel
	snapshots     *collection.Cache
}

func NewStore(log logx.Logger, conversations chat.ConversationsModel, messages chat.MessagesModel, outfits chat.OutfitsModel, cacheLimit int, cacheExpire time.Duration) *Store {
	if cacheLimit <= 0 {
		cacheLimit = defaultCacheLimit
	}
	if cacheExpire <= 0 {
		cacheExpire = defaultCacheExpire
	}

	snapshots, err := collection.NewCache(cacheExpire,
		collection.WithLimit(cacheLimit),
		collection.WithName("conversation-history"))
	if err != nil {
		log.Errorw("init history snapshot cache failed", logx.Field("err", err))
		snapshots = nil
	}

	return &Store{
		log:           log,
		conversations: conversations,
		messages:      messages,
		outfits:       outfits,
		snapshots:     snapshots,
	}
}

// CreateConversation 为用户新建一个等待补全信息的会话
func (s *Store) CreateConversation(ctx context.Context, userID int64, gender string) (*chat.Conversations, error) {
	conv := &chat.Conversations{
		Id:     snowflake.Next(),
		UserId: userID,
		Status: biz.ConvStatusAwaitingInput,
		Gender: gender,
	}
	if _, err := s.conversations.Insert(ctx, conv); err != nil {
		return nil, fmt.Errorf("insert conversation: %w", err)
	}
	return conv, nil
}

// Conversation 读取会话并校验归属, 不属于该用户时按不存在处理
func (s *Store) Conversation(ctx context.Context, conversationID, userID int64) (*chat.Conversations, error) {
	conv, err := s.conversations.FindOne(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conv.UserId != userID {
		return nil, chat.ErrNotFound
	}
	return conv, nil
}

// ListConversations 按创建逆序分页返回用户会话
func (s *Store) ListConversations(ctx context.Context, userID, offset, limit int64) ([]*chat.Conversations, error) {
	return s.conversations.ListByUser(ctx, userID, offset, limit)
}

// UpdateState 持久化对话状态与保留预算, nil 预算写入空值
func (s *Store) UpdateState(ctx context.Context, conversationID int64, status string, budget *outfit.Budget) error {
	var cents sql.NullInt64
	if budget != nil {
		cents = sql.NullInt64{Int64: budget.Cents, Valid: true}
	}
	if err := s.conversations.UpdateState(ctx, conversationID, status, cents); err != nil {
		return err
	}
	s.invalidate(conversationID)
	return nil
}

// DeleteConversation 删除会话及其全部消息与搭配记录
func (s *Store) DeleteConversation(ctx context.Context, conversationID int64) error {
	if err := s.outfits.DeleteByConversation(ctx, conversationID); err != nil {
		return fmt.Errorf("delete outfits: %w", err)
	}
	if err := s.messages.DeleteByConversation(ctx, conversationID); err != nil {
		return fmt.Errorf("delete messages: %w", err)
	}
	if err := s.conversations.Delete(ctx, conversationID); err != nil {
		return fmt.Errorf("delete conversation: %w", err)
	}
	s.invalidate(conversationID)
	return nil
}

// AppendUserMessage 持久化一条用户消息并返回消息 ID
func (s *Store) AppendUserMessage(ctx context.Context, conversationID int64, content string) (int64, error) {
	return s.appendMessage(ctx, conversationID, biz.RoleUser, content)
}

// AppendAssistantMessage 持久化助手回复及本轮生成的搭配选项
func (s *Store) AppendAssistantMessage(ctx context.Context, conversationID int64, content string, results []*outfit.Result) (int64, error) {
	msgID, err := s.appendMessage(ctx, conversationID, biz.RoleAssistant, content)
	if err != nil {
		return 0, err
	}

	for i, res := range results {
		items, err := EncodeItems(res.Outfit)
		if err != nil {
			return 0, err
		}

		row := &chat.Outfits{
			Id:             snowflake.Next(),
			ConversationId: conversationID,
			MessageId:      msgID,
			OptionIndex:    int64(i),
			Items:          items,
			CostCents:      res.CostCents,
			Quality:        res.Outfit.Quality,
		}
		if res.RemainingCents != nil {
			row.RemainingCents = sql.NullInt64{Int64: *res.RemainingCents, Valid: true}
		}

		if _, err := s.outfits.Insert(ctx, row); err != nil {
			return 0, fmt.Errorf("insert outfit option %d: %w", i, err)
		}
	}

	s.invalidate(conversationID)
	return msgID, nil
}

func (s *Store) appendMessage(ctx context.Context, conversationID int64, role, content string) (int64, error) {
	msg := &chat.Messages{
		Id:             snowflake.Next(),
		ConversationId: conversationID,
		Role:           role,
		Content:        content,
	}
	if _, err := s.messages.Insert(ctx, msg); err != nil {
		return 0, fmt.Errorf("insert %s message: %w", role, err)
	}
	s.invalidate(conversationID)
	return msg.Id, nil
}

// Snapshot 组装会话历史快照; focus >= 0 时系统备注只保留对应选项
func (s *Store) Snapshot(ctx context.Context, conversationID int64, focus int) (*Snapshot, error) {
	raw, err := s.rawSnapshot(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	noted := noteOptions(raw.options, focus)
	note := planner.ItemsNote(noted)

	exchanges := make([]planner.Exchange, 0, len(raw.messages))
	for _, msg := range raw.messages {
		ex := planner.Exchange{Role: msg.Role, Content: msg.Content}
		if msg.Id == raw.targetMessage && note != "" {
			ex.Note = note
		}
		exchanges = append(exchanges, ex)
	}

	return &Snapshot{
		Exchanges:     exchanges,
		Options:       raw.options,
		TargetMessage: raw.targetMessage,
	}, nil
}

// MessageOutfit 读取某条助手消息下指定选项的存储记录
func (s *Store) MessageOutfit(ctx context.Context, messageID, optionIndex int64) ([]StoredItem, error) {
	row, err := s.outfits.FindOneByMessageOption(ctx, messageID, optionIndex)
	if err != nil {
		return nil, err
	}
	return DecodeItems(row.Items)
}

// ConversationDetail 返回会话全部消息及各消息下的搭配记录
func (s *Store) ConversationDetail(ctx context.Context, conversationID int64) ([]*chat.Messages, map[int64][]*chat.Outfits, error) {
	msgs, err := s.messages.ListByConversation(ctx, conversationID)
	if err != nil {
		return nil, nil, err
	}

	rows, err := s.outfits.ListByConversation(ctx, conversationID)
	if err != nil {
		return nil, nil, err
	}

	byMessage := make(map[int64][]*chat.Outfits, len(rows))
	for _, row := range rows {
		byMessage[row.MessageId] = append(byMessage[row.MessageId], row)
	}
	return msgs, byMessage, nil
}

func (s *Store) rawSnapshot(ctx context.Context, conversationID int64) (*rawSnapshot, error) {
	if s.snapshots == nil {
		return s.loadSnapshot(ctx, conversationID)
	}

	v, err := s.snapshots.Take(snapshotKey(conversationID), func() (any, error) {
		return s.loadSnapshot(ctx, conversationID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*rawSnapshot), nil
}

func (s *Store) loadSnapshot(ctx context.Context, conversationID int64) (*rawSnapshot, error) {
	msgs, err := s.messages.ListByConversation(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	raw := &rawSnapshot{messages: msgs}

	latest, err := s.outfits.FindLatestOption(ctx, conversationID, 0)
	switch err {
	case nil:
		rows, err := s.outfits.ListByMessage(ctx, latest.MessageId)
		if err != nil {
			return nil, fmt.Errorf("list outfit options: %w", err)
		}
		raw.options = make([][]planner.PreviousItem, 0, len(rows))
		for _, row := range rows {
			items, err := DecodeItems(row.Items)
			if err != nil {
				return nil, fmt.Errorf("stored outfit %d: %w", row.Id, err)
			}
			raw.options = append(raw.options, PreviousItems(items))
		}
		raw.targetMessage = latest.MessageId
	case chat.ErrNotFound:
		// 新会话还没有展示过搭配
	default:
		return nil, fmt.Errorf("find latest outfit: %w", err)
	}

	return raw, nil
}

func (s *Store) invalidate(conversationID int64) {
	if s.snapshots != nil {
		s.snapshots.Del(snapshotKey(conversationID))
	}
}

func snapshotKey(conversationID int64) string {
	return strconv.FormatInt(conversationID, 10)
}

// noteOptions 聚焦某个选项时将其余槽位置空, 保持原始序号
func noteOptions(options [][]planner.PreviousItem, focus int) [][]planner.PreviousItem {
	if focus < 0 || focus >= len(options) {
		return options
	}
	focused := make([][]planner.PreviousItem, len(options))
	focused[focus] = options[focus]
	return focused
}

// PreservedBudget 还原会话里保留的预算, 空值表示不限预算
func PreservedBudget(conv *chat.Conversations) *outfit.Budget {
	if conv == nil || !conv.BudgetCents.Valid {
		return nil
	}
	return &outfit.Budget{Cents: conv.BudgetCents.Int64}
}
