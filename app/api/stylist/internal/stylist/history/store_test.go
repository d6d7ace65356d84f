package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"sort"
	"testing"
	"time"

	"StylistAI/app/api/stylist/internal/stylist/outfit"
	"StylistAI/app/api/stylist/internal/stylist/planner"
	"StylistAI/app/common/consts/biz"
	"StylistAI/app/dal/chat"

	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/core/logx"
)

type execResult struct{}

func (execResult) LastInsertId() (int64, error) { return 0, nil }
func (execResult) RowsAffected() (int64, error) { return 1, nil }

type fakeConversations struct {
	rows map[int64]*chat.Conversations
}

func newFakeConversations() *fakeConversations {
	return &fakeConversations{rows: make(map[int64]*chat.Conversations)}
}

func (f *fakeConversations) Insert(_ context.Context, data *chat.Conversations) (sql.Result, error) {
	f.rows[data.Id] = data
	return execResult{}, nil
}

func (f *fakeConversations) FindOne(_ context.Context, id int64) (*chat.Conversations, error) {
	if c, ok := f.rows[id]; ok {
		return c, nil
	}
	return nil, chat.ErrNotFound
}

func (f *fakeConversations) Update(_ context.Context, data *chat.Conversations) error {
	f.rows[data.Id] = data
	return nil
}

func (f *fakeConversations) Delete(_ context.Context, id int64) error {
	delete(f.rows, id)
	return nil
}

func (f *fakeConversations) ListByUser(_ context.Context, userID, _, _ int64) ([]*chat.Conversations, error) {
	var out []*chat.Conversations
	for _, c := range f.rows {
		if c.UserId == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Id > out[j].Id })
	return out, nil
}

func (f *fakeConversations) UpdateTitle(_ context.Context, id int64, title string) error {
	if c, ok := f.rows[id]; ok {
		c.Title = title
	}
	return nil
}

func (f *fakeConversations) UpdateState(_ context.Context, id int64, status string, budgetCents sql.NullInt64) error {
	if c, ok := f.rows[id]; ok {
		c.Status = status
		c.BudgetCents = budgetCents
	}
	return nil
}

type fakeMessages struct {
	rows      []*chat.Messages
	listCalls int
}

func (f *fakeMessages) Insert(_ context.Context, data *chat.Messages) (sql.Result, error) {
	f.rows = append(f.rows, data)
	return execResult{}, nil
}

func (f *fakeMessages) FindOne(_ context.Context, id int64) (*chat.Messages, error) {
	for _, m := range f.rows {
		if m.Id == id {
			return m, nil
		}
	}
	return nil, chat.ErrNotFound
}

func (f *fakeMessages) Update(_ context.Context, _ *chat.Messages) error { return nil }

func (f *fakeMessages) Delete(_ context.Context, id int64) error {
	out := f.rows[:0]
	for _, m := range f.rows {
		if m.Id != id {
			out = append(out, m)
		}
	}
	f.rows = out
	return nil
}

func (f *fakeMessages) ListByConversation(_ context.Context, conversationID int64) ([]*chat.Messages, error) {
	f.listCalls++
	var out []*chat.Messages
	for _, m := range f.rows {
		if m.ConversationId == conversationID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Id < out[j].Id })
	return out, nil
}

func (f *fakeMessages) FindFirstByRole(_ context.Context, conversationID int64, role string) (*chat.Messages, error) {
	list, _ := f.ListByConversation(context.Background(), conversationID)
	for _, m := range list {
		if m.Role == role {
			return m, nil
		}
	}
	return nil, chat.ErrNotFound
}

func (f *fakeMessages) DeleteByConversation(_ context.Context, conversationID int64) error {
	out := f.rows[:0]
	for _, m := range f.rows {
		if m.ConversationId != conversationID {
			out = append(out, m)
		}
	}
	f.rows = out
	return nil
}

type fakeOutfits struct {
	rows []*chat.Outfits
}

func (f *fakeOutfits) Insert(_ context.Context, data *chat.Outfits) (sql.Result, error) {
	f.rows = append(f.rows, data)
	return execResult{}, nil
}

func (f *fakeOutfits) FindOne(_ context.Context, id int64) (*chat.Outfits, error) {
	for _, o := range f.rows {
		if o.Id == id {
			return o, nil
		}
	}
	return nil, chat.ErrNotFound
}

func (f *fakeOutfits) Update(_ context.Context, _ *chat.Outfits) error { return nil }

func (f *fakeOutfits) Delete(_ context.Context, id int64) error {
	out := f.rows[:0]
	for _, o := range f.rows {
		if o.Id != id {
			out = append(out, o)
		}
	}
	f.rows = out
	return nil
}

func (f *fakeOutfits) FindOneByMessageOption(_ context.Context, messageID, optionIndex int64) (*chat.Outfits, error) {
	for _, o := range f.rows {
		if o.MessageId == messageID && o.OptionIndex == optionIndex {
			return o, nil
		}
	}
	return nil, chat.ErrNotFound
}

func (f *fakeOutfits) FindLatestOption(_ context.Context, conversationID, optionIndex int64) (*chat.Outfits, error) {
	var latest *chat.Outfits
	for _, o := range f.rows {
		if o.ConversationId != conversationID || o.OptionIndex != optionIndex {
			continue
		}
		if latest == nil || o.MessageId > latest.MessageId {
			latest = o
		}
	}
	if latest == nil {
		return nil, chat.ErrNotFound
	}
	return latest, nil
}

func (f *fakeOutfits) ListByMessage(_ context.Context, messageID int64) ([]*chat.Outfits, error) {
	var out []*chat.Outfits
	for _, o := range f.rows {
		if o.MessageId == messageID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OptionIndex < out[j].OptionIndex })
	return out, nil
}

func (f *fakeOutfits) ListByConversation(_ context.Context, conversationID int64) ([]*chat.Outfits, error) {
	var out []*chat.Outfits
	for _, o := range f.rows {
		if o.ConversationId == conversationID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MessageId != out[j].MessageId {
			return out[i].MessageId < out[j].MessageId
		}
		return out[i].OptionIndex < out[j].OptionIndex
	})
	return out, nil
}

func (f *fakeOutfits) DeleteByConversation(_ context.Context, conversationID int64) error {
	out := f.rows[:0]
	for _, o := range f.rows {
		if o.ConversationId != conversationID {
			out = append(out, o)
		}
	}
	f.rows = out
	return nil
}

func newTestStore(t *testing.T) (*Store, *fakeConversations, *fakeMessages, *fakeOutfits) {
	t.Helper()
	convs := newFakeConversations()
	msgs := &fakeMessages{}
	outs := &fakeOutfits{}
	store := NewStore(logx.WithContext(context.Background()), convs, msgs, outs, 16, time.Minute)
	return store, convs, msgs, outs
}

func storedItemsJSON(t *testing.T, items ...StoredItem) string {
	t.Helper()
	raw, err := json.Marshal(items)
	require.NoError(t, err)
	return string(raw)
}

func seedOutfitTurn(t *testing.T, msgs *fakeMessages, outs *fakeOutfits, convID, msgID int64, options ...[]StoredItem) {
	t.Helper()
	_, err := msgs.Insert(context.Background(), &chat.Messages{
		Id: msgID, ConversationId: convID, Role: biz.RoleAssistant, Content: "Here are your outfit options.",
	})
	require.NoError(t, err)
	for i, items := range options {
		_, err := outs.Insert(context.Background(), &chat.Outfits{
			Id: msgID*10 + int64(i), ConversationId: convID, MessageId: msgID,
			OptionIndex: int64(i), Items: storedItemsJSON(t, items...),
		})
		require.NoError(t, err)
	}
}

func TestSnapshotAttachesNoteToOutfitMessage(t *testing.T) {
	store, _, msgs, outs := newTestStore(t)
	const convID = int64(100)

	_, err := msgs.Insert(context.Background(), &chat.Messages{Id: 1, ConversationId: convID, Role: biz.RoleUser, Content: "summer outfit please"})
	require.NoError(t, err)
	seedOutfitTurn(t, msgs, outs, convID, 2,
		[]StoredItem{{Category: outfit.CategoryTop, Candidate: outfit.Candidate{ID: "id-top", Title: "Linen Shirt"}}},
		[]StoredItem{{Category: outfit.CategoryShoes, Candidate: outfit.Candidate{ID: "id-shoes", Title: "Loafers"}}},
	)
	_, err = msgs.Insert(context.Background(), &chat.Messages{Id: 3, ConversationId: convID, Role: biz.RoleUser, Content: "swap the shoes"})
	require.NoError(t, err)

	snap, err := store.Snapshot(context.Background(), convID, -1)
	require.NoError(t, err)

	require.Len(t, snap.Exchanges, 3)
	require.Equal(t, biz.RoleUser, snap.Exchanges[0].Role)
	require.Empty(t, snap.Exchanges[0].Note)
	require.Equal(t, biz.RoleAssistant, snap.Exchanges[1].Role)
	require.Contains(t, snap.Exchanges[1].Note, "SYSTEM NOTE")
	require.Contains(t, snap.Exchanges[1].Note, "--- Outfit Option 1 ---")
	require.Contains(t, snap.Exchanges[1].Note, "--- Outfit Option 2 ---")
	require.Contains(t, snap.Exchanges[1].Note, "- [top] ID: id-top | Name: Linen Shirt")
	require.Empty(t, snap.Exchanges[2].Note)

	require.Equal(t, int64(2), snap.TargetMessage)
	require.Len(t, snap.Options, 2)
	require.Equal(t, "id-shoes", snap.Options[1][0].Candidate.ID)
}

func TestSnapshotFocusedNoteKeepsNumbering(t *testing.T) {
	store, _, msgs, outs := newTestStore(t)
	const convID = int64(101)

	seedOutfitTurn(t, msgs, outs, convID, 2,
		[]StoredItem{{Category: outfit.CategoryTop, Candidate: outfit.Candidate{ID: "a", Title: "A"}}},
		[]StoredItem{{Category: outfit.CategoryShoes, Candidate: outfit.Candidate{ID: "b", Title: "B"}}},
	)

	snap, err := store.Snapshot(context.Background(), convID, 1)
	require.NoError(t, err)

	note := snap.Exchanges[0].Note
	require.NotContains(t, note, "--- Outfit Option 1 ---")
	require.Contains(t, note, "--- Outfit Option 2 ---")
	// 聚焦只影响备注, 选项本身全部保留
	require.Len(t, snap.Options, 2)
}

func TestSnapshotWithoutOutfits(t *testing.T) {
	store, _, msgs, _ := newTestStore(t)
	const convID = int64(102)

	_, err := msgs.Insert(context.Background(), &chat.Messages{Id: 1, ConversationId: convID, Role: biz.RoleUser, Content: "hi"})
	require.NoError(t, err)

	snap, err := store.Snapshot(context.Background(), convID, -1)
	require.NoError(t, err)
	require.Len(t, snap.Exchanges, 1)
	require.Empty(t, snap.Options)
	require.Zero(t, snap.TargetMessage)
}

func TestSnapshotTargetsLatestOutfitMessage(t *testing.T) {
	store, _, msgs, outs := newTestStore(t)
	const convID = int64(103)

	seedOutfitTurn(t, msgs, outs, convID, 2,
		[]StoredItem{{Category: outfit.CategoryTop, Candidate: outfit.Candidate{ID: "old", Title: "Old"}}})
	seedOutfitTurn(t, msgs, outs, convID, 5,
		[]StoredItem{{Category: outfit.CategoryTop, Candidate: outfit.Candidate{ID: "new", Title: "New"}}})

	snap, err := store.Snapshot(context.Background(), convID, -1)
	require.NoError(t, err)

	require.Equal(t, int64(5), snap.TargetMessage)
	require.Equal(t, "new", snap.Options[0][0].Candidate.ID)
	require.Empty(t, snap.Exchanges[0].Note)
	require.Contains(t, snap.Exchanges[1].Note, "ID: new")
}

func TestSnapshotCachedUntilInvalidated(t *testing.T) {
	store, _, msgs, _ := newTestStore(t)
	const convID = int64(104)

	_, err := msgs.Insert(context.Background(), &chat.Messages{Id: 1, ConversationId: convID, Role: biz.RoleUser, Content: "hi"})
	require.NoError(t, err)

	_, err = store.Snapshot(context.Background(), convID, -1)
	require.NoError(t, err)
	_, err = store.Snapshot(context.Background(), convID, -1)
	require.NoError(t, err)
	require.Equal(t, 1, msgs.listCalls)

	_, err = store.AppendUserMessage(context.Background(), convID, "and a hat")
	require.NoError(t, err)

	snap, err := store.Snapshot(context.Background(), convID, -1)
	require.NoError(t, err)
	require.Equal(t, 2, msgs.listCalls)
	require.Len(t, snap.Exchanges, 2)
}

func TestAppendAssistantMessagePersistsOptions(t *testing.T) {
	store, _, msgs, outs := newTestStore(t)
	const convID = int64(105)

	remaining := int64(1500)
	results := []*outfit.Result{
		{
			Outfit: outfit.Selection{
				Picks: []outfit.Pick{
					{Category: outfit.CategoryTop, Candidate: &outfit.Candidate{ID: "t1", PriceCents: 2000, Quality: 0.9}},
					{Category: outfit.CategoryShoes, Candidate: nil},
				},
				CostCents: 2000,
				Quality:   0.9,
			},
			CostCents:      2000,
			RemainingCents: &remaining,
		},
		{
			Outfit: outfit.Selection{
				Picks:     []outfit.Pick{{Category: outfit.CategoryTop, Candidate: &outfit.Candidate{ID: "t2", PriceCents: 900, Quality: 0.4}}},
				CostCents: 900,
				Quality:   0.4,
			},
			CostCents: 900,
		},
	}

	msgID, err := store.AppendAssistantMessage(context.Background(), convID, "Here are your outfit options.", results)
	require.NoError(t, err)
	require.NotZero(t, msgID)
	require.Len(t, msgs.rows, 1)
	require.Equal(t, biz.RoleAssistant, msgs.rows[0].Role)

	rows, err := outs.ListByMessage(context.Background(), msgID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	require.Equal(t, int64(0), rows[0].OptionIndex)
	require.True(t, rows[0].RemainingCents.Valid)
	require.Equal(t, int64(1500), rows[0].RemainingCents.Int64)
	items, err := DecodeItems(rows[0].Items)
	require.NoError(t, err)
	require.Len(t, items, 1) // 跳过的品类不落库
	require.Equal(t, "t1", items[0].ID)
	require.Equal(t, outfit.CategoryTop, items[0].Category)

	require.False(t, rows[1].RemainingCents.Valid)
}

func TestEncodeItemsRoundTrip(t *testing.T) {
	sel := outfit.Selection{
		Picks: []outfit.Pick{
			{Category: outfit.CategoryTop, Candidate: &outfit.Candidate{ID: "x", Title: "Shirt", PriceCents: 1999, Quality: 0.77}},
			{Category: outfit.CategoryBottom, Candidate: nil},
		},
	}

	raw, err := EncodeItems(sel)
	require.NoError(t, err)
	require.Contains(t, raw, `"main_category":"top"`)
	require.Contains(t, raw, `"price_in_cents":1999`)

	items, err := DecodeItems(raw)
	require.NoError(t, err)
	require.Len(t, items, 1)

	prev := PreviousItems(items)
	require.Equal(t, outfit.CategoryTop, prev[0].Category)
	require.Equal(t, "x", prev[0].Candidate.ID)
}

func TestOptionIndexFallback(t *testing.T) {
	snap := &Snapshot{Options: [][]planner.PreviousItem{
		{{Category: outfit.CategoryTop, Candidate: outfit.Candidate{ID: "first"}}},
		{{Category: outfit.CategoryShoes, Candidate: outfit.Candidate{ID: "second"}}},
	}}

	require.Equal(t, "second", snap.Option(1)[0].Candidate.ID)
	require.Equal(t, "first", snap.Option(7)[0].Candidate.ID)
	require.Equal(t, "first", snap.Option(-2)[0].Candidate.ID)

	var empty Snapshot
	require.Nil(t, empty.Option(0))
}

func TestDeleteConversationRemovesEverything(t *testing.T) {
	store, convs, msgs, outs := newTestStore(t)

	conv, err := store.CreateConversation(context.Background(), 7, "female")
	require.NoError(t, err)
	_, err = store.AppendUserMessage(context.Background(), conv.Id, "hello")
	require.NoError(t, err)
	seedOutfitTurn(t, msgs, outs, conv.Id, 99,
		[]StoredItem{{Category: outfit.CategoryTop, Candidate: outfit.Candidate{ID: "z"}}})

	require.NoError(t, store.DeleteConversation(context.Background(), conv.Id))

	require.Empty(t, convs.rows)
	require.Empty(t, msgs.rows)
	require.Empty(t, outs.rows)
}

func TestConversationOwnership(t *testing.T) {
	store, _, _, _ := newTestStore(t)

	conv, err := store.CreateConversation(context.Background(), 7, "male")
	require.NoError(t, err)
	require.Equal(t, biz.ConvStatusAwaitingInput, conv.Status)

	got, err := store.Conversation(context.Background(), conv.Id, 7)
	require.NoError(t, err)
	require.Equal(t, conv.Id, got.Id)

	_, err = store.Conversation(context.Background(), conv.Id, 8)
	require.ErrorIs(t, err, chat.ErrNotFound)
}

func TestUpdateStatePreservesBudget(t *testing.T) {
	store, convs, _, _ := newTestStore(t)

	conv, err := store.CreateConversation(context.Background(), 7, "male")
	require.NoError(t, err)

	require.NoError(t, store.UpdateState(context.Background(), conv.Id, biz.ConvStatusCompleted, outfit.NewBudget(150)))
	require.Equal(t, biz.ConvStatusCompleted, convs.rows[conv.Id].Status)
	require.Equal(t, int64(15000), convs.rows[conv.Id].BudgetCents.Int64)

	budget := PreservedBudget(convs.rows[conv.Id])
	require.NotNil(t, budget)
	require.Equal(t, int64(15000), budget.Cents)

	require.NoError(t, store.UpdateState(context.Background(), conv.Id, biz.ConvStatusCompleted, nil))
	require.False(t, convs.rows[conv.Id].BudgetCents.Valid)
	require.Nil(t, PreservedBudget(convs.rows[conv.Id]))
}

func TestMessageOutfitDecodes(t *testing.T) {
	store, _, msgs, outs := newTestStore(t)
	const convID = int64(106)

	seedOutfitTurn(t, msgs, outs, convID, 4,
		[]StoredItem{{Category: outfit.CategoryTop, Candidate: outfit.Candidate{ID: "only", Title: "Only"}}})

	items, err := store.MessageOutfit(context.Background(), 4, 0)
	require.NoError(t, err)
	require.Equal(t, "only", items[0].ID)

	_, err = store.MessageOutfit(context.Background(), 4, 9)
	require.ErrorIs(t, err, chat.ErrNotFound)
}

func TestConversationDetailGroupsOutfits(t *testing.T) {
	store, _, msgs, outs := newTestStore(t)
	const convID = int64(107)

	_, err := msgs.Insert(context.Background(), &chat.Messages{Id: 1, ConversationId: convID, Role: biz.RoleUser, Content: "q"})
	require.NoError(t, err)
	seedOutfitTurn(t, msgs, outs, convID, 2,
		[]StoredItem{{Category: outfit.CategoryTop, Candidate: outfit.Candidate{ID: "a"}}},
		[]StoredItem{{Category: outfit.CategoryTop, Candidate: outfit.Candidate{ID: "b"}}},
	)

	detail, byMessage, err := store.ConversationDetail(context.Background(), convID)
	require.NoError(t, err)
	require.Len(t, detail, 2)
	require.Len(t, byMessage[2], 2)
	require.Empty(t, byMessage[1])
}
