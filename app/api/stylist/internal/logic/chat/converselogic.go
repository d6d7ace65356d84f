// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"StylistAI/app/api/stylist/internal/logic/helper"
	"StylistAI/app/api/stylist/internal/stylist/history"
	"StylistAI/app/api/stylist/internal/stylist/outfit"
	"StylistAI/app/api/stylist/internal/stylist/planner"
	"StylistAI/app/api/stylist/internal/svc"
	"StylistAI/app/api/stylist/internal/types"
	"StylistAI/app/common/consts/biz"
	"StylistAI/app/common/consts/errno"
	"StylistAI/app/common/util"
	chatmodel "StylistAI/app/dal/chat"
	"StylistAI/app/services/worker/tasks"

	"github.com/hibiken/asynq"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/x/errors"
	"golang.org/x/sync/errgroup"
)

const (
	msgCompleted      = "Here are your outfit options."
	msgAwaitingFollow = "Could you provide more details?"
	msgPlanFailed     = "Failed to generate an outfit plan after successful budget confirmation."
	msgNoValidOutfits = "Failed to generate any valid outfits."
)

// optionPlan 单个搭配选项的装配输入
type optionPlan struct {
	reqs   []outfit.CategoryRequest
	rc     *outfit.RefinementContext
	budget *outfit.Budget
}

type ConverseLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewConverseLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ConverseLogic {
	return &ConverseLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *ConverseLogic) Converse(req *types.ConverseRequest) (resp *types.ConverseResponse, err error) {
	userId, err := util.UserIdFromCtx(l.ctx)
	if err != nil {
		return nil, err
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, errors.New(int(errno.InvalidParam), "query is required")
	}
	if l.svcCtx.Planner == nil {
		return nil, errors.New(int(errno.PlannerUnavailable), "stylist planner unavailable")
	}

	conv, err := l.loadOrCreateConversation(userId, req.ConversationId)
	if err != nil {
		return nil, err
	}

	// API 侧选项序号从 1 开始, 0 表示未聚焦
	focus := int(req.OutfitIndex) - 1

	// 先取快照再落本轮用户消息, 避免规划历史里出现重复的当前问题
	snap, err := l.svcCtx.History.Snapshot(l.ctx, conv.Id, focus)
	if err != nil {
		l.Logger.Errorf("load conversation history failed: %v", err)
		return nil, errors.New(int(errno.InternalError), "load conversation history failed")
	}

	in := &planner.Input{
		Query:   query,
		History: snap.Exchanges,
		Gender:  conv.Gender,
	}

	state, err := l.svcCtx.Planner.Converse(l.ctx, in)
	if err != nil {
		l.Logger.Errorf("dialogue phase failed: %v", err)
		return nil, errors.New(int(errno.PlannerUnavailable), "stylist dialogue failed")
	}

	switch state.Status {
	case planner.StatusGuardrail:
		return nil, errors.New(int(errno.GuardrailRejected), state.Message)

	case planner.StatusAwaitingInput:
		return l.respondAwaiting(conv, query, state)

	case planner.StatusReadyToGenerate:
		return l.generateOutfits(conv, query, snap, in, state, focus)

	default:
		l.Logger.Errorf("unexpected dialogue status %q", state.Status)
		return nil, errors.New(int(errno.PlannerUnavailable), "unexpected dialogue status")
	}
}

func (l *ConverseLogic) loadOrCreateConversation(userId, conversationId int64) (*chatmodel.Conversations, error) {
	if conversationId > 0 {
		conv, err := l.svcCtx.History.Conversation(l.ctx, conversationId, userId)
		if err != nil {
			if err == chatmodel.ErrNotFound {
				return nil, errors.New(int(errno.ConversationNotFound), "conversation not found")
			}
			l.Logger.Errorf("load conversation failed: %v", err)
			return nil, errors.New(int(errno.InternalError), "load conversation failed")
		}
		return conv, nil
	}

	conv, err := l.svcCtx.History.CreateConversation(l.ctx, userId, l.profileGender(userId))
	if err != nil {
		l.Logger.Errorf("create conversation failed: %v", err)
		return nil, errors.New(int(errno.InternalError), "create conversation failed")
	}
	return conv, nil
}

func (l *ConverseLogic) profileGender(userId int64) string {
	user, err := l.svcCtx.UsersModel.FindOne(l.ctx, userId)
	if err != nil {
		l.Logger.Errorf("load user profile failed: %v", err)
		return ""
	}
	return user.Gender
}

// respondAwaiting 追问轮: 落双边消息后把问题原样返回给用户
func (l *ConverseLogic) respondAwaiting(conv *chatmodel.Conversations, query string, state *planner.DialogueState) (*types.ConverseResponse, error) {
	prompt := strings.TrimSpace(state.MissingInfo)
	if prompt == "" {
		prompt = msgAwaitingFollow
	}

	if _, err := l.svcCtx.History.AppendUserMessage(l.ctx, conv.Id, query); err != nil {
		l.Logger.Errorf("append user message failed: %v", err)
		return nil, errors.New(int(errno.InternalError), "persist message failed")
	}
	if _, err := l.svcCtx.History.AppendAssistantMessage(l.ctx, conv.Id, prompt, nil); err != nil {
		l.Logger.Errorf("append assistant message failed: %v", err)
		return nil, errors.New(int(errno.InternalError), "persist message failed")
	}

	if conv.Status != biz.ConvStatusAwaitingInput {
		if err := l.svcCtx.History.UpdateState(l.ctx, conv.Id, biz.ConvStatusAwaitingInput, history.PreservedBudget(conv)); err != nil {
			l.Logger.Errorf("update conversation state failed: %v", err)
		}
	}

	return &types.ConverseResponse{
		StatusCode:        errno.StatusAwaitingInput,
		StatusMsg:         "awaiting input",
		ConversationId:    conv.Id,
		Status:            biz.ConvStatusAwaitingInput,
		Message:           prompt,
		ConversationTitle: l.responseTitle(conv, state),
	}, nil
}

func (l *ConverseLogic) generateOutfits(conv *chatmodel.Conversations, query string, snap *history.Snapshot, in *planner.Input, state *planner.DialogueState, focus int) (*types.ConverseResponse, error) {
	plan, err := l.svcCtx.Planner.GeneratePlan(l.ctx, in)
	if err != nil {
		l.Logger.Errorf("generation phase failed: %v", err)
		return nil, errors.New(int(errno.PlannerUnavailable), msgPlanFailed)
	}

	isRefine := plan.RefinementType == planner.RefinementRefineCurrent
	prev := snap.Option(focus)
	if isRefine && len(prev) == 0 {
		l.Logger.Infow("refinement requested without previous outfit, falling back to new outfit")
		isRefine = false
	}

	plans := l.optionPlans(conv, plan, prev, isRefine)
	if len(plans) == 0 {
		return nil, errors.New(int(errno.PlannerUnavailable), msgPlanFailed)
	}

	results := l.assembleOptions(plans, conv.Gender)

	assembled := make([]*outfit.Result, 0, len(results))
	for _, res := range results {
		if res != nil {
			assembled = append(assembled, res)
		}
	}
	if len(assembled) == 0 {
		return nil, errors.New(int(errno.NoValidOutfits), msgNoValidOutfits)
	}

	assembled = filterWithinBudget(assembled, l.Logger)

	if _, err := l.svcCtx.History.AppendUserMessage(l.ctx, conv.Id, query); err != nil {
		l.Logger.Errorf("append user message failed: %v", err)
		return nil, errors.New(int(errno.InternalError), "persist message failed")
	}
	if _, err := l.svcCtx.History.AppendAssistantMessage(l.ctx, conv.Id, msgCompleted, assembled); err != nil {
		l.Logger.Errorf("append assistant message failed: %v", err)
		return nil, errors.New(int(errno.InternalError), "persist message failed")
	}

	if err := l.svcCtx.History.UpdateState(l.ctx, conv.Id, biz.ConvStatusCompleted, l.preservedBudget(conv, plan, isRefine)); err != nil {
		l.Logger.Errorf("update conversation state failed: %v", err)
	}

	if conv.Title == "" {
		l.enqueueTitleTask(conv.Id)
	}

	views := make([]types.OutfitView, 0, len(assembled))
	for i, res := range assembled {
		views = append(views, helper.ToOutfitView(int64(i+1), res))
	}

	return &types.ConverseResponse{
		StatusCode:        errno.StatusOK,
		StatusMsg:         "ok",
		ConversationId:    conv.Id,
		Status:            biz.ConvStatusCompleted,
		Message:           msgCompleted,
		ConversationTitle: l.responseTitle(conv, state),
		Outfits:           views,
	}, nil
}

// optionPlans 把生成计划翻译成逐选项的装配输入.
// 调整轮只产出一套: 在聚焦选项基础上应用 ADD/REMOVE/REPLACE.
func (l *ConverseLogic) optionPlans(conv *chatmodel.Conversations, plan *planner.GenerationPlan, prev []planner.PreviousItem, isRefine bool) []optionPlan {
	if isRefine {
		reqs, rc := planner.BuildRefinement(prev, plan.Modifications, plan.HardConstraints)
		if len(reqs) == 0 && len(rc.Previous) == 0 {
			return nil
		}
		budget := history.PreservedBudget(conv)
		if plan.MaxBudget > 0 {
			budget = outfit.NewBudget(plan.MaxBudget)
		}
		return []optionPlan{{reqs: reqs, rc: rc, budget: budget}}
	}

	options := plan.Outfits
	if limit := l.maxOptions(); len(options) > limit {
		l.Logger.Infow("truncating outfit options",
			logx.Field("requested", len(options)), logx.Field("limit", limit))
		options = options[:limit]
	}

	plans := make([]optionPlan, 0, len(options))
	for _, opt := range options {
		reqs := opt.CategoryRequests(plan.HardConstraints)
		if len(reqs) == 0 {
			continue
		}
		plans = append(plans, optionPlan{reqs: reqs, budget: plan.ResolveBudget(opt)})
	}
	return plans
}

func (l *ConverseLogic) maxOptions() int {
	if limit := l.svcCtx.Config.Stylist.MaxOutfitOptions; limit > 0 {
		return limit
	}
	return 3
}

// assembleOptions 并行装配各选项, 单个选项失败只跳过不拖垮整轮
func (l *ConverseLogic) assembleOptions(plans []optionPlan, gender string) []*outfit.Result {
	results := make([]*outfit.Result, len(plans))

	var g errgroup.Group
	for i, op := range plans {
		g.Go(func() error {
			res, err := l.assembleOption(op, gender)
			if err != nil {
				l.Logger.Errorw("outfit option failed",
					logx.Field("option", i+1), logx.Field("err", err))
				return nil
			}
			results[i] = res
			return nil
		})
	}
	g.Wait()

	return results
}

func (l *ConverseLogic) assembleOption(op optionPlan, gender string) (*outfit.Result, error) {
	m := outfit.BuildMatrix(op.reqs, op.rc)
	if len(m) == 0 {
		return nil, outfit.ErrNoCandidates
	}

	unlocked := m.Unlocked()
	searchReqs := make([]outfit.CategoryRequest, len(unlocked))
	for j, idx := range unlocked {
		searchReqs[j] = m[idx].Request
	}

	retrieved, err := l.svcCtx.Searcher.Retrieve(l.ctx, searchReqs, gender, op.budget)
	if err != nil {
		return nil, fmt.Errorf("retrieve candidates: %w", err)
	}

	m, err = outfit.MergeRetrieved(m, retrieved)
	if err != nil {
		return nil, err
	}

	feasible, full, err := outfit.Assemble(m, op.budget)
	if err != nil {
		return nil, err
	}
	return outfit.Select(m, op.budget, feasible, full)
}

// filterWithinBudget 只要有选项在预算内, 就过滤掉超预算的兜底选项
func filterWithinBudget(results []*outfit.Result, log logx.Logger) []*outfit.Result {
	within := make([]*outfit.Result, 0, len(results))
	for _, res := range results {
		if res.RemainingCents == nil || *res.RemainingCents >= 0 {
			within = append(within, res)
		}
	}
	if len(within) == 0 || len(within) == len(results) {
		return results
	}
	log.Infow("filtered over-budget outfit options",
		logx.Field("dropped", len(results)-len(within)))
	return within
}

func (l *ConverseLogic) preservedBudget(conv *chatmodel.Conversations, plan *planner.GenerationPlan, isRefine bool) *outfit.Budget {
	if plan.MaxBudget > 0 {
		return outfit.NewBudget(plan.MaxBudget)
	}
	if isRefine {
		return history.PreservedBudget(conv)
	}
	return nil
}

func (l *ConverseLogic) responseTitle(conv *chatmodel.Conversations, state *planner.DialogueState) string {
	if conv.Title != "" {
		return conv.Title
	}
	return strings.TrimSpace(state.ConversationTitle)
}

func (l *ConverseLogic) enqueueTitleTask(conversationId int64) {
	if l.svcCtx.AsynqClient == nil {
		l.Logger.Infow("title task skipped, asynq client disabled")
		return
	}

	payload, err := json.Marshal(tasks.GenerateTitlePayload{ConversationId: conversationId})
	if err != nil {
		l.Logger.Errorf("marshal title task payload failed: %v", err)
		return
	}
	task := asynq.NewTask(tasks.TaskGenerateTitle, payload)
	if _, err := l.svcCtx.AsynqClient.Enqueue(task, asynq.Queue(tasks.QueueStylist)); err != nil {
		l.Logger.Errorf("enqueue title task failed: %v", err)
	}
}
