// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package catalog

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"StylistAI/app/api/stylist/internal/stylist/outfit"
	"StylistAI/app/api/stylist/internal/svc"
	"StylistAI/app/api/stylist/internal/types"
	"StylistAI/app/common/consts/errno"

	"github.com/segmentio/kafka-go"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/x/errors"
)

const maxSyncBatch = 500

// garmentSyncEvent 与 indexer 消费端的事件结构保持一致
type garmentSyncEvent struct {
	Op           string  `json:"op"`
	Id           string  `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Url          string  `json:"url"`
	ImageLink    string  `json:"image_link"`
	Brand        string  `json:"brand"`
	Material     string  `json:"material"`
	Color        string  `json:"color"`
	Gender       string  `json:"gender"`
	MainCategory string  `json:"main_category"`
	Price        float64 `json:"price"`
	UpdatedAt    int64   `json:"updated_at"`
}

type SyncGarmentsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewSyncGarmentsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *SyncGarmentsLogic {
	return &SyncGarmentsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *SyncGarmentsLogic) SyncGarments(req *types.SyncGarmentsRequest) (resp *types.SyncGarmentsResponse, err error) {
	if len(req.Garments) == 0 {
		return nil, errors.New(int(errno.InvalidParam), "garments are required")
	}
	if len(req.Garments) > maxSyncBatch {
		return nil, errors.New(int(errno.InvalidParam), "too many garments in one batch")
	}
	if l.svcCtx.KafkaWriter == nil {
		return nil, errors.New(int(errno.InternalError), "garment sync disabled, kafka writer unavailable")
	}

	msgs := make([]kafka.Message, 0, len(req.Garments))
	for _, g := range req.Garments {
		evt, verr := l.toEvent(g)
		if verr != nil {
			return nil, verr
		}
		value, merr := json.Marshal(evt)
		if merr != nil {
			l.Logger.Errorf("marshal garment event failed: %v", merr)
			return nil, errors.New(int(errno.InternalError), "encode garment event failed")
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(evt.Id),
			Value: value,
		})
	}

	if err := l.svcCtx.KafkaWriter.WriteMessages(l.ctx, msgs...); err != nil {
		l.Logger.Errorf("publish garment events failed: %v", err)
		return nil, errors.New(int(errno.InternalError), "publish garment events failed")
	}

	l.Logger.Infow("garment sync batch published", logx.Field("count", len(msgs)))

	resp = &types.SyncGarmentsResponse{
		StatusCode: errno.StatusOK,
		StatusMsg:  "ok",
		Accepted:   len(msgs),
	}
	return
}

func (l *SyncGarmentsLogic) toEvent(g types.GarmentPayload) (*garmentSyncEvent, error) {
	id := strings.TrimSpace(g.Id)
	title := strings.TrimSpace(g.Title)
	if id == "" || title == "" {
		return nil, errors.New(int(errno.InvalidParam), "garment id and title are required")
	}

	category, ok := outfit.NormalizeCategory(g.MainCategory)
	if !ok {
		return nil, errors.New(int(errno.InvalidParam), "unknown garment category: "+g.MainCategory)
	}
	if g.Price < 0 {
		return nil, errors.New(int(errno.InvalidParam), "garment price must not be negative")
	}

	updatedAt := g.UpdatedAt
	if updatedAt <= 0 {
		updatedAt = time.Now().Unix()
	}

	return &garmentSyncEvent{
		Op:           "UPSERT",
		Id:           id,
		Title:        title,
		Description:  strings.TrimSpace(g.Description),
		Url:          strings.TrimSpace(g.Url),
		ImageLink:    strings.TrimSpace(g.ImageLink),
		Brand:        strings.TrimSpace(g.Brand),
		Material:     strings.TrimSpace(g.Material),
		Color:        strings.TrimSpace(g.Color),
		Gender:       strings.ToLower(strings.TrimSpace(g.Gender)),
		MainCategory: category,
		Price:        g.Price,
		UpdatedAt:    updatedAt,
	}, nil
}
