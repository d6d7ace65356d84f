package planner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/zeromicro/go-zero/core/logx"
)

const (
	maxRetriesPerModel = 2
	initialRetryDelay  = time.Second
	backoffMultiplier  = 2
)

// FallbackModel 按顺序尝试多个聊天模型, 仅在限流错误时重试与切换
type FallbackModel struct {
	log    logx.Logger
	names  []string
	models []model.BaseChatModel
}

// NewFallbackModel 组装模型序列, 首个为主力模型
func NewFallbackModel(logger logx.Logger, names []string, models []model.BaseChatModel) (*FallbackModel, error) {
	if len(models) == 0 {
		return nil, fmt.Errorf("at least one chat model is required")
	}
	if len(names) != len(models) {
		return nil, fmt.Errorf("model names and instances mismatch: %d vs %d", len(names), len(models))
	}
	return &FallbackModel{log: logger, names: names, models: models}, nil
}

func (f *FallbackModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	var lastErr error
	for i, m := range f.models {
		delay := initialRetryDelay
		for attempt := 0; attempt < maxRetriesPerModel; attempt++ {
			msg, err := m.Generate(ctx, input, opts...)
			if err == nil {
				if i > 0 {
					f.log.Infow("fallback chat model succeeded", logx.Field("model", f.names[i]))
				}
				return msg, nil
			}
			if !isRateLimited(err) {
				return nil, err
			}

			lastErr = err
			f.log.Errorw("chat model rate limited",
				logx.Field("model", f.names[i]),
				logx.Field("attempt", attempt+1),
				logx.Field("err", err))

			if attempt < maxRetriesPerModel-1 {
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(delay):
				}
				delay *= backoffMultiplier
			}
		}
		if i < len(f.models)-1 {
			f.log.Infow("switching to fallback chat model", logx.Field("model", f.names[i+1]))
		}
	}
	return nil, fmt.Errorf("all chat models exhausted: %w", lastErr)
}

func (f *FallbackModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	var lastErr error
	for i, m := range f.models {
		reader, err := m.Stream(ctx, input, opts...)
		if err == nil {
			return reader, nil
		}
		if !isRateLimited(err) {
			return nil, err
		}
		lastErr = err
		f.log.Errorw("chat model stream rate limited",
			logx.Field("model", f.names[i]), logx.Field("err", err))
	}
	return nil, fmt.Errorf("all chat models exhausted: %w", lastErr)
}

// isRateLimited 识别 429 与配额类错误, 其余错误立即上抛
func isRateLimited(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{
		"429",
		"rate limit",
		"quota exceeded",
		"resource exhausted",
		"too many requests",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
