package svc

import (
	"context"

	chatmodel "StylistAI/app/dal/chat"
	"StylistAI/app/services/worker/internal/config"

	arkchat "github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

type ServiceContext struct {
	Config config.Config

	Conversations chatmodel.ConversationsModel
	Messages      chatmodel.MessagesModel

	ChatModel model.BaseChatModel
}

func NewServiceContext(c config.Config) *ServiceContext {
	logx.MustSetup(c.LogConf)

	db := sqlx.NewMysql(c.MysqlConf.DataSource)

	return &ServiceContext{
		Config:        c,
		Conversations: chatmodel.NewConversationsModel(db, c.CacheConf),
		Messages:      chatmodel.NewMessagesModel(db),
		ChatModel:     newChatModel(c),
	}
}

// newChatModel 按配置顺序尝试, 返回第一个初始化成功的模型
func newChatModel(c config.Config) model.BaseChatModel {
	if len(c.Ark.Models) == 0 || c.Ark.ApiKey == "" {
		logx.Infow("chat model disabled, missing models or api key")
		return nil
	}

	for _, name := range c.Ark.Models {
		cm, err := arkchat.NewChatModel(context.Background(), &arkchat.ChatModelConfig{
			BaseURL: c.Ark.BaseUrl,
			APIKey:  c.Ark.ApiKey,
			Model:   name,
		})
		if err != nil {
			logx.Errorw("init ark chat model failed",
				logx.Field("model", name), logx.Field("err", err))
			continue
		}
		logx.Infow("chat model initialized", logx.Field("model", name))
		return cm
	}
	return nil
}
