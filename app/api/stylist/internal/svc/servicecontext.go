// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package svc

import (
	"context"
	"time"

	"StylistAI/app/api/stylist/internal/config"
	"StylistAI/app/api/stylist/internal/stylist/history"
	"StylistAI/app/api/stylist/internal/stylist/planner"
	"StylistAI/app/api/stylist/internal/stylist/retrieval"
	"StylistAI/app/common/consts/biz"
	"StylistAI/app/common/middleware"
	"StylistAI/app/common/token"
	chatmodel "StylistAI/app/dal/chat"
	usermodel "StylistAI/app/dal/user"

	"github.com/cloudwego/eino-ext/components/embedding/ark"
	arkchat "github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/hibiken/asynq"
	"github.com/segmentio/kafka-go"
	"github.com/zeromicro/go-zero/core/bloom"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
	"github.com/zeromicro/go-zero/rest"
)

type ServiceContext struct {
	Config         config.Config
	AuthMiddleware rest.Middleware

	MysqlConn          sqlx.SqlConn
	UsersModel         usermodel.UsersModel
	ConversationsModel chatmodel.ConversationsModel
	MessagesModel      chatmodel.MessagesModel
	OutfitsModel       chatmodel.OutfitsModel
	Bloom              *bloom.Filter

	Signer *token.Signer

	Planner   *planner.Planner
	ChatModel model.BaseChatModel
	Searcher  *retrieval.Searcher
	History   *history.Store

	KafkaWriter *kafka.Writer
	AsynqClient *asynq.Client
}

func NewServiceContext(c config.Config) *ServiceContext {
	logx.MustSetup(c.LogConf)
	log := logx.WithContext(context.Background())

	conn := sqlx.NewMysql(c.Mysql.DataSource)
	usersModel := usermodel.NewUsersModel(conn, c.CacheRedis)
	conversationsModel := chatmodel.NewConversationsModel(conn, c.CacheRedis)
	messagesModel := chatmodel.NewMessagesModel(conn)
	outfitsModel := chatmodel.NewOutfitsModel(conn)

	bf := bloom.New(redis.MustNewRedis(redis.RedisConf{
		Host: c.BizRedis.Host,
		Pass: c.BizRedis.Pass,
		Type: redis.NodeType,
	}), biz.USER_LOGIN_BLOOM, biz.USER_LOGIN_BLOOM_BIT)
	bloomPreheat(bf, usersModel)

	signer := token.NewSigner(token.Config{
		AccessSecret:  c.Auth.AccessSecret,
		RefreshSecret: c.Auth.RefreshSecret,
		AccessExpire:  time.Duration(c.Auth.AccessExpire) * time.Second,
		RefreshExpire: time.Duration(c.Auth.RefreshExpire) * time.Second,
	})

	sc := &ServiceContext{
		Config:             c,
		AuthMiddleware:     middleware.NewAuthMiddleware(signer).Handle,
		MysqlConn:          conn,
		UsersModel:         usersModel,
		ConversationsModel: conversationsModel,
		MessagesModel:      messagesModel,
		OutfitsModel:       outfitsModel,
		Bloom:              bf,
		Signer:             signer,
	}

	sc.History = history.NewStore(log, conversationsModel, messagesModel, outfitsModel,
		c.Stylist.HistoryCacheLimit, time.Duration(c.Stylist.HistoryCacheExpireSeconds)*time.Second)

	sc.ChatModel = newChatModel(c)
	if sc.ChatModel != nil {
		p, err := planner.NewPlanner(context.Background(), log, sc.ChatModel)
		if err != nil {
			logx.Errorw("init outfit planner failed", logx.Field("err", err))
		} else {
			sc.Planner = p
			logx.Infow("outfit planner initialized", logx.Field("models", c.Ark.Models))
		}
	}

	sc.Searcher = retrieval.NewSearcher(log, newEsClient(c), newEmbedder(c), c.Es.Index,
		retrieval.WithLimit(c.Stylist.RetrievalLimit))

	if len(c.Kafka.Brokers) > 0 && c.Kafka.GarmentSyncTopic != "" {
		sc.KafkaWriter = &kafka.Writer{
			Addr:                   kafka.TCP(c.Kafka.Brokers...),
			Topic:                  c.Kafka.GarmentSyncTopic,
			RequiredAcks:           kafka.RequireOne,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
			BatchTimeout:           5 * time.Millisecond,
		}
	}

	if c.AsynqRedis.Addr != "" {
		sc.AsynqClient = asynq.NewClient(asynq.RedisClientOpt{
			Addr:     c.AsynqRedis.Addr,
			Password: c.AsynqRedis.Pass,
			DB:       c.AsynqRedis.DB,
		})
	}

	return sc
}

func newEsClient(c config.Config) *elasticsearch.Client {
	if len(c.Es.Addresses) == 0 {
		logx.Infow("elasticsearch client disabled, no addresses configured")
		return nil
	}
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: c.Es.Addresses,
		Username:  c.Es.Username,
		Password:  c.Es.Password,
	})
	if err != nil {
		logx.Errorw("init elasticsearch client failed", logx.Field("err", err))
		return nil
	}
	logx.Infow("elasticsearch client initialized", logx.Field("addresses", c.Es.Addresses))
	return client
}

func newEmbedder(c config.Config) *ark.Embedder {
	if c.Ark.EmbeddingModel == "" || c.Ark.ApiKey == "" {
		logx.Infow("embedding client disabled, missing model or api key")
		return nil
	}
	emb, err := ark.NewEmbedder(context.Background(), &ark.EmbeddingConfig{
		BaseURL: c.Ark.BaseUrl,
		APIKey:  c.Ark.ApiKey,
		Model:   c.Ark.EmbeddingModel,
	})
	if err != nil {
		logx.Errorw("init embedding model failed", logx.Field("err", err))
		return nil
	}
	logx.Infow("embedding model initialized", logx.Field("model", c.Ark.EmbeddingModel))
	return emb
}

// newChatModel 按配置顺序构建 ark 聊天模型并包一层降级
func newChatModel(c config.Config) model.BaseChatModel {
	if len(c.Ark.Models) == 0 || c.Ark.ApiKey == "" {
		logx.Infow("chat models disabled, missing models or api key")
		return nil
	}

	names := make([]string, 0, len(c.Ark.Models))
	models := make([]model.BaseChatModel, 0, len(c.Ark.Models))
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
		names = append(names, name)
		models = append(models, cm)
	}

	fb, err := planner.NewFallbackModel(logx.WithContext(context.Background()), names, models)
	if err != nil {
		logx.Errorw("init chat model fallback failed", logx.Field("err", err))
		return nil
	}
	return fb
}

func bloomPreheat(bf *bloom.Filter, usersModel usermodel.UsersModel) error {
	names, err := usersModel.FindAllUsername(context.TODO())
	if err != nil {
		return err
	}

	for _, name := range names {
		if err := bf.Add([]byte(name)); err != nil {
			return err
		}
	}
	return nil
}
