// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package config

import (
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/rest"
)

type Config struct {
	rest.RestConf

	Auth AuthConf

	Mysql struct {
		DataSource string
	}
	CacheRedis cache.CacheConf
	BizRedis   RedisConf

	Kafka      KafkaConf
	AsynqRedis AsynqRedisConf

	Es  EsConf
	Ark ArkConf

	Stylist StylistConf

	LogConf logx.LogConf
}

type AuthConf struct {
	AccessSecret  string
	RefreshSecret string
	// AccessExpire/RefreshExpire 单位为秒
	AccessExpire  int64 `json:",default=7200"`
	RefreshExpire int64 `json:",default=604800"`
}

type RedisConf struct {
	Host string
	Pass string `json:",optional"`
}

type KafkaConf struct {
	Brokers          []string `json:",optional"`
	GarmentSyncTopic string   `json:",optional"`
}

type AsynqRedisConf struct {
	Addr string `json:",optional"`
	Pass string `json:",optional"`
	DB   int    `json:",optional"`
}

type EsConf struct {
	Addresses []string `json:",optional"`
	Username  string   `json:",optional"`
	Password  string   `json:",optional"`
	Index     string   `json:",default=garments"`
}

type ArkConf struct {
	BaseUrl string `json:",optional"`
	ApiKey  string `json:",optional"`
	// Models 按顺序降级的聊天模型列表, 首个为主力模型
	Models             []string `json:",optional"`
	EmbeddingModel     string   `json:",optional"`
	EmbeddingDimension int      `json:",default=2048"`
}

type StylistConf struct {
	MaxOutfitOptions          int `json:",default=3"`
	RetrievalLimit            int `json:",default=20"`
	HistoryCacheLimit         int `json:",default=256"`
	HistoryCacheExpireSeconds int `json:",default=60"`
}
