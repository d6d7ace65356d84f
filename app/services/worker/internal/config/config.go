package config

import (
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

type Config struct {
	LogConf logx.LogConf

	MysqlConf sqlx.SqlConf
	CacheConf cache.CacheConf

	AsynqConf       AsynqRedisConf
	AsynqServerConf AsynqServerConf

	Ark ArkConf
}

type AsynqRedisConf struct {
	Addr string
	Pass string
	DB   int
}

type AsynqServerConf struct {
	Concurrency int
	Queues      map[string]int
}

type ArkConf struct {
	BaseUrl string
	ApiKey  string
	// Models 按顺序尝试, 用第一个初始化成功的模型
	Models []string
}
