package bootstrap

import (
	"github.com/hibiken/asynq"

	"StylistAI/app/services/worker/internal/mq"
	"StylistAI/app/services/worker/internal/svc"
)

func StartAsynq(sc *svc.ServiceContext) func() {
	srv := asynq.NewServer(asynq.RedisClientOpt{
		Addr:     sc.Config.AsynqConf.Addr,
		Password: sc.Config.AsynqConf.Pass,
		DB:       sc.Config.AsynqConf.DB,
	}, asynq.Config{
		Concurrency: sc.Config.AsynqServerConf.Concurrency,
		Queues:      sc.Config.AsynqServerConf.Queues,
	})
	mux := mq.NewAsynqMux(sc)
	go func() {
		if err := srv.Run(mux); err != nil {
			panic(err)
		}
	}()
	return func() {
		srv.Shutdown()
	}
}
