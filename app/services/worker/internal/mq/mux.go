package mq

import (
	"StylistAI/app/services/worker/internal/svc"
	"StylistAI/app/services/worker/tasks"

	"github.com/hibiken/asynq"
)

func NewAsynqMux(sc *svc.ServiceContext) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TaskGenerateTitle, newGenerateTitleHandler(sc))
	return mux
}
