package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"StylistAI/app/services/worker/internal/bootstrap"
	"StylistAI/app/services/worker/internal/config"
	"StylistAI/app/services/worker/internal/svc"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/logx"
)

var configFile = flag.String("f", "etc/worker.yaml", "the config file")

func main() {
	flag.Parse()

	var c config.Config
	conf.MustLoad(*configFile, &c)

	ctx := svc.NewServiceContext(c)

	stopAsynq := bootstrap.StartAsynq(ctx)
	defer stopAsynq()

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Starting worker, queues %v...\n", c.AsynqServerConf.Queues)
	<-rootCtx.Done()

	logx.Info("worker shutdown gracefully")
}
