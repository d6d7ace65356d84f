package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"StylistAI/app/services/indexer/internal/config"
	"StylistAI/app/services/indexer/internal/es"
	"StylistAI/app/services/indexer/internal/mq"
	"StylistAI/app/services/indexer/internal/svc"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/logx"
	"golang.org/x/sync/errgroup"
)

var configFile = flag.String("f", "etc/indexer.yaml", "the config file")

func main() {
	flag.Parse()

	var c config.Config
	conf.MustLoad(*configFile, &c)
	ctx := svc.NewServiceContext(c)

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ensureIndex(rootCtx, ctx)

	group, groupCtx := errgroup.WithContext(rootCtx)
	group.Go(func() error { return mq.StartGarmentSyncConsumer(groupCtx, ctx) })

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logx.Errorw("indexer stopped with error", logx.Field("err", err))
		os.Exit(1)
	}

	logx.Info("indexer shutdown gracefully")
}

func ensureIndex(ctx context.Context, sc *svc.ServiceContext) {
	if sc.ESClient == nil {
		return
	}

	info, err := es.EnsureGarmentIndex(ctx, sc.ESClient, es.GarmentIndexParams{
		IndexName:     sc.GarmentIndexName(),
		EmbeddingDims: sc.EmbeddingDimension(),
	})
	if err != nil {
		// 映射不兼容无法自愈, 直接退出; 其他错误留给消费循环按条重试
		if errors.Is(err, es.ErrIncompatibleEmbeddingMapping) {
			logx.Errorw("garment index mapping incompatible", logx.Field("index", sc.GarmentIndexName()), logx.Field("err", err))
			os.Exit(1)
		}
		logx.Errorw("ensure garment index failed", logx.Field("index", sc.GarmentIndexName()), logx.Field("err", err))
		return
	}

	logx.Infow("garment index ready",
		logx.Field("index", sc.GarmentIndexName()),
		logx.Field("vector", info.SupportsVector),
		logx.Field("dims", info.EmbeddingDims))
}
