package main

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/bitmark-inc/config-loader"

	catalog "github.com/shutterclone/photo-catalog"
	"github.com/shutterclone/photo-catalog/externals/cfimages"
	"github.com/shutterclone/photo-catalog/externals/hfinference"
	"github.com/shutterclone/photo-catalog/log"
)

func main() {
	ctx := context.Background()

	config.LoadConfig("CATALOG")

	if err := log.Initialize(viper.GetString("log.level"), viper.GetBool("debug")); err != nil {
		panic(err)
	}

	environment := viper.GetString("environment")

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         viper.GetString("sentry.dsn"),
		Environment: environment,
	}); err != nil {
		log.Panic("Sentry initialization failed", zap.Error(err))
	}

	catalogStore, err := catalog.NewMongodbCatalogStore(ctx, viper.GetString("store.db_uri"), viper.GetString("store.db_name"))
	if err != nil {
		log.Panic("fail to initiate catalog store", zap.Error(err))
	}

	assetStore, err := cfimages.New(
		viper.GetString("cloudflare.account_id"),
		viper.GetString("cloudflare.account_hash"),
		viper.GetString("cloudflare.api_token"),
	)
	if err != nil {
		log.Panic("fail to initiate asset store", zap.Error(err))
	}

	classifier := hfinference.New(
		viper.GetString("huggingface.endpoint"),
		viper.GetString("huggingface.api_token"),
		30*time.Second,
	)

	s := NewCatalogServer(catalogStore, assetStore, classifier, viper.GetString("server.admin_api_token"))
	s.SetupRoute()
	if err := s.Run(viper.GetString("server.port")); err != nil {
		log.Panic("server interrupted", zap.Error(err))
	}
}
