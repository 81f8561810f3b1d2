package di

import (
	"time"

	"github.com/gallerix/artwork-marketplace/internal/bank"
	"github.com/gallerix/artwork-marketplace/internal/config"
	"github.com/gallerix/artwork-marketplace/internal/elastic_search"
	"github.com/gallerix/artwork-marketplace/internal/entity"
	"github.com/gallerix/artwork-marketplace/internal/indexer"
	"github.com/gallerix/artwork-marketplace/internal/messenger"
	"github.com/gallerix/artwork-marketplace/internal/metadata"
	"github.com/gallerix/artwork-marketplace/internal/repository"
	"github.com/gallerix/artwork-marketplace/internal/server"
	"github.com/gallerix/artwork-marketplace/internal/txn"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/sarulabs/di/v2"
	"go.uber.org/zap"
)

var Definitions = []di.Def{
	{
		Name: "elastic",
		Build: func(ctn di.Container) (interface{}, error) {
			elastic, err := elastic_search.New()
			if err != nil {
				zap.L().With(zap.Error(err)).Fatal("Failed to start ES")
			}

			return elastic, nil
		},
	},
	{
		Name: "ledger",
		Build: func(ctn di.Container) (interface{}, error) {
			return bank.NewLedger(), nil
		},
	},
	{
		Name: "executor",
		Build: func(ctn di.Container) (interface{}, error) {
			owner := entity.NewAddress(config.Get().Owner)
			if owner.IsNull() {
				zap.L().Fatal("MARKETPLACE_OWNER is not configured")
			}

			return txn.NewExecutor(owner, ctn.Get("ledger").(*bank.Ledger)), nil
		},
	},
	{
		Name: "audit.indexer",
		Build: func(ctn di.Container) (interface{}, error) {
			return indexer.NewAuditIndexer(ctn.Get("elastic").(elastic_search.Index)), nil
		},
	},
	{
		Name: "audit.repo",
		Build: func(ctn di.Container) (interface{}, error) {
			return repository.NewAuditRepository(ctn.Get("elastic").(elastic_search.Index)), nil
		},
	},
	{
		Name: "messenger",
		Build: func(ctn di.Container) (interface{}, error) {
			return messenger.NewMessenger(), nil
		},
	},
	{
		Name: "publisher",
		Build: func(ctn di.Container) (interface{}, error) {
			return messenger.NewPublisher(ctn.Get("messenger").(messenger.MessageService)), nil
		},
	},
	{
		Name: "metadata",
		Build: func(ctn di.Container) (interface{}, error) {
			client := retryablehttp.NewClient()
			client.HTTPClient.Timeout = time.Duration(config.Get().MetadataTimeout) * time.Second
			client.RetryMax = config.Get().MetadataRetries
			client.Logger = nil

			return metadata.NewMetadataService(client, config.Get().IpfsHosts), nil
		},
	},
	{
		Name: "server",
		Build: func(ctn di.Container) (interface{}, error) {
			return server.NewServer(
				ctn.Get("executor").(*txn.Executor),
				ctn.Get("audit.repo").(repository.AuditRepository),
				ctn.Get("metadata").(metadata.Service),
			), nil
		},
	},
}
