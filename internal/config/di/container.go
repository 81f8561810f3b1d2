package di

import (
	"github.com/gallerix/artwork-marketplace/internal/bank"
	"github.com/gallerix/artwork-marketplace/internal/elastic_search"
	"github.com/gallerix/artwork-marketplace/internal/indexer"
	"github.com/gallerix/artwork-marketplace/internal/messenger"
	"github.com/gallerix/artwork-marketplace/internal/metadata"
	"github.com/gallerix/artwork-marketplace/internal/repository"
	"github.com/gallerix/artwork-marketplace/internal/server"
	"github.com/gallerix/artwork-marketplace/internal/txn"
	"github.com/sarulabs/di/v2"
)

type Container struct {
	ctn di.Container
}

func NewContainer() (*Container, error) {
	builder, err := di.NewBuilder()
	if err != nil {
		return nil, err
	}

	if err := builder.Add(Definitions...); err != nil {
		return nil, err
	}

	return &Container{ctn: builder.Build()}, nil
}

func (c *Container) GetElastic() elastic_search.Index {
	return c.ctn.Get("elastic").(elastic_search.Index)
}

func (c *Container) GetLedger() *bank.Ledger {
	return c.ctn.Get("ledger").(*bank.Ledger)
}

func (c *Container) GetExecutor() *txn.Executor {
	return c.ctn.Get("executor").(*txn.Executor)
}

func (c *Container) GetAuditIndexer() indexer.AuditIndexer {
	return c.ctn.Get("audit.indexer").(indexer.AuditIndexer)
}

func (c *Container) GetAuditRepo() repository.AuditRepository {
	return c.ctn.Get("audit.repo").(repository.AuditRepository)
}

func (c *Container) GetMessenger() messenger.MessageService {
	return c.ctn.Get("messenger").(messenger.MessageService)
}

func (c *Container) GetPublisher() messenger.Publisher {
	return c.ctn.Get("publisher").(messenger.Publisher)
}

func (c *Container) GetMetadataService() metadata.Service {
	return c.ctn.Get("metadata").(metadata.Service)
}

func (c *Container) GetServer() server.Server {
	return c.ctn.Get("server").(server.Server)
}
