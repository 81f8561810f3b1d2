package indexer

import (
	"github.com/gallerix/artwork-marketplace/internal/elastic_search"
	"github.com/gallerix/artwork-marketplace/internal/event"
	"github.com/gallerix/artwork-marketplace/internal/factory"
	"go.uber.org/zap"
)

// AuditIndexer persists every committed audit event as a document. The
// event manager delivers events synchronously in state-change order, so
// the index mirrors the order of the state transitions.
type AuditIndexer interface {
	Subscribe()
	IndexEvent(eventType event.Type) func(msg interface{})
}

type auditIndexer struct {
	elastic elastic_search.Index
}

func NewAuditIndexer(elastic elastic_search.Index) AuditIndexer {
	return auditIndexer{elastic}
}

var auditedEvents = []event.Type{
	event.ArtworkListedEvent,
	event.BatchListedEvent,
	event.ArtworkSoldEvent,
	event.PriceUpdatedEvent,
	event.ArtworkDelistedEvent,
	event.AdminStatusChangedEvent,
	event.RoyaltyFeeUpdatedEvent,
	event.MaxPriceUpdatedEvent,
}

func (i auditIndexer) Subscribe() {
	for _, eventType := range auditedEvents {
		event.AddEventListener(eventType, i.IndexEvent(eventType))
	}
}

func (i auditIndexer) IndexEvent(eventType event.Type) func(msg interface{}) {
	return func(msg interface{}) {
		record, err := factory.CreateAuditRecord(eventType, msg)
		if err != nil {
			zap.L().With(zap.Error(err), zap.String("type", string(eventType))).
				Error("AuditIndexer: Failed to create audit record")
			return
		}

		i.elastic.Save(elastic_search.AuditIndex.Get(), record)
	}
}
