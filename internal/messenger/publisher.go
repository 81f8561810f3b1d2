package messenger

import (
	"encoding/json"

	"github.com/gallerix/artwork-marketplace/internal/event"
	"github.com/gallerix/artwork-marketplace/internal/factory"
	"go.uber.org/zap"
)

// Publisher fans committed audit events out to the queue for external
// consumers (indexers, UIs). Failure to publish is logged, not surfaced:
// the durable trail is the audit index, the queue is a convenience feed.
type Publisher interface {
	Subscribe()
}

type publisher struct {
	messenger MessageService
}

func NewPublisher(messenger MessageService) Publisher {
	return publisher{messenger}
}

var publishedEvents = []event.Type{
	event.ArtworkListedEvent,
	event.BatchListedEvent,
	event.ArtworkSoldEvent,
	event.PriceUpdatedEvent,
	event.ArtworkDelistedEvent,
	event.AdminStatusChangedEvent,
	event.RoyaltyFeeUpdatedEvent,
	event.MaxPriceUpdatedEvent,
}

func (p publisher) Subscribe() {
	for _, eventType := range publishedEvents {
		p.subscribe(eventType)
	}
}

func (p publisher) subscribe(eventType event.Type) {
	event.AddEventListener(eventType, func(msg interface{}) {
		record, err := factory.CreateAuditRecord(eventType, msg)
		if err != nil {
			zap.L().With(zap.Error(err), zap.String("type", string(eventType))).
				Error("Publisher: Failed to create audit record")
			return
		}

		body, err := json.Marshal(record)
		if err != nil {
			zap.L().With(zap.Error(err)).Error("Publisher: Failed to marshal audit record")
			return
		}

		if err := p.messenger.SendMessage(AuditEvents, body); err != nil {
			zap.L().With(zap.Error(err), zap.String("id", record.Id)).Error("Publisher: Failed to publish audit record")
		}
	})
}
