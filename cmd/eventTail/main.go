package main

import (
	"encoding/json"

	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/gallerix/artwork-marketplace/internal/config"
	"github.com/gallerix/artwork-marketplace/internal/entity"
	"github.com/gallerix/artwork-marketplace/internal/messenger"
	"go.uber.org/zap"
)

// eventTail is a reference consumer for the audit event feed: it drains
// the queue and logs each record the marketplace published.
func main() {
	config.Init("eventTail")

	messageService := messenger.NewMessenger()

	zap.L().Info("Subscribing to audit events")
	messages := make(chan *sqs.Message, 10)
	go messageService.PollMessages(messenger.AuditEvents, messages)

	for message := range messages {
		var record entity.AuditRecord
		if err := json.Unmarshal([]byte(*message.Body), &record); err != nil {
			zap.L().With(zap.Error(err)).Error("Failed to read message")
			continue
		}

		zap.L().With(
			zap.String("id", record.Id),
			zap.String("type", record.Type),
			zap.Uint64("tokenId", record.TokenId),
		).Info("Audit event")

		if err := messageService.DeleteMessage(messenger.AuditEvents, message); err != nil {
			zap.L().With(zap.Error(err)).Error("Failed to delete message")
		}
	}
}
