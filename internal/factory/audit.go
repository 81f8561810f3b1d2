package factory

import (
	"errors"

	"github.com/gallerix/artwork-marketplace/internal/entity"
	"github.com/gallerix/artwork-marketplace/internal/event"
)

var ErrUnknownEventType = errors.New("unknown audit event type")

// CreateAuditRecord flattens a typed audit event payload into the single
// document shape the audit index persists.
func CreateAuditRecord(eventType event.Type, msg interface{}) (entity.AuditRecord, error) {
	switch payload := msg.(type) {
	case entity.ArtworkListed:
		return entity.AuditRecord{
			Id:      payload.Id,
			Time:    payload.Time,
			Type:    string(eventType),
			TokenId: payload.TokenId,
			Artist:  payload.Artist,
			Price:   payload.Price.String(),
		}, nil
	case entity.BatchListed:
		return entity.AuditRecord{
			Id:       payload.Id,
			Time:     payload.Time,
			Type:     string(eventType),
			TokenIds: payload.TokenIds,
		}, nil
	case entity.ArtworkSold:
		return entity.AuditRecord{
			Id:      payload.Id,
			Time:    payload.Time,
			Type:    string(eventType),
			TokenId: payload.TokenId,
			Seller:  payload.Seller,
			Buyer:   payload.Buyer,
			Price:   payload.Price.String(),
		}, nil
	case entity.PriceUpdated:
		return entity.AuditRecord{
			Id:       payload.Id,
			Time:     payload.Time,
			Type:     string(eventType),
			TokenId:  payload.TokenId,
			NewPrice: payload.NewPrice.String(),
		}, nil
	case entity.ArtworkDelisted:
		return entity.AuditRecord{
			Id:      payload.Id,
			Time:    payload.Time,
			Type:    string(eventType),
			TokenId: payload.TokenId,
		}, nil
	case entity.AdminStatusChanged:
		flag := payload.Flag
		return entity.AuditRecord{
			Id:      payload.Id,
			Time:    payload.Time,
			Type:    string(eventType),
			Account: payload.Account,
			Flag:    &flag,
		}, nil
	case entity.RoyaltyFeeUpdated:
		return entity.AuditRecord{
			Id:     payload.Id,
			Time:   payload.Time,
			Type:   string(eventType),
			NewFee: payload.NewFee,
		}, nil
	case entity.MaxPriceUpdated:
		return entity.AuditRecord{
			Id:     payload.Id,
			Time:   payload.Time,
			Type:   string(eventType),
			NewMax: payload.NewMax.String(),
		}, nil
	}

	return entity.AuditRecord{}, ErrUnknownEventType
}
