package entity

import (
	"fmt"
	"math/big"
	"time"

	"github.com/nu7hatch/gouuid"
)

// Audit events are the sole durable record of state changes. Each one is
// emitted exactly once, in the order the state changes occur, and is never
// read back by the engine itself.

type AuditEvent struct {
	Id   string    `json:"id"`
	Time time.Time `json:"time"`
}

func newAuditEvent() AuditEvent {
	u, _ := uuid.NewV4()
	return AuditEvent{Id: u.String(), Time: time.Now()}
}

func (e AuditEvent) Slug() string {
	return fmt.Sprintf("event-%s", e.Id)
}

type ArtworkListed struct {
	AuditEvent
	TokenId uint64   `json:"tokenId"`
	Artist  Address  `json:"artist"`
	Price   *big.Int `json:"price"`
}

type BatchListed struct {
	AuditEvent
	TokenIds []uint64 `json:"tokenIds"`
}

type ArtworkSold struct {
	AuditEvent
	TokenId uint64   `json:"tokenId"`
	Seller  Address  `json:"seller"`
	Buyer   Address  `json:"buyer"`
	Price   *big.Int `json:"price"`
}

type PriceUpdated struct {
	AuditEvent
	TokenId  uint64   `json:"tokenId"`
	NewPrice *big.Int `json:"newPrice"`
}

type ArtworkDelisted struct {
	AuditEvent
	TokenId uint64 `json:"tokenId"`
}

type AdminStatusChanged struct {
	AuditEvent
	Account Address `json:"account"`
	Flag    bool    `json:"flag"`
}

type RoyaltyFeeUpdated struct {
	AuditEvent
	NewFee uint64 `json:"newFee"`
}

type MaxPriceUpdated struct {
	AuditEvent
	NewMax *big.Int `json:"newMax"`
}

func NewArtworkListed(tokenId uint64, artist Address, price *big.Int) ArtworkListed {
	return ArtworkListed{AuditEvent: newAuditEvent(), TokenId: tokenId, Artist: artist, Price: price}
}

func NewBatchListed(tokenIds []uint64) BatchListed {
	return BatchListed{AuditEvent: newAuditEvent(), TokenIds: tokenIds}
}

func NewArtworkSold(tokenId uint64, seller, buyer Address, price *big.Int) ArtworkSold {
	return ArtworkSold{AuditEvent: newAuditEvent(), TokenId: tokenId, Seller: seller, Buyer: buyer, Price: price}
}

func NewPriceUpdated(tokenId uint64, newPrice *big.Int) PriceUpdated {
	return PriceUpdated{AuditEvent: newAuditEvent(), TokenId: tokenId, NewPrice: newPrice}
}

func NewArtworkDelisted(tokenId uint64) ArtworkDelisted {
	return ArtworkDelisted{AuditEvent: newAuditEvent(), TokenId: tokenId}
}

func NewAdminStatusChanged(account Address, flag bool) AdminStatusChanged {
	return AdminStatusChanged{AuditEvent: newAuditEvent(), Account: account, Flag: flag}
}

func NewRoyaltyFeeUpdated(newFee uint64) RoyaltyFeeUpdated {
	return RoyaltyFeeUpdated{AuditEvent: newAuditEvent(), NewFee: newFee}
}

func NewMaxPriceUpdated(newMax *big.Int) MaxPriceUpdated {
	return MaxPriceUpdated{AuditEvent: newAuditEvent(), NewMax: newMax}
}
