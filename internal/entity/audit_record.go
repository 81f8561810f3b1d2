package entity

import (
	"fmt"
	"time"
)

// AuditRecord is the flattened, persisted form of an audit event: one
// document per emission, append-only. Amount fields are decimal strings
// so arbitrary-width values survive the round trip.
type AuditRecord struct {
	Id   string    `json:"id"`
	Time time.Time `json:"time"`
	Type string    `json:"type"`

	TokenId  uint64   `json:"tokenId,omitempty"`
	TokenIds []uint64 `json:"tokenIds,omitempty"`

	Artist  Address `json:"artist,omitempty"`
	Seller  Address `json:"seller,omitempty"`
	Buyer   Address `json:"buyer,omitempty"`
	Account Address `json:"account,omitempty"`

	Price    string `json:"price,omitempty"`
	NewPrice string `json:"newPrice,omitempty"`
	NewMax   string `json:"newMax,omitempty"`
	NewFee   uint64 `json:"newFee,omitempty"`
	Flag     *bool  `json:"flag,omitempty"`
}

func (a AuditRecord) Slug() string {
	return fmt.Sprintf("audit-%s", a.Id)
}
