package event

type Type string

const (
	ArtworkListedEvent      Type = "ArtworkListedEvent"
	BatchListedEvent        Type = "BatchListedEvent"
	ArtworkSoldEvent        Type = "ArtworkSoldEvent"
	PriceUpdatedEvent       Type = "PriceUpdatedEvent"
	ArtworkDelistedEvent    Type = "ArtworkDelistedEvent"
	AdminStatusChangedEvent Type = "AdminStatusChangedEvent"
	RoyaltyFeeUpdatedEvent  Type = "RoyaltyFeeUpdatedEvent"
	MaxPriceUpdatedEvent    Type = "MaxPriceUpdatedEvent"
)

// Message is a typed event payload pending emission. Mutating operations
// buffer Messages while they run; the executor emits them only once the
// operation has committed.
type Message struct {
	Type    Type
	Payload interface{}
}
