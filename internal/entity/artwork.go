package entity

import (
	"fmt"
	"math/big"

	"github.com/gosimple/slug"
)

// Listing is the sale record for a minted artwork. One is created per
// minted id and is never destroyed; it survives delisting and resale as
// provenance. Artist and Uri are immutable after mint.
type Listing struct {
	Price   *big.Int `json:"price"`
	ForSale bool     `json:"forSale"`
	Artist  Address  `json:"artist"`
	Uri     string   `json:"uri"`
}

// Artwork is the full view of a minted token: its listing plus the
// current holder, which changes hands independently of listing fields.
type Artwork struct {
	TokenId uint64  `json:"tokenId"`
	Listing Listing `json:"listing"`
	Owner   Address `json:"owner"`
}

func (a Artwork) Slug() string {
	return CreateArtworkSlug(a.TokenId)
}

func CreateArtworkSlug(tokenId uint64) string {
	return slug.Make(fmt.Sprintf("artwork-%d", tokenId))
}
