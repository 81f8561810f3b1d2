package marketplace

import "errors"

var (
	ErrNotOwner = errors.New("caller is not the owner")
	ErrNotAdmin = errors.New("caller is not an admin")
	ErrPaused   = errors.New("marketplace is paused")
	ErrNotFound = errors.New("artwork not found")

	ErrInvalidPrice      = errors.New("invalid price")
	ErrPriceTooHigh      = errors.New("price exceeds max price")
	ErrInvalidMetadata   = errors.New("invalid metadata uri")
	ErrInvalidRoyaltyFee = errors.New("royalty fee exceeds ceiling")
	ErrLengthMismatch    = errors.New("batch arguments length mismatch")
	ErrEmptyBatch        = errors.New("empty batch")

	ErrNotForSale      = errors.New("artwork not for sale")
	ErrWrongPayment    = errors.New("payment does not match price")
	ErrRoyaltyOverflow = errors.New("royalty exceeds sale price")
	ErrTransferFailed  = errors.New("fund transfer failed")
	ErrReentrant       = errors.New("reentrant call")
)
