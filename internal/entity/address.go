package entity

import "strings"

// Address identifies a principal (an account calling into the
// marketplace). The zero value is the null principal.
type Address string

const NullAddress Address = ""

func NewAddress(addr string) Address {
	return Address(strings.ToLower(addr))
}

func (a Address) IsNull() bool {
	return a == NullAddress
}

func (a Address) String() string {
	return string(a)
}
