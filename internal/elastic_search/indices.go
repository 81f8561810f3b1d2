package elastic_search

import (
	"fmt"

	"github.com/gallerix/artwork-marketplace/internal/config"
)

type Indices string

var (
	AuditIndex Indices = "audit"
)

// Get prefixes the network and index namespace.
func (i *Indices) Get() string {
	return fmt.Sprintf("%s.%s.%s", config.Get().Network, config.Get().Index, string(*i))
}

var mappings = map[Indices]string{
	AuditIndex: `{
  "mappings": {
    "properties": {
      "id":       {"type": "keyword"},
      "time":     {"type": "date"},
      "type":     {"type": "keyword"},
      "tokenId":  {"type": "long"},
      "tokenIds": {"type": "long"},
      "artist":   {"type": "keyword"},
      "seller":   {"type": "keyword"},
      "buyer":    {"type": "keyword"},
      "account":  {"type": "keyword"},
      "price":    {"type": "keyword"},
      "newPrice": {"type": "keyword"},
      "newMax":   {"type": "keyword"},
      "newFee":   {"type": "long"},
      "flag":     {"type": "boolean"}
    }
  }
}`,
}
