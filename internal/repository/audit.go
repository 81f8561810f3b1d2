package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/gallerix/artwork-marketplace/internal/elastic_search"
	"github.com/gallerix/artwork-marketplace/internal/entity"
	"github.com/olivere/elastic/v7"
)

var ErrAuditRecordNotFound = errors.New("audit record not found")

// AuditRepository is the read side of the audit trail, queried by
// external observers. The engine itself never reads it back.
type AuditRepository interface {
	GetRecordsByTokenId(tokenId uint64) ([]entity.AuditRecord, error)
	GetRecord(id string) (entity.AuditRecord, error)
}

type auditRepository struct {
	elastic elastic_search.Index
}

func NewAuditRepository(elastic elastic_search.Index) AuditRepository {
	return auditRepository{elastic}
}

func (r auditRepository) GetRecordsByTokenId(tokenId uint64) ([]entity.AuditRecord, error) {
	query := elastic.NewBoolQuery().Should(
		elastic.NewTermQuery("tokenId", tokenId),
		elastic.NewTermQuery("tokenIds", tokenId),
	)

	result, err := r.elastic.GetClient().
		Search(elastic_search.AuditIndex.Get()).
		Query(query).
		Sort("time", true).
		Size(1000).
		Do(context.Background())

	return r.findMany(result, err)
}

func (r auditRepository) GetRecord(id string) (entity.AuditRecord, error) {
	query := elastic.NewTermQuery("id", id)

	result, err := r.elastic.GetClient().
		Search(elastic_search.AuditIndex.Get()).
		Query(query).
		Size(1).
		Do(context.Background())

	return r.findOne(result, err)
}

func (r auditRepository) findOne(results *elastic.SearchResult, err error) (entity.AuditRecord, error) {
	if err != nil {
		return entity.AuditRecord{}, err
	}

	if len(results.Hits.Hits) == 0 {
		return entity.AuditRecord{}, ErrAuditRecordNotFound
	}

	var record entity.AuditRecord
	err = json.Unmarshal(results.Hits.Hits[0].Source, &record)

	return record, err
}

func (r auditRepository) findMany(results *elastic.SearchResult, err error) ([]entity.AuditRecord, error) {
	records := make([]entity.AuditRecord, 0)

	if err != nil {
		return records, err
	}

	for _, hit := range results.Hits.Hits {
		var record entity.AuditRecord
		if err := json.Unmarshal(hit.Source, &record); err != nil {
			return records, err
		}
		records = append(records, record)
	}

	return records, nil
}
