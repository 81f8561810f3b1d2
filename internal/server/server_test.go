package server_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gallerix/artwork-marketplace/internal/bank"
	"github.com/gallerix/artwork-marketplace/internal/entity"
	"github.com/gallerix/artwork-marketplace/internal/server"
	"github.com/gallerix/artwork-marketplace/internal/txn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	owner = entity.NewAddress("0xaaaa")
	alice = entity.NewAddress("0xa11ce")
	bob   = entity.NewAddress("0xb0b")
)

type fakeAuditRepo struct {
	records []entity.AuditRecord
}

func (r fakeAuditRepo) GetRecordsByTokenId(tokenId uint64) ([]entity.AuditRecord, error) {
	return r.records, nil
}

func (r fakeAuditRepo) GetRecord(id string) (entity.AuditRecord, error) {
	return entity.AuditRecord{}, nil
}

type fakeMetadataService struct {
	metadata map[string]interface{}
	err      error
}

func (s fakeMetadataService) GetMetadata(uri string) (map[string]interface{}, error) {
	return s.metadata, s.err
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	executor := txn.NewExecutor(owner, bank.NewLedger())
	s := server.NewServer(executor, fakeAuditRepo{}, fakeMetadataService{metadata: map[string]interface{}{"name": "Sunset"}})

	ts := httptest.NewServer(s.Router())
	t.Cleanup(ts.Close)

	return ts
}

func call(t *testing.T, ts *httptest.Server, method, path string, caller entity.Address, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, ts.URL+path, &buf)
	require.NoError(t, err)
	if !caller.IsNull() {
		req.Header.Set("X-Caller", caller.String())
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&decoded)

	return resp, decoded
}

func TestMintAndGetListing(t *testing.T) {
	ts := newTestServer(t)

	resp, body := call(t, ts, "POST", "/artworks", alice, map[string]string{"uri": "ipfs://x", "price": "1000000"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, float64(1), body["tokenId"])

	resp, body = call(t, ts, "GET", "/artworks/1", entity.NullAddress, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "1000000", body["price"])
	assert.Equal(t, true, body["forSale"])
	assert.Equal(t, alice.String(), body["artist"])
	assert.Equal(t, alice.String(), body["owner"])
	assert.Equal(t, "ipfs://x", body["uri"])
}

func TestMintValidationOverHttp(t *testing.T) {
	ts := newTestServer(t)

	resp, body := call(t, ts, "POST", "/artworks", alice, map[string]string{"uri": "", "price": "100"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["error"], "metadata")

	resp, _ = call(t, ts, "POST", "/artworks", alice, map[string]string{"uri": "ipfs://x", "price": "0"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = call(t, ts, "POST", "/artworks", alice, map[string]string{"uri": "ipfs://x", "price": "not-a-number"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMintBatchOverHttp(t *testing.T) {
	ts := newTestServer(t)

	resp, body := call(t, ts, "POST", "/artworks/batch", alice, map[string]interface{}{
		"uris":   []string{"a", "b"},
		"prices": []string{"100", "200"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, []interface{}{float64(1), float64(2)}, body["tokenIds"])

	resp, _ = call(t, ts, "POST", "/artworks/batch", alice, map[string]interface{}{
		"uris":   []string{"a", "b"},
		"prices": []string{"100"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBuyOverHttp(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := call(t, ts, "POST", "/accounts/"+bob.String()+"/deposit", bob, map[string]string{"amount": "1000000"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = call(t, ts, "POST", "/artworks", alice, map[string]string{"uri": "ipfs://x", "price": "1000000"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = call(t, ts, "POST", "/artworks/1/buy", bob, map[string]string{"payment": "1000000"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := call(t, ts, "GET", "/artworks/1", entity.NullAddress, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, bob.String(), body["owner"])
	assert.Equal(t, false, body["forSale"])

	resp, body = call(t, ts, "GET", "/accounts/"+alice.String()+"/balance", entity.NullAddress, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "1000000", body["balance"])
}

func TestBuyWrongPaymentOverHttp(t *testing.T) {
	ts := newTestServer(t)

	call(t, ts, "POST", "/accounts/"+bob.String()+"/deposit", bob, map[string]string{"amount": "1000000"})
	call(t, ts, "POST", "/artworks", alice, map[string]string{"uri": "ipfs://x", "price": "1000000"})

	resp, _ := call(t, ts, "POST", "/artworks/1/buy", bob, map[string]string{"payment": "999999"})
	assert.Equal(t, http.StatusPaymentRequired, resp.StatusCode)

	// State unchanged.
	resp, body := call(t, ts, "GET", "/artworks/1/forsale", entity.NullAddress, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["forSale"])
}

func TestAdminEndpoints(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := call(t, ts, "POST", "/admin/royalty-fee", owner, map[string]interface{}{"bps": 500})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = call(t, ts, "POST", "/admin/royalty-fee", alice, map[string]interface{}{"bps": 500})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = call(t, ts, "POST", "/admin/royalty-fee", owner, map[string]interface{}{"bps": 5001})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = call(t, ts, "POST", "/admin/admins", owner, map[string]interface{}{"account": alice.String(), "flag": true})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = call(t, ts, "POST", "/admin/admins", alice, map[string]interface{}{"account": bob.String(), "flag": true})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestPauseOverHttp(t *testing.T) {
	ts := newTestServer(t)

	call(t, ts, "POST", "/artworks", alice, map[string]string{"uri": "ipfs://x", "price": "100"})

	resp, _ := call(t, ts, "POST", "/admin/pause", owner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = call(t, ts, "POST", "/artworks", alice, map[string]string{"uri": "ipfs://y", "price": "100"})
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	// Queries still work while paused.
	resp, body := call(t, ts, "GET", "/artworks/1/price", entity.NullAddress, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "100", body["price"])

	resp, _ = call(t, ts, "POST", "/admin/unpause", owner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = call(t, ts, "POST", "/artworks", alice, map[string]string{"uri": "ipfs://y", "price": "100"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestQueryAsymmetryOverHttp(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := call(t, ts, "GET", "/artworks/999999", entity.NullAddress, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body := call(t, ts, "GET", "/artworks/999999/price", entity.NullAddress, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "0", body["price"])

	resp, body = call(t, ts, "GET", "/artworks/999999/forsale", entity.NullAddress, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["forSale"])
}

func TestUpdatePriceAndDelistOverHttp(t *testing.T) {
	ts := newTestServer(t)

	call(t, ts, "POST", "/artworks", alice, map[string]string{"uri": "ipfs://x", "price": "100"})

	resp, _ := call(t, ts, "DELETE", "/artworks/1/listing", owner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := call(t, ts, "GET", "/artworks/1/forsale", entity.NullAddress, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["forSale"])

	resp, _ = call(t, ts, "PUT", "/artworks/1/price", owner, map[string]string{"price": "250"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = call(t, ts, "GET", "/artworks/1", entity.NullAddress, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "250", body["price"])
	assert.Equal(t, true, body["forSale"])

	resp, _ = call(t, ts, "PUT", "/artworks/1/price", alice, map[string]string{"price": "300"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestTotalMintedOverHttp(t *testing.T) {
	ts := newTestServer(t)

	for i := 0; i < 3; i++ {
		call(t, ts, "POST", "/artworks", alice, map[string]string{"uri": fmt.Sprintf("ipfs://%d", i), "price": "100"})
	}

	resp, body := call(t, ts, "GET", "/artworks/total", entity.NullAddress, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(3), body["totalMinted"])
}

func TestMetadataOverHttp(t *testing.T) {
	ts := newTestServer(t)

	call(t, ts, "POST", "/artworks", alice, map[string]string{"uri": "ipfs://x", "price": "100"})

	resp, body := call(t, ts, "GET", "/artworks/1/metadata", entity.NullAddress, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Sunset", body["name"])

	resp, _ = call(t, ts, "GET", "/artworks/999/metadata", entity.NullAddress, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRoyaltyInfoOverHttp(t *testing.T) {
	ts := newTestServer(t)

	call(t, ts, "POST", "/artworks", alice, map[string]string{"uri": "ipfs://x", "price": "100"})
	call(t, ts, "POST", "/admin/royalty-fee", owner, map[string]interface{}{"bps": 500})

	resp, body := call(t, ts, "GET", "/artworks/1/royalty?salePrice=1000000", entity.NullAddress, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, alice.String(), body["receiver"])
	assert.Equal(t, "50000", body["amount"])
}
