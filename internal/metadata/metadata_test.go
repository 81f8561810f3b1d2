package metadata_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gallerix/artwork-marketplace/internal/metadata"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient() *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = 0
	client.Logger = nil

	return client
}

func TestGetMetadata(t *testing.T) {
	var hits int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name": "Sunset", "image": "ipfs://Qm"}`))
	}))
	defer ts.Close()

	service := metadata.NewMetadataService(newClient(), nil)

	md, err := service.GetMetadata(ts.URL + "/metadata/1")
	require.NoError(t, err)
	assert.Equal(t, "Sunset", md["name"])

	// Second lookup is served from cache.
	_, err = service.GetMetadata(ts.URL + "/metadata/1")
	require.NoError(t, err)
	assert.Equal(t, 1, hits)
}

func TestGetMetadataBadStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer ts.Close()

	service := metadata.NewMetadataService(newClient(), nil)

	_, err := service.GetMetadata(ts.URL + "/metadata/1")
	assert.ErrorIs(t, err, metadata.ErrBadMetadataStatus)
}

func TestGetMetadataInvalidUri(t *testing.T) {
	service := metadata.NewMetadataService(newClient(), nil)

	_, err := service.GetMetadata("not a uri")
	assert.ErrorIs(t, err, metadata.ErrInvalidMetadataUri)
}

func TestGetMetadataResolvesIpfsThroughGateways(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/ipfs/")
		_, _ = w.Write([]byte(`{"name": "Dunes"}`))
	}))
	defer ts.Close()

	service := metadata.NewMetadataService(newClient(), []string{ts.URL})

	md, err := service.GetMetadata("ipfs://QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG")
	require.NoError(t, err)
	assert.Equal(t, "Dunes", md["name"])
}
