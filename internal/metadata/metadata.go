package metadata

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gallerix/artwork-marketplace/internal/helper"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/patrickmn/go-cache"
)

var (
	ErrInvalidMetadataUri = errors.New("invalid metadata uri")
	ErrBadMetadataStatus  = errors.New("metadata fetch returned bad status")
)

// Service resolves an artwork's metadata uri and fetches its content for
// display surfaces. The marketplace engine never interprets the uri; this
// is strictly a sidecar for observers.
type Service interface {
	GetMetadata(uri string) (map[string]interface{}, error)
}

type service struct {
	client    *retryablehttp.Client
	ipfsHosts []string
	cache     *cache.Cache
}

func NewMetadataService(client *retryablehttp.Client, ipfsHosts []string) Service {
	return service{client, ipfsHosts, cache.New(10*time.Minute, 30*time.Minute)}
}

func (s service) GetMetadata(uri string) (map[string]interface{}, error) {
	if cached, found := s.cache.Get(uri); found {
		return cached.(map[string]interface{}), nil
	}

	md, err := s.fetch(uri)
	if err != nil {
		return nil, err
	}

	s.cache.Set(uri, md, cache.DefaultExpiration)

	return md, nil
}

func (s service) fetch(uri string) (map[string]interface{}, error) {
	if helper.IsIpfs(uri) {
		var lastErr error
		for _, host := range s.ipfsHosts {
			md, err := s.fetchUrl(helper.ResolveIpfs(uri, host))
			if err == nil {
				return md, nil
			}
			lastErr = err
		}
		return nil, lastErr
	}

	if !helper.IsUrl(uri) {
		return nil, ErrInvalidMetadataUri
	}

	return s.fetchUrl(uri)
}

func (s service) fetchUrl(url string) (map[string]interface{}, error) {
	resp, err := s.client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("%w: %s", ErrBadMetadataStatus, resp.Status)
	}

	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, err
	}

	var md map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &md); err != nil {
		return nil, err
	}

	return md, nil
}
