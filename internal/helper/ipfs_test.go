package helper_test

import (
	"testing"

	"github.com/gallerix/artwork-marketplace/internal/helper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cid = "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"

func TestIsIpfs(t *testing.T) {
	assert.True(t, helper.IsIpfs("ipfs://"+cid))
	assert.True(t, helper.IsIpfs("https://gateway.pinata.cloud/ipfs/"+cid))
	assert.False(t, helper.IsIpfs("https://example.com/metadata/1"))
	assert.False(t, helper.IsIpfs("not a uri"))
}

func TestGetIpfs(t *testing.T) {
	normalized := helper.GetIpfs("https://gateway.pinata.cloud/ipfs/" + cid)
	require.NotNil(t, normalized)
	assert.Equal(t, "ipfs://"+cid, *normalized)

	passthrough := helper.GetIpfs("ipfs://" + cid)
	require.NotNil(t, passthrough)
	assert.Equal(t, "ipfs://"+cid, *passthrough)

	assert.Nil(t, helper.GetIpfs("https://example.com/metadata/1"))
}

func TestResolveIpfs(t *testing.T) {
	resolved := helper.ResolveIpfs("ipfs://"+cid, "https://cloudflare-ipfs.com")
	assert.Equal(t, "https://cloudflare-ipfs.com/ipfs/"+cid, resolved)

	// Non-ipfs uris pass through untouched.
	assert.Equal(t, "https://example.com/1", helper.ResolveIpfs("https://example.com/1", "https://cloudflare-ipfs.com"))
}
