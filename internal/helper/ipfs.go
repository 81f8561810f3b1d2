package helper

import (
	"net/url"
	"regexp"
)

var ipfsCid = regexp.MustCompile("(Qm[1-9A-HJ-NP-Za-km-z]{44}.*$)")

func IsUrl(uri string) bool {
	u, err := url.Parse(uri)
	return err == nil && u.Scheme != "" && u.Host != ""
}

func IsIpfs(uri string) bool {
	if parts := ipfsCid.FindStringSubmatch(uri); len(parts) == 2 {
		return true
	}

	if !IsUrl(uri) {
		return false
	}

	u, _ := url.Parse(uri)

	return u.Scheme == "ipfs"
}

// GetIpfs normalizes anything carrying an IPFS CID to an ipfs:// uri.
func GetIpfs(uri string) *string {
	if parts := ipfsCid.FindStringSubmatch(uri); len(parts) == 2 {
		normalized := "ipfs://" + parts[1]
		return &normalized
	}

	if len(uri) >= 7 && uri[:7] == "ipfs://" {
		return &uri
	}

	return nil
}

// ResolveIpfs rewrites an ipfs:// uri against a gateway host.
func ResolveIpfs(uri, gateway string) string {
	normalized := GetIpfs(uri)
	if normalized == nil {
		return uri
	}

	return gateway + "/ipfs/" + (*normalized)[7:]
}
