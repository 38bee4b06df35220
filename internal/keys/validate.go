package keys

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"
)

var checkAddressCache *lru.Cache

func init() {
	checkAddressCache, _ = lru.New(10240)
}

type checkKey struct {
	policy string
	addr   string
}

// cacheID names a policy in the cache. Bitcoin networks share a name, so the
// version byte is folded in.
func cacheID(policy Policy) string {
	if b, ok := policy.(Bitcoin); ok {
		return fmt.Sprintf("%s/%02x", b.Name(), b.Network)
	}
	return policy.Name()
}

// ValidateAddress checks addr under policy. Results, including failures, are
// cached per policy and address.
func ValidateAddress(policy Policy, addr string) error {
	key := checkKey{policy: cacheID(policy), addr: addr}
	if value, ok := checkAddressCache.Get(key); ok {
		if value == nil {
			return nil
		}
		return value.(error)
	}
	err := policy.ValidateAddress(addr)
	if err != nil {
		checkAddressCache.Add(key, err)
		return err
	}
	checkAddressCache.Add(key, nil)
	return nil
}
