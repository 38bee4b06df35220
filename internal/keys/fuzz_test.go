package keys

import (
	"testing"
)

func FuzzFromHex(f *testing.F) {
	f.Add(btcPrivHex)
	f.Add("")
	f.Add("zz")

	f.Fuzz(func(t *testing.T, s string) {
		kp, err := FromHex(ethPolicy, s)
		if err != nil {
			return
		}
		// Valid imports must round trip modulo the curve order.
		if _, err := FromHex(ethPolicy, kp.PrivateKeyHex()); err != nil {
			t.Fatalf("re-import failed: %v", err)
		}
	})
}

func FuzzParsePublicKeyString(f *testing.F) {
	f.Add(ethPubXY)
	f.Add(btcFullPub)
	f.Add("04")

	f.Fuzz(func(t *testing.T, s string) {
		pub, err := ParsePublicKeyString(s)
		if err != nil {
			return
		}
		if _, err := ParsePublicKeyString(PublicKeyString(pub)); err != nil {
			t.Fatalf("re-parse failed: %v", err)
		}
	})
}

func FuzzValidateAddress(f *testing.F) {
	f.Add(btcAddress)
	f.Add(ethAddress)
	f.Add("0x")

	f.Fuzz(func(t *testing.T, s string) {
		// Must not panic.
		_ = btcPolicy.ValidateAddress(s)
		_ = ethPolicy.ValidateAddress(s)
	})
}
