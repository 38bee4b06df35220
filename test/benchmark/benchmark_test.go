package benchmark

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/smallyu/go-chainkeys/internal/crypto/ecelgamal"
	"github.com/smallyu/go-chainkeys/internal/crypto/elgamal"
	"github.com/smallyu/go-chainkeys/internal/crypto/numtheory"
	"github.com/smallyu/go-chainkeys/internal/keys"
	"github.com/smallyu/go-chainkeys/internal/protocol/kdf"
	"github.com/smallyu/go-chainkeys/internal/protocol/ratchet"
	"github.com/smallyu/go-chainkeys/pkg/chainkeys"
)

// setupPair creates two key pairs under policy.
func setupPair(b *testing.B, policy keys.Policy) (*keys.KeyPair, *keys.KeyPair) {
	b.Helper()
	a, err := keys.Generate(policy, rand.Reader)
	if err != nil {
		b.Fatal(err)
	}
	c, err := keys.Generate(policy, rand.Reader)
	if err != nil {
		b.Fatal(err)
	}
	return a, c
}

func BenchmarkBitcoinAddress(b *testing.B) {
	benchmarkAddress(b, keys.Bitcoin{Network: keys.BitcoinMainNet})
}

func BenchmarkEthereumAddress(b *testing.B) {
	benchmarkAddress(b, keys.Ethereum{})
}

func benchmarkAddress(b *testing.B, policy keys.Policy) {
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		kp, err := keys.Generate(policy, rand.Reader)
		if err != nil {
			b.Fatal(err)
		}
		if _, err := kp.Address(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkKDFRoundTrip(b *testing.B) {
	policy := keys.Ethereum{}
	prover, verifier := setupPair(b, policy)
	pg, err := kdf.New(prover, verifier.EntirePubValue())
	if err != nil {
		b.Fatal(err)
	}
	vg, err := kdf.New(verifier, prover.EntirePubValue())
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		secret, err := pg.GenerateSharedSecret(prover, verifier.EntirePubValue())
		if err != nil {
			b.Fatal(err)
		}
		if _, err := vg.GetNewKeyFromSecret(secret, prover.EntirePubValue(), verifier.EntirePubValue()); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRatchet(b *testing.B) {
	policy := keys.Bitcoin{Network: keys.BitcoinMainNet}
	a, c := setupPair(b, policy)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ism, out, err := ratchet.NewStateMachine(&ratchet.Parameters{
			Self: a, PeerPub: c.EntirePubValue(), Policy: policy, Initiator: true,
		})
		if err != nil {
			b.Fatal(err)
		}
		rsm, _, err := ratchet.NewStateMachine(&ratchet.Parameters{
			Self: c, PeerPub: a.EntirePubValue(), Policy: policy,
		})
		if err != nil {
			b.Fatal(err)
		}
		var confirm []chainkeys.Message
		if _, confirm, err = rsm.Update(out[0]); err != nil {
			b.Fatal(err)
		}
		if _, _, err = ism.Update(confirm[0]); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBSGSTable(b *testing.B) {
	params := elgamal.DefaultParams()
	for i := 0; i < b.N; i++ {
		if _, err := numtheory.NewBabyStepGiantStepWithBound(params.P, params.G, 1800000); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBSGSSolve(b *testing.B) {
	params := elgamal.DefaultParams()
	bsgs, err := numtheory.NewBabyStepGiantStepWithBound(params.P, params.G, 1800000)
	if err != nil {
		b.Fatal(err)
	}
	target := new(big.Int).Exp(params.G, big.NewInt(1799999), params.P)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := bsgs.Solve(target); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSafePrime128(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := numtheory.GenerateSafePrime(rand.Reader, 128, 20); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkElGamalAdditive(b *testing.B) {
	gen, err := elgamal.NewKeyGenerator(rand.Reader, elgamal.DefaultParams(), 1<<16)
	if err != nil {
		b.Fatal(err)
	}
	if _, err := gen.Solver(); err != nil {
		b.Fatal(err)
	}
	m := big.NewInt(65000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c, err := gen.PublicKey().EncryptAdditive(rand.Reader, m)
		if err != nil {
			b.Fatal(err)
		}
		if _, err := gen.DecryptAdditive(c); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkECElGamal(b *testing.B) {
	priv, err := ecelgamal.GenerateKey(rand.Reader)
	if err != nil {
		b.Fatal(err)
	}
	m := big.NewInt(123456789)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c, err := priv.PublicKey.EncryptMessage(rand.Reader, m)
		if err != nil {
			b.Fatal(err)
		}
		if _, err := priv.DecryptMessage(c); err != nil {
			b.Fatal(err)
		}
	}
}
