// Package numtheory implements the number theoretic primitives behind the
// ElGamal and EC-ElGamal schemes: safe prime and generator search, modular
// inverse, modular square root and a baby-step giant-step discrete log
// solver.
package numtheory

import (
	"crypto/rand"
	"io"
	"math/big"

	logging "github.com/ipfs/go-log/v2"
	"github.com/pkg/errors"

	"github.com/smallyu/go-chainkeys/pkg/chainkeys"
)

var log = logging.Logger("numtheory")

// candidatesPerRound scales the safe prime search bound: a search with r
// Miller-Rabin rounds gives up after r*candidatesPerRound candidates.
const candidatesPerRound = 50000

var (
	zero  = big.NewInt(0)
	one   = big.NewInt(1)
	two   = big.NewInt(2)
	three = big.NewInt(3)
	four  = big.NewInt(4)
)

// GenerateSafePrime searches for a prime p of the given bit size such that
// (p-1)/2 is also prime. rounds is the number of Miller-Rabin rounds applied
// to both numbers and also bounds the search.
func GenerateSafePrime(random io.Reader, bits, rounds int) (*big.Int, error) {
	if bits < 8 {
		return nil, errors.New("numtheory: safe prime must be at least 8 bits")
	}
	if rounds <= 0 {
		return nil, errors.New("numtheory: rounds must be positive")
	}

	buf := make([]byte, (bits+7)/8)
	excess := uint(len(buf)*8 - bits)
	limit := rounds * candidatesPerRound

	p := new(big.Int)
	q := new(big.Int)
	for attempt := 0; attempt < limit; attempt++ {
		if _, err := io.ReadFull(random, buf); err != nil {
			return nil, errors.Wrap(err, "numtheory: read random candidate")
		}
		// Clamp to exactly bits wide.
		buf[0] &= byte(0xff >> excess)
		buf[0] |= byte(0x80 >> excess)
		// Safe primes above 7 are 3 mod 4.
		buf[len(buf)-1] |= 0x03

		p.SetBytes(buf)
		q.Rsh(p, 1)
		if !q.ProbablyPrime(rounds) || !p.ProbablyPrime(rounds) {
			continue
		}
		log.Debugf("found %d-bit safe prime after %d candidates", bits, attempt+1)
		return new(big.Int).Set(p), nil
	}
	return nil, errors.Wrapf(chainkeys.ErrSearchExhausted, "numtheory: no safe prime in %d candidates", limit)
}

// RandomNumber returns a uniform value in [2, prime-1).
func RandomNumber(random io.Reader, prime *big.Int) (*big.Int, error) {
	if prime.Cmp(four) < 0 {
		return nil, errors.Errorf("numtheory: prime %s too small", prime)
	}
	span := new(big.Int).Sub(prime, three)
	x, err := rand.Int(random, span)
	if err != nil {
		return nil, errors.Wrap(err, "numtheory: draw random number")
	}
	return x.Add(x, two), nil
}

// GeneratorFromPrime finds a generator of the order (prime-1)/2 subgroup of
// Z*_prime. It tries at most maxAttempts random candidates.
func GeneratorFromPrime(random io.Reader, maxAttempts int, prime *big.Int) (*big.Int, error) {
	order := new(big.Int).Rsh(new(big.Int).Sub(prime, one), 1)
	gcd := new(big.Int)
	check := new(big.Int)
	for attempt := 0; attempt < maxAttempts; attempt++ {
		c, err := RandomNumber(random, prime)
		if err != nil {
			return nil, err
		}
		if gcd.GCD(nil, nil, c, order).Cmp(one) != 0 {
			continue
		}
		if check.Exp(c, order, prime).Cmp(one) != 0 {
			continue
		}
		log.Debugf("found generator after %d attempts", attempt+1)
		return c, nil
	}
	return nil, errors.Wrapf(chainkeys.ErrSearchExhausted, "numtheory: no generator in %d attempts", maxAttempts)
}

// ModInverse computes x^-1 mod m with the extended Euclidean algorithm.
func ModInverse(x, m *big.Int) (*big.Int, error) {
	if m.Cmp(one) <= 0 {
		return nil, errors.Errorf("numtheory: invalid modulus %s", m)
	}
	a := new(big.Int).Mod(x, m)
	b := new(big.Int).Set(m)

	// Invariant: a = s0*x (mod m), b = s1*x (mod m).
	s0, s1 := big.NewInt(1), big.NewInt(0)
	quo, rem, tmp := new(big.Int), new(big.Int), new(big.Int)
	for b.Sign() != 0 {
		quo.QuoRem(a, b, rem)
		a, b, rem = b, rem, a

		tmp.Mul(quo, s1)
		tmp.Sub(s0, tmp)
		s0, s1, tmp = s1, tmp, s0
	}
	if a.Cmp(one) != 0 {
		return nil, errors.Wrapf(chainkeys.ErrNotCoprime, "numtheory: gcd(%s, %s) = %s", x, m, a)
	}
	return s0.Mod(s0, m), nil
}

// SqrtMod returns r with r^2 = n (mod p) for an odd prime p. ok is false
// when n is a quadratic non-residue.
func SqrtMod(n, p *big.Int) (*big.Int, bool) {
	a := new(big.Int).Mod(n, p)
	if a.Sign() == 0 {
		return a, true
	}
	if p.Cmp(two) == 0 {
		return a, true
	}

	pMinus1 := new(big.Int).Sub(p, one)
	half := new(big.Int).Rsh(pMinus1, 1)

	// Euler's criterion.
	if new(big.Int).Exp(a, half, p).Cmp(one) != 0 {
		return nil, false
	}

	if new(big.Int).Mod(p, four).Cmp(three) == 0 {
		e := new(big.Int).Add(p, one)
		e.Rsh(e, 2)
		return new(big.Int).Exp(a, e, p), true
	}

	// Tonelli-Shanks. p-1 = q * 2^s with q odd.
	q := new(big.Int).Set(pMinus1)
	s := 0
	for q.Bit(0) == 0 {
		q.Rsh(q, 1)
		s++
	}

	z := big.NewInt(2)
	for new(big.Int).Exp(z, half, p).Cmp(pMinus1) != 0 {
		z.Add(z, one)
	}

	m := s
	c := new(big.Int).Exp(z, q, p)
	t := new(big.Int).Exp(a, q, p)
	e := new(big.Int).Add(q, one)
	e.Rsh(e, 1)
	r := new(big.Int).Exp(a, e, p)

	t2 := new(big.Int)
	for t.Cmp(one) != 0 {
		// Least i in (0, m) with t^(2^i) = 1.
		i := 0
		t2.Set(t)
		for t2.Cmp(one) != 0 {
			t2.Mul(t2, t2).Mod(t2, p)
			i++
			if i == m {
				return nil, false
			}
		}

		b := new(big.Int).Set(c)
		for j := 0; j < m-i-1; j++ {
			b.Mul(b, b).Mod(b, p)
		}
		m = i
		c.Mul(b, b).Mod(c, p)
		t.Mul(t, c).Mod(t, p)
		r.Mul(r, b).Mod(r, p)
	}
	return r, true
}

// IsSafePrime reports whether p and (p-1)/2 both pass rounds of
// Miller-Rabin.
func IsSafePrime(p *big.Int, rounds int) bool {
	if p.Cmp(zero) <= 0 || !p.ProbablyPrime(rounds) {
		return false
	}
	q := new(big.Int).Rsh(p, 1)
	return q.ProbablyPrime(rounds)
}
