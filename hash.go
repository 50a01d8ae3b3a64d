package probemap

import "math/bits"

const (
	HashPrime1 = 109423049273943239
	HashPrime2 = 21084079493897983
)

// HashFunc hashes s as a polynomial with base a, reduced modulo m.
// m is never zero. Results outside of [0, m) are reduced by the caller.
type HashFunc func(s string, a, m uint64) uint64

// PolyHash computes (sum of a^(len-1-i) * s[i]) mod m with Horner's rule.
// Every product is taken in 128 bits and reduced right away, so the result is
// exact for any key length, base and modulus.
func PolyHash(s string, a, m uint64) uint64 {
	a %= m

	var h uint64
	for i := 0; i < len(s); i++ {
		hi, lo := bits.Mul64(h, a)
		lo, carry := bits.Add64(lo, uint64(s[i]), 0)
		hi += carry
		// hi < m always holds, since h < m and a < m.
		_, h = bits.Div64(hi, lo, m)
	}

	return h
}

// probeSeq walks the double hashing sequence (h1 + i*step) mod m.
// The step is taken from the second hash modulo m-1 plus one, so it lies in
// [1, m-1] and, m being prime, the walk visits every slot exactly once.
type probeSeq struct {
	index   uint64
	step    uint64
	mod     uint64
	attempt uint64
}

func makeProbeSeq(hash HashFunc, key string, m uint64) probeSeq {
	var step uint64 = 1
	if m > 1 {
		step = hash(key, HashPrime2, m-1)%(m-1) + 1
	}

	return probeSeq{
		index: hash(key, HashPrime1, m) % m,
		step:  step,
		mod:   m,
	}
}

// Whether every slot has been visited.
func (p *probeSeq) done() bool {
	return p.attempt >= p.mod
}

func (p *probeSeq) next() {
	p.index = (p.index + p.step) % p.mod
	p.attempt++
}
