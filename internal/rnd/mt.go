// Package rnd provides the deterministic random stream every game draws from.
package rnd

const (
	mtN         = 624
	mtM         = 397
	matrixA     = 0x9908b0df
	upperMask   = 0x80000000
	lowerMask   = 0x7fffffff
	initMult    = 1812433253
	temperMaskB = 0x9d2c5680
	temperMaskC = 0xefc60000
)

// Source is anything that yields uniformly distributed 32-bit values.
// *MT is the production source; tests script their own.
type Source interface {
	Uint32() uint32
}

// MT is a 32-bit Mersenne Twister (MT19937).
type MT struct {
	mt  [mtN]uint32
	mti int
}

// New returns a generator seeded with init_genrand(seed).
func New(seed uint32) *MT {
	r := &MT{}
	r.Seed(seed)
	return r
}

// Seed resets the generator state.
func (r *MT) Seed(seed uint32) {
	r.mt[0] = seed
	for i := 1; i < mtN; i++ {
		prev := r.mt[i-1]
		r.mt[i] = initMult*(prev^(prev>>30)) + uint32(i)
	}
	r.mti = mtN
}

// Uint32 returns the next value of the stream.
func (r *MT) Uint32() uint32 {
	if r.mti >= mtN {
		r.twist()
	}
	y := r.mt[r.mti]
	r.mti++

	y ^= y >> 11
	y ^= (y << 7) & temperMaskB
	y ^= (y << 15) & temperMaskC
	y ^= y >> 18
	return y
}

// Clone returns an independent copy positioned at the same point in the stream.
func (r *MT) Clone() *MT {
	c := *r
	return &c
}

func (r *MT) twist() {
	for i := 0; i < mtN; i++ {
		y := (r.mt[i] & upperMask) | (r.mt[(i+1)%mtN] & lowerMask)
		next := r.mt[(i+mtM)%mtN] ^ (y >> 1)
		if y&1 != 0 {
			next ^= matrixA
		}
		r.mt[i] = next
	}
	r.mti = 0
}
