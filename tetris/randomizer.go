package tetris

import "math/rand/v2"

// Randomizer picks the variant of each new piece.
type Randomizer interface {
	Next() Variant
}

// Uniform picks every variant with equal probability.
type Uniform struct {
	rng *rand.Rand
}

// NewUniform creates a uniform randomizer seeded with seed.
func NewUniform(seed uint64) *Uniform {
	return &Uniform{rng: rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))}
}

func (u *Uniform) Next() Variant {
	return Variant(u.rng.IntN(VariantCount))
}

// Bag deals all seven variants in a shuffled order before reshuffling.
type Bag struct {
	rng     *rand.Rand
	pending []Variant
}

// NewBag creates a 7-bag randomizer seeded with seed.
func NewBag(seed uint64) *Bag {
	return &Bag{rng: rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))}
}

func (b *Bag) Next() Variant {
	if len(b.pending) == 0 {
		b.pending = Variants()
		b.rng.Shuffle(len(b.pending), func(i, j int) {
			b.pending[i], b.pending[j] = b.pending[j], b.pending[i]
		})
	}
	v := b.pending[0]
	b.pending = b.pending[1:]
	return v
}

// Sequence deals a fixed list of variants, starting over at the end.
type Sequence struct {
	variants []Variant
	pos      int
}

// NewSequence creates a randomizer that cycles through vs. It panics if vs
// is empty.
func NewSequence(vs ...Variant) *Sequence {
	if len(vs) == 0 {
		panic("tetris: empty sequence")
	}
	return &Sequence{variants: vs}
}

func (s *Sequence) Next() Variant {
	v := s.variants[s.pos]
	s.pos = (s.pos + 1) % len(s.variants)
	return v
}
