package game

import "math/rand/v2"

type Roller interface {
	Roll() int
}

type randomRoller struct {
	rng *rand.Rand
}

// NewRoller returns a fair d6. A zero seed draws a random one.
func NewRoller(seed uint64) Roller {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &randomRoller{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *randomRoller) Roll() int {
	return r.rng.IntN(DieSides) + 1
}

// RollerFunc adapts a function to a Roller.
type RollerFunc func() int

func (f RollerFunc) Roll() int {
	return f()
}

func clampFace(face int) int {
	if face < 1 {
		return 1
	}
	if face > DieSides {
		return DieSides
	}
	return face
}
