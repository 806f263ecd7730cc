// This file is part of Zwalker.
//
// Zwalker is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zwalker is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zwalker.  If not, see <https://www.gnu.org/licenses/>.

package random

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// the base seed for unpredictable random numbers
var baseSeed uint64

func init() {
	baseSeed = uint64(time.Now().UnixNano())
}

// Random is a random number generator with a state that can be saved and
// restored.
type Random struct {
	src *rand.PCG
	rng *rand.Rand

	// the number of times the generator has been reseeded. mixed into the
	// unpredictable seed so that two reseeds in the same nanosecond differ
	reseeds uint64

	// use zero seed rather than the random base seed. this is only really
	// useful for normalised instances where random numbers must be predictable
	ZeroSeed bool
}

// NewRandom is the preferred method of initialisation for the Random type.
func NewRandom() *Random {
	rnd := &Random{
		src: rand.NewPCG(0, 0),
	}
	rnd.rng = rand.New(rnd.src)
	rnd.Reseed()
	return rnd
}

// Reseed the generator from an unpredictable source. If ZeroSeed is true then
// the seed is always zero.
func (rnd *Random) Reseed() {
	if rnd.ZeroSeed {
		rnd.src.Seed(0, 0)
		return
	}
	rnd.reseeds++
	rnd.src.Seed(baseSeed, uint64(time.Now().UnixNano())+rnd.reseeds)
}

// Seed the generator deterministically. The same seed will always produce the
// same sequence of numbers.
func (rnd *Random) Seed(seed uint64) {
	rnd.src.Seed(seed, seed^0x9e3779b97f4a7c15)
}

// IntN returns a number in the range [0, n). A value of n less than one will
// return zero.
func (rnd *Random) IntN(n int) int {
	if n < 1 {
		return 0
	}
	return rnd.rng.IntN(n)
}

// MarshalBinary implements the encoding.BinaryMarshaler interface.
func (rnd *Random) MarshalBinary() ([]byte, error) {
	return rnd.src.MarshalBinary()
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
func (rnd *Random) UnmarshalBinary(data []byte) error {
	if err := rnd.src.UnmarshalBinary(data); err != nil {
		return fmt.Errorf("random: %w", err)
	}
	return nil
}
