// Package uniquerand draws unique random numbers from a bounded range
// without replacement, backing task.CollectAny's randomized start order
// (see task/any.go). Adapted from the teacher's standalone
// github.com/asmsh/uniquerand-derived helper: the draw-without-replacement
// bitset algorithm is unchanged, but the random source is now a per-Int
// field sourced from math/rand/v2 instead of a package-level mutable
// math/rand.Intn variable, matching the rest of this module's avoidance of
// shared mutable globals in favor of state carried on the value itself
// (internal/state.Shared, executor.Pool all follow the same discipline).
package uniquerand

import (
	"math/rand/v2"
)

// defRange is the default range used for the zero value of the Int.
const defRange = 10

const blockSize = 32

type blockType = uint32

// Int allows returning unique random numbers within a predefined range.
// It keeps track of all generated numbers, via a bitset, and makes sure the
// returned number is unique. The zero value produces unique numbers using
// math/rand/v2 in range [0, 10).
type Int struct {
	draw func(n int) int // random source; defaults to rand/v2 if nil

	r  int         // range
	m  blockType   // block num 0
	em []blockType // block num 1+
}

// Reset sets the range of the Int generator and resets all previous memory.
// If the given range is less than or equal to zero, the default range (10) is used.
func (u *Int) Reset(r int) {
	if r <= 0 {
		r = defRange
	}

	u.r = r
	u.m = 0
	u.em = nil

	l := r / blockSize
	if int(r%blockSize) == 0 {
		l = l - 1
	}
	if l != 0 {
		u.em = make([]blockType, l)
	}
}

// Range returns the current range of the Int generator, which is the exclusive
// upper limit of the unique random number that could be generated, starting from 0.
func (u *Int) Range() int {
	if u.r > 0 {
		return u.r
	}
	return defRange
}

func (u *Int) next(n int) int {
	if u.draw != nil {
		return u.draw(n)
	}
	return rand.IntN(n)
}

func (u *Int) has(n int) (bn int, mb, tm, mm blockType) {
	bn = n / blockSize

	mb = u.m
	if bn > 0 {
		mb = u.em[bn-1]
	}

	sv := n % blockSize     // shift value
	tm = blockType(1 << sv) // target mask
	mm = mb & tm            // masked memory
	return
}

// Get returns a unique random number and ok as true.
// If ok is false, it means that we ran out of unique numbers within the specified range.
func (u *Int) Get() (urn int, ok bool) {
	grn := u.next(u.Range()) // generated random number

	bn, mb, tm, mm := u.has(grn)

	if mm == 0 {
		if bn > 0 {
			u.em[bn-1] = mb | tm
		} else {
			u.m = mb | tm
		}
		return grn, true
	}

	return u.getSlow()
}

func (u *Int) getSlow() (urn int, ok bool) {
	for j := 0; j < blockSize; j++ {
		tm := blockType(1 << j)
		mm := u.m & tm
		if mm != 0 {
			continue
		}
		u.m = u.m | tm
		urn = j
		if urn < u.Range() {
			return urn, true
		}
		return 0, false
	}

	for i, m := range u.em {
		if m == 0 {
			u.em[i] = 1
			urn = i*blockSize + blockSize
			return urn, true
		}

		for j := 0; j < blockSize; j++ {
			tm := blockType(1 << j)
			mm := m & tm
			if mm != 0 {
				continue
			}
			u.em[i] = m | tm
			urn = i*blockSize + j + blockSize
			if urn < u.Range() {
				return urn, true
			}
			return 0, false
		}
	}

	return 0, false
}

// Put returns num to the pool of numbers Get may draw again.
func (u *Int) Put(num int) (ok bool) {
	if num < 0 || num >= u.Range() {
		return false
	}

	bn, mb, tm, mm := u.has(num)

	if mm == 0 {
		return false
	}

	if bn > 0 {
		u.em[bn-1] = mb &^ tm
	} else {
		u.m = mb &^ tm
	}

	return true
}
