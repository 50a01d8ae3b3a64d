package probemap

import (
	"fmt"
	"unsafe"
)

// Reports whether x is prime.
// Returns ErrInvalidSize for x < 2, since primality is undefined there.
func IsPrime(x int) (bool, error) {
	if x < 2 {
		return false, fmt.Errorf("%w: %d", ErrInvalidSize, x)
	}

	if x < 4 {
		return true, nil
	}

	if x%2 == 0 {
		return false, nil
	}

	for i := 3; i <= x/i; i += 2 {
		if x%i == 0 {
			return false, nil
		}
	}

	return true, nil
}

// Returns the smallest prime greater than or equal to x.
func NextPrime(x int) (int, error) {
	if x < 2 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidSize, x)
	}

	for {
		// x >= 2 here, IsPrime can't fail.
		if ok, _ := IsPrime(x); ok {
			return x, nil
		}
		x++
	}
}

// Estimates capacity (number of slots) from the given memory size in bytes.
// Only the slot array is accounted, key and value bytes live outside of it.
func CapacityFromSize(size uintptr) int {
	return int(size / unsafe.Sizeof(slot{}))
}
