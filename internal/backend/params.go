package backend

import (
	"golang.org/x/crypto/blake2b"
)

// pointU is the auxiliary generator used for key fragment commitments. It is
// derived by try-and-increment hashing so its discrete log relative to the
// base point is unknown.
var pointU = derivePointU()

func derivePointU() *Point {
	candidate := make([]byte, PointSize)
	candidate[0] = 0x02

	for counter := uint8(0); ; counter++ {
		digest := blake2b.Sum256(append([]byte(tagPointGen), counter))
		copy(candidate[1:], digest[:])

		if point, err := PointFromBytes(candidate); err == nil {
			return point
		}
	}
}
