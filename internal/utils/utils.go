package utils

// RoundUp2 - Rounds a value up to the nearest power of two.
// Values below 2 are rounded up to 2 to keep capacities usable as bit masks.
func RoundUp2(value int) (rounded int) {
	rounded = 2
	for rounded < value {
		rounded <<= 1
	}

	return
}

// IsPow2 - Returns true if the value is a power of two
func IsPow2(value int) bool {
	return value > 0 && value&(value-1) == 0
}
