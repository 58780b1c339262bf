// Package alphabet defines the Latin alphabet used by the analyzer and the
// reference letter-frequency tables it is matched against.
package alphabet

// Size is the number of letters in the alphabet.
const Size = 26

// Index returns the case-folded position of an ASCII letter.
// Any other rune, including accented letters, reports false.
func Index(r rune) (int, bool) {
	switch {
	case r >= 'A' && r <= 'Z':
		return int(r - 'A'), true
	case r >= 'a' && r <= 'z':
		return int(r - 'a'), true
	default:
		return 0, false
	}
}

// Letter returns the uppercase letter at index i, which must be in [0, Size).
func Letter(i int) byte {
	return byte('A' + Mod(i))
}

// Mod normalizes n into [0, Size).
func Mod(n int) int {
	return ((n % Size) + Size) % Size
}

// Rotate shifts a letter forward by shift positions within its case range.
// Non-letters are returned unchanged.
func Rotate(r rune, shift int) rune {
	switch {
	case r >= 'A' && r <= 'Z':
		return 'A' + rune(Mod(int(r-'A')+shift))
	case r >= 'a' && r <= 'z':
		return 'a' + rune(Mod(int(r-'a')+shift))
	default:
		return r
	}
}
