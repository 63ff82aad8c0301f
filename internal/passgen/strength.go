package passgen

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Strength is a coarse password strength class.
type Strength int

const (
	Weak Strength = iota
	Medium
	Strong
)

func (s Strength) String() string {
	switch s {
	case Weak:
		return "Weak"
	case Medium:
		return "Medium"
	case Strong:
		return "Strong"
	default:
		return "Unknown"
	}
}

// digitLike lists characters with numeric type Digit outside category Nd:
// superscripts, subscripts and enclosed digits. Fractions and other numbers
// such as '½' are not digits.
var digitLike = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x00b2, Hi: 0x00b3, Stride: 1},
		{Lo: 0x00b9, Hi: 0x00b9, Stride: 1},
		{Lo: 0x1369, Hi: 0x1371, Stride: 1},
		{Lo: 0x19da, Hi: 0x19da, Stride: 1},
		{Lo: 0x2070, Hi: 0x2070, Stride: 1},
		{Lo: 0x2074, Hi: 0x2079, Stride: 1},
		{Lo: 0x2080, Hi: 0x2089, Stride: 1},
		{Lo: 0x2460, Hi: 0x2468, Stride: 1},
		{Lo: 0x2474, Hi: 0x247c, Stride: 1},
		{Lo: 0x2488, Hi: 0x2490, Stride: 1},
		{Lo: 0x24ea, Hi: 0x24ea, Stride: 1},
		{Lo: 0x24f5, Hi: 0x24fd, Stride: 1},
		{Lo: 0x24ff, Hi: 0x24ff, Stride: 1},
		{Lo: 0x2776, Hi: 0x277e, Stride: 1},
		{Lo: 0x2780, Hi: 0x2788, Stride: 1},
		{Lo: 0x278a, Hi: 0x2792, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x10a40, Hi: 0x10a43, Stride: 1},
		{Lo: 0x1f100, Hi: 0x1f10a, Stride: 1},
	},
	LatinOffset: 2,
}

// ClassifyStrength counts the character categories present (lowercase,
// uppercase, digit, one of Special) and applies the policy:
//
//	length >= 12 and categories >= 3  -> Strong
//	length >= 8  and categories >= 2  -> Medium
//	otherwise                         -> Weak
//
// Length is measured in runes.
func ClassifyStrength(password string) Strength {
	length := utf8.RuneCountInString(password)
	categories := countCategories(password)

	switch {
	case length >= 12 && categories >= 3:
		return Strong
	case length >= 8 && categories >= 2:
		return Medium
	default:
		return Weak
	}
}

// isDigit reports decimal digits of any script plus digitLike characters.
func isDigit(r rune) bool {
	return unicode.IsDigit(r) || unicode.Is(digitLike, r)
}

func countCategories(password string) int {
	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case isDigit(r):
			digit = true
		}
		if strings.ContainsRune(Special, r) {
			special = true
		}
	}

	n := 0
	for _, present := range []bool{lower, upper, digit, special} {
		if present {
			n++
		}
	}
	return n
}
