// Package eclsummary maps Eclipse summary files (.SMSPEC plus .UNSMRY or
// .Snnnn) onto a dense row-major matrix: it resolves the fully-qualified
// column names from the specification arrays, drops void columns, and
// streams every report-step/ministep row into a caller-allocated buffer.
package eclsummary

import "strings"

// Specifier is one of the .SMSPEC arrays that can contribute to qualifying
// a summary vector beyond its keyword.
type Specifier int

const (
	WGNames Specifier = iota
	Nums
	LGRs
	NumLX
	NumLY
	NumLZ
)

// String returns the specifier's 8-byte space-padded keyword as it appears
// in the specification file.
func (s Specifier) String() string {
	switch s {
	case WGNames:
		return "WGNAMES "
	case Nums:
		return "NUMS    "
	case LGRs:
		return "LGRS    "
	case NumLX:
		return "NUMLX   "
	case NumLY:
		return "NUMLY   "
	case NumLZ:
		return "NUMLZ   "
	default:
		return "????????"
	}
}

// PartialIdentifiers returns every specifier that can make Identifies
// return non-zero, so clients can iterate until a vector is fully
// specified.
func PartialIdentifiers() []Specifier {
	return []Specifier{WGNames, Nums, LGRs, NumLX, NumLY, NumLZ}
}

// Identifies reports whether the specifier contributes to qualifying the
// given 8-byte, space-padded keyword. Zero means it does not; a positive
// value means it does, and is the total number of specifiers the keyword
// needs to be fully qualified.
//
// Most vectors are well, group, region or cell specific and the keyword
// alone is not enough to interpret the corresponding column: a WOPR needs a
// well name, a COFR needs a well name and a cell number, a local-grid LB*
// needs the grid name and all three local coordinates.
func Identifies(s Specifier, keyword [8]byte) int {
	switch keyword[0] {
	// Aquifer and block data are keyed on cell number alone.
	case 'A', 'B':
		if s == Nums {
			return 1
		}
		return 0

	// Completions are keyed on both the well and the cell.
	case 'C':
		if s == WGNames || s == Nums {
			return 2
		}
		return 0

	case 'G', 'W':
		// The {F,G,W}M mnemonics are reserved for other uses than
		// well/group, and are not parametrised.
		if keyword[1] == 'M' {
			return 0
		}
		if string(keyword[:]) == "WNEWTON " {
			return 0
		}
		if s == WGNames {
			return 1
		}
		return 0

	case 'P':
		if s == WGNames {
			return 1
		}
		return 0

	case 'R':
		if s == Nums {
			return 1
		}
		return 0

	case 'L':
		return identifiesLocalGrid(s, keyword)

	case 'N':
		switch string(keyword[:]) {
		case "NEWTON  ", "NAIMFRAC", "NLINEARS", "NLINSMIN", "NLINSMAX":
			return 0
		}
		if s == WGNames {
			return 1
		}
		return 0

	case 'S':
		key := string(keyword[:])
		if key == "STEPTYPE" {
			return 0
		}
		switch key[:4] {
		case "SGAS", "SOIL", "SWAT":
			return 0
		}
		if s == WGNames || s == Nums {
			return 2
		}
		return 0

	default:
		return 0
	}
}

// identifiesLocalGrid handles the L* family: block, completion, and well
// vectors inside a local grid refinement.
func identifiesLocalGrid(s Specifier, keyword [8]byte) int {
	switch keyword[1] {
	case 'B':
		switch s {
		case LGRs, NumLX, NumLY, NumLZ:
			return 4
		}
		return 0
	case 'C':
		switch s {
		case LGRs, WGNames, NumLX, NumLY, NumLZ:
			return 4
		}
		return 0
	case 'W':
		switch s {
		case LGRs, WGNames:
			return 2
		}
		return 0
	}
	return 0
}

// padKeyword right-pads a keyword to the 8-byte on-disk form.
func padKeyword(kw string) [8]byte {
	var out [8]byte
	copy(out[:], "        ")
	copy(out[:], kw)
	return out
}

// voidName reports whether a string qualifier marks its column as garbage.
func voidName(s string) bool {
	trimmed := strings.TrimRight(s, " ")
	return trimmed == "" || s == ":+:+:+:+"
}

// voidNum reports whether an integer qualifier marks its column as garbage.
func voidNum(n int32) bool { return n < 0 }
