package eclsummary

import "time"

// UnitSystem is the unit-system identifier from the first element of the
// INTEHEAD specification keyword.
type UnitSystem int

const (
	Metric UnitSystem = 1
	Field  UnitSystem = 2
	Lab    UnitSystem = 3
	PVTM   UnitSystem = 4
)

func (u UnitSystem) String() string {
	switch u {
	case Metric:
		return "METRIC"
	case Field:
		return "FIELD"
	case Lab:
		return "LAB"
	case PVTM:
		return "PVT-M"
	default:
		return ""
	}
}

// SimulatorID is the producing-program identifier from the second element
// of the INTEHEAD specification keyword.
type SimulatorID int

const (
	Eclipse100        SimulatorID = 100
	Eclipse300        SimulatorID = 300
	Eclipse300Thermal SimulatorID = 500
	Intersect         SimulatorID = 700
	FrontSim          SimulatorID = 800
)

func (s SimulatorID) String() string {
	switch s {
	case Eclipse100:
		return "ECLIPSE 100"
	case Eclipse300:
		return "ECLIPSE 300"
	case Eclipse300Thermal:
		return "ECLIPSE 300 (thermal option)"
	case Intersect:
		return "INTERSECT"
	case FrontSim:
		return "FrontSim"
	default:
		return ""
	}
}

// SpecKeywords returns the known keywords of a summary specification
// (.SMSPEC) file, space-padded as on disk. Intended for checking whether a
// file contains anything this package does not know about.
func SpecKeywords() []string {
	return []string{
		"INTEHEAD",
		"RESTART ",
		"DIMENS  ",
		"KEYWORDS",
		"WGNAMES ",
		"NAMES   ",
		"NUMS    ",
		"LGRS    ",
		"NUMLX   ",
		"NUMLY   ",
		"NUMLZ   ",
		"LENGTHS ",
		"LENUNITS",
		"MEASRMNT",
		"UNITS   ",
		"STARTDAT",
		"LGRNAMES",
		"LGRVEC  ",
		"LGRTIMES",
		"RUNTIMEI",
		"RUNTIMED",
		"STEPRESN",
		"XCOORD  ",
		"YCOORD  ",
		"TIMESTMP",
	}
}

// parseStartDate converts a STARTDAT array to a time.Time. The on-disk
// format is [day, month, year, hour, minute, microseconds] where the
// microsecond field embeds the seconds; older files carry only the first
// three entries.
func parseStartDate(v []int32) (time.Time, bool) {
	if len(v) < 3 {
		return time.Time{}, false
	}
	day, month, year := int(v[0]), int(v[1]), int(v[2])
	var hour, minute, second, micro int
	if len(v) >= 6 {
		hour = int(v[3])
		minute = int(v[4])
		second = int(v[5]) / 1000000
		micro = int(v[5]) % 1000000
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, hour, minute, second, micro*1000, time.UTC), true
}
