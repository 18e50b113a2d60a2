package eclsummary

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/equinor/ecl3/internal/eclarray"
	"github.com/equinor/ecl3/internal/eclfmt"
	"github.com/equinor/ecl3/internal/logger"
)

// Column is one selected summary vector: its position in the PARAMS arrays
// and the fully-qualified name built from the keyword and its qualifiers.
type Column struct {
	Pos  int    `json:"pos"`
	Name string `json:"name"`
	Unit string `json:"unit,omitempty"`
}

// ColumnPlan is the ordered set of meaningful columns of a summary, derived
// once from the .SMSPEC arrays. Void columns are already filtered out and
// duplicate qualified names keep their first occurrence.
type ColumnPlan struct {
	Columns []Column
	NList   int

	// Optional metadata, zero-valued when the specification omits it.
	UnitSystem UnitSystem
	Simulator  SimulatorID
	StartDate  time.Time
}

// PlanOptions configures column-plan construction.
type PlanOptions struct {
	// Separator joins the keyword and its qualifiers in the column name.
	// Defaults to ":".
	Separator string
	Logger    logger.Logger
}

// RowSize returns the size in bytes of one assembled matrix row: two 32-bit
// integers (report step, ministep) followed by one 32-bit float per column.
func (p *ColumnPlan) RowSize() int { return 8 + 4*len(p.Columns) }

// NewColumnPlan opens a .SMSPEC file and derives its column plan.
func NewColumnPlan(smspecPath string, opts PlanOptions) (*ColumnPlan, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Noop()
	}
	r, err := eclarray.Open(smspecPath, eclarray.WithLogger(log))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return BuildColumnPlan(r, opts)
}

// specArrays is the subset of .SMSPEC arrays the plan builder cares about.
type specArrays struct {
	nlist    int
	keywords []string
	wgnames  []string
	nums     []int32

	lgrsChar []string // LGRS when CHAR-typed
	lgrsInt  []int32  // LGRS when INTE-typed
	numlx    []int32
	numly    []int32
	numlz    []int32

	units    []string
	intehead []int32
	startdat []int32
}

// BuildColumnPlan derives a column plan from an already-open specification
// array stream. The reader is consumed to EOF but not closed.
func BuildColumnPlan(r *eclarray.Reader, opts PlanOptions) (*ColumnPlan, error) {
	sep := opts.Separator
	if sep == "" {
		sep = ":"
	}
	log := opts.Logger
	if log == nil {
		log = logger.Noop()
	}

	var spec specArrays
	spec.nlist = -1
	for {
		a, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if err := spec.collect(a); err != nil {
			return nil, err
		}
	}

	if len(spec.keywords) == 0 {
		return nil, &InvalidArgsError{Msg: "specification has no KEYWORDS array"}
	}
	if len(spec.wgnames) != len(spec.keywords) {
		return nil, &InvalidArgsError{Msg: fmt.Sprintf(
			"WGNAMES has %d entries, KEYWORDS has %d", len(spec.wgnames), len(spec.keywords))}
	}
	if len(spec.nums) != len(spec.keywords) {
		return nil, &InvalidArgsError{Msg: fmt.Sprintf(
			"NUMS has %d entries, KEYWORDS has %d", len(spec.nums), len(spec.keywords))}
	}

	plan := &ColumnPlan{NList: len(spec.keywords)}
	if spec.nlist >= 0 {
		plan.NList = spec.nlist
	}
	if len(spec.intehead) >= 2 {
		plan.UnitSystem = UnitSystem(spec.intehead[0])
		plan.Simulator = SimulatorID(spec.intehead[1])
	}
	if t, ok := parseStartDate(spec.startdat); ok {
		plan.StartDate = t
	}

	seen := make(map[string]bool, len(spec.keywords))
	for i, kw := range spec.keywords {
		name, ok := spec.qualify(i, kw, sep)
		if !ok {
			log.Debug("void column dropped", "keyword", strings.TrimRight(kw, " "), "pos", i)
			continue
		}
		if seen[name] {
			log.Debug("duplicate column dropped", "name", name, "pos", i)
			continue
		}
		seen[name] = true
		col := Column{Pos: i, Name: name}
		if i < len(spec.units) {
			col.Unit = strings.TrimRight(spec.units[i], " ")
		}
		plan.Columns = append(plan.Columns, col)
	}

	log.Debug("column plan built", "nlist", plan.NList, "columns", len(plan.Columns))
	return plan, nil
}

func (s *specArrays) collect(a *eclarray.RawArray) error {
	switch a.KeywordTrimmed() {
	case "DIMENS":
		if a.Tag != eclfmt.INTE || a.Count < 1 {
			return &InvalidArgsError{Msg: "DIMENS must be a non-empty INTE array"}
		}
		s.nlist = int(a.Ints()[0])
	case "KEYWORDS":
		s.keywords = a.Strings()
	case "WGNAMES":
		s.wgnames = a.Strings()
	case "NAMES":
		// Intersect and Petrel write well names under NAMES instead of
		// WGNAMES; treat it as the same vector unless WGNAMES also exists.
		if s.wgnames == nil {
			s.wgnames = a.Strings()
		}
	case "NUMS":
		s.nums = a.Ints()
	case "LGRS":
		// LGRS shows up both CHAR-typed and INTE-typed in the wild.
		if a.Tag == eclfmt.INTE {
			s.lgrsInt = a.Ints()
		} else {
			s.lgrsChar = a.Strings()
		}
	case "NUMLX":
		s.numlx = a.Ints()
	case "NUMLY":
		s.numly = a.Ints()
	case "NUMLZ":
		s.numlz = a.Ints()
	case "UNITS":
		s.units = a.Strings()
	case "INTEHEAD":
		s.intehead = a.Ints()
	case "STARTDAT":
		s.startdat = a.Ints()
	}
	return nil
}

// qualify builds the fully-qualified column name for position i, or reports
// the column void.
func (s *specArrays) qualify(i int, kw, sep string) (string, bool) {
	padded := padKeyword(strings.TrimRight(kw, " "))

	var b strings.Builder
	b.WriteString(strings.TrimRight(kw, " "))

	if Identifies(WGNames, padded) > 0 {
		wgname := s.wgnames[i]
		if voidName(wgname) {
			return "", false
		}
		b.WriteString(sep)
		b.WriteString(strings.TrimRight(wgname, " "))
	}

	if Identifies(Nums, padded) > 0 {
		num := s.nums[i]
		if voidNum(num) {
			return "", false
		}
		b.WriteString(sep)
		b.WriteString(strconv.Itoa(int(num)))
	}

	if Identifies(LGRs, padded) > 0 {
		switch {
		case i < len(s.lgrsChar):
			lgr := s.lgrsChar[i]
			if voidName(lgr) {
				return "", false
			}
			b.WriteString(sep)
			b.WriteString(strings.TrimRight(lgr, " "))
		case i < len(s.lgrsInt):
			lgr := s.lgrsInt[i]
			if voidNum(lgr) {
				return "", false
			}
			b.WriteString(sep)
			b.WriteString(strconv.Itoa(int(lgr)))
		}
	}

	for _, local := range []struct {
		spec Specifier
		vals []int32
	}{
		{NumLX, s.numlx},
		{NumLY, s.numly},
		{NumLZ, s.numlz},
	} {
		if len(local.vals) == 0 || Identifies(local.spec, padded) == 0 {
			continue
		}
		if i >= len(local.vals) || voidNum(local.vals[i]) {
			return "", false
		}
		b.WriteString(sep)
		b.WriteString(strconv.Itoa(int(local.vals[i])))
	}

	return b.String(), true
}
