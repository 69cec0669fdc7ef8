package types

import "strings"

type BCFLAG uint8

const (
	BC_None BCFLAG = iota
	BC_In
	BC_Dirichlet
	BC_Slip
	BC_Far
	BC_Wall
	BC_Cyl
	BC_Neuman
	BC_Out
	BC_Periodic
	BC_Symmetry
)

var BCNameMap = map[string]BCFLAG{
	"inflow":    BC_In,
	"in":        BC_In,
	"out":       BC_Out,
	"outflow":   BC_Out,
	"wall":      BC_Wall,
	"far":       BC_Far,
	"cyl":       BC_Cyl,
	"dirichlet": BC_Dirichlet,
	"neuman":    BC_Neuman,
	"slip":      BC_Slip,
	"periodic":  BC_Periodic,
	"symmetry":  BC_Symmetry,
}

var bcFlagNames = [...]string{
	"None", "In", "Dirichlet", "Slip", "Far", "Wall", "Cyl", "Neuman", "Out", "Periodic", "Symmetry",
}

func (bc BCFLAG) String() string {
	if int(bc) < len(bcFlagNames) {
		return bcFlagNames[bc]
	}
	return "Invalid"
}

// BCTAG is a boundary marker name of the form "<bc type>[-<label>]",
// e.g. "Wall-top" or "inflow"
type BCTAG string

func NewBCTAG(token string) BCTAG {
	return BCTAG(strings.TrimSpace(token))
}

// GetFLAG returns the BC type named by the tag, BC_None when the tag does
// not start with a known BC type
func (bt BCTAG) GetFLAG() BCFLAG {
	name, _, _ := strings.Cut(string(bt), "-")
	if flag, ok := BCNameMap[strings.ToLower(name)]; ok {
		return flag
	}
	return BC_None
}

// GetLabel returns the text following the BC type, or the whole tag when
// it does not start with a known BC type
func (bt BCTAG) GetLabel() string {
	if bt.GetFLAG() == BC_None {
		return string(bt)
	}
	_, label, _ := strings.Cut(string(bt), "-")
	return label
}

// Matches reports whether selector names this tag, either exactly or by
// BC type ("wall" matches "Wall-top")
func (bt BCTAG) Matches(selector string) bool {
	if string(bt) == selector {
		return true
	}
	flag, ok := BCNameMap[strings.ToLower(selector)]
	return ok && bt.GetFLAG() == flag
}
