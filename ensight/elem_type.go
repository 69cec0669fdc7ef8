// Package ensight sorts and addresses faces by EnSight face element type
package ensight

// ElemType is an addressable EnSight face element type
type ElemType uint8

const (
	TRIA3  ElemType = iota // 3 vertices
	QUAD4                  // 4 vertices
	NSIDED                 // any other vertex count
)

// NTypes is the number of face element types
const NTypes = 3

// ElemNames are the element names used verbatim in EnSight geometry files.
// The order follows ElemType.
var ElemNames = [NTypes]string{"tria3", "quad4", "nsided"}

// ElemTypes returns the element types in addressing order
func ElemTypes() [NTypes]ElemType {
	return [NTypes]ElemType{TRIA3, QUAD4, NSIDED}
}

// ElemTypeOf returns the element type for a face with nVerts vertices.
// Degenerate faces (fewer than 3 vertices) are treated as NSIDED.
func ElemTypeOf(nVerts int) ElemType {
	switch nVerts {
	case 3:
		return TRIA3
	case 4:
		return QUAD4
	default:
		return NSIDED
	}
}

// Key returns the EnSight element name
func (et ElemType) Key() string {
	return ElemNames[et]
}

func (et ElemType) String() string {
	if int(et) < NTypes {
		return ElemNames[et]
	}
	return "Invalid"
}
