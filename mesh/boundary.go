package mesh

import (
	"fmt"
	"sort"
)

// BoundaryElement is a face listed on a boundary marker
type BoundaryElement struct {
	ElementType   ElementType
	Nodes         []int
	ParentElement int // -1 when the file does not say
	ParentFace    int // -1 when the file does not say
}

// AddBoundaryElement appends a boundary element to the named marker
func (m *Mesh) AddBoundaryElement(tag string, be BoundaryElement) {
	if m.BoundaryElements == nil {
		m.BoundaryElements = make(map[string][]BoundaryElement)
	}
	m.BoundaryElements[tag] = append(m.BoundaryElements[tag], be)
}

// MarkerNames returns the boundary marker names in file order
func (m *Mesh) MarkerNames() (names []string) {
	idx := make([]int, 0, len(m.BoundaryTags))
	for i := range m.BoundaryTags {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	for _, i := range idx {
		names = append(names, m.BoundaryTags[i])
	}
	return
}

// Patch is the set of mesh faces on one boundary marker
type Patch struct {
	Name    string
	FaceIDs []int  // Mesh face ids in marker order
	FlipMap []bool // True where the marker orientation opposes the mesh face
}

// BoundaryPatch matches the elements of marker name to mesh faces
func (m *Mesh) BoundaryPatch(name string) (p *Patch, err error) {
	elems, ok := m.BoundaryElements[name]
	if !ok {
		return nil, fmt.Errorf("unknown boundary marker: %s", name)
	}
	p = &Patch{
		Name:    name,
		FaceIDs: make([]int, len(elems)),
		FlipMap: make([]bool, len(elems)),
	}
	for i, be := range elems {
		faceID, found := m.FaceMap[faceKey(be.Nodes)]
		if !found {
			return nil, fmt.Errorf("marker %s element %d %v does not match a mesh face",
				name, i, be.Nodes)
		}
		p.FaceIDs[i] = faceID
		p.FlipMap[i] = !sameOrientation(m.Faces[faceID].Vertices, be.Nodes)
	}
	return
}

// BoundaryPatches returns the patches of all markers in file order
func (m *Mesh) BoundaryPatches() (patches []*Patch, err error) {
	for _, name := range m.MarkerNames() {
		var p *Patch
		if p, err = m.BoundaryPatch(name); err != nil {
			return nil, err
		}
		patches = append(patches, p)
	}
	return
}

// sameOrientation reports whether b is a cyclic rotation of a, as opposed
// to a reversed rotation. Both must hold the same vertices.
func sameOrientation(a, b []int) bool {
	n := len(a)
	if n != len(b) || n == 0 {
		return false
	}
	if n < 3 {
		return a[0] == b[0]
	}
	for j, v := range b {
		if v == a[0] {
			return b[(j+1)%n] == a[1]
		}
	}
	return false
}
