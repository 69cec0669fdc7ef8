package mesh

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/notargets/ensightfaces/ensight"
)

// ElementType represents different element types
type ElementType int

const (
	Unknown ElementType = iota
	Line
	Triangle
	Quad
	Tet
	Hex
	Prism
	Pyramid
)

func (e ElementType) String() string {
	names := []string{"Unknown", "Line", "Triangle", "Quad", "Tet", "Hex", "Prism", "Pyramid"}
	if int(e) >= 0 && int(e) < len(names) {
		return names[e]
	}
	return "Invalid"
}

// GetNumNodes returns the number of nodes for each element type
func (e ElementType) GetNumNodes() int {
	switch e {
	case Line:
		return 2
	case Triangle:
		return 3
	case Quad:
		return 4
	case Tet:
		return 4
	case Hex:
		return 8
	case Prism:
		return 6
	case Pyramid:
		return 5
	default:
		return 0
	}
}

// GetDimension returns the spatial dimension of the element
func (e ElementType) GetDimension() int {
	switch e {
	case Line:
		return 1
	case Triangle, Quad:
		return 2
	case Tet, Hex, Prism, Pyramid:
		return 3
	default:
		return -1
	}
}

// Face represents a unique face of the mesh
type Face struct {
	Vertices []int // Vertex indices, ordered as seen from the owner element
	Element  int   // Owner element
	LocalID  int   // Local face ID within the owner element
	Neighbor int   // Neighbor element, -1 on the boundary
}

// Mesh represents an unstructured mesh with its face connectivity
type Mesh struct {
	// Geometry
	Coords [][]float64 // Vertex coordinates [nvertices][3]

	// Element data
	EtoV         [][]int       // Element to vertex connectivity [nelems][nverts_per_elem]
	ElementTypes []ElementType // Element type for each element

	// Connectivity (built by BuildConnectivity)
	EToE [][]int // Element to element connectivity, -1 on the boundary
	EToF [][]int // Element to mesh face id

	// Face data
	Faces   []Face         // All unique faces in mesh
	FaceMap map[string]int // Map from sorted vertex key to face ID

	// Boundary markers
	BoundaryTags     map[int]string               // Marker index -> marker name
	BoundaryElements map[string][]BoundaryElement // Marker name -> boundary elements

	// Mesh statistics
	NumElements int
	NumVertices int
	NumFaces    int
}

var _ ensight.PolygonList = (*Mesh)(nil)

// NewMesh creates an empty mesh
func NewMesh() *Mesh {
	return &Mesh{
		FaceMap:          make(map[string]int),
		BoundaryTags:     make(map[int]string),
		BoundaryElements: make(map[string][]BoundaryElement),
	}
}

// ReadMeshFile reads a mesh file based on extension
func ReadMeshFile(filename string) (*Mesh, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".su2":
		return ReadSU2(filename)
	default:
		return nil, fmt.Errorf("unsupported mesh format: %s", ext)
	}
}

// Len is the number of unique faces
func (m *Mesh) Len() int { return len(m.Faces) }

// FaceSize is the vertex count of face faceID
func (m *Mesh) FaceSize(faceID int) int { return len(m.Faces[faceID].Vertices) }

// Vertices returns the vertices of face faceID in owner orientation
func (m *Mesh) Vertices(faceID int) []int { return m.Faces[faceID].Vertices }

// faceKey identifies a face independent of vertex order
func faceKey(verts []int) string {
	sorted := make([]int, len(verts))
	copy(sorted, verts)
	sort.Ints(sorted)
	return fmt.Sprintf("%v", sorted)
}

// BuildConnectivity builds element-to-element and face connectivity.
// Faces are numbered in order of first appearance.
func (m *Mesh) BuildConnectivity() {
	m.EToE = make([][]int, m.NumElements)
	m.EToF = make([][]int, m.NumElements)
	m.Faces = m.Faces[:0]
	m.FaceMap = make(map[string]int)

	for elemID := 0; elemID < m.NumElements; elemID++ {
		faceVertices := GetElementFaces(m.ElementTypes[elemID], m.EtoV[elemID])

		m.EToE[elemID] = make([]int, len(faceVertices))
		m.EToF[elemID] = make([]int, len(faceVertices))

		for localFaceID, faceVerts := range faceVertices {
			key := faceKey(faceVerts)

			if faceID, exists := m.FaceMap[key]; exists {
				// Face already exists - this is an interior face
				face := &m.Faces[faceID]
				face.Neighbor = elemID
				m.EToE[elemID][localFaceID] = face.Element
				m.EToE[face.Element][face.LocalID] = elemID
				m.EToF[elemID][localFaceID] = faceID
			} else {
				faceID := len(m.Faces)
				m.Faces = append(m.Faces, Face{
					Vertices: faceVerts,
					Element:  elemID,
					LocalID:  localFaceID,
					Neighbor: -1,
				})
				m.FaceMap[key] = faceID
				m.EToE[elemID][localFaceID] = -1
				m.EToF[elemID][localFaceID] = faceID
			}
		}
	}

	m.NumFaces = len(m.Faces)
}

// GetElementFaces returns the face vertices for each element type. The
// faces of 2D elements are their edges.
func GetElementFaces(elemType ElementType, vertices []int) [][]int {
	switch elemType {
	case Triangle:
		return [][]int{
			{vertices[0], vertices[1]},
			{vertices[1], vertices[2]},
			{vertices[2], vertices[0]},
		}
	case Quad:
		return [][]int{
			{vertices[0], vertices[1]},
			{vertices[1], vertices[2]},
			{vertices[2], vertices[3]},
			{vertices[3], vertices[0]},
		}
	case Tet:
		return [][]int{
			{vertices[0], vertices[2], vertices[1]}, // Face 0
			{vertices[0], vertices[1], vertices[3]}, // Face 1
			{vertices[1], vertices[2], vertices[3]}, // Face 2
			{vertices[0], vertices[3], vertices[2]}, // Face 3
		}
	case Hex:
		return [][]int{
			{vertices[0], vertices[3], vertices[2], vertices[1]}, // Face 0 (bottom)
			{vertices[4], vertices[5], vertices[6], vertices[7]}, // Face 1 (top)
			{vertices[0], vertices[1], vertices[5], vertices[4]}, // Face 2
			{vertices[1], vertices[2], vertices[6], vertices[5]}, // Face 3
			{vertices[2], vertices[3], vertices[7], vertices[6]}, // Face 4
			{vertices[3], vertices[0], vertices[4], vertices[7]}, // Face 5
		}
	case Prism:
		return [][]int{
			{vertices[0], vertices[2], vertices[1]},              // Face 0 (bottom tri)
			{vertices[3], vertices[4], vertices[5]},              // Face 1 (top tri)
			{vertices[0], vertices[1], vertices[4], vertices[3]}, // Face 2 (quad)
			{vertices[1], vertices[2], vertices[5], vertices[4]}, // Face 3 (quad)
			{vertices[2], vertices[0], vertices[3], vertices[5]}, // Face 4 (quad)
		}
	case Pyramid:
		return [][]int{
			{vertices[0], vertices[3], vertices[2], vertices[1]}, // Face 0 (base quad)
			{vertices[0], vertices[1], vertices[4]},              // Face 1 (tri)
			{vertices[1], vertices[2], vertices[4]},              // Face 2 (tri)
			{vertices[2], vertices[3], vertices[4]},              // Face 3 (tri)
			{vertices[3], vertices[0], vertices[4]},              // Face 4 (tri)
		}
	default:
		return [][]int{}
	}
}

// PrintStatistics logs mesh statistics
func (m *Mesh) PrintStatistics(log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	typeCounts := make(map[ElementType]int)
	for _, t := range m.ElementTypes {
		typeCounts[t]++
	}
	types := make([]ElementType, 0, len(typeCounts))
	for t := range typeCounts {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	fields := []zap.Field{
		zap.Int("vertices", m.NumVertices),
		zap.Int("elements", m.NumElements),
		zap.Int("faces", m.NumFaces),
		zap.Int("markers", len(m.BoundaryTags)),
	}
	for _, t := range types {
		fields = append(fields, zap.Int(t.String(), typeCounts[t]))
	}
	log.Info("mesh statistics", fields...)
}
