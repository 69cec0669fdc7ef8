package ensight

// FaceList is the face collection consumed by the classifier. Only the
// vertex count of a face is ever inspected.
type FaceList interface {
	Len() int
	FaceSize(faceID int) int
}

// PolygonList is a FaceList that can also supply face connectivity
type PolygonList interface {
	FaceList
	Vertices(faceID int) []int
}

// Polygons is a plain list of faces, each given by its vertex labels
type Polygons [][]int

func (p Polygons) Len() int                  { return len(p) }
func (p Polygons) FaceSize(faceID int) int   { return len(p[faceID]) }
func (p Polygons) Vertices(faceID int) []int { return p[faceID] }

// candidate is one face offered to the classifier
type candidate struct {
	id     int
	nVerts int
	flip   bool
}

// candidateStream yields classifier candidates in a stable order. Both
// classification passes iterate the same stream, so it must be repeatable.
type candidateStream func(yield func(candidate) bool)

func directCandidates(faces FaceList) candidateStream {
	return func(yield func(candidate) bool) {
		for id := 0; id < faces.Len(); id++ {
			if !yield(candidate{id: id, nVerts: faces.FaceSize(id)}) {
				return
			}
		}
	}
}

func indirectCandidates(faces FaceList, addressing []int, co *classifyOptions) candidateStream {
	return func(yield func(candidate) bool) {
		for i, id := range addressing {
			if co.exclude != nil && id >= 0 && co.exclude.Test(uint(id)) {
				continue
			}
			c := candidate{
				id:     id,
				nVerts: faces.FaceSize(id),
				flip:   i < len(co.flipMap) && co.flipMap[i],
			}
			if !yield(c) {
				return
			}
		}
	}
}
