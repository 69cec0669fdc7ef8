package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/notargets/ensightfaces/ensight"
)

// TestBuildConnectivity_TwoTets checks a shared face is found once and
// both elements point at it
func TestBuildConnectivity_TwoTets(t *testing.T) {
	mesh := NewMesh()
	mesh.Coords = [][]float64{
		{0, 0, 0}, // 0
		{1, 0, 0}, // 1
		{0, 1, 0}, // 2
		{0, 0, 1}, // 3
		{1, 1, 1}, // 4
	}
	mesh.EtoV = [][]int{
		{0, 1, 2, 3}, // Tet 0
		{1, 2, 3, 4}, // Tet 1 - shares face {1,2,3} with Tet 0
	}
	mesh.ElementTypes = []ElementType{Tet, Tet}
	mesh.NumElements = 2
	mesh.NumVertices = 5
	mesh.BuildConnectivity()

	require.Len(t, mesh.EToE, 2)
	require.Len(t, mesh.EToF, 2)
	assert.Equal(t, 7, mesh.NumFaces, "8 tet faces with one shared")
	assert.Equal(t, 7, mesh.Len())

	// Tet 0 face 2 is {1,2,3}
	assert.Equal(t, 1, mesh.EToE[0][2])
	shared := mesh.EToF[0][2]
	var found bool
	for f1 := 0; f1 < 4; f1++ {
		if mesh.EToE[1][f1] == 0 {
			assert.Equal(t, shared, mesh.EToF[1][f1])
			found = true
		}
	}
	assert.True(t, found, "no shared face found between the two tetrahedra")
	assert.Equal(t, 0, mesh.Faces[shared].Element)
	assert.Equal(t, 1, mesh.Faces[shared].Neighbor)

	var boundary int
	for _, face := range mesh.Faces {
		if face.Neighbor == -1 {
			boundary++
		}
		assert.Equal(t, 3, len(face.Vertices))
	}
	assert.Equal(t, 6, boundary)
}

func TestBuildConnectivity_2DEdges(t *testing.T) {
	mesh := NewMesh()
	mesh.Coords = [][]float64{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	mesh.EtoV = [][]int{{0, 1, 2}, {0, 2, 3}}
	mesh.ElementTypes = []ElementType{Triangle, Triangle}
	mesh.NumElements = 2
	mesh.BuildConnectivity()

	assert.Equal(t, 5, mesh.NumFaces)
	for id := 0; id < mesh.Len(); id++ {
		assert.Equal(t, 2, mesh.FaceSize(id))
	}

	// Edges are degenerate faces and land in nsided
	f := ensight.NewFaces(0)
	f.Classify(mesh)
	assert.Equal(t, [ensight.NTypes]int{0, 0, 5}, f.Sizes())
}

func TestElementType(t *testing.T) {
	assert.Equal(t, "Hex", Hex.String())
	assert.Equal(t, "Invalid", ElementType(99).String())
	assert.Equal(t, 5, Pyramid.GetNumNodes())
	assert.Equal(t, 0, Unknown.GetNumNodes())
	assert.Equal(t, 2, Quad.GetDimension())
	assert.Equal(t, 3, Prism.GetDimension())
	assert.Equal(t, -1, Unknown.GetDimension())
	for _, et := range []ElementType{Tet, Hex, Prism, Pyramid} {
		faces := GetElementFaces(et, []int{0, 1, 2, 3, 4, 5, 6, 7})
		assert.NotEmpty(t, faces, et.String())
	}
	assert.Empty(t, GetElementFaces(Line, []int{0, 1}))
}

func TestSameOrientation(t *testing.T) {
	testCases := []struct {
		name string
		a, b []int
		same bool
	}{
		{"identical", []int{0, 1, 2, 3}, []int{0, 1, 2, 3}, true},
		{"rotated", []int{0, 1, 2, 3}, []int{2, 3, 0, 1}, true},
		{"reversed", []int{0, 1, 2, 3}, []int{3, 2, 1, 0}, false},
		{"reversed rotated", []int{0, 1, 2}, []int{0, 2, 1}, false},
		{"edge", []int{4, 5}, []int{4, 5}, true},
		{"edge reversed", []int{4, 5}, []int{5, 4}, false},
		{"length mismatch", []int{0, 1, 2}, []int{0, 1}, false},
		{"empty", nil, nil, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.same, sameOrientation(tc.a, tc.b))
		})
	}
}

func TestPrintStatistics(t *testing.T) {
	path := createTempSU2File(t, HexPyramidSU2)
	mesh, err := ReadSU2(path)
	require.NoError(t, err)

	core, logs := observer.New(zap.InfoLevel)
	mesh.PrintStatistics(zap.New(core))
	require.Equal(t, 1, logs.Len())
	ctx := logs.All()[0].ContextMap()
	assert.Equal(t, int64(9), ctx["vertices"])
	assert.Equal(t, int64(2), ctx["elements"])
	assert.Equal(t, int64(10), ctx["faces"])
	assert.Equal(t, int64(1), ctx["Hex"])
	assert.Equal(t, int64(1), ctx["Pyramid"])

	assert.NotPanics(t, func() { mesh.PrintStatistics(nil) })
}
