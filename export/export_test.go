package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/notargets/ensightfaces/InputParameters"
	"github.com/notargets/ensightfaces/ensight"
	"github.com/notargets/ensightfaces/mesh"
)

func readHexPyramid(t *testing.T) *mesh.Mesh {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hexpyr.su2")
	require.NoError(t, os.WriteFile(path, []byte(mesh.HexPyramidSU2), 0644))
	m, err := mesh.ReadMeshFile(path)
	require.NoError(t, err)
	return m
}

func ints(vals ...int) string {
	var sb strings.Builder
	for _, v := range vals {
		fmt.Fprintf(&sb, "%10d", v)
	}
	return sb.String()
}

func params(np int) *InputParameters.ExportParameters {
	return &InputParameters.ExportParameters{
		Title:        "hex pyramid",
		Participants: np,
		Sort:         true,
		Parts: []InputParameters.PartParameters{
			{Name: "walls", Markers: []string{"wall"}},
			{Name: "rest", AllFaces: true, Exclude: []string{"wall"}},
		},
	}
}

func TestSelect(t *testing.T) {
	m := readHexPyramid(t)
	sels, err := Select(m, params(1), nil)
	require.NoError(t, err)
	require.Len(t, sels, 2)

	walls := sels[0]
	assert.Equal(t, 0, walls.Index)
	assert.Equal(t, []int{2, 3, 4, 5, 6, 7, 8, 9}, walls.Addressing)
	assert.Equal(t, []bool{false, false, false, true, false, false, true, false}, walls.FlipMap)
	assert.Nil(t, walls.Exclude)
	assert.False(t, walls.Direct())

	rest := sels[1]
	assert.Equal(t, 1, rest.Index)
	assert.Len(t, rest.Addressing, 10)
	assert.Nil(t, rest.FlipMap)
	require.NotNil(t, rest.Exclude)
	assert.Equal(t, uint(8), rest.Exclude.Count())
	assert.False(t, rest.Direct())

	{ // Unknown markers
		ep := params(1)
		ep.Parts[0].Markers = []string{"outflow"}
		_, err := Select(m, ep, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "matches no boundary marker")
	}
	{ // Unknown excludes only warn
		core, logs := observer.New(zap.WarnLevel)
		ep := params(1)
		ep.Parts[1].Exclude = []string{"inflow"}
		sels, err := Select(m, ep, zap.New(core))
		require.NoError(t, err)
		assert.True(t, sels[1].Direct())
		assert.Equal(t, 1, logs.FilterMessage("exclude matches no boundary marker").Len())
	}
	{ // Overlapping markers select each face once
		core, logs := observer.New(zap.DebugLevel)
		ep := params(1)
		ep.Parts[0].Markers = []string{"wall", "Wall-roof", "Wall-sides"}
		sels, err := Select(m, ep, zap.New(core))
		require.NoError(t, err)
		assert.Equal(t, walls.Addressing, sels[0].Addressing)
		assert.Equal(t, walls.FlipMap, sels[0].FlipMap)

		selected := logs.FilterMessage("marker selected").FilterField(zap.String("marker", "Wall-roof")).All()
		require.Len(t, selected, 2)
		assert.Equal(t, "Wall", selected[0].ContextMap()["bc"])
		assert.Equal(t, "roof", selected[0].ContextMap()["label"])

		parts, err := Classify(m, sels, 3, true)
		require.NoError(t, err)
		f := parts[0][0]
		assert.Equal(t, 8, f.Total())
		var ids []int
		for _, member := range parts[0] {
			ids = append(ids, member.FaceIDsOf(ensight.TRIA3)...)
		}
		assert.Equal(t, []int{6, 7, 8, 9}, ids)
	}
}

const squareSU2 = `NDIME= 2
NPOIN= 4
0.0 0.0
1.0 0.0
1.0 1.0
0.0 1.0
NELEM= 2
5 0 1 2
5 0 2 3
NMARK= 1
MARKER_TAG= Wall-outer
MARKER_ELEMS= 4
3 0 1
3 1 2
3 2 3
3 3 0
`

func TestSelect_DegenerateWarning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "square.su2")
	require.NoError(t, os.WriteFile(path, []byte(squareSU2), 0644))
	m, err := mesh.ReadMeshFile(path)
	require.NoError(t, err)
	require.Equal(t, 5, m.Len())

	core, logs := observer.New(zap.WarnLevel)
	ep := &InputParameters.ExportParameters{
		Participants: 1,
		Parts: []InputParameters.PartParameters{
			{Name: "outer", Markers: []string{"wall"}},
			{Name: "interior", AllFaces: true, Exclude: []string{"wall"}},
		},
	}
	_, err = Select(m, ep, zap.New(core))
	require.NoError(t, err)

	warned := logs.FilterMessage("degenerate faces written as nsided").All()
	require.Len(t, warned, 2)
	assert.Equal(t, "outer", warned[0].ContextMap()["part"])
	assert.Equal(t, int64(4), warned[0].ContextMap()["faces"])
	// Only the diagonal edge survives the exclusion
	assert.Equal(t, "interior", warned[1].ContextMap()["part"])
	assert.Equal(t, int64(1), warned[1].ContextMap()["faces"])
}

func TestClassify_Participants(t *testing.T) {
	defer goleak.VerifyNone(t)

	m := readHexPyramid(t)
	sels, err := Select(m, params(1), nil)
	require.NoError(t, err)

	for _, np := range []int{1, 2, 3, 5, 12} {
		parts, err := Classify(m, sels, np, true)
		require.NoError(t, err)
		require.Len(t, parts, 2)
		for i, members := range parts {
			require.Len(t, members, np)
			var gathered [ensight.NTypes]int
			for _, f := range members {
				assert.Equal(t, i, f.Index())
				for k, n := range f.Sizes() {
					gathered[k] += n
				}
			}
			for _, f := range members {
				assert.Equal(t, gathered, f.Totals(), "np = %d, part %d", np, i)
			}
		}
		assert.Equal(t, [ensight.NTypes]int{4, 4, 0}, parts[0][0].Totals())
		assert.Equal(t, [ensight.NTypes]int{0, 2, 0}, parts[1][0].Totals())
	}

	_, err = Classify(m, sels, 0, false)
	assert.Error(t, err)
}

func TestClassify_BadFaceID(t *testing.T) {
	defer goleak.VerifyNone(t)

	m := readHexPyramid(t)
	sels := []*Selection{{Name: "stray", Addressing: []int{0, 99}, FlipMap: []bool{false, true}}}
	for _, np := range []int{1, 2} {
		_, err := Classify(m, sels, np, false)
		require.Error(t, err, "np = %d", np)
		assert.Contains(t, err.Error(), "part stray")
	}
	{ // The participant holding the bad id is named
		_, err := Classify(m, sels, 2, false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "participant 1")
	}
}

func TestClassify_Direct(t *testing.T) {
	m := readHexPyramid(t)
	ep := params(1)
	ep.Parts = ep.Parts[1:2]
	ep.Parts[0].Exclude = nil
	sels, err := Select(m, ep, nil)
	require.NoError(t, err)
	require.True(t, sels[0].Direct())

	parts, err := Classify(m, sels, 1, false)
	require.NoError(t, err)
	f := parts[0][0]
	assert.Equal(t, []int{6, 7, 8, 9}, f.FaceIDsOf(ensight.TRIA3))
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, f.FaceIDsOf(ensight.QUAD4))
	assert.Equal(t, 10, f.Total())
}

func TestRun(t *testing.T) {
	defer goleak.VerifyNone(t)

	expected := strings.Join([]string{
		"part", ints(1), "walls",
		"tria3", ints(4),
		ints(5, 6, 9),
		ints(6, 7, 9),
		ints(7, 9, 8),
		ints(8, 5, 9),
		"quad4", ints(4),
		ints(1, 2, 6, 5),
		ints(2, 3, 7, 6),
		ints(3, 4, 8, 7),
		ints(4, 8, 5, 1),
		"part", ints(2), "rest",
		"quad4", ints(2),
		ints(1, 4, 3, 2),
		ints(5, 6, 7, 8),
		"",
	}, "\n")

	m := readHexPyramid(t)
	for _, np := range []int{1, 2} {
		var buf bytes.Buffer
		core, logs := observer.New(zap.InfoLevel)
		require.NoError(t, Run(m, params(np), &buf, zap.New(core)))
		assert.Equal(t, expected, buf.String(), "np = %d", np)

		classified := logs.FilterMessage("classified part").All()
		require.Len(t, classified, 2)
		ctx := classified[0].ContextMap()
		assert.Equal(t, "walls", ctx["part"])
		assert.Equal(t, int64(4), ctx["tria3"])
		assert.Equal(t, int64(8), ctx["total"])
	}
}
