package mesh

// HexPyramidSU2 is a hexahedron with a pyramid on its top face. The hex
// top is the only interior face. Boundary markers:
//   - bottom: the hex base, same orientation as the mesh face
//   - Wall-sides: the 4 hex sides, the last one reversed
//   - Wall-roof: the 4 pyramid triangles, the third one reversed
//
// Mesh face ids: hex faces 0-5 (top is 1), pyramid triangles 6-9.
const HexPyramidSU2 = `% hex with a pyramid roof
NDIME= 3
NPOIN= 9
0.0 0.0 0.0
1.0 0.0 0.0
1.0 1.0 0.0
0.0 1.0 0.0
0.0 0.0 1.0
1.0 0.0 1.0
1.0 1.0 1.0
0.0 1.0 1.0
0.5 0.5 2.0
NELEM= 2
12 0 1 2 3 4 5 6 7 0
14 4 5 6 7 8 1
NMARK= 3
MARKER_TAG= bottom
MARKER_ELEMS= 1
9 0 3 2 1
MARKER_TAG= Wall-sides
MARKER_ELEMS= 4
9 0 1 5 4
9 1 2 6 5
9 2 3 7 6
9 0 3 7 4
MARKER_TAG= Wall-roof
MARKER_ELEMS= 4
5 4 5 8
5 5 6 8
5 6 8 7
5 7 4 8
`

// HexPyramidPatches are the expected patches of HexPyramidSU2
var HexPyramidPatches = []Patch{
	{Name: "bottom", FaceIDs: []int{0}, FlipMap: []bool{false}},
	{Name: "Wall-sides", FaceIDs: []int{2, 3, 4, 5}, FlipMap: []bool{false, false, false, true}},
	{Name: "Wall-roof", FaceIDs: []int{6, 7, 8, 9}, FlipMap: []bool{false, false, true, false}},
}
