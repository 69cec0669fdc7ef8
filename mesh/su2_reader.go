package mesh

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// su2ElementTypeMap maps SU2/VTK element type identifiers to our ElementType
var su2ElementTypeMap = map[int]ElementType{
	3:  Line,     // VTK_LINE
	5:  Triangle, // VTK_TRIANGLE
	9:  Quad,     // VTK_QUAD
	10: Tet,      // VTK_TETRA
	12: Hex,      // VTK_HEXAHEDRON
	13: Prism,    // VTK_WEDGE
	14: Pyramid,  // VTK_PYRAMID
}

// ReadSU2 reads an SU2 native format file
func ReadSU2(filename string) (*Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	msh := NewMesh()
	scanner := bufio.NewScanner(file)

	var ndime int
	var hasNDIME, hasNPOIN bool

	// nextLine returns the next non-empty line with comments removed
	nextLine := func() (string, bool) {
		for scanner.Scan() {
			line := scanner.Text()
			if idx := strings.Index(line, "%"); idx >= 0 {
				line = line[:idx]
			}
			line = strings.TrimSpace(line)
			if line != "" {
				return line, true
			}
		}
		return "", false
	}

	for {
		line, ok := nextLine()
		if !ok {
			break
		}

		switch {
		case strings.HasPrefix(line, "NDIME="):
			hasNDIME = true
			if ndime, err = parseCount(line, "NDIME="); err != nil {
				return nil, err
			}
			if ndime != 2 && ndime != 3 {
				return nil, fmt.Errorf("unsupported dimension: NDIME=%d", ndime)
			}

		case strings.HasPrefix(line, "NPOIN="):
			if !hasNDIME {
				return nil, fmt.Errorf("NPOIN= before NDIME=")
			}
			hasNPOIN = true
			var npoin int
			if npoin, err = parseCount(line, "NPOIN="); err != nil {
				return nil, err
			}
			msh.Coords = make([][]float64, npoin)
			for i := 0; i < npoin; i++ {
				nodeLine, ok := nextLine()
				if !ok {
					return nil, fmt.Errorf("unexpected EOF reading nodes")
				}
				fields := strings.Fields(nodeLine)
				if len(fields) < ndime {
					return nil, fmt.Errorf("invalid node line: expected at least %d coordinates", ndime)
				}
				coords := make([]float64, 3) // Always store 3D coordinates
				for j := 0; j < ndime; j++ {
					if coords[j], err = strconv.ParseFloat(fields[j], 64); err != nil {
						return nil, fmt.Errorf("invalid coordinate: %w", err)
					}
				}
				// Node ID is implicit (0-based), a trailing explicit ID is ignored
				msh.Coords[i] = coords
			}

		case strings.HasPrefix(line, "NELEM="):
			var nelem int
			if nelem, err = parseCount(line, "NELEM="); err != nil {
				return nil, err
			}
			msh.EtoV = make([][]int, 0, nelem)
			msh.ElementTypes = make([]ElementType, 0, nelem)
			for i := 0; i < nelem; i++ {
				elemLine, ok := nextLine()
				if !ok {
					return nil, fmt.Errorf("unexpected EOF reading elements")
				}
				etype, nodes, err := parseSU2Element(elemLine, len(msh.Coords))
				if err != nil {
					return nil, fmt.Errorf("element %d: %w", i, err)
				}
				msh.EtoV = append(msh.EtoV, nodes)
				msh.ElementTypes = append(msh.ElementTypes, etype)
			}

		case strings.HasPrefix(line, "NMARK="):
			var nmark int
			if nmark, err = parseCount(line, "NMARK="); err != nil {
				return nil, err
			}
			for i := 0; i < nmark; i++ {
				markerLine, ok := nextLine()
				if !ok {
					return nil, fmt.Errorf("unexpected EOF reading marker %d", i)
				}
				if !strings.HasPrefix(markerLine, "MARKER_TAG=") {
					return nil, fmt.Errorf("expected MARKER_TAG=, got: %s", markerLine)
				}
				tagName := strings.TrimSpace(strings.TrimPrefix(markerLine, "MARKER_TAG="))

				elemLine, ok := nextLine()
				if !ok {
					return nil, fmt.Errorf("unexpected EOF reading marker elements for %s", tagName)
				}
				if !strings.HasPrefix(elemLine, "MARKER_ELEMS=") {
					return nil, fmt.Errorf("invalid MARKER_ELEMS line: %s", elemLine)
				}
				var nMarkerElems int
				if nMarkerElems, err = parseCount(elemLine, "MARKER_ELEMS="); err != nil {
					return nil, err
				}

				msh.BoundaryTags[i] = tagName
				msh.BoundaryElements[tagName] = make([]BoundaryElement, 0, nMarkerElems)
				for j := 0; j < nMarkerElems; j++ {
					beLine, ok := nextLine()
					if !ok {
						return nil, fmt.Errorf("unexpected EOF reading boundary elements")
					}
					btype, nodes, err := parseSU2Element(beLine, len(msh.Coords))
					if err != nil {
						return nil, fmt.Errorf("marker %s element %d: %w", tagName, j, err)
					}
					if btype.GetDimension() > 2 {
						return nil, fmt.Errorf("marker %s element %d: %v is not a boundary element type",
							tagName, j, btype)
					}
					msh.AddBoundaryElement(tagName, BoundaryElement{
						ElementType:   btype,
						Nodes:         nodes,
						ParentElement: -1, // Not tracked in SU2 format
						ParentFace:    -1, // Not tracked in SU2 format
					})
				}
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	// Validate that we read the required sections
	if !hasNDIME {
		return nil, fmt.Errorf("missing required NDIME= section")
	}
	if !hasNPOIN {
		return nil, fmt.Errorf("missing required NPOIN= section")
	}

	msh.NumElements = len(msh.EtoV)
	msh.NumVertices = len(msh.Coords)
	msh.BuildConnectivity()

	return msh, nil
}

func parseCount(line, prefix string) (n int, err error) {
	value := strings.TrimSpace(strings.TrimPrefix(line, prefix))
	if n, err = strconv.Atoi(value); err != nil {
		return 0, fmt.Errorf("invalid %s line: %s", prefix, line)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative count in %s", line)
	}
	return
}

// parseSU2Element reads "type n0 n1 ... [id]"
func parseSU2Element(line string, nverts int) (etype ElementType, nodes []int, err error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return Unknown, nil, fmt.Errorf("invalid element line: %s", line)
	}
	su2Type, err := strconv.Atoi(fields[0])
	if err != nil {
		return Unknown, nil, fmt.Errorf("invalid element type: %w", err)
	}
	etype, ok := su2ElementTypeMap[su2Type]
	if !ok {
		return Unknown, nil, fmt.Errorf("unknown element type: %d", su2Type)
	}
	numNodes := etype.GetNumNodes()
	if len(fields) < numNodes+1 {
		return Unknown, nil, fmt.Errorf("element type %v expects %d nodes, got %d fields",
			etype, numNodes, len(fields)-1)
	}
	nodes = make([]int, numNodes)
	for j := 0; j < numNodes; j++ {
		if nodes[j], err = strconv.Atoi(fields[1+j]); err != nil {
			return Unknown, nil, fmt.Errorf("invalid node index: %w", err)
		}
		if nodes[j] < 0 || nodes[j] >= nverts {
			return Unknown, nil, fmt.Errorf("node index %d out of range [0,%d)", nodes[j], nverts)
		}
	}
	return
}
