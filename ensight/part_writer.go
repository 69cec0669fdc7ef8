package ensight

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// WritePart writes the face element blocks of one part in EnSight Gold
// ASCII layout. members holds the reduced face lists of every participant,
// written in member order after the global count of each element type.
// Vertex labels are written 1-based, flipped faces in reversed order.
func WritePart(w io.Writer, partNumber int, description string, polys PolygonList,
	members []*Faces) (err error) {
	if len(members) == 0 {
		return errors.Errorf("part %d: no face lists to write", partNumber)
	}
	for rank, f := range members {
		if err = f.Validate(); err != nil {
			return errors.Wrapf(err, "part %d member %d", partNumber, rank)
		}
	}
	totals := members[0].Totals()
	for _, et := range ElemTypes() {
		var gathered int
		for _, f := range members {
			gathered += f.SizeOf(et)
		}
		if gathered != totals[et] {
			return errors.Errorf("part %d: %s total %d does not match %d gathered faces, missing reduce?",
				partNumber, et, totals[et], gathered)
		}
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "part\n%10d\n%s\n", partNumber, description)
	for _, et := range ElemTypes() {
		if totals[et] == 0 {
			continue
		}
		fmt.Fprintf(bw, "%s\n%10d\n", et.Key(), totals[et])
		if et == NSIDED {
			for _, f := range members {
				for _, id := range f.FaceIDsOf(et) {
					fmt.Fprintf(bw, "%10d\n", polys.FaceSize(id))
				}
			}
		}
		for _, f := range members {
			flips := f.FlipMapOf(et)
			for i, id := range f.FaceIDsOf(et) {
				writeConnectivity(bw, polys.Vertices(id), flips[i])
			}
		}
	}
	if err = bw.Flush(); err != nil {
		return errors.Wrapf(err, "part %d", partNumber)
	}
	return
}

// writeConnectivity writes one face, a flipped face keeps its first vertex
// and reverses the rest
func writeConnectivity(w io.Writer, verts []int, flip bool) {
	n := len(verts)
	for i := 0; i < n; i++ {
		v := verts[i]
		if flip && i > 0 {
			v = verts[n-i]
		}
		fmt.Fprintf(w, "%10d", v+1)
	}
	fmt.Fprintln(w)
}
