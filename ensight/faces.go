package ensight

import (
	"fmt"
	"sort"

	"github.com/bits-and-blooms/bitset"

	"github.com/notargets/ensightfaces/utils"
)

// Slice is a contiguous range of the address and flip lists
type Slice struct {
	Offset, Len int
}

// End is one past the last position of the slice
func (s Slice) End() int { return s.Offset + s.Len }

// Faces holds the faces of one part sorted by EnSight element type.
//
// The face ids of all element types live in one linear address list,
// sub-sectioned per element type by slices in ElemType order. A parallel
// flip list records faces whose orientation is reversed.
//
// Views returned by FaceIDs, FaceIDsOf and FlipMap are invalidated by the
// next Classify, ClassifyIndirect or Clear.
type Faces struct {
	index   int             // Location within a list of parts, EnSight part number is index+1
	address []int           // Face ids, sub-sectioned per element type
	flipMap []bool          // Face flips, parallel to address
	slices  [NTypes]Slice   // Per element type range of address/flipMap
	sizes   [NTypes]int     // Local sizes, also write cursors while building
	totals  [NTypes + 1]int // Global sizes per element type and overall, set by Reduce
}

// NewFaces returns an empty face list for the part at partIndex
func NewFaces(partIndex int) *Faces {
	return &Faces{index: partIndex}
}

// Index is the location of the part in a list of parts
func (f *Faces) Index() int { return f.index }

// SetIndex changes the part location
func (f *Faces) SetIndex(partIndex int) { f.index = partIndex }

// Size is the local number of faces of all element types
func (f *Faces) Size() int { return len(f.address) }

// SizeOf is the local number of faces of element type et
func (f *Faces) SizeOf(et ElemType) int { return f.slices[et].Len }

// Sizes returns the local number of faces per element type
func (f *Faces) Sizes() (sizes [NTypes]int) {
	for i, s := range f.slices {
		sizes[i] = s.Len
	}
	return
}

// Total is the global number of faces of all element types.
// Only meaningful after Reduce.
func (f *Faces) Total() int { return f.totals[NTypes] }

// TotalOf is the global number of faces of element type et.
// Only meaningful after Reduce.
func (f *Faces) TotalOf(et ElemType) int { return f.totals[et] }

// Totals returns the global number of faces per element type.
// Only meaningful after Reduce.
func (f *Faces) Totals() (totals [NTypes]int) {
	copy(totals[:], f.totals[:NTypes])
	return
}

// Offset is the local starting position of element type et in the address list
func (f *Faces) Offset(et ElemType) int { return f.slices[et].Offset }

// Slice returns the address range of element type et
func (f *Faces) Slice(et ElemType) Slice { return f.slices[et] }

// FaceIDsOf returns the local face ids of element type et
func (f *Faces) FaceIDsOf(et ElemType) []int {
	s := f.slices[et]
	return f.address[s.Offset:s.End():s.End()]
}

// FaceIDs returns the local face ids of all element types
func (f *Faces) FaceIDs() []int { return f.address }

// FlipMap returns the local face flips of all element types
func (f *Faces) FlipMap() []bool { return f.flipMap }

// FlipMapOf returns the local face flips of element type et
func (f *Faces) FlipMapOf(et ElemType) []bool {
	s := f.slices[et]
	return f.flipMap[s.Offset:s.End():s.End()]
}

// At returns the face id at position i of the address list
func (f *Faces) At(i int) int {
	if i < 0 || i >= len(f.address) {
		panic(fmt.Sprintf("face address %d out of range [0,%d)", i, len(f.address)))
	}
	return f.address[i]
}

// Classify sorts every face of the list by element type. The face id is
// the position in the list and no face is flipped.
func (f *Faces) Classify(faces FaceList) {
	f.build(directCandidates(faces))
}

// ClassifyOption modifies indirect classification
type ClassifyOption func(*classifyOptions)

type classifyOptions struct {
	flipMap []bool
	exclude *bitset.BitSet
}

// WithFlipMap supplies per-face flips parallel to the addressing.
// Missing entries are not flipped.
func WithFlipMap(flipMap []bool) ClassifyOption {
	return func(co *classifyOptions) { co.flipMap = flipMap }
}

// WithExclude skips every face id set in the exclude marker
func WithExclude(exclude *bitset.BitSet) ClassifyOption {
	return func(co *classifyOptions) { co.exclude = exclude }
}

// ClassifyIndirect sorts the faces selected by addressing. The face id of
// each entry is the addressing value, so groups of faces (a boundary patch,
// a face zone) keep their mesh face ids.
func (f *Faces) ClassifyIndirect(faces FaceList, addressing []int, opts ...ClassifyOption) {
	co := &classifyOptions{}
	for _, opt := range opts {
		opt(co)
	}
	f.build(indirectCandidates(faces, addressing, co))
}

// build counts the candidates, sizes the lists once, then fills them
func (f *Faces) build(candidates candidateStream) {
	f.sizes = [NTypes]int{}
	for c := range candidates {
		f.sizes[ElemTypeOf(c.nVerts)]++
	}

	f.resizeAll()

	for c := range candidates {
		et := ElemTypeOf(c.nVerts)
		pos := f.slices[et].Offset + f.sizes[et]
		f.address[pos] = c.id
		f.flipMap[pos] = c.flip
		f.sizes[et]++
	}
}

// resizeAll lays out the slices from the counted sizes, allocates the
// address and flip lists and resets the sizes for use as write cursors
func (f *Faces) resizeAll() {
	var n int
	for i, size := range f.sizes {
		f.slices[i] = Slice{Offset: n, Len: size}
		n += size
	}
	f.address = make([]int, n)
	f.flipMap = make([]bool, n)
	f.sizes = [NTypes]int{}
}

// Validate performs consistency checks on the addressing
func (f *Faces) Validate() error {
	if len(f.address) != len(f.flipMap) {
		return fmt.Errorf("address length %d doesn't match flip map length %d",
			len(f.address), len(f.flipMap))
	}
	var n int
	for et, s := range f.slices {
		if s.Offset != n {
			return fmt.Errorf("%s slice starts at %d, expected %d", ElemType(et), s.Offset, n)
		}
		n += s.Len
	}
	if n != len(f.address) {
		return fmt.Errorf("slices cover %d faces, address holds %d", n, len(f.address))
	}
	return nil
}

// Clear sets the sizes to zero and frees the addressing
func (f *Faces) Clear() {
	f.address = nil
	f.flipMap = nil
	f.slices = [NTypes]Slice{}
	f.sizes = [NTypes]int{}
	f.totals = [NTypes + 1]int{}
}

// Reduce sums the element counts across every participant of comm.
//
// Reduce is collective: every participant of comm must call it once for
// each generation of data. A participant that never arrives blocks all the
// others forever; there is no timeout.
func (f *Faces) Reduce(comm utils.Communicator) {
	local := make([]int, NTypes+1)
	for i, s := range f.slices {
		local[i] = s.Len
		local[NTypes] += s.Len
	}
	copy(f.totals[:], comm.AllReduceSum(local))
}

// Sort orders the face ids of each element type in ascending order,
// keeping the flips aligned
func (f *Faces) Sort() {
	for _, s := range f.slices {
		if s.Len < 2 {
			continue
		}
		sort.Sort(pairedIDs{
			ids:   f.address[s.Offset:s.End()],
			flips: f.flipMap[s.Offset:s.End()],
		})
	}
}

type pairedIDs struct {
	ids   []int
	flips []bool
}

func (p pairedIDs) Len() int           { return len(p.ids) }
func (p pairedIDs) Less(i, j int) bool { return p.ids[i] < p.ids[j] }
func (p pairedIDs) Swap(i, j int) {
	p.ids[i], p.ids[j] = p.ids[j], p.ids[i]
	p.flips[i], p.flips[j] = p.flips[j], p.flips[i]
}
