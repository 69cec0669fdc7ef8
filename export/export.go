// Package export writes the boundary parts of a mesh as EnSight face
// element blocks, with the faces of every part spread across a group of
// in-process participants
package export

import (
	"io"
	"sync"

	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/notargets/ensightfaces/InputParameters"
	"github.com/notargets/ensightfaces/ensight"
	"github.com/notargets/ensightfaces/mesh"
	"github.com/notargets/ensightfaces/types"
	"github.com/notargets/ensightfaces/utils"
)

// Selection is the mesh face subset of one part
type Selection struct {
	Name       string
	Index      int
	AllFaces   bool
	Addressing []int
	FlipMap    []bool
	Exclude    *bitset.BitSet
}

// Direct reports whether the selection is the whole unfiltered face list
func (s *Selection) Direct() bool {
	return s.AllFaces && s.Exclude == nil
}

// Select resolves the parts of ep against the boundary markers of m
func Select(m *mesh.Mesh, ep *InputParameters.ExportParameters, log *zap.Logger) (sels []*Selection, err error) {
	if log == nil {
		log = zap.NewNop()
	}
	patches, err := m.BoundaryPatches()
	if err != nil {
		return nil, errors.Wrap(err, "building boundary patches")
	}
	for i, part := range ep.Parts {
		sel := &Selection{Name: part.Name, Index: i, AllFaces: part.AllFaces}
		if part.AllFaces {
			sel.Addressing = make([]int, m.Len())
			for id := range sel.Addressing {
				sel.Addressing[id] = id
			}
		} else {
			seen := bitset.New(uint(m.Len()))
			for _, selector := range part.Markers {
				matched := matchPatches(patches, selector)
				if len(matched) == 0 {
					return nil, errors.Errorf("part %s: marker %s matches no boundary marker",
						part.Name, selector)
				}
				for _, p := range matched {
					tag := types.NewBCTAG(p.Name)
					log.Debug("marker selected",
						zap.String("part", part.Name), zap.String("marker", p.Name),
						zap.Stringer("bc", tag.GetFLAG()), zap.String("label", tag.GetLabel()))
					for k, id := range p.FaceIDs {
						if seen.Test(uint(id)) {
							continue
						}
						seen.Set(uint(id))
						sel.Addressing = append(sel.Addressing, id)
						sel.FlipMap = append(sel.FlipMap, p.FlipMap[k])
					}
				}
			}
		}
		for _, selector := range part.Exclude {
			matched := matchPatches(patches, selector)
			if len(matched) == 0 {
				log.Warn("exclude matches no boundary marker",
					zap.String("part", part.Name), zap.String("marker", selector))
				continue
			}
			if sel.Exclude == nil {
				sel.Exclude = bitset.New(uint(m.Len()))
			}
			for _, p := range matched {
				for _, id := range p.FaceIDs {
					sel.Exclude.Set(uint(id))
				}
			}
		}
		var degenerate int
		for _, id := range sel.Addressing {
			if sel.Exclude != nil && sel.Exclude.Test(uint(id)) {
				continue
			}
			if m.FaceSize(id) < 3 {
				degenerate++
			}
		}
		if degenerate > 0 {
			log.Warn("degenerate faces written as nsided",
				zap.String("part", part.Name), zap.Int("faces", degenerate))
		}
		sels = append(sels, sel)
	}
	return
}

func matchPatches(patches []*mesh.Patch, selector string) (matched []*mesh.Patch) {
	for _, p := range patches {
		if types.NewBCTAG(p.Name).Matches(selector) {
			matched = append(matched, p)
		}
	}
	return
}

// Classify builds the face lists of every part on np participants. The
// result is indexed [part][participant]. Participant rank classifies its
// PartitionMap share of each part's addressing. Once every participant has
// classified without error, all of them reduce.
func Classify(m *mesh.Mesh, sels []*Selection, np int, sortFaces bool) (parts [][]*ensight.Faces, err error) {
	if np < 1 {
		return nil, errors.Errorf("need at least one participant, have %d", np)
	}
	parts = make([][]*ensight.Faces, len(sels))
	for i := range parts {
		parts[i] = make([]*ensight.Faces, np)
	}

	var eg errgroup.Group
	for rank := 0; rank < np; rank++ {
		eg.Go(func() error {
			for i, sel := range sels {
				f, err := classifyShare(m, sel, rank, np)
				if err != nil {
					return errors.Wrapf(err, "participant %d, part %s", rank, sel.Name)
				}
				if sortFaces {
					f.Sort()
				}
				parts[i][rank] = f
			}
			return nil
		})
	}
	if err = eg.Wait(); err != nil {
		return nil, err
	}

	// Reduce is collective, no participant may drop out from here on
	var (
		group = utils.NewGroup(np)
		wg    sync.WaitGroup
	)
	for rank := 0; rank < np; rank++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			comm := group.Comm(rank)
			for i := range sels {
				parts[i][rank].Reduce(comm)
			}
		}()
	}
	wg.Wait()
	return
}

// classifyShare classifies the share of sel owned by rank. A face id
// outside the mesh is returned as an error.
func classifyShare(m *mesh.Mesh, sel *Selection, rank, np int) (f *ensight.Faces, err error) {
	defer func() {
		if r := recover(); r != nil {
			f, err = nil, errors.Errorf("classify: %v", r)
		}
	}()
	f = ensight.NewFaces(sel.Index)
	if np == 1 && sel.Direct() {
		f.Classify(m)
	} else {
		pm := utils.NewPartitionMap(np, len(sel.Addressing))
		kMin, kMax := pm.GetBucketRange(rank)
		opts := []ensight.ClassifyOption{ensight.WithExclude(sel.Exclude)}
		if len(sel.FlipMap) != 0 {
			opts = append(opts, ensight.WithFlipMap(sel.FlipMap[kMin:kMax]))
		}
		f.ClassifyIndirect(m, sel.Addressing[kMin:kMax], opts...)
	}
	if err = f.Validate(); err != nil {
		return nil, err
	}
	return
}

// Run classifies the parts selected by ep and writes them to w
func Run(m *mesh.Mesh, ep *InputParameters.ExportParameters, w io.Writer, log *zap.Logger) (err error) {
	if log == nil {
		log = zap.NewNop()
	}
	sels, err := Select(m, ep, log)
	if err != nil {
		return err
	}
	parts, err := Classify(m, sels, ep.Participants, ep.Sort)
	if err != nil {
		return err
	}
	for i, members := range parts {
		lead := members[0]
		totals := lead.Totals()
		log.Info("classified part",
			zap.String("part", sels[i].Name),
			zap.Int("number", lead.Index()+1),
			zap.Int(ensight.TRIA3.Key(), totals[ensight.TRIA3]),
			zap.Int(ensight.QUAD4.Key(), totals[ensight.QUAD4]),
			zap.Int(ensight.NSIDED.Key(), totals[ensight.NSIDED]),
			zap.Int("total", lead.Total()),
		)
		if err = ensight.WritePart(w, lead.Index()+1, sels[i].Name, m, members); err != nil {
			return errors.Wrapf(err, "writing part %s", sels[i].Name)
		}
	}
	return
}
