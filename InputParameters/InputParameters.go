package InputParameters

import (
	"fmt"
	"io"

	"github.com/ghodss/yaml"
	"github.com/pkg/errors"
)

// PartParameters selects the faces of one EnSight part
type PartParameters struct {
	Name     string   `yaml:"Name"`
	Markers  []string `yaml:"Markers"`  // Marker names or BC types (wall, inflow, ...)
	Exclude  []string `yaml:"Exclude"`  // Markers whose faces are skipped
	AllFaces bool     `yaml:"AllFaces"` // Every mesh face instead of marker faces
}

// Parameters obtained from the YAML export file
type ExportParameters struct {
	Title        string           `yaml:"Title"`
	Participants int              `yaml:"Participants"`
	Sort         bool             `yaml:"Sort"`
	Parts        []PartParameters `yaml:"Parts"`
}

const ExampleFile = `
########################################
Title: "Test Case"
Participants: 2
Sort: true
Parts:
  - Name: walls
    Markers: [wall]
  - Name: everything-but-walls
    AllFaces: true
    Exclude: [wall]
########################################
`

func (ep *ExportParameters) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, ep); err != nil {
		return errors.Wrap(err, "parsing export parameters")
	}
	if ep.Participants == 0 {
		ep.Participants = 1
	}
	return ep.Validate()
}

// Validate checks the parameters are usable
func (ep *ExportParameters) Validate() error {
	if ep.Participants < 1 {
		return errors.Errorf("Participants must be at least 1, have %d", ep.Participants)
	}
	if len(ep.Parts) == 0 {
		return errors.New("no Parts to export")
	}
	names := make(map[string]bool, len(ep.Parts))
	for i, part := range ep.Parts {
		if part.Name == "" {
			return errors.Errorf("part %d has no Name", i)
		}
		if names[part.Name] {
			return errors.Errorf("part %s listed twice", part.Name)
		}
		names[part.Name] = true
		if !part.AllFaces && len(part.Markers) == 0 {
			return errors.Errorf("part %s selects no faces, set Markers or AllFaces", part.Name)
		}
	}
	return nil
}

func (ep *ExportParameters) Print(w io.Writer) {
	fmt.Fprintf(w, "\"%s\"\t\t= Title\n", ep.Title)
	fmt.Fprintf(w, "[%d]\t\t\t= Participants\n", ep.Participants)
	fmt.Fprintf(w, "[%v]\t\t\t= Sort\n", ep.Sort)
	for i, part := range ep.Parts {
		fmt.Fprintf(w, "Parts[%d] = %s, Markers = %v, Exclude = %v, AllFaces = %v\n",
			i, part.Name, part.Markers, part.Exclude, part.AllFaces)
	}
}
