package config

import (
	"gopkg.in/yaml.v3"

	"github.com/tdmtools/delaycast/internal/netdiff"
)

// FieldValue is a column binding or class value read from YAML. It accepts
// bare numbers as well as strings, since functional-class values are often
// coded numerically and users rarely quote them.
type FieldValue string

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *FieldValue) UnmarshalYAML(node *yaml.Node) error {
	*v = FieldValue(node.Value)
	return nil
}

// Params is the decoded run-parameter file. Load validates it against the
// embedded CUE schema before decoding, so a Params in hand is structurally
// complete.
type Params struct {
	OutputDir string   `yaml:"output_dir"`
	Networks  Networks `yaml:"networks"`
	Costs     string   `yaml:"costs"`
	Fields    Fields   `yaml:"fields"`
}

// Networks holds the two scenario table paths.
type Networks struct {
	Build   string `yaml:"build"`
	NoBuild string `yaml:"nobuild"`
}

// Fields holds the column bindings. See schema.cue for which are required.
type Fields struct {
	LinkID    FieldValue `yaml:"link_id"`
	FromNode  FieldValue `yaml:"from_node"`
	ToNode    FieldValue `yaml:"to_node"`
	Dir       FieldValue `yaml:"dir"`
	Length    FieldValue `yaml:"length"`
	ABVolume  FieldValue `yaml:"ab_volume"`
	BAVolume  FieldValue `yaml:"ba_volume"`
	ABCap     FieldValue `yaml:"ab_capacity"`
	BACap     FieldValue `yaml:"ba_capacity"`
	ABDelay   FieldValue `yaml:"ab_delay"`
	BADelay   FieldValue `yaml:"ba_delay"`
	FClass    FieldValue `yaml:"fclass"`
	CCClass   FieldValue `yaml:"cc_class"`
	ProjectID FieldValue `yaml:"project_id"`
	Geometry  FieldValue `yaml:"geometry"`
}

// DiffFields converts the bindings into the differ's field map.
func (p *Params) DiffFields() netdiff.Fields {
	f := p.Fields
	return netdiff.Fields{
		LinkID:    string(f.LinkID),
		FromNode:  string(f.FromNode),
		ToNode:    string(f.ToNode),
		Dir:       string(f.Dir),
		Length:    string(f.Length),
		ABVol:     string(f.ABVolume),
		BAVol:     string(f.BAVolume),
		ABCap:     string(f.ABCap),
		BACap:     string(f.BACap),
		ABDelay:   string(f.ABDelay),
		BADelay:   string(f.BADelay),
		FClass:    string(f.FClass),
		CCClass:   string(f.CCClass),
		ProjectID: string(f.ProjectID),
		Geometry:  string(f.Geometry),
	}
}
