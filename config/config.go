// Package config holds the closed set of recognised options (spec §6.1)
// as a flat settings struct, following arl-go-detour/sample/solomesh's
// Settings + NewSettings() convention, loaded from YAML the way
// arl-go-detour/cmd/recast/cmd/utils.go's unmarshalYAMLFile does.
package config

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"

	"github.com/slic3r/slicer-core/geom"
)

// DenseAlgorithm selects the dense-infill enlargement policy (spec §6.1,
// §4.3.4).
type DenseAlgorithm string

const (
	DenseAutomatic      DenseAlgorithm = "Automatic"
	DenseAutoNotFull    DenseAlgorithm = "AutoNotFull"
	DenseEnlarged       DenseAlgorithm = "Enlarged"
	DenseAutoOrEnlarged DenseAlgorithm = "AutoOrEnlarged"
)

// SupportDistanceMode selects how support Z-distance is computed (spec
// §6.1).
type SupportDistanceMode string

const (
	SupportDistanceNone     SupportDistanceMode = "zdNone"
	SupportDistanceSoluble  SupportDistanceMode = "zdSoluble"
	SupportDistanceDistance SupportDistanceMode = "zdDistance"
)

// Options is the closed set of recognised options from spec §6.1.
type Options struct {
	// Loop counts
	Perimeters            int `yaml:"perimeters"`
	TopSolidLayers        int `yaml:"top_solid_layers"`
	BottomSolidLayers     int `yaml:"bottom_solid_layers"`
	SolidInfillEveryLayers int `yaml:"solid_infill_every_layers"`
	InfillEveryLayers     int `yaml:"infill_every_layers"`

	// Thicknesses
	TopSolidMinThickness    geom.Coord `yaml:"top_solid_min_thickness"`
	BottomSolidMinThickness geom.Coord `yaml:"bottom_solid_min_thickness"`

	// Flags
	ThinWalls                    bool `yaml:"thin_walls"`
	GapFill                      bool `yaml:"gap_fill"`
	Overhangs                    bool `yaml:"overhangs"`
	ExtraPerimeters              bool `yaml:"extra_perimeters"`
	OnlyOnePerimeterTop          bool `yaml:"only_one_perimeter_top"`
	EnsureVerticalShellThickness bool `yaml:"ensure_vertical_shell_thickness"`
	InfillOnlyWhereNeeded        bool `yaml:"infill_only_where_needed"`
	InfillDense                  bool `yaml:"infill_dense"`
	InterfaceShells              bool `yaml:"interface_shells"`
	SpiralVase                   bool `yaml:"spiral_vase"`
	HoleToPolyhole               bool `yaml:"hole_to_polyhole"`
	ClipMultipartObjects         bool `yaml:"clip_multipart_objects"`

	// Widths/margins
	ThinWallsMinWidth    geom.Coord `yaml:"thin_walls_min_width"`
	ThinWallsOverlap     geom.Coord `yaml:"thin_walls_overlap"`
	ExternalInfillMargin geom.Coord `yaml:"external_infill_margin"`
	BridgedInfillMargin  geom.Coord `yaml:"bridged_infill_margin"`
	InfillOverlap        geom.Coord `yaml:"infill_overlap"`
	SolidOverPerimeters  int        `yaml:"solid_over_perimeters"`

	DenseAlgorithm      DenseAlgorithm      `yaml:"dense_algorithm"`
	SupportDistanceMode SupportDistanceMode `yaml:"support_distance_mode"`

	// Compensation
	XYSizeCompensation                geom.Coord `yaml:"xy_size_compensation"`
	XYInnerSizeCompensation           geom.Coord `yaml:"xy_inner_size_compensation"`
	HoleSizeCompensation              geom.Coord `yaml:"hole_size_compensation"`
	FirstLayerSizeCompensation        geom.Coord `yaml:"first_layer_size_compensation"`
	FirstLayerSizeCompensationLayers  int        `yaml:"first_layer_size_compensation_layers"`

	// Physical (needed throughout MAX/PG/IRC beyond the option names above)
	NozzleDiameter geom.Coord `yaml:"nozzle_diameter"`
	LayerHeight    geom.Coord `yaml:"layer_height"`
}

// Default returns engineering defaults for every option, following
// solomesh.NewSettings' role of providing a ready-to-run baseline.
func Default() Options {
	return Options{
		Perimeters:             3,
		TopSolidLayers:         4,
		BottomSolidLayers:      3,
		SolidInfillEveryLayers: 0,
		InfillEveryLayers:      1,

		TopSolidMinThickness:    geom.MMToCoord(0.6),
		BottomSolidMinThickness: geom.MMToCoord(0.5),

		ThinWalls:                    true,
		GapFill:                      true,
		Overhangs:                    true,
		ExtraPerimeters:              true,
		EnsureVerticalShellThickness: true,

		ThinWallsMinWidth:    geom.MMToCoord(0.2),
		ExternalInfillMargin: geom.MMToCoord(3),
		BridgedInfillMargin:  geom.MMToCoord(3),
		InfillOverlap:        geom.MMToCoord(0.05),

		DenseAlgorithm:      DenseAutomatic,
		SupportDistanceMode: SupportDistanceNone,

		NozzleDiameter: geom.MMToCoord(0.4),
		LayerHeight:    geom.MMToCoord(0.2),
	}
}

// Load reads and unmarshals a YAML settings file, following
// arl-go-detour/cmd/recast/cmd/utils.go's unmarshalYAMLFile.
func Load(path string) (Options, error) {
	opts := Default()
	buf, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(buf, &opts); err != nil {
		return Options{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return opts, nil
}

// Save writes opts to path as YAML.
func Save(path string, opts Options) error {
	buf, err := yaml.Marshal(opts)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
