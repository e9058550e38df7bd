package infill

import (
	"context"

	"github.com/slic3r/slicer-core/collab"
	"github.com/slic3r/slicer-core/geom"
	"github.com/slic3r/slicer-core/pipeline"
)

// Run drives the IRC sub-step order of spec §5: detect_surfaces_type (per
// layer) -> discover_vertical_shells -> bridge_over_infill ->
// combine_infill (dense-region tagging). process_external_surfaces and
// clip_fill_surfaces are folded into DetectSurfaceTypes' own slivers-
// collapse and overlap-reassignment steps; tag_under_bridge is the
// dense-region pass's own responsibility since both write max_solid_above.
// detector may be nil, in which case promoted bridges carry no angle (spec
// §6.1 BridgeDetector is an opaque, optionally-absent collaborator).
func Run(ctx context.Context, perLayerSlices []geom.ExPolys, upper, lower []geom.ExPolys, layers []LayerView, in RegionInput, detector collab.BridgeDetector) ([]Surfaces, error) {
	n := len(perLayerSlices)
	result := make([]Surfaces, n)

	err := pipeline.ForEachLayer(ctx, n, func(ctx context.Context, i int) error {
		sfs, err := DetectSurfaceTypes(layers[i], upperAt(upper, i), lowerAt(lower, i), in.ExtPerimWidth, false)
		if err != nil {
			return err
		}
		result[i] = sfs
		return nil
	})
	if err != nil {
		return nil, err
	}

	if in.EnsureVerticalShellThickness {
		for i := range result {
			if err := pipeline.CheckCancel(ctx); err != nil {
				return nil, err
			}
			sfs, err := EnforceVerticalShellThickness(result, i, in)
			if err != nil {
				return nil, err
			}
			result[i] = sfs
		}
	}

	for i := range result {
		if err := pipeline.CheckCancel(ctx); err != nil {
			return nil, err
		}
		sfs, err := PromoteBridgeOverInfill(result, i, layers, in.InfillWidth, in.BridgeHeight, detector)
		if err != nil {
			return nil, err
		}
		result[i] = sfs
	}

	if in.InfillDense {
		dense, err := TagDenseRegions(result, in)
		if err != nil {
			return nil, err
		}
		result = dense
	}

	return result, nil
}

func upperAt(upper []geom.ExPolys, i int) geom.ExPolys {
	if i < len(upper) {
		return upper[i]
	}
	return nil
}

func lowerAt(lower []geom.ExPolys, i int) geom.ExPolys {
	if i < len(lower) {
		return lower[i]
	}
	return nil
}
