package infill

import "github.com/slic3r/slicer-core/geom"

// DetectSurfaceTypes implements spec §4.3.1 for one layer of one region:
// top = slices \ upper, dilated then eroded by ext_perim_width/10 to
// collapse slivers; bottom = slices \ lower, tagged Bottom|Bridge when no
// lower layer exists or bridge-over-void is allowed, else plain Bottom
// when the lower layer exists but doesn't support this region; the
// top/bottom overlap is reassigned to Top; everything else becomes
// Internal|Sparse.
func DetectSurfaceTypes(layer LayerView, upper, lower geom.ExPolys, extPerimWidth geom.Coord, allowBridgeOverVoid bool) (Surfaces, error) {
	var out Surfaces
	slices := layer.Slices

	top, err := geom.Difference(slices, upper)
	if err != nil {
		return nil, err
	}
	top, err = collapseSlivers(top, extPerimWidth/10)
	if err != nil {
		return nil, err
	}

	bottom, err := geom.Difference(slices, lower)
	if err != nil {
		return nil, err
	}

	overlap, err := geom.Intersection(top, bottom)
	if err != nil {
		return nil, err
	}
	if len(overlap) > 0 {
		bottom, err = geom.Difference(bottom, overlap)
		if err != nil {
			return nil, err
		}
	}

	bottomTag := Tag{Position: PositionBottom, Density: DensitySolid}
	if len(lower) == 0 || allowBridgeOverVoid {
		bottomTag.Modifier = ModBridge
	}
	for _, ex := range bottom {
		out.Append(Surface{Region: ex, Tag: bottomTag})
	}

	topTag := Tag{Position: PositionTop, Density: DensitySolid}
	for _, ex := range top {
		out.Append(Surface{Region: ex, Tag: topTag})
	}

	covered, err := geom.Union(top, bottom)
	if err != nil {
		return nil, err
	}
	internal, err := geom.Difference(slices, covered)
	if err != nil {
		return nil, err
	}
	internalTag := Tag{Position: PositionInternal, Density: DensitySparse}
	for _, ex := range internal {
		out.Append(Surface{Region: ex, Tag: internalTag})
	}
	return out, nil
}

// collapseSlivers dilates then erodes by delta, the standard morphological
// "close" used throughout the source to drop slivers below delta in width.
func collapseSlivers(exs geom.ExPolys, delta geom.Coord) (geom.ExPolys, error) {
	if len(exs) == 0 {
		return exs, nil
	}
	return geom.Offset2(exs, float64(delta), -float64(delta), geom.JoinMiter)
}
