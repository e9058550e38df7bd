package infill

import "github.com/slic3r/slicer-core/geom"

// EnforceVerticalShellThickness implements spec §4.3.2: project top and
// bottom surfaces from the top_solid_layers/top_solid_min_thickness window
// (and the analogous bottom window) onto this layer, union them,
// intersect with this layer's internal surfaces to get shell, subtract
// this layer's own Internal|Solid surfaces (holes; the fill of
// neighbouring layers is not subtracted), and regularize by shrinking
// 0.5*MinInfillSpacing then growing 0.8*MinInfillSpacing; the result is
// reassigned Internal|Solid and the complement stays Sparse/Void.
func EnforceVerticalShellThickness(allLayers []Surfaces, idx int, in RegionInput) (Surfaces, error) {
	if !in.EnsureVerticalShellThickness {
		return allLayers[idx], nil
	}
	layer := allLayers[idx]
	internal := layer.ByTag(Tag{Position: PositionInternal, Density: DensitySparse})
	if len(internal) == 0 {
		return layer, nil
	}

	topWindow := projectWindow(allLayers, idx, in.TopSolidLayers, in.Layers, in.TopSolidMinThickness, PositionTop)
	bottomWindow := projectWindow(allLayers, idx, in.BottomSolidLayers, in.Layers, in.BottomSolidMinThickness, PositionBottom)

	projected, err := geom.Union(topWindow, bottomWindow)
	if err != nil {
		return nil, err
	}
	shell, err := geom.Intersection(internal.Regions(), projected)
	if err != nil {
		return nil, err
	}
	holes, err := geom.Union(
		layer.ByTag(Tag{Position: PositionInternal, Density: DensitySolid}).Regions(),
		geom.ExPolys{},
	)
	if err != nil {
		return nil, err
	}
	if len(holes) > 0 {
		shell, err = geom.Difference(shell, holes)
		if err != nil {
			return nil, err
		}
	}
	shell, err = geom.Offset2(shell, -0.5*float64(in.MinInfillSpacing), 0.8*float64(in.MinInfillSpacing), geom.JoinSquare)
	if err != nil {
		return nil, err
	}
	if len(shell) == 0 {
		return layer, nil
	}

	remainingSparse, err := geom.Difference(internal.Regions(), shell)
	if err != nil {
		return nil, err
	}

	var out Surfaces
	for _, sf := range layer {
		if sf.Tag.Position == PositionInternal && sf.Tag.Density == DensitySparse {
			continue
		}
		out.Append(sf)
	}
	solidTag := Tag{Position: PositionInternal, Density: DensitySolid}
	for _, ex := range shell {
		out.Append(Surface{Region: ex, Tag: solidTag})
	}
	sparseTag := Tag{Position: PositionInternal, Density: DensitySparse}
	for _, ex := range remainingSparse {
		out.Append(Surface{Region: ex, Tag: sparseTag})
	}
	return out, nil
}

// projectWindow unions the Top (or Bottom) surfaces of up to n layers
// around idx (going up for Top, down for Bottom), stopping early once the
// accumulated height meets minThickness.
func projectWindow(allLayers []Surfaces, idx, n int, layers []LayerView, minThickness geom.Coord, pos Position) geom.ExPolys {
	var acc geom.ExPolys
	accHeight := geom.Coord(0)
	step := 1
	if pos == PositionBottom {
		step = -1
	}
	count := 0
	for i := step; count < n && idx+i >= 0 && idx+i < len(allLayers); i += step {
		layer := allLayers[idx+i]
		matched := layer.ByTag(Tag{Position: pos, Density: DensitySolid})
		if len(matched) == 0 {
			continue
		}
		if merged, err := geom.Union(acc, matched.Regions()); err == nil {
			acc = merged
		}
		accHeight += layers[idx+i].Height
		count++
		if minThickness > 0 && accHeight >= minThickness {
			break
		}
	}
	return acc
}
