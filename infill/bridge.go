package infill

import (
	"github.com/slic3r/slicer-core/collab"
	"github.com/slic3r/slicer-core/geom"
)

// PromoteBridgeOverInfill implements spec §4.3.3: for each Internal|Solid
// surface on this layer (not the lowest layer), if any lower layer within
// bridge_height contains Internal|Sparse area, promote the intersection
// to Internal|Solid|Bridge. A collapsing offset2(-3*bridge_width,
// +3*bridge_width) removes too-thin slivers first; of the two
// candidate collapse widths (the nominal width and a narrower one), the
// one producing fewer resulting pieces is kept. When detector is non-nil,
// its reported angle (spec §6.1 BridgeDetector.detect_angle) is attached to
// the promoted surfaces and its reported coverage narrows the promoted
// region to what the detector actually judges bridged.
func PromoteBridgeOverInfill(allLayers []Surfaces, idx int, layers []LayerView, bridgeWidth geom.Coord, bridgeHeight geom.Coord, detector collab.BridgeDetector) (Surfaces, error) {
	if idx == 0 {
		return allLayers[idx], nil
	}
	layer := allLayers[idx]
	solid := layer.ByTag(Tag{Position: PositionInternal, Density: DensitySolid})
	if len(solid) == 0 {
		return layer, nil
	}

	var sparseBelow geom.ExPolys
	accHeight := geom.Coord(0)
	for i := idx - 1; i >= 0; i-- {
		sparse := allLayers[i].ByTag(Tag{Position: PositionInternal, Density: DensitySparse})
		if len(sparse) > 0 {
			merged, err := geom.Union(sparseBelow, sparse.Regions())
			if err != nil {
				return nil, err
			}
			sparseBelow = merged
		}
		accHeight += layers[i].Height
		if accHeight >= bridgeHeight {
			break
		}
	}
	if len(sparseBelow) == 0 {
		return layer, nil
	}

	promoted, err := geom.Intersection(solid.Regions(), sparseBelow)
	if err != nil {
		return nil, err
	}
	promoted = collapseNarrowest(promoted, bridgeWidth)
	if len(promoted) == 0 {
		return layer, nil
	}

	var bridgeAngle float64
	var hasBridgeAngle bool
	if detector != nil {
		if angle, coverage, ok := detector.DetectAngle(promoted, sparseBelow, bridgeWidth, 0); ok {
			bridgeAngle, hasBridgeAngle = angle, true
			if len(coverage) > 0 {
				promoted = coverage
			}
		}
	}

	remaining, err := geom.Difference(solid.Regions(), promoted)
	if err != nil {
		return nil, err
	}

	var out Surfaces
	for _, sf := range layer {
		if sf.Tag.Position == PositionInternal && sf.Tag.Density == DensitySolid {
			continue
		}
		out.Append(sf)
	}
	solidTag := Tag{Position: PositionInternal, Density: DensitySolid}
	for _, ex := range remaining {
		out.Append(Surface{Region: ex, Tag: solidTag})
	}
	bridgeTag := Tag{Position: PositionInternal, Density: DensitySolid, Modifier: ModBridge}
	for _, ex := range promoted {
		s := Surface{Region: ex, Tag: bridgeTag}
		if hasBridgeAngle {
			s.BridgeAngle = bridgeAngle
			s.HasBridgeAngle = true
		}
		out.Append(s)
	}
	return out, nil
}

// collapseNarrowest tries offset2(-3w,+3w) and a narrower offset2(-1.5w,
// +1.5w), keeping whichever produces fewer resulting pieces (spec §4.3.3:
// "choose the narrower-margin of two offset widths if the first splits the
// region into more pieces than the second").
func collapseNarrowest(regions geom.ExPolys, bridgeWidth geom.Coord) geom.ExPolys {
	wide, errWide := geom.Offset2(regions, -3*float64(bridgeWidth), 3*float64(bridgeWidth), geom.JoinMiter)
	narrow, errNarrow := geom.Offset2(regions, -1.5*float64(bridgeWidth), 1.5*float64(bridgeWidth), geom.JoinMiter)
	switch {
	case errWide != nil && errNarrow != nil:
		return regions
	case errWide != nil:
		return narrow
	case errNarrow != nil:
		return wide
	}
	if len(wide) > len(narrow) {
		return narrow
	}
	return wide
}
