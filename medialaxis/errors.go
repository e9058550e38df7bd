package medialaxis

import "errors"

// ErrVoronoiDegenerate is the VoronoiDegenerate error kind of spec §7: the
// induced skeleton area ratio falls outside [1/1.1, 1.1]. Recovery is a
// single retry on a +EPS_S-offset input, keeping whichever attempt lands
// closer to a unit ratio (spec §4.1, "Failure semantics").
var ErrVoronoiDegenerate = errors.New("medialaxis: voronoi skeleton area ratio out of bounds")

// ErrExtensionMiss is the ExtensionMiss error kind of spec §7: a free
// endpoint's tangent extension meets neither Bounds nor any anchor region.
// It is not fatal -- the affected polyline is simply dropped.
var ErrExtensionMiss = errors.New("medialaxis: endpoint extension found no anchor")
