package geom

import "errors"

// ErrInvalidGeometry is the InputGeometryInvalid error kind of spec §7: a
// non-simple polygon, a zero-area region, or a NaN/overflowing vertex.
// Callers recover by skipping the affected island or layer.
var ErrInvalidGeometry = errors.New("geom: invalid input geometry")

// ErrNumericalOverflow is the NumericalOverflow error kind of spec §7: a
// vertex exceeds the representable coordinate range during an offset.
var ErrNumericalOverflow = errors.New("geom: numerical overflow during offset")
