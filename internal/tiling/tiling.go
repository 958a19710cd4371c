// Package tiling generates the one-shot entrance animation plan for the
// landing page artwork: the image is partitioned into a grid and every cell
// flies in from a random offset before the plain image takes over.
package tiling

import "math/rand"

const (
	DefaultCols = 6
	DefaultRows = 4
	MaxCols     = 12
	MaxRows     = 12

	// Per-cell stagger and animation base time, in seconds.
	cellDelay    = 0.03
	baseDuration = 1.5

	offsetSpread   = 1500 // px, centered on zero
	rotationSpread = 360  // degrees, centered on zero
	scaleMin       = 0.3
	scaleSpread    = 0.4
)

// Piece is one grid cell with its randomized starting transform and the
// staggered delay before it starts moving to its resting position.
type Piece struct {
	Row      int     `json:"row"`
	Col      int     `json:"col"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"`
	Scale    float64 `json:"scale"`
	Delay    float64 `json:"delay"`
}

// Plan is a complete animation: after TotalDuration seconds the client swaps
// to the unsegmented image permanently.
type Plan struct {
	Cols          int     `json:"cols"`
	Rows          int     `json:"rows"`
	Pieces        []Piece `json:"pieces"`
	TotalDuration float64 `json:"total_duration"`
}

// NewPlan builds a randomized plan for a cols x rows grid. Dimensions outside
// 1..MaxCols/MaxRows fall back to the defaults.
func NewPlan(cols, rows int) Plan {
	if cols < 1 || cols > MaxCols {
		cols = DefaultCols
	}
	if rows < 1 || rows > MaxRows {
		rows = DefaultRows
	}

	total := cols * rows
	pieces := make([]Piece, 0, total)
	for i := 0; i < total; i++ {
		pieces = append(pieces, Piece{
			Row:      i / cols,
			Col:      i % cols,
			X:        (rand.Float64() - 0.5) * offsetSpread,
			Y:        (rand.Float64() - 0.5) * offsetSpread,
			Rotation: (rand.Float64() - 0.5) * rotationSpread,
			Scale:    scaleMin + rand.Float64()*scaleSpread,
			Delay:    float64(i) * cellDelay,
		})
	}

	return Plan{
		Cols:          cols,
		Rows:          rows,
		Pieces:        pieces,
		TotalDuration: baseDuration + float64(total)*cellDelay,
	}
}
