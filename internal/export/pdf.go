package export

import (
	"errors"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"WormBoard/internal/state"
)

// ErrEmpty is returned when there is nothing to export.
var ErrEmpty = errors.New("no points to export")

const (
	pageWidth  = 210.0 // A4, mm
	pageHeight = 297.0
	margin     = 10.0
)

// PDF writes points to an A4 page, scaled to fit inside the margins and
// drawn as dots in render order.
func PDF(path string, points []state.OrderedPoint, dotSize float64) error {
	if len(points) == 0 {
		return ErrEmpty
	}
	bounds, _ := state.Bounds(points)
	bounds = bounds.Pad(dotSize / 2)

	scale := min((pageWidth-2*margin)/bounds.Width, (pageHeight-2*margin)/bounds.Height)

	p := gofpdf.New("P", "mm", "A4", "")
	p.AddPage()
	p.SetFillColor(40, 60, 220)
	for _, pt := range points {
		p.Circle(
			margin+(pt.X-bounds.X)*scale,
			margin+(pt.Y-bounds.Y)*scale,
			dotSize/2*scale,
			"F",
		)
	}
	if err := p.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("could not write pdf %s: %w", path, err)
	}
	return nil
}
