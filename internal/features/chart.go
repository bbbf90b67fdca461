package features

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	apperrors "github.com/anime-shed/texture-inspector-go/internal/errors"
)

// WriteHistogramChart renders hist as a bar chart. The image format follows
// the file extension (png, svg, pdf, ...).
func WriteHistogramChart(path, title string, hist []float64) error {
	if len(hist) == 0 {
		return apperrors.NewEmptyInputError("cannot chart an empty histogram", nil)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Code"
	p.Y.Label.Text = "Count"

	bars, err := plotter.NewBarChart(plotter.Values(hist), vg.Points(6))
	if err != nil {
		return apperrors.NewInternalError("build bar chart", err)
	}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)

	width := vg.Length(max(len(hist), 20)) * vg.Points(8)
	if err := p.Save(width, 4*vg.Inch, path); err != nil {
		return apperrors.NewIOError(fmt.Sprintf("save chart %s", path), err)
	}
	return nil
}
