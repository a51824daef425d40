// Package export writes sketch documents to formats meant for viewing
// rather than editing.
package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"SketchBoard/internal/state"
)

// PDF writes doc as a single page whose size in points equals the logical
// canvas size. Strokes keep their curves; pressure is not represented.
func PDF(w io.Writer, doc *state.Document) error {
	size := doc.Size()
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: size.W, Ht: size.H},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	bg := doc.Background()
	pdf.SetFillColor(int(bg.R), int(bg.G), int(bg.B))
	pdf.Rect(0, 0, size.W, size.H, "F")

	pdf.SetLineCapStyle("round")
	pdf.SetLineJoinStyle("round")
	for _, s := range doc.Strokes() {
		pdfStroke(pdf, s)
	}
	pdf.SetAlpha(1, "Normal")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

func pdfStroke(pdf *gofpdf.Fpdf, s state.Stroke) {
	c := s.Style.Color
	pdf.SetAlpha(s.Style.Opacity*float64(c.A)/0xff, "Normal")

	if s.Path.IsDot() {
		k := s.Path.Knots[0]
		pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
		pdf.Circle(k.X, k.Y, s.Style.Width/2, "F")
		return
	}
	if len(s.Path.Segments) == 0 {
		return
	}

	pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
	pdf.SetLineWidth(s.Style.Width)
	first := s.Path.Segments[0].P0
	pdf.MoveTo(first.X, first.Y)
	for _, seg := range s.Path.Segments {
		pdf.CurveBezierCubicTo(seg.C1.X, seg.C1.Y, seg.C2.X, seg.C2.Y, seg.P3.X, seg.P3.Y)
	}
	pdf.DrawPath("D")
}
