package export

import (
	"fmt"
	"io"
	"math"

	"github.com/jung-kurt/gofpdf"

	"github.com/samirrijal/aeroprofile/internal/core/domain"
	"github.com/samirrijal/aeroprofile/internal/core/geometry"
	"github.com/samirrijal/aeroprofile/internal/pkg/metrics"
)

// Page frame of a preview, A4 landscape in millimetres.
var (
	PageWidth       = 297.0
	PageHeight      = 210.0
	PageMargin      = 10.0
	TitleHeight     = 8.0
	TableRowHeight  = 6.0
	PointRadius     = 0.6
	DefaultFontSize = 7.0
)

// PDFOptions controls a preview.
type PDFOptions struct {
	Title string
	Table *domain.Table // printed under the drawing when set
}

// layerStyle is the stroke colour and width per target layer.
var layerStyle = map[string]struct {
	rgb   [3]int
	width float64
}{
	domain.LayerLine:         {[3]int{0x00, 0x00, 0x00}, 0.5},
	domain.LayerBaseline:     {[3]int{0x00, 0x00, 0x00}, 0.35},
	domain.LayerDist:         {[3]int{0x44, 0x44, 0x44}, 0.2},
	domain.LayerKeyVerticals: {[3]int{0x66, 0x66, 0x66}, 0.2},
	domain.LayerMOCA:         {[3]int{0x99, 0x33, 0x33}, 0.25},
	domain.LayerScaleLines:   {[3]int{0x00, 0x00, 0x66}, 0.25},
}

// frame maps set coordinates onto the page. Page y grows downwards.
type frame struct {
	ext     geometry.Extent
	scale   float64
	originX float64
	originY float64
}

func newFrame(ext geometry.Extent, x, y, w, h float64) frame {
	sx, sy := math.Inf(1), math.Inf(1)
	if ext.Width() > 0 {
		sx = w / ext.Width()
	}
	if ext.Height() > 0 {
		sy = h / ext.Height()
	}
	s := math.Min(sx, sy)
	if math.IsInf(s, 1) {
		s = 1
	}
	return frame{ext: ext, scale: s, originX: x, originY: y}
}

func (f frame) pt(c domain.Coord) (float64, float64) {
	return f.originX + (c.X-f.ext.MinX)*f.scale, f.originY + (f.ext.MaxY-c.Y)*f.scale
}

// PDF draws a one-page preview of set to w, framed with geometry.AutoZoomFactor.
func PDF(w io.Writer, set *domain.GeometrySet, opts PDFOptions) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(opts.Title, true)
	pdf.SetCreator("aeroprofile", true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	top := PageMargin
	if opts.Title != "" {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Text(PageMargin, PageMargin+5, tr(opts.Title))
		top += TitleHeight
	}
	bottom := PageHeight - PageMargin
	if opts.Table != nil {
		bottom -= TableRowHeight*float64(len(opts.Table.Rows)) + 4
	}

	if ext, ok := geometry.Bounds(set); ok {
		ext = ext.Scale(geometry.AutoZoomFactor)
		fr := newFrame(ext, PageMargin, top, PageWidth-2*PageMargin, bottom-top)
		drawPolygons(pdf, fr, set.Polygons)
		drawLines(pdf, fr, set.Lines)
		drawPoints(pdf, fr, set.Points, tr)
	}

	if opts.Table != nil {
		drawTable(pdf, *opts.Table, PageMargin, bottom+4, tr)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	metrics.ChartsExported.WithLabelValues("pdf").Inc()
	return nil
}

func stroke(pdf *gofpdf.Fpdf, layer string) {
	st, ok := layerStyle[layer]
	if !ok {
		st.width = 0.2
	}
	pdf.SetDrawColor(st.rgb[0], st.rgb[1], st.rgb[2])
	pdf.SetLineWidth(st.width)
}

func drawLines(pdf *gofpdf.Fpdf, fr frame, lines []domain.Feature) {
	for _, l := range lines {
		if len(l.Coords) < 2 {
			continue
		}
		stroke(pdf, l.Layer)
		x0, y0 := fr.pt(l.Coords[0])
		for _, c := range l.Coords[1:] {
			x1, y1 := fr.pt(c)
			pdf.Line(x0, y0, x1, y1)
			x0, y0 = x1, y1
		}
	}
}

func drawPolygons(pdf *gofpdf.Fpdf, fr frame, polys []domain.Feature) {
	pdf.SetFillColor(0xE8, 0xD0, 0xD0)
	for _, p := range polys {
		if len(p.Coords) < 3 {
			continue
		}
		stroke(pdf, p.Layer)
		pts := make([]gofpdf.PointType, len(p.Coords))
		for i, c := range p.Coords {
			pts[i].X, pts[i].Y = fr.pt(c)
		}
		pdf.Polygon(pts, "DF")
	}
}

func drawPoints(pdf *gofpdf.Fpdf, fr frame, points []domain.Feature, tr func(string) string) {
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetFillColor(0, 0, 0)
	for _, p := range points {
		if len(p.Coords) == 0 {
			continue
		}
		x, y := fr.pt(p.Coords[0])
		if p.Layer == domain.LayerPointSymbol {
			pdf.Circle(x, y, PointRadius, "F")
			continue
		}
		if p.TxtLabel == "" {
			continue
		}
		size := DefaultFontSize
		if p.Size > 0 {
			size = float64(p.Size) * 0.8
		}
		pdf.SetFont("Helvetica", "", size)
		if p.Rotation != 0 {
			pdf.TransformBegin()
			pdf.TransformRotate(p.Rotation, x, y)
			pdf.Text(x, y, tr(p.TxtLabel))
			pdf.TransformEnd()
			continue
		}
		pdf.Text(x, y, tr(p.TxtLabel))
	}
}

func drawTable(pdf *gofpdf.Fpdf, t domain.Table, x, y float64, tr func(string) string) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.25)
	for r, row := range t.Rows {
		pdf.SetXY(x, y+float64(r)*TableRowHeight)
		for i, cell := range row {
			w := 20.0
			if i < len(t.ColumnWidths) {
				w = t.ColumnWidths[i]
			}
			align := "C"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(w, TableRowHeight, tr(cell), "1", 0, align, false, 0, "")
		}
	}
}
