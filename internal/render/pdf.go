package render

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/signintech/gopdf"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	fontRegular = "goregular"
	fontBold    = "gobold"

	pageMargin = 40.0
	lineHeight = 16.0
	badgePx    = 160
	badgePt    = 64.0
)

type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer { return &PDFRenderer{} }

func (r *PDFRenderer) ContentType() string { return "application/pdf" }

type pdfWriter struct {
	ctx    context.Context
	pdf    *gopdf.GoPdf
	width  float64
	height float64
}

// Render lays out doc on A4 pages. It stops with ctx's error when ctx is done.
func (r *PDFRenderer) Render(ctx context.Context, doc Document) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	page := *gopdf.PageSizeA4
	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: page})

	title := strings.TrimSpace(doc.Title)
	if title == "" {
		title = DefaultTitle
	}
	generated := doc.GeneratedAt
	if generated.IsZero() {
		generated = time.Now().UTC()
	}
	pdf.SetInfo(gopdf.PdfInfo{
		Title:        title,
		Creator:      "transparency-backend",
		CreationDate: generated,
	})

	if err := pdf.AddTTFFontData(fontRegular, goregular.TTF); err != nil {
		return nil, fmt.Errorf("load regular font: %w", err)
	}
	if err := pdf.AddTTFFontData(fontBold, gobold.TTF); err != nil {
		return nil, fmt.Errorf("load bold font: %w", err)
	}

	w := &pdfWriter{ctx: ctx, pdf: pdf, width: page.W, height: page.H}
	if err := w.write(title, doc, generated); err != nil {
		return nil, err
	}

	out, err := pdf.GetBytesPdfReturnErr()
	if err != nil {
		return nil, fmt.Errorf("encode pdf: %w", err)
	}
	return out, nil
}

func (w *pdfWriter) write(title string, doc Document, generated time.Time) error {
	w.pdf.AddPage()
	w.pdf.SetXY(pageMargin, pageMargin)

	if err := w.line(fontBold, 20, title); err != nil {
		return err
	}
	if err := w.line(fontRegular, 9, "Generated "+generated.UTC().Format(time.RFC3339)); err != nil {
		return err
	}
	w.pdf.Br(lineHeight / 2)

	top := w.pdf.GetY()
	fields := [][2]string{
		{"Name", doc.Product.Name},
		{"SKU", doc.Product.SKU},
		{"Category", doc.Product.Category},
		{"Transparency Score", FormatScore(doc.Score)},
	}
	for _, f := range fields {
		if err := w.field(f[0], f[1]); err != nil {
			return err
		}
	}

	if doc.Score != nil {
		badge, err := ScoreBadge(*doc.Score, badgePx)
		if err != nil {
			return err
		}
		x := w.width - pageMargin - badgePt
		if err := w.pdf.ImageFrom(badge, x, top, &gopdf.Rect{W: badgePt, H: badgePt}); err != nil {
			return fmt.Errorf("embed score badge: %w", err)
		}
		if y := top + badgePt; w.pdf.GetY() < y {
			w.pdf.SetY(y)
		}
	}

	w.pdf.Br(lineHeight)
	if err := w.line(fontBold, 14, "Answers"); err != nil {
		return err
	}
	if len(doc.Answers) == 0 {
		return w.line(fontRegular, 11, "No answers recorded.")
	}
	for _, a := range doc.Answers {
		if err := w.ctx.Err(); err != nil {
			return err
		}
		if err := w.answer(a); err != nil {
			return err
		}
	}
	return nil
}

func (w *pdfWriter) field(label, value string) error {
	if err := w.pdf.SetFont(fontBold, "", 11); err != nil {
		return err
	}
	w.ensureSpace(lineHeight)
	y := w.pdf.GetY()
	w.pdf.SetX(pageMargin)
	if err := w.pdf.Cell(nil, label+":"); err != nil {
		return err
	}
	if err := w.pdf.SetFont(fontRegular, "", 11); err != nil {
		return err
	}
	w.pdf.SetXY(pageMargin+120, y)
	if value != "" {
		if err := w.pdf.Cell(nil, value); err != nil {
			return err
		}
	}
	w.pdf.SetXY(pageMargin, y+lineHeight)
	return nil
}

func (w *pdfWriter) answer(a DocumentAnswer) error {
	if err := w.wrapped(fontBold, 11, a.Label, pageMargin); err != nil {
		return err
	}
	if a.Value != "" {
		if err := w.wrapped(fontRegular, 11, a.Value, pageMargin+12); err != nil {
			return err
		}
	}
	w.pdf.Br(lineHeight / 3)
	return nil
}

func (w *pdfWriter) line(family string, size float64, text string) error {
	if err := w.pdf.SetFont(family, "", size); err != nil {
		return err
	}
	h := size + 6
	w.ensureSpace(h)
	w.pdf.SetX(pageMargin)
	if err := w.pdf.Cell(nil, text); err != nil {
		return err
	}
	w.pdf.Br(h)
	return nil
}

func (w *pdfWriter) wrapped(family string, size float64, text string, x float64) error {
	if err := w.pdf.SetFont(family, "", size); err != nil {
		return err
	}
	maxW := w.width - pageMargin - x
	for _, para := range strings.Split(text, "\n") {
		lines, err := wrapWords(para, maxW, w.pdf.MeasureTextWidth)
		if err != nil {
			return err
		}
		for _, l := range lines {
			w.ensureSpace(lineHeight)
			w.pdf.SetX(x)
			if l != "" {
				if err := w.pdf.Cell(nil, l); err != nil {
					return err
				}
			}
			w.pdf.Br(lineHeight)
		}
	}
	return nil
}

func (w *pdfWriter) ensureSpace(h float64) {
	if w.pdf.GetY()+h > w.height-pageMargin {
		w.pdf.AddPage()
		w.pdf.SetXY(pageMargin, pageMargin)
	}
}

// wrapWords breaks text into lines no wider than maxW. A single word wider
// than maxW is split by rune.
func wrapWords(text string, maxW float64, measure func(string) (float64, error)) ([]string, error) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}, nil
	}
	var lines []string
	cur := ""
	for _, word := range words {
		candidate := word
		if cur != "" {
			candidate = cur + " " + word
		}
		cw, err := measure(candidate)
		if err != nil {
			return nil, err
		}
		if cw <= maxW {
			cur = candidate
			continue
		}
		if cur != "" {
			lines = append(lines, cur)
			cur = ""
		}
		ww, err := measure(word)
		if err != nil {
			return nil, err
		}
		if ww <= maxW {
			cur = word
			continue
		}
		chunk := ""
		for _, r := range word {
			next := chunk + string(r)
			nw, err := measure(next)
			if err != nil {
				return nil, err
			}
			if nw > maxW && chunk != "" {
				lines = append(lines, chunk)
				next = string(r)
			}
			chunk = next
		}
		cur = chunk
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines, nil
}
