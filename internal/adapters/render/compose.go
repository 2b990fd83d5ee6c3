package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/XingWo/skyblessings-go/internal/domain"
	"github.com/XingWo/skyblessings-go/internal/ports"
)

// Placement constants, relative to the canvas, matching the slip artwork.
const (
	panelLeftRatio   = 0.204
	panelTopRatio    = 0.49
	columnWidthRatio = 0.35 // right-hand text column share of the canvas
	columnRightInset = 173  // right margin plus shift away from the panel

	verseScale     = 1.225 // verse face is a step larger than the labels
	activityPrefix = "宜 "
)

// Vertical gap after the object row, the color row, and the verse block.
var rowGaps = [3]int{20, 60, 85}

// Renderer composites a drawn blessing into a PNG. It implements
// ports.Renderer and only ever reads from the shared asset set; every
// render draws onto a fresh canvas.
type Renderer struct {
	assets   *Assets
	width    int
	height   int
	fontSize float64
}

func NewRenderer(assets *Assets, width, height, fontSize int) *Renderer {
	return &Renderer{
		assets:   assets,
		width:    width,
		height:   height,
		fontSize: float64(fontSize),
	}
}

// Render layers, bottom to top: the record's color tint, the per-level
// decoration background, the per-level text panel, the text runs, and
// the shared mask overlay. The output is always width x height.
func (r *Renderer) Render(_ context.Context, rec domain.BlessingRecord, opts ports.RenderOptions) ([]byte, error) {
	labelFace, err := r.assets.Face(r.fontSize)
	if err != nil {
		return nil, fmt.Errorf("label face: %w", err)
	}
	verseFace, err := r.assets.Face(r.fontSize * verseScale)
	if err != nil {
		return nil, fmt.Errorf("verse face: %w", err)
	}

	dc := gg.NewContext(r.width, r.height)
	dc.SetHexColor(rec.ColorHex)
	dc.Clear()

	deco := imaging.Resize(r.assets.Decoration(rec.Level), r.width, r.height, imaging.Lanczos)
	dc.DrawImage(deco, 0, 0)

	panel := r.assets.Panel(rec.Level)
	dc.DrawImage(panel, int(float64(r.width)*panelLeftRatio), int(float64(r.height)*panelTopRatio))

	r.drawTexts(dc, labelFace, verseFace, rec, opts.Stroke)

	mask := imaging.Resize(r.assets.Mask(), r.width, r.height, imaging.Lanczos)
	dc.DrawImage(mask, 0, 0)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// drawTexts stacks the object, color, wrapped verse, and activity rows
// vertically centered in the right-hand column. The labels sit at fixed
// column coordinates; only the verse is laid out dynamically.
func (r *Renderer) drawTexts(dc *gg.Context, labelFace, verseFace font.Face, rec domain.BlessingRecord, stroke bool) {
	colWidth := int(float64(r.width) * columnWidthRatio)
	colX := r.width - colWidth - columnRightInset

	labelH := LineHeight(labelFace)
	verseH := LineHeight(verseFace)
	labelAsc := labelFace.Metrics().Ascent.Ceil()
	verseAsc := verseFace.Metrics().Ascent.Ceil()

	verseLines := LayoutVerse(verseFace, rec.Verse, colWidth)

	total := 3*labelH + rowGaps[0] + rowGaps[1] + rowGaps[2] + len(verseLines)*verseH
	y := (r.height - total) / 2

	dc.SetFontFace(labelFace)
	r.drawString(dc, rec.Object, colX, y+labelAsc, stroke)
	y += labelH + rowGaps[0]
	r.drawString(dc, rec.Color, colX, y+labelAsc, stroke)
	y += labelH + rowGaps[1]

	dc.SetFontFace(verseFace)
	for _, ln := range verseLines {
		r.drawString(dc, ln.Text, colX+ln.X, y+verseAsc, stroke)
		y += verseH
	}
	y += rowGaps[2]

	dc.SetFontFace(labelFace)
	r.drawString(dc, activityPrefix+rec.Activity, colX, y+labelAsc, stroke)
}

// drawString draws s with its baseline at (x, y) in white ink, with an
// optional eight-direction gray outline underneath.
func (r *Renderer) drawString(dc *gg.Context, s string, x, y int, stroke bool) {
	if stroke {
		dc.SetRGBA255(100, 100, 100, 80)
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				if dx == 0 && dy == 0 {
					continue
				}
				dc.DrawString(s, float64(x+dx), float64(y+dy))
			}
		}
	}
	dc.SetRGBA255(255, 255, 255, 255)
	dc.DrawString(s, float64(x), float64(y))
}
