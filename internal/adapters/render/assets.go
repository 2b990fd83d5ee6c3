package render

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"

	"github.com/XingWo/skyblessings-go/internal/domain"
)

const fontFile = "LXGWWenKaiMono-Medium.ttf"

// Assets is the process-wide set of decoded images plus the parsed
// typeface. It is populated once by LoadAssets before serving starts and
// is read-only afterwards, so renders share it without locking.
type Assets struct {
	mask        image.Image
	decorations map[domain.FortuneLevel]image.Image
	panels      map[domain.FortuneLevel]image.Image
	typeface    *opentype.Font
}

// LoadAssets decodes the complete asset set under dir:
//
//	image/mask.png          shared top overlay
//	image/deco_<level>.png  per-level decoration background
//	image/text_<level>.png  per-level text panel
//	font/LXGWWenKaiMono-Medium.ttf
//
// Every file must be present and decodable. A failure wraps
// domain.ErrMissingAsset so the caller can refuse to start the service
// with an incomplete set.
func LoadAssets(dir string) (*Assets, error) {
	a := &Assets{
		decorations: make(map[domain.FortuneLevel]image.Image),
		panels:      make(map[domain.FortuneLevel]image.Image),
	}

	mask, err := loadImage(filepath.Join(dir, "image", "mask.png"))
	if err != nil {
		return nil, err
	}
	a.mask = mask

	for _, lvl := range domain.Levels() {
		deco, err := loadImage(filepath.Join(dir, "image", fmt.Sprintf("deco_%s.png", lvl)))
		if err != nil {
			return nil, err
		}
		a.decorations[lvl] = deco

		panel, err := loadImage(filepath.Join(dir, "image", fmt.Sprintf("text_%s.png", lvl)))
		if err != nil {
			return nil, err
		}
		a.panels[lvl] = panel
	}

	fontPath := filepath.Join(dir, "font", fontFile)
	raw, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s (%v)", domain.ErrMissingAsset, fontPath, err)
	}
	tf, err := opentype.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s (%v)", domain.ErrMissingAsset, fontPath, err)
	}
	a.typeface = tf

	return a, nil
}

func loadImage(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s (%v)", domain.ErrMissingAsset, path, err)
	}
	return img, nil
}

// Mask returns the shared overlay image.
func (a *Assets) Mask() image.Image { return a.mask }

// Decoration returns the background for a fortune level. LoadAssets
// guarantees coverage of every domain.Levels entry.
func (a *Assets) Decoration(lvl domain.FortuneLevel) image.Image { return a.decorations[lvl] }

// Panel returns the text panel for a fortune level.
func (a *Assets) Panel(lvl domain.FortuneLevel) image.Image { return a.panels[lvl] }

// Face mints a font.Face at the given point size. Faces hold mutable
// rasterization state and are not safe for concurrent use, so each
// render gets fresh ones; the parsed typeface itself is shared.
func (a *Assets) Face(size float64) (font.Face, error) {
	face, err := opentype.NewFace(a.typeface, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font face at %.1fpt: %w", size, err)
	}
	return face, nil
}
