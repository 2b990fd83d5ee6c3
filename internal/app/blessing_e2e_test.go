package app_test

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/XingWo/skyblessings-go/internal/adapters/blessings"
	"github.com/XingWo/skyblessings-go/internal/adapters/render"
	"github.com/XingWo/skyblessings-go/internal/app"
	"github.com/XingWo/skyblessings-go/internal/domain"
	"github.com/XingWo/skyblessings-go/internal/ports"
)

var decoColors = map[domain.FortuneLevel]color.NRGBA{
	domain.LevelGreat: {R: 200, G: 30, B: 40, A: 255},
	domain.LevelUpper: {R: 30, G: 200, B: 40, A: 255},
	domain.LevelSmall: {R: 40, G: 30, B: 200, A: 255},
	domain.LevelPlain: {R: 200, G: 200, B: 30, A: 255},
	domain.LevelLate:  {R: 30, G: 200, B: 200, A: 255},
}

func e2eAssetDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	imgDir := filepath.Join(dir, "image")
	fontDir := filepath.Join(dir, "font")
	for _, d := range []string{imgDir, fontDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatal(err)
		}
	}

	save := func(name string, w, h int, c color.NRGBA) {
		if err := imaging.Save(imaging.New(w, h, c), filepath.Join(imgDir, name)); err != nil {
			t.Fatalf("save %s: %v", name, err)
		}
	}
	save("mask.png", 64, 32, color.NRGBA{})
	for lvl, c := range decoColors {
		save(fmt.Sprintf("deco_%s.png", lvl), 64, 32, c)
		save(fmt.Sprintf("text_%s.png", lvl), 8, 8, color.NRGBA{R: 240, G: 240, B: 240, A: 255})
	}

	fontPath := filepath.Join(fontDir, "LXGWWenKaiMono-Medium.ttf")
	if err := os.WriteFile(fontPath, goregular.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

// Full pipeline with a pinned RNG: embedded table, real asset set, real
// compositor. The first table record is the great-fortune slip, so its
// decoration color must appear on the output canvas.
func TestRenderBlessing_EndToEnd(t *testing.T) {
	assets, err := render.LoadAssets(e2eAssetDir(t))
	if err != nil {
		t.Fatalf("load assets: %v", err)
	}
	const width, height = 64, 32
	renderer := render.NewRenderer(assets, width, height, 10)

	store := blessings.NewEmbeddedStore()
	svc := app.NewBlessingService(store, renderer, fixedRNG{val: 0}, discardLogger(), true)

	res, err := svc.RenderBlessing(context.Background(), ports.RenderOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Record.Level != domain.LevelGreat {
		t.Fatalf("expected a great-fortune draw, got %s", res.Record.Level)
	}
	if res.Record.Verse != "东风满杯，诸事顺遂" {
		t.Errorf("unexpected verse: %s", res.Record.Verse)
	}
	if len(res.PNG) == 0 {
		t.Fatal("empty image output")
	}

	img, err := png.Decode(bytes.NewReader(res.PNG))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != width || b.Dy() != height {
		t.Fatalf("canvas is %dx%d, expected %dx%d", b.Dx(), b.Dy(), width, height)
	}

	want := decoColors[domain.LevelGreat]
	cr, cg, cb, _ := img.At(2, 2).RGBA()
	if abs(int(cr>>8)-int(want.R)) > 2 || abs(int(cg>>8)-int(want.G)) > 2 || abs(int(cb>>8)-int(want.B)) > 2 {
		t.Errorf("pixel (2,2) = (%d,%d,%d), expected around (%d,%d,%d)",
			cr>>8, cg>>8, cb>>8, want.R, want.G, want.B)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
