package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/XingWo/skyblessings-go/internal/domain"
	"github.com/XingWo/skyblessings-go/internal/ports"
)

// BlessingService orchestrates one draw-and-render cycle: pick a record
// from the table, composite it into a PNG, hand back both.
type BlessingService struct {
	source   ports.BlessingSource
	renderer ports.Renderer
	rng      domain.RNG
	logger   *slog.Logger
	debug    bool
}

func NewBlessingService(source ports.BlessingSource, renderer ports.Renderer, rng domain.RNG, logger *slog.Logger, debug bool) *BlessingService {
	return &BlessingService{
		source:   source,
		renderer: renderer,
		rng:      rng,
		logger:   logger,
		debug:    debug,
	}
}

// DrawResult pairs the encoded image with the record that produced it.
type DrawResult struct {
	Record domain.BlessingRecord
	PNG    []byte
}

// RenderBlessing draws one record and renders it. Either a complete
// image comes back or an error; there is no partial output.
func (s *BlessingService) RenderBlessing(ctx context.Context, opts ports.RenderOptions) (DrawResult, error) {
	table, err := s.source.Table(ctx)
	if err != nil {
		return DrawResult{}, fmt.Errorf("load table: %w", err)
	}

	rec := table.Draw(s.rng)
	if s.debug {
		s.logger.Debug("draw result",
			"level", rec.Level.Label(),
			"object", rec.Object,
			"color", rec.Color,
			"verse", rec.Verse,
			"activity", rec.Activity,
		)
	}

	data, err := s.renderer.Render(ctx, rec, opts)
	if err != nil {
		return DrawResult{}, fmt.Errorf("render %s blessing: %w", rec.Level, err)
	}

	return DrawResult{Record: rec, PNG: data}, nil
}
