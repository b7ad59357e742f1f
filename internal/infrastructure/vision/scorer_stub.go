//go:build !gocv
// +build !gocv

package vision

import (
	"context"

	"omr-bot/internal/domain/entity"
	"omr-bot/internal/omr"
)

// Scorer заглушка без OpenCV.
type Scorer struct {
	cfg      omr.Config
	renderer Renderer
}

// NewScorer создаёт заглушку распознавания (без OpenCV).
func NewScorer(cfg omr.Config, renderer Renderer) *Scorer {
	return &Scorer{cfg: cfg, renderer: renderer}
}

// Process возвращает ошибку, если сборка без тега gocv.
func (s *Scorer) Process(ctx context.Context, req entity.SheetRequest) (*entity.SheetResult, error) {
	_ = ctx
	_ = req
	return nil, ErrUnavailable
}
