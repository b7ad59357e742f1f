//go:build gocv
// +build gocv

package vision

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"gocv.io/x/gocv"

	"omr-bot/internal/domain/entity"
	"omr-bot/internal/omr"
)

// Scorer распознаёт и проверяет бланк. Не хранит состояния между вызовами,
// поэтому один экземпляр можно вызывать из нескольких горутин.
type Scorer struct {
	cfg      omr.Config
	renderer Renderer
}

// NewScorer создаёт распознаватель с заданной геометрией шаблона.
func NewScorer(cfg omr.Config, renderer Renderer) *Scorer {
	return &Scorer{cfg: cfg, renderer: renderer}
}

// sheet кадры одного вызова Process.
type sheet struct {
	req         entity.SheetRequest
	color       gocv.Mat
	mask        gocv.Mat
	highlighted gocv.Mat
}

// Process распознаёт бланк: блок ID, затем колонки слева направо.
// Ошибка декодирования или отсутствие блоков прерывает проверку; сетка, которую не удалось
// построить внутри найденного блока, заменяется значениями по умолчанию.
func (s *Scorer) Process(ctx context.Context, req entity.SheetRequest) (*entity.SheetResult, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, mask, err := s.preprocess(req.ImageData)
	defer img.Close()
	defer mask.Close()
	if err != nil {
		return nil, fmt.Errorf("preprocess %s: %w", req.Filename, err)
	}

	blocks, err := s.locateBlocks(mask)
	if err != nil {
		return nil, fmt.Errorf("locate blocks in %s: %w", req.Filename, err)
	}

	sh := &sheet{req: req, color: img, mask: mask, highlighted: img.Clone()}
	defer sh.highlighted.Close()

	res := &entity.SheetResult{StudentID: s.readStudentID(sh, blocks.ID)}

	rows := s.cfg.AnswerGrid.Groups
	columns := make([][]entity.QuestionResult, len(blocks.Columns))
	for k, quad := range blocks.Columns {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		columns[k] = s.scoreColumn(sh, quad, k+1, omr.FirstQuestion(k, rows))
	}
	res.Answers, res.FailedColumns = omr.AssembleAnswers(columns, rows)

	if req.Debug {
		s.writeBlocksDebug(sh, blocks)
		writeDebug(req.DebugDir, HighlightedName(req.Mode, req.Filename), sh.highlighted)
	}
	s.render(sh, res)

	log.Printf("Processing time for %s: %.2f seconds", req.Filename, time.Since(start).Seconds())
	return res, nil
}

// readStudentID читает 12 цифр кода; если сетку не удалось построить, возвращает StudentIDUnreadable.
func (s *Scorer) readStudentID(sh *sheet, quad omr.Quad) string {
	warpedMask := warpQuad(sh.mask, quad)
	defer warpedMask.Close()
	warpedColor := warpQuad(sh.color, quad)
	defer warpedColor.Close()
	warpedHL := warpQuad(sh.highlighted, quad)
	defer warpedHL.Close()

	turned := omr.NeedsClockwiseTurn(warpedColor.Cols(), warpedColor.Rows(), s.cfg.IDRotateRatio)
	if turned {
		rotate(&warpedMask, gocv.Rotate90Clockwise)
		rotate(&warpedColor, gocv.Rotate90Clockwise)
		rotate(&warpedHL, gocv.Rotate90Clockwise)
	}

	id := entity.StudentIDUnreadable
	grid, err := s.buildGrid(warpedMask, s.cfg.IDGrid)
	if err != nil {
		log.Printf("Student ID grid in %s: %v", sh.req.Filename, err)
	} else {
		var b strings.Builder
		for _, digitCells := range grid {
			digit, ok := omr.MarkedDigit(cellDensities(warpedMask, digitCells), s.cfg.MarkThreshold)
			if !ok {
				b.WriteByte('-')
				continue
			}
			b.WriteString(strconv.Itoa(digit))
			drawCell(&warpedHL, digitCells[digit], s.cfg.Palette.IDMark)
		}
		id = b.String()
	}

	if turned {
		rotate(&warpedHL, gocv.Rotate90CounterClockwise)
	}
	overlay(&sh.highlighted, warpedHL, quad, sh.req.Filename+" id block")

	if sh.req.Debug {
		writeDebug(sh.req.DebugDir, IDBlockDebugName(sh.req.Filename), warpedColor)
	}
	return id
}

// scoreColumn проверяет колонку column (с 1), вопросы начиная с first. Возвращает nil,
// если сетку не удалось построить.
func (s *Scorer) scoreColumn(sh *sheet, quad omr.Quad, column, first int) []entity.QuestionResult {
	warpedMask := warpQuad(sh.mask, quad)
	defer warpedMask.Close()
	warpedColor := warpQuad(sh.color, quad)
	defer warpedColor.Close()
	warpedHL := warpQuad(sh.highlighted, quad)
	defer warpedHL.Close()

	turned := omr.NeedsCounterClockwiseTurn(warpedColor.Cols(), warpedColor.Rows())
	if turned {
		rotate(&warpedMask, gocv.Rotate90CounterClockwise)
		rotate(&warpedColor, gocv.Rotate90CounterClockwise)
		rotate(&warpedHL, gocv.Rotate90CounterClockwise)
	}

	grid, err := s.buildGrid(warpedMask, s.cfg.AnswerGrid)
	if err != nil {
		log.Printf("Answer grid for column %d in %s: %v", column, sh.req.Filename, err)
		return nil
	}

	results := make([]entity.QuestionResult, len(grid))
	for i, cells := range grid {
		marked := omr.MarkedChoices(cellDensities(warpedMask, cells), s.cfg.MarkThreshold)
		result := omr.Score(sh.req.Mode, first+i, marked, sh.req.Key)
		results[i] = result

		clr := s.cfg.Palette.For(result.Status)
		for _, choice := range marked {
			drawCell(&warpedHL, cells[choice-1], clr)
		}
	}

	if turned {
		rotate(&warpedHL, gocv.Rotate90Clockwise)
	}
	overlay(&sh.highlighted, warpedHL, quad, fmt.Sprintf("%s column %d", sh.req.Filename, column))

	if sh.req.Debug {
		writeDebug(sh.req.DebugDir, ColumnDebugName(sh.req.Filename, column), warpedColor)
	}
	return results
}

// render готовит веб-версию размеченного кадра и, если задан каталог, сохраняет её.
func (s *Scorer) render(sh *sheet, res *entity.SheetResult) {
	res.RenditionName = RenditionName(sh.req.Mode, sh.req.Filename)
	if s.renderer == nil {
		return
	}

	img, err := sh.highlighted.ToImage()
	if err != nil {
		log.Printf("Error converting %s for rendition: %v", sh.req.Filename, err)
		return
	}
	data, err := s.renderer.Render(img, caption(res, s.cfg.Questions()))
	if err != nil {
		log.Printf("Error rendering %s: %v", sh.req.Filename, err)
		return
	}
	res.Rendition = data
	saveFile(sh.req.DebugDir, res.RenditionName, data)
}

func (s *Scorer) writeBlocksDebug(sh *sheet, blocks *layout) {
	debug := sh.color.Clone()
	defer debug.Close()
	drawQuad(&debug, blocks.ID, s.cfg.Palette.Block)
	for _, q := range blocks.Columns {
		drawQuad(&debug, q, s.cfg.Palette.Block)
	}
	writeDebug(sh.req.DebugDir, BlocksDebugName(sh.req.Mode, sh.req.Filename), debug)
}
