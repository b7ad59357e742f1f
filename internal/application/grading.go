package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"omr-bot/internal/domain/entity"
	"omr-bot/internal/domain/port"
)

// Questions число вопросов на бланке.
const Questions = 120

// ErrNotReady ключ ответов не загружен или не подходит к режиму.
var ErrNotReady = errors.New("answer key is not loaded for the selected mode")

// Upload файл бланка.
type Upload struct {
	Name string
	Data []byte
}

// Batch параметры проверки пачки бланков без сессии бота.
type Batch struct {
	Mode   entity.Mode
	Key    *entity.AnswerKey
	Roster entity.Roster
	Debug  bool
}

// GradingOptions общие настройки проверки.
type GradingOptions struct {
	DebugDir string // каталог для веб-версий и отладочных картинок
	Debug    bool   // отладка для всех, независимо от настройки пользователя
	Workers  int    // сколько бланков пачки проверяется одновременно
}

// GradeOutput проверенный бланк и его картинка с подсветкой.
type GradeOutput struct {
	Sheet     entity.GradedSheet
	Rendition []byte
}

type GradingService struct {
	users   *UserService
	scorer  port.SheetScorer
	results port.ResultRepository
	opts    GradingOptions
	now     func() time.Time
}

// NewGradingService создаёт сервис проверки бланков.
func NewGradingService(users *UserService, scorer port.SheetScorer, results port.ResultRepository, opts GradingOptions) *GradingService {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &GradingService{
		users:   users,
		scorer:  scorer,
		results: results,
		opts:    opts,
		now:     time.Now,
	}
}

// GradeSheet проверяет один бланк из сессии пользователя и добавляет его в ведомость.
// Если код уже встречался в ведомости, новый бланк помечается как дубликат.
func (s *GradingService) GradeSheet(ctx context.Context, userID, chatID int64, up Upload) (*GradeOutput, error) {
	user, err := s.users.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}
	if !user.Ready() {
		return nil, ErrNotReady
	}

	if _, err := s.users.SetState(ctx, userID, chatID, entity.StateProcessing); err != nil {
		return nil, err
	}
	defer func() {
		if _, err := s.users.SetState(context.Background(), userID, chatID, entity.StateAwaitingSheets); err != nil {
			log.Printf("Error restoring state for user %d: %v", userID, err)
		}
	}()

	batch := Batch{Mode: user.Mode, Key: user.Key, Roster: user.Roster, Debug: user.Debug}
	sheet, rendition := s.grade(ctx, batch, up)

	if !sheet.Failed() && sheet.StudentID != entity.StudentIDUnreadable {
		stored, err := s.results.List(ctx, userID)
		if err != nil {
			return nil, err
		}
		for _, prev := range stored {
			if prev.StudentID == sheet.StudentID && prev.Mode == sheet.Mode {
				sheet.Duplicate = true
				log.Printf("Duplicate student ID detected: %s in files %s, %s", sheet.StudentID, prev.FileName, sheet.FileName)
				break
			}
		}
	}

	if err := s.results.Save(ctx, userID, sheet); err != nil {
		return nil, fmt.Errorf("save result: %w", err)
	}
	return &GradeOutput{Sheet: sheet, Rendition: rendition}, nil
}

// GradeBatch проверяет пачку бланков пулом из Workers горутин. Ошибка одного бланка
// не прерывает пачку: он попадает в ведомость строкой ERROR. Результаты идут в порядке входа.
func (s *GradingService) GradeBatch(ctx context.Context, batch Batch, uploads []Upload) ([]entity.GradedSheet, error) {
	if batch.Key == nil || batch.Key.Len() == 0 || batch.Key.Mode != batch.Mode {
		return nil, ErrNotReady
	}
	start := s.now()

	sheets := make([]entity.GradedSheet, len(uploads))
	jobs := make(chan int, len(uploads))

	var wg sync.WaitGroup
	for w := 0; w < s.opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				sheets[i], _ = s.grade(ctx, batch, uploads[i])
			}
		}()
	}
	for i := range uploads {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	MarkDuplicates(sheets)
	log.Printf("Graded %d sheets (%d workers) in %.2f seconds", len(sheets), s.opts.Workers, s.now().Sub(start).Seconds())
	return sheets, nil
}

// Results ведомость пользователя: сначала строки, требующие проверки, затем по коду.
func (s *GradingService) Results(ctx context.Context, userID int64) ([]entity.GradedSheet, error) {
	sheets, err := s.results.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return OrderResults(sheets), nil
}

// ClearResults очищает ведомость пользователя.
func (s *GradingService) ClearResults(ctx context.Context, userID int64) error {
	return s.results.Clear(ctx, userID)
}

// grade проверяет бланк и собирает строку ведомости.
func (s *GradingService) grade(ctx context.Context, batch Batch, up Upload) (entity.GradedSheet, []byte) {
	sheet := entity.GradedSheet{
		FileName:  up.Name,
		Mode:      batch.Mode,
		Total:     batch.Key.Len(),
		CreatedAt: s.now(),
	}

	res, err := s.scorer.Process(ctx, entity.SheetRequest{
		ImageData: up.Data,
		Filename:  up.Name,
		Mode:      batch.Mode,
		Key:       batch.Key,
		DebugDir:  s.opts.DebugDir,
		Debug:     batch.Debug || s.opts.Debug,
	})
	if err != nil {
		log.Printf("ERROR processing %s: %v", up.Name, err)
		sheet.StudentID = entity.StudentIDFailed
		sheet.Error = err.Error()
		return sheet, nil
	}

	sheet.StudentID = res.StudentID
	sheet.Answers = res.Answers
	sheet.FailedColumns = res.FailedColumns
	sheet.RenditionName = res.RenditionName
	sheet.Score = res.Score()
	if batch.Mode == entity.ModeSingle {
		sheet.MultipleAnswers = res.MultipleAnswersCount()
	} else {
		sheet.Partial = res.HasPartial()
	}

	if st, ok := batch.Roster.Lookup(res.StudentID); ok {
		sheet.FirstName, sheet.LastName = st.FirstName, st.LastName
	} else {
		sheet.FirstName = entity.NameNotFound
	}
	return sheet, res.Rendition
}

// MarkDuplicates помечает повторные вхождения кода студента; первое вхождение не помечается.
func MarkDuplicates(sheets []entity.GradedSheet) {
	seen := make(map[string]string, len(sheets))
	for i := range sheets {
		s := &sheets[i]
		if s.Failed() || s.StudentID == entity.StudentIDUnreadable {
			continue
		}
		if first, ok := seen[s.StudentID]; ok {
			s.Duplicate = true
			log.Printf("Duplicate student ID detected: %s in files %s, %s", s.StudentID, first, s.FileName)
			continue
		}
		seen[s.StudentID] = s.FileName
	}
}

// OrderResults ставит в начало строки, требующие проверки, в исходном порядке;
// остальные сортируются по коду студента.
func OrderResults(sheets []entity.GradedSheet) []entity.GradedSheet {
	var review, ok []entity.GradedSheet
	for _, s := range sheets {
		if s.NeedsReview() {
			review = append(review, s)
		} else {
			ok = append(ok, s)
		}
	}
	sort.SliceStable(ok, func(i, j int) bool {
		return strings.ToLower(ok[i].StudentID) < strings.ToLower(ok[j].StudentID)
	})
	return append(review, ok...)
}
