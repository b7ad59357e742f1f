// Package vision распознаёт фото бланка через OpenCV (gocv). Реализация собирается с тегом gocv;
// без него собирается заглушка, которая возвращает ErrUnavailable.
package vision

import (
	"errors"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"

	"omr-bot/internal/domain/entity"
)

// ErrUnavailable сборка без тега gocv.
var ErrUnavailable = errors.New("gocv build tag is not enabled")

// Renderer готовит сжатую веб-версию размеченного бланка.
// Байты всегда JPEG, хотя RenditionName оставляет расширение .png ради совместимости имён.
type Renderer interface {
	Render(img image.Image, caption string) ([]byte, error)
}

// RenditionName имя файла веб-версии: web_highlighted_{mode}_{file}.png
func RenditionName(mode entity.Mode, filename string) string {
	return fmt.Sprintf("web_highlighted_%s_%s.png", mode, filename)
}

// HighlightedName имя полноразмерной размеченной картинки.
func HighlightedName(mode entity.Mode, filename string) string {
	return fmt.Sprintf("highlighted_%s_%s.png", mode, filename)
}

// IDBlockDebugName выпрямленный блок кода студента.
func IDBlockDebugName(filename string) string {
	return fmt.Sprintf("DEBUG_%s_id_block_result.png", filename)
}

// ColumnDebugName выпрямленная колонка ответов (column с 1).
func ColumnDebugName(filename string, column int) string {
	return fmt.Sprintf("DEBUG_%s_col_%d_result.png", filename, column)
}

// BlocksDebugName кадр с контурами найденных блоков.
func BlocksDebugName(mode entity.Mode, filename string) string {
	return fmt.Sprintf("DEBUG_%s_%s_blocks_detected.png", mode, filename)
}

// caption подпись на веб-версии.
func caption(res *entity.SheetResult, total int) string {
	return fmt.Sprintf("ID %s  score %d/%d", res.StudentID, res.Score(), total)
}

// saveFile пишет артефакт; ошибки только логируются, проверку они не прерывают.
func saveFile(dir, name string, data []byte) bool {
	if dir == "" || len(data) == 0 {
		return false
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("Error creating output dir %s: %v", dir, err)
		return false
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		log.Printf("Error writing %s: %v", name, err)
		return false
	}
	return true
}
