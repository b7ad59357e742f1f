//go:build gocv
// +build gocv

package vision

import (
	"image"
	"image/color"
	"log"
	"os"
	"path/filepath"

	"gocv.io/x/gocv"

	"omr-bot/internal/omr"
)

const highlightThickness = 3

// drawCell обводит ячейку на выпрямленной области.
func drawCell(img *gocv.Mat, c omr.Cell, clr color.RGBA) {
	gocv.Rectangle(img, c.Rect(), clr, highlightThickness)
}

// drawQuad обводит найденный блок на отладочном кадре.
func drawQuad(img *gocv.Mat, q omr.Quad, clr color.RGBA) {
	pts := gocv.NewPointsVectorFromPoints([][]image.Point{q[:]})
	defer pts.Close()
	gocv.DrawContours(img, pts, 0, clr, 2)
}

// writeDebug сохраняет отладочную картинку; ошибки только логируются.
func writeDebug(dir, name string, img gocv.Mat) {
	if dir == "" || img.Empty() {
		return
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("Error creating debug dir %s: %v", dir, err)
		return
	}
	if ok := gocv.IMWrite(filepath.Join(dir, name), img); !ok {
		log.Printf("Error writing debug image %s", name)
	}
}
