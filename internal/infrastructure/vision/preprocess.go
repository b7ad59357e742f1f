//go:build gocv
// +build gocv

package vision

import (
	"image"

	"gocv.io/x/gocv"

	"omr-bot/internal/omr"
)

// preprocess декодирует кадр, ограничивает его размер и строит бинарную маску, где отметки и линии белые.
func (s *Scorer) preprocess(imageData []byte) (gocv.Mat, gocv.Mat, error) {
	mat, err := decodeToMat(imageData)
	if err != nil {
		return mat, gocv.NewMat(), err
	}

	// Большие фото уменьшаем: порог и эрозия рассчитаны на кадр не больше MaxDimension.
	if longest := maxInt(mat.Cols(), mat.Rows()); longest > s.cfg.MaxDimension {
		scale := float64(s.cfg.MaxDimension) / float64(longest)
		newW := int(float64(mat.Cols()) * scale)
		newH := int(float64(mat.Rows()) * scale)
		resized := gocv.NewMat()
		gocv.Resize(mat, &resized, image.Pt(newW, newH), 0, 0, gocv.InterpolationArea)
		mat.Close()
		mat = resized
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)

	blur := gocv.NewMat()
	defer blur.Close()
	k := s.cfg.BlurKernel
	gocv.GaussianBlur(gray, &blur, image.Pt(k, k), 0, 0, gocv.BorderDefault)

	mask := gocv.NewMat()
	gocv.AdaptiveThreshold(blur, &mask, 255, gocv.AdaptiveThresholdGaussian, gocv.ThresholdBinaryInv,
		s.cfg.ThresholdBlockSize, s.cfg.ThresholdC)

	return mat, mask, nil
}

// decodeToMat превращает байты изображения в gocv.Mat.
func decodeToMat(imageData []byte) (gocv.Mat, error) {
	if len(imageData) == 0 {
		return gocv.NewMat(), omr.ErrDecode
	}
	mat, err := gocv.IMDecode(imageData, gocv.IMReadColor)
	if err == nil && !mat.Empty() {
		return mat, nil
	}
	if !mat.Empty() {
		mat.Close()
	}
	return gocv.NewMat(), omr.ErrDecode
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
