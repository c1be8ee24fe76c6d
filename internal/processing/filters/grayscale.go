package filters

import (
	"context"
	"fmt"

	"cubescan/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// GrayscaleConverter turns a BGR or BGRA frame into a single channel image
type GrayscaleConverter struct{}

func NewGrayscaleConverter() *GrayscaleConverter {
	return &GrayscaleConverter{}
}

func (g *GrayscaleConverter) Name() string {
	return "grayscale_converter"
}

func (g *GrayscaleConverter) ShouldExecute(params map[string]interface{}) bool {
	return true
}

func (g *GrayscaleConverter) Apply(ctx context.Context, input *safe.Mat, params map[string]interface{}) (*safe.Mat, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if err := safe.ValidateMatForOperation(input, g.Name()); err != nil {
		return nil, err
	}

	switch input.Channels() {
	case 1:
		return input.Clone()
	case 4:
		bgr, err := g.convert(input, gocv.ColorBGRAToBGR, gocv.MatTypeCV8UC3, "bgr")
		if err != nil {
			return nil, err
		}
		defer bgr.Close()
		return g.convert(bgr, gocv.ColorBGRToGray, gocv.MatTypeCV8UC1, "gray")
	default:
		return g.convert(input, gocv.ColorBGRToGray, gocv.MatTypeCV8UC1, "gray")
	}
}

func (g *GrayscaleConverter) convert(src *safe.Mat, code gocv.ColorConversionCode, dstType gocv.MatType, tag string) (*safe.Mat, error) {
	if err := safe.ValidateColorConversion(src, code); err != nil {
		return nil, err
	}

	dst, err := safe.NewMatWithTag(src.Rows(), src.Cols(), dstType, tag)
	if err != nil {
		return nil, fmt.Errorf("destination Mat creation failed: %w", err)
	}

	dstMat := dst.GetMat()
	gocv.CvtColor(src.GetMat(), &dstMat, code)
	return dst, nil
}
