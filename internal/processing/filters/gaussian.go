package filters

import (
	"context"
	"fmt"
	"image"

	"cubescan/internal/models"
	"cubescan/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// GaussianFilter smooths sensor noise before edge detection. A kernel of 1
// disables it.
type GaussianFilter struct{}

func NewGaussianFilter() *GaussianFilter {
	return &GaussianFilter{}
}

func (g *GaussianFilter) Name() string {
	return "gaussian_filter"
}

func (g *GaussianFilter) ShouldExecute(params map[string]interface{}) bool {
	return intParam(params, models.ParamBlurKernel) > 1
}

func (g *GaussianFilter) Apply(ctx context.Context, input *safe.Mat, params map[string]interface{}) (*safe.Mat, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	kernelSize := intParam(params, models.ParamBlurKernel)
	if err := safe.ValidateKernelSize(kernelSize, g.Name()); err != nil {
		return nil, err
	}
	if err := safe.ValidateMatForOperation(input, g.Name()); err != nil {
		return nil, err
	}

	dst, err := safe.NewMatWithTag(input.Rows(), input.Cols(), input.Type(), "blurred")
	if err != nil {
		return nil, fmt.Errorf("failed to create destination Mat: %w", err)
	}

	srcMat := input.GetMat()
	dstMat := dst.GetMat()
	gocv.GaussianBlur(srcMat, &dstMat, image.Point{X: kernelSize, Y: kernelSize}, 0, 0, gocv.BorderDefault)

	return dst, nil
}
