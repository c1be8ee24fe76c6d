package filters

import (
	"context"
	"fmt"
	"image"

	"cubescan/internal/models"
	"cubescan/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// DilateFilter closes small gaps in sticker outlines so each one yields a
// single closed contour. A kernel of 1 disables it.
type DilateFilter struct{}

func NewDilateFilter() *DilateFilter {
	return &DilateFilter{}
}

func (d *DilateFilter) Name() string {
	return "dilate_filter"
}

func (d *DilateFilter) ShouldExecute(params map[string]interface{}) bool {
	return intParam(params, models.ParamDilateKernel) > 1
}

func (d *DilateFilter) Apply(ctx context.Context, input *safe.Mat, params map[string]interface{}) (*safe.Mat, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	kernelSize := intParam(params, models.ParamDilateKernel)
	if err := safe.ValidateKernelSize(kernelSize, d.Name()); err != nil {
		return nil, err
	}
	if err := safe.ValidateMatForOperation(input, d.Name()); err != nil {
		return nil, err
	}

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Point{X: kernelSize, Y: kernelSize})
	defer kernel.Close()

	dst, err := safe.NewMatWithTag(input.Rows(), input.Cols(), input.Type(), "dilated")
	if err != nil {
		return nil, fmt.Errorf("failed to create destination Mat: %w", err)
	}

	srcMat := input.GetMat()
	dstMat := dst.GetMat()
	gocv.Dilate(srcMat, &dstMat, kernel)

	return dst, nil
}
