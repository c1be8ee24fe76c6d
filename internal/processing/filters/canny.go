package filters

import (
	"context"
	"fmt"

	"cubescan/internal/models"
	"cubescan/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// CannyDetector produces a binary edge map from a grayscale image
type CannyDetector struct{}

func NewCannyDetector() *CannyDetector {
	return &CannyDetector{}
}

func (c *CannyDetector) Name() string {
	return "canny_detector"
}

func (c *CannyDetector) ShouldExecute(params map[string]interface{}) bool {
	return true
}

func (c *CannyDetector) Apply(ctx context.Context, input *safe.Mat, params map[string]interface{}) (*safe.Mat, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if err := safe.ValidateChannels(input, c.Name(), 1); err != nil {
		return nil, err
	}

	low := intParam(params, models.ParamCannyLow)
	high := intParam(params, models.ParamCannyHigh)
	if low < 0 || high <= low {
		return nil, fmt.Errorf("invalid hysteresis thresholds %d/%d", low, high)
	}

	dst, err := safe.NewMatWithTag(input.Rows(), input.Cols(), gocv.MatTypeCV8UC1, "edges")
	if err != nil {
		return nil, fmt.Errorf("failed to create destination Mat: %w", err)
	}

	srcMat := input.GetMat()
	dstMat := dst.GetMat()
	gocv.Canny(srcMat, &dstMat, float32(low), float32(high))

	return dst, nil
}
