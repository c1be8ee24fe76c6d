package safe

import (
	"fmt"

	"gocv.io/x/gocv"
)

func ValidateMatForOperation(mat *Mat, operation string) error {
	if mat == nil {
		return fmt.Errorf("Mat is nil for operation: %s", operation)
	}
	if !mat.IsValid() {
		return fmt.Errorf("Mat %q is invalid for operation: %s", mat.Tag(), operation)
	}
	if mat.Empty() {
		return fmt.Errorf("Mat %q is empty for operation: %s", mat.Tag(), operation)
	}
	return nil
}

// ValidateChannels checks that mat has one of the accepted channel counts
func ValidateChannels(mat *Mat, operation string, accepted ...int) error {
	if err := ValidateMatForOperation(mat, operation); err != nil {
		return err
	}
	channels := mat.Channels()
	for _, a := range accepted {
		if channels == a {
			return nil
		}
	}
	return fmt.Errorf("%s does not support %d channels in Mat %q", operation, channels, mat.Tag())
}

// ValidateColorConversion checks src has the channel count code expects
func ValidateColorConversion(src *Mat, code gocv.ColorConversionCode) error {
	switch code {
	case gocv.ColorBGRToGray:
		return ValidateChannels(src, "CvtColor BGR to Gray", 3)
	case gocv.ColorBGRAToBGR:
		return ValidateChannels(src, "CvtColor BGRA to BGR", 4)
	}
	return ValidateMatForOperation(src, "CvtColor")
}

func ValidateDimensions(width, height int, operation string) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid dimensions %dx%d for operation: %s", width, height, operation)
	}
	if width > 32768 || height > 32768 {
		return fmt.Errorf("dimensions %dx%d exceed maximum size for operation: %s", width, height, operation)
	}
	return nil
}

// ValidateKernelSize requires a positive odd kernel
func ValidateKernelSize(size int, operation string) error {
	if size <= 0 || size%2 == 0 {
		return fmt.Errorf("kernel size %d must be positive and odd for operation: %s", size, operation)
	}
	return nil
}
