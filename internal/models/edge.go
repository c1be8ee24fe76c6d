package models

// Edge preprocessing parameter names shared by configuration and the
// filter chain
const (
	ParamBlurKernel   = "blur_kernel"
	ParamCannyLow     = "canny_low"
	ParamCannyHigh    = "canny_high"
	ParamDilateKernel = "dilate_kernel"
)

// EdgeDefaults holds the values used for live frames
var EdgeDefaults = map[string]int{
	ParamBlurKernel:   3,
	ParamCannyLow:     30,
	ParamCannyHigh:    60,
	ParamDilateKernel: 3,
}

// EdgeParameters converts integer settings into the map form processing
// steps consume
func EdgeParameters(values map[string]int) map[string]interface{} {
	params := make(map[string]interface{}, len(values))
	for k, v := range values {
		params[k] = v
	}
	return params
}
