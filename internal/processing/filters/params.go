package filters

import "cubescan/internal/models"

// DefaultParameters returns the edge chain parameters used for live frames
func DefaultParameters() map[string]interface{} {
	return models.EdgeParameters(models.EdgeDefaults)
}

func intParam(params map[string]interface{}, name string) int {
	switch v := params[name].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return models.EdgeDefaults[name]
}
