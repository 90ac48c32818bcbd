package tooldata

// Coercion helpers for the raw payload maps. Records come back from the store
// as generic JSON, so numbers are float64 but older tool versions saved some
// fields as int or string. Anything unrecognizable simply doesn't populate.

func asFloat(v interface{}) (float64, bool) {
	switch value := v.(type) {
	case float64:
		return value, true
	case float32:
		return float64(value), true
	case int:
		return float64(value), true
	case int64:
		return float64(value), true
	}
	return 0, false
}

func asInt(v interface{}) (int, bool) {
	switch value := v.(type) {
	case int:
		return value, true
	case int64:
		return int(value), true
	case float64:
		return int(value), true
	}
	return 0, false
}

func asString(v interface{}) (string, bool) {
	if value, ok := v.(string); ok {
		return value, true
	}
	return "", false
}

func asBool(v interface{}) (bool, bool) {
	if value, ok := v.(bool); ok {
		return value, true
	}
	return false, false
}

func asStringSlice(v interface{}) ([]string, bool) {
	switch value := v.(type) {
	case []string:
		return value, true
	case []interface{}:
		out := make([]string, 0, len(value))
		for _, item := range value {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		if len(out) == 0 && len(value) > 0 {
			return nil, false
		}
		return out, true
	}
	return nil, false
}
