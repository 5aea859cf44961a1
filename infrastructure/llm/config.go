package llm

// config.go provides extraction and validation helpers for the generic
// option maps passed through ports.CompletionClient.

// ExtractOptionalInt extracts an int from an options map, returning
// defaultVal when the key is absent, mistyped, or fails validation.
func ExtractOptionalInt(opts map[string]any, key string, defaultVal int, validator func(int) bool) int {
	if opts == nil {
		return defaultVal
	}
	val, ok := opts[key]
	if !ok {
		return defaultVal
	}
	intVal, ok := val.(int)
	if !ok {
		return defaultVal
	}
	if validator != nil && !validator(intVal) {
		return defaultVal
	}
	return intVal
}

// ExtractOptionalString extracts a string from an options map,
// returning defaultVal when the key is absent, mistyped, or fails
// validation.
func ExtractOptionalString(opts map[string]any, key string, defaultVal string, validator func(string) bool) string {
	if opts == nil {
		return defaultVal
	}
	val, ok := opts[key]
	if !ok {
		return defaultVal
	}
	strVal, ok := val.(string)
	if !ok {
		return defaultVal
	}
	if validator != nil && !validator(strVal) {
		return defaultVal
	}
	return strVal
}

// ExtractOptionalFloat64 extracts a float64 from an options map,
// returning defaultVal when the key is absent, mistyped, or fails
// validation.
func ExtractOptionalFloat64(opts map[string]any, key string, defaultVal float64, validator func(float64) bool) float64 {
	if opts == nil {
		return defaultVal
	}
	val, ok := opts[key]
	if !ok {
		return defaultVal
	}
	floatVal, ok := val.(float64)
	if !ok {
		return defaultVal
	}
	if validator != nil && !validator(floatVal) {
		return defaultVal
	}
	return floatVal
}

// IsPositiveInt reports whether val is greater than zero.
func IsPositiveInt(val int) bool { return val > 0 }

// IsNonEmptyString reports whether val is non-empty.
func IsNonEmptyString(val string) bool { return val != "" }

// IsValidTemperature reports whether val is a valid temperature
// (0.0 to 1.0).
func IsValidTemperature(val float64) bool { return val >= 0.0 && val <= 1.0 }

// IsValidTopP reports whether val is a valid top_p value (0.0 to 1.0).
func IsValidTopP(val float64) bool { return val >= 0.0 && val <= 1.0 }
