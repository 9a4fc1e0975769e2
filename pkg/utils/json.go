package utils

import "encoding/json"

// ParseJSONSafe decodes text into generic Go values (maps, slices,
// float64, string, bool). It returns nil when text is not valid JSON.
func ParseJSONSafe(text string) any {
	var out any
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil
	}
	return out
}
