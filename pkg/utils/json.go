package utils

import (
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// PrettyJSON indenta um valor ou um JSON cru ([]byte)
func PrettyJSON(in any) (string, error) {
	if raw, ok := in.([]byte); ok {
		var value any
		if err := json.Unmarshal(raw, &value); err != nil {
			return "", err
		}
		in = value
	}

	pretty, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return "", err
	}
	return string(pretty), nil
}
