package client

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// listKeys are envelope fields that may hold the array of a list response.
var listKeys = []string{"data", "items", "results"}

// Decode converts a decoded JSON value into out. Numbers and strings are
// converted weakly, so "12" fills an int and 12 fills a string.
func Decode(raw any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
		TagName:          "mapstructure",
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
	}
	return nil
}

// decodeList accepts either a bare array or an object wrapping one under
// one of keys or the common envelope fields. A nil body is an empty list.
func decodeList(raw any, out any, keys ...string) error {
	switch v := raw.(type) {
	case nil:
		return nil
	case []any:
		return Decode(v, out)
	case map[string]any:
		for _, k := range append(keys, listKeys...) {
			if arr, ok := v[k].([]any); ok {
				return Decode(arr, out)
			}
		}
		return fmt.Errorf("%w: no list in object", ErrUnexpectedResponse)
	default:
		return fmt.Errorf("%w: %T", ErrUnexpectedResponse, raw)
	}
}

// decodeObject accepts an object, optionally wrapped under "data".
func decodeObject(raw any, out any) error {
	m, ok := raw.(map[string]any)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnexpectedResponse, raw)
	}
	if inner, ok := m["data"].(map[string]any); ok {
		m = inner
	}
	return Decode(m, out)
}
