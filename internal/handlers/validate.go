package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"deckd/internal/models"
)

// Validation limits for name-like fields.
const (
	maxNameLen = 300
	maxDescLen = 1_000
)

// decodeBody decodes a request body into a generic JSON object so field
// presence and types can be checked individually. A JSON null is a
// present field with a nil value, distinct from an absent field.
// Unknown fields are ignored.
func decodeBody(r *http.Request) (map[string]any, error) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("body must be a JSON object")
	}
	if body == nil {
		return nil, fmt.Errorf("body must be a JSON object")
	}
	return body, nil
}

// requiredString extracts a mandatory non-empty string field.
func requiredString(body map[string]any, field string) (string, error) {
	raw, ok := body[field]
	if !ok {
		return "", fmt.Errorf("%s is required", field)
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string", field)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%s is required", field)
	}
	if utf8.RuneCountInString(s) > maxNameLen {
		return "", fmt.Errorf("%s is too long (max %d characters)", field, maxNameLen)
	}
	return s, nil
}

// optionalString extracts an optional string field. A JSON null counts
// as present with a nil value.
func optionalString(body map[string]any, field string, maxLen int) (*string, bool, error) {
	raw, ok := body[field]
	if !ok {
		return nil, false, nil
	}
	if raw == nil {
		return nil, true, nil
	}
	s, ok := raw.(string)
	if !ok {
		return nil, false, fmt.Errorf("%s must be a string", field)
	}
	if utf8.RuneCountInString(s) > maxLen {
		return nil, false, fmt.Errorf("%s is too long (max %d characters)", field, maxLen)
	}
	return &s, true, nil
}

// optionalBool extracts an optional boolean field.
func optionalBool(body map[string]any, field string) (*bool, error) {
	raw, ok := body[field]
	if !ok || raw == nil {
		return nil, nil
	}
	b, ok := raw.(bool)
	if !ok {
		return nil, fmt.Errorf("%s must be a boolean", field)
	}
	return &b, nil
}

// optionalStringSlice extracts an optional array-of-strings field.
func optionalStringSlice(body map[string]any, field string) ([]string, bool, error) {
	raw, ok := body[field]
	if !ok || raw == nil {
		return nil, false, nil
	}
	arr, ok := raw.([]any)
	if !ok {
		return nil, false, fmt.Errorf("%s must be an array of strings", field)
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		s, ok := item.(string)
		if !ok {
			return nil, false, fmt.Errorf("%s must be an array of strings", field)
		}
		out = append(out, s)
	}
	return out, true, nil
}

// optionalObject extracts an optional JSON-object field.
func optionalObject(body map[string]any, field string) (models.JSONMap, bool, error) {
	raw, ok := body[field]
	if !ok || raw == nil {
		return nil, false, nil
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, false, fmt.Errorf("%s must be an object", field)
	}
	return models.JSONMap(obj), true, nil
}
