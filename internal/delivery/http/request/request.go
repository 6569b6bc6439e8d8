package request

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

const maxRequestBodySize = 1 << 20 // 1MB

// DecodeJSON decodes JSON request body into the provided struct with size limit
func DecodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()

	limitedReader := io.LimitReader(r.Body, maxRequestBodySize)

	if err := json.NewDecoder(limitedReader).Decode(v); err != nil {
		return fmt.Errorf("failed to decode JSON: %w", err)
	}
	return nil
}

// GetInt64Param extracts a numeric id parameter from the URL
func GetInt64Param(r *http.Request, key string) (int64, error) {
	param := chi.URLParam(r, key)
	if param == "" {
		return 0, fmt.Errorf("missing parameter: %s", key)
	}

	id, err := strconv.ParseInt(param, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id: %s", param)
	}

	return id, nil
}

// GetStringParam extracts a string parameter from the URL
func GetStringParam(r *http.Request, key string) (string, error) {
	param := chi.URLParam(r, key)
	if param == "" {
		return "", fmt.Errorf("missing parameter: %s", key)
	}
	return param, nil
}

// GetStringQuery extracts a string query parameter with a default value
func GetStringQuery(r *http.Request, key, defaultValue string) string {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}
	return value
}
