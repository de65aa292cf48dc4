package request

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vkoval/automarket/internal/domain"
)

const maxRequestBodySize = 1 << 20 // 1MB

// DefaultSession is used when the client sends no session header.
const DefaultSession = "default"

// DecodeJSON decodes JSON request body into the provided struct with size limit
func DecodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()

	limitedReader := io.LimitReader(r.Body, maxRequestBodySize)

	if err := json.NewDecoder(limitedReader).Decode(v); err != nil {
		return fmt.Errorf("failed to decode JSON: %w", err)
	}
	return nil
}

// GetStringParam extracts a URL parameter
func GetStringParam(r *http.Request, key string) (string, error) {
	param := chi.URLParam(r, key)
	if param == "" {
		return "", fmt.Errorf("missing parameter: %s", key)
	}
	return param, nil
}

// GetSession returns the caller's session id, falling back to a shared
// default when the header is absent.
func GetSession(r *http.Request) string {
	if session := r.Header.Get("X-Session-ID"); session != "" {
		return session
	}
	return DefaultSession
}

// ParseSearchCriteria builds filter criteria from query parameters.
// Unparseable numeric values read as absent; criteria are never rejected
// here, a nonsense range simply matches nothing downstream.
func ParseSearchCriteria(r *http.Request) domain.SearchCriteria {
	q := r.URL.Query()

	criteria := domain.SearchCriteria{
		Query:  q.Get("q"),
		SortBy: domain.SortKey(q.Get("sort")),
	}

	if v := q.Get("category"); v != "" {
		category := domain.Category(v)
		if category.Valid() {
			criteria.Category = &category
		}
	}

	if v := q.Get("condition"); v != "" {
		condition := domain.Condition(v)
		if condition.Valid() {
			criteria.Condition = &condition
		}
	}

	if v := q.Get("min_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			criteria.MinPrice = &f
		}
	}

	if v := q.Get("max_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			criteria.MaxPrice = &f
		}
	}

	if v := q.Get("max_mileage"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			criteria.MaxMileage = &n
		}
	}

	if v := q.Get("in_stock"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			criteria.InStockOnly = b
		}
	}

	return criteria
}
