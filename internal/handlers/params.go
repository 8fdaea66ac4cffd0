package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/models"
)

const dateLayout = "2006-01-02"

// parseCriteria builds filter criteria from the request's query string.
// Filter params: from, to (YYYY-MM-DD), status, category, region (each
// repeatable or comma-separated). A well-formed but inverted date range is
// legal and simply filters to nothing; malformed values are rejected.
func parseCriteria(r *http.Request) (models.FilterCriteria, error) {
	var c models.FilterCriteria

	if from := r.URL.Query().Get("from"); from != "" {
		t, err := time.Parse(dateLayout, from)
		if err != nil {
			return c, errors.ValidationWrap(err, "invalid 'from' date, expected YYYY-MM-DD")
		}
		c.From = t
	}
	if to := r.URL.Query().Get("to"); to != "" {
		t, err := time.Parse(dateLayout, to)
		if err != nil {
			return c, errors.ValidationWrap(err, "invalid 'to' date, expected YYYY-MM-DD")
		}
		c.To = t
	}

	for _, raw := range multiParam(r, "status") {
		status, ok := models.ParseStatus(raw)
		if !ok {
			return c, errors.Validation("unknown status " + strconv.Quote(raw))
		}
		c.Statuses = append(c.Statuses, status)
	}
	c.Categories = multiParam(r, "category")
	c.Regions = multiParam(r, "region")

	return c, nil
}

// multiParam gathers a repeatable query parameter, additionally splitting
// each occurrence on commas.
func multiParam(r *http.Request, name string) []string {
	var values []string
	for _, raw := range r.URL.Query()[name] {
		for _, part := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				values = append(values, trimmed)
			}
		}
	}
	return values
}

// intParam reads a bounded positive integer parameter, falling back to the
// default on absence or garbage.
func intParam(r *http.Request, name string, def, max int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	if n > max {
		return max
	}
	return n
}
