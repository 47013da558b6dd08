package dto

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/cesargomez89/meting-gateway/internal/constants"
	"github.com/cesargomez89/meting-gateway/internal/domain"
)

// ParseSearchOptions reads limit, page and type from the query string.
// Absent parameters take defaultLimit, page 1 and type 0.
func ParseSearchOptions(query url.Values, defaultLimit uint) (domain.SearchOptions, ValidationErrors) {
	opts := domain.SearchOptions{
		Limit: defaultLimit,
		Page:  constants.DefaultSearchPage,
		Type:  constants.DefaultSearchType,
	}

	var errs ValidationErrors
	parseUint(query, "limit", 1, &opts.Limit, &errs)
	parseUint(query, "page", 1, &opts.Page, &errs)
	parseUint(query, "type", 0, &opts.Type, &errs)
	return opts, errs
}

// parseUint stores the named parameter into dst when present and valid.
func parseUint(query url.Values, field string, minimum uint, dst *uint, errs *ValidationErrors) {
	raw := query.Get(field)
	if raw == "" {
		return
	}
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		errs.add(field, "must be a non-negative integer")
		return
	}
	if uint(n) < minimum {
		errs.add(field, fmt.Sprintf("must be at least %d", minimum))
		return
	}
	*dst = uint(n)
}

// ParseRetry validates a playlist retry budget.
func ParseRetry(raw string) (uint8, ValidationErrors) {
	var errs ValidationErrors
	if raw == "" {
		errs.add("value", "is required")
		return 0, errs
	}
	n, err := strconv.ParseUint(raw, 10, 8)
	if err != nil {
		errs.add("value", fmt.Sprintf("must be an integer between 0 and %d", constants.MaxPlaylistRetry))
		return 0, errs
	}
	return uint8(n), nil
}
