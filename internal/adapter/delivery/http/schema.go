package http

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shortify/shortify/internal/entity"
	"github.com/shortify/shortify/internal/usecase"
)

const statusError = "error"

// shortenRequest represents the structure for a request to shorten a URL.
type shortenRequest struct {
	URL        string     `json:"url" validate:"required,max=2048,url"`
	CustomCode string     `json:"custom_code,omitempty" validate:"omitempty,min=3,max=20"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}

// urlResponse represents the structure for a response containing shortened URL information.
type urlResponse struct {
	ID        int64      `json:"id"`
	ShortCode string     `json:"short_code"`
	TargetURL string     `json:"target_url"`
	ShortURL  string     `json:"short_url"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Clicks    int64      `json:"clicks"`
}

// toURLResponse converts an entity.URL to a urlResponse.
func toURLResponse(url *entity.URL, baseURL string) urlResponse {
	return urlResponse{
		ID:        url.ID,
		ShortCode: url.ShortCode,
		TargetURL: url.TargetURL,
		ShortURL:  fmt.Sprintf("%s/%s", baseURL, url.ShortCode),
		CreatedAt: url.CreatedAt,
		ExpiresAt: url.ExpiresAt,
	}
}

// analyticsSummary represents the aggregate click statistics for a URL.
type analyticsSummary struct {
	TotalClicks    int64      `json:"total_clicks"`
	UniqueVisitors int64      `json:"unique_visitors"`
	FirstClick     *time.Time `json:"first_click"`
	LastClick      *time.Time `json:"last_click"`
}

// dayClicks is one entry of the per-day click histogram.
type dayClicks struct {
	Date   string `json:"date"`
	Clicks int64  `json:"clicks"`
}

// analyticsResponse represents the structure for a response containing URL analytics.
type analyticsResponse struct {
	ShortCode   string           `json:"short_code"`
	TargetURL   string           `json:"target_url"`
	CreatedAt   time.Time        `json:"created_at"`
	Summary     analyticsSummary `json:"summary"`
	ClicksByDay []dayClicks      `json:"clicks_by_day"`
}

// toAnalyticsResponse converts a usecase.Analytics to an analyticsResponse.
func toAnalyticsResponse(analytics *usecase.Analytics) analyticsResponse {
	byDay := make([]dayClicks, 0, len(analytics.Stats.ByDay))
	for _, d := range analytics.Stats.ByDay {
		byDay = append(byDay, dayClicks{
			Date:   d.Date.Format(time.DateOnly),
			Clicks: d.Clicks,
		})
	}

	return analyticsResponse{
		ShortCode: analytics.URL.ShortCode,
		TargetURL: analytics.URL.TargetURL,
		CreatedAt: analytics.URL.CreatedAt,
		Summary: analyticsSummary{
			TotalClicks:    analytics.Stats.TotalClicks,
			UniqueVisitors: analytics.Stats.UniqueVisitors,
			FirstClick:     analytics.Stats.FirstClick,
			LastClick:      analytics.Stats.LastClick,
		},
		ClicksByDay: byDay,
	}
}

// validationError represents an individual validation error.
type validationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// errorResponse represents a structured error response.
type errorResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Errors  []validationError `json:"errors,omitempty"`
}

// Predefined error responses for common scenarios.
var (
	emptyRequestBodyResponse = errorResponse{
		Status:  statusError,
		Message: "empty request body",
	}

	invalidRequestBodyResponse = errorResponse{
		Status:  statusError,
		Message: "invalid request body",
	}

	expiryNotFutureResponse = errorResponse{
		Status:  statusError,
		Message: "expiration date must be in the future",
	}

	unknownPeriodResponse = errorResponse{
		Status:  statusError,
		Message: "unknown period, expected one of: 1d, 7d, 30d, all",
	}

	serverErrorResponse = errorResponse{
		Status:  statusError,
		Message: "server error occurred",
	}
)

// urlNotFoundResponse constructs the 404 body; the message names the
// requested code.
func urlNotFoundResponse(shortCode string) errorResponse {
	return errorResponse{
		Status:  statusError,
		Message: fmt.Sprintf("short code %q not found", shortCode),
	}
}

// urlExpiredResponse constructs the 410 body carrying the expiry timestamp.
func urlExpiredResponse(expiresAt time.Time) errorResponse {
	return errorResponse{
		Status:  statusError,
		Message: fmt.Sprintf("this short url expired on %s", expiresAt.Format(time.RFC3339)),
	}
}

func badRequestResponse(message string) errorResponse {
	return errorResponse{
		Status:  statusError,
		Message: message,
	}
}

// messageForTag returns a user-friendly message based on the validation tag.
func messageForTag(tag string) string {
	switch tag {
	case "required":
		return "this field is required"
	case "url":
		return "invalid url"
	case "min":
		return "value is too short"
	case "max":
		return "value is too long"
	default:
		return "invalid value"
	}
}

// getValidationErrors processes validation errors and returns a list of validationError.
func getValidationErrors(err error) []validationError {
	var validationErrs []validationError

	errs, ok := err.(validator.ValidationErrors)
	if ok {
		for _, e := range errs {
			validationErrs = append(validationErrs, validationError{
				Field:   e.Field(),
				Message: messageForTag(e.Tag()),
			})
		}
	}

	return validationErrs
}

// validationErrorResponse constructs an errorResponse for validation errors.
func validationErrorResponse(err error) errorResponse {
	return errorResponse{
		Status:  statusError,
		Message: "validation error",
		Errors:  getValidationErrors(err),
	}
}
