package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/shortify/shortify/internal/entity"
	"github.com/shortify/shortify/internal/usecase"
)

func handlePing(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "pong")
}

type urlUseCase interface {
	ShortenURL(ctx context.Context, rawURL, customCode string, expiresAt *time.Time) (*entity.URL, error)
	ResolveShortCode(ctx context.Context, shortCode, ipAddress string) (*usecase.Resolution, error)
	GetAnalytics(ctx context.Context, shortCode string, period usecase.Period) (*usecase.Analytics, error)
}

type urlHandler struct {
	useCase  urlUseCase
	validate *validator.Validate
	baseURL  string
}

func newURLHandler(useCase urlUseCase, validate *validator.Validate, baseURL string) *urlHandler {
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &urlHandler{
		useCase:  useCase,
		validate: validate,
		baseURL:  baseURL,
	}
}

// clientIP strips the port RemoteAddr usually carries. With the RealIP
// middleware in front, the address already reflects X-Forwarded-For.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func (h *urlHandler) shortenURL(w http.ResponseWriter, r *http.Request) {
	var req shortenRequest

	if err := render.DecodeJSON(r.Body, &req); err != nil {
		if errors.Is(err, io.EOF) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, emptyRequestBodyResponse)
			return
		}

		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, invalidRequestBodyResponse)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, validationErrorResponse(err))
		return
	}

	if req.ExpiresAt != nil && !req.ExpiresAt.After(time.Now()) {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, expiryNotFutureResponse)
		return
	}

	url, err := h.useCase.ShortenURL(r.Context(), req.URL, req.CustomCode, req.ExpiresAt)
	if err != nil {
		h.renderShortenError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toURLResponse(url, h.baseURL))
}

func (h *urlHandler) renderShortenError(w http.ResponseWriter, r *http.Request, err error) {
	var invalidCodeErr *entity.InvalidCodeError
	var genErr *entity.CodeGenerationError

	switch {
	case errors.Is(err, entity.ErrInvalidURL):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, badRequestResponse("invalid url"))
	case errors.Is(err, entity.ErrURLNotReachable):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, badRequestResponse("url is not reachable"))
	case errors.As(err, &invalidCodeErr):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, badRequestResponse(invalidCodeErr.Error()))
	case errors.Is(err, entity.ErrShortCodeExists):
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, badRequestResponse("short code already in use"))
	case errors.As(err, &genErr):
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, badRequestResponse(genErr.Error()))
	default:
		httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))

		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, serverErrorResponse)
	}
}

func (h *urlHandler) redirect(w http.ResponseWriter, r *http.Request) {
	shortCode := chi.URLParam(r, "shortCode")

	res, err := h.useCase.ResolveShortCode(r.Context(), shortCode, clientIP(r))
	if err != nil {
		var expiredErr *entity.URLExpiredError

		switch {
		case errors.Is(err, entity.ErrURLNotFound):
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, urlNotFoundResponse(shortCode))
		case errors.As(err, &expiredErr):
			render.Status(r, http.StatusGone)
			render.JSON(w, r, urlExpiredResponse(expiredErr.ExpiresAt))
		default:
			httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, serverErrorResponse)
		}

		return
	}

	// The cache-hit flag and durations are the signal separating fast-path
	// from degraded operation.
	httplog.LogEntrySetField(r.Context(), "cache_hit", slog.BoolValue(res.CacheHit))
	httplog.LogEntrySetField(r.Context(), "cache_degraded", slog.BoolValue(res.Degraded))
	httplog.LogEntrySetField(r.Context(), "db_query_duration", slog.DurationValue(res.DBDuration))
	httplog.LogEntrySetField(r.Context(), "resolve_duration", slog.DurationValue(res.Duration))

	http.Redirect(w, r, res.TargetURL, http.StatusTemporaryRedirect)
}

func (h *urlHandler) getAnalytics(w http.ResponseWriter, r *http.Request) {
	shortCode := chi.URLParam(r, "shortCode")

	period, ok := usecase.ParsePeriod(r.URL.Query().Get("period"))
	if !ok {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, unknownPeriodResponse)
		return
	}

	analytics, err := h.useCase.GetAnalytics(r.Context(), shortCode, period)
	if err != nil {
		if errors.Is(err, entity.ErrURLNotFound) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, urlNotFoundResponse(shortCode))
			return
		}

		httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))

		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, serverErrorResponse)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toAnalyticsResponse(analytics))
}
