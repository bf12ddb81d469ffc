package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gavv/httpexpect/v2"
	"github.com/go-chi/httplog/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/shortify/shortify/internal/entity"
	"github.com/shortify/shortify/internal/usecase"

	httpMock "github.com/shortify/shortify/mocks/http"
)

const testBaseURL = "http://sho.rt"

type HandlersTestSuite struct {
	suite.Suite
	logger         *httplog.Logger
	urlUseCaseMock *httpMock.MockUrlUseCase
	server         *httptest.Server
	e              *httpexpect.Expect
}

func (suite *HandlersTestSuite) SetupSuite() {
	suite.logger = httplog.NewLogger("", httplog.Options{Writer: io.Discard})
}

func (suite *HandlersTestSuite) SetupSubTest() {
	suite.urlUseCaseMock = httpMock.NewMockUrlUseCase(suite.T())

	router := NewRouter(suite.logger, suite.urlUseCaseMock, testBaseURL)
	suite.server = httptest.NewServer(router)
	suite.T().Cleanup(func() {
		suite.server.Close()
	})

	// Redirects must be observed, not followed.
	suite.e = httpexpect.WithConfig(httpexpect.Config{
		BaseURL:  suite.server.URL,
		Reporter: httpexpect.NewAssertReporter(suite.T()),
		Client: &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	})
}

func (suite *HandlersTestSuite) TearDownSubTest() {
	suite.urlUseCaseMock.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestPing() {
	const path = "/ping"

	suite.Run("success", func() {
		suite.e.GET(path).
			Expect().
			Status(http.StatusOK).
			Text().IsEqual("pong")
	})
}

func (suite *HandlersTestSuite) TestShortenURL() {
	const path = "/shorten"

	suite.Run("empty request body", func() {
		resp := suite.e.POST(path).
			Expect().
			Status(http.StatusBadRequest).
			JSON().Object()

		resp.HasValue("status", "error")
		resp.ContainsKey("message")
	})

	suite.Run("invalid request body", func() {
		resp := suite.e.POST(path).
			WithJSON("invalid body").
			Expect().
			Status(http.StatusBadRequest).
			JSON().Object()

		resp.HasValue("status", "error")
		resp.ContainsKey("message")
	})

	suite.Run("validation error", func() {
		resp := suite.e.POST(path).
			WithJSON(map[string]string{"url": "invalid url"}).
			Expect().
			Status(http.StatusBadRequest).
			JSON().Object()

		resp.HasValue("status", "error")
		resp.ContainsKey("message")
		resp.Value("errors").Array().Value(0).Object().
			HasValue("field", "url").
			ContainsKey("message")
	})

	suite.Run("expiry in the past", func() {
		resp := suite.e.POST(path).
			WithJSON(map[string]any{
				"url":        "https://example.com",
				"expires_at": time.Now().Add(-time.Hour).Format(time.RFC3339),
			}).
			Expect().
			Status(http.StatusBadRequest).
			JSON().Object()

		resp.HasValue("status", "error")
		resp.Value("message").String().Contains("future")
	})

	suite.Run("invalid custom code", func() {
		suite.urlUseCaseMock.
			On("ShortenURL", mock.Anything, "https://example.com", "-abc", (*time.Time)(nil)).
			Once().
			Return(nil, &entity.InvalidCodeError{Code: "-abc", Reason: "leading hyphen"})

		resp := suite.e.POST(path).
			WithJSON(map[string]string{"url": "https://example.com", "custom_code": "-abc"}).
			Expect().
			Status(http.StatusBadRequest).
			JSON().Object()

		resp.HasValue("status", "error")
		resp.Value("message").String().Contains("-abc")
	})

	suite.Run("short code conflict", func() {
		suite.urlUseCaseMock.
			On("ShortenURL", mock.Anything, "https://example.com", "duplicate", (*time.Time)(nil)).
			Once().
			Return(nil, entity.ErrShortCodeExists)

		resp := suite.e.POST(path).
			WithJSON(map[string]string{"url": "https://example.com", "custom_code": "duplicate"}).
			Expect().
			Status(http.StatusConflict).
			JSON().Object()

		resp.HasValue("status", "error")
		resp.ContainsKey("message")
	})

	suite.Run("generation exhausted", func() {
		suite.urlUseCaseMock.
			On("ShortenURL", mock.Anything, "https://example.com", "", (*time.Time)(nil)).
			Once().
			Return(nil, &entity.CodeGenerationError{Attempts: 3})

		resp := suite.e.POST(path).
			WithJSON(map[string]string{"url": "https://example.com"}).
			Expect().
			Status(http.StatusServiceUnavailable).
			JSON().Object()

		resp.HasValue("status", "error")
		resp.Value("message").String().Contains("3 attempts")
	})

	suite.Run("server error", func() {
		suite.urlUseCaseMock.
			On("ShortenURL", mock.Anything, "https://example.com", "", (*time.Time)(nil)).
			Once().
			Return(nil, errors.New("unknown error"))

		resp := suite.e.POST(path).
			WithJSON(map[string]string{"url": "https://example.com"}).
			Expect().
			Status(http.StatusInternalServerError).
			JSON().Object()

		resp.HasValue("status", "error")
		resp.ContainsKey("message")
	})

	suite.Run("success", func() {
		suite.urlUseCaseMock.
			On("ShortenURL", mock.Anything, "https://www.Example.com/path/", "", (*time.Time)(nil)).
			Once().
			Return(&entity.URL{
				ID:        1,
				ShortCode: "abc123",
				TargetURL: "https://example.com/path",
			}, nil)

		resp := suite.e.POST(path).
			WithJSON(map[string]string{"url": "https://www.Example.com/path/"}).
			Expect().
			Status(http.StatusCreated).
			JSON().Object()

		resp.HasValue("id", 1)
		resp.HasValue("short_code", "abc123")
		resp.HasValue("target_url", "https://example.com/path")
		resp.HasValue("short_url", testBaseURL+"/abc123")
		resp.HasValue("clicks", 0)
		resp.ContainsKey("created_at")
	})
}

func (suite *HandlersTestSuite) TestRedirect() {
	const path = "/%s"

	suite.Run("url not found", func() {
		suite.urlUseCaseMock.
			On("ResolveShortCode", mock.Anything, "missing", mock.Anything).
			Once().
			Return(nil, entity.ErrURLNotFound)

		resp := suite.e.GET(fmt.Sprintf(path, "missing")).
			Expect().
			Status(http.StatusNotFound).
			JSON().Object()

		resp.HasValue("status", "error")
		resp.Value("message").String().Contains("missing")
	})

	suite.Run("url expired", func() {
		expiresAt := time.Date(2026, time.July, 1, 12, 0, 0, 0, time.UTC)

		suite.urlUseCaseMock.
			On("ResolveShortCode", mock.Anything, "abc123", mock.Anything).
			Once().
			Return(nil, &entity.URLExpiredError{ExpiresAt: expiresAt})

		resp := suite.e.GET(fmt.Sprintf(path, "abc123")).
			Expect().
			Status(http.StatusGone).
			JSON().Object()

		resp.HasValue("status", "error")
		resp.Value("message").String().Contains("2026-07-01T12:00:00Z")
	})

	suite.Run("server error", func() {
		suite.urlUseCaseMock.
			On("ResolveShortCode", mock.Anything, "abc123", mock.Anything).
			Once().
			Return(nil, errors.New("unknown error"))

		resp := suite.e.GET(fmt.Sprintf(path, "abc123")).
			Expect().
			Status(http.StatusInternalServerError).
			JSON().Object()

		resp.HasValue("status", "error")
		resp.ContainsKey("message")
	})

	suite.Run("success", func() {
		suite.urlUseCaseMock.
			On("ResolveShortCode", mock.Anything, "abc123", mock.Anything).
			Once().
			Return(&usecase.Resolution{
				TargetURL: "https://example.com",
				CacheHit:  true,
			}, nil)

		suite.e.GET(fmt.Sprintf(path, "abc123")).
			Expect().
			Status(http.StatusTemporaryRedirect).
			Header("Location").IsEqual("https://example.com")
	})
}

func (suite *HandlersTestSuite) TestGetAnalytics() {
	const path = "/analytics/%s"

	suite.Run("unknown period", func() {
		suite.e.GET(fmt.Sprintf(path, "abc123")).
			WithQuery("period", "2w").
			Expect().
			Status(http.StatusBadRequest).
			JSON().Object().
			HasValue("status", "error")
	})

	suite.Run("url not found", func() {
		suite.urlUseCaseMock.
			On("GetAnalytics", mock.Anything, "missing", usecase.PeriodWeek).
			Once().
			Return(nil, entity.ErrURLNotFound)

		resp := suite.e.GET(fmt.Sprintf(path, "missing")).
			Expect().
			Status(http.StatusNotFound).
			JSON().Object()

		resp.HasValue("status", "error")
		resp.Value("message").String().Contains("missing")
	})

	suite.Run("server error", func() {
		suite.urlUseCaseMock.
			On("GetAnalytics", mock.Anything, "abc123", usecase.PeriodWeek).
			Once().
			Return(nil, errors.New("unknown error"))

		resp := suite.e.GET(fmt.Sprintf(path, "abc123")).
			Expect().
			Status(http.StatusInternalServerError).
			JSON().Object()

		resp.HasValue("status", "error")
		resp.ContainsKey("message")
	})

	suite.Run("success with explicit period", func() {
		first := time.Date(2026, time.August, 24, 10, 0, 0, 0, time.UTC)
		last := time.Date(2026, time.August, 26, 18, 30, 0, 0, time.UTC)

		suite.urlUseCaseMock.
			On("GetAnalytics", mock.Anything, "abc123", usecase.PeriodMonth).
			Once().
			Return(&usecase.Analytics{
				URL: &entity.URL{
					ID:        1,
					ShortCode: "abc123",
					TargetURL: "https://example.com",
				},
				Stats: &entity.ClickStats{
					TotalClicks:    3,
					UniqueVisitors: 2,
					FirstClick:     &first,
					LastClick:      &last,
					ByDay: []entity.DayClicks{
						{Date: first, Clicks: 2},
						{Date: last, Clicks: 1},
					},
				},
			}, nil)

		resp := suite.e.GET(fmt.Sprintf(path, "abc123")).
			WithQuery("period", "30d").
			Expect().
			Status(http.StatusOK).
			JSON().Object()

		resp.HasValue("short_code", "abc123")
		resp.HasValue("target_url", "https://example.com")
		resp.Value("summary").Object().
			HasValue("total_clicks", 3).
			HasValue("unique_visitors", 2)
		days := resp.Value("clicks_by_day").Array()
		days.Length().IsEqual(2)
		days.Value(0).Object().
			HasValue("date", "2026-08-24").
			HasValue("clicks", 2)
		days.Value(1).Object().
			HasValue("date", "2026-08-26").
			HasValue("clicks", 1)
	})

	suite.Run("default period is seven days", func() {
		suite.urlUseCaseMock.
			On("GetAnalytics", mock.Anything, "abc123", usecase.PeriodWeek).
			Once().
			Return(&usecase.Analytics{
				URL:   &entity.URL{ID: 1, ShortCode: "abc123", TargetURL: "https://example.com"},
				Stats: &entity.ClickStats{},
			}, nil)

		resp := suite.e.GET(fmt.Sprintf(path, "abc123")).
			Expect().
			Status(http.StatusOK).
			JSON().Object()

		resp.HasValue("short_code", "abc123")
		resp.Value("clicks_by_day").Array().Length().IsEqual(0)
	})
}

func TestURLHandler(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}
