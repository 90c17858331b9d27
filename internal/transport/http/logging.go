package http

import (
	"encoding/json"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/wanderhq/wanderlust/internal/domain"
)

const (
	requestFormLogKey = "http.request.form.summary"
	maxLoggedValue    = 256
)

// registerLogging emits one JSON line per request. Form submissions are
// summarized with password fields redacted; response bodies are HTML pages
// and are not logged.
func registerLogging(e *echo.Echo) {
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			userID := "anonymous"
			if user, ok := c.Get(contextUserKey).(*domain.User); ok && user != nil {
				userID = user.ID.String()
			}

			payload := struct {
				Time      string      `json:"time"`
				UserUUID  string      `json:"user_uuid"`
				Method    string      `json:"method"`
				URI       string      `json:"uri"`
				Status    int         `json:"status"`
				LatencyMS int64       `json:"latency_ms"`
				Form      interface{} `json:"form,omitempty"`
				Error     string      `json:"error,omitempty"`
			}{
				Time:      v.StartTime.Format(time.RFC3339),
				UserUUID:  userID,
				Method:    v.Method,
				URI:       v.URI,
				Status:    v.Status,
				LatencyMS: v.Latency.Milliseconds(),
			}
			if form := c.Get(requestFormLogKey); form != nil {
				payload.Form = form
			}
			if v.Error != nil {
				payload.Error = v.Error.Error()
			}

			buf, err := json.Marshal(payload)
			if err != nil {
				return err
			}
			log.Println(string(buf))
			return nil
		},
	}))

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if summary := summarizeForm(c); summary != nil {
				c.Set(requestFormLogKey, summary)
			}
			return next(c)
		}
	})
}

func summarizeForm(c echo.Context) interface{} {
	contentType := strings.ToLower(c.Request().Header.Get(echo.HeaderContentType))
	if !strings.HasPrefix(contentType, echo.MIMEApplicationForm) &&
		!strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		return nil
	}
	form, err := c.FormParams()
	if err != nil || len(form) == 0 {
		return nil
	}
	return sanitizeForm(form)
}

func sanitizeForm(values url.Values) map[string]interface{} {
	out := make(map[string]interface{}, len(values))
	for key, vals := range values {
		if strings.Contains(strings.ToLower(key), "password") {
			out[key] = "redacted"
			continue
		}
		clamped := make([]string, 0, len(vals))
		for _, v := range vals {
			clamped = append(clamped, clampString(v))
		}
		if len(clamped) == 1 {
			out[key] = clamped[0]
		} else {
			out[key] = clamped
		}
	}
	return out
}

func clampString(value string) string {
	if len(value) <= maxLoggedValue {
		return value
	}
	return value[:maxLoggedValue] + "...(truncated)"
}
