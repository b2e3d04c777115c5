package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"weatherproxy.app/internal/ports"
	errorspkg "weatherproxy.app/pkg/errors"
)

const internalErrorMessage = "Internal server error"

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// handleError handles different types of application errors
func (s *HTTPServerAdapter) handleError(c *gin.Context, err error) {
	statusCode, response := errorResponse(err)
	if statusCode >= http.StatusInternalServerError && s.logger != nil {
		s.logger.Error("Request failed",
			ports.F("request_id", c.GetString(requestIDKey)),
			ports.F("path", c.Request.URL.Path),
			ports.F("status", statusCode),
			ports.F("error", err))
	}
	c.JSON(statusCode, response)
}

func errorResponse(err error) (int, ErrorResponse) {
	var appErr *errorspkg.AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError, ErrorResponse{Error: internalErrorMessage}
	}

	switch appErr.Type {
	case errorspkg.ValidationError:
		return http.StatusBadRequest, ErrorResponse{Error: appErr.Message}
	case errorspkg.ConfigurationError:
		return http.StatusInternalServerError, ErrorResponse{Error: appErr.Message}
	case errorspkg.UpstreamUnreachableError:
		return http.StatusBadGateway, ErrorResponse{Error: appErr.Message, Detail: appErr.Detail}
	case errorspkg.UpstreamError:
		// Any final status the provider sent is relayed; informational or
		// unset codes cannot be written as a response status.
		status := appErr.StatusCode
		if status < http.StatusOK || status > 999 {
			status = http.StatusBadGateway
		}
		return status, ErrorResponse{Error: appErr.Message, Detail: appErr.Detail}
	case errorspkg.NotFoundError:
		return http.StatusNotFound, ErrorResponse{Error: appErr.Message}
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: internalErrorMessage}
	}
}

// getMetrics handles GET /api/metrics requests
func (s *HTTPServerAdapter) getMetrics(c *gin.Context) {
	metrics, err := s.metricsCollector.GetMetrics(c.Request.Context())
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, metrics)
}
