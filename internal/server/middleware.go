package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// maxParamsLogLen caps logged params. Reflections can be whole
// paragraphs and do not belong in the log.
const maxParamsLogLen = 200

// slowCallThreshold marks calls worth a warning. Muse-backed draws
// legitimately take seconds, so this is generous.
const slowCallThreshold = 2 * time.Second

// LoggingMiddleware logs every request with its duration. Failed calls
// log at ERROR, slow ones at WARN, the rest at DEBUG.
func LoggingMiddleware(logger *slog.Logger) mcp.Middleware {
	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			start := time.Now()
			result, err := next(ctx, method, req)
			duration := time.Since(start)

			attrs := []any{
				"method", method,
				"duration_ms", duration.Milliseconds(),
			}
			if params := formatParams(req); params != "" {
				attrs = append(attrs, "params", truncate(params, maxParamsLogLen))
			}

			switch {
			case err != nil:
				attrs = append(attrs, "error", err.Error())
				logger.Error("request failed", attrs...)
			case duration > slowCallThreshold:
				logger.Warn("slow request", attrs...)
			default:
				logger.Debug("request completed", attrs...)
			}

			return result, err
		}
	}
}

// formatParams renders request parameters for logging.
func formatParams(req mcp.Request) string {
	params := req.GetParams()
	if params == nil {
		return ""
	}
	return fmt.Sprintf("%+v", params)
}

// truncate shortens s to maxLen with a trailing ellipsis.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
