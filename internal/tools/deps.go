// Package tools provides MCP tool handlers and registration.
package tools

import (
	"log/slog"

	"github.com/nfriedel/flint/internal/metrics"
	"github.com/nfriedel/flint/internal/service"
)

// Dependencies holds shared services for tool handlers.
// Passed to handler factories via closure capture.
type Dependencies struct {
	Strike    *service.StrikeService
	Collector *metrics.Collector
	Logger    *slog.Logger
}
