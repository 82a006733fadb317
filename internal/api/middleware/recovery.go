// Package middleware adapts the shared middleware to the JSON API's
// error format.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/fastfingers/typerace/internal/api/apierr"
	"github.com/fastfingers/typerace/internal/middleware"
)

// Recovery creates panic recovery middleware that writes JSON error
// responses
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, apiPanicHandler)
}

func apiPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}
