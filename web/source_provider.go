package web

import (
	"context"
	"net/http"

	"github.com/Dragunija/PPE-Data-Visualization/model/action"
)

// sourceProvider returns the event source for one request and a function
// releasing it.
type sourceProvider func() (action.EventSource, func())

func (p sourceProvider) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		source, release := p()
		defer release()

		newCtx := context.WithValue(
			r.Context(),
			contextSourceKey,
			source,
		)
		updatedRequest := r.WithContext(newCtx)
		next.ServeHTTP(w, updatedRequest)
	})
}
