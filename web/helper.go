package web

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi"

	"github.com/Dragunija/PPE-Data-Visualization/errors"
	"github.com/Dragunija/PPE-Data-Visualization/model/action"
)

type contextKeyType string

const contextSourceKey contextKeyType = "eventSource"

func extractSource(ctx context.Context) action.EventSource {
	sourceObj := ctx.Value(contextSourceKey)
	if sourceObj == nil {
		log.Error("[ASSERT] Missing event source in context")
		debug.PrintStack()
	}
	source, assertOk := sourceObj.(action.EventSource)
	if !assertOk {
		log.Error("[ASSERT] Wrong type for event source")
		debug.PrintStack()
	}
	return source
}

func extractURLParam(ctx context.Context, name string) string {
	chiContext := chi.RouteContext(ctx)
	return chiContext.URLParam(name)
}

func writeJSONResponse(w http.ResponseWriter, httpStatus int, body interface{}) error {
	marshaled, marshalingErr := json.Marshal(body)
	if marshalingErr != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return marshalingErr
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	_, writeErr := w.Write(marshaled)
	return writeErr
}

func handleRequestErr(w http.ResponseWriter, err error) {
	status := errors.Status(err)
	var formErr errors.FormError
	switch {
	case stderrors.As(err, &formErr):
		_ = writeJSONResponse(w, status, formErr)
	case status == http.StatusInternalServerError:
		if !stderrors.Is(err, errors.ErrInternalServerError) {
			log.Errorf("unexpected error: %s", err.Error())
		}
		_ = writeJSONResponse(w, status, errors.ErrInternalServerError.Error())
	default:
		_ = writeJSONResponse(w, status, err.Error())
	}
}
