package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/Dragunija/PPE-Data-Visualization/model/action"
)

type handler struct {
	*action.Resolver
}

func setupRoutes(h *handler, source sourceProvider) (http.Handler, error) {
	w := requestWrapper

	router := chi.NewRouter()

	router.Use(requestLogger)
	router.Use(source.middleware)
	router.Route("/visualiser", func(router chi.Router) {
		router.Get("/get_event", w(h.getEventHandler))
		router.Get("/files", w(h.getFilesHandler))
		router.Get("/files/{filename}", w(h.getFileHandler))
	})
	router.Post("/uploader", w(h.uploadHandler))
	return router, nil
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debugf("%s %s (%s)", r.Method, r.URL.RequestURI(), time.Since(start))
	})
}
