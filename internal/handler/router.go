package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// NewRouter builds the complete HTTP handler. live, when non-nil, serves
// the websocket feed on /ws.
func NewRouter(h *HTTPHandler, live http.HandlerFunc, corsOrigin string, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	router := mux.NewRouter()
	h.RegisterRoutes(router)
	if live != nil {
		router.HandleFunc("/ws", live).Methods(http.MethodGet)
	}

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "not found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	var handler http.Handler = router
	handler = EnableCORS(corsOrigin)(handler)
	handler = LogRequests(logger)(handler)
	handler = Recover(logger)(handler)
	return handler
}
