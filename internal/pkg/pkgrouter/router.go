package pkgrouter

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Kaushallx0/seatxray/internal/pkg/pkgerror"
	"github.com/Kaushallx0/seatxray/internal/pkg/pkguid"
	"github.com/gorilla/mux"
)

const HeaderRequestID = "X-Request-ID"

type Handler func(ctx context.Context, r *http.Request) (any, error)

type Router struct {
	mux  *mux.Router
	uuid pkguid.StringID
}

type successResponse struct {
	RequestID string `json:"request_id"`
	Data      any    `json:"data"`
}

type errorResponse struct {
	RequestID string `json:"request_id"`
	Error     string `json:"error"`
}

func NewRouter(uuid pkguid.StringID) *Router {
	r := &Router{mux: mux.NewRouter(), uuid: uuid}
	r.mux.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{RequestID: r.requestID(req), Error: "route not found"})
	})
	r.mux.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{RequestID: r.requestID(req), Error: "method not allowed"})
	})
	return r
}

func (r *Router) GET(path string, h Handler) {
	r.mux.Handle(path, r.wrap(h)).Methods(http.MethodGet)
}

func (r *Router) POST(path string, h Handler) {
	r.mux.Handle(path, r.wrap(h)).Methods(http.MethodPost)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Param returns the named path variable of the matched route.
func Param(r *http.Request, name string) string {
	return mux.Vars(r)[name]
}

func (r *Router) wrap(h Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		requestID := r.requestID(req)
		w.Header().Set(HeaderRequestID, requestID)

		data, err := h(req.Context(), req)
		if err != nil {
			e := pkgerror.From(err)
			if !e.IsBusiness() {
				slog.ErrorContext(req.Context(), "request failed", "request_id", requestID, "path", req.URL.Path, "error", err)
			}
			writeJSON(w, e.StatusCode(), errorResponse{RequestID: requestID, Error: e.Msg()})
			return
		}

		writeJSON(w, http.StatusOK, successResponse{RequestID: requestID, Data: data})
	})
}

func (r *Router) requestID(req *http.Request) string {
	if id := req.Header.Get(HeaderRequestID); id != "" {
		return id
	}
	return r.uuid.Generate()
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
