package digest

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Register registers the page routes on r.
func Register(r *mux.Router, svc Runner, pages *Pages) {
	r.Handle("/", IndexHandler{Pages: pages}).Methods(http.MethodGet, http.MethodHead)
	r.Handle("/summarize", SummarizeHandler{Svc: svc, Pages: pages}).Methods(http.MethodPost)
}
