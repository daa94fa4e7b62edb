package handlers

import (
	_ "embed"
	"net/http"
)

//go:embed web/index.html
var dashboardHTML []byte

// Dashboard serves the embedded single-page dashboard.
// GET /
func Dashboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(dashboardHTML)
}
