package dashboard

import (
	_ "embed"
	"net/http"
)

//go:embed index.html
var indexHTML []byte

// ServeIndex enters admin mode and serves the embedded console page.
func (d *Dashboard) ServeIndex(w http.ResponseWriter, r *http.Request) {
	if err := d.sessions.Enable(w, r); err != nil {
		d.logger.Error().Err(err).Msg("enabling admin mode")
		http.Error(w, "could not start admin session", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(indexHTML)
}
