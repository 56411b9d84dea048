// ABOUTME: Serves the dashboard stylesheet rendered from the server's style table.
// ABOUTME: The CSS is rendered once per server; output is deterministic.
package web

import "net/http"

// handleStylesheet serves GET /static/dashboard.css.
func (s *Server) handleStylesheet(w http.ResponseWriter, r *http.Request) {
	s.cssOnce.Do(func() {
		s.css = s.theme.CSS()
	})
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "max-age=300")
	_, _ = w.Write([]byte(s.css))
}
