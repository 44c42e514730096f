package web

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

const fallbackHTML = `<html>
    <head><title>Excuse Email Draft Tool</title></head>
    <body>
        <h1>Excuse Email Draft Tool</h1>
        <p>Frontend not found. Please ensure index.html exists in the public directory.</p>
        <p>API is available at <a href="/apidocs.json">/apidocs.json</a></p>
    </body>
</html>
`

// Server serves the static form UI.
type Server struct {
	Dir string
}

// ResolvePublicDir returns the first existing public directory candidate,
// or "" when none exists (container images mount it in different places).
func ResolvePublicDir() string {
	candidates := []string{
		"public",
		filepath.Join("..", "public"),
		"/app/public",
		"/workspace/public",
	}

	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			log.Info().Str("dir", dir).Msg("Found public directory")
			return dir
		}
	}

	log.Warn().Msg("Public directory not found, serving fallback page")
	return ""
}

// Index writes the form page, or an inline fallback when index.html is missing.
func (s *Server) Index(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if s.Dir != "" {
		index := filepath.Join(s.Dir, "index.html")
		if data, err := os.ReadFile(index); err == nil {
			_, _ = w.Write(data)
			return
		}
		log.Error().Str("path", index).Msg("index.html not found")
	}

	_, _ = w.Write([]byte(fallbackHTML))
}

// StaticHandler serves files under the public directory.
func (s *Server) StaticHandler() http.Handler {
	fs := http.FileServer(http.Dir(s.Dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		fs.ServeHTTP(w, r)
	})
}
