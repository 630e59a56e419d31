package server

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"
	"path"

	"github.com/Mohsinsiddi/abi-test/internal/config"
)

//go:embed web
var webFS embed.FS

const configGlobal = "window.__ABI_TEST_CONFIG__"

// renderIndex injects the resolved config into the page right after <head>.
func renderIndex(resolved *config.Resolved) ([]byte, error) {
	html, err := webFS.ReadFile("web/index.html")
	if err != nil {
		return nil, err
	}
	// json.Marshal escapes <, > and &, so the payload cannot close the
	// script element.
	payload, err := json.Marshal(resolved)
	if err != nil {
		return nil, fmt.Errorf("encoding page config: %w", err)
	}
	script := fmt.Sprintf("<head>\n    <script>%s = %s;</script>", configGlobal, payload)
	return bytes.Replace(html, []byte("<head>"), []byte(script), 1), nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		w.Write(s.page) //nolint:errcheck
	}
}

// staticHandler serves the embedded assets. Unknown paths get a plain 404.
func staticHandler() http.Handler {
	sub, err := fs.Sub(webFS, "web")
	if err != nil {
		panic(err)
	}
	files := http.FileServer(http.FS(sub))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := path.Clean(r.URL.Path)[1:]
		if name == "" || name == "index.html" {
			notFound(w, r)
			return
		}
		if info, err := fs.Stat(sub, name); err != nil || info.IsDir() {
			notFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte("Not found")) //nolint:errcheck
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusMethodNotAllowed)
	w.Write([]byte("Method not allowed")) //nolint:errcheck
}
