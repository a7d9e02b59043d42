// internal/server/server.go
package server

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceDuration = 500 * time.Millisecond

// Options configures the dev server.
type Options struct {
	Port int
	// Root is the directory served over HTTP.
	Root string
	// Watch lists the files and directories whose changes trigger a rebuild.
	// Directories are watched without descending into subdirectories.
	Watch []string
	// Rebuild runs a full build.
	Rebuild func() error
}

// Run builds once, then serves opts.Root and rebuilds on every change to the
// watched paths, telling open tabs to reload after each successful rebuild.
func Run(opts Options) error {
	if err := opts.Rebuild(); err != nil {
		return fmt.Errorf("initial build failed: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not create file watcher: %w", err)
	}
	defer watcher.Close()

	targets, err := newWatchSet(opts.Watch)
	if err != nil {
		return err
	}
	for _, dir := range targets.dirs() {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("could not watch %s: %w", dir, err)
		}
		fmt.Printf("Watching directory: %s\n", dir)
	}

	hub := newReloadHub()
	go watchForChanges(watcher, targets, hub, opts.Rebuild)

	addr := fmt.Sprintf(":%d", opts.Port)
	fmt.Printf("Serving %s on http://localhost%s\n", opts.Root, addr)
	fmt.Println("Press Ctrl+C to stop")
	return http.ListenAndServe(addr, newMux(opts.Root, hub))
}

func newMux(root string, hub *reloadHub) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	mux.Handle("/", liveReloadWrapper(http.FileServer(http.Dir(root))))
	return mux
}

// watchSet maps fsnotify events back to the paths the user asked to watch.
// fsnotify watches directories, so a watched file is covered by watching its
// parent and filtering on the name. That also survives editors that save by
// renaming a temp file over the original.
type watchSet struct {
	wholeDirs map[string]bool
	files     map[string]bool
}

func newWatchSet(paths []string) (*watchSet, error) {
	ws := &watchSet{wholeDirs: make(map[string]bool), files: make(map[string]bool)}
	for _, p := range paths {
		if p == "" {
			continue
		}
		p = filepath.Clean(p)
		info, err := os.Stat(p)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("could not stat path %s: %w", p, err)
		}
		if info.IsDir() {
			ws.wholeDirs[p] = true
		} else {
			ws.files[p] = true
		}
	}
	return ws, nil
}

// dirs returns each directory fsnotify must watch, once.
func (ws *watchSet) dirs() []string {
	seen := make(map[string]bool)
	var out []string
	add := func(d string) {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	for d := range ws.wholeDirs {
		add(d)
	}
	for f := range ws.files {
		add(filepath.Dir(f))
	}
	return out
}

func (ws *watchSet) matches(name string) bool {
	name = filepath.Clean(name)
	return ws.files[name] || ws.wholeDirs[filepath.Dir(name)]
}

func watchForChanges(watcher *fsnotify.Watcher, targets *watchSet, hub *reloadHub, rebuild func() error) {
	var lastBuildTime time.Time
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op == fsnotify.Chmod || !targets.matches(event.Name) {
				continue
			}
			if time.Since(lastBuildTime) <= debounceDuration {
				continue
			}
			// Let editors finish writing before reading the file back.
			time.Sleep(100 * time.Millisecond)

			log.Printf("Change detected in %s, rebuilding...", event.Name)
			if err := rebuild(); err != nil {
				log.Printf("Error rebuilding site: %v", err)
			} else {
				log.Printf("Site rebuilt. Reloading %d tab(s).", hub.len())
				hub.reload()
			}
			lastBuildTime = time.Now()
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Watcher error: %v", err)
		}
	}
}

// liveReloadWrapper disables caching and injects the reload script before
// </body> in successful HTML responses.
func liveReloadWrapper(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")

		if !strings.HasSuffix(r.URL.Path, ".html") && !strings.HasSuffix(r.URL.Path, "/") {
			next.ServeHTTP(w, r)
			return
		}

		iw := newInterceptingWriter()
		next.ServeHTTP(iw, r)

		for key, values := range iw.header {
			if key == "Content-Length" {
				continue
			}
			for _, value := range values {
				w.Header().Add(key, value)
			}
		}

		body := iw.body.Bytes()
		if iw.statusCode == http.StatusOK {
			body = bytes.Replace(body, []byte("</body>"), []byte(liveReloadScript+"</body>"), 1)
		}
		w.Header().Set("Content-Length", fmt.Sprint(len(body)))
		w.WriteHeader(iw.statusCode)
		w.Write(body)
	})
}

// interceptingWriter buffers a response so the body can be edited.
type interceptingWriter struct {
	body       bytes.Buffer
	statusCode int
	header     http.Header
}

func newInterceptingWriter() *interceptingWriter {
	return &interceptingWriter{header: make(http.Header), statusCode: http.StatusOK}
}

func (iw *interceptingWriter) Header() http.Header { return iw.header }

func (iw *interceptingWriter) Write(b []byte) (int, error) { return iw.body.Write(b) }

func (iw *interceptingWriter) WriteHeader(statusCode int) { iw.statusCode = statusCode }

const liveReloadScript = `<script>
(function() {
  var socket = new WebSocket("ws://" + window.location.host + "/ws");
  socket.onmessage = function(event) {
    if (event.data === "reload") {
      window.location.reload();
    }
  };
  socket.onerror = function() {
    console.error("Live reload connection lost. Restart 'blog serve'.");
  };
})();
</script>
`
