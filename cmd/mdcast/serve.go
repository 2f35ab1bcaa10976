package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	recordtui "github.com/choonkeat/record-tui/playback"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/choonkeat/mdcast/internal/cast"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // recordings are public to anyone who can reach the port
	},
}

// CastInfo describes one recording for the index endpoint.
type CastInfo struct {
	Name     string         `json:"name"`
	Title    string         `json:"title"`
	Width    int            `json:"width"`
	Height   int            `json:"height"`
	Events   int            `json:"events"`
	Duration cast.Timestamp `json:"duration"`
}

// castServer serves the recordings found in one directory.
type castServer struct {
	dir     string
	maxWait time.Duration
}

func runServe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	addr := fs.String("addr", ":8080", "Address to listen on")
	dir := fs.String("dir", ".", "Directory containing .cast files")
	maxWait := fs.Duration("max-wait", 2*time.Second, "Longest pause between streamed events (0 for no limit)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    *addr,
		Handler: newCastServer(expandTilde(*dir), *maxWait).routes(),
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("Serving recordings from %s on %s", *dir, *addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func newCastServer(dir string, maxWait time.Duration) *castServer {
	return &castServer{dir: dir, maxWait: maxWait}
}

func (s *castServer) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /casts", s.handleList)
	mux.HandleFunc("GET /casts/{name}", s.handleFile)
	mux.HandleFunc("GET /casts/{name}/play", s.handlePlayback)
	mux.HandleFunc("GET /ws", s.handleStream)
	return mux
}

// castPath resolves name inside the served directory. Only bare .cast file
// names are accepted.
func (s *castServer) castPath(name string) (string, bool) {
	if name == "" || name != filepath.Base(name) || !strings.HasSuffix(name, ".cast") {
		return "", false
	}
	return filepath.Join(s.dir, name), true
}

func (s *castServer) handleList(w http.ResponseWriter, r *http.Request) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		http.Error(w, "cannot read recordings", http.StatusInternalServerError)
		return
	}

	infos := []CastInfo{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".cast") {
			continue
		}
		rec, err := readRecordingFile(filepath.Join(s.dir, e.Name()))
		if err != nil {
			log.Printf("Skipping %s: %v", e.Name(), err)
			continue
		}
		infos = append(infos, CastInfo{
			Name:     e.Name(),
			Title:    rec.Header.Title,
			Width:    rec.Header.Width,
			Height:   rec.Header.Height,
			Events:   len(rec.Events),
			Duration: rec.Duration(),
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(infos); err != nil {
		log.Printf("Cast index: %v", err)
	}
}

func (s *castServer) handleFile(w http.ResponseWriter, r *http.Request) {
	path, ok := s.castPath(r.PathValue("name"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/x-asciicast")
	http.ServeFile(w, r, path)
}

// handlePlayback renders a recording as a self-contained HTML player page.
func (s *castServer) handlePlayback(w http.ResponseWriter, r *http.Request) {
	path, ok := s.castPath(r.PathValue("name"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	rec, err := readRecordingFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "cannot read recording", http.StatusInternalServerError)
		return
	}

	frames := make([]recordtui.Frame, 0, len(rec.Events))
	for _, ev := range rec.Events {
		frames = append(frames, recordtui.Frame{Timestamp: float64(ev.Time), Content: ev.Data})
	}
	title := rec.Header.Title
	if title == "" {
		title = filepath.Base(path)
	}
	html, err := recordtui.RenderHTML(frames, recordtui.Options{
		Title: title,
		FooterLink: recordtui.FooterLink{
			Text: "mdcast",
			URL:  "https://github.com/choonkeat/mdcast",
		},
	})
	if err != nil {
		http.Error(w, "Failed to render playback", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

// handleStream replays one recording over a websocket: the header line as
// the first text message, then one message per event in asciicast event
// line form, paced by the recorded timestamps.
func (s *castServer) handleStream(w http.ResponseWriter, r *http.Request) {
	path, ok := s.castPath(r.URL.Query().Get("cast"))
	if !ok {
		http.Error(w, "cast must name a .cast file", http.StatusBadRequest)
		return
	}
	rec, err := readRecordingFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "cannot read recording", http.StatusInternalServerError)
		return
	}
	opts, err := s.streamOptions(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	head, err := rec.Header.Line()
	if err != nil {
		http.Error(w, "cannot encode header", http.StatusInternalServerError)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	sessionID := uuid.New().String()
	log.Printf("Stream %s started: %s (%d events)", sessionID, filepath.Base(path), len(rec.Events))

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Reads only to notice the client going away.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	var writeMu sync.Mutex
	send := func(data string) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteMessage(websocket.TextMessage, []byte(data))
	}

	if err := send(head); err != nil {
		log.Printf("Stream %s: %v", sessionID, err)
		return
	}
	err = replay(ctx, rec.Events, opts, func(ev cast.Event) error {
		return send(ev.Line())
	})
	if err != nil {
		log.Printf("Stream %s stopped: %v", sessionID, err)
		return
	}

	writeMu.Lock()
	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "end of recording"))
	writeMu.Unlock()
	log.Printf("Stream %s finished", sessionID)
}

func (s *castServer) streamOptions(r *http.Request) (replayOptions, error) {
	q := r.URL.Query()
	opts := replayOptions{Speed: 1, MaxWait: s.maxWait}
	if v := q.Get("speed"); v != "" {
		speed, err := strconv.ParseFloat(v, 64)
		if err != nil || speed <= 0 {
			return replayOptions{}, fmt.Errorf("speed must be a positive number")
		}
		opts.Speed = speed
	}
	if v := q.Get("instant"); v != "" {
		instant, err := strconv.ParseBool(v)
		if err != nil {
			return replayOptions{}, fmt.Errorf("instant must be a boolean")
		}
		opts.Instant = instant
	}
	return opts, nil
}
