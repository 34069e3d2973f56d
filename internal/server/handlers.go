package server

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"log"
	"net/http"

	"github.com/jonathan/jobsheet-sync/internal/syncer"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// pageData fills the status page. Lines are escaped by html/template, so
// description text echoed in a log line cannot inject markup.
type pageData struct {
	Sheet  string
	Lines  []string
	Failed bool
}

// handleIndex renders the trigger page without running anything
func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	s.renderPage(w, pageData{Sheet: s.sheetLabel})
}

// handleProcess runs one pass and renders its log. Concurrent callers share
// the same pass. The page is always a 200; a fatal error replaces the log
// with a single "Error: ..." line.
func (s *Server) handleProcess(w http.ResponseWriter, _ *http.Request) {
	v, err, shared := s.runs.Do("sync", func() (any, error) {
		s.runMu.Lock()
		defer s.runMu.Unlock()
		return s.syncer.Run(s.baseCtx)
	})
	if shared {
		log.Printf("[server] joined in-flight sync")
	}

	data := pageData{Sheet: s.sheetLabel}
	report, _ := v.(*syncer.Report)
	switch {
	case err != nil:
		data.Lines = []string{errorLine(err)}
		data.Failed = true
	case report != nil:
		data.Lines = report.Lines
	}
	s.renderPage(w, data)
}

// handleProcessStream runs one pass and streams each log line as a
// "progress" event, then "complete" or "error". A disconnect stops the pass
// before the next row.
func (s *Server) handleProcessStream(w http.ResponseWriter, r *http.Request) {
	if !s.runMu.TryLock() {
		s.jsonResponse(w, http.StatusConflict, map[string]string{"error": ErrRunInProgress.Error()})
		return
	}
	defer s.runMu.Unlock()

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.jsonResponse(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	stop := context.AfterFunc(s.baseCtx, cancel)
	defer stop()

	run := s.syncer.WithProgress(func(event syncer.Event) {
		if err := sse.WriteEvent("progress", event); err != nil {
			log.Printf("[server] error writing SSE event: %v", err)
		}
	})

	report, err := run.Run(ctx)
	if err != nil {
		sse.WriteError(errorLine(err))
		return
	}
	sse.WriteComplete(report)
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// renderPage buffers the template so a render failure still yields a page.
func (s *Server) renderPage(w http.ResponseWriter, data pageData) {
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		log.Printf("[server] render page: %v", err)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(errorLine(err))) //nolint:errcheck
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes()) //nolint:errcheck
}
