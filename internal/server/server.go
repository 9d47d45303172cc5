// Package server exposes dungeon generation over a WebSocket.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lawnchairsociety/dungeongen/internal/config"
	"github.com/lawnchairsociety/dungeongen/internal/dungeon"
	"github.com/lawnchairsociety/dungeongen/internal/export"
	"github.com/lawnchairsociety/dungeongen/internal/logger"
)

const writeTimeout = 10 * time.Second

// Archive persists generated dungeons. *store.Store satisfies it.
type Archive interface {
	Save(ctx context.Context, cfg dungeon.Configuration, doc *export.Document) (id int64, created bool, err error)
}

// Server answers generation requests on /ws and liveness checks on /healthz.
type Server struct {
	cfg      *config.ServiceConfig
	archive  Archive
	limiter  *ConnLimiter
	upgrader websocket.Upgrader

	httpServer *http.Server

	mu       sync.Mutex
	conns    map[*websocket.Conn]struct{}
	sessions sync.WaitGroup
	closed   bool
}

// New creates a server. archive may be nil to disable archiving.
func New(cfg *config.ServiceConfig, archive Archive) *Server {
	s := &Server{
		cfg:     cfg,
		archive: archive,
		limiter: NewConnLimiter(cfg.Connections),
		conns:   make(map[*websocket.Conn]struct{}),
	}
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if !s.cfg.WebSocket.IsOriginAllowed(origin, r.Host) {
				logger.Warning("websocket rejected: origin not allowed",
					"origin", origin,
					"host", r.Host,
					"remote_addr", r.RemoteAddr)
				return false
			}
			return true
		},
	}
	return s
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleUpgrade)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// Serve accepts connections on l until Shutdown. After Shutdown it closes l
// and returns nil.
func (s *Server) Serve(l net.Listener) error {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		l.Close()
		return nil
	}

	logger.Notice("generation service listening", "address", l.Addr().String())
	if err := s.httpServer.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ListenAndServe listens on addr and serves until Shutdown.
func (s *Server) ListenAndServe(addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(l)
}

// Shutdown stops accepting connections, closes open sockets and waits for
// their sessions to finish or ctx to expire.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	for conn := range s.conns {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
			time.Now().Add(time.Second))
		conn.Close()
	}
	s.mu.Unlock()

	err := s.httpServer.Shutdown(ctx)

	done := make(chan struct{})
	go func() {
		s.sessions.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return err
}

func (s *Server) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	ip := clientIP(r)

	if !s.limiter.TryAcquire(ip) {
		logger.Warning("websocket rejected: connection limit", "client_ip", ip)
		http.Error(w, "Too many connections. Please try again later.", http.StatusTooManyRequests)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error
		logger.Debug("websocket upgrade failed", "client_ip", ip, "error", err)
		s.limiter.Release(ip)
		return
	}

	if !s.track(conn) {
		conn.Close()
		s.limiter.Release(ip)
		return
	}
	go s.session(conn, ip)
}

// track registers conn, refusing once shutdown has begun.
func (s *Server) track(conn *websocket.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.conns[conn] = struct{}{}
	s.sessions.Add(1)
	return true
}

func (s *Server) session(conn *websocket.Conn, ip string) {
	log := logger.With("client_ip", ip)
	defer func() {
		s.mu.Lock()
		delete(s.conns, conn)
		s.mu.Unlock()
		conn.Close()
		s.limiter.Release(ip)
		s.sessions.Done()
		log.Debug("websocket closed")
	}()

	if limit := s.cfg.WebSocket.MaxMessageSize; limit > 0 {
		conn.SetReadLimit(limit)
	}
	log.Debug("websocket opened")

	for {
		kind, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Info("websocket read failed", "error", err)
			}
			return
		}
		if kind != websocket.TextMessage {
			continue
		}

		var req Request
		var resp Response
		if err := json.Unmarshal(message, &req); err != nil {
			resp = Response{Error: "malformed request: " + err.Error()}
		} else {
			resp = s.Generate(context.Background(), req)
		}

		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(resp); err != nil {
			log.Info("websocket write failed", "error", err)
			return
		}
	}
}

// Generate serves one request: it applies the default configuration and the
// service limits, generates, and archives when an archive is attached.
func (s *Server) Generate(ctx context.Context, req Request) Response {
	cfg := s.cfg.Generation
	if req.Config != nil {
		cfg = *req.Config
	}
	if err := s.cfg.Limits.Check(cfg); err != nil {
		return Response{Error: err.Error()}
	}

	started := time.Now()
	d, err := dungeon.Generate(cfg, req.Seed)
	if err != nil {
		return Response{Error: err.Error()}
	}
	doc := export.NewDocument(d, req.Seed)

	logger.Info("dungeon generated",
		"seed", req.Seed,
		"width", doc.Width,
		"height", doc.Height,
		"rooms", len(doc.Rooms),
		"fingerprint", doc.Fingerprint,
		"elapsed", time.Since(started))

	resp := Response{Dungeon: doc}
	if s.archive != nil {
		id, created, err := s.archive.Save(ctx, cfg, doc)
		if err != nil {
			logger.Error("archive save failed", "fingerprint", doc.Fingerprint, "error", err)
			return resp
		}
		resp.ID = id
		if created {
			logger.Debug("dungeon archived", "id", id)
		}
	}
	return resp
}

// Connections reports the number of open sockets.
func (s *Server) Connections() int {
	total, _ := s.limiter.Stats()
	return total
}
