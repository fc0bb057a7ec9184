package bridges

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"

	"github.com/picosim/picosim/logs"
	"github.com/picosim/picosim/syncs"
	"golang.org/x/net/websocket"
)

// Sandbox is the execution host as seen from the transport: a message sink
// and a message stream. The transport never observes host state directly.
type Sandbox interface {
	Send(Message)
	Events() <-chan Message
}

// Server carries the bridge protocol over a WebSocket endpoint. The host
// owns a single interpreter, so only one client holds the bridge at a
// time; later connections are refused with an ERROR frame.
type Server struct {
	logger  logs.Logger
	sandbox Sandbox
	clients syncs.Semaphore
}

func NewServer(
	logger logs.Logger,
	sandbox Sandbox,
) *Server {
	return &Server{
		logger:  logger,
		sandbox: sandbox,
		clients: syncs.NewSemaphore(1),
	}
}

// Handler serves the bridge at the returned endpoint.
func (s *Server) Handler() http.Handler {
	return websocket.Handler(s.serve)
}

func (s *Server) serve(conn *websocket.Conn) {
	defer conn.Close()

	if !s.clients.TryAcquire() {
		s.logger.Warn("bridge busy, refusing client",
			"remote", conn.Request().RemoteAddr,
		)
		websocket.JSON.Send(conn, Error("bridge already in use"))
		return
	}
	defer s.clients.Release()

	ctx, cancel := context.WithCancel(conn.Request().Context())
	defer cancel()

	s.logger.Info("client connected",
		"remote", conn.Request().RemoteAddr,
	)

	// host to client
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-s.sandbox.Events():
				if err := websocket.JSON.Send(conn, msg); err != nil {
					cancel()
					return
				}
			}
		}
	}()

	// client to host
	for {
		var msg Message
		if err := websocket.JSON.Receive(conn, &msg); err != nil {
			if !errors.Is(err, io.EOF) && ctx.Err() == nil {
				s.logger.Info("client read ended",
					"error", err,
				)
			}
			break
		}
		s.sandbox.Send(msg)
	}

	// a disconnecting client leaves nothing running
	s.sandbox.Send(Stop())
	s.logger.Info("client disconnected")
}

// ListenAndServe serves the bridge on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/bridge", s.Handler())

	server := &http.Server{
		Addr:    addr,
		Handler: mux,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		<-ctx.Done()
		server.Shutdown(context.Background())
	}()

	s.logger.Info("bridge listening",
		"addr", addr,
	)
	err := server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
