package network

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"

	"github.com/leengari/queryviz/internal/engine"
)

// ErrorResponse is sent in place of a frame when a request fails
type ErrorResponse struct {
	Error string `json:"error"`
}

// Server gives every connection a controller of its own over a shared engine
type Server struct {
	engine    *engine.Engine
	observers []engine.Observer
}

func NewServer(eng *engine.Engine, observers ...engine.Observer) *Server {
	return &Server{engine: eng, observers: observers}
}

// Start starts the TCP server and blocks until ctx is done
func (s *Server) Start(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind to port %d: %w", port, err)
	}

	slog.Info("Running on port", "port", port)
	return s.Serve(ctx, listener)
}

// Serve accepts connections on listener until ctx is done. It closes the
// listener before returning.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	defer listener.Close()

	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			slog.Error("Failed to accept connection", "error", err)
			continue
		}
		go s.handleConnection(ctx, conn)
	}
}

func (s *Server) handleConnection(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// close the socket on shutdown so a blocked Decode returns
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	ctrl := s.engine.NewController()
	defer ctrl.Close()

	// Register logging observer for lifecycle tracing
	ctrl.AddObserver(engine.NewLoggingObserver())
	for _, o := range s.observers {
		ctrl.AddObserver(o)
	}

	slog.Info("client connected", "remote", conn.RemoteAddr().String(), "session_id", ctrl.SessionID())

	// Use Decoder instead of Scanner for network streams
	decoder := json.NewDecoder(conn)
	encoder := json.NewEncoder(conn)

	for {
		var req engine.Command
		// Decode directly from the connection
		if err := decoder.Decode(&req); err != nil {
			if err == io.EOF || ctx.Err() != nil {
				return // Connection closed gracefully
			}
			slog.Error("decode error", "error", err, "session_id", ctrl.SessionID())

			// Send error back to client
			_ = encoder.Encode(ErrorResponse{
				Error: fmt.Sprintf("Invalid request format: %v", err),
			})
			return
		}

		if req.Name == "exit" || req.Name == "\\q" {
			return
		}

		frame, err := ctrl.Dispatch(ctx, req)
		if err != nil {
			if err := encoder.Encode(ErrorResponse{Error: err.Error()}); err != nil {
				slog.Error("encode error", "error", err)
				return
			}
			continue
		}

		if err := encoder.Encode(frame); err != nil {
			slog.Error("encode error", "error", err)
			return
		}
	}
}
