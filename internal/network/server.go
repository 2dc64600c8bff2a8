package network

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"

	"github.com/leengari/groupgrid/internal/config"
	"github.com/leengari/groupgrid/internal/domain/data"
	"github.com/leengari/groupgrid/internal/engine"
	"github.com/leengari/groupgrid/internal/grouping"
)

// Request asks the server to group and render one grid
type Request struct {
	Command string          `json:"command,omitempty"` // "exit" closes the connection
	Rows    json.RawMessage `json:"rows,omitempty"`
	Columns []config.Column `json:"columns,omitempty"`
	Config  *config.Grid    `json:"config,omitempty"`
	Format  string          `json:"format,omitempty"`
}

// Response carries the rendered output and the change map it was built from
type Response struct {
	PassID  string              `json:"pass_id,omitempty"`
	Output  string              `json:"output,omitempty"`
	Entries *grouping.ChangeMap `json:"entries,omitempty"`
	Error   string              `json:"error,omitempty"`
}

// Start starts the TCP grid server
func Start(port int) {
	addr := fmt.Sprintf(":%d", port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		slog.Error("Failed to bind to port", "port", port, "error", err)
		return
	}
	defer listener.Close()

	slog.Info("Running on port", "port", port)

	if err := Serve(listener); err != nil {
		slog.Error("server stopped", "error", err)
	}
}

// Serve accepts connections until the listener is closed
func Serve(listener net.Listener) error {
	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			slog.Error("Failed to accept connection", "error", err)
			continue
		}
		go handleConnection(conn)
	}
}

func handleConnection(conn net.Conn) {
	defer conn.Close()

	gridEngine := engine.New()

	// Register logging observer for lifecycle tracing
	gridEngine.AddObserver(engine.NewLoggingObserver())

	decoder := json.NewDecoder(conn)
	encoder := json.NewEncoder(conn)

	for {
		var req Request
		if err := decoder.Decode(&req); err != nil {
			if err == io.EOF {
				return // Connection closed gracefully
			}
			slog.Error("decode error", "error", err)

			_ = encoder.Encode(&Response{
				Error: fmt.Sprintf("Invalid request format: %v", err),
			})
			return
		}

		if req.Command == "exit" {
			return
		}

		if err := encoder.Encode(handle(gridEngine, req)); err != nil {
			slog.Error("encode error", "error", err)
			return
		}
	}
}

func handle(e *engine.Engine, req Request) *Response {
	if req.Command != "" && req.Command != "render" {
		return &Response{Error: fmt.Sprintf("unknown command %q", req.Command)}
	}

	var rows []data.Row
	if len(req.Rows) > 0 {
		var err error
		rows, err = data.RowsFromJSON(req.Rows)
		if err != nil {
			return &Response{Error: fmt.Sprintf("invalid rows: %v", err)}
		}
	}

	result, err := e.Run(engine.Request{
		Rows:    rows,
		Columns: req.Columns,
		Grid:    req.Config,
		Format:  req.Format,
	})
	if err != nil {
		return &Response{Error: err.Error()}
	}

	return &Response{
		PassID:  result.PassID,
		Output:  result.Output,
		Entries: result.Changes,
	}
}
