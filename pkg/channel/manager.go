package channel

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/kuksa-sdk/kuksa-go/pkg/clienterr"
	"github.com/kuksa-sdk/kuksa-go/pkg/log"
	"github.com/kuksa-sdk/kuksa-go/pkg/wire"
)

// Manager owns the lazily created connection of one client handle.
type Manager struct {
	cfg      Config
	recorder *log.Recorder

	mu     sync.Mutex
	conn   *grpc.ClientConn
	cancel context.CancelFunc
}

// New creates a Manager. No connection is made until Channel is called.
func New(cfg Config) *Manager {
	return &Manager{
		cfg:      cfg,
		recorder: log.NewRecorder(cfg.CallLogger, uuid.NewString(), cfg.Endpoint),
	}
}

// ConnectionID identifies this Manager's connection in the call log.
func (m *Manager) ConnectionID() string { return m.recorder.ConnectionID() }

// Endpoint returns the configured target.
func (m *Manager) Endpoint() string { return m.cfg.Endpoint }

// Channel returns the connection, creating it on the first call.
func (m *Manager) Channel(ctx context.Context) (*grpc.ClientConn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.conn != nil {
		return m.conn, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, clienterr.Classify("connect", err)
	}
	if err := m.cfg.Validate(); err != nil {
		return nil, &clienterr.TransportError{Op: "connect", Code: codes.InvalidArgument, Err: err}
	}

	conn, err := grpc.NewClient(m.cfg.Endpoint, m.dialOptions()...)
	if err != nil {
		m.recorder.Error("connect", err)
		return nil, &clienterr.TransportError{Op: "connect", Code: codes.Unavailable, Err: err}
	}
	m.debugLog("channel created", "endpoint", m.cfg.Endpoint, "conn_id", m.ConnectionID())

	watchCtx, cancel := context.WithCancel(context.Background())
	m.conn, m.cancel = conn, cancel
	go m.watchState(watchCtx, conn)
	return conn, nil
}

func (m *Manager) dialOptions() []grpc.DialOption {
	var creds credentials.TransportCredentials
	if m.cfg.TLS != nil {
		creds = credentials.NewTLS(m.cfg.TLS)
	} else {
		creds = insecure.NewCredentials()
	}

	unary := []grpc.UnaryClientInterceptor{
		AuthInterceptor(m.cfg.Tokens),
		m.recorder.UnaryClientInterceptor(),
	}
	stream := []grpc.StreamClientInterceptor{
		AuthStreamInterceptor(m.cfg.Tokens),
		m.recorder.StreamClientInterceptor(),
	}
	if m.cfg.Metrics != nil {
		unary = append(unary, m.cfg.Metrics.UnaryClientInterceptor())
		stream = append(stream, m.cfg.Metrics.StreamClientInterceptor())
	}

	opts := []grpc.DialOption{
		grpc.WithTransportCredentials(creds),
		grpc.WithDefaultCallOptions(wire.CallOption()),
		grpc.WithChainUnaryInterceptor(unary...),
		grpc.WithChainStreamInterceptor(stream...),
	}
	return append(opts, m.cfg.DialOptions...)
}

// watchState records connectivity transitions in the call log until the
// Manager is closed.
func (m *Manager) watchState(ctx context.Context, conn *grpc.ClientConn) {
	state := conn.GetState()
	for {
		if !conn.WaitForStateChange(ctx, state) {
			return
		}
		next := conn.GetState()
		m.recorder.StateChange(state.String(), next.String(), "")
		m.debugLog("channel state", "from", state, "to", next)
		if next == connectivity.Shutdown {
			return
		}
		state = next
	}
}

// Close releases the connection. The Manager can be reused; the next
// call to Channel connects again.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.conn == nil {
		return nil
	}
	m.cancel()
	err := m.conn.Close()
	m.conn, m.cancel = nil, nil
	return err
}

func (m *Manager) debugLog(msg string, args ...any) {
	if m.cfg.Logger != nil {
		m.cfg.Logger.Debug(msg, args...)
	}
}
