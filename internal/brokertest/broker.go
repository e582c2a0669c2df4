// Package brokertest runs an in-process KUKSA databroker for tests. It
// serves kuksa.val.v2, kuksa.val.v1 and sdv.databroker.v1 (Broker and
// Collector) from one signal store over a bufconn listener, so clients are
// exercised through the real codec, stubs and interceptors.
package brokertest

import (
	"context"
	"net"
	"sort"
	"sync"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/kuksa-sdk/kuksa-go/pkg/channel"
	"github.com/kuksa-sdk/kuksa-go/pkg/value"
	"github.com/kuksa-sdk/kuksa-go/pkg/wire"
	"github.com/kuksa-sdk/kuksa-go/pkg/wire/sdvv1"
	"github.com/kuksa-sdk/kuksa-go/pkg/wire/valv1"
	"github.com/kuksa-sdk/kuksa-go/pkg/wire/valv2"
)

const bufSize = 1 << 20

// Name and version reported by GetServerInfo.
const (
	ServerName    = "brokertest"
	ServerVersion = "0.1.0"
)

// Write records one value the broker accepted.
type Write struct {
	// Method is the full gRPC method that carried the write.
	Method string
	Path   string
	Target bool
	Value  value.Value
}

// Signal is the stored state of one signal.
type Signal struct {
	Metadata value.Metadata
	Current  value.Datapoint
	Target   value.Datapoint
}

type change struct {
	path   string
	target bool
	dp     value.Datapoint
}

type subscriber struct {
	paths  map[string]bool
	target bool
	ch     chan change
}

// Broker is a fake databroker.
type Broker struct {
	tb  testing.TB
	lis *bufconn.Listener
	srv *grpc.Server

	mu      sync.RWMutex
	signals map[string]*Signal
	nextID  int32
	fails   map[string]codes.Code
	writes  []Write
	subs    map[int]*subscriber
	nextSub int
	token   string
}

// New starts a broker holding signals and stops it when t finishes.
// Signals without an ID get the next free one; Access defaults to what
// the entry type allows.
func New(t testing.TB, signals ...value.Metadata) *Broker {
	t.Helper()
	b := &Broker{
		tb:      t,
		lis:     bufconn.Listen(bufSize),
		signals: make(map[string]*Signal),
		nextID:  1,
		fails:   make(map[string]codes.Code),
		subs:    make(map[int]*subscriber),
	}
	for _, md := range signals {
		b.Add(md)
	}
	b.srv = grpc.NewServer(
		wire.ServerOption(),
		grpc.ChainUnaryInterceptor(b.unaryAuth),
		grpc.ChainStreamInterceptor(b.streamAuth),
	)

	valv2.RegisterVALServer(b.srv, &v2Server{b: b})
	valv1.RegisterVALServer(b.srv, &v1Server{b: b})
	sdvv1.RegisterBrokerServer(b.srv, &sdvBroker{b: b})
	sdvv1.RegisterCollectorServer(b.srv, &sdvCollector{b: b})

	go func() { _ = b.srv.Serve(b.lis) }()
	t.Cleanup(b.srv.Stop)
	return b
}

// Add registers a signal and returns its id.
func (b *Broker) Add(md value.Metadata) int32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.addLocked(md)
}

func (b *Broker) addLocked(md value.Metadata) int32 {
	if s, ok := b.signals[md.Path]; ok {
		return s.Metadata.ID
	}
	if md.ID == 0 {
		md.ID = b.nextID
	}
	if md.ID >= b.nextID {
		b.nextID = md.ID + 1
	}
	if md.Access == 0 {
		md.Access = value.AccessFor(md.EntryType)
	}
	b.signals[md.Path] = &Signal{Metadata: md}
	return md.ID
}

// Dialer connects to the broker's in-memory listener.
func (b *Broker) Dialer() func(context.Context, string) (net.Conn, error) {
	return func(ctx context.Context, _ string) (net.Conn, error) {
		return b.lis.DialContext(ctx)
	}
}

// Config returns a channel configuration that reaches this broker.
func (b *Broker) Config() channel.Config {
	return channel.Config{
		Endpoint: "passthrough:///bufnet",
		Insecure: true,
		DialOptions: []grpc.DialOption{grpc.WithContextDialer(b.Dialer())},
	}
}

// Fail makes every later write to path fail. Each generation reports the
// failure its own way: kuksa.val.v2 with a status of code, kuksa.val.v1
// with an error record, the legacy generation with ACCESS_DENIED.
func (b *Broker) Fail(path string, code codes.Code) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fails[path] = code
}

// RequireToken makes the broker reject calls that do not carry
// "authorization: Bearer <token>".
func (b *Broker) RequireToken(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.token = token
}

func (b *Broker) authorize(ctx context.Context) error {
	b.mu.RLock()
	want := b.token
	b.mu.RUnlock()
	if want == "" {
		return nil
	}
	md, _ := metadata.FromIncomingContext(ctx)
	if got := md.Get("authorization"); len(got) != 1 || got[0] != "Bearer "+want {
		return status.Error(codes.Unauthenticated, "invalid token")
	}
	return nil
}

func (b *Broker) unaryAuth(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if err := b.authorize(ctx); err != nil {
		return nil, err
	}
	return handler(ctx, req)
}

func (b *Broker) streamAuth(srv any, ss grpc.ServerStream, _ *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	if err := b.authorize(ss.Context()); err != nil {
		return err
	}
	return handler(srv, ss)
}

// Set stores a current value and notifies subscribers, as a provider
// would. v must carry the signal's declared type.
func (b *Broker) Set(path string, v value.Value) {
	b.mu.Lock()
	defer b.mu.Unlock()
	s, ok := b.signals[path]
	if !ok {
		b.tb.Errorf("brokertest: Set of unknown signal %s", path)
		return
	}
	if err := value.CheckType(v, s.Metadata.DataType); err != nil {
		b.tb.Errorf("brokertest: Set %s: %v", path, err)
		return
	}
	b.storeLocked(s, false, value.Datapoint{Timestamp: time.Now(), Value: v})
}

// Signal returns a copy of the stored state of path.
func (b *Broker) Signal(path string) (Signal, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	s, ok := b.signals[path]
	if !ok {
		return Signal{}, false
	}
	return *s, true
}

// Writes returns every accepted write in arrival order.
func (b *Broker) Writes() []Write {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]Write(nil), b.writes...)
}

// WrittenPaths returns the paths of Writes in arrival order.
func (b *Broker) WrittenPaths() []string {
	ws := b.Writes()
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.Path
	}
	return out
}

func (b *Broker) lookup(path string) (*Signal, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	s, ok := b.signals[path]
	return s, ok
}

func (b *Broker) lookupID(id int32) (*Signal, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, s := range b.signals {
		if s.Metadata.ID == id {
			return s, true
		}
	}
	return nil, false
}

func (b *Broker) failure(path string) (codes.Code, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	c, ok := b.fails[path]
	return c, ok
}

// sorted returns all signals ordered by path.
func (b *Broker) sorted() []*Signal {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]*Signal, 0, len(b.signals))
	for _, s := range b.signals {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Metadata.Path < out[j].Metadata.Path })
	return out
}

// write records and stores dp, which callers have already cast to the
// signal's declared type.
func (b *Broker) write(method string, s *Signal, target bool, dp value.Datapoint) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if dp.Timestamp.IsZero() {
		dp.Timestamp = time.Now()
	}
	b.writes = append(b.writes, Write{Method: method, Path: s.Metadata.Path, Target: target, Value: dp.Value})
	b.storeLocked(s, target, dp)
}

func (b *Broker) storeLocked(s *Signal, target bool, dp value.Datapoint) {
	if target {
		s.Target = dp
	} else {
		s.Current = dp
	}
	c := change{path: s.Metadata.Path, target: target, dp: dp}
	for _, sub := range b.subs {
		if sub.target != target || !sub.paths[c.path] {
			continue
		}
		select {
		case sub.ch <- c:
		default:
		}
	}
}

// subscribe registers a subscriber and returns the snapshot of paths taken
// under the same lock, so no change between snapshot and registration is
// lost.
func (b *Broker) subscribe(paths []string, target bool) (id int, sub *subscriber, snapshot []change) {
	b.mu.Lock()
	defer b.mu.Unlock()
	sub = &subscriber{paths: make(map[string]bool, len(paths)), target: target, ch: make(chan change, 64)}
	for _, p := range paths {
		s, ok := b.signals[p]
		if !ok {
			continue
		}
		sub.paths[p] = true
		dp := s.Current
		if target {
			dp = s.Target
		}
		snapshot = append(snapshot, change{path: p, target: target, dp: dp})
	}
	id = b.nextSub
	b.nextSub++
	b.subs[id] = sub
	return id, sub, snapshot
}

func (b *Broker) unsubscribe(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs, id)
}

// serve pushes the snapshot and then every change to send until ctx ends.
func (b *Broker) serve(ctx context.Context, paths []string, target bool, send func([]change) error) error {
	id, sub, snapshot := b.subscribe(paths, target)
	defer b.unsubscribe(id)
	if err := send(snapshot); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case c := <-sub.ch:
			if err := send([]change{c}); err != nil {
				return err
			}
		}
	}
}
