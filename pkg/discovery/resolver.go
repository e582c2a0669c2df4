package discovery

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"net"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/enbility/zeroconf/v3"
	"google.golang.org/grpc"
	"google.golang.org/grpc/resolver"
)

const (
	// Scheme is the gRPC target scheme served by Builder.
	Scheme = "mdns"

	// DefaultService is browsed when the target names no service.
	DefaultService = "_kuksa._tcp"

	// Domain is the DNS-SD browse domain.
	Domain = "local."
)

// ErrNoInstances is reported to the channel when the last advertised
// instance disappears.
var ErrNoInstances = errors.New("discovery: no databroker instances advertised")

// Builder creates mDNS resolvers.
type Builder struct {
	// Interface limits browsing to one network interface. Empty browses
	// all multicast interfaces.
	Interface string

	// Logger receives debug output. Nil disables logging.
	Logger *slog.Logger
}

// NewBuilder returns a Builder for iface.
func NewBuilder(iface string, logger *slog.Logger) *Builder {
	return &Builder{Interface: iface, Logger: logger}
}

// DialOption installs the builder on a single channel without touching
// the global resolver registry.
func (b *Builder) DialOption() grpc.DialOption {
	return grpc.WithResolvers(b)
}

func (b *Builder) Scheme() string { return Scheme }

// Build starts browsing for the service named by target.
func (b *Builder) Build(target resolver.Target, cc resolver.ClientConn, _ resolver.BuildOptions) (resolver.Resolver, error) {
	service := ServiceOf(target)
	ctx, cancel := context.WithCancel(context.Background())
	r := &mdnsResolver{
		cc:       cc,
		cancel:   cancel,
		service:  service,
		logger:   b.Logger,
		services: make(map[string]*instance),
	}

	entries := make(chan *zeroconf.ServiceEntry)
	removed := make(chan *zeroconf.ServiceEntry)
	go r.run(ctx, entries, removed)
	go func() {
		if err := zeroconf.Browse(ctx, service, Domain, entries, removed, b.clientOptions()...); err != nil {
			r.debugLog("browse failed", "service", service, "error", err)
			cc.ReportError(err)
		}
	}()
	r.debugLog("browsing", "service", service, "interface", b.Interface)
	return r, nil
}

func (b *Builder) clientOptions() []zeroconf.ClientOption {
	var opts []zeroconf.ClientOption
	if b.Interface != "" {
		if iface, err := net.InterfaceByName(b.Interface); err == nil {
			opts = append(opts, zeroconf.SelectIfaces([]net.Interface{*iface}))
		}
	}
	return opts
}

// ServiceOf returns the DNS-SD service type named by target.
func ServiceOf(target resolver.Target) string {
	s := strings.Trim(target.Endpoint(), "/")
	if s == "" {
		return DefaultService
	}
	return s
}

// instance is one advertised databroker.
type instance struct {
	name  string
	host  string
	port  int
	addrs []string
}

func instanceOf(e *zeroconf.ServiceEntry) instance {
	in := instance{name: e.Instance, host: e.HostName, port: e.Port}
	for _, ip := range e.AddrIPv4 {
		in.addrs = append(in.addrs, ip.String())
	}
	for _, ip := range e.AddrIPv6 {
		in.addrs = append(in.addrs, ip.String())
	}
	return in
}

type mdnsResolver struct {
	cc      resolver.ClientConn
	cancel  context.CancelFunc
	service string
	logger  *slog.Logger

	mu       sync.Mutex
	services map[string]*instance
}

func (r *mdnsResolver) run(ctx context.Context, entries, removed <-chan *zeroconf.ServiceEntry) {
	for {
		select {
		case e, ok := <-entries:
			if !ok {
				return
			}
			r.add(instanceOf(e))
		case e, ok := <-removed:
			if !ok {
				removed = nil
				continue
			}
			r.remove(instanceOf(e))
		case <-ctx.Done():
			return
		}
	}
}

// add merges in into the table and pushes a new state when anything
// changed.
func (r *mdnsResolver) add(in instance) {
	r.mu.Lock()
	existing, found := r.services[in.name]
	changed := false
	switch {
	case !found:
		r.services[in.name] = &in
		changed = len(in.addrs) > 0
	case existing.port != in.port:
		existing.port, existing.addrs = in.port, in.addrs
		changed = true
	default:
		before := len(existing.addrs)
		existing.addrs = mergeAddresses(existing.addrs, in.addrs)
		changed = len(existing.addrs) != before
	}
	state := r.stateLocked()
	r.mu.Unlock()

	if changed {
		r.debugLog("instance updated", "instance", in.name, "host", in.host, "addresses", len(state.Addresses))
		r.push(state)
	}
}

func (r *mdnsResolver) remove(in instance) {
	r.mu.Lock()
	existing, found := r.services[in.name]
	if !found {
		r.mu.Unlock()
		return
	}
	existing.addrs = removeAddresses(existing.addrs, in.addrs)
	if len(existing.addrs) == 0 {
		delete(r.services, in.name)
	}
	state := r.stateLocked()
	r.mu.Unlock()

	r.debugLog("instance removed", "instance", in.name, "addresses", len(state.Addresses))
	r.push(state)
}

func (r *mdnsResolver) push(state resolver.State) {
	if len(state.Addresses) == 0 {
		r.cc.ReportError(ErrNoInstances)
		return
	}
	if err := r.cc.UpdateState(state); err != nil {
		r.debugLog("update state", "error", err)
	}
}

func (r *mdnsResolver) stateLocked() resolver.State {
	var state resolver.State
	for _, name := range slices.Sorted(maps.Keys(r.services)) {
		in := r.services[name]
		for _, a := range in.addrs {
			state.Addresses = append(state.Addresses, resolver.Address{Addr: net.JoinHostPort(a, strconv.Itoa(in.port))})
		}
	}
	return state
}

// ResolveNow is a no-op; mDNS announcements are pushed as they arrive.
func (r *mdnsResolver) ResolveNow(resolver.ResolveNowOptions) {}

func (r *mdnsResolver) Close() {
	r.cancel()
}

func (r *mdnsResolver) debugLog(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Debug(msg, args...)
	}
}

// mergeAddresses appends the addresses of add not yet in existing.
func mergeAddresses(existing, add []string) []string {
	for _, a := range add {
		if !slices.Contains(existing, a) {
			existing = append(existing, a)
		}
	}
	return existing
}

func removeAddresses(addrs, drop []string) []string {
	return slices.DeleteFunc(addrs, func(a string) bool {
		return slices.Contains(drop, a)
	})
}
