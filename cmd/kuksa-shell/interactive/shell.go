// Package interactive provides the interactive command-line interface
// for kuksa-shell.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chzyer/readline"

	"github.com/kuksa-sdk/kuksa-go/pkg/forward"
	"github.com/kuksa-sdk/kuksa-go/pkg/kuksa"
	"github.com/kuksa-sdk/kuksa-go/pkg/metrics"
	"github.com/kuksa-sdk/kuksa-go/pkg/value"
)

// ErrNoSinks is returned by the forward command when the profile
// configures no sinks.
var ErrNoSinks = errors.New("no forwarding sinks configured")

// Options configures a Shell.
type Options struct {
	// Endpoint is shown by the info command.
	Endpoint string

	// OpenSinks opens the forwarding sinks for one forward command. Nil
	// disables forwarding.
	OpenSinks func(ctx context.Context) ([]forward.Sink, error)

	Metrics *metrics.Metrics
	Logger  *slog.Logger

	// Out receives command output when the shell is not attached to a
	// terminal.
	Out io.Writer
}

// stream is an active subscribe or forward command.
type stream struct {
	kind  string
	paths []string
	sub   *kuksa.Subscription[[]value.Entry]
	done  chan struct{}
}

// Shell runs commands against one broker.
type Shell struct {
	client kuksa.Unified
	opts   Options
	rl     *readline.Instance

	outMu sync.Mutex
	out   io.Writer

	mu      sync.Mutex
	nextID  int
	streams map[int]*stream
	types   map[string]value.DataType
}

// New creates a shell over client. Output goes to opts.Out until Attach
// connects a terminal.
func New(client kuksa.Unified, opts Options) *Shell {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	return &Shell{
		client:  client,
		opts:    opts,
		out:     out,
		nextID:  1,
		streams: make(map[int]*stream),
		types:   make(map[string]value.DataType),
	}
}

// Attach connects the shell to the terminal.
func (s *Shell) Attach() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "kuksa> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    completer(),
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	s.rl = rl
	s.outMu.Lock()
	s.out = rl.Stdout()
	s.outMu.Unlock()
	return nil
}

// Stdout returns a writer that coordinates with the prompt. Use it for
// log output.
func (s *Shell) Stdout() io.Writer {
	if s.rl != nil {
		return s.rl.Stdout()
	}
	return s.out
}

// SetLogger replaces the logger handed to forwarders started later.
func (s *Shell) SetLogger(logger *slog.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts.Logger = logger
}

func completer() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("get"),
		readline.PcItem("target"),
		readline.PcItem("set"),
		readline.PcItem("actuate"),
		readline.PcItem("meta"),
		readline.PcItem("subscribe"),
		readline.PcItem("unsubscribe"),
		readline.PcItem("forward"),
		readline.PcItem("info"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
}

// Run reads commands until quit, EOF or ctx is done. Attach must have
// been called.
func (s *Shell) Run(ctx context.Context, cancel context.CancelFunc) {
	defer s.rl.Close()
	defer s.closeStreams()

	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			s.printf("Exiting...\n")
			cancel()
			return
		}

		if !s.Exec(ctx, line) {
			s.printf("Exiting...\n")
			cancel()
			return
		}
	}
}

// Exec runs one command line. It returns false when the line asks the
// shell to quit.
func (s *Shell) Exec(ctx context.Context, line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return true
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	var err error
	switch cmd {
	case "help", "?":
		s.printHelp()
	case "get", "g":
		err = s.cmdGet(ctx, args, false)
	case "target", "t":
		err = s.cmdGet(ctx, args, true)
	case "set", "s":
		err = s.cmdSet(ctx, input, false)
	case "actuate", "a":
		err = s.cmdSet(ctx, input, true)
	case "meta", "m":
		err = s.cmdMeta(ctx, args)
	case "subscribe", "sub":
		err = s.cmdSubscribe(ctx, args)
	case "forward", "fwd":
		err = s.cmdForward(ctx, args)
	case "unsubscribe", "unsub":
		err = s.cmdUnsubscribe(args)
	case "info":
		s.cmdInfo()
	case "quit", "exit", "q":
		s.closeStreams()
		return false
	default:
		s.printf("Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	if err != nil {
		s.printf("Error: %v\n", err)
	}
	return true
}

func (s *Shell) printHelp() {
	s.printf(`
KUKSA Shell Commands:
  Values:
    get <path>...              - Read current values
    target <path>...           - Read target values
    set <path> <value>         - Publish a current value
    actuate <path> <value>     - Request a target value
    meta <path>...             - Show signal metadata

  Streams:
    subscribe <path>...        - Print current value updates
    forward <path>...          - Forward updates to the configured sinks
    unsubscribe <id>           - Stop a subscription or forward

  General:
    info                       - Show connection details and streams
    help                       - Show this help
    quit                       - Exit shell

  Value Format:
    scalars as typed (42, 1.5, true, text), arrays in brackets:
    [1, 2, 3] or ["a", "b"]
`)
}

func (s *Shell) printf(format string, args ...any) {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	fmt.Fprintf(s.out, format, args...)
}

func (s *Shell) cmdGet(ctx context.Context, paths []string, target bool) error {
	if len(paths) == 0 {
		return errors.New("usage: get <path>...")
	}

	var (
		entries []value.Entry
		err     error
	)
	if target {
		entries, err = s.client.GetTargetValues(ctx, paths)
	} else {
		entries, err = s.client.GetCurrentValues(ctx, paths)
	}
	if err != nil {
		return err
	}
	for _, e := range entries {
		dp := e.Value
		if target {
			dp = e.Target
		}
		s.printf("  %s = %s\n", e.Path, formatDatapoint(dp))
	}
	return nil
}

// cmdSet handles set and actuate. The value is the rest of the line after
// the path so string and array values may contain spaces.
func (s *Shell) cmdSet(ctx context.Context, input string, target bool) error {
	path, text, ok := splitSetArgs(input)
	if !ok {
		if target {
			return errors.New("usage: actuate <path> <value>")
		}
		return errors.New("usage: set <path> <value>")
	}

	t, err := s.dataType(ctx, path)
	if err != nil {
		return err
	}
	v, err := value.ParseValue(text, t)
	if err != nil {
		return err
	}

	if target {
		_, err = s.client.SetTargetValues(ctx, []kuksa.Update[value.Value]{{Path: path, Value: v}})
	} else {
		dp := value.Datapoint{Timestamp: time.Now(), Value: v}
		_, err = s.client.SetCurrentValues(ctx, []kuksa.Update[value.Datapoint]{{Path: path, Value: dp}})
	}
	if err != nil {
		return err
	}
	s.printf("  %s <- %s (%s)\n", path, value.Format(v), t)
	return nil
}

// splitSetArgs splits "cmd path value text" into path and value text.
func splitSetArgs(input string) (path, text string, ok bool) {
	_, rest, ok := strings.Cut(input, " ")
	if !ok {
		return "", "", false
	}
	path, text, ok = strings.Cut(strings.TrimSpace(rest), " ")
	if !ok {
		return "", "", false
	}
	text = strings.TrimSpace(text)
	return path, text, text != ""
}

// dataType returns the broker's data type for path, cached per session.
func (s *Shell) dataType(ctx context.Context, path string) (value.DataType, error) {
	s.mu.Lock()
	t, ok := s.types[path]
	s.mu.Unlock()
	if ok {
		return t, nil
	}

	md, err := s.client.GetMetadata(ctx, []string{path})
	if err != nil {
		return 0, err
	}
	for _, m := range md {
		if m.Path == path {
			s.mu.Lock()
			s.types[path] = m.DataType
			s.mu.Unlock()
			return m.DataType, nil
		}
	}
	return 0, fmt.Errorf("no metadata for %s", path)
}

func (s *Shell) cmdMeta(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return errors.New("usage: meta <path>...")
	}

	md, err := s.client.GetMetadata(ctx, paths)
	if err != nil {
		return err
	}
	for _, m := range md {
		s.printf("  %s\n", m.Path)
		s.printf("    Type:   %s %s\n", m.EntryType, m.DataType)
		s.printf("    Access: %s\n", m.Access)
		if m.ID != 0 {
			s.printf("    ID:     %d\n", m.ID)
		}
		if m.Unit != "" {
			s.printf("    Unit:   %s\n", m.Unit)
		}
		if !m.Min.IsEmpty() || !m.Max.IsEmpty() {
			s.printf("    Range:  [%s, %s]\n", value.Format(m.Min), value.Format(m.Max))
		}
		if !m.AllowedValues.IsEmpty() {
			s.printf("    Allowed: %s\n", value.Format(m.AllowedValues))
		}
		if m.Description != "" {
			s.printf("    %s\n", m.Description)
		}
	}
	return nil
}

func (s *Shell) cmdSubscribe(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return errors.New("usage: subscribe <path>...")
	}

	sub, err := s.client.SubscribeCurrentValues(context.WithoutCancel(ctx), paths)
	if err != nil {
		return err
	}
	id, st := s.addStream("subscribe", paths, sub)
	s.printf("Subscription %d started\n", id)

	go func() {
		defer close(st.done)
		for entries, err := range sub.Updates() {
			if err != nil {
				if !errors.Is(err, kuksa.ErrSubscriptionClosed) {
					s.printf("[SUB %d] ended: %v\n", id, err)
				}
				return
			}
			for _, e := range entries {
				s.printf("[SUB %d] %s = %s\n", id, e.Path, formatDatapoint(e.Value))
			}
		}
		s.printf("[SUB %d] ended by broker\n", id)
	}()
	return nil
}

func (s *Shell) cmdForward(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return errors.New("usage: forward <path>...")
	}
	if s.opts.OpenSinks == nil {
		return ErrNoSinks
	}

	sinks, err := s.opts.OpenSinks(ctx)
	if err != nil {
		return err
	}
	if len(sinks) == 0 {
		return ErrNoSinks
	}

	sub, err := s.client.SubscribeCurrentValues(context.WithoutCancel(ctx), paths)
	if err != nil {
		for _, sink := range sinks {
			_ = sink.Close()
		}
		return err
	}

	s.mu.Lock()
	logger := s.opts.Logger
	s.mu.Unlock()
	fwd := forward.New(string(s.client.Generation()), sinks, s.opts.Metrics, logger)
	id, st := s.addStream("forward", paths, sub)

	names := make([]string, len(sinks))
	for i, sink := range sinks {
		names[i] = sink.Name()
	}
	s.printf("Forward %d started (sinks: %s)\n", id, strings.Join(names, ", "))

	go func() {
		defer close(st.done)
		if err := fwd.Run(context.WithoutCancel(ctx), sub); err != nil {
			s.printf("[FWD %d] ended: %v\n", id, err)
		}
		if err := fwd.Close(); err != nil {
			s.printf("[FWD %d] close: %v\n", id, err)
		}
	}()
	return nil
}

func (s *Shell) cmdUnsubscribe(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: unsubscribe <id>")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid id: %s", args[0])
	}

	s.mu.Lock()
	st, ok := s.streams[id]
	delete(s.streams, id)
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("no stream %d", id)
	}

	st.sub.Close()
	<-st.done
	s.printf("Stream %d stopped\n", id)
	return nil
}

func (s *Shell) cmdInfo() {
	s.printf("Endpoint:   %s\n", s.opts.Endpoint)
	s.printf("Generation: %s\n", s.client.Generation())

	s.mu.Lock()
	ids := make([]int, 0, len(s.streams))
	for id := range s.streams {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	lines := make([]string, 0, len(ids))
	for _, id := range ids {
		st := s.streams[id]
		lines = append(lines, fmt.Sprintf("  %d  %-9s %s", id, st.kind, strings.Join(st.paths, " ")))
	}
	s.mu.Unlock()

	if len(lines) == 0 {
		s.printf("Streams:    none\n")
		return
	}
	s.printf("Streams:\n")
	for _, l := range lines {
		s.printf("%s\n", l)
	}
}

func (s *Shell) addStream(kind string, paths []string, sub *kuksa.Subscription[[]value.Entry]) (int, *stream) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	st := &stream{kind: kind, paths: paths, sub: sub, done: make(chan struct{})}
	s.streams[id] = st
	return id, st
}

func (s *Shell) closeStreams() {
	s.mu.Lock()
	streams := s.streams
	s.streams = make(map[int]*stream)
	s.mu.Unlock()

	for _, st := range streams {
		st.sub.Close()
		<-st.done
	}
}

func formatDatapoint(dp *value.Datapoint) string {
	if dp == nil || !dp.HasValue() {
		return "(not available)"
	}
	out := value.Format(dp.Value)
	if dp.Value.Type() == value.DataTypeString {
		out = strconv.Quote(out)
	}
	if !dp.Timestamp.IsZero() {
		out += "  @ " + dp.Timestamp.Format(time.RFC3339Nano)
	}
	return out
}
