package log

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"google.golang.org/grpc/codes"
)

func createTestLogFile(t *testing.T, events []Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.klog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create test log: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()

	return path
}

func readAll(t *testing.T, r *Reader) []Event {
	t.Helper()
	var read []Event
	for {
		event, err := r.Next()
		if err == io.EOF {
			return read
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		read = append(read, event)
	}
}

func callEvent(conn, method string, code codes.Code) Event {
	return Event{
		Timestamp:    time.Now(),
		ConnectionID: conn,
		Direction:    DirectionOut,
		Category:     CategoryCall,
		Call:         &CallEvent{Method: method, Code: code, Duration: time.Millisecond},
	}
}

func TestReaderIteratesEvents(t *testing.T) {
	events := []Event{
		callEvent("conn-1", "/kuksa.val.v2.VAL/GetValue", codes.OK),
		callEvent("conn-2", "/kuksa.val.v2.VAL/PublishValue", codes.OK),
		{Timestamp: time.Now(), ConnectionID: "conn-3", Category: CategoryState, StateChange: &StateChangeEvent{NewState: "READY"}},
	}
	path := createTestLogFile(t, events)

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	read := readAll(t, reader)
	if len(read) != 3 {
		t.Fatalf("got %d events, want 3", len(read))
	}
	if read[0].ConnectionID != "conn-1" {
		t.Errorf("first event ConnectionID = %q, want %q", read[0].ConnectionID, "conn-1")
	}
	if read[2].StateChange == nil || read[2].StateChange.NewState != "READY" {
		t.Errorf("last event StateChange = %+v, want READY", read[2].StateChange)
	}
}

func TestReaderHandlesEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.klog")
	logger, _ := NewFileLogger(path)
	logger.Close()

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	if event, err := reader.Next(); err != io.EOF {
		t.Errorf("expected io.EOF, got err=%v, event=%+v", err, event)
	}
}

func TestReaderHandlesTruncatedFile(t *testing.T) {
	path := createTestLogFile(t, []Event{
		callEvent("conn-1", "/kuksa.val.v1.VAL/Get", codes.OK),
		callEvent("conn-1", "/kuksa.val.v1.VAL/Set", codes.OK),
	})
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data[:len(data)-3], 0644); err != nil {
		t.Fatal(err)
	}

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	read := readAll(t, reader)
	if len(read) != 1 {
		t.Fatalf("got %d events, want the 1 complete event", len(read))
	}
}

func TestReaderFilter(t *testing.T) {
	start := time.Now()
	events := []Event{
		callEvent("conn-A", "/kuksa.val.v2.VAL/GetValue", codes.OK),
		callEvent("conn-B", "/kuksa.val.v2.VAL/GetValue", codes.NotFound),
		callEvent("conn-A", "/kuksa.val.v1.VAL/Get", codes.Unavailable),
		{Timestamp: time.Now(), ConnectionID: "conn-A", Direction: DirectionIn, Category: CategoryStream,
			Stream: &StreamEvent{Method: "/kuksa.val.v2.VAL/Subscribe", Kind: StreamMessage, Sequence: 1}},
		{Timestamp: time.Now(), ConnectionID: "conn-C", Category: CategoryError,
			Error: &ErrorEventData{Message: "token file missing", Context: "authorize"}},
	}
	path := createTestLogFile(t, events)

	out := DirectionOut
	stream := CategoryStream
	later := start.Add(time.Hour)

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"all", Filter{}, 5},
		{"connection", Filter{ConnectionID: "conn-A"}, 3},
		{"method substring", Filter{Method: "GetValue"}, 2},
		{"generation", Filter{Method: "kuksa.val.v1"}, 1},
		{"direction", Filter{Direction: &out}, 3},
		{"category", Filter{Category: &stream}, 1},
		{"failed only", Filter{FailedOnly: true}, 3},
		{"failed on conn-A", Filter{ConnectionID: "conn-A", FailedOnly: true}, 1},
		{"time window", Filter{TimeStart: &later}, 0},
		{"time end", Filter{TimeEnd: &later}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader, err := NewFilteredReader(path, tt.filter)
			if err != nil {
				t.Fatalf("NewFilteredReader failed: %v", err)
			}
			defer reader.Close()

			if got := len(readAll(t, reader)); got != tt.want {
				t.Errorf("got %d events, want %d", got, tt.want)
			}
		})
	}
}

func TestReaderMissingFile(t *testing.T) {
	if _, err := NewReader(filepath.Join(t.TempDir(), "nope.klog")); err == nil {
		t.Error("expected error for missing file")
	}
}
