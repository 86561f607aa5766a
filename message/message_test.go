package message

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/chatroom/contract"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestSendRejectsEmptyContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "empty",
			content: "",
		},
		{
			name:    "spaces only",
			content: "   ",
		},
		{
			name:    "tabs and newlines",
			content: "\t\n \r\n",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			// the guard runs before any store access, nil client must be safe
			_, err := Send(context.Background(), nil, "a_b", "a", "a@b.com", test.content)
			if !errors.Is(err, ErrEmptyMessage) {
				t.Errorf("Send(%q) = %v; want ErrEmptyMessage", test.content, err)
			}
		})
	}
}

func TestPreview(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "plain text unchanged",
			content:  "hi",
			expected: "hi",
		},
		{
			name:     "markdown is not rewritten",
			content:  "**bold** and _italic_",
			expected: "**bold** and _italic_",
		},
		{
			name:     "newlines are preserved",
			content:  "line one\n\nline two",
			expected: "line one\n\nline two",
		},
		{
			name:     "whitespace runs are preserved",
			content:  strings.Repeat("a", 100) + strings.Repeat(" ", 150) + "b",
			expected: strings.Repeat("a", 100) + strings.Repeat(" ", 100),
		},
		{
			name:     "exactly at the limit",
			content:  strings.Repeat("b", 200),
			expected: strings.Repeat("b", 200),
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := preview(test.content); got != test.expected {
				t.Errorf("preview(%q) = %q; want %q", test.content, got, test.expected)
			}
		})
	}
}

func TestPreviewTruncation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "long ascii",
			content: strings.Repeat("a", 250),
		},
		{
			name:    "long multibyte",
			content: strings.Repeat("世", 210),
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := preview(test.content)
			if utf8.RuneCountInString(got) != previewLimit {
				t.Errorf("preview of %d runes has length %d; want exactly %d",
					utf8.RuneCountInString(test.content), utf8.RuneCountInString(got), previewLimit)
			}
			if !strings.HasPrefix(test.content, got) {
				t.Errorf("preview is not a prefix of the content: %q", got[:20])
			}
		})
	}
}

// fakeSnapshots replays scripted message lists, then ends with final.
type fakeSnapshots struct {
	snapshots [][]contract.Message
	final     error
	stopped   bool
}

func (f *fakeSnapshots) next() ([]contract.Message, error) {
	if len(f.snapshots) == 0 {
		return nil, f.final
	}
	msgs := f.snapshots[0]
	f.snapshots = f.snapshots[1:]
	return msgs, nil
}

func (f *fakeSnapshots) stop() { f.stopped = true }

func TestSubscribeDeliversEmptyRoom(t *testing.T) {
	src := &fakeSnapshots{
		snapshots: [][]contract.Message{{}},
		final:     status.Error(codes.Canceled, "listener torn down"),
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := subscribe(ctx, cancel, src)
	defer s.Stop()

	msgs, ok := <-s.Updates()
	if !ok {
		t.Fatal("subscription closed before the initial snapshot")
	}
	if msgs == nil {
		t.Error("empty room delivered a nil list; want an empty one")
	}
	if len(msgs) != 0 {
		t.Errorf("empty room delivered %d messages; want 0", len(msgs))
	}

	if _, ok := <-s.Updates(); ok {
		t.Error("subscription still open after the listener ended")
	}
	if s.Err() != nil {
		t.Errorf("Err after a cancelled listener = %v; want nil", s.Err())
	}
	if !src.stopped {
		t.Error("listener was not stopped when the subscription ended")
	}
}

func TestSubscribeDeliversFullListPerChange(t *testing.T) {
	first := []contract.Message{
		{ID: "m1", Content: "hi", SenderUID: "a"},
	}
	second := []contract.Message{
		{ID: "m1", Content: "hi", SenderUID: "a"},
		{ID: "m2", Content: "hello", SenderUID: "b"},
	}
	src := &fakeSnapshots{
		snapshots: [][]contract.Message{first, second},
		final:     status.Error(codes.Canceled, "listener torn down"),
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := subscribe(ctx, cancel, src)
	defer s.Stop()

	for i, expected := range [][]contract.Message{first, second} {
		got, ok := <-s.Updates()
		if !ok {
			t.Fatalf("subscription closed before snapshot %d", i+1)
		}
		if !reflect.DeepEqual(got, expected) {
			t.Errorf("snapshot %d = %v; want %v", i+1, got, expected)
		}
	}
	if s.Err() != nil {
		t.Errorf("Err = %v; want nil", s.Err())
	}
}

func TestSubscribeSurfacesListenerFailure(t *testing.T) {
	listenerErr := errors.New("listener failed")
	src := &fakeSnapshots{final: listenerErr}
	ctx, cancel := context.WithCancel(context.Background())
	s := subscribe(ctx, cancel, src)
	defer s.Stop()

	if _, ok := <-s.Updates(); ok {
		t.Fatal("subscription delivered a snapshot after the listener failed")
	}
	if !errors.Is(s.Err(), listenerErr) {
		t.Errorf("Err = %v; want %v", s.Err(), listenerErr)
	}
}

func TestSubscriptionStopIsIdempotent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Subscription{
		updates: make(chan []contract.Message),
		cancel:  cancel,
	}

	s.Stop()
	s.Stop() // second call must be a no-op

	select {
	case <-ctx.Done():
	default:
		t.Error("Stop did not cancel the subscription context")
	}
	if s.Err() != nil {
		t.Errorf("Err after Stop = %v; want nil", s.Err())
	}
}
