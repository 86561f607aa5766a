package message

import (
	"context"
	"sync"

	"cloud.google.com/go/firestore"
	"github.com/chatroom/contract"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Subscription is a live view of one chatroom's message history. Every store
// change delivers the complete ordered list again (the initial load included),
// never a diff. It ends when Stop is called, the parent context is cancelled,
// or the listener fails.
type Subscription struct {
	updates chan []contract.Message
	cancel  context.CancelFunc
	once    sync.Once
	err     error
}

// snapshotSource yields the full ordered message list per store snapshot.
// The *firestore.QuerySnapshotIterator sits behind it in production.
type snapshotSource interface {
	next() ([]contract.Message, error)
	stop()
}

type querySource struct {
	snaps *firestore.QuerySnapshotIterator
}

func (q querySource) next() ([]contract.Message, error) {
	snap, err := q.snaps.Next()
	if err != nil {
		return nil, err
	}
	return collectMessages(snap)
}

func (q querySource) stop() { q.snaps.Stop() }

// Subscribe opens a snapshot listener on the room's messages, ordered by
// server timestamp ascending. A room with no messages delivers an empty list.
func Subscribe(ctx context.Context, client *firestore.Client, roomID string) *Subscription {
	ctx, cancel := context.WithCancel(ctx)
	snaps := client.Collection(contract.RoomCollection).
		Doc(roomID).
		Collection(contract.MessageCollection).
		OrderBy("timestamp", firestore.Asc).
		Snapshots(ctx)

	return subscribe(ctx, cancel, querySource{snaps: snaps})
}

func subscribe(ctx context.Context, cancel context.CancelFunc, src snapshotSource) *Subscription {
	s := &Subscription{
		updates: make(chan []contract.Message),
		cancel:  cancel,
	}
	go s.pump(ctx, src)
	return s
}

// Updates yields the full ordered message list on every change. The channel
// is closed when the subscription ends; check Err afterwards.
func (s *Subscription) Updates() <-chan []contract.Message {
	return s.updates
}

// Stop tears the subscription down. Safe to call more than once.
func (s *Subscription) Stop() {
	s.once.Do(s.cancel)
}

// Err reports why the subscription ended. It is valid once Updates is closed
// and returns nil after a plain Stop or context cancellation.
func (s *Subscription) Err() error {
	return s.err
}

func (s *Subscription) pump(ctx context.Context, src snapshotSource) {
	defer close(s.updates)
	defer src.stop()

	for {
		msgs, err := src.next()
		if err != nil {
			if status.Code(err) != codes.Canceled {
				s.err = err
			}
			return
		}
		select {
		case s.updates <- msgs:
		case <-ctx.Done():
			return
		}
	}
}
