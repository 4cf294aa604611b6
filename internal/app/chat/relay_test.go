package chat

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeMessageStore records SaveMessage calls and returns a fixed timestamp.
type fakeMessageStore struct {
	mu      sync.Mutex
	saved   []savedMessage
	sentAt  time.Time
	saveErr error
}

type savedMessage struct {
	senderID   int64
	receiverID int64
	content    string
}

func (f *fakeMessageStore) SaveMessage(_ context.Context, senderID, receiverID int64, content string) (time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return time.Time{}, f.saveErr
	}
	f.saved = append(f.saved, savedMessage{senderID, receiverID, content})
	return f.sentAt, nil
}

func TestRelay_PersistsAndPushes(t *testing.T) {
	req := require.New(t)

	sentAt := time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)
	store := &fakeMessageStore{sentAt: sentAt}
	registry := NewRegistry()
	relay := NewRelay(store, registry)

	recipient := &fakePusher{userID: 2, open: true}
	registry.Register(recipient)

	err := relay.Relay(context.Background(), 1, InboundFrame{ReceiverID: 2, Content: "hello"})
	req.NoError(err)

	req.Equal([]savedMessage{{senderID: 1, receiverID: 2, content: "hello"}}, store.saved)

	events := recipient.sentEvents()
	req.Len(events, 1)
	req.Equal(OutboundEvent{
		SenderID:   1,
		ReceiverID: 2,
		Content:    "hello",
		Timestamp:  sentAt,
	}, events[0])
}

func TestRelay_OfflineRecipient_PersistsOnly(t *testing.T) {
	req := require.New(t)

	store := &fakeMessageStore{sentAt: time.Now()}
	registry := NewRegistry()
	relay := NewRelay(store, registry)

	err := relay.Relay(context.Background(), 1, InboundFrame{ReceiverID: 7, Content: "see you"})
	req.NoError(err)
	req.Len(store.saved, 1)
}

func TestRelay_NonOpenRecipient_SkipsPush(t *testing.T) {
	req := require.New(t)

	store := &fakeMessageStore{sentAt: time.Now()}
	registry := NewRegistry()
	relay := NewRelay(store, registry)

	recipient := &fakePusher{userID: 2, open: false}
	registry.Register(recipient)

	err := relay.Relay(context.Background(), 1, InboundFrame{ReceiverID: 2, Content: "late"})
	req.NoError(err)
	req.Len(store.saved, 1)
	req.Empty(recipient.sentEvents())
}

func TestRelay_PersistFailure_NoPush(t *testing.T) {
	req := require.New(t)

	store := &fakeMessageStore{saveErr: errors.New("insert failed")}
	registry := NewRegistry()
	relay := NewRelay(store, registry)

	recipient := &fakePusher{userID: 2, open: true}
	registry.Register(recipient)

	err := relay.Relay(context.Background(), 1, InboundFrame{ReceiverID: 2, Content: "lost"})
	req.Error(err)
	req.Empty(recipient.sentEvents())
}

func TestRelay_PushFailure_Swallowed(t *testing.T) {
	req := require.New(t)

	store := &fakeMessageStore{sentAt: time.Now()}
	registry := NewRegistry()
	relay := NewRelay(store, registry)

	recipient := &fakePusher{userID: 2, open: true, sendErr: errors.New("write failed")}
	registry.Register(recipient)

	// The message is persisted, so a failed push is not an error.
	err := relay.Relay(context.Background(), 1, InboundFrame{ReceiverID: 2, Content: "flaky"})
	req.NoError(err)
	req.Len(store.saved, 1)
}
