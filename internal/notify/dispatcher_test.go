package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recordingMailer struct {
	mu   sync.Mutex
	sent []Message
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *recordingMailer) messages() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Message, len(m.sent))
	copy(out, m.sent)
	return out
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestDispatcher_DeliversQueuedMessages(t *testing.T) {
	mailer := &recordingMailer{}
	d := NewDispatcher(mailer, 8, 2)
	assert.NoError(t, d.Start(context.Background()))
	defer d.Stop(context.Background())

	assert.NoError(t, d.Enqueue(Message{To: "a@example.com", Subject: "hi", Body: "one"}))
	assert.NoError(t, d.Enqueue(Message{To: "b@example.com", Subject: "hi", Body: "two"}))

	waitFor(t, func() bool { return len(mailer.messages()) == 2 })
}

func TestDispatcher_EnqueueDoesNotBlockWhenFull(t *testing.T) {
	// No workers started, so the queue fills up and stays full.
	d := NewDispatcher(&recordingMailer{}, 1, 1)

	assert.NoError(t, d.Enqueue(Message{To: "a@example.com"}))

	err := d.Enqueue(Message{To: "b@example.com"})
	assert.ErrorIs(t, err, ErrQueueFull)
}

func TestDispatcher_MailerFailureIsSwallowed(t *testing.T) {
	mailer := &recordingMailer{err: errors.New("smtp down")}
	d := NewDispatcher(mailer, 8, 1)
	assert.NoError(t, d.Start(context.Background()))
	defer d.Stop(context.Background())

	// Enqueue succeeds regardless of what the mailer will do with it.
	assert.NoError(t, d.Enqueue(Message{To: "a@example.com"}))

	// Give the worker a moment to attempt delivery and fail.
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, mailer.messages())
}

func TestDispatcher_SendOrderCreatedBody(t *testing.T) {
	mailer := &recordingMailer{}
	d := NewDispatcher(mailer, 8, 1)
	assert.NoError(t, d.Start(context.Background()))
	defer d.Stop(context.Background())

	d.SendOrderCreated("buyer@example.com", "order-1", "30.00")

	waitFor(t, func() bool { return len(mailer.messages()) == 1 })
	msg := mailer.messages()[0]
	assert.Equal(t, "buyer@example.com", msg.To)
	assert.Contains(t, msg.Body, "order-1")
	assert.Contains(t, msg.Body, "30.00")
}

func TestDispatcher_StartTwice(t *testing.T) {
	d := NewDispatcher(&recordingMailer{}, 1, 1)
	assert.NoError(t, d.Start(context.Background()))
	defer d.Stop(context.Background())

	assert.Error(t, d.Start(context.Background()))
}
