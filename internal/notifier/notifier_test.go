package notifier

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingNotifier struct {
	messages []Message
	err      error
}

func (r *recordingNotifier) Send(_ context.Context, msg Message) error {
	r.messages = append(r.messages, msg)
	return r.err
}

func TestMultiNotifier(t *testing.T) {
	failing := &recordingNotifier{err: errors.New("smtp down")}
	working := &recordingNotifier{}
	multi := NewMultiNotifier(failing, nil, working)

	assert.Equal(t, 2, multi.Len())

	err := multi.Send(context.Background(), Message{Subject: "s", Body: "b"})
	assert.EqualError(t, err, "smtp down")
	assert.Len(t, failing.messages, 1)
	assert.Len(t, working.messages, 1, "later notifiers still receive the message")
}

func TestMultiNotifier_Empty(t *testing.T) {
	assert.NoError(t, NewMultiNotifier().Send(context.Background(), Message{}))
	assert.NoError(t, NopNotifier{}.Send(context.Background(), Message{}))
}
