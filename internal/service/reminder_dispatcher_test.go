package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rasd-app/rasd-api/internal/models"
	"github.com/rasd-app/rasd-api/pkg/config"
)

type messageWriterStub struct {
	mu       sync.Mutex
	messages []models.Message
}

func (s *messageWriterStub) Create(ctx context.Context, msg *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, *msg)
	return nil
}

func (s *messageWriterStub) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

func TestReminderDispatcherWritesThroughQueue(t *testing.T) {
	store := &messageWriterStub{}
	dispatcher := NewReminderDispatcher(store, config.RemindersConfig{}, nil)
	dispatcher.Start(context.Background())
	defer dispatcher.Stop()

	msg := models.Message{RecipientTeacher: "Ali", Body: "please enter today's sessions for class 3A"}
	require.NoError(t, dispatcher.Dispatch(context.Background(), msg))

	require.Eventually(t, func() bool { return store.count() == 1 }, time.Second, 10*time.Millisecond)

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Equal(t, "Ali", store.messages[0].RecipientTeacher)
	assert.Equal(t, msg.Body, store.messages[0].Body)
}

func TestReminderDispatcherRequiresStart(t *testing.T) {
	dispatcher := NewReminderDispatcher(&messageWriterStub{}, config.RemindersConfig{}, nil)

	err := dispatcher.Dispatch(context.Background(), models.Message{RecipientTeacher: "Ali"})
	require.Error(t, err)
}
