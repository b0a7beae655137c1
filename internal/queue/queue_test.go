package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRoundTrip(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := NewInMemory(4)
	require.NoError(t, q.Publish(ctx, EncodeJob{StudentID: 1, PhotoURL: "https://cdn/a.jpg"}))
	require.NoError(t, q.Publish(ctx, EncodeJob{StudentID: 2, PhotoURL: "https://cdn/b.jpg"}))

	jobs, err := q.Consume(ctx)
	require.NoError(t, err)

	first := <-jobs
	assert.Equal(t, int64(1), first.StudentID)
	second := <-jobs
	assert.Equal(t, int64(2), second.StudentID)
	assert.Equal(t, "https://cdn/b.jpg", second.PhotoURL)
}

func TestInMemoryPublishHonorsContext(t *testing.T) {
	q := NewInMemory(1)
	require.NoError(t, q.Publish(context.Background(), EncodeJob{StudentID: 1}))

	// Queue full, publish must give up when the context is cancelled.
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := q.Publish(ctx, EncodeJob{StudentID: 2})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestInMemoryConsumeStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	q := NewInMemory(1)

	jobs, err := q.Consume(ctx)
	require.NoError(t, err)
	cancel()

	select {
	case _, open := <-jobs:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("consumer channel not closed after cancel")
	}
}
