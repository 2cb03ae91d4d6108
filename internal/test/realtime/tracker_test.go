package realtime_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"designsight-backend/internal/realtime"
)

func TestTracker_CountsAndNotifies(t *testing.T) {
	tracker := realtime.NewTracker()

	var seen []int
	unsubscribe := tracker.Subscribe(func(count int) {
		seen = append(seen, count)
	})

	tracker.Inc()
	tracker.Inc()
	assert.True(t, tracker.Active())
	assert.Equal(t, 2, tracker.Count())

	tracker.Dec()
	tracker.Dec()
	assert.False(t, tracker.Active())

	assert.Equal(t, []int{1, 2, 1, 0}, seen)

	unsubscribe()
	tracker.Inc()
	assert.Equal(t, []int{1, 2, 1, 0}, seen)
}

func TestTracker_NeverNegative(t *testing.T) {
	tracker := realtime.NewTracker()

	calls := 0
	tracker.Subscribe(func(int) { calls++ })

	tracker.Dec()
	tracker.Dec()

	assert.Equal(t, 0, tracker.Count())
	assert.Equal(t, 0, calls, "decrement at zero does not notify")

	tracker.Inc()
	assert.Equal(t, 1, tracker.Count())
}

func TestTracker_MultipleSubscribers(t *testing.T) {
	tracker := realtime.NewTracker()

	var a, b int
	tracker.Subscribe(func(c int) { a = c })
	unsubB := tracker.Subscribe(func(c int) { b = c })

	tracker.Inc()
	assert.Equal(t, 1, a)
	assert.Equal(t, 1, b)

	unsubB()
	tracker.Inc()
	assert.Equal(t, 2, a)
	assert.Equal(t, 1, b)
}
