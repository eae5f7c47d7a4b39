package testutil_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/horizon/internal/engine"
	"github.com/roach88/horizon/internal/testutil"
)

var _ engine.SeqSource = (*testutil.DeterministicClock)(nil)

func TestDeterministicClock(t *testing.T) {
	tests := []struct {
		name  string
		clock *testutil.DeterministicClock
		want  []int64
	}{
		{"fresh", testutil.NewDeterministicClock(), []int64{1, 2, 3}},
		{"resumed", testutil.NewDeterministicClockAt(41), []int64{42, 43}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []int64
			for range tt.want {
				got = append(got, tt.clock.Next())
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want[len(tt.want)-1], tt.clock.Current())
		})
	}
}

func TestDeterministicClock_Reset(t *testing.T) {
	clock := testutil.NewDeterministicClockAt(7)
	clock.Reset()

	assert.Equal(t, int64(0), clock.Current())
	assert.Equal(t, int64(1), clock.Next())
}

func TestDeterministicClock_ConcurrentSeqsAreUnique(t *testing.T) {
	clock := testutil.NewDeterministicClock()
	const workers, perWorker = 50, 40

	var (
		mu   sync.Mutex
		seen = make(map[int64]bool, workers*perWorker)
		wg   sync.WaitGroup
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWorker {
				seq := clock.Next()
				mu.Lock()
				seen[seq] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*perWorker)
	assert.Equal(t, int64(workers*perWorker), clock.Current())
}
