package inflight

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "", Key("", "get_available_slots"))
	assert.Equal(t, "s1|get_available_slots", Key("s1", "get_available_slots"))
}

func TestTracker_NewerCancelsOlder(t *testing.T) {
	tr := NewTracker()
	key := Key("s1", "get_available_slots")

	ctx1, tok1, release1 := tr.Begin(context.Background(), key)
	defer release1()
	ctx2, tok2, release2 := tr.Begin(context.Background(), key)
	defer release2()

	require.ErrorIs(t, ctx1.Err(), context.Canceled)
	assert.NoError(t, ctx2.Err())
	assert.False(t, tr.IsCurrent(key, tok1))
	assert.True(t, tr.IsCurrent(key, tok2))
}

func TestTracker_DifferentKeysIndependent(t *testing.T) {
	tr := NewTracker()

	ctx1, tok1, release1 := tr.Begin(context.Background(), Key("s1", "get_available_slots"))
	defer release1()
	ctx2, _, release2 := tr.Begin(context.Background(), Key("s2", "get_available_slots"))
	defer release2()

	assert.NoError(t, ctx1.Err())
	assert.NoError(t, ctx2.Err())
	assert.True(t, tr.IsCurrent(Key("s1", "get_available_slots"), tok1))
	assert.Equal(t, 2, tr.Len())
}

func TestTracker_ReleaseDoesNotDropNewerGeneration(t *testing.T) {
	tr := NewTracker()
	key := Key("s1", "get_date_availability")

	_, _, release1 := tr.Begin(context.Background(), key)
	_, tok2, release2 := tr.Begin(context.Background(), key)

	release1()
	assert.True(t, tr.IsCurrent(key, tok2))

	release2()
	assert.False(t, tr.IsCurrent(key, tok2))
	assert.Equal(t, 0, tr.Len())
}

func TestTracker_UntrackedAlwaysCurrent(t *testing.T) {
	tr := NewTracker()
	parent := context.Background()

	ctx, tok, release := tr.Begin(parent, "")
	release()

	assert.Equal(t, parent, ctx)
	assert.True(t, tr.IsCurrent("", tok))
	assert.Equal(t, 0, tr.Len())
}

func TestTracker_Concurrent(t *testing.T) {
	tr := NewTracker()
	key := Key("s1", "get_available_slots")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, release := tr.Begin(context.Background(), key)
			release()
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, tr.Len())
}
