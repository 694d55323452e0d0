package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatfin/finbot/internal/model"
)

func TestStore_PutGetDelete(t *testing.T) {
	store := NewStore(time.Minute)
	defer store.Close()

	_, ok := store.Get(1)
	assert.False(t, ok)

	session := &model.DialogSession{
		State: model.StateAwaitingCategory,
		Queue: []model.PendingTransaction{{Amount: 500, Type: model.TypeExpense}},
	}
	store.Put(1, session)

	got, ok := store.Get(1)
	require.True(t, ok)
	assert.Equal(t, model.StateAwaitingCategory, got.State)
	require.Len(t, got.Queue, 1)
	assert.InDelta(t, 500, got.Queue[0].Amount, 1e-9)

	// Sessions are per user.
	_, ok = store.Get(2)
	assert.False(t, ok)

	store.Delete(1)
	_, ok = store.Get(1)
	assert.False(t, ok)
}

func TestStore_Expiry(t *testing.T) {
	store := NewStore(20 * time.Millisecond)
	defer store.Close()

	store.Put(1, &model.DialogSession{State: model.StateAwaitingCategory})

	_, ok := store.Get(1)
	require.True(t, ok)

	time.Sleep(40 * time.Millisecond)

	_, ok = store.Get(1)
	assert.False(t, ok, "expired session must behave like a cancelled dialog")
}

func TestStore_PutResetsTTL(t *testing.T) {
	store := NewStore(50 * time.Millisecond)
	defer store.Close()

	store.Put(1, &model.DialogSession{State: model.StateAwaitingCategory})
	time.Sleep(30 * time.Millisecond)

	// Re-putting extends the deadline past the original expiry.
	store.Put(1, &model.DialogSession{State: model.StateAwaitingCategory})
	time.Sleep(30 * time.Millisecond)

	_, ok := store.Get(1)
	assert.True(t, ok)
}

func TestStore_DefaultTTL(t *testing.T) {
	store := NewStore(0)
	defer store.Close()

	assert.Equal(t, 15*time.Minute, store.ttl)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	store := NewStore(time.Minute)
	defer store.Close()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				store.Put(userID, &model.DialogSession{State: model.StateAwaitingCategory})
				store.Get(userID)
				store.Delete(userID)
			}
		}(int64(i % 5))
	}
	wg.Wait()
}
