package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/pollster/pkg/domain"
	"github.com/aretw0/pollster/pkg/ports"
	"github.com/aretw0/pollster/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SlowStore simulates latency to provoke race conditions if locking is missing.
type SlowStore struct {
	data map[string]domain.Session
	mu   sync.Mutex
}

func (s *SlowStore) Save(ctx context.Context, userID string, sess *domain.Session) error {
	time.Sleep(5 * time.Millisecond) // Simulate IO
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		s.data = make(map[string]domain.Session)
	}
	s.data[userID] = *sess
	return nil
}

func (s *SlowStore) Load(ctx context.Context, userID string) (*domain.Session, error) {
	time.Sleep(5 * time.Millisecond) // Simulate IO
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.data[userID]; ok {
		return &sess, nil
	}
	return nil, domain.ErrSessionNotFound
}

func (s *SlowStore) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, userID)
	return nil
}

func (s *SlowStore) List(ctx context.Context) ([]string, error) {
	return nil, nil
}

var _ ports.SessionStore = (*SlowStore)(nil)

func TestManager_WithSession_Serializes(t *testing.T) {
	store := &SlowStore{}
	manager := session.NewManager(store)
	ctx := context.Background()
	id := "race-test"

	// Each writer answers the pending question and moves the stage one step.
	// Lost updates would leave the stage behind the number of writers.
	answers := []domain.Answer{
		domain.AgeFiftyPlus,
		domain.StatusPositive,
		domain.InstrumentCrypto,
		domain.Funding1Mto5M,
	}
	var wg sync.WaitGroup
	writers := len(answers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := manager.WithSession(ctx, id, func(_ context.Context, s *domain.Session, _ bool) error {
				if err := s.Record.Set(answers[s.Stage]); err != nil {
					return err
				}
				s.Stage = s.Stage.Next()
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	s, err := store.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.Stage(writers), s.Stage)
}

func TestManager_WithSession_FreshOnlyOnce(t *testing.T) {
	manager := session.NewManager(&SlowStore{})
	ctx := context.Background()

	var fresh []bool
	for i := 0; i < 2; i++ {
		err := manager.WithSession(ctx, "u1", func(_ context.Context, _ *domain.Session, isNew bool) error {
			fresh = append(fresh, isNew)
			return nil
		})
		require.NoError(t, err)
	}
	assert.Equal(t, []bool{true, false}, fresh)
}

func TestManager_WithSession_ErrorDiscardsChanges(t *testing.T) {
	store := &SlowStore{}
	manager := session.NewManager(store)
	ctx := context.Background()
	boom := errors.New("boom")

	err := manager.WithSession(ctx, "u1", func(_ context.Context, s *domain.Session, _ bool) error {
		s.Stage = domain.StageComplete
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = store.Load(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestManager_WithSession_EmptyUser(t *testing.T) {
	manager := session.NewManager(&SlowStore{})
	err := manager.WithSession(context.Background(), "", func(context.Context, *domain.Session, bool) error {
		t.Fatal("callback must not run")
		return nil
	})
	assert.Error(t, err)
}

func TestManager_GetOrCreate(t *testing.T) {
	// Verify atomic creation
	store := &SlowStore{}
	manager := session.NewManager(store)
	ctx := context.Background()
	id := "atomic-init"

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := manager.GetOrCreate(ctx, id)
			assert.NoError(t, err)
			assert.NotNil(t, s)
		}()
	}
	wg.Wait()

	s, err := manager.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StageAwaitingAge, s.Stage)
	assert.Equal(t, id, s.UserID)
	assert.False(t, s.Record.IsSet(domain.QuestionAge))
}

func TestManager_RejectsInconsistentSession(t *testing.T) {
	store := &SlowStore{}
	manager := session.NewManager(store)
	ctx := context.Background()

	broken := domain.NewSession("u1")
	broken.Stage = domain.StageAwaitingContact
	require.NoError(t, store.Save(ctx, "u1", broken))

	_, err := manager.GetOrCreate(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrInconsistentSession)
}

type countingLocker struct {
	mu       sync.Mutex
	locked   int
	unlocked int
	ttl      time.Duration
}

func (l *countingLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	l.mu.Lock()
	l.locked++
	l.ttl = ttl
	l.mu.Unlock()
	return func(context.Context) error {
		l.mu.Lock()
		l.unlocked++
		l.mu.Unlock()
		return nil
	}, nil
}

func TestManager_DistributedLocker(t *testing.T) {
	locker := &countingLocker{}
	manager := session.NewManager(&SlowStore{}, session.WithLocker(locker), session.WithLockTTL(time.Second))

	_, err := manager.GetOrCreate(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, 1, locker.locked)
	assert.Equal(t, 1, locker.unlocked)
	assert.Equal(t, time.Second, locker.ttl)
}
