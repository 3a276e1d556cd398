package memory

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	domain "user-registry-service/internal/domain/user"
	pkgerrors "user-registry-service/pkg/errors"
)

func setupRegistry(t *testing.T) *UserRegistry {
	return NewUserRegistry(zaptest.NewLogger(t))
}

func mustCreate(t *testing.T, r *UserRegistry, username string, age int) *domain.User {
	t.Helper()
	u, err := r.Create(context.Background(), &domain.User{Username: username, Age: age})
	require.NoError(t, err)
	return u
}

func TestUserRegistry_Create_SequentialIDs(t *testing.T) {
	r := setupRegistry(t)

	for want := int64(1); want <= 5; want++ {
		u := mustCreate(t, r, "user", 20)
		assert.Equal(t, want, u.ID)
	}
	assert.Equal(t, 5, r.Len())
}

func TestUserRegistry_Create_IgnoresClientID(t *testing.T) {
	r := setupRegistry(t)

	u, err := r.Create(context.Background(), &domain.User{ID: 99, Username: "alice", Age: 30})
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
}

func TestUserRegistry_Create_NextIDFollowsMax(t *testing.T) {
	r := setupRegistry(t)
	mustCreate(t, r, "a", 20)
	mustCreate(t, r, "b", 20)
	mustCreate(t, r, "c", 20)

	// Removing a middle record does not change the max.
	_, err := r.Delete(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(4), mustCreate(t, r, "d", 20).ID)

	// Removing the max frees its id for the next create.
	_, err = r.Delete(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, int64(4), mustCreate(t, r, "e", 20).ID)
}

func TestUserRegistry_Create_Nil(t *testing.T) {
	r := setupRegistry(t)

	_, err := r.Create(context.Background(), nil)
	assert.Error(t, err)
	assert.Equal(t, 0, r.Len())
}

func TestUserRegistry_List_InsertionOrder(t *testing.T) {
	r := setupRegistry(t)
	mustCreate(t, r, "a", 20)
	mustCreate(t, r, "b", 21)
	mustCreate(t, r, "c", 22)
	_, err := r.Delete(context.Background(), 3)
	require.NoError(t, err)
	_, err = r.Delete(context.Background(), 1)
	require.NoError(t, err)
	mustCreate(t, r, "d", 23) // id 3
	mustCreate(t, r, "e", 24) // id 4

	users, err := r.List(context.Background())
	require.NoError(t, err)

	var names []string
	var ids []int64
	for _, u := range users {
		names = append(names, u.Username)
		ids = append(ids, u.ID)
	}
	assert.Equal(t, []string{"b", "d", "e"}, names)
	assert.Equal(t, []int64{2, 3, 4}, ids)
}

func TestUserRegistry_List_ReturnsSnapshot(t *testing.T) {
	r := setupRegistry(t)
	mustCreate(t, r, "alice", 30)

	users, err := r.List(context.Background())
	require.NoError(t, err)
	users[0].Username = "mallory"

	got, err := r.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
}

func TestUserRegistry_List_Empty(t *testing.T) {
	r := setupRegistry(t)

	users, err := r.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestUserRegistry_GetByID(t *testing.T) {
	r := setupRegistry(t)
	created := mustCreate(t, r, "alice", 30)

	got, err := r.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = r.GetByID(context.Background(), 42)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestUserRegistry_Update(t *testing.T) {
	r := setupRegistry(t)
	mustCreate(t, r, "alice", 30)
	mustCreate(t, r, "bob", 25)

	updated, err := r.Update(context.Background(), &domain.User{ID: 1, Username: "alicia", Age: 31})
	require.NoError(t, err)
	assert.Equal(t, &domain.User{ID: 1, Username: "alicia", Age: 31}, updated)

	users, err := r.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.User{
		{ID: 1, Username: "alicia", Age: 31},
		{ID: 2, Username: "bob", Age: 25},
	}, users)
}

func TestUserRegistry_Update_NotFoundLeavesCollection(t *testing.T) {
	r := setupRegistry(t)
	mustCreate(t, r, "alice", 30)
	before, err := r.List(context.Background())
	require.NoError(t, err)

	_, err = r.Update(context.Background(), &domain.User{ID: 7, Username: "ghost", Age: 40})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))

	after, err := r.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestUserRegistry_Delete(t *testing.T) {
	r := setupRegistry(t)
	mustCreate(t, r, "alice", 30)
	bob := mustCreate(t, r, "bob", 25)

	removed, err := r.Delete(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, bob, removed)

	users, err := r.List(context.Background())
	require.NoError(t, err)
	for _, u := range users {
		assert.NotEqual(t, int64(2), u.ID)
	}

	_, err = r.Delete(context.Background(), 2)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestUserRegistry_ConcurrentCreate(t *testing.T) {
	r := setupRegistry(t)
	const n = 200

	var wg sync.WaitGroup
	ids := make(chan int64, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			u, err := r.Create(context.Background(), &domain.User{Username: "user", Age: 20})
			if err == nil {
				ids <- u.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	var got []int64
	for id := range ids {
		got = append(got, id)
	}
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })

	require.Len(t, got, n)
	for i, id := range got {
		assert.Equal(t, int64(i+1), id)
	}
}

func BenchmarkUserRegistry_Create(b *testing.B) {
	r := NewUserRegistry(zap.NewNop())
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := r.Create(ctx, &domain.User{Username: "bench", Age: 30}); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkUserRegistry_List(b *testing.B) {
	r := NewUserRegistry(zap.NewNop())
	ctx := context.Background()
	for i := 0; i < 1000; i++ {
		if _, err := r.Create(ctx, &domain.User{Username: "bench", Age: 30}); err != nil {
			b.Fatal(err)
		}
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := r.List(ctx); err != nil {
				b.Fatal(err)
			}
		}
	})
}
