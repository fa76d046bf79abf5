package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raksonibs/waffle/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "waffle.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testAccount(username string) *domain.Account {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.Account{
		ID:       "acct-" + username,
		Name:     "Office 365",
		Username: username,
		Strategy: domain.StrategyOffice,
		OAuth: &domain.TokenBundle{
			AccessToken: "tok-" + username,
			IDToken:     "idt-" + username,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestStore_CreateAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	account := testAccount("alice@example.com")
	account.DeltaToken = "aaaabbbbccccddddeeeeffff00001111"
	require.NoError(t, store.Create(ctx, account))

	got, err := store.Get(ctx, "alice@example.com")
	require.NoError(t, err)

	assert.Equal(t, account.ID, got.ID)
	assert.Equal(t, account.Name, got.Name)
	assert.Equal(t, account.Username, got.Username)
	assert.Equal(t, domain.StrategyOffice, got.Strategy)
	assert.Equal(t, account.DeltaToken, got.DeltaToken)
	require.NotNil(t, got.OAuth)
	assert.Equal(t, "tok-alice@example.com", got.OAuth.AccessToken)
	assert.Equal(t, "idt-alice@example.com", got.OAuth.IDToken)
}

func TestStore_Create_Duplicate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, testAccount("alice@example.com")))

	dup := testAccount("alice@example.com")
	dup.ID = "acct-other"
	err := store.Create(ctx, dup)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestStore_Get_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_Get_NoOAuth(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	account := testAccount("alice@example.com")
	account.OAuth = nil
	require.NoError(t, store.Create(ctx, account))

	got, err := store.Get(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Nil(t, got.OAuth)
}

func TestStore_List(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := testAccount("alice@example.com")
	second := testAccount("bob@example.com")
	second.CreatedAt = first.CreatedAt.Add(time.Minute)
	require.NoError(t, store.Create(ctx, first))
	require.NoError(t, store.Create(ctx, second))

	accounts, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "alice@example.com", accounts[0].Username)
	assert.Equal(t, "bob@example.com", accounts[1].Username)
}

func TestStore_List_Empty(t *testing.T) {
	store := newTestStore(t)

	accounts, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestStore_Update(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	account := testAccount("alice@example.com")
	require.NoError(t, store.Create(ctx, account))

	account.DeltaToken = "aaaabbbbccccddddeeeeffff00001111"
	account.OAuth.AccessToken = "tok-refreshed"
	require.NoError(t, store.Update(ctx, account))

	got, err := store.Get(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "aaaabbbbccccddddeeeeffff00001111", got.DeltaToken)
	assert.Equal(t, "tok-refreshed", got.OAuth.AccessToken)
	assert.False(t, got.UpdatedAt.Before(got.CreatedAt))
}

func TestStore_Update_RenamesUsername(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	account := testAccount("alice@example.com")
	require.NoError(t, store.Create(ctx, account))

	// Reauthentication may report a different canonical address for the
	// same account; the row is keyed by ID so the rename sticks.
	account.Username = "alice.renamed@example.com"
	require.NoError(t, store.Update(ctx, account))

	_, err := store.Get(ctx, "alice@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := store.Get(ctx, "alice.renamed@example.com")
	require.NoError(t, err)
	assert.Equal(t, account.ID, got.ID)
}

func TestStore_Update_NotFound(t *testing.T) {
	store := newTestStore(t)

	err := store.Update(context.Background(), testAccount("nobody@example.com"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_Delete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, testAccount("alice@example.com")))
	require.NoError(t, store.Delete(ctx, "alice@example.com"))

	_, err := store.Get(ctx, "alice@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_Delete_NotFound(t *testing.T) {
	store := newTestStore(t)

	err := store.Delete(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
