package content

import (
	"errors"
	"sync"
	"testing"

	"github.com/igegov/cv-portfolio/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetAndReplace(t *testing.T) {
	initial := &types.CVData{Hero: types.Hero{Name: "First"}}
	store := NewStore(initial)

	cv, rev, updated := store.Snapshot()
	assert.Same(t, initial, cv)
	assert.Equal(t, 1, rev)
	assert.False(t, updated.IsZero())

	next := &types.CVData{Hero: types.Hero{Name: "Second"}}
	rev, err := store.Replace(next)
	require.NoError(t, err)
	assert.Equal(t, 2, rev)
	assert.Same(t, next, store.Get())
}

func TestStore_ReplaceRejectsInvalid(t *testing.T) {
	initial := &types.CVData{Hero: types.Hero{Name: "First"}}
	store := NewStore(initial)

	_, err := store.Replace(&types.CVData{})
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))

	_, err = store.Replace(nil)
	require.True(t, errors.As(err, &validationErr))

	_, rev, _ := store.Snapshot()
	assert.Equal(t, 1, rev)
	assert.Same(t, initial, store.Get())
}

func TestStore_ConcurrentAccess(t *testing.T) {
	store := NewStore(&types.CVData{Hero: types.Hero{Name: "n"}})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = store.Replace(&types.CVData{Hero: types.Hero{Name: "w"}})
		}()
		go func() {
			defer wg.Done()
			assert.NotNil(t, store.Get())
		}()
	}
	wg.Wait()

	_, rev, _ := store.Snapshot()
	assert.Equal(t, 9, rev)
}

func TestErrors_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	assert.ErrorIs(t, &LoadError{Message: "m", Cause: cause}, cause)
	assert.ErrorIs(t, &ValidationError{Message: "m", Cause: cause}, cause)
	assert.Equal(t, "load error: m", (&LoadError{Message: "m"}).Error())
	assert.Equal(t, "validation error: m", (&ValidationError{Message: "m"}).Error())
}
