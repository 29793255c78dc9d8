package core

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettle(t *testing.T) {
	f := Settle(42, nil)

	require.True(t, f.Settled())
	v, settled, err := f.TryGet()
	assert.True(t, settled)
	assert.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestFailed(t *testing.T) {
	boom := errors.New("boom")
	f := Failed[[]byte](boom)

	v, settled, err := f.TryGet()
	assert.True(t, settled)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, v)
}

func TestGo(t *testing.T) {
	release := make(chan struct{})
	f := Go(func() (string, error) {
		<-release
		return "done", nil
	})

	_, settled, err := f.TryGet()
	assert.False(t, settled)
	assert.NoError(t, err)

	close(release)
	v, err := f.Wait()
	require.NoError(t, err)
	assert.Equal(t, "done", v)
	assert.True(t, f.Settled())
}

func TestAwait_ContextCancelled(t *testing.T) {
	f := Go(func() (int, error) {
		select {}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := f.Await(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestThen_SettledRunsInline(t *testing.T) {
	f := Then(Resolved(7), func(v int) (string, error) {
		return strconv.Itoa(v), nil
	})

	// Mapping an already settled future must not introduce asynchrony.
	require.True(t, f.Settled())
	v, err := f.Wait()
	require.NoError(t, err)
	assert.Equal(t, "7", v)
}

func TestThen_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	called := false
	f := Then(Failed[int](boom), func(v int) (int, error) {
		called = true
		return v, nil
	})

	_, err := f.Wait()
	assert.ErrorIs(t, err, boom)
	assert.False(t, called)
}

func TestThen_Pending(t *testing.T) {
	release := make(chan struct{})
	src := Go(func() (int, error) {
		<-release
		return 2, nil
	})
	f := Then(src, func(v int) (int, error) { return v * 2, nil })

	close(release)
	v, err := f.Wait()
	require.NoError(t, err)
	assert.Equal(t, 4, v)
}

func TestRecover(t *testing.T) {
	f := Recover(Failed[bool](errors.New("stat failed")), func(error) (bool, error) {
		return false, nil
	})
	require.True(t, f.Settled())
	v, err := f.Wait()
	require.NoError(t, err)
	assert.False(t, v)

	ok := Recover(Resolved(true), func(error) (bool, error) {
		t.Fatal("recover must not run on success")
		return false, nil
	})
	v, err = ok.Wait()
	require.NoError(t, err)
	assert.True(t, v)
}

func TestRecover_Pending(t *testing.T) {
	src := Go(func() ([]string, error) {
		return nil, errors.New("list failed")
	})
	f := Recover(src, func(error) ([]string, error) {
		return []string{}, nil
	})

	v, err := f.Wait()
	require.NoError(t, err)
	assert.Empty(t, v)
}
