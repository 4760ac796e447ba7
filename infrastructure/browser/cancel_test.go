package browser

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestCancellable_ReturnsCallResult(t *testing.T) {
	aborted := false
	abort := func() { aborted = true }

	assert.NoError(t, cancellable(context.Background(), abort, func() error { return nil }))

	boom := errors.New("element detached")
	assert.ErrorIs(t, cancellable(context.Background(), abort, func() error { return boom }), boom)
	assert.False(t, aborted)
}

func TestCancellable_CancelAbortsBlockedCall(t *testing.T) {
	// the "browser" call blocks until its page is torn down
	pageClosed := make(chan struct{})
	returned := make(chan struct{})
	call := func() error {
		defer close(returned)
		<-pageClosed
		return errors.New("target closed")
	}

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	start := time.Now()
	err := cancellable(ctx, func() { close(pageClosed) }, call)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("blocked call did not unwind after abort")
	}
}

func TestCancellable_AlreadyCancelledNeverCalls(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := cancellable(ctx, nil, func() error { called = true; return nil })

	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
