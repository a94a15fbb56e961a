package cli

import (
	"bytes"
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer guards a buffer written by the watch loop and read by the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatchCmd_RequiresFile(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "watch")

	assert.Error(t, err)
}

func TestWatchCmd_ReuploadsOnChange(t *testing.T) {
	setupTestServices(t)
	path := writeCSV(t, workedCSV)

	out := &syncBuffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs([]string{"watch", "-p", "2025-01", "--debounce", "50ms", path})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- rootCmd.ExecuteContext(ctx) }()

	require.Eventually(t, func() bool {
		return bytes.Contains([]byte(out.String()), []byte("Watching"))
	}, 3*time.Second, 10*time.Millisecond)
	assert.Contains(t, out.String(), "Uploaded 4 rows for January 2025")

	require.NoError(t, os.WriteFile(path, []byte(workedCSV+"TIER3DEALERWEB,true,false\n"), 0600))
	require.Eventually(t, func() bool {
		return bytes.Contains([]byte(out.String()), []byte("Uploaded 5 rows for January 2025"))
	}, 3*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestWatchCmd_StopsOnCancelAfterEarlierRun(t *testing.T) {
	t.Run("earlier run", func(t *testing.T) {
		setupTestServices(t)

		_, err := execute(t, "watch")

		require.Error(t, err)
	})

	t.Run("watch", func(t *testing.T) {
		setupTestServices(t)
		path := writeCSV(t, workedCSV)
		out := &syncBuffer{}
		rootCmd.SetOut(out)
		rootCmd.SetErr(out)
		rootCmd.SetArgs([]string{"watch", "-p", "2025-01", "--debounce", "50ms", path})

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- rootCmd.ExecuteContext(ctx) }()

		require.Eventually(t, func() bool {
			return bytes.Contains([]byte(out.String()), []byte("Watching"))
		}, 3*time.Second, 10*time.Millisecond)
		cancel()

		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(3 * time.Second):
			t.Fatal("watch did not stop after cancel")
		}
	})
}
