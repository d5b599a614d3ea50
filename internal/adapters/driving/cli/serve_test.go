package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeCmd_Flags(t *testing.T) {
	assert.NotNil(t, serveCmd.Flags().Lookup("addr"))
	assert.NotNil(t, serveCmd.Flags().Lookup("watch-config"))
}

func TestServeCmd_WatchConfigNeedsFile(t *testing.T) {
	_, err := execute(t, nil, "--no-config", "serve", "--watch-config")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--watch-config requires a config file")
}

func TestServeCmd_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		_, err := executeContext(t, ctx, nil,
			"--config", t.TempDir(), "serve", "--addr", "127.0.0.1:0", "--watch-config")
		done <- err
	}()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("serve did not stop after the context was cancelled")
	}
}
