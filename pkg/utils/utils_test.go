package utils

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransfer(t *testing.T) {
	assert.Equal(t, int64(7), Transfer(int64(7)))
	assert.Equal(t, int64(7), Transfer(float64(7)))
	assert.Equal(t, int64(7), Transfer("7"))
	assert.Equal(t, int64(-1), Transfer("seven"))
	assert.Equal(t, int64(-1), Transfer(nil))
}

func TestParseMediaDuration(t *testing.T) {
	d, err := parseMediaDuration(`{"format":{"filename":"a.mp4","duration":"12.480000"}}`)
	require.NoError(t, err)
	assert.InDelta(t, 12.48, d, 1e-9)

	_, err = parseMediaDuration(`{"format":{}}`)
	assert.Error(t, err)

	_, err = parseMediaDuration(`not json`)
	assert.Error(t, err)
}

func TestGenerateIDUnique(t *testing.T) {
	const n = 2000
	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		ids = make(map[int64]struct{}, n)
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := GenerateID()
			mu.Lock()
			ids[id] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Len(t, ids, n)
}

func TestFileDigest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))
	sum, err := FileDigest(path)
	require.NoError(t, err)
	assert.Equal(t, "5d41402abc4b2a76b9719d911017c592", sum)

	_, err = FileDigest(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
