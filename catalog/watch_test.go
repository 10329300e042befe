package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const watchDoc = `projects:
  - id: a
    title: A
    images: [a.png]
`

func writeCatalog(t *testing.T, path, doc string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
}

func TestWatcherReloads(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "projects.yaml")
	writeCatalog(t, path, watchDoc)

	changes := make(chan *Catalog, 16)
	errs := make(chan error, 16)
	w, err := NewWatcher(path,
		func(c *Catalog) {
			select {
			case changes <- c:
			default:
			}
		},
		WithDebounce(20*time.Millisecond),
		WithErrorHandler(func(err error) {
			select {
			case errs <- err:
			default:
			}
		}))
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	writeCatalog(t, path, watchDoc+"  - id: b\n    title: B\n    images: [b.png]\n")
	deadline := time.After(5 * time.Second)
	for reloaded := false; !reloaded; {
		select {
		case c := <-changes:
			if len(c.Items) != 2 {
				continue
			}
			reloaded = true
			assert.Equal(t, "b", c.Items[1].ID)
			assert.Equal(t, filepath.Dir(path), c.Dir)
		case <-deadline:
			t.Fatal("no reload after write")
		}
	}

	writeCatalog(t, path, "projects:\n  - id: x\n    images: []\n")
	select {
	case err := <-errs:
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("invalid catalog not reported")
	}

	w.Stop()
	ok, failed := w.Reloads()
	assert.GreaterOrEqual(t, ok, 1)
	assert.GreaterOrEqual(t, failed, 1)
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "projects.yaml")
	writeCatalog(t, path, watchDoc)

	w, err := NewWatcher(path, func(*Catalog) {}, WithDebounce(10*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))

	writeCatalog(t, filepath.Join(dir, "notes.txt"), "hello")
	time.Sleep(100 * time.Millisecond)
	w.Stop()
	w.Stop()

	ok, failed := w.Reloads()
	assert.Zero(t, ok)
	assert.Zero(t, failed)
}

func TestWatcherStopsWithContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "projects.yaml")
	writeCatalog(t, path, watchDoc)

	ctx, cancel := context.WithCancel(context.Background())
	w, err := NewWatcher(path, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start(ctx))
	cancel()
	w.Stop()
}

func TestWatcherMissingDir(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "gone", "projects.yaml"), nil)
	require.NoError(t, err)
	assert.Error(t, w.Start(context.Background()))
	w.Stop()
}
