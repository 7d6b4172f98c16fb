package inbox

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/custodia-labs/brainspread/internal/core/domain"
)

// fakeService records submissions.
type fakeService struct {
	mu     sync.Mutex
	nextID int64
	titles []string
	bodies []string
	err    error
}

func (f *fakeService) Submit(_ context.Context, title, body string) (*domain.SubmitResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.nextID++
	f.titles = append(f.titles, title)
	f.bodies = append(f.bodies, body)
	return &domain.SubmitResult{ContentID: f.nextID, Summary: "s", Labels: []string{"a", "b"}}, nil
}

func (f *fakeService) List(context.Context) ([]domain.EnrichedRecord, error) { return nil, nil }

func (f *fakeService) Get(context.Context, int64) (*domain.EnrichedRecord, error) {
	return nil, domain.ErrNotFound
}

func (f *fakeService) Pending(context.Context) ([]domain.Content, error) { return nil, nil }

func (f *fakeService) Resume(context.Context, int64) (*domain.SubmitResult, error) {
	return nil, domain.ErrNotFound
}

// runWatcher starts w in the background and returns a channel of results.
func runWatcher(t *testing.T, w *Watcher) (<-chan Result, func()) {
	t.Helper()
	results := make(chan Result, 16)
	w.onResult = func(r Result) { results <- r }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	stop := func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("watcher did not stop")
		}
	}
	return results, stop
}

func waitResult(t *testing.T, results <-chan Result) Result {
	t.Helper()
	select {
	case r := <-results:
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for inbox result")
		return Result{}
	}
}

func TestNew(t *testing.T) {
	_, err := New("", &fakeService{})
	assert.Error(t, err)

	_, err = New(t.TempDir(), nil)
	assert.Error(t, err)

	w, err := New("/tmp/inbox", &fakeService{}, WithSettle(10*time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/inbox", w.Dir())
	assert.Equal(t, 10*time.Millisecond, w.settle)
	assert.Equal(t, filepath.Join("/tmp/inbox", ProcessedDirName), w.processedDir)
}

func TestParseNote(t *testing.T) {
	tests := []struct {
		name      string
		file      string
		text      string
		wantTitle string
		wantBody  string
	}{
		{
			name:      "heading becomes title",
			file:      "note.md",
			text:      "# Roman history\n\nThe Republic fell.\n",
			wantTitle: "Roman history",
			wantBody:  "The Republic fell.",
		},
		{
			name:      "leading blank lines before heading",
			file:      "note.md",
			text:      "\n\n# Title\nBody",
			wantTitle: "Title",
			wantBody:  "Body",
		},
		{
			name:      "no heading uses file stem",
			file:      "meeting-notes.txt",
			text:      "Discussed the budget.\n",
			wantTitle: "meeting-notes",
			wantBody:  "Discussed the budget.",
		},
		{
			name:      "second level heading is body",
			file:      "a.md",
			text:      "## Not a title\nText",
			wantTitle: "a",
			wantBody:  "## Not a title\nText",
		},
		{
			name:      "byte order mark stripped",
			file:      "bom.txt",
			text:      "\ufeff# With BOM\nText",
			wantTitle: "With BOM",
			wantBody:  "Text",
		},
		{
			name:      "heading only",
			file:      "empty.md",
			text:      "# Just a title\n",
			wantTitle: "Just a title",
			wantBody:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, body := parseNote(tt.file, tt.text)
			assert.Equal(t, tt.wantTitle, title)
			assert.Equal(t, tt.wantBody, body)
		})
	}
}

func TestIsNoteFile(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"note.txt", true},
		{"note.md", true},
		{"/inbox/NOTE.MD", true},
		{"note.pdf", false},
		{"note", false},
		{".hidden.md", false},
		{"/inbox/.note.txt.swp", false},
		{"note.md~", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, isNoteFile(tt.path))
		})
	}
}

func TestHandleFsEvent(t *testing.T) {
	w, err := New("/inbox", &fakeService{})
	require.NoError(t, err)

	tests := []struct {
		name     string
		path     string
		op       fsnotify.Op
		expected string
	}{
		{"create note", "/inbox/a.md", fsnotify.Create, "/inbox/a.md"},
		{"write note", "/inbox/a.txt", fsnotify.Write, "/inbox/a.txt"},
		{"remove note", "/inbox/a.md", fsnotify.Remove, ""},
		{"rename note", "/inbox/a.md", fsnotify.Rename, ""},
		{"chmod note", "/inbox/a.md", fsnotify.Chmod, ""},
		{"hidden file", "/inbox/.a.md", fsnotify.Create, ""},
		{"other extension", "/inbox/a.png", fsnotify.Create, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := w.handleFsEvent(fsnotify.Event{Name: tt.path, Op: tt.op})
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestWatcher_SubmitFile(t *testing.T) {
	t.Run("submits and moves note", func(t *testing.T) {
		dir := t.TempDir()
		svc := &fakeService{}
		w, err := New(dir, svc)
		require.NoError(t, err)
		require.NoError(t, os.MkdirAll(w.processedDir, 0o755))

		path := filepath.Join(dir, "note.md")
		require.NoError(t, os.WriteFile(path, []byte("# Title\nBody text"), 0o644))

		result := w.submitFile(context.Background(), path)
		require.NoError(t, result.Err)
		assert.False(t, result.Skipped)
		assert.Equal(t, int64(1), result.ContentID)
		assert.Equal(t, "Title", result.Title)
		assert.Equal(t, []string{"Title"}, svc.titles)
		assert.Equal(t, []string{"Body text"}, svc.bodies)

		assert.NoFileExists(t, path)
		assert.FileExists(t, filepath.Join(w.processedDir, "note.md"))
	})

	t.Run("name clash in processed gets a suffix", func(t *testing.T) {
		dir := t.TempDir()
		w, err := New(dir, &fakeService{})
		require.NoError(t, err)
		require.NoError(t, os.MkdirAll(w.processedDir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(w.processedDir, "note.md"), []byte("old"), 0o644))

		path := filepath.Join(dir, "note.md")
		require.NoError(t, os.WriteFile(path, []byte("new body"), 0o644))

		result := w.submitFile(context.Background(), path)
		require.NoError(t, result.Err)

		entries, err := os.ReadDir(w.processedDir)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("empty file is skipped", func(t *testing.T) {
		dir := t.TempDir()
		svc := &fakeService{}
		w, err := New(dir, svc)
		require.NoError(t, err)

		path := filepath.Join(dir, "empty.txt")
		require.NoError(t, os.WriteFile(path, nil, 0o644))

		result := w.submitFile(context.Background(), path)
		assert.True(t, result.Skipped)
		assert.Empty(t, svc.titles)
		assert.FileExists(t, path)
	})

	t.Run("heading without body is skipped", func(t *testing.T) {
		dir := t.TempDir()
		svc := &fakeService{}
		w, err := New(dir, svc)
		require.NoError(t, err)

		path := filepath.Join(dir, "heading.md")
		require.NoError(t, os.WriteFile(path, []byte("# Only\n\n"), 0o644))

		result := w.submitFile(context.Background(), path)
		assert.True(t, result.Skipped)
		assert.Empty(t, svc.titles)
	})

	t.Run("missing file is skipped", func(t *testing.T) {
		w, err := New(t.TempDir(), &fakeService{})
		require.NoError(t, err)

		result := w.submitFile(context.Background(), filepath.Join(w.dir, "gone.md"))
		assert.True(t, result.Skipped)
	})

	t.Run("failed submission leaves the file", func(t *testing.T) {
		dir := t.TempDir()
		svc := &fakeService{err: &domain.GenerationError{Op: "summary", StatusCode: 500, Err: errors.New("down")}}
		w, err := New(dir, svc)
		require.NoError(t, err)

		path := filepath.Join(dir, "note.txt")
		require.NoError(t, os.WriteFile(path, []byte("body"), 0o644))

		result := w.submitFile(context.Background(), path)
		assert.ErrorIs(t, result.Err, domain.ErrGeneration)
		assert.FileExists(t, path)
	})
}

func TestWatcher_Run(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "existing.txt"), []byte("already here"), 0o644))

	svc := &fakeService{}
	w, err := New(dir, svc, WithSettle(20*time.Millisecond))
	require.NoError(t, err)

	results, stop := runWatcher(t, w)

	first := waitResult(t, results)
	require.NoError(t, first.Err)
	assert.Equal(t, "existing", first.Title)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "dropped.md"), []byte("# Dropped\nNew note"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.png"), []byte("binary"), 0o644))

	second := waitResult(t, results)
	require.NoError(t, second.Err)
	assert.Equal(t, "Dropped", second.Title)
	assert.Equal(t, int64(2), second.ContentID)

	stop()

	assert.FileExists(t, filepath.Join(dir, ProcessedDirName, "existing.txt"))
	assert.FileExists(t, filepath.Join(dir, ProcessedDirName, "dropped.md"))
	assert.FileExists(t, filepath.Join(dir, "ignored.png"))

	svc.mu.Lock()
	defer svc.mu.Unlock()
	assert.Equal(t, []string{"existing", "Dropped"}, svc.titles)
}

func TestWatcher_Run_MissingDirIsCreated(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "new", "inbox")
	w, err := New(dir, &fakeService{}, WithSettle(10*time.Millisecond))
	require.NoError(t, err)

	_, stop := runWatcher(t, w)
	require.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(dir, ProcessedDirName))
		return err == nil
	}, time.Second, 10*time.Millisecond)
	stop()
}
