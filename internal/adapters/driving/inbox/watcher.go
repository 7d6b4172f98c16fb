// Package inbox submits note files dropped into a directory.
//
// Files ending in .txt or .md are read once their writes have settled. The
// first "# " heading becomes the title, otherwise the file name without its
// extension. Submitted files are moved into a .processed subdirectory; files
// that fail stay where they are until they are written again.
package inbox

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/brainspread/internal/core/ports/driving"
	"github.com/custodia-labs/brainspread/internal/logger"
)

// ProcessedDirName is the subdirectory submitted files are moved into.
const ProcessedDirName = ".processed"

// DefaultSettle is how long a file must go without events before it is read.
const DefaultSettle = 500 * time.Millisecond

// noteExtensions are the file extensions picked up from the inbox.
var noteExtensions = map[string]bool{
	".txt": true,
	".md":  true,
}

// Result reports the outcome for one inbox file.
type Result struct {
	// Path is where the file was found.
	Path string

	// Title is the title the note was submitted with.
	Title string

	// ContentID is the stored content, or 0 if nothing was submitted.
	ContentID int64

	// Labels are the labels generated for the note.
	Labels []string

	// Skipped is set when the file held no note to submit.
	Skipped bool

	// Err is the submission error, if any.
	Err error
}

// Watcher watches a directory and submits the notes written into it.
type Watcher struct {
	dir          string
	processedDir string
	service      driving.EnrichmentService
	settle       time.Duration
	onResult     func(Result)
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithSettle sets how long a file must be quiet before it is read.
func WithSettle(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.settle = d
		}
	}
}

// WithResultHandler registers fn to be called after each file is handled.
func WithResultHandler(fn func(Result)) Option {
	return func(w *Watcher) {
		w.onResult = fn
	}
}

// New creates a watcher for dir.
func New(dir string, service driving.EnrichmentService, opts ...Option) (*Watcher, error) {
	if dir == "" {
		return nil, errors.New("inbox: directory is required")
	}
	if service == nil {
		return nil, errors.New("inbox: enrichment service is required")
	}

	w := &Watcher{
		dir:          dir,
		processedDir: filepath.Join(dir, ProcessedDirName),
		service:      service,
		settle:       DefaultSettle,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Dir returns the watched directory.
func (w *Watcher) Dir() string {
	return w.dir
}

// Run submits the notes already in the directory, then every note written
// afterwards, until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	if err := os.MkdirAll(w.processedDir, 0o755); err != nil {
		return fmt.Errorf("create inbox: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	logger.Info("watching inbox: %s", w.dir)

	ready := make(chan string, 64)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(ready)
		return w.watch(gctx, fsw, ready)
	})

	g.Go(func() error {
		for _, path := range w.existing() {
			if gctx.Err() != nil {
				return nil
			}
			w.process(gctx, path)
		}
		for path := range ready {
			if gctx.Err() != nil {
				return nil
			}
			w.process(gctx, path)
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// watch turns filesystem events into settled paths on ready.
func (w *Watcher) watch(ctx context.Context, fsw *fsnotify.Watcher, ready chan<- string) error {
	lastEvent := make(map[string]time.Time)

	ticker := time.NewTicker(w.settle / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if path := w.handleFsEvent(event); path != "" {
				lastEvent[path] = time.Now()
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("inbox watcher: %v", err)

		case now := <-ticker.C:
			for path, at := range lastEvent {
				if now.Sub(at) < w.settle {
					continue
				}
				delete(lastEvent, path)
				select {
				case ready <- path:
				case <-ctx.Done():
					return nil
				}
			}
		}
	}
}

// handleFsEvent returns the path to submit for event, or "" to ignore it.
func (w *Watcher) handleFsEvent(event fsnotify.Event) string {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return ""
	}
	if !isNoteFile(event.Name) {
		return ""
	}
	return event.Name
}

// existing lists note files already in the directory, by name.
func (w *Watcher) existing() []string {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		logger.Warn("read inbox: %v", err)
		return nil
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !isNoteFile(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(w.dir, e.Name()))
	}
	sort.Strings(paths)
	return paths
}

// process submits one file and moves it aside on success.
func (w *Watcher) process(ctx context.Context, path string) {
	result := w.submitFile(ctx, path)
	if result.Err != nil {
		logger.Error("inbox %s: %v", filepath.Base(path), result.Err)
	}
	if w.onResult != nil {
		w.onResult(result)
	}
}

func (w *Watcher) submitFile(ctx context.Context, path string) Result {
	result := Result{Path: path}

	info, err := os.Stat(path)
	if err != nil {
		// Already moved or deleted.
		result.Skipped = true
		return result
	}
	if info.IsDir() || info.Size() == 0 {
		result.Skipped = true
		return result
	}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Err = fmt.Errorf("read: %w", err)
		return result
	}

	title, body := parseNote(filepath.Base(path), string(data))
	result.Title = title
	if strings.TrimSpace(body) == "" {
		result.Skipped = true
		return result
	}

	submitted, err := w.service.Submit(ctx, title, body)
	if err != nil {
		result.Err = err
		return result
	}
	result.ContentID = submitted.ContentID
	result.Labels = submitted.Labels

	if err := os.Rename(path, w.processedPath(filepath.Base(path))); err != nil {
		result.Err = fmt.Errorf("move to %s: %w", ProcessedDirName, err)
		return result
	}
	logger.Debug("inbox %s submitted as content %d", filepath.Base(path), submitted.ContentID)
	return result
}

// processedPath returns a destination in the processed directory that does not exist yet.
func (w *Watcher) processedPath(name string) string {
	dest := filepath.Join(w.processedDir, name)
	if _, err := os.Stat(dest); errors.Is(err, os.ErrNotExist) {
		return dest
	}
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	return filepath.Join(w.processedDir, fmt.Sprintf("%s-%d%s", stem, time.Now().UnixNano(), ext))
}

// parseNote splits file text into a title and body. A leading "# " heading
// is the title and is removed from the body; otherwise the file stem is used.
func parseNote(name, text string) (title, body string) {
	text = strings.TrimPrefix(text, "\ufeff")
	stem := strings.TrimSuffix(name, filepath.Ext(name))

	trimmed := strings.TrimLeft(text, " \t\r\n")
	firstLine, rest, _ := strings.Cut(trimmed, "\n")
	firstLine = strings.TrimSpace(firstLine)

	if heading, ok := strings.CutPrefix(firstLine, "# "); ok && strings.TrimSpace(heading) != "" {
		return strings.TrimSpace(heading), strings.TrimSpace(rest)
	}
	return stem, strings.TrimSpace(text)
}

// isNoteFile reports whether path names a visible .txt or .md file.
func isNoteFile(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}
	return noteExtensions[strings.ToLower(filepath.Ext(base))]
}
