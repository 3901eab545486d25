package codebase

import (
	"context"
	"errors"
	"io/fs"
	"sort"
	"sync"
	"time"

	"github.com/dhamidi/javahl/highlight"
	"github.com/dhamidi/javahl/highlight/schedule"
	"github.com/dhamidi/javahl/java/symbols"
	"github.com/tliron/commonlog"
	"go.uber.org/multierr"
)

var log = commonlog.GetLogger("javahl.codebase")

// Codebase is a project together with the files open in an editor. Open
// files are highlighted from their buffer, everything else from disk.
type Codebase struct {
	mu      sync.RWMutex
	project *symbols.Project
	files   map[string]*FileInfo
	quiet   time.Duration
	publish func(*FileInfo, highlight.Result)
}

// FileInfo is an open buffer. Each has its own session and scheduler so
// edits to one buffer never delay another.
type FileInfo struct {
	Path string

	session   *highlight.Session
	scheduler *schedule.Scheduler

	mu        sync.Mutex
	content   []byte
	computed  []byte
	published []byte
	result    highlight.Result
	ready     bool
}

type Option func(*Codebase)

// WithQuietPeriod sets the debounce interval of every open file.
func WithQuietPeriod(d time.Duration) Option {
	return func(c *Codebase) {
		c.quiet = d
	}
}

// WithPublisher registers fn to receive every published result. It runs on
// the file's scheduler goroutine.
func WithPublisher(fn func(*FileInfo, highlight.Result)) Option {
	return func(c *Codebase) {
		c.publish = fn
	}
}

// New returns a codebase over project. A nil project is replaced by an
// empty one.
func New(project *symbols.Project, opts ...Option) *Codebase {
	if project == nil {
		project = symbols.NewProject()
	}
	c := &Codebase{
		project: project,
		files:   make(map[string]*FileInfo),
		quiet:   schedule.DefaultQuietPeriod,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Codebase) Project() *symbols.Project {
	return c.project
}

// UpdateFile records new content for path, opening the file if needed,
// and schedules a highlighting pass.
func (c *Codebase) UpdateFile(path string, content []byte) *FileInfo {
	c.mu.Lock()
	f, ok := c.files[path]
	if !ok {
		f = c.openLocked(path)
	}
	c.mu.Unlock()

	f.mu.Lock()
	f.content = content
	f.mu.Unlock()
	f.scheduler.Notify(content)
	return f
}

func (c *Codebase) openLocked(path string) *FileInfo {
	f := &FileInfo{
		Path:    path,
		session: highlight.NewSession(c.project, highlight.WithPath(path)),
	}
	f.scheduler = schedule.New(
		schedule.RecomputeFunc(f.recompute),
		func(r highlight.Result) { c.published(f, r) },
		schedule.WithQuietPeriod(c.quiet),
	)
	c.files[path] = f
	log.Debugf("opened %s", path)
	return f
}

func (c *Codebase) published(f *FileInfo, r highlight.Result) {
	f.mu.Lock()
	f.published = f.computed
	f.result = r
	f.ready = true
	f.mu.Unlock()
	if c.publish != nil {
		c.publish(f, r)
	}
}

// RemoveFile closes the buffer for path. The project keeps its parse of
// the file on disk.
func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	f, ok := c.files[path]
	delete(c.files, path)
	c.mu.Unlock()
	if ok {
		f.scheduler.Close()
		log.Debugf("closed %s", path)
	}
}

func (c *Codebase) GetFile(path string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

// Paths lists the open files in order.
func (c *Codebase) Paths() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	paths := make([]string, 0, len(c.files))
	for path := range c.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

func (c *Codebase) openFiles() []*FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	files := make([]*FileInfo, 0, len(c.files))
	for _, f := range c.files {
		files = append(files, f)
	}
	return files
}

// AddSourceRoot adds root to the project and rehighlights every open
// file against the rebuilt table.
func (c *Codebase) AddSourceRoot(ctx context.Context, root string) error {
	err := c.project.AddSourceRoot(ctx, root)
	c.refresh()
	return err
}

// ScanAll rebuilds the project from its source roots and rehighlights
// every open file.
func (c *Codebase) ScanAll(ctx context.Context) error {
	err := c.project.BuildProjectHierarchy(ctx)
	c.refresh()
	return err
}

// FilesChanged brings the project up to date with files that changed on
// disk. Paths outside the project are ignored. Open files are
// rehighlighted when anything changed.
func (c *Codebase) FilesChanged(paths []string) error {
	var errs error
	changed := 0
	for _, path := range paths {
		if !c.project.Contains(path) {
			continue
		}
		changed++
		err := c.project.ParseAndAddSymbols(path)
		if errors.Is(err, fs.ErrNotExist) {
			c.project.RemoveFile(path)
			continue
		}
		errs = multierr.Append(errs, err)
	}
	if changed > 0 {
		log.Infof("%d source file(s) changed", changed)
		c.refresh()
	}
	return errs
}

func (c *Codebase) refresh() {
	for _, f := range c.openFiles() {
		f.scheduler.Notify(f.Content())
	}
}

// Flush waits until every open file has published its latest content.
func (c *Codebase) Flush(ctx context.Context) error {
	for _, f := range c.openFiles() {
		if err := f.Flush(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Close stops the schedulers of all open files.
func (c *Codebase) Close() {
	c.mu.Lock()
	files := c.files
	c.files = make(map[string]*FileInfo)
	c.mu.Unlock()
	for _, f := range files {
		f.scheduler.Close()
	}
}

// recompute resolves names in the context of the last class the buffer
// declares.
func (f *FileInfo) recompute(text []byte) highlight.Result {
	f.session.UpdateContextFromCaret(text, len(text))
	r := f.session.Recompute(text)
	f.mu.Lock()
	f.computed = text
	f.mu.Unlock()
	return r
}

// Content is the latest buffer text.
func (f *FileInfo) Content() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.content
}

// Result returns the latest published result and the text it was computed
// from. ok is false until the first pass has been published.
func (f *FileInfo) Result() (text []byte, result highlight.Result, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.published, f.result, f.ready
}

func (f *FileInfo) Session() *highlight.Session {
	return f.session
}

func (f *FileInfo) State() schedule.State {
	return f.scheduler.State()
}

func (f *FileInfo) Flush(ctx context.Context) error {
	return f.scheduler.Flush(ctx)
}
