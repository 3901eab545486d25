package symbols

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
	"github.com/spf13/afero"
	"github.com/tliron/commonlog"
	"go.uber.org/multierr"
)

var log = commonlog.GetLogger("javahl.symbols")

// DefaultInclude selects the files a project walk parses.
var DefaultInclude = []string{"**/*.java"}

// Project is the set of compilation units under one or more source roots
// together with the table built from them. The table is rebuilt as a
// whole and swapped in; readers never observe a partial build.
type Project struct {
	fs               afero.Fs
	include          []string
	exclude          []string
	respectGitignore bool

	mu    sync.RWMutex
	roots []string
	units map[string]Unit
	table *Table
}

type ProjectOption func(*Project)

// WithFs sets the filesystem source roots are read from. The default is
// the operating system filesystem.
func WithFs(fs afero.Fs) ProjectOption {
	return func(p *Project) {
		p.fs = fs
	}
}

// WithInclude replaces the doublestar patterns, relative to a source root,
// that select files to parse.
func WithInclude(patterns ...string) ProjectOption {
	return func(p *Project) {
		if len(patterns) > 0 {
			p.include = patterns
		}
	}
}

func WithExclude(patterns ...string) ProjectOption {
	return func(p *Project) {
		p.exclude = patterns
	}
}

// WithGitignore makes walks skip paths matched by a .gitignore file at
// the top of each source root.
func WithGitignore(respect bool) ProjectOption {
	return func(p *Project) {
		p.respectGitignore = respect
	}
}

func NewProject(opts ...ProjectOption) *Project {
	p := &Project{
		fs:      afero.NewOsFs(),
		include: DefaultInclude,
		units:   make(map[string]Unit),
		table:   Empty(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Project) Roots() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]string(nil), p.roots...)
}

// AddSourceRoot registers root and rebuilds the whole project.
func (p *Project) AddSourceRoot(ctx context.Context, root string) error {
	p.mu.Lock()
	for _, existing := range p.roots {
		if existing == root {
			p.mu.Unlock()
			return nil
		}
	}
	p.roots = append(p.roots, root)
	p.mu.Unlock()
	return p.BuildProjectHierarchy(ctx)
}

// Table returns the current snapshot.
func (p *Project) Table() *Table {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.table
}

// Units returns the parsed units ordered by path.
func (p *Project) Units() []Unit {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return sortedUnits(p.units)
}

func (p *Project) Unit(path string) (Unit, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	u, ok := p.units[path]
	return u, ok
}

// BuildProjectHierarchy walks every source root, parses each selected
// file and replaces the table. Files that cannot be read are skipped and
// reported in the returned error; the table is replaced regardless.
func (p *Project) BuildProjectHierarchy(ctx context.Context) error {
	units := make(map[string]Unit)
	var errs error

	for _, root := range p.Roots() {
		paths, err := p.collect(ctx, root)
		errs = multierr.Append(errs, err)
		if ctx.Err() != nil {
			return errs
		}
		for _, path := range paths {
			if err := ctx.Err(); err != nil {
				return multierr.Append(errs, err)
			}
			u, err := p.parseFile(path)
			if err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			units[path] = u
		}
	}

	table := Build(sortedUnits(units)...)

	p.mu.Lock()
	p.units = units
	p.table = table
	p.mu.Unlock()

	log.Infof("built symbol table: %d files, %d types", len(units), table.Len())
	if errs != nil {
		log.Warningf("symbol table build skipped %d file(s)", len(multierr.Errors(errs)))
	}
	return errs
}

// ParseAndAddSymbols parses one file, replaces its unit and rebuilds the
// table from all units.
func (p *Project) ParseAndAddSymbols(path string) error {
	u, err := p.parseFile(path)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.units[path] = u
	p.table = Build(sortedUnits(p.units)...)
	log.Debugf("reparsed %s", path)
	return nil
}

// RemoveFile drops the unit for path and rebuilds the table.
func (p *Project) RemoveFile(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.units[path]; !ok {
		return
	}
	delete(p.units, path)
	p.table = Build(sortedUnits(p.units)...)
}

// Selects reports whether path, relative to the root it lives under, is
// matched by the include patterns and not by the exclude patterns.
func (p *Project) Selects(rel string) bool {
	rel = filepath.ToSlash(rel)
	included := false
	for _, pattern := range p.include {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			included = true
			break
		}
	}
	if !included {
		return false
	}
	for _, pattern := range p.exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return false
		}
	}
	return true
}

// Contains reports whether path lies under one of the source roots and
// would be selected by a walk.
func (p *Project) Contains(path string) bool {
	for _, root := range p.Roots() {
		rel, err := filepath.Rel(root, path)
		if err != nil || strings.HasPrefix(rel, "..") {
			continue
		}
		if p.Selects(rel) {
			return true
		}
	}
	return false
}

func (p *Project) collect(ctx context.Context, root string) ([]string, error) {
	gi := p.gitignore(root)

	var paths []string
	var errs error
	err := afero.Walk(p.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("walk %s: %w", path, err))
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if info.IsDir() {
			if path != root && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			if rel != "." && gi != nil && gi.MatchesPath(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}
		if gi != nil && gi.MatchesPath(rel) {
			return nil
		}
		if p.Selects(rel) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("scan source root %s: %w", root, err))
	}
	return paths, errs
}

func (p *Project) gitignore(root string) *ignore.GitIgnore {
	if !p.respectGitignore {
		return nil
	}
	data, err := afero.ReadFile(p.fs, filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return ignore.CompileIgnoreLines(strings.Split(string(data), "\n")...)
}

func (p *Project) parseFile(path string) (Unit, error) {
	content, err := afero.ReadFile(p.fs, path)
	if err != nil {
		return Unit{}, fmt.Errorf("read %s: %w", path, err)
	}
	u := ParseUnit(path, content)
	if n := len(u.Result.Errors); n > 0 {
		log.Debugf("%s: %d syntax error(s)", path, n)
	}
	return u, nil
}

func sortedUnits(units map[string]Unit) []Unit {
	result := make([]Unit, 0, len(units))
	for _, u := range units {
		result = append(result, u)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Path < result[j].Path
	})
	return result
}
