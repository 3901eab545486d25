package highlight

import (
	"regexp"
	"sync"

	"github.com/dhamidi/javahl/java/parser"
	"github.com/dhamidi/javahl/java/symbols"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("javahl.highlight")

// Result is the outcome of one highlighting pass over a buffer.
type Result struct {
	Spans   []StyleSpan         `json:"spans"`
	Errors  []parser.ParseError `json:"errors"`
	Length  int                 `json:"length"`
	Context symbols.Context     `json:"-"`
}

// Session owns everything a highlighting pass reads besides the buffer:
// the project the buffer belongs to and the editing context names are
// resolved from. A session serves one buffer.
type Session struct {
	mu      sync.Mutex
	project *symbols.Project
	path    string
	ctx     symbols.Context
}

type SessionOption func(*Session)

// WithPath names the file the buffer is loaded from. The project's parse
// of that file is replaced by the buffer during a pass.
func WithPath(path string) SessionOption {
	return func(s *Session) {
		s.path = path
	}
}

// WithContext sets the initial editing context.
func WithContext(pkg, enclosingType string) SessionOption {
	return func(s *Session) {
		s.ctx = symbols.Context{Package: pkg, EnclosingType: enclosingType}
	}
}

// NewSession returns a session over project. A nil project highlights
// buffers on their own.
func NewSession(project *symbols.Project, opts ...SessionOption) *Session {
	s := &Session{project: project}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) Project() *symbols.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.project
}

func (s *Session) Path() string {
	return s.path
}

// Rebind switches the session to another project. A nil project
// highlights buffers on their own.
func (s *Session) Rebind(project *symbols.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.project = project
}

func (s *Session) CurrentContext() symbols.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx
}

func (s *Session) SetCurrentContext(pkg, enclosingType string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctx = symbols.Context{Package: pkg, EnclosingType: enclosingType}
}

var (
	packagePattern = regexp.MustCompile(`package\s+([\w.]+);`)
	classPattern   = regexp.MustCompile(`class\s+(\w+)`)
)

// UpdateContextFromCaret derives the editing context from the buffer: the
// package is taken from the first package declaration and the enclosing
// type is the last class declared before caret.
func (s *Session) UpdateContextFromCaret(text []byte, caret int) symbols.Context {
	ctx := ContextAt(text, caret)
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()
	return ctx
}

// ContextAt is the editing context at caret in text.
func ContextAt(text []byte, caret int) symbols.Context {
	var ctx symbols.Context
	if m := packagePattern.FindSubmatch(text); m != nil {
		ctx.Package = string(m[1])
	}
	for _, m := range classPattern.FindAllSubmatchIndex(text, -1) {
		if m[0] >= caret {
			break
		}
		ctx.EnclosingType = string(text[m[2]:m[3]])
	}
	return ctx
}

// Table builds the symbol table a pass over unit sees: the buffer's own
// declarations first, followed by the rest of the project.
func (s *Session) Table(unit symbols.Unit) *symbols.Table {
	project := s.Project()
	if project == nil {
		return symbols.Build(unit)
	}
	units := []symbols.Unit{unit}
	for _, u := range project.Units() {
		if u.Path != unit.Path {
			units = append(units, u)
		}
	}
	return symbols.Build(units...)
}

// Recompute runs one full pass over text: parse, build the table,
// classify and assemble. It never panics; if a pass fails unexpectedly the
// whole buffer is returned as a single unstyled span.
func (s *Session) Recompute(text []byte) (result Result) {
	ctx := s.CurrentContext()
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("highlighting pass failed: %v", r)
			result = Result{Length: len(text), Context: ctx}
			if len(text) > 0 {
				result.Spans = []StyleSpan{{Length: len(text)}}
			}
		}
	}()

	unit := symbols.ParseUnit(s.path, text)
	table := s.Table(unit)
	classifier := NewClassifier(text, unit.Result, table, ctx)
	spans := Assemble(unit.Result.Tokens, classifier.Classify(), len(text))

	log.Debugf("highlighted %d bytes: %d tokens, %d spans, %d errors",
		len(text), len(unit.Result.Tokens), len(spans), len(unit.Result.Errors))
	return Result{
		Spans:   spans,
		Errors:  unit.Result.Errors,
		Length:  len(text),
		Context: ctx,
	}
}
