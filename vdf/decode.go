package vdf

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/klauspost/readahead"
	"github.com/spf13/afero"

	"github.com/ardnew/vdf/log"
)

var (
	errExpectedOpen = errors.New("expected '{'")
	errUnterminated = errors.New("unterminated quoted value")
	errUnexpected   = errors.New("unexpected '}'")
)

// DefaultMaxBaseDepth is the default limit on nested #base file inclusion.
// Users may modify this before decoding to change the default.
var DefaultMaxBaseDepth = 16

// Option configures a [Decoder].
type Option func(*Decoder)

// WithBaseFiles enables loading of the #base files referenced by a document.
// Only the directives of the decoded document itself are followed unless
// [WithNestedBaseFiles] is also given.
func WithBaseFiles(enable bool) Option {
	return func(d *Decoder) {
		d.loadBase = enable
	}
}

// WithNestedBaseFiles enables following #base directives found inside base
// files, up to the limit set with [WithMaxBaseDepth].
func WithNestedBaseFiles(enable bool) Option {
	return func(d *Decoder) {
		d.nested = enable
	}
}

// WithMaxBaseDepth sets the maximum nesting depth of #base files.
func WithMaxBaseDepth(depth int) Option {
	return func(d *Decoder) {
		d.maxBaseDepth = depth
	}
}

// WithFs sets the filesystem from which files are read.
// If nil, the host filesystem is used.
func WithFs(fs afero.Fs) Option {
	return func(d *Decoder) {
		if fs == nil {
			fs = afero.NewOsFs()
		}

		d.fs = fs
	}
}

// WithDir sets the directory against which relative #base paths resolve.
func WithDir(dir string) Option {
	return func(d *Decoder) {
		d.dir = dir
	}
}

// WithSearchPath appends directories searched for #base files that are not
// found relative to the including document.
func WithSearchPath(dir ...string) Option {
	return func(d *Decoder) {
		d.searchPath = append(d.searchPath, dir...)
	}
}

// WithLogger sets the structured logger used to trace decoding.
func WithLogger(logger log.Logger) Option {
	return func(d *Decoder) {
		d.logger = logger
	}
}

// Decoder decodes KeyValue text into a [Map].
// A Decoder holds only configuration and may be reused.
type Decoder struct {
	fs           afero.Fs
	dir          string
	searchPath   []string
	loadBase     bool
	nested       bool
	maxBaseDepth int
	logger       log.Logger

	depth   int      // #base nesting depth of documents decoded by d
	visited []string // files currently being decoded, outermost first
}

// NewDecoder returns a Decoder configured with the given options.
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{
		fs:           afero.NewOsFs(),
		maxBaseDepth: DefaultMaxBaseDepth,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Decode parses KeyValue text.
func Decode(ctx context.Context, text string, opts ...Option) (*Map, error) {
	return NewDecoder(opts...).Decode(ctx, text)
}

// DecodeBytes parses KeyValue text encoded as UTF-8, UTF-16, or UTF-32.
func DecodeBytes(ctx context.Context, data []byte, opts ...Option) (*Map, error) {
	return NewDecoder(opts...).DecodeBytes(ctx, data)
}

// DecodeReader parses KeyValue text read from r.
func DecodeReader(ctx context.Context, r io.Reader, opts ...Option) (*Map, error) {
	return NewDecoder(opts...).DecodeReader(ctx, r)
}

// DecodeFile parses the KeyValue file at path.
func DecodeFile(ctx context.Context, path string, opts ...Option) (*Map, error) {
	return NewDecoder(opts...).DecodeFile(ctx, path)
}

// Decode parses KeyValue text.
func (d *Decoder) Decode(ctx context.Context, text string) (*Map, error) {
	return d.DecodeBytes(ctx, []byte(text))
}

// DecodeReader parses KeyValue text read from r.
func (d *Decoder) DecodeReader(ctx context.Context, r io.Reader) (*Map, error) {
	if r == nil {
		return nil, ErrInvalidInput.With(slog.String("issue", "nil reader"))
	}

	// Wrap reader with async read-ahead for concurrent I/O.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	return d.DecodeBytes(ctx, data)
}

// DecodeFile parses the KeyValue file at path.
// Relative #base paths in the file resolve against the file's directory.
func (d *Decoder) DecodeFile(ctx context.Context, path string) (*Map, error) {
	data, err := afero.ReadFile(d.fs, path)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("file", path))
	}

	return d.within(path).DecodeBytes(ctx, data)
}

// DecodeBytes parses KeyValue text encoded as UTF-8, UTF-16, or UTF-32.
func (d *Decoder) DecodeBytes(ctx context.Context, data []byte) (*Map, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	enc, text, err := normalize(data)
	if err != nil {
		return nil, err
	}

	s := &scanner{
		ctx:   ctx,
		dec:   d,
		lines: splitLines(string(text)),
	}

	root, err := s.run()
	if err != nil {
		return nil, err
	}

	d.logger.TraceContext(ctx, "decode complete",
		slog.String("encoding", enc),
		slog.Int("lines", len(s.lines)),
		slog.Int("keys", root.Len()),
		slog.Int("base_depth", d.depth),
	)

	return root, nil
}

// within returns a copy of d for decoding the file at path.
func (d *Decoder) within(path string) *Decoder {
	fd := *d
	fd.dir = filepath.Dir(path)
	fd.visited = append(slices.Clone(d.visited), filepath.Clean(path))

	return &fd
}

// splitLines splits text on line feeds, dropping a carriage return that
// precedes each one.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	return lines
}

// scanner holds the state of a single decode.
type scanner struct {
	ctx   context.Context
	dec   *Decoder
	lines []string

	stack      []*Map // open mappings, root first
	expectOpen bool   // the previous line was a block key
	prologue   bool   // no '{' seen yet; #base directives allowed
	base       *Map   // accumulated #base defaults
}

// run walks all lines and returns the root mapping.
func (s *scanner) run() (*Map, error) {
	root := NewMap()

	s.stack = []*Map{root}
	s.prologue = true

	for i := 0; i < len(s.lines); i++ {
		if err := s.ctx.Err(); err != nil {
			return nil, err
		}

		line := strings.TrimSpace(s.lines[i])
		num := i + 1

		// Skip empty and comment lines
		if line == "" || line[0] == '/' {
			continue
		}

		if s.prologue {
			if path, ok := baseDirective(line); ok {
				err := s.include(path, num)
				if err != nil {
					return nil, err
				}

				continue
			}
		}

		switch {
		case line[0] == '{':
			s.expectOpen = false
			s.prologue = false

			continue

		case s.expectOpen:
			return nil, ErrSyntax.WithLine(num).Wrap(errExpectedOpen)

		case line[0] == '}':
			if len(s.stack) == 1 {
				return nil, ErrUnbalancedBraces.WithLine(num).Wrap(errUnexpected)
			}

			s.stack = s.stack[:len(s.stack)-1]

			continue
		}

		next, err := s.keyValue(line, i)
		if err != nil {
			return nil, err
		}

		i = next
	}

	if len(s.stack) != 1 {
		return nil, ErrUnbalancedBraces.
			With(slog.Int("unclosed", len(s.stack)-1))
	}

	if s.base.Len() > 0 {
		applyBase(root, s.base)
	}

	return root, nil
}

// keyValue applies the key/value line starting at index i and returns the
// index of the last line it consumed.
func (s *scanner) keyValue(line string, i int) (int, error) {
	start := i
	top := s.stack[len(s.stack)-1]

	for {
		p, ok := matchLine(line)
		if !ok {
			return 0, ErrSyntax.WithLine(start + 1).
				With(slog.String("text", line))
		}

		switch {
		case !p.hasValue:
			// Reuse an existing mapping so repeated block keys merge.
			child, _ := top.Lookup(p.key)
			if !child.IsMap() {
				child = Block(nil)
				top.Set(p.key, child)
			}

			s.stack = append(s.stack, child.Map)
			s.expectOpen = true

		case p.open:
			// Quoted value continues on the next line.
			if i+1 >= len(s.lines) {
				return 0, ErrSyntax.WithLine(start + 1).
					With(slog.String("key", p.key)).
					Wrap(errUnterminated)
			}

			i++
			line += "\n" + s.lines[i]

			continue

		default:
			top.SetString(p.key, p.value)
		}

		return i, nil
	}
}

// include loads the #base file at path, referenced on line num, and merges
// its root object into the accumulated defaults.
func (s *scanner) include(path string, num int) error {
	if !s.dec.loadBase {
		s.dec.logger.TraceContext(s.ctx, "base file skipped",
			slog.String("path", path),
			slog.Int("line", num),
		)

		return nil
	}

	tree, err := s.dec.loadBaseFile(s.ctx, path)
	if err != nil {
		return ErrReadInput.WithLine(num).
			With(slog.String("base", path)).
			Wrap(err)
	}

	first, ok := tree.First()
	if !ok || !first.Value.IsMap() {
		return nil
	}

	if s.base == nil {
		s.base = NewMap()
	}

	mergeUnique(first.Value.Map, s.base)

	return nil
}
