// Package editor drives a live editing surface the way a browser editor
// component would: raw markdown is the source of truth, the surface is
// regenerated from it on every change, and user edits made on the surface
// are serialized back into markdown.
//
// A Session is not safe for concurrent use.
package editor

import (
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/gomdedit/internal/logging"
	"github.com/yaklabco/gomdedit/pkg/block"
	"github.com/yaklabco/gomdedit/pkg/caret"
	"github.com/yaklabco/gomdedit/pkg/fsutil"
	"github.com/yaklabco/gomdedit/pkg/render"
	"github.com/yaklabco/gomdedit/pkg/serialize"
	"github.com/yaklabco/gomdedit/pkg/surface"
)

// DefaultTab is inserted by the Tab key.
const DefaultTab = "  "

// Session owns one editable surface and the markdown behind it.
type Session struct {
	tab      string
	saveName string
	renderer render.Renderer
	logger   *log.Logger
	backup   bool

	markdown string
	root     *surface.Node
	sel      *caret.Selection
	focused  bool

	// opened describes the file given to Open, if any.
	opened *fsutil.FileInfo
}

// Option configures a Session.
type Option func(*Session)

// WithTab sets the text inserted by the Tab key.
func WithTab(tab string) Option {
	return func(s *Session) {
		s.tab = tab
	}
}

// WithRenderer sets the renderer used for the surface markup.
func WithRenderer(r render.Renderer) Option {
	return func(s *Session) {
		s.renderer = r
	}
}

// WithLogger sets the logger. Sessions only log at debug level.
func WithLogger(logger *log.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSaveName sets the file name used by Save.
func WithSaveName(name string) Option {
	return func(s *Session) {
		if name != "" {
			s.saveName = name
		}
	}
}

// WithBackup makes saves keep a sidecar copy of the file they overwrite.
func WithBackup(enabled bool) Option {
	return func(s *Session) {
		s.backup = enabled
	}
}

// New creates an empty, unfocused session.
func New(opts ...Option) *Session {
	s := &Session{
		tab:      DefaultTab,
		saveName: DefaultSaveName,
		logger:   logging.Discard(),
		root:     surface.NewRoot(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Markdown returns the current source of truth.
func (s *Session) Markdown() string {
	return s.markdown
}

// HTML returns the current surface markup.
func (s *Session) HTML() string {
	return surface.HTML(s.root)
}

// Root returns the live surface. Callers that mutate it must call Input
// afterwards, as a browser would fire an input event.
func (s *Session) Root() *surface.Node {
	return s.root
}

// Selection returns the caret, or nil while the surface is not focused.
func (s *Session) Selection() *caret.Selection {
	if !s.focused {
		return nil
	}
	return s.sel
}

// Offset returns the caret as a character offset, or 0 when unfocused.
func (s *Session) Offset() int {
	return caret.Capture(s.root, s.Selection())
}

// Focused reports whether the surface has focus.
func (s *Session) Focused() bool {
	return s.focused
}

// SetMarkdown replaces the source of truth and re-renders the surface.
func (s *Session) SetMarkdown(md string) {
	s.markdown = md
	s.rerender()
}

// Focus gives the surface focus and puts the caret at its end.
func (s *Session) Focus() {
	s.focused = true
	s.sel = caret.Collapsed(caret.End(s.root))
}

// Select moves the caret to offset characters into the surface text.
// It focuses the surface if needed.
func (s *Session) Select(offset int) {
	s.focused = true
	s.sel = caret.Restore(s.root, offset)
}

// Blur removes focus. The caret is dropped.
func (s *Session) Blur() {
	s.focused = false
	s.sel = nil
}

// Input serializes the surface and, when the markdown changed, adopts it
// and re-renders. It is what an input event on the surface triggers.
func (s *Session) Input() {
	md := serialize.Markdown(s.root)
	if md == s.markdown {
		return
	}

	s.logger.Debug("surface edited",
		logging.FieldBytes, len(md),
		logging.FieldOffset, s.Offset(),
	)

	s.markdown = md
	s.rerender()
}

// markup renders the current markdown. Markdown that is blank renders to
// nothing rather than a run of line breaks.
func (s *Session) markup() string {
	if strings.TrimSpace(s.markdown) == "" {
		return ""
	}
	return s.renderer.Document(block.Classify(s.markdown))
}

// rerender rebuilds the surface from the markdown. The surface is left
// untouched when the new markup matches it; otherwise the caret is captured
// before the swap and restored after it.
func (s *Session) rerender() {
	next := surface.MustParse(s.markup())
	if surface.HTML(next) == surface.HTML(s.root) {
		return
	}

	if !s.focused {
		surface.ReplaceChildren(s.root, next)
		return
	}

	offset := caret.Capture(s.root, s.sel)
	surface.ReplaceChildren(s.root, next)
	s.sel = caret.Restore(s.root, offset)

	s.logger.Debug("surface replaced",
		logging.FieldBlocks, s.root.ChildCount(),
		logging.FieldOffset, offset,
	)
}
