package editor

import (
	"unicode/utf8"

	"github.com/yaklabco/gomdedit/internal/logging"
	"github.com/yaklabco/gomdedit/pkg/caret"
	"github.com/yaklabco/gomdedit/pkg/surface"
)

// Key names understood by Key.
const (
	KeyArrowRight = "ArrowRight"
	KeyArrowLeft  = "ArrowLeft"
	KeyHome       = "Home"
	KeyEnd        = "End"
	KeyBackspace  = "Backspace"
	KeyTab        = "Tab"
)

// Type inserts text one character at a time, running the input handler
// after each, as a user typing into the surface would.
func (s *Session) Type(text string) {
	if !s.ready("type") {
		return
	}
	for _, r := range text {
		s.insert(string(r))
		s.Input()
	}
}

// Paste inserts text at the caret as a single edit. Only plain text is
// accepted; markup in text is inserted literally.
func (s *Session) Paste(text string) {
	if text == "" || !s.ready("paste") {
		return
	}
	s.insert(text)
	s.Input()
}

// Key handles a named key press. It reports whether the key was handled;
// unknown keys and keys pressed while unfocused are ignored.
func (s *Session) Key(name string) bool {
	if !s.ready(name) {
		return false
	}

	switch name {
	case KeyArrowRight:
		s.sel = caret.Collapsed(s.right(s.sel.Focus))
	case KeyArrowLeft:
		s.sel = caret.Collapsed(s.left(s.sel.Focus))
	case KeyHome:
		s.sel = caret.Collapsed(s.home(s.sel.Focus))
	case KeyEnd:
		s.sel = caret.Collapsed(s.end(s.sel.Focus))
	case KeyBackspace:
		if s.backspace() {
			s.Input()
		}
	case KeyTab:
		s.insert(s.tab)
		s.Input()
	default:
		s.logger.Debug("key ignored", logging.FieldKey, name)
		return false
	}
	return true
}

func (s *Session) ready(action string) bool {
	if s.focused && s.sel != nil {
		return true
	}
	s.logger.Debug("surface not focused", logging.FieldKey, action)
	return false
}

// insert splices text in at the caret and leaves the caret after it.
func (s *Session) insert(text string) {
	p := s.insertionPoint()
	t := p.Node

	runes := []rune(t.Text)
	at := clamp(p.Offset, 0, len(runes))
	t.Text = string(runes[:at]) + text + string(runes[at:])

	s.sel = caret.Collapsed(caret.Position{Node: t, Offset: at + utf8.RuneCountInString(text)})
}

// insertionPoint resolves the caret to a text position, creating an empty
// text node when the caret sits between two elements.
func (s *Session) insertionPoint() caret.Position {
	p := s.canonical(s.sel.Focus)
	if p.Node.IsText() {
		return p
	}

	parent := p.Node
	k := clamp(p.Offset, 0, parent.ChildCount())

	if prev := parent.Child(k - 1); prev.IsText() {
		return caret.Position{Node: prev, Offset: prev.Len()}
	}
	if next := parent.Child(k); next.IsText() {
		return caret.Position{Node: next, Offset: 0}
	}

	t := surface.NewText("")
	surface.InsertAt(parent, t, k)
	return caret.Position{Node: t, Offset: 0}
}

// backspace deletes the character before the caret. At the start of a
// block it removes an empty preceding block or merges the block into the
// previous one. It reports whether the surface changed.
func (s *Session) backspace() bool {
	p := s.canonical(s.sel.Focus)

	if p.Node.IsText() && p.Offset > 0 {
		s.deleteBefore(p.Node, p.Offset)
		return true
	}

	if p.Node == s.root {
		// The caret sits before a block with no text, such as a rule.
		prev := s.root.Child(p.Offset - 1)
		if prev == nil {
			return false
		}
		if last := lastText(prev); last != nil && last.Len() > 0 {
			s.deleteBefore(last, last.Len())
			return true
		}
		surface.RemoveChild(s.root, prev)
		s.sel = caret.Collapsed(caret.Position{Node: s.root, Offset: p.Offset - 1})
		return true
	}

	ord := newOrder(s.root)
	prev := ord.textBefore(ord.boundary(p))
	current := p.Node.Block(s.root)

	if prev != nil && prev.Block(s.root) == current && prev.Len() > 0 {
		s.deleteBefore(prev, prev.Len())
		return true
	}

	return s.joinPrevious(current, prev)
}

// joinPrevious handles Backspace at the start of block. A text-less block
// right before it is removed; otherwise block's inline content moves to the
// end of the block holding prev.
func (s *Session) joinPrevious(block, prev *surface.Node) bool {
	if block == nil || block.Prev == nil {
		return false
	}

	if len(surface.TextNodes(block.Prev)) == 0 {
		surface.RemoveChild(s.root, block.Prev)
		return true
	}
	if prev == nil {
		return false
	}

	content := block
	if first := firstText(block); first != nil {
		content = first.Parent
		for content != block && isInline(content) {
			content = content.Parent
		}
	}

	target := prev.Parent
	for isInline(target) {
		target = target.Parent
	}

	for content.FirstChild != nil {
		surface.AppendChild(target, content.FirstChild)
	}
	surface.RemoveChild(s.root, block)

	s.sel = caret.Collapsed(caret.Position{Node: prev, Offset: prev.Len()})
	return true
}

// deleteBefore removes the rune before index i of text node t and moves
// the caret there. A text node left empty is pruned together with any
// inline ancestors it leaves empty, and the caret is re-derived.
func (s *Session) deleteBefore(t *surface.Node, i int) {
	offset := caret.Capture(s.root, caret.Collapsed(caret.Position{Node: t, Offset: i}))

	runes := []rune(t.Text)
	if len(runes) == 0 {
		return
	}
	i = clamp(i, 1, len(runes))
	t.Text = string(runes[:i-1]) + string(runes[i:])

	if t.Text != "" {
		s.sel = caret.Collapsed(caret.Position{Node: t, Offset: i - 1})
		return
	}

	prune(t)
	s.sel = caret.Restore(s.root, offset-1)
}

// prune removes n and then each inline ancestor that became empty.
func prune(n *surface.Node) {
	for n != nil && n.Parent != nil {
		parent := n.Parent
		surface.RemoveChild(parent, n)
		if parent.HasChildren() || !isInline(parent) {
			return
		}
		n = parent
	}
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
