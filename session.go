package hotspot

import (
	"image"
	"sync"
)

type Cursor int

const (
	CursorDefault Cursor = iota
	CursorPointer
)

func (c Cursor) String() string {
	switch c {
	case CursorPointer:
		return "pointer"
	default:
		return "default"
	}
}

// Detail is the content of a "show item" request.
type Detail struct {
	Key     string
	Title   string
	Message string
}

// Presenter receives everything a Session wants shown to the user.
// Its methods are called with the session lock held, so they must not
// call back into the Session (Active, Refresh, Move and so on) or they
// will deadlock.
type Presenter interface {
	// Render is called with the frame to display whenever the selection
	// changes; active is the selected key or "". The image is reused by the
	// session and is only valid until the next call.
	Render(img *image.NRGBA, active string)
	ShowDetail(d Detail)
	SetCursor(c Cursor)
}

// Session owns the active selection for one rendered surface and turns
// pointer events into presenter calls. Methods may be called from several
// goroutines; they are serialised internally.
type Session struct {
	mu        sync.Mutex
	seg       *Segmentation
	comp      *Compositor
	presenter Presenter
	active    string
	cursor    Cursor
}

func NewSession(seg *Segmentation, p Presenter) *Session {
	return &Session{
		seg:       seg,
		comp:      NewCompositor(seg),
		presenter: p,
	}
}

// Active returns the key of the hovered item.
func (s *Session) Active() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active, s.active != ""
}

// Refresh pushes the frame for the current selection.
func (s *Session) Refresh() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.presenter.Render(s.comp.Render(s.active), s.active)
}

// Move handles a pointer move to (x, y) over a surface currently laid out at r.
// Positions outside the image resolve to background.
func (s *Session) Move(x, y float64, r Rect) {
	key := ""
	if it, ok := s.seg.ItemAt(x, y, r); ok {
		key = it.Key
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setActive(key)
}

// Leave handles the pointer leaving the surface.
func (s *Session) Leave() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setActive("")
}

// Click requests the detail view of the item under (x, y). Clicks on
// background or unmapped components are ignored. The hover selection is
// left untouched.
func (s *Session) Click(x, y float64, r Rect) bool {
	it, ok := s.seg.ItemAt(x, y, r)
	if !ok {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.presenter.ShowDetail(Detail{Key: it.Key, Title: it.Title, Message: it.Message})
	return true
}

func (s *Session) setActive(key string) {
	cur := CursorDefault
	if key != "" {
		cur = CursorPointer
	}
	if cur != s.cursor {
		s.cursor = cur
		s.presenter.SetCursor(cur)
	}
	if key == s.active {
		return
	}
	s.active = key
	s.presenter.Render(s.comp.Render(key), key)
}
