// Package sessions keeps the order being built on each kiosk screen or cashier
// terminal. Every session owns its own editor and cart; requests against one
// session run one at a time.
package sessions

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aadit2805/project3-group7-deploy-sub000/models"
	"github.com/aadit2805/project3-group7-deploy-sub000/selection"
	"github.com/aadit2805/project3-group7-deploy-sub000/utils"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNoActiveLine    = errors.New("no order line is being edited")
	ErrEmptyCart       = errors.New("cart is empty")
)

const DefaultTTL = 30 * time.Minute

type Session struct {
	ID        string
	Surface   string
	CashierID *uint
	Editor    *selection.Editor
	// EditIndex is the cart line being changed, or -1 for a new line.
	EditIndex int
	Cart      selection.Cart
	CreatedAt time.Time
	UpdatedAt time.Time

	mu sync.Mutex
}

// Store holds the sessions of one ordering surface.
type Store struct {
	Surface string
	TTL     time.Duration
	Now     func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
	stop     chan struct{}
	once     sync.Once
}

func NewStore(surface string, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		Surface:  surface,
		TTL:      ttl,
		Now:      time.Now,
		sessions: make(map[string]*Session),
		stop:     make(chan struct{}),
	}
}

func (st *Store) Create(cashierID *uint) View {
	now := st.Now()
	s := &Session{
		ID:        uuid.NewString(),
		Surface:   st.Surface,
		CashierID: cashierID,
		EditIndex: -1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()

	utils.InfoLogger.WithField("surface", st.Surface).Debugf("session %s created", s.ID)
	return s.view()
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

func (st *Store) lookup(id string) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, nil
}

// Owner returns the cashier that opened the session, nil for kiosk sessions.
func (st *Store) Owner(id string) (*uint, error) {
	s, err := st.lookup(id)
	if err != nil {
		return nil, err
	}
	return s.CashierID, nil
}

// with runs fn holding the session lock and returns the resulting view.
func (st *Store) with(id string, fn func(s *Session) error) (View, error) {
	s, err := st.lookup(id)
	if err != nil {
		return View{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(s); err != nil {
		return View{}, err
	}
	s.UpdatedAt = st.Now()
	return s.view(), nil
}

func (st *Store) Get(id string) (View, error) {
	s, err := st.lookup(id)
	if err != nil {
		return View{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view(), nil
}

// StartLine opens the editor for a meal type. Switching meal types while a
// line is open clears its selections.
func (st *Store) StartLine(id string, mealType models.MealType) (View, error) {
	return st.with(id, func(s *Session) error {
		if s.Editor == nil {
			s.Editor = selection.NewEditor(mealType)
			return nil
		}
		s.Editor.Reset(mealType)
		return nil
	})
}

// Click forwards one menu item click to the open editor. The returned flag is
// false when the click was ignored.
func (st *Store) Click(id string, item models.MenuItem) (View, bool, error) {
	var changed bool
	v, err := st.with(id, func(s *Session) error {
		if s.Editor == nil {
			return ErrNoActiveLine
		}
		changed = s.Editor.Click(item, st.Now())
		return nil
	})
	return v, changed, err
}

// CommitLine adds the finished line to the cart, or writes it back over the
// line being edited, and closes the editor.
func (st *Store) CommitLine(id string) (View, error) {
	return st.with(id, func(s *Session) error {
		if s.Editor == nil {
			return ErrNoActiveLine
		}
		line, err := s.Editor.Commit()
		if err != nil {
			return err
		}
		if s.EditIndex >= 0 {
			if err := s.Cart.Replace(s.EditIndex, line); err != nil {
				return err
			}
		} else {
			s.Cart.Add(line)
		}
		s.closeEditor()
		return nil
	})
}

// EditLine reopens a committed line in the editor.
func (st *Store) EditLine(id string, index int) (View, error) {
	return st.with(id, func(s *Session) error {
		line, err := s.Cart.Line(index)
		if err != nil {
			return err
		}
		s.Editor = selection.NewEditor(line.MealType)
		s.Editor.Edit(line)
		s.EditIndex = index
		return nil
	})
}

func (st *Store) CancelLine(id string) (View, error) {
	return st.with(id, func(s *Session) error {
		s.closeEditor()
		return nil
	})
}

func (st *Store) RemoveLine(id string, index int) (View, error) {
	return st.with(id, func(s *Session) error {
		if err := s.Cart.Remove(index); err != nil {
			return err
		}
		switch {
		case s.EditIndex == index:
			s.closeEditor()
		case s.EditIndex > index:
			s.EditIndex--
		}
		return nil
	})
}

// Checkout hands the cart to place while the session is locked. The cart is
// cleared only when place succeeds.
func (st *Store) Checkout(id string, place func(lines []selection.Line, cashierID *uint) error) (View, error) {
	return st.with(id, func(s *Session) error {
		if s.Cart.Len() == 0 {
			return ErrEmptyCart
		}
		if err := place(s.Cart.Lines(), s.CashierID); err != nil {
			return err
		}
		s.Cart.Clear()
		s.closeEditor()
		return nil
	})
}

func (st *Store) Discard(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(st.sessions, id)
	return nil
}

// Sweep drops sessions idle for longer than the TTL and returns how many went.
func (st *Store) Sweep() int {
	cutoff := st.Now().Add(-st.TTL)

	st.mu.Lock()
	defer st.mu.Unlock()
	removed := 0
	for id, s := range st.sessions {
		s.mu.Lock()
		idle := s.UpdatedAt.Before(cutoff)
		s.mu.Unlock()
		if idle {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

func (st *Store) Start() {
	go func() {
		ticker := time.NewTicker(st.TTL / 2)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := st.Sweep(); n > 0 {
					utils.InfoLogger.WithField("surface", st.Surface).Infof("expired %d idle sessions", n)
				}
			case <-st.stop:
				return
			}
		}
	}()
}

func (st *Store) Stop() {
	st.once.Do(func() { close(st.stop) })
}

func (s *Session) closeEditor() {
	s.Editor = nil
	s.EditIndex = -1
}
