// Package panels хранит состояние модальных окон и выдвижных панелей.
// Каждый Set создаётся явно и передаётся тем, кому он нужен.
package panels

import "sync"

// Имена панелей, которые использует витрина.
const (
	AdoptionModal = "adoption-modal"
	DonationModal = "donation-modal"
	CartDrawer    = "cart-drawer"
	FilterDrawer  = "filter-drawer"
)

// Listener получает уведомление об изменении состояния панели.
type Listener func(name string, open bool)

// Set: набор именованных панелей. Безопасен для конкурентного использования.
type Set struct {
	mu        sync.Mutex
	open      map[string]bool
	listeners map[int]Listener
	nextID    int
}

// New создаёт набор; перечисленные панели регистрируются закрытыми.
func New(names ...string) *Set {
	s := &Set{open: make(map[string]bool, len(names)), listeners: make(map[int]Listener)}
	for _, name := range names {
		s.open[name] = false
	}
	return s
}

// Open открывает панель.
func (s *Set) Open(name string) {
	s.set(name, func(bool) bool { return true })
}

// Close закрывает панель.
func (s *Set) Close(name string) {
	s.set(name, func(bool) bool { return false })
}

// Toggle переключает панель и возвращает новое состояние.
func (s *Set) Toggle(name string) bool {
	return s.set(name, func(open bool) bool { return !open })
}

// IsOpen сообщает, открыта ли панель. Неизвестная панель считается закрытой.
func (s *Set) IsOpen(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open[name]
}

// Snapshot возвращает копию состояния всех известных панелей.
func (s *Set) Snapshot() map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]bool, len(s.open))
	for name, open := range s.open {
		out[name] = open
	}
	return out
}

// Subscribe регистрирует слушателя и возвращает функцию отписки.
// Слушатель вызывается только при фактическом изменении состояния.
func (s *Set) Subscribe(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Set) set(name string, next func(bool) bool) bool {
	s.mu.Lock()
	prev := s.open[name]
	open := next(prev)
	s.open[name] = open
	var notify []Listener
	if open != prev {
		notify = make([]Listener, 0, len(s.listeners))
		for _, l := range s.listeners {
			notify = append(notify, l)
		}
	}
	s.mu.Unlock()

	// слушатели вызываются без блокировки, чтобы они могли читать Set
	for _, l := range notify {
		l(name, open)
	}
	return open
}
