package state

// Schedule is an ordered, append-only list of handlers.
type Schedule struct {
	handlers []*Handler
}

func NewSchedule() *Schedule {
	return &Schedule{}
}

// AddHandler appends fn, a function of accessors or a *Handler.
func (s *Schedule) AddHandler(fn any) *Handler {
	h := NewHandler(fn)
	s.handlers = append(s.handlers, h)
	return h
}

// Run runs every handler against st in registration order. There is no
// per-handler recovery: a failing handler aborts the whole run.
func (s *Schedule) Run(st *State) {
	for _, h := range s.handlers {
		h.Run(st)
	}
}

func (s *Schedule) Len() int {
	return len(s.handlers)
}

// Names lists handler names in run order.
func (s *Schedule) Names() []string {
	names := make([]string, len(s.handlers))
	for i, h := range s.handlers {
		names[i] = h.Name()
	}
	return names
}
