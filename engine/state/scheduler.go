package state

import (
	"github.com/spaghettifunk/ember/engine/core"
	"golang.org/x/exp/slices"
)

// Scheduler maps schedule labels to schedules.
type Scheduler struct {
	schedules map[TypeKey]*Schedule
}

func NewScheduler() *Scheduler {
	return &Scheduler{schedules: make(map[TypeKey]*Schedule)}
}

// AddHandler appends fn to the schedule of label, creating the schedule on
// first use.
func (s *Scheduler) AddHandler(label ScheduleLabel, fn any) {
	key := labelKey(label)
	h := NewHandler(fn)

	if s.schedules == nil {
		s.schedules = make(map[TypeKey]*Schedule)
	}
	schedule, ok := s.schedules[key]
	if !ok {
		schedule = NewSchedule()
		s.schedules[key] = schedule
	}
	schedule.AddHandler(h)

	core.LogDebug("registered handler %s on %s %v", h.Name(), key, h.Access())
}

// Run runs the schedule of label against st. A label nothing was
// registered under is a no-op.
func (s *Scheduler) Run(label ScheduleLabel, st *State) {
	if schedule, ok := s.schedules[labelKey(label)]; ok {
		schedule.Run(st)
	}
}

func (s *Scheduler) Has(label ScheduleLabel) bool {
	_, ok := s.schedules[labelKey(label)]
	return ok
}

func (s *Scheduler) Schedule(label ScheduleLabel) (*Schedule, bool) {
	schedule, ok := s.schedules[labelKey(label)]
	return schedule, ok
}

// Labels lists the label types that have a schedule, sorted by name.
func (s *Scheduler) Labels() []TypeKey {
	labels := make([]TypeKey, 0, len(s.schedules))
	for k := range s.schedules {
		labels = append(labels, k)
	}
	slices.SortFunc(labels, compareKeys)
	return labels
}
