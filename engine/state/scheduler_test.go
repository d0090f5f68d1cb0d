package state

import (
	"reflect"
	"testing"
)

type initLabel struct{ Label }
type updateLabel struct{ Label }
type idleLabel struct{ Label }

func countToTen(n ResMut[int]) {
	if *n.Get() < 10 {
		*n.Get()++
	}
}

func TestSchedulerCounterScenario(t *testing.T) {
	s := New()
	Add(s, 0)

	sched := NewScheduler()
	sched.AddHandler(initLabel{}, countToTen)
	sched.AddHandler(updateLabel{}, countToTen)

	read := func() int {
		r := Fetch[Res[int]](s)
		defer r.Release()
		return r.Get()
	}

	sched.Run(initLabel{}, s)
	if got := read(); got != 1 {
		t.Fatalf("after init = %d, want 1", got)
	}
	for i := 0; i < 9; i++ {
		sched.Run(updateLabel{}, s)
	}
	if got := read(); got != 10 {
		t.Fatalf("after nine updates = %d, want 10", got)
	}
	for i := 0; i < 5; i++ {
		sched.Run(updateLabel{}, s)
	}
	if got := read(); got != 10 {
		t.Fatalf("counter must stay at 10, got %d", got)
	}
}

func TestSchedulerRunsInRegistrationOrder(t *testing.T) {
	type trace []string

	s := New()
	Add(s, trace{})

	sched := NewScheduler()
	for _, name := range []string{"a", "b", "c"} {
		sched.AddHandler(updateLabel{}, func(tr ResMut[trace]) {
			*tr.Get() = append(*tr.Get(), name)
		})
	}

	for run := 0; run < 3; run++ {
		sched.Run(updateLabel{}, s)
	}

	r := Fetch[Res[trace]](s)
	defer r.Release()
	want := trace{"a", "b", "c", "a", "b", "c", "a", "b", "c"}
	if !reflect.DeepEqual(r.Get(), want) {
		t.Fatalf("order = %v, want %v", r.Get(), want)
	}
}

func TestSchedulerUnknownLabelIsNoop(t *testing.T) {
	s := New()
	Add(s, 5)

	sched := NewScheduler()
	sched.AddHandler(updateLabel{}, countToTen)
	sched.Run(idleLabel{}, s)

	var empty Scheduler
	empty.Run(idleLabel{}, s)

	if s.Len() != 1 {
		t.Fatalf("store mutated, Len = %d", s.Len())
	}
	r := Fetch[Res[int]](s)
	defer r.Release()
	if r.Get() != 5 {
		t.Fatalf("value changed to %d", r.Get())
	}
	if sched.Has(idleLabel{}) {
		t.Fatal("idle label must have no schedule")
	}
}

func TestSchedulerLabelsAndSchedules(t *testing.T) {
	sched := NewScheduler()
	sched.AddHandler(updateLabel{}, countToTen)
	sched.AddHandler(&initLabel{}, countToTen)
	sched.AddHandler(updateLabel{}, func() {})

	labels := sched.Labels()
	if len(labels) != 2 || labels[0].String() != "state.initLabel" || labels[1].String() != "state.updateLabel" {
		t.Fatalf("labels = %v", labels)
	}

	update, ok := sched.Schedule(updateLabel{})
	if !ok || update.Len() != 2 {
		t.Fatalf("update schedule = %v, %v", update, ok)
	}
	names := update.Names()
	if names[0] != "state.countToTen" {
		t.Fatalf("names = %v", names)
	}
	if !sched.Has(initLabel{}) {
		t.Fatal("pointer and value labels share a schedule")
	}
}

func TestSchedulerRejectsNilLabel(t *testing.T) {
	sched := NewScheduler()
	mustPanicWith(t, KindInvalidHandler, func() {
		sched.AddHandler(nil, func() {})
	})
}

func TestScheduleAbortsOnFatalHandler(t *testing.T) {
	s := New()
	Add(s, 0)

	after := false
	schedule := NewSchedule()
	schedule.AddHandler(func(Res[string]) {})
	schedule.AddHandler(func() { after = true })

	mustPanicWith(t, KindMissingResource, func() {
		schedule.Run(s)
	})
	if after {
		t.Fatal("handlers after a fatal one must not run")
	}
}
