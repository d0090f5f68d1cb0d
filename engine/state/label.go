package state

import "reflect"

// ScheduleLabel identifies a schedule. Labels are distinct types, declared
// by embedding Label:
//
//	type Render struct{ state.Label }
//
// Only the type matters, never the value.
type ScheduleLabel interface {
	scheduleLabel()
}

type Label struct{}

func (Label) scheduleLabel() {}

func labelKey(label ScheduleLabel) TypeKey {
	if label == nil {
		fail(KindInvalidHandler, "Scheduler", TypeKey{}, "", "nil schedule label")
	}
	t := reflect.TypeOf(label)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return TypeKey{rt: t}
}
