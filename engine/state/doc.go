// Package state is the resource-injection runtime of the engine.
//
// A State holds at most one value per static Go type (a resource). Handlers
// are plain functions whose parameters are capability accessors:
//
//	func update(counter state.ResMut[int], cfg state.Res[Config]) {
//		if *counter.Get() < cfg.Get().Limit {
//			*counter.Get()++
//		}
//	}
//
// A Scheduler groups handlers under schedule labels and runs them, in
// registration order, against a State. Every run resolves each parameter
// fresh from the State, calls the function and then releases the borrows.
//
// Borrowing follows the usual reader/writer rule per resource: any number of
// Res[T] at once, or a single ResMut[T] and nothing else on T. A missing
// resource or a conflicting borrow is a wiring bug and panics with an
// *AccessError naming the type, the operation and the handler.
//
// A State is not safe for concurrent use. The engine App guards its State
// with a mutex and only touches it from one goroutine at a time.
package state
