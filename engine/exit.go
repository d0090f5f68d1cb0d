package engine

// Exit is the resource handlers use to stop the application. Runners check
// it after every frame.
type Exit struct {
	requested bool
	code      int
}

func (e *Exit) Request(code int) {
	e.requested = true
	e.code = code
}

func (e Exit) Requested() bool {
	return e.requested
}

func (e Exit) Code() int {
	return e.code
}
