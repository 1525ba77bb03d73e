package waylink

// Handler is the capability every dispatchable object implements. A handler
// owns arbitrary per-object state and is uniquely owned by the Registry
// once inserted; it may be swapped for another handler under the same ID
// with Registry.Insert / Connection.Insert.
//
// Dispatch consumes exactly the bytes it needs from payload and the FDs it
// needs from fds, and returns a Task describing any structural change it
// wants applied to the registry. It must not mutate the registry itself
// (through ctrl.Insert / ctrl.InsertNextClient) while executing — that
// would overlap its own exclusive use of the object with a second mutation
// of the table it is being dispatched from. The Task return channel exists
// so the Connection can apply such changes after dispatch returns.
type Handler interface {
	Dispatch(ctrl *Controller, header Header, payload *PayloadCursor, fds *FDCursor) (Task, error)
}

// HandlerFunc adapts a function to the Handler interface, for the common
// case of a stateless or closure-captured dispatcher.
type HandlerFunc func(ctrl *Controller, header Header, payload *PayloadCursor, fds *FDCursor) (Task, error)

// Dispatch calls f.
func (f HandlerFunc) Dispatch(ctrl *Controller, header Header, payload *PayloadCursor, fds *FDCursor) (Task, error) {
	return f(ctrl, header, payload, fds)
}

type taskKind int

const (
	taskNone taskKind = iota
	taskCreate
	taskDestroy
)

// Task is the discriminated result a handler returns to request structural
// change to the registry: no-op, insert a new handler, or remove an
// existing one. It exists so handlers can describe changes without holding
// a mutable borrow of the registry while they execute.
//
// A single Task describes at most one change. Client-side protocol code
// that needs several structural changes from one dispatch, or whose
// parameters depend on registry state read after dispatch starts, should
// perform those changes through the Controller outside of Dispatch (e.g.
// from a goroutine it hands work off to) rather than returning a richer
// Task — this mirrors the limitation the wire-protocol literature this
// runtime is modeled on calls out explicitly: Task is known-insufficient
// for arbitrarily rich client needs, and deliberately kept minimal here
// rather than papered over with an ad hoc queue.
type Task struct {
	kind    taskKind
	id      ObjectID
	handler Handler
}

// TaskNone requests no structural change.
func TaskNone() Task { return Task{kind: taskNone} }

// TaskCreate requests that id be inserted into the registry bound to
// handler, once the current dispatch returns.
func TaskCreate(id ObjectID, handler Handler) Task {
	return Task{kind: taskCreate, id: id, handler: handler}
}

// TaskDestroy requests that id be removed from the registry once the
// current dispatch returns. A handler may legally request its own
// destruction: removal is deferred until after its Dispatch call returns,
// so the handler's own dispatch completes normally first.
func TaskDestroy(id ObjectID) Task {
	return Task{kind: taskDestroy, id: id}
}
