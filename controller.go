package waylink

// Controller is a cheap, cloneable handle onto one connection's Registry
// and Socket. Generated handler code captures a Controller at setup time
// and uses it later, outside of Dispatch, to inject new objects or send
// events asynchronously.
//
// Cloning duplicates the view, not the underlying state: every Controller
// cloned from the same Connection (directly or transitively) observes and
// mutates the same Registry and the same Socket.
type Controller struct {
	registry *Registry
	socket   Socket
}

func newController(registry *Registry, socket Socket) *Controller {
	return &Controller{registry: registry, socket: socket}
}

// Clone returns a new Controller sharing this one's Registry and Socket.
func (c *Controller) Clone() *Controller {
	return &Controller{registry: c.registry, socket: c.socket}
}

// Socket returns the connection's socket.
func (c *Controller) Socket() Socket {
	return c.socket
}

// AllocateClientID returns the next client-range ID without registering
// anything under it. See Registry.AllocateClientID.
func (c *Controller) AllocateClientID() ObjectID {
	return c.registry.AllocateClientID()
}

// Insert associates id with handler in the shared registry, replacing any
// prior entry. Calling this from inside a handler's own Dispatch is a
// program fault: it overlaps this handler's exclusive use of the object
// with a second structural mutation of the table it is being dispatched
// from. Use the Task return value for that case instead.
func (c *Controller) Insert(id ObjectID, handler Handler) {
	c.registry.Insert(id, handler)
}

// InsertNextClient allocates a client ID and inserts handler under it,
// returning the chosen ID. Subject to the same dispatch-time restriction as
// Insert.
func (c *Controller) InsertNextClient(handler Handler) ObjectID {
	return c.registry.InsertNextClient(handler)
}
