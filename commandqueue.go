package sparsity

// Command is a deferred mutation against a World.
type Command interface {
	Apply(*World) error
}

// CommandQueue buffers Commands for later, exclusive application against a
// World. There is no per-storage locked gate: a CommandQueue is drained by
// a single call to World.ApplyCommands, which already holds exclusive
// access to the whole World for its duration.
type CommandQueue struct {
	commands []Command
}

// Enqueue appends cmd to the queue.
func (q *CommandQueue) Enqueue(cmd Command) {
	q.commands = append(q.commands, cmd)
}

// Len reports how many commands are currently queued.
func (q *CommandQueue) Len() int { return len(q.commands) }

// drain returns the queued commands and empties the queue.
func (q *CommandQueue) drain() []Command {
	cmds := q.commands
	q.commands = nil
	return cmds
}

// createEntityCommand creates one entity carrying the given component
// values, every stale-handle check a no-op since the entity does not exist
// yet. Callers wanting many identical entities enqueue many commands.
type createEntityCommand struct {
	values []any
	out    *Entity
}

// EnqueueCreate queues the creation of one entity with the given component
// values, optionally writing the resulting handle into out once applied.
func (q *CommandQueue) EnqueueCreate(out *Entity, values ...any) {
	q.Enqueue(createEntityCommand{values: values, out: out})
}

func (c createEntityCommand) Apply(w *World) error {
	e, err := w.Create(c.values...)
	if err != nil {
		return err
	}
	if c.out != nil {
		*c.out = e
	}
	return nil
}

// destroyEntityCommand destroys an entity if it is still live. Because
// Entity already encodes a generation, a handle captured before the slot
// was recycled simply fails World.Contains and the command is a silent
// no-op.
type destroyEntityCommand struct {
	entity Entity
}

// EnqueueDestroy queues the destruction of e.
func (q *CommandQueue) EnqueueDestroy(e Entity) {
	q.Enqueue(destroyEntityCommand{entity: e})
}

func (c destroyEntityCommand) Apply(w *World) error {
	w.Destroy(c.entity)
	return nil
}

// insertValueCommand inserts one component value onto an already-live
// entity.
type insertValueCommand struct {
	entity Entity
	value  any
}

// EnqueueInsert queues inserting value onto e.
func (q *CommandQueue) EnqueueInsert(e Entity, value any) {
	q.Enqueue(insertValueCommand{entity: e, value: value})
}

func (c insertValueCommand) Apply(w *World) error {
	if !w.Contains(c.entity) {
		return nil
	}
	return w.InsertValue(c.entity, c.value)
}

// removeInfoCommand removes one component type from an already-live
// entity.
type removeInfoCommand struct {
	entity Entity
	info   ComponentInfo
}

// EnqueueRemove queues removing ci from e.
func (q *CommandQueue) EnqueueRemove(e Entity, ci ComponentInfo) {
	q.Enqueue(removeInfoCommand{entity: e, info: ci})
}

func (c removeInfoCommand) Apply(w *World) error {
	if !w.Contains(c.entity) {
		return nil
	}
	return w.RemoveInfo(c.entity, c.info)
}
