package sheet

// Command is an executable, reversible mutation of the row store. Execute
// applies the captured writes; Undo restores every touched column of every
// touched row to its value from before Execute. Old values are captured
// when the Command is built, not recomputed, so a Command is only valid
// against the store state it was built from and must be executed
// immediately.
type Command interface {
	Execute()
	Undo()
}

// cellWrite is one captured cell mutation: the store position, the column
// id, the value present before Execute, and the value to write.
type cellWrite struct {
	row    int
	column string
	old    string
	value  string
}

// storeCommand applies a captured list of cell writes against a store.
// All four paste variants reduce to this: they differ only in how the
// write list is computed at build time.
type storeCommand struct {
	store  *Store
	writes []cellWrite
}

// Execute applies the new values, one whole-row replacement per touched row.
func (c *storeCommand) Execute() {
	c.apply(false)
}

// Undo restores the captured old values.
func (c *storeCommand) Undo() {
	c.apply(true)
}

func (c *storeCommand) apply(restore bool) {
	// Batch writes by row so each touched row is replaced exactly once.
	overlays := make(map[int]map[string]string)
	order := make([]int, 0)
	for _, w := range c.writes {
		overlay, ok := overlays[w.row]
		if !ok {
			overlay = make(map[string]string)
			overlays[w.row] = overlay
			order = append(order, w.row)
		}
		if restore {
			overlay[w.column] = w.old
		} else {
			overlay[w.column] = w.value
		}
	}
	for _, row := range order {
		c.store.setCells(row, overlays[row])
	}
}

// History is an undo/redo stack of Commands, owned by the UI layer. Push
// after a successful Execute; pushing discards any commands past the
// current position, since a new command starts a new branch of history.
type History struct {
	commands []Command
	index    int // -1 = base state, len-1 = at latest
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{index: -1}
}

// Push records an already-executed command, truncating the redo branch.
func (h *History) Push(cmd Command) {
	h.commands = h.commands[:h.index+1]
	h.commands = append(h.commands, cmd)
	h.index = len(h.commands) - 1
}

// Undo reverses the most recent command. Returns false at base state.
func (h *History) Undo() bool {
	if h.index < 0 {
		return false
	}
	h.commands[h.index].Undo()
	h.index--
	return true
}

// Redo re-executes the next command. Returns false when at the latest.
func (h *History) Redo() bool {
	if h.index >= len(h.commands)-1 {
		return false
	}
	h.index++
	h.commands[h.index].Execute()
	return true
}

// CanUndo reports whether Undo would do anything.
func (h *History) CanUndo() bool {
	return h.index >= 0
}

// CanRedo reports whether Redo would do anything.
func (h *History) CanRedo() bool {
	return h.index < len(h.commands)-1
}

// Clear drops all history, e.g. after the store is reloaded from disk.
func (h *History) Clear() {
	h.commands = nil
	h.index = -1
}
