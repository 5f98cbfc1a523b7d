package board

// Drag tracks the card-move interaction: idle → dragging → dropped → idle.
// A drop with no resolvable target, or onto the card's current column, is a
// pure no-op.
type Drag struct {
	taskID string
	active bool
}

// Begin picks up a card.
func (d *Drag) Begin(taskID string) {
	d.taskID = taskID
	d.active = true
}

// Cancel returns to idle without any request.
func (d *Drag) Cancel() {
	*d = Drag{}
}

// Active reports whether a card is currently held.
func (d *Drag) Active() bool { return d.active }

// TaskID returns the held card's id.
func (d *Drag) TaskID() string { return d.taskID }

// Drop completes the drag. An empty target means the drop resolved nowhere
// and is treated as a cancelled drag. move is the board's MoveTask bound to a
// context. Returns whether a move request was issued.
func (d *Drag) Drop(targetStatusID string, move func(taskID, statusID string) (bool, error)) (bool, error) {
	if !d.active {
		return false, nil
	}
	taskID := d.taskID
	d.Cancel()

	if targetStatusID == "" {
		return false, nil
	}
	return move(taskID, targetStatusID)
}
