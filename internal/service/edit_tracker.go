package service

import (
	"sync"

	"github.com/Zxun2/teammates/internal/dto"
	"github.com/Zxun2/teammates/internal/models"
)

// editTracker accumulates modified rows of the existing-students grid for
// one course until they are submitted or discarded. The existing grid
// always renders columns in canonical order, so cell positions map
// directly onto enroll fields.
type editTracker struct {
	mu       sync.Mutex
	modified map[int]models.EnrollRequest
}

func newEditTracker() *editTracker {
	return &editTracker{modified: make(map[int]models.EnrollRequest)}
}

// apply folds one cell edit into the tracked state. Edits that do not
// change the value are ignored. The event carries the full row content,
// so the latest edit of a row wins wholesale.
func (t *editTracker) apply(event dto.CellEditEvent) {
	if event.OldValue == event.NewValue {
		return
	}

	cells := make([]string, len(event.RowCells))
	copy(cells, event.RowCells)
	if event.ColumnIndex >= 0 && event.ColumnIndex < len(cells) {
		cells[event.ColumnIndex] = event.NewValue
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.modified[event.RowIndex] = models.EnrollRequest{
		Section:  cellAt(cells, 0),
		Team:     cellAt(cells, 1),
		Name:     cellAt(cells, 2),
		Email:    cellAt(cells, 3),
		Comments: cellAt(cells, 4),
	}
}

// rows returns a copy of the tracked rows keyed by row index.
func (t *editTracker) rows() map[int]models.EnrollRequest {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[int]models.EnrollRequest, len(t.modified))
	for index, request := range t.modified {
		out[index] = request
	}
	return out
}

// indices returns the tracked row indices in ascending order.
func (t *editTracker) indices() []int {
	t.mu.Lock()
	defer t.mu.Unlock()
	set := rowSet{}
	for index := range t.modified {
		set.add(index)
	}
	return set.sorted()
}

// reset discards all tracked edits.
func (t *editTracker) reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.modified = make(map[int]models.EnrollRequest)
}
