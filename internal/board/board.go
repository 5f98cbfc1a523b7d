// Package board is the Kanban board view model: it caches the status and task
// lists fetched from the backend, partitions tasks into columns, and issues
// move mutations. The backend stays authoritative; every mutation is followed
// by a full reload and the board never holds optimistic state.
package board

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"taskboard/internal/api"
	"taskboard/internal/model"
	"taskboard/internal/store"
)

// Board loads and caches the statuses and tasks behind the Kanban view.
type Board struct {
	api *api.Client
	st  *store.Store // optional snapshot cache
	log *slog.Logger

	mu       sync.Mutex
	statuses []model.Status
	tasks    []model.Task
}

// Column is one rendered board column with its tasks.
type Column struct {
	Status model.Status
	Tasks  []model.Task
}

// New creates a Board. st may be nil to disable snapshot caching.
func New(client *api.Client, st *store.Store, log *slog.Logger) *Board {
	if log == nil {
		log = slog.Default()
	}
	return &Board{api: client, st: st, log: log}
}

// LoadData fetches the status and task lists concurrently, sorts statuses
// ascending by order, and replaces both cached lists together so a render
// never sees mismatched lists.
func (b *Board) LoadData(ctx context.Context) error {
	var statuses []model.Status
	var tasks []model.Task

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		statuses, err = b.api.Statuses(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		tasks, err = b.api.Tasks(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	sortStatuses(statuses)

	b.mu.Lock()
	b.statuses = statuses
	b.tasks = tasks
	b.mu.Unlock()

	b.cacheSnapshot(statuses, tasks)
	return nil
}

// sortStatuses orders ascending by the order field, nil treated as 0. The
// sort is stable so ties keep their fetch order.
func sortStatuses(statuses []model.Status) {
	sort.SliceStable(statuses, func(i, j int) bool {
		return statuses[i].OrderValue() < statuses[j].OrderValue()
	})
}

// Statuses returns the cached, ordered status list.
func (b *Board) Statuses() []model.Status {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]model.Status, len(b.statuses))
	copy(out, b.statuses)
	return out
}

// Tasks returns the cached task list.
func (b *Board) Tasks() []model.Task {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]model.Task, len(b.tasks))
	copy(out, b.tasks)
	return out
}

// Columns partitions the cached tasks by normalized status id, one column per
// status in render order.
func (b *Board) Columns() []Column {
	b.mu.Lock()
	defer b.mu.Unlock()

	cols := make([]Column, len(b.statuses))
	for i, s := range b.statuses {
		cols[i] = Column{Status: s}
	}
	byID := make(map[string]*Column, len(cols))
	for i := range cols {
		byID[cols[i].Status.ID] = &cols[i]
	}
	for _, t := range b.tasks {
		if col, ok := byID[t.StatusID()]; ok {
			col.Tasks = append(col.Tasks, t)
		}
	}
	return cols
}

// MoveTask changes taskID's status to statusID. Moving a task onto its
// current status is a no-op: no request is issued and no reload happens.
// On an effective move the backend is updated and the board fully reloaded.
// Returns whether a move was issued.
func (b *Board) MoveTask(ctx context.Context, taskID, statusID string) (bool, error) {
	b.mu.Lock()
	var current string
	found := false
	for _, t := range b.tasks {
		if t.ID == taskID {
			current = t.StatusID()
			found = true
			break
		}
	}
	b.mu.Unlock()

	if !found || current == statusID {
		return false, nil
	}

	if err := b.api.MoveTask(ctx, taskID, statusID); err != nil {
		b.log.Error("move failed", "task", taskID, "status", statusID, "err", err)
		return false, err
	}
	// Reflect only confirmed server state.
	if err := b.LoadData(ctx); err != nil {
		return true, err
	}
	return true, nil
}

// cacheSnapshot writes the confirmed board to the durable cache. Failures are
// logged only; the cache is a convenience, not part of the board contract.
func (b *Board) cacheSnapshot(statuses []model.Status, tasks []model.Task) {
	if b.st == nil {
		return
	}
	statusesJSON, err := json.Marshal(statuses)
	if err != nil {
		b.log.Error("failed to encode statuses for cache", "err", err)
		return
	}
	tasksJSON, err := json.Marshal(tasks)
	if err != nil {
		b.log.Error("failed to encode tasks for cache", "err", err)
		return
	}
	if err := b.st.SaveBoard(statusesJSON, tasksJSON); err != nil {
		b.log.Error("failed to cache board snapshot", "err", err)
	}
}
