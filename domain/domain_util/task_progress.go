package domain_util

import (
	"sync"
)

// TaskProgress tracks one pipeline run. The pipeline goroutine appends a
// status line as each stage starts; API readers snapshot under the lock.
type TaskProgress struct {
	ID          string
	Stage       string
	Status      string
	Messages    []string
	Mu          sync.Mutex
	Initialized bool
}

func (tp *TaskProgress) SetStage(stage, message string) {
	tp.Mu.Lock()
	defer tp.Mu.Unlock()
	tp.Stage = stage
	tp.Status = "processing"
	tp.Messages = append(tp.Messages, message)
	tp.Initialized = true
}

func (tp *TaskProgress) Finish(status, message string) {
	tp.Mu.Lock()
	defer tp.Mu.Unlock()
	tp.Status = status
	if message != "" {
		tp.Messages = append(tp.Messages, message)
	}
}

// Snapshot copies the mutable fields out so callers can serialize them
// without holding the lock.
func (tp *TaskProgress) Snapshot() (stage, status string, messages []string) {
	tp.Mu.Lock()
	defer tp.Mu.Unlock()
	return tp.Stage, tp.Status, append([]string(nil), tp.Messages...)
}

// ProgressRegistry is the in-memory index of live and recently finished
// task progress entries, keyed by job id.
type ProgressRegistry struct {
	mu    sync.RWMutex
	tasks map[string]*TaskProgress
}

func NewProgressRegistry() *ProgressRegistry {
	return &ProgressRegistry{tasks: make(map[string]*TaskProgress)}
}

func (r *ProgressRegistry) Register(id string) *TaskProgress {
	r.mu.Lock()
	defer r.mu.Unlock()
	tp := &TaskProgress{ID: id}
	r.tasks[id] = tp
	return tp
}

func (r *ProgressRegistry) Get(id string) (*TaskProgress, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tp, ok := r.tasks[id]
	return tp, ok
}
