package workers

type Workers struct {
	workers []Worker
}

// NewWorkers aggregates the given workers for unified startup.
func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Run starts every registered worker on its own goroutine.
func (w *Workers) Run() {
	for _, worker := range w.workers {
		go worker.Run()
	}
}
