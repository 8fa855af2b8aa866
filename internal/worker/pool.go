// worker/pool.go
package worker

// Job is a unit of work producing a value of type T.
type Job[T any] func() T

// Result pairs a job's output with the ID it was submitted under.
type Result[T any] struct {
	JobID  string
	Output T
}

// Pool fans jobs out over a fixed set of worker goroutines. The embedding
// step of resume ingestion uses it to run chunk batches concurrently.
type Pool[T any] struct {
	jobs    chan jobWrapper[T]
	results chan Result[T]
}

type jobWrapper[T any] struct {
	id string
	fn Job[T]
}

func NewPool[T any](workerCount int, bufferSize int) *Pool[T] {
	p := &Pool[T]{
		jobs:    make(chan jobWrapper[T], bufferSize),
		results: make(chan Result[T], bufferSize),
	}

	for i := 0; i < workerCount; i++ {
		go p.worker()
	}

	return p
}

func (p *Pool[T]) worker() {
	for job := range p.jobs {
		output := job.fn()
		p.results <- Result[T]{
			JobID:  job.id,
			Output: output,
		}
	}
}

func (p *Pool[T]) Submit(id string, fn Job[T]) {
	p.jobs <- jobWrapper[T]{id: id, fn: fn}
}

func (p *Pool[T]) Results() <-chan Result[T] {
	return p.results
}

// Close stops the workers once submitted jobs have drained. Submitting
// after Close panics.
func (p *Pool[T]) Close() {
	close(p.jobs)
}
