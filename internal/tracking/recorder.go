package tracking

import (
	"context"
	"log"
	"sync"
	"time"
)

// Recorder persists page views off the request path. Views are queued on a
// bounded channel and written by a single worker; when the queue is full
// the view is dropped rather than blocking the request.
type Recorder struct {
	repository Repository
	queue      chan PageView
	wg         sync.WaitGroup
	cancel     context.CancelFunc

	mu      sync.Mutex
	running bool
}

// NewRecorder creates a Recorder with the given queue capacity.
func NewRecorder(repository Repository, queueSize int) *Recorder {
	return &Recorder{
		repository: repository,
		queue:      make(chan PageView, queueSize),
	}
}

// Start launches the background writer.
func (r *Recorder) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return
	}
	r.running = true

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.wg.Add(1)
	go r.run(ctx)
}

// Stop drains the writer and waits for it to finish.
func (r *Recorder) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	r.mu.Unlock()

	r.cancel()
	r.wg.Wait()
}

// Record queues a page view. Never blocks.
func (r *Recorder) Record(page, ipAddress string) {
	view := PageView{Page: page, IPAddress: ipAddress, CreatedAt: time.Now()}
	select {
	case r.queue <- view:
	default:
		log.Printf("tracking: queue full, dropping view of %s", page)
	}
}

func (r *Recorder) run(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case view := <-r.queue:
			r.persist(view)
		case <-ctx.Done():
			// Drain whatever is already queued before exiting.
			for {
				select {
				case view := <-r.queue:
					r.persist(view)
				default:
					return
				}
			}
		}
	}
}

func (r *Recorder) persist(view PageView) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.repository.Create(ctx, &view); err != nil {
		log.Printf("tracking: failed to store view of %s: %v", view.Page, err)
	}
}
