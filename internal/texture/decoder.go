package texture

import (
	"context"
	"errors"
	"sync"
)

// ErrDecoderClosed is returned when submitting to a decoder that has shut down.
var ErrDecoderClosed = errors.New("texture: decoder closed")

// DecodeJob asks the decoder to read one resolved file.
type DecodeJob struct {
	Path string
	// Result receives exactly one DecodeResult unless the decoder shuts down first.
	Result chan<- DecodeResult
}

// DecodeResult carries the decoded pixels or the load error for a job.
type DecodeResult struct {
	Path  string
	Image *Image
	Err   error
}

// Decoder runs a Loader on a fixed set of goroutines so image decoding can
// overlap. Uploading stays with the caller.
type Decoder struct {
	loader   Loader
	jobQueue chan DecodeJob
	workers  int
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	once     sync.Once
}

// NewDecoder starts workers goroutines reading from a queue of queueSize jobs.
func NewDecoder(loader Loader, workers, queueSize int) *Decoder {
	if workers < 1 {
		workers = 1
	}
	if loader == nil {
		loader = FileLoader{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	d := &Decoder{
		loader:   loader,
		jobQueue: make(chan DecodeJob, queueSize),
		workers:  workers,
		ctx:      ctx,
		cancel:   cancel,
	}

	// Start worker goroutines
	for range workers {
		d.wg.Add(1)
		go d.worker()
	}
	return d
}

// Submit queues a job, blocking while the queue is full.
func (d *Decoder) Submit(ctx context.Context, job DecodeJob) error {
	select {
	case <-d.ctx.Done():
		return ErrDecoderClosed
	default:
	}
	select {
	case d.jobQueue <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-d.ctx.Done():
		return ErrDecoderClosed
	}
}

func (d *Decoder) worker() {
	defer d.wg.Done()

	for {
		select {
		case job := <-d.jobQueue:
			img, err := d.loader.Load(job.Path)
			select {
			case job.Result <- DecodeResult{Path: job.Path, Image: img, Err: err}:
			case <-d.ctx.Done():
				return
			}
		case <-d.ctx.Done():
			return
		}
	}
}

// Shutdown stops the workers and waits for them. Queued jobs that have not
// started are dropped.
func (d *Decoder) Shutdown() {
	d.once.Do(func() {
		d.cancel()
		d.wg.Wait()
	})
}

// QueueLength returns the number of jobs waiting for a worker.
func (d *Decoder) QueueLength() int {
	return len(d.jobQueue)
}
