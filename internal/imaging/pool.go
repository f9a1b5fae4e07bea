package imaging

import (
	"context"
	"errors"
	"sync"
)

var ErrPoolClosed = errors.New("imaging: decode pool closed")

// Request names one image file to decode.
type Request struct {
	Path         string
	FlipVertical bool
}

// Result is a decoded Request. Index is its position in the submitted batch.
type Result struct {
	Request
	Index int
	Image *Image
	Err   error
}

type decodeJob struct {
	Request
	index   int
	results chan<- Result
}

// DecodePool decodes image files on a fixed set of goroutines. It only does
// CPU work; uploading the pixels stays with the caller.
type DecodePool struct {
	jobs    chan decodeJob
	workers int
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewDecodePool starts workers goroutines reading from a queue of queueSize.
func NewDecodePool(workers, queueSize int) *DecodePool {
	ctx, cancel := context.WithCancel(context.Background())
	p := &DecodePool{
		jobs:    make(chan decodeJob, queueSize),
		workers: max(1, workers),
		ctx:     ctx,
		cancel:  cancel,
	}
	for range p.workers {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

func (p *DecodePool) worker() {
	defer p.wg.Done()

	for {
		select {
		case job := <-p.jobs:
			img, err := Load(job.Path, job.FlipVertical)
			// results is buffered for the whole batch
			job.results <- Result{Request: job.Request, Index: job.index, Image: img, Err: err}
		case <-p.ctx.Done():
			return
		}
	}
}

// LoadAll decodes reqs on the pool and returns the images in request order.
// Every failure is reported, joined in request order.
func (p *DecodePool) LoadAll(ctx context.Context, reqs []Request) ([]*Image, error) {
	if p.ctx.Err() != nil {
		return nil, ErrPoolClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	results := make(chan Result, len(reqs))
	for i, r := range reqs {
		select {
		case p.jobs <- decodeJob{Request: r, index: i, results: results}:
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-p.ctx.Done():
			return nil, ErrPoolClosed
		}
	}

	images := make([]*Image, len(reqs))
	errs := make([]error, len(reqs))
	for range reqs {
		select {
		case res := <-results:
			images[res.Index], errs[res.Index] = res.Image, res.Err
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-p.ctx.Done():
			return nil, ErrPoolClosed
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return images, nil
}

// Shutdown stops the workers and waits for them. Pending jobs are dropped.
func (p *DecodePool) Shutdown() {
	p.cancel()
	p.wg.Wait()
}

func (p *DecodePool) Workers() int { return p.workers }

// QueueLength returns the number of jobs waiting for a worker.
func (p *DecodePool) QueueLength() int {
	return len(p.jobs)
}
