package ocr

import (
	"context"
	"log"
	"sync"

	"github.com/example/imagine/internal/imageio"
)

// Worker runs one recognition job at a time in the background. Dispatching
// a new asset cancels the job for the previous one.
type Worker struct {
	rec     Recognizer
	deliver func(Result)

	mu      sync.Mutex
	root    context.Context
	stop    context.CancelFunc
	current context.CancelFunc
	closed  bool
	wg      sync.WaitGroup
}

// WorkerOption configures a Worker.
type WorkerOption func(*Worker)

// WithDeliver sets the function receiving results. It is called from the
// job goroutine.
func WithDeliver(fn func(Result)) WorkerOption {
	return func(w *Worker) {
		if fn != nil {
			w.deliver = fn
		}
	}
}

// NewWorker returns a Worker using rec.
func NewWorker(rec Recognizer, opts ...WorkerOption) *Worker {
	root, stop := context.WithCancel(context.Background())
	w := &Worker{
		rec:  rec,
		root: root,
		stop: stop,
		deliver: func(r Result) {
			if r.Err != nil {
				log.Printf("ocr %s: %v", r.AssetID, r.Err)
			}
		},
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

// Dispatch starts recognition of assetID and returns immediately. Identifiers
// that are not files are skipped.
func (w *Worker) Dispatch(assetID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.current != nil {
		w.current()
		w.current = nil
	}
	if !imageio.IsFile(assetID) {
		return
	}
	ctx, cancel := context.WithCancel(w.root)
	w.current = cancel
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer cancel()
		boxes, err := w.rec.Recognize(ctx, assetID)
		if ctx.Err() != nil {
			// Superseded or closed.
			return
		}
		w.deliver(Result{AssetID: assetID, Boxes: boxes, Err: err})
	}()
}

// Close cancels any running job and waits for it to finish.
func (w *Worker) Close() error {
	w.mu.Lock()
	w.closed = true
	w.stop()
	w.mu.Unlock()
	w.wg.Wait()
	return nil
}

// RecognizeFile runs rec synchronously on one asset, for command line use.
func RecognizeFile(ctx context.Context, rec Recognizer, assetID string) Result {
	if !imageio.IsFile(assetID) {
		return Result{AssetID: assetID, Err: ErrUnsupportedSource}
	}
	boxes, err := rec.Recognize(ctx, assetID)
	return Result{AssetID: assetID, Boxes: boxes, Err: err}
}
