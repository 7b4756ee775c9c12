package ocr

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// blockingRecognizer waits for release or cancellation before answering.
type blockingRecognizer struct {
	mu       sync.Mutex
	started  chan string
	release  chan struct{}
	canceled []string
}

func newBlockingRecognizer() *blockingRecognizer {
	return &blockingRecognizer{started: make(chan string, 8), release: make(chan struct{})}
}

func (r *blockingRecognizer) Recognize(ctx context.Context, path string) ([]Box, error) {
	r.started <- path
	select {
	case <-r.release:
	case <-ctx.Done():
	}
	if err := ctx.Err(); err != nil {
		r.mu.Lock()
		r.canceled = append(r.canceled, path)
		r.mu.Unlock()
		return nil, err
	}
	return []Box{{Text: path}}, nil
}

func waitStarted(t *testing.T, r *blockingRecognizer, want string) {
	t.Helper()
	select {
	case got := <-r.started:
		if got != want {
			t.Fatalf("started %q, want %q", got, want)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("job for %q never started", want)
	}
}

func TestWorkerDeliversResult(t *testing.T) {
	rec := newBlockingRecognizer()
	results := make(chan Result, 4)
	w := NewWorker(rec, WithDeliver(func(r Result) { results <- r }))
	defer w.Close()

	w.Dispatch("a.png")
	waitStarted(t, rec, "a.png")
	close(rec.release)

	select {
	case r := <-results:
		if r.AssetID != "a.png" || r.Err != nil || len(r.Boxes) != 1 {
			t.Errorf("result = %+v", r)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("no result delivered")
	}
}

func TestWorkerSupersedesPreviousJob(t *testing.T) {
	rec := newBlockingRecognizer()
	results := make(chan Result, 4)
	w := NewWorker(rec, WithDeliver(func(r Result) { results <- r }))

	w.Dispatch("a.png")
	waitStarted(t, rec, "a.png")
	w.Dispatch("b.png")
	waitStarted(t, rec, "b.png")
	close(rec.release)

	select {
	case r := <-results:
		if r.AssetID != "b.png" {
			t.Errorf("delivered %q, want only b.png", r.AssetID)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("no result delivered")
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Errorf("superseded job delivered: %+v", <-results)
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.canceled) != 1 || rec.canceled[0] != "a.png" {
		t.Errorf("canceled = %v, want [a.png]", rec.canceled)
	}
}

func TestWorkerSkipsLiveSources(t *testing.T) {
	rec := newBlockingRecognizer()
	w := NewWorker(rec)
	w.Dispatch("clipboard:")
	w.Dispatch("x11:root")
	w.Dispatch("")
	w.Close()
	if len(rec.started) != 0 {
		t.Errorf("recognizer ran for a non-file source")
	}
}

func TestWorkerCloseCancels(t *testing.T) {
	rec := newBlockingRecognizer()
	delivered := false
	w := NewWorker(rec, WithDeliver(func(Result) { delivered = true }))
	w.Dispatch("a.png")
	waitStarted(t, rec, "a.png")
	w.Close()
	if delivered {
		t.Errorf("result delivered after Close")
	}
	w.Dispatch("b.png")
	if len(rec.started) != 0 {
		t.Errorf("dispatch after Close started a job")
	}
}

func TestRecognizeFileRejectsLiveSources(t *testing.T) {
	r := RecognizeFile(context.Background(), newBlockingRecognizer(), "x11:root")
	if !errors.Is(r.Err, ErrUnsupportedSource) {
		t.Errorf("err = %v, want ErrUnsupportedSource", r.Err)
	}
}

func TestCommandRecognizer(t *testing.T) {
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	dir := t.TempDir()
	script := filepath.Join(dir, "fake_ocr.sh")
	body := "echo \"(0,0),(4,0),(4,2),(0,2);$1;0.75\"\necho 'warming up' >&2\n"
	if err := os.WriteFile(script, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	rec := CommandRecognizer{Command: sh, Script: script}
	boxes, err := rec.Recognize(context.Background(), "page.png")
	if err != nil {
		t.Fatalf("Recognize: %v", err)
	}
	if len(boxes) != 1 || boxes[0].Text != "page.png" || boxes[0].Confidence != 0.75 {
		t.Errorf("boxes = %+v", boxes)
	}

	failing := filepath.Join(dir, "fail.sh")
	if err := os.WriteFile(failing, []byte("echo 'no model' >&2\nexit 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = CommandRecognizer{Command: sh, Script: failing}.Recognize(context.Background(), "page.png")
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected exit error, got %v", err)
	}
}
