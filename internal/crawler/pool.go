package crawler

import "sync"

// workerPool bounds the number of listings processed concurrently. The
// fetcher's inter-request delay still applies globally, so the pool mainly
// overlaps translation and image downloads.
type workerPool struct {
	semaphore chan struct{}
	wg        sync.WaitGroup
}

func newWorkerPool(maxWorkers int) *workerPool {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	return &workerPool{semaphore: make(chan struct{}, maxWorkers)}
}

// Submit runs job on a pool slot, blocking while the pool is full.
func (p *workerPool) Submit(job func()) {
	p.wg.Add(1)
	p.semaphore <- struct{}{}

	go func() {
		defer p.wg.Done()
		defer func() { <-p.semaphore }()
		job()
	}()
}

// Wait blocks until all submitted jobs finish.
func (p *workerPool) Wait() {
	p.wg.Wait()
}

// keySet tracks dedup keys seen during a run. Guarantees each key is
// upserted at most once per run, which keeps per-key writes serialized.
type keySet struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func newKeySet() *keySet {
	return &keySet{seen: make(map[string]struct{})}
}

// Add returns true when the key was not seen before.
func (s *keySet) Add(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.seen[key]; exists {
		return false
	}
	s.seen[key] = struct{}{}
	return true
}

// Size returns the number of distinct keys seen.
func (s *keySet) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}
