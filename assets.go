package orbit

import (
	"container/heap"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// AssetStatus is the load state of a cache entry.
type AssetStatus uint8

const (
	AssetPending AssetStatus = iota // queued or in flight
	AssetLoaded                     // decoded and ready to draw
	AssetFailed                     // load failed; draw a placeholder
)

// String returns the lower-case name of the status.
func (s AssetStatus) String() string {
	switch s {
	case AssetPending:
		return "pending"
	case AssetLoaded:
		return "loaded"
	case AssetFailed:
		return "failed"
	default:
		return fmt.Sprintf("AssetStatus(%d)", uint8(s))
	}
}

var (
	// ErrLoaderClosed is recorded on assets requested after Close.
	ErrLoaderClosed = errors.New("orbit: asset loader closed")
	// ErrEmptyURL is recorded on assets requested with an empty reference.
	ErrEmptyURL = errors.New("orbit: empty asset url")
)

// Asset is one cache entry. Handles returned by Request are updated in place
// on the game thread by AssetLoader.Update and must only be read there.
type Asset struct {
	URL      string
	Status   AssetStatus
	Priority Priority
	// Image is the decoded source, set once loaded.
	Image image.Image
	// Texture is the GPU image created from Image, set once loaded when the
	// loader has a texture function.
	Texture *ebiten.Image
	// Err is the failure cause when Status is AssetFailed.
	Err error

	gen uint64
}

// Ready reports whether the asset can be drawn.
func (a *Asset) Ready() bool {
	return a != nil && a.Status == AssetLoaded
}

// Fetcher loads and decodes one image. Implementations must honour ctx
// cancellation; results arriving after the loader is closed are dropped.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (image.Image, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, url string) (image.Image, error)

// Fetch calls f(ctx, url).
func (f FetcherFunc) Fetch(ctx context.Context, url string) (image.Image, error) {
	return f(ctx, url)
}

// Progress is a snapshot of the loader counters over live cache entries.
type Progress struct {
	Loaded int
	Failed int
	Total  int
}

// Fraction returns Loaded/Total, or 0 when nothing was requested.
func (p Progress) Fraction() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Loaded) / float64(p.Total)
}

// Settled returns (Loaded+Failed)/Total, or 1 when nothing was requested.
// Loading indicators use this so a failed image does not stall them.
func (p Progress) Settled() float64 {
	if p.Total == 0 {
		return 1
	}
	return float64(p.Loaded+p.Failed) / float64(p.Total)
}

// Done reports whether every live entry has settled.
func (p Progress) Done() bool {
	return p.Loaded+p.Failed == p.Total
}

// LoaderOption configures an AssetLoader.
type LoaderOption func(*AssetLoader)

// WithLoaderLogger sets the logger used for load failures.
func WithLoaderLogger(logger *zap.Logger) LoaderOption {
	return func(l *AssetLoader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithConcurrency caps the number of fetches in flight. n < 1 means 1.
func WithConcurrency(n int) LoaderOption {
	return func(l *AssetLoader) {
		l.concurrency = max(n, 1)
	}
}

// WithStagger inserts a delay between dispatches.
func WithStagger(d time.Duration) LoaderOption {
	return func(l *AssetLoader) {
		l.stagger = d
	}
}

// WithTextureFunc sets the function that turns a decoded image into a GPU
// texture on the game thread. nil disables texture creation.
func WithTextureFunc(fn func(image.Image) *ebiten.Image) LoaderOption {
	return func(l *AssetLoader) {
		l.newTexture = fn
	}
}

// WithSettleFunc registers a callback invoked on the game thread each time an
// entry becomes loaded or failed.
func WithSettleFunc(fn func(*Asset)) LoaderOption {
	return func(l *AssetLoader) {
		l.onSettle = fn
	}
}

type assetRequest struct {
	url      string
	gen      uint64
	priority Priority
	seq      uint64
	index    int
}

type assetResult struct {
	url string
	gen uint64
	img image.Image
	err error
}

// assetQueue is a max-heap on priority, FIFO within a priority.
type assetQueue []*assetRequest

func (q assetQueue) Len() int { return len(q) }

func (q assetQueue) Less(i, j int) bool {
	if q[i].priority != q[j].priority {
		return q[i].priority > q[j].priority
	}
	return q[i].seq < q[j].seq
}

func (q assetQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *assetQueue) Push(x any) {
	r := x.(*assetRequest)
	r.index = len(*q)
	*q = append(*q, r)
}

func (q *assetQueue) Pop() any {
	old := *q
	n := len(old)
	r := old[n-1]
	old[n-1] = nil
	r.index = -1
	*q = old[:n-1]
	return r
}

// AssetLoader loads images asynchronously and caches them by url.
//
// Request, Release, Retain, Update and Progress belong to the game thread.
// Fetches run on background goroutines and hand their results back through a
// mutex-guarded queue that Update drains, so cache entries and counters are
// only ever written on the game thread.
type AssetLoader struct {
	fetcher     Fetcher
	logger      *zap.Logger
	concurrency int
	stagger     time.Duration
	newTexture  func(image.Image) *ebiten.Image
	onSettle    func(*Asset)

	sem    *semaphore.Weighted
	ctx    context.Context
	cancel context.CancelFunc
	wake   chan struct{}

	mu       sync.Mutex
	queue    assetQueue
	pending  map[string]*assetRequest // queued, not yet dispatched
	inflight map[string]uint64        // dispatched url -> generation
	results  []assetResult
	spare    []assetResult
	closed   bool
	seq      uint64

	// game thread only
	entries     map[string]*Asset
	gen         uint64
	loaded      int
	failed      int
	placeholder *ebiten.Image
}

// NewAssetLoader creates a loader and starts its dispatcher. The loader stops
// when ctx is cancelled or Close is called.
func NewAssetLoader(ctx context.Context, fetcher Fetcher, opts ...LoaderOption) *AssetLoader {
	l := &AssetLoader{
		fetcher:     fetcher,
		logger:      zap.NewNop(),
		concurrency: 4,
		newTexture:  ebiten.NewImageFromImage,
		wake:        make(chan struct{}, 1),
		pending:     make(map[string]*assetRequest),
		inflight:    make(map[string]uint64),
		entries:     make(map[string]*Asset),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.sem = semaphore.NewWeighted(int64(l.concurrency))
	l.ctx, l.cancel = context.WithCancel(ctx)
	go l.dispatch()
	return l
}

// Request returns the cache entry for url, queueing a load on first request.
// A pending entry requested again with a higher priority is promoted. A url
// released while its fetch is in flight joins that fetch instead of starting
// another. Once the parent context is done new entries fail at once with its
// error. The returned handle is never nil.
func (l *AssetLoader) Request(url string, priority Priority) *Asset {
	if a, ok := l.entries[url]; ok {
		if a.Status == AssetPending && priority > a.Priority {
			a.Priority = priority
			l.mu.Lock()
			if r, queued := l.pending[url]; queued {
				r.priority = priority
				heap.Fix(&l.queue, r.index)
			}
			l.mu.Unlock()
		}
		return a
	}

	l.gen++
	a := &Asset{URL: url, Status: AssetPending, Priority: priority, gen: l.gen}

	if url == "" {
		l.settle(a, nil, ErrEmptyURL)
		l.entries[url] = a
		return a
	}

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		a.Status = AssetFailed
		a.Err = ErrLoaderClosed
		return a
	}
	if err := l.ctx.Err(); err != nil {
		l.mu.Unlock()
		l.entries[url] = a
		l.settle(a, nil, err)
		return a
	}
	if gen, ok := l.inflight[url]; ok {
		a.gen = gen
		l.mu.Unlock()
		l.entries[url] = a
		return a
	}
	l.seq++
	r := &assetRequest{url: url, gen: a.gen, priority: priority, seq: l.seq}
	heap.Push(&l.queue, r)
	l.pending[url] = r
	l.mu.Unlock()

	l.entries[url] = a
	select {
	case l.wake <- struct{}{}:
	default:
	}
	return a
}

// Lookup returns the cache entry for url without requesting it.
func (l *AssetLoader) Lookup(url string) (*Asset, bool) {
	a, ok := l.entries[url]
	return a, ok
}

// Update applies finished fetches to the cache. Results for entries that were
// released (or re-requested since) are dropped, as is everything once the
// loader is closed. Requests still queued when the parent context ended fail
// with its error. It returns the number of entries that settled.
func (l *AssetLoader) Update() int {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return 0
	}
	results := l.results
	l.results = l.spare[:0]
	var stranded assetQueue
	if l.queue.Len() > 0 && l.ctx.Err() != nil {
		stranded = l.queue
		l.queue = nil
		clear(l.pending)
	}
	l.mu.Unlock()

	settled := 0
	for i, r := range results {
		a, ok := l.entries[r.url]
		if ok && a.gen == r.gen && a.Status == AssetPending {
			l.settle(a, r.img, r.err)
			settled++
		}
		results[i] = assetResult{}
	}
	for _, r := range stranded {
		a, ok := l.entries[r.url]
		if ok && a.gen == r.gen && a.Status == AssetPending {
			l.settle(a, nil, l.ctx.Err())
			settled++
		}
	}

	l.mu.Lock()
	l.spare = results[:0]
	l.mu.Unlock()
	return settled
}

func (l *AssetLoader) settle(a *Asset, img image.Image, err error) {
	if err == nil && img == nil {
		err = errors.New("orbit: fetcher returned no image")
	}
	if err != nil {
		a.Status = AssetFailed
		a.Err = err
		l.failed++
		l.logger.Warn("asset load failed",
			zap.String("url", a.URL),
			zap.Stringer("priority", a.Priority),
			zap.Error(err))
	} else {
		a.Status = AssetLoaded
		a.Image = img
		if l.newTexture != nil {
			a.Texture = l.newTexture(img)
		}
		l.loaded++
	}
	if l.onSettle != nil {
		l.onSettle(a)
	}
}

// Release evicts url from the cache and frees its texture. Releasing an
// unknown url is a no-op, so Release is safe to call repeatedly.
func (l *AssetLoader) Release(url string) {
	a, ok := l.entries[url]
	if !ok {
		return
	}
	delete(l.entries, url)
	switch a.Status {
	case AssetLoaded:
		l.loaded--
		if a.Texture != nil {
			a.Texture.Deallocate()
			a.Texture = nil
		}
	case AssetFailed:
		l.failed--
	case AssetPending:
		l.mu.Lock()
		if r, queued := l.pending[url]; queued && r.gen == a.gen {
			heap.Remove(&l.queue, r.index)
			delete(l.pending, url)
		}
		l.mu.Unlock()
	}
}

// Retain releases every entry whose url is not in keep and returns the
// number of released entries.
func (l *AssetLoader) Retain(keep map[string]bool) int {
	var drop []string
	for url := range l.entries {
		if !keep[url] {
			drop = append(drop, url)
		}
	}
	for _, url := range drop {
		l.Release(url)
	}
	return len(drop)
}

// Progress returns the counters over live cache entries.
func (l *AssetLoader) Progress() Progress {
	return Progress{Loaded: l.loaded, Failed: l.failed, Total: len(l.entries)}
}

// Close stops dispatching, cancels in-flight fetches and frees every cached
// texture. Results that arrive afterwards are dropped without touching any
// handle. Close is idempotent.
func (l *AssetLoader) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	l.queue = nil
	clear(l.pending)
	clear(l.inflight)
	l.results = nil
	l.mu.Unlock()

	l.cancel()
	for url, a := range l.entries {
		if a.Texture != nil {
			a.Texture.Deallocate()
			a.Texture = nil
		}
		delete(l.entries, url)
	}
	l.loaded, l.failed = 0, 0
	if l.placeholder != nil {
		l.placeholder.Deallocate()
		l.placeholder = nil
	}
}

// Closed reports whether Close has been called.
func (l *AssetLoader) Closed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}

// dispatch starts a fetch for each queued request, bounded by the
// concurrency semaphore. A slot is acquired before the next request is
// popped so that requests queued while every slot is busy still leave in
// priority order.
func (l *AssetLoader) dispatch() {
	for {
		if err := l.sem.Acquire(l.ctx, 1); err != nil {
			return
		}
		r, ok := l.next()
		if !ok {
			l.sem.Release(1)
			return
		}
		go l.fetch(r)

		if l.stagger > 0 {
			t := time.NewTimer(l.stagger)
			select {
			case <-t.C:
			case <-l.ctx.Done():
				t.Stop()
				return
			}
		}
	}
}

func (l *AssetLoader) next() (*assetRequest, bool) {
	for {
		l.mu.Lock()
		if l.closed || l.ctx.Err() != nil {
			l.mu.Unlock()
			return nil, false
		}
		if l.queue.Len() > 0 {
			r := heap.Pop(&l.queue).(*assetRequest)
			delete(l.pending, r.url)
			l.inflight[r.url] = r.gen
			l.mu.Unlock()
			return r, true
		}
		l.mu.Unlock()

		select {
		case <-l.wake:
		case <-l.ctx.Done():
			return nil, false
		}
	}
}

// fetch runs one load and posts its result for Update.
func (l *AssetLoader) fetch(r *assetRequest) {
	defer l.sem.Release(1)

	img, err := l.safeFetch(r.url)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.inflight[r.url] == r.gen {
		delete(l.inflight, r.url)
	}
	if l.closed {
		return
	}
	l.results = append(l.results, assetResult{url: r.url, gen: r.gen, img: img, err: err})
}

// safeFetch converts a panicking fetcher into a failed load.
func (l *AssetLoader) safeFetch(url string) (img image.Image, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("orbit: fetch %s panicked: %v", url, p)
		}
	}()
	return l.fetcher.Fetch(l.ctx, url)
}

// placeholderColor is the stone grey drawn for pending and failed assets.
var placeholderColor = color.RGBA{R: 0xb8, G: 0xb2, B: 0xa7, A: 0xff}

// Placeholder returns the 1x1 image drawn in place of pending or failed
// assets, creating it on first use. Scale it to the card size when drawing.
// Close frees it.
func (l *AssetLoader) Placeholder() *ebiten.Image {
	if l.placeholder == nil {
		l.placeholder = ebiten.NewImage(1, 1)
		l.placeholder.Fill(placeholderColor)
	}
	return l.placeholder
}
