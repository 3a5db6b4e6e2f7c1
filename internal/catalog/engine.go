package catalog

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/chris-regnier/featurectl/internal/feature"
	"github.com/chris-regnier/featurectl/internal/logging"
	"github.com/chris-regnier/featurectl/internal/prefs"
)

// Phase is the lifecycle of the most recent fetch.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Derived is everything a renderer needs that follows from the raw catalog
// and the filter state.
type Derived struct {
	Filtered []feature.Feature
	Visible  []feature.Feature
	Total    int
	HasMore  bool
}

// Derive recomputes the derived outputs from scratch. It is pure: calling it
// twice with the same inputs gives the same result and raw is not touched.
func Derive(raw []feature.Feature, s State) Derived {
	filtered := Apply(raw, s)
	return window(filtered, s.VisibleCount)
}

func window(filtered []feature.Feature, count int) Derived {
	r := Reveal{count: count}
	n := r.Visible(len(filtered))
	return Derived{
		Filtered: filtered,
		Visible:  filtered[:n:n],
		Total:    len(filtered),
		HasMore:  r.HasMore(len(filtered)),
	}
}

// Snapshot is passed to change subscribers after every mutation.
type Snapshot struct {
	Derived
	State State
	Phase Phase
	Err   error
	Query url.Values
}

// Options configures an Engine.
type Options struct {
	// BaseURL is the catalog page that share links point at.
	BaseURL string
	// Query seeds the filter state on mount, as the page's query string would.
	Query url.Values
}

// Engine is the controller behind one catalog view. It owns the filter state
// and is not safe for concurrent use: every method must be called from the
// goroutine that owns the view. Only FetchRequest.Run may run elsewhere.
type Engine struct {
	source Source
	prefs  *prefs.Bridge
	opts   Options
	logger *slog.Logger

	state    State
	reveal   Reveal
	raw      []feature.Feature
	filtered []feature.Feature
	phase    Phase
	err      error

	gen     uint64
	ctx     context.Context
	cancel  context.CancelFunc
	mounted bool

	listeners []func(Snapshot)
}

// NewEngine returns an unmounted engine reading from source. bridge may be
// nil, in which case display preferences are not persisted.
func NewEngine(source Source, bridge *prefs.Bridge, opts Options) *Engine {
	return &Engine{
		source: source,
		prefs:  bridge,
		opts:   opts,
		logger: logging.New("engine"),
		state:  NewState(),
		reveal: NewReveal(),
	}
}

// FetchRequest is one pending catalog read.
type FetchRequest struct {
	ctx    context.Context
	gen    uint64
	source Source
}

// FetchResult is handed back to Engine.Resolve.
type FetchResult struct {
	gen      uint64
	Features []feature.Feature
	Err      error
}

// Run performs the fetch. It is the only engine operation that may run off
// the owning goroutine.
func (r FetchRequest) Run() FetchResult {
	features, err := r.source.Fetch(r.ctx)
	return FetchResult{gen: r.gen, Features: features, Err: err}
}

// Mount seeds the state from the query string and stored preferences and
// returns the initial fetch.
func (e *Engine) Mount(ctx context.Context) FetchRequest {
	if e.cancel != nil {
		e.cancel()
	}
	e.ctx, e.cancel = context.WithCancel(ctx)
	e.mounted = true

	e.state = NewState()
	if e.opts.Query != nil {
		ParseQuery(e.opts.Query, &e.state)
	}
	e.state.CompactDisplay = e.prefs.CompactMode()
	e.reveal = NewReveal()
	e.raw = nil
	e.filtered = nil
	e.err = nil

	return e.Fetch()
}

// Unmount abandons the view. Fetches still in flight are cancelled and their
// results discarded.
func (e *Engine) Unmount() {
	if e.cancel != nil {
		e.cancel()
	}
	e.mounted = false
	e.listeners = nil
}

// Mounted reports whether the view is live.
func (e *Engine) Mounted() bool {
	return e.mounted
}

// Fetch starts a new catalog read, superseding any earlier one.
func (e *Engine) Fetch() FetchRequest {
	ctx := e.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	e.gen++
	e.phase = PhaseLoading
	e.notify()
	return FetchRequest{ctx: ctx, gen: e.gen, source: e.source}
}

// RetryFetch is Fetch under the name the retry affordance uses.
func (e *Engine) RetryFetch() FetchRequest {
	return e.Fetch()
}

// Resolve applies a finished fetch. Results for an unmounted view or a
// superseded request are dropped and Resolve returns false.
func (e *Engine) Resolve(res FetchResult) bool {
	if !e.mounted || res.gen != e.gen {
		e.logger.Debug("discarding fetch result", "generation", res.gen, "current", e.gen, "mounted", e.mounted)
		return false
	}

	if res.Err != nil {
		e.raw = nil
		e.err = res.Err
		e.phase = PhaseFailed
	} else {
		e.raw = res.Features
		e.err = nil
		e.phase = PhaseReady
	}
	e.refilter()
	e.notify()
	return true
}

// Load mounts the engine if needed and fetches synchronously.
func (e *Engine) Load(ctx context.Context) error {
	var req FetchRequest
	if e.mounted {
		req = e.Fetch()
	} else {
		req = e.Mount(ctx)
	}
	e.Resolve(req.Run())
	return e.err
}

// OnStateChange registers fn to be called synchronously after every
// mutation.
func (e *Engine) OnStateChange(fn func(Snapshot)) {
	e.listeners = append(e.listeners, fn)
}

// State returns a copy of the current filter state.
func (e *Engine) State() State {
	s := e.state
	s.VisibleCount = e.reveal.Count()
	return s
}

// Phase returns the fetch phase.
func (e *Engine) Phase() Phase { return e.phase }

// IsLoading reports whether a fetch is outstanding.
func (e *Engine) IsLoading() bool { return e.phase == PhaseLoading }

// LastError returns the error of the last resolved fetch, if it failed.
func (e *Engine) LastError() error { return e.err }

// Features returns the raw snapshot.
func (e *Engine) Features() []feature.Feature { return e.raw }

// Filtered returns the full filtered, sorted result.
func (e *Engine) Filtered() []feature.Feature { return e.filtered }

// VisibleFeatures returns the revealed prefix of the filtered result.
func (e *Engine) VisibleFeatures() []feature.Feature {
	n := e.reveal.Visible(len(e.filtered))
	return e.filtered[:n:n]
}

// TotalFilteredCount is the length of the filtered result.
func (e *Engine) TotalFilteredCount() int { return len(e.filtered) }

// HasMore reports whether scrolling would reveal more results.
func (e *Engine) HasMore() bool { return e.reveal.HasMore(len(e.filtered)) }

// Query returns the shareable query string values for the current state.
func (e *Engine) Query() url.Values { return EncodeQuery(e.state) }

// ShareURL returns the catalog page URL for the current state, or the bare
// query string when no base URL is configured.
func (e *Engine) ShareURL() string {
	if e.opts.BaseURL == "" {
		return "?" + e.Query().Encode()
	}
	u, err := ShareURL(e.opts.BaseURL, e.state)
	if err != nil {
		return "?" + e.Query().Encode()
	}
	return u
}

// Snapshot returns the current derived outputs.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Derived: window(e.filtered, e.reveal.Count()),
		State:   e.State(),
		Phase:   e.phase,
		Err:     e.err,
		Query:   e.Query(),
	}
}

// SetSearchQuery changes the search and shrinks the window back to the
// first page.
func (e *Engine) SetSearchQuery(q string) {
	e.state.SearchQuery = q
	e.reveal.Reset()
	e.refilter()
	e.notify()
}

// SetCategoryFilter changes the category. The reveal window is kept as is.
func (e *Engine) SetCategoryFilter(c Category) {
	e.state.Category = c
	e.refilter()
	e.notify()
}

// SetPlatformFilter records the platform choice. It does not affect results.
func (e *Engine) SetPlatformFilter(p Platform) {
	e.state.Platform = p
	e.notify()
}

// SetRequireCommands records the commands toggle. It does not affect results.
func (e *Engine) SetRequireCommands(v bool) {
	e.state.RequireCommands = v
	e.notify()
}

// SetCompactDisplay updates the layout toggle and persists it. Persistence
// failures never reach the caller.
func (e *Engine) SetCompactDisplay(v bool) {
	e.state.CompactDisplay = v
	e.prefs.SetCompactMode(v)
	e.notify()
}

// OnScrollThreshold reveals the next page when the reader nears the bottom.
// It reports whether anything changed.
func (e *Engine) OnScrollThreshold() bool {
	if !e.reveal.Grow(len(e.filtered)) {
		return false
	}
	e.notify()
	return true
}

func (e *Engine) refilter() {
	e.filtered = Apply(e.raw, e.state)
}

func (e *Engine) notify() {
	if len(e.listeners) == 0 {
		return
	}
	snap := e.Snapshot()
	for _, fn := range e.listeners {
		fn(snap)
	}
}

// Page is the serialized view of a Snapshot, as printed by "list --json"
// and returned by the HTTP surface.
type Page struct {
	Total    int               `json:"total"`
	Visible  int               `json:"visible"`
	HasMore  bool              `json:"hasMore"`
	Query    string            `json:"query"`
	Compact  bool              `json:"compact"`
	Features []feature.Feature `json:"features"`
}

// NewPage flattens s. When all is set every filtered feature is included,
// not only the revealed window.
func NewPage(s Snapshot, all bool) Page {
	features := s.Visible
	if all {
		features = s.Filtered
	}
	if features == nil {
		features = []feature.Feature{}
	}
	return Page{
		Total:    s.Total,
		Visible:  len(features),
		HasMore:  s.HasMore && !all,
		Query:    s.Query.Encode(),
		Compact:  s.State.CompactDisplay,
		Features: features,
	}
}

// RevealTo grows the window page by page until at least n features are
// visible or nothing is left to reveal. It is how non-scrolling callers ask
// for a given page size.
func (e *Engine) RevealTo(n int) {
	for e.reveal.Visible(len(e.filtered)) < n && e.OnScrollThreshold() {
	}
}
