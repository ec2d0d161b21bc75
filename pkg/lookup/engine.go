package lookup

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/time/rate"

	"github.com/Sosthene00/bitcoin-pro/pkg/descriptor"
	"github.com/Sosthene00/bitcoin-pro/pkg/explorer"
	"github.com/Sosthene00/bitcoin-pro/pkg/hdwallet"
)

// Status is the lifecycle state of an engine. It only moves forward within a
// pass, a new Lookup call restarts it from resolving.
type Status string

const (
	// StatusIdle means no pass has been run yet.
	StatusIdle Status = "idle"
	// StatusResolving means a pass is running.
	StatusResolving Status = "resolving"
	// StatusDone means the last pass completed.
	StatusDone Status = "done"
	// StatusFailed means the last pass stopped on an error.
	StatusFailed Status = "failed"
)

// DefaultRequestsPerSecond caps explorer queries when no explicit rate is
// given.
const DefaultRequestsPerSecond = 10

// Engine resolves the coins controlled by a descriptor by scanning its
// derivation indexes against a chain index. Coins found across passes
// accumulate in an outpoint-keyed set, so re-running a pass never duplicates.
type Engine struct {
	explorerSvc explorer.Service
	rateLimiter *rate.Limiter
	mode        Mode
	mutex       *sync.RWMutex
	status      Status
	set         *UtxoSet
}

// Opts defines the parameters needed for creating an engine with the
// NewEngine method.
type Opts struct {
	ExplorerSvc       explorer.Service
	Mode              Mode
	RequestsPerSecond float64
}

func (o Opts) validate() error {
	if o.ExplorerSvc == nil {
		return ErrNullExplorerService
	}
	if _, err := ParseMode(string(o.Mode)); err != nil {
		return err
	}
	return nil
}

// NewEngine returns an idle engine with an empty coin set.
func NewEngine(opts Opts) (*Engine, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	requestsPerSecond := opts.RequestsPerSecond
	if requestsPerSecond <= 0 {
		requestsPerSecond = DefaultRequestsPerSecond
	}

	return &Engine{
		explorerSvc: opts.ExplorerSvc,
		rateLimiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		mode:        opts.Mode,
		mutex:       &sync.RWMutex{},
		status:      StatusIdle,
		set:         NewUtxoSet(),
	}, nil
}

// Request is one resolution pass: the descriptor to scan and the derivation
// indexes to scan it at. A nil index set means a single pass at index 0,
// which is what fixed-key descriptors need.
type Request struct {
	Generator descriptor.Generator
	Indexes   *hdwallet.IndexRangeSet
}

// Lookup runs one resolution pass and returns the entries it added to the
// coin set. Indexes are scanned in order and, per index, script variants in
// their generation order; queries are rate limited and the pass stops at the
// first error, keeping whatever was already found. Only one pass may run at a
// time.
func (e *Engine) Lookup(ctx context.Context, req Request) ([]Entry, error) {
	if err := e.begin(); err != nil {
		return nil, err
	}

	added, err := e.resolve(ctx, req)
	if err != nil {
		e.setStatus(StatusFailed)
		return nil, err
	}

	e.setStatus(StatusDone)
	return added, nil
}

// Status returns the engine lifecycle state.
func (e *Engine) Status() Status {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	return e.status
}

// Unspents returns the accumulated coin set entries in discovery order.
func (e *Engine) Unspents() []Entry {
	return e.set.Entries()
}

// TotalValue returns the summed value of the accumulated coin set.
func (e *Engine) TotalValue() uint64 {
	return e.set.TotalValue()
}

func (e *Engine) begin() error {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	if e.status == StatusResolving {
		return ErrLookupInProgress
	}
	e.status = StatusResolving
	return nil
}

func (e *Engine) setStatus(status Status) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.status = status
}

func (e *Engine) resolve(ctx context.Context, req Request) ([]Entry, error) {
	limit := e.mode.Limit()
	scanned := 0
	added := make([]Entry, 0)

	next := indexIterator(req.Indexes)
	for limit <= 0 || scanned < limit {
		index, ok := next()
		if !ok {
			break
		}
		scanned++

		scripts, err := req.Generator.ScriptsAt(index)
		if err != nil {
			return nil, err
		}

		for _, script := range scripts {
			if err := e.rateLimiter.Wait(ctx); err != nil {
				return nil, err
			}

			unspents, err := e.explorerSvc.GetUnspentsForScript(script.Script)
			if err != nil {
				return nil, fmt.Errorf(
					"resolving %s scripts at index %d: %w",
					script.Variant, index, err,
				)
			}

			for _, unspent := range unspents {
				entry := Entry{
					OutPoint:        OutPoint{unspent.Hash(), unspent.Index()},
					Value:           unspent.Value(),
					Script:          unspent.Script(),
					DerivationIndex: index,
					Variant:         script.Variant,
					Confirmed:       unspent.IsConfirmed(),
				}
				if e.set.Add(entry) {
					added = append(added, entry)
				}
			}
		}
	}

	return added, nil
}

func indexIterator(indexes *hdwallet.IndexRangeSet) func() (uint32, bool) {
	if indexes == nil {
		done := false
		return func() (uint32, bool) {
			if done {
				return 0, false
			}
			done = true
			return 0, true
		}
	}
	iterator := indexes.Iterator()
	return iterator.Next
}
