package crawler

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	log "github.com/sirupsen/logrus"
	"github.com/tidelabs/tideth/pkg/routerclient"
	"github.com/tidelabs/tideth/pkg/safeclient"
)

const (
	New       Status = "NEW"
	Waiting   Status = "WAITING"
	Processed Status = "PROCESSED"
)

type Status string

type observableStatus struct {
	sync.RWMutex
	status Status
}

func NewObservableStatus() *observableStatus {
	return &observableStatus{
		status: New,
	}
}

func (o *observableStatus) Get() Status {
	o.RLock()
	defer o.RUnlock()
	return o.status
}

func (o *observableStatus) Set(status Status) {
	o.Lock()
	defer o.Unlock()
	o.status = status
}

// DepositObservable polls the Router for new Deposit events. The cursor
// starts at StartBlock (genesis when zero) and moves past the highest block
// observed so far, so an event is never fetched twice by the same
// observable.
type DepositObservable struct {
	RouterSvc  *routerclient.Client
	StartBlock uint64

	cursor *uint64
}

// NewDepositObservable ...
func NewDepositObservable(
	routerSvc *routerclient.Client, startBlock uint64,
) *DepositObservable {
	return &DepositObservable{RouterSvc: routerSvc, StartBlock: startBlock}
}

func (d *DepositObservable) observe(
	errChan chan error,
	eventChan chan Event,
	observableStatus *observableStatus,
	rateLimiter *rate.Limiter,
) {
	if d == nil {
		return
	}

	observableStatus.Set(Waiting)
	if err := rateLimiter.Wait(context.Background()); err != nil {
		errChan <- err
		return
	}

	since := d.since()
	deposits, err := d.RouterSvc.GetAllDeposits(context.Background(), since)
	if err != nil {
		errChan <- err
		return
	}

	observableStatus.Set(Processed)

	if len(deposits) <= 0 {
		return
	}
	for _, dep := range deposits {
		d.advance(dep.BlockHeight)
	}
	eventChan <- DepositsEvent{Deposits: deposits}
}

func (d *DepositObservable) key() string {
	return "deposit:" + d.RouterSvc.Address().Hex()
}

func (d *DepositObservable) since() *uint64 {
	if d.cursor != nil {
		return d.cursor
	}
	if d.StartBlock > 0 {
		since := d.StartBlock
		return &since
	}
	return nil
}

func (d *DepositObservable) advance(height uint64) {
	next := height + 1
	if d.cursor == nil || next > *d.cursor {
		d.cursor = &next
	}
}

// WithdrawalObservable polls the Router for new Withdraw events.
type WithdrawalObservable struct {
	RouterSvc  *routerclient.Client
	StartBlock uint64

	cursor *uint64
}

// NewWithdrawalObservable ...
func NewWithdrawalObservable(
	routerSvc *routerclient.Client, startBlock uint64,
) *WithdrawalObservable {
	return &WithdrawalObservable{RouterSvc: routerSvc, StartBlock: startBlock}
}

func (w *WithdrawalObservable) observe(
	errChan chan error,
	eventChan chan Event,
	observableStatus *observableStatus,
	rateLimiter *rate.Limiter,
) {
	if w == nil {
		return
	}

	observableStatus.Set(Waiting)
	if err := rateLimiter.Wait(context.Background()); err != nil {
		errChan <- err
		return
	}

	withdrawals, err := w.RouterSvc.GetAllWithdrawals(
		context.Background(), w.since(),
	)
	if err != nil {
		errChan <- err
		return
	}

	observableStatus.Set(Processed)

	if len(withdrawals) <= 0 {
		return
	}
	for _, wit := range withdrawals {
		w.advance(wit.BlockHeight)
	}
	eventChan <- WithdrawalsEvent{Withdrawals: withdrawals}
}

func (w *WithdrawalObservable) key() string {
	return "withdrawal:" + w.RouterSvc.Address().Hex()
}

func (w *WithdrawalObservable) since() *uint64 {
	if w.cursor != nil {
		return w.cursor
	}
	if w.StartBlock > 0 {
		since := w.StartBlock
		return &since
	}
	return nil
}

func (w *WithdrawalObservable) advance(height uint64) {
	next := height + 1
	if w.cursor == nil || next > *w.cursor {
		w.cursor = &next
	}
}

// ExecutionObservable polls the multisig account for new ExecutionSuccess
// events.
type ExecutionObservable struct {
	SafeSvc    *safeclient.Client
	StartBlock uint64

	cursor *uint64
}

// NewExecutionObservable ...
func NewExecutionObservable(
	safeSvc *safeclient.Client, startBlock uint64,
) *ExecutionObservable {
	return &ExecutionObservable{SafeSvc: safeSvc, StartBlock: startBlock}
}

func (e *ExecutionObservable) observe(
	errChan chan error,
	eventChan chan Event,
	observableStatus *observableStatus,
	rateLimiter *rate.Limiter,
) {
	if e == nil {
		return
	}

	observableStatus.Set(Waiting)
	if err := rateLimiter.Wait(context.Background()); err != nil {
		errChan <- err
		return
	}

	executions, err := e.SafeSvc.ExecutionSuccesses(
		context.Background(), e.since(),
	)
	if err != nil {
		errChan <- err
		return
	}

	observableStatus.Set(Processed)

	if len(executions) <= 0 {
		return
	}
	for _, exe := range executions {
		e.advance(exe.BlockHeight)
	}
	eventChan <- ExecutionsEvent{Executions: executions}
}

func (e *ExecutionObservable) key() string {
	return "execution:" + e.SafeSvc.Address().Hex()
}

func (e *ExecutionObservable) since() *uint64 {
	if e.cursor != nil {
		return e.cursor
	}
	if e.StartBlock > 0 {
		since := e.StartBlock
		return &since
	}
	return nil
}

func (e *ExecutionObservable) advance(height uint64) {
	next := height + 1
	if e.cursor == nil || next > *e.cursor {
		e.cursor = &next
	}
}

type observableHandler struct {
	observable       Observable
	wg               *sync.WaitGroup
	ticker           *time.Ticker
	eventChan        chan Event
	errChan          chan error
	stopChan         chan int
	observableStatus *observableStatus
	rateLimiter      *rate.Limiter
}

func newObservableHandler(
	observable Observable,
	wg *sync.WaitGroup,
	interval int,
	eventChan chan Event,
	errChan chan error,
	rateLimiter *rate.Limiter,
) *observableHandler {
	ticker := time.NewTicker(time.Duration(interval) * time.Millisecond)
	stopChan := make(chan int, 1)

	// registered before the polling goroutine exists, so a stop right after
	// an add can never release the group below zero.
	wg.Add(1)

	return &observableHandler{
		observable,
		wg,
		ticker,
		eventChan,
		errChan,
		stopChan,
		NewObservableStatus(),
		rateLimiter,
	}
}

func (oh *observableHandler) start() {
	oh.logAction("start")
	for {
		select {
		case <-oh.ticker.C:
			if oh.observableStatus.Get() != Waiting {
				oh.observable.observe(
					oh.errChan,
					oh.eventChan,
					oh.observableStatus,
					oh.rateLimiter,
				)
			}
		case <-oh.stopChan:
			oh.ticker.Stop()
			close(oh.stopChan)
			return
		}
	}
}

func (oh *observableHandler) stop() {
	oh.logAction("stop")
	oh.stopChan <- 1
	oh.wg.Done()
}

func (oh *observableHandler) logAction(action string) {
	log.Debugf("%s observing %v", action, oh.observable.key())
}
