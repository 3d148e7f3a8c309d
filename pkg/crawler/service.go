package crawler

import (
	"sync"

	"golang.org/x/time/rate"
)

const (
	eventQueueMaxSize = 100
	errorQueueMaxSize = 10
)

type ledgerCrawler struct {
	interval     int
	errChan      chan error
	eventChan    chan Event
	observables  map[string]*observableHandler
	errorHandler func(err error)
	mutex        *sync.RWMutex
	wg           *sync.WaitGroup
	rateLimiter  *rate.Limiter
}

// Opts defines the parameters needed for creating a crawler service with the
// NewService method.
type Opts struct {
	IntervalInMilliseconds int
	RequestsPerSecond      float64
	ErrorHandler           func(err error)
}

// NewService returns a ledgerCrawler that is ready to watch for ledger
// activity. Use Start and Stop methods to manage it.
func NewService(opts Opts) Service {
	rps := opts.RequestsPerSecond
	if rps <= 0 {
		rps = 10
	}
	return &ledgerCrawler{
		interval:     opts.IntervalInMilliseconds,
		errChan:      make(chan error, errorQueueMaxSize),
		eventChan:    make(chan Event, eventQueueMaxSize),
		observables:  map[string]*observableHandler{},
		errorHandler: opts.ErrorHandler,
		mutex:        &sync.RWMutex{},
		wg:           &sync.WaitGroup{},
		rateLimiter:  rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Start starts the crawler which periodically "scans" the ledger for the
// events of the registered observables.
func (lc *ledgerCrawler) Start() {
	for {
		err, more := <-lc.errChan
		if !more {
			return
		}
		go lc.errorHandler(err)
	}
}

// Stop stops the crawler and all its observables.
func (lc *ledgerCrawler) Stop() {
	lc.mutex.Lock()
	defer lc.mutex.Unlock()
	for _, obsHandler := range lc.observables {
		go obsHandler.stop()
	}
	lc.wg.Wait()
	lc.eventChan <- QuitEvent{}
	close(lc.errChan)
}

// GetEventChannel returns the Event channel which can be used to "listen" to
// ledger events.
func (lc *ledgerCrawler) GetEventChannel() chan Event {
	lc.mutex.RLock()
	defer lc.mutex.RUnlock()
	return lc.eventChan
}

// AddObservable adds a new Observable to the list of Observables to be
// "watched over" only if the same Observable is not already in the list.
func (lc *ledgerCrawler) AddObservable(observable Observable) {
	lc.mutex.Lock()
	defer lc.mutex.Unlock()

	if _, ok := lc.observables[observable.key()]; !ok {
		obsHandler := newObservableHandler(
			observable,
			lc.wg,
			lc.interval,
			lc.eventChan,
			lc.errChan,
			lc.rateLimiter,
		)

		lc.observables[observable.key()] = obsHandler
		go obsHandler.start()
	}
}

// RemoveObservable stops "watching" the given Observable.
func (lc *ledgerCrawler) RemoveObservable(observable Observable) {
	lc.mutex.Lock()
	defer lc.mutex.Unlock()

	if obsHandler, ok := lc.observables[observable.key()]; ok {
		obsHandler.stop()
		delete(lc.observables, observable.key())
	}
}
