package service

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

const errorBuffer = 64

// Dispatcher запускает фоновые задачи на ограниченном пуле горутин.
// Ошибки задач не возвращаются вызывающему: они уходят в канал и логируются.
type Dispatcher struct {
	log    *slog.Logger
	sem    chan struct{}
	errs   chan taskError
	wg     sync.WaitGroup
	done   chan struct{}
	mu     sync.Mutex
	closed bool
}

type taskError struct {
	name  string
	attrs []any
	err   error
}

// NewDispatcher создаёт пул на workers одновременных задач и запускает приёмник ошибок.
func NewDispatcher(log *slog.Logger, workers int) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}

	d := &Dispatcher{
		log:  log,
		sem:  make(chan struct{}, workers),
		errs: make(chan taskError, errorBuffer),
		done: make(chan struct{}),
	}

	go d.sink()

	return d
}

// Go ставит задачу в очередь и сразу возвращает управление.
// false означает, что диспетчер закрыт и задача не будет выполнена.
func (d *Dispatcher) Go(name string, attrs []any, task func() error) bool {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		d.log.Warn("диспетчер закрыт, задача отброшена", slices.Concat(attrs, []any{"task", name})...)
		return false
	}
	d.wg.Add(1)
	d.mu.Unlock()

	go func() {
		defer d.wg.Done()

		d.sem <- struct{}{}
		defer func() { <-d.sem }()

		if err := run(task); err != nil {
			d.errs <- taskError{name: name, attrs: attrs, err: err}
		}
	}()

	return true
}

// Wait блокируется, пока не завершатся все запущенные задачи.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Close дожидается задач и останавливает приёмник ошибок.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	d.mu.Unlock()

	d.wg.Wait()
	close(d.errs)
	<-d.done
}

func run(task func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrTaskPanic, r)
		}
	}()
	return task()
}

func (d *Dispatcher) sink() {
	defer close(d.done)

	for te := range d.errs {
		errs := []error{te.err}
		if joined, ok := te.err.(interface{ Unwrap() []error }); ok {
			errs = joined.Unwrap()
		}
		for _, err := range errs {
			d.log.Error("фоновая задача завершилась с ошибкой", slices.Concat(te.attrs, []any{"task", te.name, "error", err})...)
		}
	}
}
