package store

import (
	"context"
	"log"
	"sync"
)

type Journal interface {
	SaveOperation(op *Operation) error
	SelectOperations(pool string, limit int) ([]*Operation, error)
}

// Store writes operations to the journal from a single goroutine so that callers never
// block on the database.
type Store struct {
	ctx           context.Context
	logger        *log.Logger
	operationChan chan *Operation
	journal       Journal
	wg            sync.WaitGroup
}

func NewStore(ctx context.Context, logger *log.Logger, journal Journal) *Store {
	s := &Store{
		ctx:           ctx,
		logger:        logger,
		operationChan: make(chan *Operation, 32),
		journal:       journal,
	}
	return s
}

func (s *Store) Start() {
	s.wg.Add(1)
	go s.store()
}

// Stop flushes pending operations and waits for the loop to exit. Operations queued after
// the context was cancelled are still saved here. StoreOperation must not be called afterwards.
func (s *Store) Stop() {
	close(s.operationChan)
	s.wg.Wait()
	for op := range s.operationChan {
		s.save(op)
	}
}

func (s *Store) store() {
	defer s.wg.Done()
	for {
		select {
		case op, ok := <-s.operationChan:
			if !ok {
				return
			}
			s.save(op)
		case <-s.ctx.Done():
			s.drain()
			s.logger.Printf("store exit")
			return
		}
	}
}

func (s *Store) drain() {
	for {
		select {
		case op, ok := <-s.operationChan:
			if !ok {
				return
			}
			s.save(op)
		default:
			return
		}
	}
}

func (s *Store) save(op *Operation) {
	if err := s.journal.SaveOperation(op); err != nil {
		s.logger.Printf("save operation %s(%s) err: %s", op.Kind, op.Signature, err.Error())
	}
}

func (s *Store) StoreOperation(op *Operation) {
	s.operationChan <- op
}

func (s *Store) GetOperations(pool string, limit int) ([]*Operation, error) {
	return s.journal.SelectOperations(pool, limit)
}
