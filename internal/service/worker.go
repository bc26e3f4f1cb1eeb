package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// TaskError accumulates multiple errors produced during bulk ingestion.
type TaskError struct {
	Errors []error
}

func (e *TaskError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := "multiple errors:"
	for _, err := range e.Errors {
		msg += " " + err.Error() + ";"
	}
	return msg
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e *TaskError) Unwrap() []error {
	return e.Errors
}

func (e *TaskError) append(err error) {
	if err == nil {
		return
	}
	e.Errors = append(e.Errors, err)
}

func (e *TaskError) asError() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

// IngestStats summarises a bulk run.
type IngestStats struct {
	Imported int
	Skipped  int
}

// BulkIngestor processes large user datasets and graph replays using worker pools.
type BulkIngestor struct {
	importer *ImportService
	workers  int
}

// NewBulkIngestor creates a new BulkIngestor instance with the provided concurrency.
func NewBulkIngestor(importer *ImportService, workers int) *BulkIngestor {
	if workers <= 0 {
		workers = 4
	}
	return &BulkIngestor{
		importer: importer,
		workers:  workers,
	}
}

// IngestUsers imports the provided users concurrently. Users that already
// exist are counted as skipped rather than failed.
func (bi *BulkIngestor) IngestUsers(ctx context.Context, users []UserImport) (IngestStats, error) {
	var imported, skipped atomic.Int64
	err := bi.run(ctx, len(users), func(idx int) error {
		err := bi.importer.ImportUser(ctx, users[idx])
		switch {
		case err == nil:
			imported.Add(1)
		case errors.Is(err, ErrAlreadyImported):
			skipped.Add(1)
			return nil
		}
		return err
	})
	return IngestStats{Imported: int(imported.Load()), Skipped: int(skipped.Load())}, err
}

// ReplaySymptoms projects every stored symptom into the symptom graph, one
// user per task.
func (bi *BulkIngestor) ReplaySymptoms(ctx context.Context) (int, error) {
	byUser, err := bi.importer.AllSymptoms(ctx)
	if err != nil {
		return 0, err
	}
	userIDs := make([]string, 0, len(byUser))
	for id := range byUser {
		userIDs = append(userIDs, id)
	}

	var projected atomic.Int64
	err = bi.run(ctx, len(userIDs), func(idx int) error {
		id := userIDs[idx]
		if err := bi.importer.ProjectUser(ctx, id, byUser[id]); err != nil {
			return err
		}
		projected.Add(int64(len(byUser[id])))
		return nil
	})
	return int(projected.Load()), err
}

func (bi *BulkIngestor) run(ctx context.Context, total int, workerFn func(idx int) error) error {
	if total == 0 {
		return nil
	}
	indexCh := make(chan int)
	errCh := make(chan error, total)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for idx := range indexCh {
			if err := workerFn(idx); err != nil {
				select {
				case errCh <- err:
				case <-ctx.Done():
					return
				}
			}
		}
	}

	for i := 0; i < bi.workers; i++ {
		wg.Add(1)
		go worker()
	}

Loop:
	for i := 0; i < total; i++ {
		select {
		case indexCh <- i:
		case <-ctx.Done():
			break Loop
		}
	}
	close(indexCh)
	wg.Wait()
	close(errCh)

	if err := ctx.Err(); err != nil {
		return err
	}

	var taskErr TaskError
	for err := range errCh {
		if err == nil {
			continue
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		taskErr.append(err)
	}
	return taskErr.asError()
}
