package backend

import (
	"time"
)

// retry runs fn until it succeeds or the configured attempts are used up, sleeping the
// configured delay between attempts.
func (backend *Backend) retry(name string, fn func() error) error {
	attempts := backend.retryAttempts
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			backend.logger.Printf("%s err: %s, trying %d......", name, err.Error(), i+1)
			select {
			case <-time.After(backend.retryDelay):
			case <-backend.ctx.Done():
				return backend.ctx.Err()
			}
		}
		err = fn()
		if err == nil {
			return nil
		}
	}
	return err
}
