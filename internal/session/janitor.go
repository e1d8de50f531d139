package session

import (
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Janitor periodically evicts sessions that have been idle too long
type Janitor struct {
	store    *Store
	logger   *logrus.Logger
	interval time.Duration
	maxIdle  time.Duration
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewJanitor(store *Store, interval, maxIdle time.Duration, logger *logrus.Logger) *Janitor {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
		logger.SetLevel(logrus.InfoLevel)
	}

	return &Janitor{
		store:    store,
		logger:   logger,
		interval: interval,
		maxIdle:  maxIdle,
		stopChan: make(chan struct{}),
	}
}

// Start begins the periodic sweep
func (j *Janitor) Start() {
	j.wg.Add(1)
	go j.run()
}

func (j *Janitor) run() {
	defer j.wg.Done()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-j.stopChan:
			return
		case now := <-ticker.C:
			if evicted := j.store.EvictIdle(j.maxIdle, now); evicted > 0 {
				j.logger.WithFields(logrus.Fields{
					"evicted":   evicted,
					"remaining": j.store.Len(),
				}).Info("Evicted idle sessions")
			}
		}
	}
}

// Stop ends the sweep and waits for it to exit. Calling it more than once is safe.
func (j *Janitor) Stop() {
	j.stopOnce.Do(func() {
		close(j.stopChan)
	})
	j.wg.Wait()
}
