package persistence

import (
	"github.com/roylee0704/gron"
	"nodelete/internal/models"
	"nodelete/internal/persistence/interfaces"
	"nodelete/internal/providers"
	"nodelete/internal/structures"
	"sync"
	"time"
)

// Scheduler flushes the store to disk every saveInterval while it is dirty.
type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	store       *models.LogStore
	fileManager *FileManager
	metrics     providers.MetricsProviderInterface
	cron        *gron.Cron
	opsMu       sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()
	s.cron.AddFunc(gron.Every(s.config.Persistence.SaveInterval), s.flush)
	s.cron.Start()
}

func (s *Scheduler) flush() {
	if !s.store.Dirty() {
		return
	}
	if err := s.save(); err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting logs: %s", err)
		return
	}
	s.logger.Debugf(providers.TypeApp, "Persisted logs to file %s", s.config.Persistence.FilePath)
}

func (s *Scheduler) save() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	start := time.Now()
	err := s.fileManager.SaveToFile(s.config.Persistence.FilePath)
	s.metrics.ObservePersistenceDuration(time.Since(start))
	return err
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	return s.fileManager.LoadFromFile(s.config.Persistence.FilePath)
}

func (s *Scheduler) Persist() error {
	s.logger.Infof(providers.TypeApp, "Persisting logs to file...")
	err := s.save()
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting logs: %s", err)
		return err
	}
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, store *models.LogStore, fileManager *FileManager, metrics providers.MetricsProviderInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:      config,
		logger:      logger,
		store:       store,
		fileManager: fileManager,
		metrics:     metrics,
	}
}
