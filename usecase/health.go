package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	domainHealth "github.com/estudia-app/estudia/domains/health"
	"github.com/estudia-app/estudia/infrastructure/valkey"
	"github.com/estudia-app/estudia/studyai"
)

const healthCheckInterval = 60 * time.Second

type healthService struct {
	db     *gorm.DB
	valkey *valkey.Client
	engine *studyai.Engine

	mu      sync.RWMutex
	records map[domainHealth.EntityType]*domainHealth.HealthRecord
}

func NewHealthService(db *gorm.DB, valkeyClient *valkey.Client, engine *studyai.Engine) domainHealth.IHealthUsecase {
	s := &healthService{
		db:      db,
		valkey:  valkeyClient,
		engine:  engine,
		records: make(map[domainHealth.EntityType]*domainHealth.HealthRecord),
	}
	for _, e := range []domainHealth.EntityType{domainHealth.EntityGenerator, domainHealth.EntityStore, domainHealth.EntityValkey} {
		s.records[e] = &domainHealth.HealthRecord{EntityType: e, Status: domainHealth.StatusUnknown}
	}
	return s
}

// CheckAll probes every entity and returns the fresh snapshot.
func (s *healthService) CheckAll(ctx context.Context) []domainHealth.HealthRecord {
	s.checkStore(ctx)
	s.checkValkey(ctx)
	s.checkGenerator()
	return s.GetStatus(ctx)
}

func (s *healthService) checkStore(ctx context.Context) {
	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		s.ReportFailure(domainHealth.EntityStore, err.Error())
		return
	}
	s.ReportSuccess(domainHealth.EntityStore)
}

func (s *healthService) checkValkey(ctx context.Context) {
	if s.valkey == nil {
		s.setStatus(domainHealth.EntityValkey, domainHealth.StatusDisabled, "valkey not configured")
		return
	}
	if err := s.valkey.Ping(ctx); err != nil {
		s.ReportFailure(domainHealth.EntityValkey, err.Error())
		return
	}
	s.ReportSuccess(domainHealth.EntityValkey)
}

// checkGenerator reports configuration state only; probing the provider
// would spend tokens on every health tick.
func (s *healthService) checkGenerator() {
	if s.engine == nil || s.engine.Disabled() {
		s.setStatus(domainHealth.EntityGenerator, domainHealth.StatusDisabled, "no ai credentials configured")
		return
	}
	s.ReportSuccess(domainHealth.EntityGenerator)
}

func (s *healthService) GetStatus(ctx context.Context) []domainHealth.HealthRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domainHealth.HealthRecord, 0, len(s.records))
	for _, e := range []domainHealth.EntityType{domainHealth.EntityGenerator, domainHealth.EntityStore, domainHealth.EntityValkey} {
		if r, ok := s.records[e]; ok {
			out = append(out, *r)
		}
	}
	return out
}

func (s *healthService) ReportFailure(entityType domainHealth.EntityType, message string) {
	s.setStatus(entityType, domainHealth.StatusError, message)
	logrus.WithFields(logrus.Fields{
		"entity": entityType,
		"error":  message,
	}).Warn("[HEALTH] Entity check failed")
}

func (s *healthService) ReportSuccess(entityType domainHealth.EntityType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[entityType]
	if !ok {
		return
	}
	now := time.Now()
	r.Status = domainHealth.StatusOk
	r.LastMessage = ""
	r.LastChecked = now
	r.LastSuccess = &now
}

func (s *healthService) setStatus(entityType domainHealth.EntityType, status domainHealth.Status, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[entityType]
	if !ok {
		return
	}
	r.Status = status
	r.LastMessage = message
	r.LastChecked = time.Now()
}

// StartPeriodicChecks runs background probes until the context ends.
func (s *healthService) StartPeriodicChecks(ctx context.Context) {
	go func() {
		s.CheckAll(ctx)
		ticker := time.NewTicker(healthCheckInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.CheckAll(ctx)
			}
		}
	}()
}
