// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lazycatapps/downloadhub/internal/gate"
	"github.com/lazycatapps/downloadhub/internal/models"
	apperrors "github.com/lazycatapps/downloadhub/internal/pkg/errors"
	"github.com/lazycatapps/downloadhub/internal/pkg/logger"
	"github.com/lazycatapps/downloadhub/internal/pkg/validator"
	"github.com/lazycatapps/downloadhub/internal/repository"
	"github.com/lazycatapps/downloadhub/internal/types"
)

// Defaults for gate session housekeeping.
const (
	DefaultGateSessionTTL = 10 * time.Minute
	sweepInterval         = time.Minute
)

// GateService defines the interface for download gate operations.
type GateService interface {
	// Resolve resolves a (software, part) pair without opening a session.
	Resolve(softwareID string, part int) (*models.Resolution, error)

	// Open resolves a (software, part) pair and starts a new countdown session.
	Open(softwareID string, part int) (*gate.Session, error)

	// Get retrieves a live session by ID.
	Get(sessionID string) (*gate.Session, error)

	// DownloadNow fires the session hand-off immediately.
	DownloadNow(sessionID string) (*gate.Session, error)

	// Cancel stops a session without hand-off and forgets it.
	Cancel(sessionID string) error

	// CountdownSeconds returns the configured countdown length.
	CountdownSeconds() int

	// Start starts the expired session sweeper.
	Start()

	// Stop cancels every session and stops the sweeper.
	Stop()
}

// gateServiceImpl implements GateService.
type gateServiceImpl struct {
	catalog  repository.CatalogRepository
	sessions repository.GateSessionRepository
	config   *types.GateConfig
	logger   logger.Logger

	ctx    context.Context    // Parent context of every session countdown
	cancel context.CancelFunc // Cancels all countdowns on Stop
	stopCh chan struct{}      // Signal to stop the sweeper
	wg     sync.WaitGroup     // Wait group for graceful shutdown
	once   sync.Once
}

// NewGateService creates a new gate service instance.
func NewGateService(
	catalog repository.CatalogRepository,
	sessions repository.GateSessionRepository,
	config *types.GateConfig,
	log logger.Logger,
) GateService {
	cfg := *config
	if cfg.CountdownSeconds <= 0 {
		cfg.CountdownSeconds = gate.DefaultCountdownSeconds
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = gate.DefaultTickInterval
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = DefaultGateSessionTTL
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &gateServiceImpl{
		catalog:  catalog,
		sessions: sessions,
		config:   &cfg,
		logger:   log,
		ctx:      ctx,
		cancel:   cancel,
		stopCh:   make(chan struct{}),
	}
}

// Resolve resolves a (software, part) pair without opening a session.
func (s *gateServiceImpl) Resolve(softwareID string, part int) (*models.Resolution, error) {
	if err := validator.ValidateSoftwareID(softwareID); err != nil {
		return nil, apperrors.InvalidInput(err)
	}
	if part < 1 || part > validator.MaxPartNumber {
		return nil, apperrors.NewInvalidInput("part must be a positive integer")
	}

	res, err := gate.Resolve(s.catalog.Software(), softwareID, part)
	if err != nil {
		// Not found is routine: a stale link or a typo
		s.logger.Debug("Download resolution failed for %s/%d: %v", softwareID, part, err)
		return nil, err
	}
	return res, nil
}

// Open resolves a (software, part) pair and starts a new countdown session.
func (s *gateServiceImpl) Open(softwareID string, part int) (*gate.Session, error) {
	res, err := s.Resolve(softwareID, part)
	if err != nil {
		return nil, err
	}

	session := gate.NewSession(uuid.New().String(), res, s.config.CountdownSeconds, s.config.SessionTTL)
	if err := s.sessions.Create(session); err != nil {
		return nil, apperrors.WrapInternal(err, "Failed to create download session")
	}

	session.Start(s.ctx, s.config.TickInterval)
	s.logger.Info("Download session %s opened for %s part %d (%s)", session.ID, res.SoftwareID, res.Part, res.VersionName)
	return session, nil
}

// Get retrieves a live session by ID.
func (s *gateServiceImpl) Get(sessionID string) (*gate.Session, error) {
	session, err := s.sessions.GetByID(sessionID)
	if err != nil {
		return nil, apperrors.WrapInternal(err, "Failed to load download session")
	}
	if session == nil {
		return nil, apperrors.ErrSessionNotFound
	}
	return session, nil
}

// DownloadNow fires the session hand-off immediately.
func (s *gateServiceImpl) DownloadNow(sessionID string) (*gate.Session, error) {
	session, err := s.Get(sessionID)
	if err != nil {
		return nil, err
	}

	if session.DownloadNow() {
		s.logger.Info("Download session %s handed off on request", session.ID)
	}
	return session, nil
}

// Cancel stops a session without hand-off and forgets it.
func (s *gateServiceImpl) Cancel(sessionID string) error {
	session, err := s.Get(sessionID)
	if err != nil {
		return err
	}

	session.Stop()
	if err := s.sessions.Delete(session.ID); err != nil {
		s.logger.Debug("Session %s already removed: %v", session.ID, err)
	}
	s.logger.Info("Download session %s cancelled", session.ID)
	return nil
}

// CountdownSeconds returns the configured countdown length.
func (s *gateServiceImpl) CountdownSeconds() int {
	return s.config.CountdownSeconds
}

// Start starts the expired session sweeper.
func (s *gateServiceImpl) Start() {
	s.logger.Info("Starting gate session sweeper (ttl: %s)", s.config.SessionTTL)

	s.wg.Add(1)
	go s.sweepWorker()
}

// Stop cancels every session and stops the sweeper.
func (s *gateServiceImpl) Stop() {
	s.once.Do(func() {
		s.logger.Info("Stopping gate service...")
		close(s.stopCh)
		s.cancel()
		for _, session := range s.sessions.List() {
			session.Stop()
		}
		s.wg.Wait()
		s.logger.Info("Gate service stopped")
	})
}

// sweepWorker periodically removes expired sessions.
func (s *gateServiceImpl) sweepWorker() {
	defer s.wg.Done()

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.sweep(time.Now())
		}
	}
}

// sweep stops and removes every session expired at now.
func (s *gateServiceImpl) sweep(now time.Time) int {
	expired := s.sessions.DeleteExpired(now)
	for _, session := range expired {
		session.Stop()
	}
	if len(expired) > 0 {
		s.logger.Debug("Swept %d expired download sessions", len(expired))
	}
	return len(expired)
}
