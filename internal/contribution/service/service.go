// Package service is the contribution write path: attribute, persist,
// recompute the owner's balance, publish a change event.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	catalogmodels "nestegg/internal/catalog/models"
	"nestegg/internal/contribution/attribution"
	"nestegg/internal/contribution/events"
	"nestegg/internal/contribution/metrics"
	"nestegg/internal/contribution/models"
	profilemodels "nestegg/internal/profile/models"
	id "nestegg/pkg/domain"
	dErrors "nestegg/pkg/domain-errors"
	"nestegg/pkg/platform/sentinel"
	"nestegg/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,ProfileReader,InstitutionReader,Resolver,Recomputer,Publisher

type Store interface {
	Create(ctx context.Context, c *models.Contribution) error
	Update(ctx context.Context, c *models.Contribution) error
	Delete(ctx context.Context, contributionID id.ContributionID) error
	FindByID(ctx context.Context, contributionID id.ContributionID) (*models.Contribution, error)
	ListByUser(ctx context.Context, userID id.UserID) ([]*models.Contribution, error)
	ListByUserAndYear(ctx context.Context, userID id.UserID, year int) ([]*models.Contribution, error)
	ListByUserAndInstitutionType(ctx context.Context, userID id.UserID, t catalogmodels.InstitutionType) ([]*models.Contribution, error)
}

type ProfileReader interface {
	FindByID(ctx context.Context, userID id.UserID) (*profilemodels.UserProfile, error)
}

type InstitutionReader interface {
	FindByID(ctx context.Context, instID id.InstitutionID) (*catalogmodels.Institution, error)
}

type Resolver interface {
	Resolve(ctx context.Context, profile *profilemodels.UserProfile) attribution.Resolution
}

// Recomputer rebuilds the owner's balance after a write.
type Recomputer interface {
	Recompute(ctx context.Context, userID id.UserID) error
}

type Publisher interface {
	Publish(ctx context.Context, ev events.Event) error
}

// Service orchestrates contribution writes and reads.
//
// A write succeeds once the record is persisted. Balance recompute and event
// publishing run afterwards and their failures are logged, not returned: the
// snapshot catches up on the user's next write.
type Service struct {
	store        Store
	profiles     ProfileReader
	institutions InstitutionReader
	resolver     Resolver
	recomputer   Recomputer
	publisher    Publisher
	logger       *slog.Logger
	metrics      *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithPublisher(p Publisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

func New(store Store, profiles ProfileReader, institutions InstitutionReader, resolver Resolver, recomputer Recomputer, opts ...Option) *Service {
	s := &Service{
		store:        store,
		profiles:     profiles,
		institutions: institutions,
		resolver:     resolver,
		recomputer:   recomputer,
		publisher:    events.NopPublisher{},
		logger:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create registers a contribution for req.UserID. Status defaults to registered.
func (s *Service) Create(ctx context.Context, req *models.CreateRequest) (*models.Contribution, error) {
	if req == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	c := &models.Contribution{
		ID:        id.ContributionID(uuid.New()),
		UserID:    req.UserID,
		Status:    models.StatusRegistered,
		CreatedAt: now,
		UpdatedAt: now,
	}
	req.Apply(c)

	if err := s.attribute(ctx, c); err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, c); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "contribution already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create contribution")
	}
	s.metrics.IncrementWrite("create")
	s.logger.InfoContext(ctx, "contribution created",
		"request_id", requestcontext.RequestID(ctx),
		"user_id", c.UserID,
		"contribution_id", c.ID,
		"period", c.Period,
	)

	s.afterWrite(ctx, events.KindCreated, c)
	return c, nil
}

// Update replaces the mutable fields of a contribution and re-attributes it
// from the owner's current profile. The owner never changes.
func (s *Service) Update(ctx context.Context, contributionID id.ContributionID, in *models.ContributionInput) (*models.Contribution, error) {
	if in == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	c, err := s.load(ctx, contributionID)
	if err != nil {
		return nil, err
	}
	in.Apply(c)
	c.UpdatedAt = requestcontext.Now(ctx)

	if err := s.attribute(ctx, c); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, c); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "contribution not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update contribution")
	}
	s.metrics.IncrementWrite("update")
	s.logger.InfoContext(ctx, "contribution updated",
		"request_id", requestcontext.RequestID(ctx),
		"user_id", c.UserID,
		"contribution_id", c.ID,
	)

	s.afterWrite(ctx, events.KindUpdated, c)
	return c, nil
}

// Delete removes a contribution and recomputes the owner's balance. Attribution
// does not run on delete.
func (s *Service) Delete(ctx context.Context, contributionID id.ContributionID) error {
	c, err := s.load(ctx, contributionID)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, contributionID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "contribution not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete contribution")
	}
	s.metrics.IncrementWrite("delete")
	s.logger.InfoContext(ctx, "contribution deleted",
		"request_id", requestcontext.RequestID(ctx),
		"user_id", c.UserID,
		"contribution_id", c.ID,
	)

	s.afterWrite(ctx, events.KindDeleted, c)
	return nil
}

func (s *Service) Get(ctx context.Context, contributionID id.ContributionID) (*models.Contribution, error) {
	return s.load(ctx, contributionID)
}

// ListByUser returns every contribution of the user, newest first.
func (s *Service) ListByUser(ctx context.Context, userID id.UserID) ([]*models.Contribution, error) {
	records, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list contributions")
	}
	return records, nil
}

func (s *Service) ListByUserAndYear(ctx context.Context, userID id.UserID, year int) ([]*models.Contribution, error) {
	records, err := s.store.ListByUserAndYear(ctx, userID, year)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list contributions by year")
	}
	return records, nil
}

// ListByUserAndSystem returns contributions attributed to institutions of type t.
func (s *Service) ListByUserAndSystem(ctx context.Context, userID id.UserID, t catalogmodels.InstitutionType) ([]*models.Contribution, error) {
	if !t.IsValid() {
		return nil, dErrors.New(dErrors.CodeValidation, "system must be one of public_system, private_manager, other")
	}
	records, err := s.store.ListByUserAndInstitutionType(ctx, userID, t)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list contributions by system")
	}
	return records, nil
}

func (s *Service) load(ctx context.Context, contributionID id.ContributionID) (*models.Contribution, error) {
	c, err := s.store.FindByID(ctx, contributionID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "contribution not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load contribution")
	}
	return c, nil
}

// attribute sets c.Institution from the owner's profile. When the profile
// resolves to nothing, a caller-supplied institution is kept and filled in
// from the catalog.
func (s *Service) attribute(ctx context.Context, c *models.Contribution) error {
	res := s.resolver.Resolve(ctx, s.profileFor(ctx, c.UserID))
	if res.Institution != nil {
		c.Institution = &models.InstitutionRef{
			ID:   res.Institution.ID,
			Name: res.Institution.Name,
			Type: res.Institution.Type,
		}
		return nil
	}
	if c.Institution == nil {
		return nil
	}

	inst, err := s.institutions.FindByID(ctx, c.Institution.ID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeValidation, "institution_id does not match a known institution")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load institution")
	}
	c.Institution = &models.InstitutionRef{ID: inst.ID, Name: inst.Name, Type: inst.Type}
	return nil
}

// profileFor returns nil when the profile cannot be read; attribution then
// yields no institution.
func (s *Service) profileFor(ctx context.Context, userID id.UserID) *profilemodels.UserProfile {
	profile, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			s.logger.ErrorContext(ctx, "failed to load profile for attribution",
				"user_id", userID,
				"error", err,
			)
		}
		return nil
	}
	return profile
}

func (s *Service) afterWrite(ctx context.Context, kind events.Kind, c *models.Contribution) {
	if err := s.recomputer.Recompute(ctx, c.UserID); err != nil {
		s.logger.ErrorContext(ctx, "balance recompute failed after contribution write",
			"request_id", requestcontext.RequestID(ctx),
			"user_id", c.UserID,
			"contribution_id", c.ID,
			"kind", kind,
			"error", err,
		)
	}

	ev := events.NewEvent(kind, c, requestcontext.Now(ctx), requestcontext.RequestID(ctx))
	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.publisher.Publish(publishCtx, ev); err != nil {
		s.metrics.IncrementEventFailure()
		s.logger.WarnContext(ctx, "failed to publish contribution event",
			"request_id", requestcontext.RequestID(ctx),
			"event_id", ev.ID,
			"kind", kind,
			"error", err,
		)
	}
}

const publishTimeout = 5 * time.Second
