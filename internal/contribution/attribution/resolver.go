// Package attribution decides which pension institution a contribution is
// attributed to, from the user's profile at write time.
package attribution

import (
	"context"
	"log/slog"

	catalogmodels "nestegg/internal/catalog/models"
	"nestegg/internal/contribution/metrics"
	profilemodels "nestegg/internal/profile/models"
)

// Outcome describes how an institution was (or was not) chosen.
type Outcome string

const (
	OutcomeMatched  Outcome = "matched"
	OutcomeFallback Outcome = "fallback"
	OutcomeNone     Outcome = "none"
)

// Catalog lists institutions of a type in catalog order.
type Catalog interface {
	ListByType(ctx context.Context, t catalogmodels.InstitutionType) ([]*catalogmodels.Institution, error)
}

// Resolution is the result of a Resolve call. Institution is nil for OutcomeNone.
type Resolution struct {
	Institution *catalogmodels.Institution
	Outcome     Outcome
}

type rule func(ctx context.Context, profile *profilemodels.UserProfile) (Resolution, error)

// Resolver maps a profile to an institution through a regime dispatch table.
type Resolver struct {
	catalog Catalog
	logger  *slog.Logger
	metrics *metrics.Metrics
	rules   map[profilemodels.Regime]rule
}

type Option func(*Resolver)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Resolver) {
		r.metrics = m
	}
}

func New(catalog Catalog, opts ...Option) *Resolver {
	r := &Resolver{
		catalog: catalog,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.rules = map[profilemodels.Regime]rule{
		profilemodels.RegimePublicSystem:   r.resolvePublicSystem,
		profilemodels.RegimePrivateManager: r.resolvePrivateManager,
	}
	return r
}

// Resolve never fails: a missing profile, an unknown regime or a catalog error
// yields OutcomeNone and is logged. The write path keeps going either way.
func (r *Resolver) Resolve(ctx context.Context, profile *profilemodels.UserProfile) Resolution {
	res := r.resolve(ctx, profile)
	r.metrics.IncrementAttribution(string(res.Outcome))
	return res
}

func (r *Resolver) resolve(ctx context.Context, profile *profilemodels.UserProfile) Resolution {
	if profile == nil {
		r.logger.WarnContext(ctx, "attribution skipped: no profile")
		return Resolution{Outcome: OutcomeNone}
	}

	apply, ok := r.rules[profile.Regime]
	if !ok {
		r.logger.InfoContext(ctx, "attribution skipped: no regime rule",
			"user_id", profile.ID,
			"regime", profile.Regime,
		)
		return Resolution{Outcome: OutcomeNone}
	}

	res, err := apply(ctx, profile)
	if err != nil {
		r.logger.ErrorContext(ctx, "attribution failed",
			"user_id", profile.ID,
			"regime", profile.Regime,
			"error", err,
		)
		return Resolution{Outcome: OutcomeNone}
	}
	if res.Institution == nil {
		r.logger.WarnContext(ctx, "no institution matches profile",
			"user_id", profile.ID,
			"regime", profile.Regime,
		)
		return Resolution{Outcome: OutcomeNone}
	}

	r.logger.InfoContext(ctx, "institution attributed",
		"user_id", profile.ID,
		"institution", res.Institution.Name,
		"outcome", res.Outcome,
	)
	return res
}

func (r *Resolver) resolvePublicSystem(ctx context.Context, _ *profilemodels.UserProfile) (Resolution, error) {
	candidates, err := r.catalog.ListByType(ctx, catalogmodels.InstitutionTypePublicSystem)
	if err != nil {
		return Resolution{}, err
	}
	if len(candidates) == 0 {
		return Resolution{Outcome: OutcomeNone}, nil
	}
	return Resolution{Institution: candidates[0], Outcome: OutcomeMatched}, nil
}

func (r *Resolver) resolvePrivateManager(ctx context.Context, profile *profilemodels.UserProfile) (Resolution, error) {
	managerName := profile.FundManagerName()
	if managerName == "" {
		return Resolution{Outcome: OutcomeNone}, nil
	}

	candidates, err := r.catalog.ListByType(ctx, catalogmodels.InstitutionTypePrivateManager)
	if err != nil {
		return Resolution{}, err
	}
	for _, inst := range candidates {
		if inst.NameContains(managerName) {
			return Resolution{Institution: inst, Outcome: OutcomeMatched}, nil
		}
	}
	if len(candidates) == 0 {
		return Resolution{Outcome: OutcomeNone}, nil
	}

	r.logger.WarnContext(ctx, "fund manager not in catalog, falling back to first private manager",
		"user_id", profile.ID,
		"fund_manager", managerName,
		"fallback", candidates[0].Name,
	)
	return Resolution{Institution: candidates[0], Outcome: OutcomeFallback}, nil
}
