// Package catalog resolves product views through an ordered tier list:
// the view's own endpoint, then a client-filtered full fetch, then the
// bundled demo set. Tiers are strictly sequential; ordering decides which
// data is trusted, so they are never raced.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/Ahmedmamdouh007/lala-store/internal/domain"
)

// ErrNoProducts means every tier came back empty or failed. Callers render
// the "no products" state with a manual retry, not a hard failure.
var ErrNoProducts = errors.New("no products available")

type Source string

const (
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
)

type Tier string

const (
	TierPrimary   Tier = "primary"
	TierSecondary Tier = "secondary"
	TierStatic    Tier = "static"
)

type Outcome string

const (
	OutcomeOK      Outcome = "ok"
	OutcomeEmpty   Outcome = "empty"
	OutcomeErrored Outcome = "errored"
)

// Attempt records how one tier fared, keeping transient errors apart from
// confirmed-empty answers for telemetry.
type Attempt struct {
	Tier    Tier
	Outcome Outcome
	Err     error
}

// Result is tagged by the tier that produced it, never inferred from the
// data itself. Live and fallback items never mix in one result.
type Result struct {
	Source   Source
	Products []domain.Product
	Attempts []Attempt
}

type ViewKind string

const (
	ViewAll    ViewKind = "all"
	ViewGender ViewKind = "gender"
	ViewDetail ViewKind = "detail"
)

// View is the request descriptor: which products, plus the filter applied
// when a generic tier has to narrow its answer.
type View struct {
	Kind   ViewKind
	Gender domain.Gender
	ID     int64
}

func AllView() View                   { return View{Kind: ViewAll} }
func GenderView(g domain.Gender) View { return View{Kind: ViewGender, Gender: g} }
func DetailView(id int64) View        { return View{Kind: ViewDetail, ID: id} }

func (v View) key() string {
	switch v.Kind {
	case ViewGender:
		return "gender:" + string(v.Gender)
	case ViewDetail:
		return fmt.Sprintf("detail:%d", v.ID)
	default:
		return "all"
	}
}

// matches applies the view's filter to one product. The men's view excludes
// unisex items, matching the seeded men's collection; the women's view
// includes them.
func (v View) matches(p domain.Product) bool {
	switch v.Kind {
	case ViewGender:
		if v.Gender == domain.GenderMen {
			return p.Gender == domain.GenderMen
		}
		return p.Gender == v.Gender || p.Gender == domain.GenderUnisex
	case ViewDetail:
		return p.ID == v.ID
	default:
		return true
	}
}

func filter(products []domain.Product, v View) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if v.matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// Backend is the slice of the API client the resolver needs.
type Backend interface {
	FeaturedProducts(ctx context.Context) ([]domain.Product, error)
	Categories(ctx context.Context) ([]domain.Category, error)
	AllProducts(ctx context.Context) ([]domain.Product, error)
	ProductsByGender(ctx context.Context, gender domain.Gender) ([]domain.Product, error)
	ProductByID(ctx context.Context, id int64) (*domain.Product, error)
}

type Resolver struct {
	api     Backend
	log     *zap.Logger
	breaker *gobreaker.CircuitBreaker[[]domain.Product]
	sfg     singleflight.Group // collapses concurrent resolves of one view
}

// NewResolver wires the backend behind a circuit breaker on the primary
// tier: failures consecutive errors open it for cooldown.
func NewResolver(backend Backend, log *zap.Logger, failures uint32, cooldown time.Duration) *Resolver {
	if failures == 0 {
		failures = 3
	}
	return &Resolver{
		api: backend,
		log: log,
		breaker: gobreaker.NewCircuitBreaker[[]domain.Product](gobreaker.Settings{
			Name:    "catalog-primary",
			Timeout: cooldown,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= failures
			},
		}),
	}
}

// Resolve walks the tiers for a view and returns the first non-empty,
// well-formed answer. Tier failures fall through silently; only exhaustion
// of all three surfaces as ErrNoProducts. Calling Resolve again after an
// exhausted result restarts at the primary tier.
func (r *Resolver) Resolve(ctx context.Context, view View) (*Result, error) {
	v, err, _ := r.sfg.Do(view.key(), func() (any, error) {
		return r.resolve(ctx, view)
	})
	res, _ := v.(*Result)
	return res, err
}

func (r *Resolver) resolve(ctx context.Context, view View) (*Result, error) {
	var attempts []Attempt

	// Tier 1: the view's own endpoint, behind the breaker so a dead
	// primary is skipped quickly while the cooldown runs.
	products, err := r.breaker.Execute(func() ([]domain.Product, error) {
		return r.primary(ctx, view)
	})
	attempts = append(attempts, attempt(TierPrimary, products, err))
	if err == nil && len(products) > 0 {
		return &Result{Source: SourceLive, Products: products, Attempts: attempts}, nil
	}
	if err != nil {
		r.log.Debug("primary catalog tier failed", zap.String("view", view.key()), zap.Error(err))
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	// Tier 2: generic full fetch, narrowed client-side.
	all, err := r.api.AllProducts(ctx)
	products = filter(all, view)
	if err != nil {
		products = nil
	}
	attempts = append(attempts, attempt(TierSecondary, products, err))
	if err == nil && len(products) > 0 {
		return &Result{Source: SourceLive, Products: products, Attempts: attempts}, nil
	}
	if err != nil {
		r.log.Debug("secondary catalog tier failed", zap.String("view", view.key()), zap.Error(err))
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	// Tier 3: bundled demo set, filtered the same way.
	products = filter(FallbackProducts(), view)
	attempts = append(attempts, attempt(TierStatic, products, nil))
	if len(products) > 0 {
		return &Result{Source: SourceFallback, Products: products, Attempts: attempts}, nil
	}

	return &Result{Attempts: attempts}, ErrNoProducts
}

func (r *Resolver) primary(ctx context.Context, view View) ([]domain.Product, error) {
	switch view.Kind {
	case ViewGender:
		return r.api.ProductsByGender(ctx, view.Gender)
	case ViewDetail:
		product, err := r.api.ProductByID(ctx, view.ID)
		if err != nil {
			return nil, err
		}
		if product == nil || product.ID == 0 {
			return nil, nil
		}
		return []domain.Product{*product}, nil
	default:
		return r.api.AllProducts(ctx)
	}
}

func attempt(tier Tier, products []domain.Product, err error) Attempt {
	switch {
	case err != nil:
		return Attempt{Tier: tier, Outcome: OutcomeErrored, Err: err}
	case len(products) == 0:
		return Attempt{Tier: tier, Outcome: OutcomeEmpty}
	default:
		return Attempt{Tier: tier, Outcome: OutcomeOK}
	}
}

// HomeData carries the two independent home fetches, each tagged with the
// source that served it.
type HomeData struct {
	Featured         []domain.Product
	FeaturedSource   Source
	Categories       []domain.Category
	CategoriesSource Source
}

// Home fetches featured products and categories concurrently. One half
// failing never aborts the other; each half degrades to the bundled set on
// its own.
func (r *Resolver) Home(ctx context.Context) *HomeData {
	data := &HomeData{}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		featured, err := r.api.FeaturedProducts(ctx)
		if err != nil || len(featured) == 0 {
			if err != nil {
				r.log.Debug("featured fetch failed, using bundled set", zap.Error(err))
			}
			data.Featured = FallbackProducts()
			data.FeaturedSource = SourceFallback
			return
		}
		data.Featured = featured
		data.FeaturedSource = SourceLive
	}()

	go func() {
		defer wg.Done()
		categories, err := r.api.Categories(ctx)
		if err != nil || len(categories) == 0 {
			if err != nil {
				r.log.Debug("categories fetch failed, using bundled set", zap.Error(err))
			}
			data.Categories = FallbackCategories()
			data.CategoriesSource = SourceFallback
			return
		}
		data.Categories = categories
		data.CategoriesSource = SourceLive
	}()

	wg.Wait()
	return data
}
