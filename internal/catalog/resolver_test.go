package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Ahmedmamdouh007/lala-store/internal/domain"
)

type mockBackend struct {
	featured      []domain.Product
	featuredErr   error
	categories    []domain.Category
	categoriesErr error
	all           []domain.Product
	allErr        error
	byGender      []domain.Product
	byGenderErr   error
	byID          *domain.Product
	byIDErr       error

	primaryCalls int
	allCalls     int
}

func (m *mockBackend) FeaturedProducts(context.Context) ([]domain.Product, error) {
	return m.featured, m.featuredErr
}

func (m *mockBackend) Categories(context.Context) ([]domain.Category, error) {
	return m.categories, m.categoriesErr
}

func (m *mockBackend) AllProducts(context.Context) ([]domain.Product, error) {
	m.allCalls++
	return m.all, m.allErr
}

func (m *mockBackend) ProductsByGender(context.Context, domain.Gender) ([]domain.Product, error) {
	m.primaryCalls++
	return m.byGender, m.byGenderErr
}

func (m *mockBackend) ProductByID(context.Context, int64) (*domain.Product, error) {
	m.primaryCalls++
	return m.byID, m.byIDErr
}

func newResolver(backend Backend) *Resolver {
	return NewResolver(backend, zap.NewNop(), 3, time.Minute)
}

func men(id int64) domain.Product {
	return domain.Product{ID: id, Gender: domain.GenderMen}
}

func women(id int64) domain.Product {
	return domain.Product{ID: id, Gender: domain.GenderWomen}
}

func TestResolve_PrimaryTierWins(t *testing.T) {
	backend := &mockBackend{byGender: []domain.Product{men(1), men(2)}}
	r := newResolver(backend)

	res, err := r.Resolve(context.Background(), GenderView(domain.GenderMen))

	require.NoError(t, err)
	assert.Equal(t, SourceLive, res.Source)
	assert.Len(t, res.Products, 2)
	assert.Zero(t, backend.allCalls, "secondary tier must not be attempted")
}

func TestResolve_SecondaryFiltersByGender(t *testing.T) {
	// Primary throws; generic fetch returns a mixed set. The men's view
	// must come back men-only and still count as live data.
	mixed := []domain.Product{
		men(1), women(2), men(3), women(4), men(5),
		women(6), men(7), women(8), men(9), {ID: 10, Gender: domain.GenderUnisex},
	}
	backend := &mockBackend{byGenderErr: errors.New("boom"), all: mixed}
	r := newResolver(backend)

	res, err := r.Resolve(context.Background(), GenderView(domain.GenderMen))

	require.NoError(t, err)
	assert.Equal(t, SourceLive, res.Source)
	require.Len(t, res.Products, 5)
	for _, p := range res.Products {
		assert.Equal(t, domain.GenderMen, p.Gender)
	}
}

func TestResolve_WomenViewIncludesUnisex(t *testing.T) {
	backend := &mockBackend{
		byGenderErr: errors.New("boom"),
		all:         []domain.Product{men(1), women(2), {ID: 3, Gender: domain.GenderUnisex}},
	}
	r := newResolver(backend)

	res, err := r.Resolve(context.Background(), GenderView(domain.GenderWomen))

	require.NoError(t, err)
	require.Len(t, res.Products, 2)
}

func TestResolve_StaticTierIsTaggedFallback(t *testing.T) {
	backend := &mockBackend{byGenderErr: errors.New("down"), allErr: errors.New("down")}
	r := newResolver(backend)

	res, err := r.Resolve(context.Background(), GenderView(domain.GenderMen))

	require.NoError(t, err)
	assert.Equal(t, SourceFallback, res.Source)
	assert.NotEmpty(t, res.Products)
	for _, p := range res.Products {
		assert.Equal(t, domain.GenderMen, p.Gender)
	}

	require.Len(t, res.Attempts, 3)
	assert.Equal(t, OutcomeErrored, res.Attempts[0].Outcome)
	assert.Equal(t, OutcomeErrored, res.Attempts[1].Outcome)
	assert.Equal(t, OutcomeOK, res.Attempts[2].Outcome)
}

func TestResolve_EmptyTiersFallThroughWithoutError(t *testing.T) {
	// Empty answers are confirmed no-data, recorded apart from errors.
	backend := &mockBackend{byGender: nil, all: nil}
	r := newResolver(backend)

	res, err := r.Resolve(context.Background(), GenderView(domain.GenderMen))

	require.NoError(t, err)
	assert.Equal(t, SourceFallback, res.Source)
	assert.Equal(t, OutcomeEmpty, res.Attempts[0].Outcome)
	assert.Equal(t, OutcomeEmpty, res.Attempts[1].Outcome)
}

func TestResolve_ExhaustionYieldsErrNoProducts(t *testing.T) {
	// A detail view for an id nothing knows about exhausts every tier.
	backend := &mockBackend{byIDErr: errors.New("down"), allErr: errors.New("down")}
	r := newResolver(backend)

	res, err := r.Resolve(context.Background(), DetailView(99999))

	assert.ErrorIs(t, err, ErrNoProducts)
	require.NotNil(t, res)
	assert.Empty(t, res.Products)
	require.Len(t, res.Attempts, 3)
	assert.Equal(t, OutcomeEmpty, res.Attempts[2].Outcome)
}

func TestResolve_DetailViewFindsProductInSecondary(t *testing.T) {
	backend := &mockBackend{
		byIDErr: errors.New("down"),
		all:     []domain.Product{men(1), men(42), men(3)},
	}
	r := newResolver(backend)

	res, err := r.Resolve(context.Background(), DetailView(42))

	require.NoError(t, err)
	assert.Equal(t, SourceLive, res.Source)
	require.Len(t, res.Products, 1)
	assert.Equal(t, int64(42), res.Products[0].ID)
}

func TestResolve_DetailViewFallsBackToBundledSet(t *testing.T) {
	backend := &mockBackend{byIDErr: errors.New("down"), allErr: errors.New("down")}
	r := newResolver(backend)

	res, err := r.Resolve(context.Background(), DetailView(1))

	require.NoError(t, err)
	assert.Equal(t, SourceFallback, res.Source)
	require.Len(t, res.Products, 1)
	assert.Equal(t, "Classic White T-Shirt", res.Products[0].Name)
}

func TestResolve_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	backend := &mockBackend{byGenderErr: errors.New("down"), allErr: errors.New("down")}
	r := NewResolver(backend, zap.NewNop(), 2, time.Minute)

	for i := 0; i < 4; i++ {
		_, err := r.Resolve(context.Background(), GenderView(domain.GenderMen))
		require.NoError(t, err)
	}

	// Two failures open the breaker; later resolves skip the endpoint.
	assert.Equal(t, 2, backend.primaryCalls)
}

func TestResolve_CancelledContextStopsTierWalk(t *testing.T) {
	backend := &mockBackend{byGenderErr: errors.New("down")}
	r := newResolver(backend)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Resolve(ctx, GenderView(domain.GenderMen))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, backend.allCalls)
}

func TestHome_ToleratesOneHalfFailing(t *testing.T) {
	backend := &mockBackend{
		featuredErr: errors.New("down"),
		categories:  []domain.Category{{ID: 1, Name: "T-Shirts"}},
	}
	r := newResolver(backend)

	data := r.Home(context.Background())

	assert.Equal(t, SourceFallback, data.FeaturedSource)
	assert.NotEmpty(t, data.Featured)
	assert.Equal(t, SourceLive, data.CategoriesSource)
	require.Len(t, data.Categories, 1)
}

func TestHome_BothLive(t *testing.T) {
	backend := &mockBackend{
		featured:   []domain.Product{men(1)},
		categories: []domain.Category{{ID: 1}},
	}
	r := newResolver(backend)

	data := r.Home(context.Background())

	assert.Equal(t, SourceLive, data.FeaturedSource)
	assert.Equal(t, SourceLive, data.CategoriesSource)
}
