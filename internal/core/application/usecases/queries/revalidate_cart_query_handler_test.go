package queries_test

import (
	"errors"
	"testing"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRevalidateCartQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	restaurant, err := catalog.RestoreRestaurant(kernel.NewUUID(), kernel.NewUUID(), "Tandoor", true, true,
		decimal.NewFromInt(200), decimal.NewFromInt(30))
	require.NoError(t, err)
	thali, err := catalog.RestoreMenuItem(kernel.NewUUID(), restaurant.ID(), "Thali", decimal.NewFromInt(150), true)
	require.NoError(t, err)

	t.Run("returns the validated cart", func(t *testing.T) {
		reader := &MockCatalogReader{}
		reader.On("GetRestaurant", ctx, restaurant.ID()).Return(restaurant, nil).Once()
		reader.On("GetMenuItems", ctx, restaurant.ID()).Return([]*catalog.MenuItem{thali}, nil).Once()
		query, err := queries.NewRevalidateCartQuery(cart.ClientCart{
			RestaurantID: restaurant.ID(),
			Lines:        []cart.Line{{MenuItemID: thali.ID(), Quantity: 2, ClaimedPrice: decimal.NewFromInt(150)}},
		})
		require.NoError(t, err)

		validated, err := queries.NewRevalidateCartQueryHandler(reader).Handle(ctx, query)

		require.NoError(t, err)
		assert.Equal(t, "330.00", validated.Total().StringFixed(2))
		reader.AssertExpectations(t)
	})

	t.Run("scenario: subtotal 150 against minimum 200 is short by 50", func(t *testing.T) {
		reader := &MockCatalogReader{}
		reader.On("GetRestaurant", ctx, restaurant.ID()).Return(restaurant, nil).Once()
		reader.On("GetMenuItems", ctx, restaurant.ID()).Return([]*catalog.MenuItem{thali}, nil).Once()
		query, _ := queries.NewRevalidateCartQuery(cart.ClientCart{
			RestaurantID: restaurant.ID(),
			Lines:        []cart.Line{{MenuItemID: thali.ID(), Quantity: 1, ClaimedPrice: decimal.NewFromInt(150)}},
		})

		validated, err := queries.NewRevalidateCartQueryHandler(reader).Handle(ctx, query)

		assert.Nil(t, validated)
		var verr *cart.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Error(), "short by 50")
	})

	t.Run("missing restaurant becomes a cart problem", func(t *testing.T) {
		reader := &MockCatalogReader{}
		missing := kernel.NewUUID()
		reader.On("GetRestaurant", ctx, missing).Return(nil, errs.NewObjectNotFoundError("restaurant", missing)).Once()
		query, _ := queries.NewRevalidateCartQuery(cart.ClientCart{RestaurantID: missing})

		_, err := queries.NewRevalidateCartQueryHandler(reader).Handle(ctx, query)

		var verr *cart.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.True(t, verr.Has(cart.ProblemRestaurantMissing))
		reader.AssertNotCalled(t, "GetMenuItems", mock.Anything, mock.Anything)
	})

	t.Run("cart without a restaurant becomes a cart problem", func(t *testing.T) {
		reader := &MockCatalogReader{}
		query, err := queries.NewRevalidateCartQuery(cart.ClientCart{Lines: []cart.Line{
			{MenuItemID: thali.ID(), Quantity: 1, ClaimedPrice: thali.Price()},
		}})
		require.NoError(t, err)

		validated, err := queries.NewRevalidateCartQueryHandler(reader).Handle(ctx, query)

		assert.Nil(t, validated)
		var verr *cart.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, cart.ProblemRestaurantMissing, verr.Problems[0].Code)
		assert.Equal(t, "restaurant no longer exists", verr.Problems[0].Message)
		reader.AssertNotCalled(t, "GetRestaurant", mock.Anything, mock.Anything)
	})

	t.Run("store failure is returned as is", func(t *testing.T) {
		reader := &MockCatalogReader{}
		boom := errors.New("connection refused")
		reader.On("GetRestaurant", ctx, restaurant.ID()).Return(nil, boom).Once()
		query, _ := queries.NewRevalidateCartQuery(cart.ClientCart{RestaurantID: restaurant.ID()})

		_, err := queries.NewRevalidateCartQueryHandler(reader).Handle(ctx, query)

		require.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, cart.ErrCartInvalid)
	})

	t.Run("query must be constructed", func(t *testing.T) {
		_, err := queries.NewRevalidateCartQueryHandler(&MockCatalogReader{}).Handle(ctx, queries.RevalidateCartQuery{})

		require.ErrorIs(t, err, queries.ErrRevalidateCartQueryIsNotConstructed)
	})
}
