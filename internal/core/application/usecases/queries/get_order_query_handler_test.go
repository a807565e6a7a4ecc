package queries_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrderQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	restaurantID := kernel.NewUUID()
	o := newOrder(t, customerID, restaurantID, baseDate)

	t.Run("owner sees the order", func(t *testing.T) {
		reader := &MockOrderReader{}
		reader.On("Get", ctx, o.ID()).Return(o, nil).Once()
		query, err := queries.NewGetOrderQuery(newActor(t, customerID, actor.RoleCustomer, nil), o.ID())
		require.NoError(t, err)

		view, err := queries.NewGetOrderQueryHandler(reader).Handle(ctx, query)

		require.NoError(t, err)
		assert.True(t, view.ID.IsEqual(o.ID()))
		assert.Equal(t, "pending", view.Status)
		assert.Equal(t, "230.00", view.TotalAmount.StringFixed(2))
		assert.Nil(t, view.Agent)
		require.Len(t, view.Items, 1)
		assert.Equal(t, "Paneer tikka", view.Items[0].Name)
	})

	t.Run("other customer is refused", func(t *testing.T) {
		reader := &MockOrderReader{}
		reader.On("Get", ctx, o.ID()).Return(o, nil).Once()
		query, _ := queries.NewGetOrderQuery(newActor(t, kernel.NewUUID(), actor.RoleCustomer, nil), o.ID())

		_, err := queries.NewGetOrderQueryHandler(reader).Handle(ctx, query)

		require.ErrorIs(t, err, errs.ErrPermissionDenied)
	})

	t.Run("missing order", func(t *testing.T) {
		reader := &MockOrderReader{}
		id := kernel.NewUUID()
		reader.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("order", id)).Once()
		query, _ := queries.NewGetOrderQuery(newActor(t, customerID, actor.RoleCustomer, nil), id)

		_, err := queries.NewGetOrderQueryHandler(reader).Handle(ctx, query)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}
