package http

import (
	"marketplace/internal/adapters/in/http/api"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// clientCartFromAPI converts the submitted cart. Ids stay as sent; the nil UUID fails
// revalidation as a missing restaurant or item.
func clientCartFromAPI(body api.ClientCart) cart.ClientCart {
	lines := make([]cart.Line, 0, len(body.Lines))
	for _, l := range body.Lines {
		lines = append(lines, cart.Line{
			MenuItemID:   toKernelUUID(l.MenuItemId),
			Quantity:     l.Quantity,
			ClaimedPrice: l.ClaimedPrice,
		})
	}
	return cart.ClientCart{
		RestaurantID: toKernelUUID(body.RestaurantId),
		Lines:        lines,
		ClaimedTotal: body.ClaimedTotal,
	}
}

// toKernelUUID maps the nil UUID to the zero kernel.UUID.
func toKernelUUID(id openapi_types.UUID) kernel.UUID {
	parsed, _ := kernel.UUIDFromBytes(id[:])
	return parsed
}

func clientCartToAPI(c cart.ClientCart) api.ClientCart {
	lines := make([]api.CartLine, 0, len(c.Lines))
	for _, l := range c.Lines {
		lines = append(lines, api.CartLine{
			MenuItemId:   l.MenuItemID.Bytes(),
			Quantity:     l.Quantity,
			ClaimedPrice: l.ClaimedPrice,
		})
	}
	return api.ClientCart{
		RestaurantId: c.RestaurantID.Bytes(),
		Lines:        lines,
		ClaimedTotal: c.ClaimedTotal,
	}
}

func validatedCartToAPI(c *cart.ValidatedCart) api.ValidatedCart {
	items := make([]api.Item, 0, len(c.Items()))
	for _, it := range c.Items() {
		items = append(items, api.Item{
			MenuItemId: it.MenuItemID().Bytes(),
			Name:       it.Name(),
			Quantity:   it.Quantity(),
			Price:      it.Price(),
			Total:      it.Total(),
		})
	}
	return api.ValidatedCart{
		RestaurantId: c.RestaurantID().Bytes(),
		Items:        items,
		Subtotal:     c.Subtotal(),
		DeliveryFee:  c.DeliveryFee(),
		Total:        c.Total(),
	}
}

func cartProblemsToAPI(status int, verr *cart.ValidationError) api.CartProblems {
	problems := make([]api.CartProblem, 0, len(verr.Problems))
	for _, p := range verr.Problems {
		cp := api.CartProblem{Code: string(p.Code), Message: p.Message, Fatal: p.Fatal}
		if p.MenuItemID != nil {
			id := p.MenuItemID.Bytes()
			cp.MenuItemId = &id
		}
		problems = append(problems, cp)
	}

	response := api.CartProblems{
		Code:     status,
		Message:  cart.ErrCartInvalid.Error(),
		Problems: problems,
		Subtotal: verr.Subtotal,
	}
	if verr.Corrected != nil {
		corrected := clientCartToAPI(*verr.Corrected)
		response.Corrected = &corrected
	}
	return response
}

func orderToAPI(v queries.OrderView) api.Order {
	items := make([]api.Item, 0, len(v.Items))
	for _, it := range v.Items {
		items = append(items, api.Item{
			MenuItemId: it.MenuItemID.Bytes(),
			Name:       it.Name,
			Quantity:   it.Quantity,
			Price:      it.Price,
			Total:      it.Total,
		})
	}

	o := api.Order{
		Id:                    v.ID.Bytes(),
		CustomerId:            v.CustomerID.Bytes(),
		RestaurantId:          v.RestaurantID.Bytes(),
		Items:                 items,
		Subtotal:              v.Subtotal,
		DeliveryFee:           v.DeliveryFee,
		TotalAmount:           v.TotalAmount,
		Status:                v.Status,
		PaymentMethod:         v.PaymentMethod,
		PaymentStatus:         v.PaymentStatus,
		OrderDate:             v.OrderDate,
		EstimatedDeliveryTime: v.EstimatedDeliveryTime,
		PickupTime:            v.PickupTime,
		ActualDeliveryTime:    v.ActualDeliveryTime,
		DeliveryAddress:       v.DeliveryAddress,
		CustomerPhone:         v.CustomerPhone,
		CustomerName:          v.CustomerName,
		Notes:                 v.Notes,
		Version:               v.Version,
	}
	if v.Agent != nil {
		o.DeliveryAgent = &api.DeliveryAgent{
			Id:    v.Agent.ID.Bytes(),
			Name:  v.Agent.Name,
			Phone: v.Agent.Phone,
		}
	}
	return o
}

func ordersToAPI(views []queries.OrderView) []api.Order {
	response := make([]api.Order, len(views))
	for i, v := range views {
		response[i] = orderToAPI(v)
	}
	return response
}
