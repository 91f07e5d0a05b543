package dto

import (
	"hotelpms/internal/domains/foodorder/model"
	"hotelpms/shared"
	gDto "hotelpms/shared/dto"
	gModel "hotelpms/shared/model"
	"hotelpms/shared/policy"
	"hotelpms/shared/timezone"
	"strings"

	"github.com/google/uuid"
)

type ItemRequest struct {
	Name      string  `json:"name"       validate:"required,max=255"`
	Quantity  int     `json:"quantity"   validate:"gte=1"`
	UnitPrice float64 `json:"unit_price" validate:"gte=0"`
}

type CreateFoodOrderRequest struct {
	BookingID string        `json:"booking_id" validate:"required,uuid"`
	Items     []ItemRequest `json:"items"      validate:"required,min=1,dive"`
	Notes     string        `json:"notes"      validate:"omitempty,max=1000"`
}

// ToModel prices every line and totals the order.
func (c *CreateFoodOrderRequest) ToModel(user string) (model.FoodOrder, []model.Item) {
	order := model.FoodOrder{
		ID:            uuid.NewString(),
		BookingID:     c.BookingID,
		PaymentStatus: policy.PaymentUnpaid,
		Notes:         c.Notes,
		Metadata:      gModel.NewMetadata(timezone.Now(), user),
	}

	items := make([]model.Item, len(c.Items))
	quantities := make([]int, len(c.Items))
	prices := make([]float64, len(c.Items))

	for i, item := range c.Items {
		price := policy.Round(item.UnitPrice)

		items[i] = model.Item{
			ID:          uuid.NewString(),
			FoodOrderID: order.ID,
			Name:        strings.TrimSpace(item.Name),
			Quantity:    item.Quantity,
			UnitPrice:   price,
			Amount:      policy.ItemsTotal([]int{item.Quantity}, []float64{price}),
		}
		quantities[i] = item.Quantity
		prices[i] = price
	}

	order.TotalAmount = policy.ItemsTotal(quantities, prices)

	return order, items
}

type ItemResponse struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Amount    float64 `json:"amount"`
}

type FoodOrderResponse struct {
	ID            string               `json:"id"`
	BookingID     string               `json:"booking_id"`
	Items         []ItemResponse       `json:"items"`
	TotalAmount   float64              `json:"total_amount"`
	AmountPaid    float64              `json:"amount_paid"`
	AmountDue     float64              `json:"amount_due"`
	PaymentStatus policy.PaymentStatus `json:"payment_status"`
	Notes         string               `json:"notes"`
	gDto.Metadata
}

func (r *FoodOrderResponse) FromModel(order model.FoodOrder, items []model.Item) {
	r.ID = order.ID
	r.BookingID = order.BookingID
	r.TotalAmount = order.TotalAmount
	r.AmountPaid = order.AmountPaid
	r.AmountDue = policy.AmountDue(order.TotalAmount, order.AmountPaid)
	r.PaymentStatus = order.PaymentStatus
	r.Notes = order.Notes
	r.Metadata.FromModel(order.Metadata)

	r.Items = make([]ItemResponse, 0, len(items))
	for _, item := range items {
		if item.FoodOrderID != order.ID {
			continue
		}

		r.Items = append(r.Items, ItemResponse{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Amount:    item.Amount,
		})
	}
}

type GetFoodOrdersResponse struct {
	FoodOrders []FoodOrderResponse `json:"food_orders"`
	TotalPage  int                 `json:"total_page"`
	TotalData  int                 `json:"total_data"`
}

func (r *GetFoodOrdersResponse) FromModels(orders []model.FoodOrder, items []model.Item, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.FoodOrders = make([]FoodOrderResponse, len(orders))
	for i, order := range orders {
		r.FoodOrders[i].FromModel(order, items)
	}
}
