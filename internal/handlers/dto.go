package handlers

import (
	"littlelemon/internal/access"
	"littlelemon/internal/models"
	"littlelemon/internal/query"
)

// Response shapes. Money is rendered with two decimals as a string and ids
// supplied on input (category_id, menuitem_id, ...) are never echoed.

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type memberResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type meResponse struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

type menuItemResponse struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Price    string          `json:"price"`
	Featured bool            `json:"featured"`
	Category models.Category `json:"category"`
}

type cartEntryResponse struct {
	ID        string           `json:"id"`
	User      userResponse     `json:"user"`
	MenuItem  menuItemResponse `json:"menuitem"`
	Quantity  int              `json:"quantity"`
	UnitPrice string           `json:"unit_price"`
	Price     string           `json:"price"`
}

type orderItemResponse struct {
	ID        string           `json:"id"`
	MenuItem  menuItemResponse `json:"menuitem"`
	Quantity  int              `json:"quantity"`
	UnitPrice string           `json:"unit_price"`
	Price     string           `json:"price"`
}

type orderResponse struct {
	ID           string              `json:"id"`
	User         userResponse        `json:"user"`
	DeliveryCrew *userResponse       `json:"delivery_crew"`
	Status       bool                `json:"status"`
	Total        string              `json:"total"`
	Date         string              `json:"date"`
	Items        []orderItemResponse `json:"order_items"`
}

func newUserResponse(u models.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username}
}

func newMemberResponses(users []models.User) []memberResponse {
	out := make([]memberResponse, 0, len(users))
	for _, u := range users {
		out = append(out, memberResponse{ID: u.ID, Username: u.Username, Email: u.Email})
	}
	return out
}

func newMeResponse(u *models.User, p access.Principal) meResponse {
	return meResponse{ID: u.ID, Username: u.Username, Email: u.Email, Roles: p.Roles()}
}

func newMenuItemResponse(i models.MenuItem) menuItemResponse {
	return menuItemResponse{
		ID:       i.ID,
		Title:    i.Title,
		Price:    i.Price.StringFixed(2),
		Featured: i.Featured,
		Category: i.Category,
	}
}

func newMenuItemResponses(items []models.MenuItem) []menuItemResponse {
	out := make([]menuItemResponse, 0, len(items))
	for _, i := range items {
		out = append(out, newMenuItemResponse(i))
	}
	return out
}

func newCartEntryResponse(e models.CartEntry) cartEntryResponse {
	return cartEntryResponse{
		ID:        e.ID,
		User:      newUserResponse(e.User),
		MenuItem:  newMenuItemResponse(e.MenuItem),
		Quantity:  e.Quantity,
		UnitPrice: e.UnitPrice.StringFixed(2),
		Price:     e.Price.StringFixed(2),
	}
}

func newCartEntryResponses(entries []models.CartEntry) []cartEntryResponse {
	out := make([]cartEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, newCartEntryResponse(e))
	}
	return out
}

func newOrderResponse(o models.Order) orderResponse {
	resp := orderResponse{
		ID:     o.ID,
		User:   newUserResponse(o.User),
		Status: o.Status,
		Total:  o.Total.StringFixed(2),
		Date:   o.Date.Format(query.DateLayout),
		Items:  make([]orderItemResponse, 0, len(o.Items)),
	}
	if o.DeliveryCrew != nil {
		crew := newUserResponse(*o.DeliveryCrew)
		resp.DeliveryCrew = &crew
	}
	for _, it := range o.Items {
		resp.Items = append(resp.Items, orderItemResponse{
			ID:        it.ID,
			MenuItem:  newMenuItemResponse(it.MenuItem),
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice.StringFixed(2),
			Price:     it.Price.StringFixed(2),
		})
	}
	return resp
}

func newOrderResponses(orders []models.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, newOrderResponse(o))
	}
	return out
}
