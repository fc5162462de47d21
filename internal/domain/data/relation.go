package data

import "fmt"

// User is a row of the left relation
type User struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

// Order is a row of the right relation. UID references User.ID but is not
// enforced, so an order may dangle.
type Order struct {
	ID      int     `json:"id"`
	UID     int     `json:"uid"`
	Product string  `json:"product"`
	Amount  float64 `json:"amount"`
}

func (u User) String() string {
	return fmt.Sprintf("User(%d, %s, %s)", u.ID, u.Name, u.Country)
}

func (o Order) String() string {
	return fmt.Sprintf("Order(%d, uid=%d, %s, %g)", o.ID, o.UID, o.Product, o.Amount)
}

// JoinKey names the equality the join is performed on
const (
	LeftJoinColumn  = "id"
	RightJoinColumn = "uid"
)
