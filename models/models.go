package models

// Envelope is the response shape the upstream backend uses for every JSON
// endpoint. Success is a pointer so that an absent field is distinguishable
// from an explicit false: a 2xx with no success field still counts as success.
type Envelope struct {
	Success *bool  `json:"success,omitempty"`
	Message string `json:"message,omitempty"`
}

// Rejected reports whether the upstream body explicitly flags failure.
func (e Envelope) Rejected() bool {
	return e.Success != nil && !*e.Success
}

type User struct {
	ID             string `json:"id"`
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	PhoneNumber    string `json:"phoneNumber"`
	Address        string `json:"address"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

type Business struct {
	ID           string `json:"id"`
	BusinessName string `json:"businessName"`
	IsVerified   bool   `json:"isVerified"`
	Email        string `json:"email,omitempty"`
	PhoneNumber  string `json:"phoneNumber,omitempty"`
	Address      string `json:"address,omitempty"`
}

type OrderStatus string

const (
	OrderCreated        OrderStatus = "created"
	OrderPaymentPending OrderStatus = "payment_pending"
	OrderPaid           OrderStatus = "paid"
	OrderFailed         OrderStatus = "failed"
	OrderShipped        OrderStatus = "shipped"
	OrderDelivered      OrderStatus = "delivered"
	OrderCancelled      OrderStatus = "cancelled"
)

type OrderItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type Order struct {
	ID     string      `json:"id"`
	Items  []OrderItem `json:"items"`
	Status OrderStatus `json:"status"`
}

// PaymentStatus is the provider-reported status carried on the payment
// return URL. Only Completed triggers an upstream verify call; the final
// paid/unpaid determination always comes from the verify response itself.
type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "Completed"
	PaymentFailed    PaymentStatus = "Failed"
	PaymentCancelled PaymentStatus = "Cancelled"
)

type Payment struct {
	Pidx    string        `json:"pidx"`
	OrderID string        `json:"orderId"`
	Status  PaymentStatus `json:"status"`
}

// CheckoutState tracks a single checkout attempt through the payment
// workflow.
type CheckoutState string

const (
	StateInitiated  CheckoutState = "Initiated"
	StateRedirected CheckoutState = "Redirected"
	StateVerifying  CheckoutState = "Verifying"
	StateVerified   CheckoutState = "Verified"
	StateRejected   CheckoutState = "Rejected"
)
