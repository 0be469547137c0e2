package domain

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusActive    OrderStatus = "active"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusOverdue   OrderStatus = "overdue"
)

// OrderStatuses lists every order status in lifecycle order
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusActive,
	OrderStatusCompleted,
	OrderStatusCancelled,
	OrderStatusOverdue,
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusPartial  PaymentStatus = "partial"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "pending"
	DeliveryStatusScheduled DeliveryStatus = "scheduled"
	DeliveryStatusDelivered DeliveryStatus = "delivered"
	DeliveryStatusReturned  DeliveryStatus = "returned"
)

type CustomerInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Company   string `json:"company,omitempty"`
}

type OrderItem struct {
	ToolID      string  `json:"toolId"`
	ToolName    string  `json:"toolName"`
	Quantity    int     `json:"quantity"`
	PricePerDay float64 `json:"pricePerDay"`
	Days        int     `json:"days"`
	Total       float64 `json:"total"`
}

type DeliveryInfo struct {
	Address      string `json:"address"`
	Date         string `json:"date,omitempty"`
	TimeSlot     string `json:"timeSlot,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

type TimelineEntry struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Note      string `json:"note"`
}

type Order struct {
	ID             string          `json:"_id"`
	OrderNumber    string          `json:"orderNumber"`
	CustomerID     string          `json:"customerId"`
	CustomerInfo   CustomerInfo    `json:"customerInfo"`
	Items          []OrderItem     `json:"items"`
	StartDate      string          `json:"startDate"`
	EndDate        string          `json:"endDate"`
	TotalDays      int             `json:"totalDays"`
	Subtotal       float64         `json:"subtotal"`
	Tax            float64         `json:"tax"`
	Total          float64         `json:"total"`
	Deposit        float64         `json:"deposit"`
	Status         OrderStatus     `json:"status"`
	PaymentStatus  PaymentStatus   `json:"paymentStatus"`
	PaymentMethod  string          `json:"paymentMethod"`
	DeliveryInfo   DeliveryInfo    `json:"deliveryInfo"`
	DeliveryStatus DeliveryStatus  `json:"deliveryStatus"`
	Notes          string          `json:"notes"`
	Timeline       []TimelineEntry `json:"timeline"`
	CreatedAt      string          `json:"createdAt"`
}

type OrderLine struct {
	ToolID   string `json:"toolId"`
	Quantity int    `json:"quantity"`
	Days     int    `json:"days"`
}

type CreateOrderRequest struct {
	Items         []OrderLine  `json:"items"`
	StartDate     string       `json:"startDate"`
	EndDate       string       `json:"endDate"`
	CustomerInfo  CustomerInfo `json:"customerInfo"`
	DeliveryInfo  DeliveryInfo `json:"deliveryInfo"`
	PaymentMethod string       `json:"paymentMethod"`
	Notes         string       `json:"notes,omitempty"`
}

// OrderStatistics is the server-computed aggregate behind the dashboards
type OrderStatistics struct {
	Total             int     `json:"total"`
	Pending           int     `json:"pending"`
	Confirmed         int     `json:"confirmed"`
	Active            int     `json:"active"`
	Completed         int     `json:"completed"`
	Cancelled         int     `json:"cancelled"`
	TotalRevenue      float64 `json:"totalRevenue"`
	AverageOrderValue float64 `json:"averageOrderValue"`
}
