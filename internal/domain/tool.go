package domain

type ToolStatus string

const (
	ToolStatusAvailable   ToolStatus = "available"
	ToolStatusRented      ToolStatus = "rented"
	ToolStatusMaintenance ToolStatus = "maintenance"
	ToolStatusRetired     ToolStatus = "retired"
)

type Tool struct {
	ID              string            `json:"_id"`
	Name            string            `json:"name"`
	Brand           string            `json:"brand"`
	Model           string            `json:"model"`
	Category        string            `json:"category"`
	Subcategory     string            `json:"subcategory"`
	Description     string            `json:"description"`
	FullDescription string            `json:"fullDescription"`
	Price           float64           `json:"price"` // per day
	Images          []string          `json:"images"`
	Specifications  map[string]string `json:"specifications"`
	Features        []string          `json:"features"`
	Included        []string          `json:"included"`
	Condition       string            `json:"condition"`
	Location        string            `json:"location"`
	Status          ToolStatus        `json:"status"`
	InStock         int               `json:"inStock"`
	TotalStock      int               `json:"totalStock"`
	Rating          float64           `json:"rating"`
	ReviewCount     int               `json:"reviewCount"`
	TotalRentals    int               `json:"totalRentals"`
	TotalRevenue    float64           `json:"totalRevenue"`
	IsActive        bool              `json:"isActive"`
	CreatedAt       string            `json:"createdAt"`
}

type Category struct {
	Name          string   `json:"name"`
	Subcategories []string `json:"subcategories"`
}

// ToolInput is the body of create and update calls. Nil fields are not sent,
// so an update carries only what changed.
type ToolInput struct {
	Name            *string           `json:"name,omitempty"`
	Brand           *string           `json:"brand,omitempty"`
	Model           *string           `json:"model,omitempty"`
	Category        *string           `json:"category,omitempty"`
	Subcategory     *string           `json:"subcategory,omitempty"`
	Description     *string           `json:"description,omitempty"`
	FullDescription *string           `json:"fullDescription,omitempty"`
	Price           *float64          `json:"price,omitempty"`
	Images          []string          `json:"images,omitempty"`
	Specifications  map[string]string `json:"specifications,omitempty"`
	Features        []string          `json:"features,omitempty"`
	Included        []string          `json:"included,omitempty"`
	Condition       *string           `json:"condition,omitempty"`
	Location        *string           `json:"location,omitempty"`
	Status          *ToolStatus       `json:"status,omitempty"`
	InStock         *int              `json:"inStock,omitempty"`
	TotalStock      *int              `json:"totalStock,omitempty"`
	IsActive        *bool             `json:"isActive,omitempty"`
}
