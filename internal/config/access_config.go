// config/access_config.go
package config

type AccessLevel int

const (
	AccessPublic  AccessLevel = iota // No session required
	AccessSession                    // Any authenticated identity
	AccessAdmin                      // Identity with the admin role
)

// ConsoleAccessConfig maps console route names to their required access level
var ConsoleAccessConfig = map[string]AccessLevel{
	// Session - Public
	"login":         AccessPublic,
	"login.post":    AccessPublic,
	"register":      AccessPublic,
	"register.post": AccessPublic,
	"logout.post":   AccessPublic,
	"metrics":       AccessPublic,
	"images":        AccessPublic,

	// Notifications - Public
	"notifications.dismiss": AccessPublic,

	// Catalog - Public
	"product": AccessPublic,

	// Customer - Session Protected
	"profile":             AccessSession,
	"profile.post":        AccessSession,
	"product.book":        AccessSession,
	"product.review.post": AccessSession,

	// Admin screens
	"dashboard":        AccessAdmin,
	"analytics":        AccessAdmin,
	"tools":            AccessAdmin,
	"tools.create":     AccessAdmin,
	"tools.update":     AccessAdmin,
	"tools.delete":     AccessAdmin,
	"tools.toggle":     AccessAdmin,
	"orders":           AccessAdmin,
	"orders.show":      AccessAdmin,
	"orders.status":    AccessAdmin,
	"orders.cancel":    AccessAdmin,
	"reviews":          AccessAdmin,
	"reviews.approve":  AccessAdmin,
	"reviews.reject":   AccessAdmin,
	"reviews.delete":   AccessAdmin,
	"bookings":         AccessAdmin,
	"bookings.confirm": AccessAdmin,
	"bookings.cancel":  AccessAdmin,
	"bookings.delete":  AccessAdmin,
	"bookings.cleanup": AccessAdmin,
}

// GetAccessLevel returns the access level for a given route name
func GetAccessLevel(route string) AccessLevel {
	if level, exists := ConsoleAccessConfig[route]; exists {
		return level
	}
	// Default to highest level for unknown routes
	return AccessAdmin
}
