package domain

// PanelType represents the category of an advertising panel
type PanelType string

const (
	PanelTypeBillboard  PanelType = "BILLBOARD"
	PanelTypeCLP        PanelType = "CLP"
	PanelTypeMegaboard  PanelType = "MEGABOARD"
	PanelTypeGiantboard PanelType = "GIANTBOARD"
	PanelTypeLEDScreen  PanelType = "LED_SCREEN"
)

// IsValid checks if the panel type is valid
func (t PanelType) IsValid() bool {
	switch t {
	case PanelTypeBillboard,
		PanelTypeCLP,
		PanelTypeMegaboard,
		PanelTypeGiantboard,
		PanelTypeLEDScreen:
		return true
	default:
		return false
	}
}

// UserRole represents the role of a platform user
type UserRole string

const (
	RoleAdmin       UserRole = "ADMIN"
	RoleScreenOwner UserRole = "SCREEN_OWNER"
	RoleAdvertiser  UserRole = "ADVERTISER"
)

// IsValid checks if the user role is valid
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleScreenOwner, RoleAdvertiser:
		return true
	default:
		return false
	}
}

// OrderStatus represents the status of a rental order
type OrderStatus string

const (
	OrderStatusPendingPayment OrderStatus = "PENDING_PAYMENT"
	OrderStatusPaid           OrderStatus = "PAID"
	OrderStatusActive         OrderStatus = "ACTIVE"
	OrderStatusCompleted      OrderStatus = "COMPLETED"
	OrderStatusCancelled      OrderStatus = "CANCELLED"
)

// IsValid checks if the order status is valid
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPendingPayment,
		OrderStatusPaid,
		OrderStatusActive,
		OrderStatusCompleted,
		OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo checks if a status transition is valid
func (s OrderStatus) CanTransitionTo(newStatus OrderStatus) bool {
	switch s {
	case OrderStatusPendingPayment:
		return newStatus == OrderStatusPaid ||
			newStatus == OrderStatusCancelled
	case OrderStatusPaid:
		return newStatus == OrderStatusActive ||
			newStatus == OrderStatusCancelled
	case OrderStatusActive:
		return newStatus == OrderStatusCompleted
	case OrderStatusCompleted, OrderStatusCancelled:
		return false // Terminal states
	default:
		return false
	}
}
