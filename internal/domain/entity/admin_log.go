package entity

import "time"

// Tipos de acción registrados en admin_logs.
const (
	ActionCreate     = "create"
	ActionUpdate     = "update"
	ActionDelete     = "delete"
	ActionDeactivate = "deactivate"
	ActionReactivate = "reactivate"
)

// Tablas afectadas por acciones administrativas.
const (
	TableCategories      = "categories"
	TableSubcategories   = "sub_categories"
	TableShippingOptions = "shipping_options"
	TableAdmins          = "admins"
	TableProducts        = "products"
)

// AdminLogEntry registro inmutable de una acción administrativa.
// AdminName es una copia al momento de escribir, no una referencia al administrador.
type AdminLogEntry struct {
	ID        int64
	AdminID   int64
	AdminName string
	Action    string
	TableName string
	RecordID  *int64
	Message   string
	CreatedAt time.Time
}
