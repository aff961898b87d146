package dto

import "time"

// AdminLogResponse entrada del registro de acciones administrativas.
type AdminLogResponse struct {
	ID        int64     `json:"id"`
	AdminID   int64     `json:"admin_id"`
	AdminName string    `json:"admin_name"`
	Action    string    `json:"action"`
	TableName string    `json:"table_name"`
	RecordID  *int64    `json:"record_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// AdminLogListResponse lista paginada del registro.
type AdminLogListResponse struct {
	Items []AdminLogResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
