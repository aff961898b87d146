package audit

import (
	"time"

	"github.com/jhoicas/tienda-admin/internal/domain/entity"
)

// Event representación publicada de una acción administrativa.
type Event struct {
	Type      string    `json:"type"`
	AdminID   int64     `json:"admin_id"`
	AdminName string    `json:"admin_name"`
	Action    string    `json:"action"`
	Table     string    `json:"table"`
	RecordID  *int64    `json:"record_id,omitempty"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEvent construye el evento a partir de la entrada persistida.
func NewEvent(e entity.AdminLogEntry) Event {
	return Event{
		Type:      "admin." + e.TableName + "." + e.Action,
		AdminID:   e.AdminID,
		AdminName: e.AdminName,
		Action:    e.Action,
		Table:     e.TableName,
		RecordID:  e.RecordID,
		Message:   e.Message,
		Timestamp: e.CreatedAt,
	}
}

// Entry atajo para construir una entrada desde el actor de la petición.
func Entry(actor entity.Actor, action, table string, recordID int64, message string) entity.AdminLogEntry {
	e := entity.AdminLogEntry{
		AdminID:   actor.ID,
		AdminName: actor.Name,
		Action:    action,
		TableName: table,
		Message:   message,
	}
	if recordID != 0 {
		id := recordID
		e.RecordID = &id
	}
	return e
}
