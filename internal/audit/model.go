package audit

import (
	"encoding/json"
	"time"
)

// OpSuspiciousActivity is the operation recorded for fraud signals
const OpSuspiciousActivity = "detect"

// TableSuspiciousActivities groups fraud signals under one virtual table name
const TableSuspiciousActivities = "suspicious_activities"

// Entry is one immutable audit log row
type Entry struct {
	ID        int64           `json:"id"`
	TableName string          `json:"table_name"`
	RecordID  *int64          `json:"record_id,omitempty"`
	Operation string          `json:"operation"`
	ChangedBy int64           `json:"changed_by"`
	NewData   json.RawMessage `json:"new_data,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
