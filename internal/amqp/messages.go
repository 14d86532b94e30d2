package amqp

import (
	"encoding/json"
	"time"
)

// TableSyncMessage tells the worker that a table changed locally.
// It carries only the table name, the worker reloads the full table
// from the local store before mirroring it out.
type TableSyncMessage struct {
	Table     string    `json:"table"`
	Timestamp time.Time `json:"timestamp"`
}

func NewTableSyncMessage(table string) *TableSyncMessage {
	return &TableSyncMessage{
		Table:     table,
		Timestamp: time.Now(),
	}
}

func (m *TableSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func TableSyncMessageFromJSON(data []byte) (*TableSyncMessage, error) {
	var msg TableSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
