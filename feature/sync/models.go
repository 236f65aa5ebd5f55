package sync

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// ConnectionType is the closed set of sync session kinds.
type ConnectionType string

const (
	// ConnectionSync is a regular warehouse synchronization session.
	ConnectionSync ConnectionType = "sync"
	// ConnectionReset is a full store reset session.
	ConnectionReset ConnectionType = "reset"
)

// ParseConnectionType decodes a session kind, rejecting unknown strings at
// the boundary.
func ParseConnectionType(s string) (ConnectionType, error) {
	switch ConnectionType(s) {
	case ConnectionSync:
		return ConnectionSync, nil
	case ConnectionReset:
		return ConnectionReset, nil
	default:
		return "", fmt.Errorf("unknown connection type %q", s)
	}
}

// String returns the wire form of the session kind.
func (t ConnectionType) String() string {
	return string(t)
}

// Value implements driver.Valuer so GORM stores the kind as its string form.
func (t ConnectionType) Value() (driver.Value, error) {
	return string(t), nil
}

// Scan implements sql.Scanner, rejecting unknown stored values.
func (t *ConnectionType) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("cannot scan %T into ConnectionType", src)
	}
	parsed, err := ParseConnectionType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// SyncHistory is one append-only session record in the 'sync_history'
// table. Rows are created once per gateway invocation and never mutated.
type SyncHistory struct {
	ID              int            `gorm:"column:id;primaryKey" json:"id"`
	RemoteName      string         `gorm:"column:remote_name;size:50" json:"remote_name"`
	TimestampStart  time.Time      `gorm:"column:timestamp_start" json:"timestamp_start"`
	TimestampEnd    time.Time      `gorm:"column:timestamp_end" json:"timestamp_end"`
	ErrorCode       int            `gorm:"column:error_code;default:0" json:"error_code"`
	ConnectionType  ConnectionType `gorm:"column:connection_type;size:10" json:"connection_type"`
	UpdatesReceived int            `gorm:"column:updates_received;default:0" json:"updates_received"`
	UpdatesSent     int            `gorm:"column:updates_sent;default:0" json:"updates_sent"`
}

// TableName overrides the table name for SyncHistory.
func (SyncHistory) TableName() string {
	return "sync_history"
}
