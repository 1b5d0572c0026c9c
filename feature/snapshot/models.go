package snapshot

import "time"

// TableName of the snapshot records.
const TableName = "snapshot_records"

// Record is one remote object. Its ID is the remote id handed to the inventory.
type Record struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ObjectType string    `gorm:"size:32;index;not null" json:"object_type"`
	Data       string    `gorm:"type:text;not null" json:"data"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName overrides the table name used by gorm.
func (Record) TableName() string {
	return TableName
}

var requiredColumns = []string{"id", "object_type", "data", "created_at", "updated_at"}
