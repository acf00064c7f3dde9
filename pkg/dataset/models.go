package dataset

import (
	"time"

	"gorm.io/datatypes"
)

const (
	StatusPending   = "pending"
	StatusGenerated = "generated"
	StatusFailed    = "failed"
)

// Record is the persisted metadata of one generated dataset. The table
// itself lives on disk as CSV; only provenance is stored here.
type Record struct {
	ID        string            `json:"id" gorm:"primaryKey;column:id"`
	Name      string            `json:"name" gorm:"column:name"`
	RowCount  int               `json:"row_count" gorm:"column:row_count"`
	Seed      int64             `json:"seed" gorm:"column:seed"`
	Config    datatypes.JSONMap `json:"config" gorm:"column:config"`
	Path      string            `json:"path" gorm:"column:path"`
	Status    string            `json:"status" gorm:"column:status"`
	Error     string            `json:"error,omitempty" gorm:"column:error"`
	CreatedAt time.Time         `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time         `json:"updated_at" gorm:"column:updated_at"`
}

func (Record) TableName() string {
	return "synthetic_datasets"
}
