package model

import (
	"time"

	"gorm.io/datatypes"
)

// Dataset is one catalogued record. Priority is a dense integer used purely
// for manual list ordering and is rewritten in full on every reorder.
// Answers carries the open-ended question fields defined by the form schema
// file as a JSON column, so the physical table never changes shape when the
// question file does.
type Dataset struct {
	ID             uint              `gorm:"primaryKey" json:"id"`
	Title          string            `gorm:"not null;index" json:"title"`
	Details        string            `gorm:"type:text" json:"details"`
	Done           bool              `gorm:"default:false" json:"done"`
	Owner          string            `gorm:"type:varchar(120);index" json:"owner"`
	Priority       int               `gorm:"default:0;index" json:"priority"`
	LastModifiedBy string            `gorm:"type:varchar(120)" json:"last_modified_by,omitempty"`
	Answers        datatypes.JSONMap `json:"answers,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// TableName specifies the table name for Dataset
func (Dataset) TableName() string {
	return "datasets"
}
