package model

import (
	"time"

	"gorm.io/datatypes"
)

// TemplateItem is the date-free snapshot of a task stored in a template.
type TemplateItem struct {
	Title       string   `json:"title"`
	IsMandatory bool     `json:"is_mandatory"`
	Priority    Priority `json:"priority"`
	CategoryID  *uint    `json:"category_id"`
}

// Template is a named, reusable list of task snapshots.
type Template struct {
	ID        uint                              `gorm:"primaryKey" json:"id"`
	UserID    uint                              `gorm:"not null;index:idx_user_template_name,unique" json:"user_id"`
	Name      string                            `gorm:"not null;index:idx_user_template_name,unique" json:"name"`
	Data      datatypes.JSONSlice[TemplateItem] `gorm:"not null" json:"data"`
	CreatedAt time.Time                         `json:"created_at"`
}
