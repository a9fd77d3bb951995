package model

import "time"

// DefaultCategoryColor is used when a category is created without a color.
const DefaultCategoryColor = "#007acc"

// Category is a per-user colored label for tasks.
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_categories_user;index:idx_user_category_name,unique" json:"user_id"`
	Name      string    `gorm:"not null;index:idx_user_category_name,unique" json:"name"`
	Color     string    `gorm:"not null;default:'#007acc'" json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// CategoryInput carries user-supplied category fields.
type CategoryInput struct {
	Name  string `validate:"required"`
	Color string `validate:"omitempty,hexcolor"`
}

// DefaultCategories are created for every new account.
var DefaultCategories = []CategoryInput{
	{Name: "Work", Color: "#ff6b6b"},
	{Name: "Personal", Color: "#4ecdc4"},
	{Name: "Health", Color: "#45b7d1"},
	{Name: "Study", Color: "#96ceb4"},
	{Name: "Family", Color: "#feca57"},
	{Name: "Other", Color: "#a29bfe"},
}
