package model

const DefaultCategoryColor = "#3B82F6"

type Category struct {
	Trackable

	Name        string  `gorm:"type:varchar(100);not null" json:"name"`
	Description *string `gorm:"type:text" json:"description"`
	Color       string  `gorm:"type:varchar(7);not null;default:'#3B82F6'" json:"color"`
	IsActive    bool    `gorm:"not null;default:true" json:"is_active"`

	// Category <-> Project
	Projects []Project `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Category) TableName() string { return "categories" }

// CategoryCounts are the read-time aggregates shown next to a category.
type CategoryCounts struct {
	ProjectCount int64
	TaskCount    int64
}
