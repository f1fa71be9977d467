package models

import (
	"time"
)

// Category is a node of the product taxonomy. ParentID references another
// category; the tree is rebuilt in memory with NewCategoryTree.
type Category struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	DisplayName string    `json:"displayName" gorm:"not null"`
	ParentID    *uint     `json:"parentId" gorm:"index"`
	Parent      *Category `json:"-" gorm:"foreignKey:ParentID"`
	IsActive    bool      `json:"isActive" gorm:"not null"`
	CreatedAt   time.Time `json:"createdAt"`
}
