package models

import "time"

// Product categories. The set is fixed; validation rejects anything
// outside it.
const (
	CategoryWriting        = "Writing"
	CategoryOfficeSupplies = "Office Supplies"
	CategoryArtSupplies    = "Art Supplies"
	CategoryEducational    = "Educational"
	CategoryTechnology     = "Technology"
)

// Product represents a product in the store.
type Product struct {
	ID          string    `json:"id" bson:"_id,omitempty" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string    `json:"name" bson:"name" validate:"required,max=100"`
	Brand       string    `json:"brand" bson:"brand" validate:"required,max=100"`
	Price       float64   `json:"price" bson:"price" validate:"gte=0"`
	Category    string    `json:"category" bson:"category" validate:"required,oneof=Writing 'Office Supplies' 'Art Supplies' Educational Technology"`
	Description string    `json:"description" bson:"description" validate:"required,max=500"`
	Quantity    int       `json:"quantity" bson:"quantity" validate:"gte=0"`
	InStock     bool      `json:"inStock" bson:"inStock"`
	CreatedAt   time.Time `json:"created_at" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updatedAt"`
}

// ProductUpdate carries a partial update. Nil fields are left untouched.
type ProductUpdate struct {
	Name        *string  `json:"name" validate:"omitempty,max=100"`
	Brand       *string  `json:"brand" validate:"omitempty,max=100"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Category    *string  `json:"category" validate:"omitempty,oneof=Writing 'Office Supplies' 'Art Supplies' Educational Technology"`
	Description *string  `json:"description" validate:"omitempty,max=500"`
	Quantity    *int     `json:"quantity" validate:"omitempty,gte=0"`
	InStock     *bool    `json:"inStock"`
}
