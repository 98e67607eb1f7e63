package models

import "time"

// Order records a purchase of a given quantity of one product.
// Orders are created through the placement flow only and are never
// updated or deleted afterwards.
type Order struct {
	ID         string    `json:"id" bson:"_id,omitempty" gorm:"primaryKey;type:varchar(36)"`
	Email      string    `json:"email" bson:"email" validate:"required,email"`
	ProductID  string    `json:"product" bson:"product" gorm:"type:varchar(36);index" validate:"required"`
	Quantity   int       `json:"quantity" bson:"quantity" validate:"required,min=1"`
	TotalPrice float64   `json:"totalPrice" bson:"totalPrice" validate:"gte=0"`
	CreatedAt  time.Time `json:"created_at" bson:"createdAt"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updatedAt"`
}
