package models

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID                string          `gorm:"primaryKey" json:"id"`
	SellerID          string          `gorm:"index;not null" json:"sellerId"`
	Seller            *User           `gorm:"foreignKey:SellerID" json:"-"`
	Title             string          `gorm:"not null" json:"title"`
	Category          string          `gorm:"index;not null" json:"category"`
	Description       string          `gorm:"not null" json:"description"`
	Price             decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity          int             `gorm:"default:0" json:"quantity"`
	Stock             int             `gorm:"default:0" json:"stock"`
	Condition         string          `gorm:"not null" json:"condition"`
	YearOfManufacture *int            `json:"yearOfManufacture,omitempty"`
	Brand             string          `json:"brand,omitempty"`
	Model             string          `json:"model,omitempty"`
	DimensionLength   *float64        `json:"dimensionLength,omitempty"`
	DimensionWidth    *float64        `json:"dimensionWidth,omitempty"`
	DimensionHeight   *float64        `json:"dimensionHeight,omitempty"`
	Weight            *float64        `json:"weight,omitempty"`
	Material          string          `json:"material,omitempty"`
	Color             string          `json:"color,omitempty"`
	OriginalPackaging bool            `gorm:"default:false" json:"originalPackaging"`
	ManualIncluded    bool            `gorm:"default:false" json:"manualIncluded"`
	WorkingCondition  string          `json:"workingConditionDesc,omitempty"`
	Thumbnail         string          `json:"thumbnail,omitempty"`
	Images            pq.StringArray  `gorm:"type:text[]" json:"images"`
	IsActive          bool            `gorm:"default:true" json:"isActive"`
	IsApproved        bool            `gorm:"default:false" json:"isApproved"`
	Reviews           []Review        `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}
