package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductType is the discriminator stored alongside every catalog row.
// Variant-specific columns are null for rows of any other type.
type ProductType string

const (
	ProductTypeGeneric ProductType = "generic"
	ProductTypeBook    ProductType = "book"
	ProductTypeFashion ProductType = "fashion"
)

// ParseProductType maps the public variant names used on the catalog
// surface ("books", "fashion", "generic") to a discriminator value.
func ParseProductType(s string) (ProductType, bool) {
	switch s {
	case "books", "book":
		return ProductTypeBook, true
	case "fashion":
		return ProductTypeFashion, true
	case "generic":
		return ProductTypeGeneric, true
	}
	return "", false
}

type Product struct {
	ID          uuid.UUID   `json:"id" db:"id"`
	Type        ProductType `json:"type" db:"product_type"`
	Name        *string     `json:"name" db:"name"`
	Description *string     `json:"description" db:"description"`
	Category    *string     `json:"category" db:"category"`
	SubCategory *string     `json:"sub_category" db:"sub_category"`
	ImageSmall  *string     `json:"image_small" db:"image_small"`
	ImageMedium *string     `json:"image_medium" db:"image_medium"`
	ImageLarge  *string     `json:"image_large" db:"image_large"`
	Price       *float64    `json:"price" db:"price"`
	DateAdded   *time.Time  `json:"date_added" db:"date_added"`

	// Book columns
	ISBN      *string `json:"isbn,omitempty" db:"isbn"`
	Author    *string `json:"author,omitempty" db:"author"`
	Year      *int    `json:"year,omitempty" db:"year"`
	Publisher *string `json:"publisher,omitempty" db:"publisher"`

	// Fashion columns
	Brand       *string `json:"brand,omitempty" db:"brand"`
	Colour      *string `json:"colour,omitempty" db:"colour"`
	Size        *string `json:"size,omitempty" db:"size"`
	Gender      *string `json:"gender,omitempty" db:"gender"`
	AgeGroup    *string `json:"age_group,omitempty" db:"age_group"`
	FashionType *string `json:"fashion_type,omitempty" db:"fashion_type"`

	// Version is the optimistic-concurrency token checked on product updates.
	Version   int       `json:"version" db:"version"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ProductCategoryGroup is one bucket of the categories listing.
type ProductCategoryGroup struct {
	Category string     `json:"category"`
	Products []*Product `json:"products"`
}
