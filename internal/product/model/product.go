// Package model defines the product record and the request shapes derived from it.
package model

import "time"

// Product is the stored shape of a product, returned to callers.
type Product struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"productId"`
	Name        string    `json:"name"`
	Price       int64     `json:"price"`
	Image       string    `json:"image"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ProductFields is the caller-owned part of a product: everything except the
// server-assigned ID and CreatedAt.
type ProductFields struct {
	ProductID   string
	Name        string
	Price       int64
	Image       string
	Description string
}

// ProductCreateDto is the create request shape. Pointers let the validator tell
// an absent field apart from an empty string or a zero price.
type ProductCreateDto struct {
	ProductID   *string `json:"productId"   validate:"required"`
	Name        *string `json:"name"        validate:"required"`
	Price       *int64  `json:"price"       validate:"required"`
	Image       *string `json:"image"       validate:"required"`
	Description *string `json:"description" validate:"required"`
}

// Fields converts a validated create request into ProductFields.
// It must only be called after validation succeeded.
func (d ProductCreateDto) Fields() ProductFields {
	return ProductFields{
		ProductID:   *d.ProductID,
		Name:        *d.Name,
		Price:       *d.Price,
		Image:       *d.Image,
		Description: *d.Description,
	}
}

// ProductPatch is the update request shape. Every field is optional; unset
// fields leave the stored value untouched.
type ProductPatch struct {
	ProductID   Optional[string] `json:"productId"`
	Name        Optional[string] `json:"name"`
	Price       Optional[int64]  `json:"price"`
	Image       Optional[string] `json:"image"`
	Description Optional[string] `json:"description"`
}

// IsEmpty reports whether the patch sets no field at all.
func (p ProductPatch) IsEmpty() bool {
	return !p.ProductID.Set && !p.Name.Set && !p.Price.Set && !p.Image.Set && !p.Description.Set
}

// Apply merges the set fields of the patch into dst. ID and CreatedAt are never touched.
func (p ProductPatch) Apply(dst *Product) {
	p.ProductID.assign(&dst.ProductID)
	p.Name.assign(&dst.Name)
	p.Price.assign(&dst.Price)
	p.Image.assign(&dst.Image)
	p.Description.assign(&dst.Description)
}

// SetFields returns the JSON names of the fields the patch sets, in declaration order.
func (p ProductPatch) SetFields() []string {
	fields := make([]string, 0, 5)
	if p.ProductID.Set {
		fields = append(fields, "productId")
	}
	if p.Name.Set {
		fields = append(fields, "name")
	}
	if p.Price.Set {
		fields = append(fields, "price")
	}
	if p.Image.Set {
		fields = append(fields, "image")
	}
	if p.Description.Set {
		fields = append(fields, "description")
	}
	return fields
}
