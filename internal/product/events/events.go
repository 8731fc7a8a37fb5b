// Package events defines the product lifecycle events published after successful mutations.
package events

import (
	"encoding/json"
	"time"

	"github.com/abgdnv/catalog/internal/product/model"
	"github.com/abgdnv/catalog/pkg/messaging"
)

const (
	// StreamName is the JetStream stream that captures all product subjects.
	StreamName = "PRODUCTS"
	// SubjectWildcard matches every product subject.
	SubjectWildcard = "products.>"

	CreatedSubject = "products.created"
	UpdatedSubject = "products.updated"
	DeletedSubject = "products.deleted"
)

var (
	_ messaging.Event = ProductCreatedEvent{}
	_ messaging.Event = ProductUpdatedEvent{}
	_ messaging.Event = ProductDeletedEvent{}
)

type ProductCreatedEvent struct {
	Product    model.Product `json:"product"`
	OccurredAt time.Time     `json:"occurred_at"`
}

func (e ProductCreatedEvent) Subject() string {
	return CreatedSubject
}

func (e ProductCreatedEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}

// ProductUpdatedEvent carries the updated record and the names of the fields the request set.
type ProductUpdatedEvent struct {
	Product       model.Product `json:"product"`
	ChangedFields []string      `json:"changed_fields"`
	OccurredAt    time.Time     `json:"occurred_at"`
}

func (e ProductUpdatedEvent) Subject() string {
	return UpdatedSubject
}

func (e ProductUpdatedEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}

// ProductDeletedEvent identifies the removed record. Key is what the caller sent,
// which may be an ID or a ProductID shared by several records.
type ProductDeletedEvent struct {
	Key        string    `json:"key"`
	ID         string    `json:"id"`
	ProductID  string    `json:"productId"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e ProductDeletedEvent) Subject() string {
	return DeletedSubject
}

func (e ProductDeletedEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}
