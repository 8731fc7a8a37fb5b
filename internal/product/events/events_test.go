package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/abgdnv/catalog/internal/product/model"
	"github.com/abgdnv/catalog/pkg/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Events_SubjectAndPayload(t *testing.T) {
	occurredAt := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	product := model.Product{ID: "id-1", ProductID: "P002", Name: "Miso", Price: 950, CreatedAt: occurredAt}

	testCases := []struct {
		name            string
		event           messaging.Event
		expectedSubject string
		expectedPayload string
	}{
		{
			name:            "created",
			event:           ProductCreatedEvent{Product: product, OccurredAt: occurredAt},
			expectedSubject: "products.created",
			expectedPayload: `{"product":{"id":"id-1","productId":"P002","name":"Miso","price":950,"image":"","description":"","createdAt":"2024-01-02T03:04:05Z"},"occurred_at":"2024-01-02T03:04:05Z"}`,
		},
		{
			name:            "updated",
			event:           ProductUpdatedEvent{Product: product, ChangedFields: []string{"price"}, OccurredAt: occurredAt},
			expectedSubject: "products.updated",
			expectedPayload: `{"product":{"id":"id-1","productId":"P002","name":"Miso","price":950,"image":"","description":"","createdAt":"2024-01-02T03:04:05Z"},"changed_fields":["price"],"occurred_at":"2024-01-02T03:04:05Z"}`,
		},
		{
			name:            "deleted",
			event:           ProductDeletedEvent{Key: "P002", ID: "id-1", ProductID: "P002", OccurredAt: occurredAt},
			expectedSubject: "products.deleted",
			expectedPayload: `{"key":"P002","id":"id-1","productId":"P002","occurred_at":"2024-01-02T03:04:05Z"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			payload, err := tc.event.Payload()
			// then
			require.NoError(t, err)
			assert.Equal(t, tc.expectedSubject, tc.event.Subject())
			assert.JSONEq(t, tc.expectedPayload, string(payload))
			assert.True(t, json.Valid(payload))
		})
	}
}
