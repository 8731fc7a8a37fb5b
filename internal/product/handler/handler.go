// Package handler provides HTTP handlers for product-related operations.
package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	producterrors "github.com/abgdnv/catalog/internal/product/errors"
	"github.com/abgdnv/catalog/internal/product/events"
	"github.com/abgdnv/catalog/internal/product/model"
	"github.com/abgdnv/catalog/internal/product/store"
	"github.com/abgdnv/catalog/pkg/messaging"
	"github.com/abgdnv/catalog/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "github.com/abgdnv/catalog/internal/product/handler"

type Handler struct {
	store     store.ProductStore
	publisher messaging.Publisher
	validate  *validator.Validate
	logger    *slog.Logger
	now       func() time.Time

	mutations     metric.Int64Counter
	publishErrors metric.Int64Counter
}

// NewHandler creates a new Handler backed by the given store. Successful mutations
// are announced through publisher.
func NewHandler(store store.ProductStore, publisher messaging.Publisher, logger *slog.Logger) *Handler {
	if publisher == nil {
		publisher = messaging.NoopPublisher{}
	}
	h := &Handler{
		store:     store,
		publisher: publisher,
		validate:  web.NewValidator(),
		logger:    logger.With("component", "rest"),
		now:       time.Now,
	}
	h.initInstruments()
	return h
}

func (h *Handler) initInstruments() {
	meter := otel.Meter(instrumentationName)
	var err error
	h.mutations, err = meter.Int64Counter("catalog.product.mutations",
		metric.WithDescription("Successful product mutations by operation"))
	if err != nil {
		h.logger.Warn("Failed to create mutations counter", "error", err)
		h.mutations = noop.Int64Counter{}
	}
	h.publishErrors, err = meter.Int64Counter("catalog.product.event_publish_errors",
		metric.WithDescription("Product events that could not be published"))
	if err != nil {
		h.logger.Warn("Failed to create publish errors counter", "error", err)
		h.publishErrors = noop.Int64Counter{}
	}
}

// RegisterRoutes registers the HTTP routes for the product service.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.FindAll)
		r.Post("/", h.Create)

		r.Route("/{key}", func(r chi.Router) {
			r.Get("/", h.FindByKey)
			r.Put("/", h.Update)
			r.Delete("/", h.DeleteByKey)
		})
	})

	r.Get("/healthz", h.HealthCheck)
}

// FindAll retrieves a list of all products.
func (h *Handler) FindAll(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received request to find all products")
	list, err := h.store.FindAll(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Error retrieving product list", "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	h.logger.DebugContext(r.Context(), "Successfully retrieved product list", "count", len(list))
	web.RespondJSON(w, h.logger, http.StatusOK, list)
}

// Create handles the creation of a new product.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto model.ProductCreateDto
	if err := web.DecodeJSON(r, &dto); err != nil {
		h.logger.WarnContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(dto); err != nil {
		if fieldErrors, ok := web.ValidationErrors(err); ok {
			h.logger.WarnContext(r.Context(), "Validation errors occurred", "errors", fieldErrors)
			web.RespondValidationError(w, h.logger, fieldErrors)
			return
		}
		h.logger.ErrorContext(r.Context(), "Error validating request body", "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.store.Create(r.Context(), dto.Fields())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Error creating product", "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, "Failed to create product")
		return
	}
	h.logger.InfoContext(r.Context(), "Product created successfully", "ID", created.ID, "productId", created.ProductID)
	h.recordMutation(r.Context(), "create")
	h.publish(r.Context(), events.ProductCreatedEvent{Product: *created, OccurredAt: h.now().UTC()})
	web.RespondJSON(w, h.logger, http.StatusCreated, created)
}

// FindByKey retrieves a product by its ID or ProductID.
func (h *Handler) FindByKey(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	h.logger.DebugContext(r.Context(), "Received request to find product", "key", key)
	found, err := h.store.FindByKey(r.Context(), key)
	if err != nil {
		h.respondStoreError(w, r, key, "retrieve", err)
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, found)
}

// Update merges the fields present in the request body into the matching product.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	var patch model.ProductPatch
	if err := web.DecodeJSON(r, &patch); err != nil {
		h.logger.WarnContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}
	h.logger.DebugContext(r.Context(), "Received request to update product", "key", key, "fields", patch.SetFields())

	updated, err := h.store.UpdateByKey(r.Context(), key, patch)
	if err != nil {
		h.respondStoreError(w, r, key, "update", err)
		return
	}
	h.logger.InfoContext(r.Context(), "Product updated successfully", "ID", updated.ID, "fields", patch.SetFields())
	h.recordMutation(r.Context(), "update")
	h.publish(r.Context(), events.ProductUpdatedEvent{
		Product:       *updated,
		ChangedFields: patch.SetFields(),
		OccurredAt:    h.now().UTC(),
	})
	web.RespondJSON(w, h.logger, http.StatusOK, updated)
}

// DeleteByKey deletes the product matching the key.
func (h *Handler) DeleteByKey(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	deleted, err := h.store.DeleteByKey(r.Context(), key)
	if err != nil {
		h.respondStoreError(w, r, key, "delete", err)
		return
	}
	h.logger.InfoContext(r.Context(), "Product deleted successfully", "key", key, "id", deleted.ID)
	h.recordMutation(r.Context(), "delete")
	h.publish(r.Context(), events.ProductDeletedEvent{
		Key:        key,
		ID:         deleted.ID,
		ProductID:  deleted.ProductID,
		OccurredAt: h.now().UTC(),
	})
	web.RespondMessage(w, h.logger, http.StatusOK, "Product deleted successfully")
}

// HealthCheck reports liveness without touching the store.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	web.RespondJSON(w, h.logger, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) respondStoreError(w http.ResponseWriter, r *http.Request, key, action string, err error) {
	switch {
	case errors.Is(err, producterrors.ErrProductNotFound):
		h.logger.WarnContext(r.Context(), "Product not found", "key", key, "action", action)
		web.RespondError(w, h.logger, http.StatusNotFound, fmt.Sprintf("Product with key %s not found", key))
	case errors.Is(err, producterrors.ErrNothingToUpdate):
		h.logger.WarnContext(r.Context(), "Update request has no fields", "key", key)
		web.RespondError(w, h.logger, http.StatusBadRequest, producterrors.ErrNothingToUpdate.Error())
	default:
		h.logger.ErrorContext(r.Context(), "Store operation failed", "key", key, "action", action, "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, fmt.Sprintf("Failed to %s product with key %s", action, key))
	}
}

func (h *Handler) recordMutation(ctx context.Context, operation string) {
	h.mutations.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", operation)))
}

// publish is best-effort: a failure is logged and counted but never reaches the client.
func (h *Handler) publish(ctx context.Context, event messaging.Event) {
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.WarnContext(ctx, "Failed to publish product event", "subject", event.Subject(), "error", err)
		h.publishErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("subject", event.Subject())))
	}
}
