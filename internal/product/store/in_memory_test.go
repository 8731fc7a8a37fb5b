package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	perrors "github.com/abgdnv/catalog/internal/product/errors"
	"github.com/abgdnv/catalog/internal/product/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// InMemoryStoreSuite exercises the in-memory ProductStore.
type InMemoryStoreSuite struct {
	suite.Suite
	store ProductStore
	ctx   context.Context
	start time.Time
}

func TestInMemoryStore(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

// SetupTest gives every test a fresh, empty store.
func (s *InMemoryStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.start = time.Now().UTC()
	s.store = NewInMemoryStore()
}

func testFields(productID string) model.ProductFields {
	return model.ProductFields{
		ProductID:   productID,
		Name:        "Miso",
		Price:       900,
		Image:       "i.jpg",
		Description: "d",
	}
}

// createTestProduct is a helper function to create a product for testing purposes.
func (s *InMemoryStoreSuite) createTestProduct(productID string) *model.Product {
	s.T().Helper()
	product, err := s.store.Create(s.ctx, testFields(productID))
	require.NoError(s.T(), err, "createTestProduct helper failed to create product")
	return product
}

func (s *InMemoryStoreSuite) TestCreate_AssignsUniqueIDAndTimestamp() {
	seen := make(map[string]struct{})
	for i := range 50 {
		created := s.createTestProduct(fmt.Sprintf("P%03d", i))

		require.NotEmpty(s.T(), created.ID, "Created product ID should not be empty")
		require.NotContains(s.T(), seen, created.ID, "IDs must not repeat")
		seen[created.ID] = struct{}{}
		require.False(s.T(), created.CreatedAt.Before(s.start), "CreatedAt should not precede the test start")
		require.Equal(s.T(), time.UTC, created.CreatedAt.Location())
	}
}

func (s *InMemoryStoreSuite) TestCreate_AppendsToList() {
	before, err := s.store.FindAll(s.ctx)
	require.NoError(s.T(), err)

	created := s.createTestProduct("P002")

	after, err := s.store.FindAll(s.ctx)
	require.NoError(s.T(), err)
	require.Len(s.T(), after, len(before)+1)
	assert.Equal(s.T(), *created, after[len(after)-1])
}

func (s *InMemoryStoreSuite) TestFindAll_EmptyAndOrdered() {
	empty, err := s.store.FindAll(s.ctx)
	require.NoError(s.T(), err)
	require.NotNil(s.T(), empty)
	require.Empty(s.T(), empty)

	s.createTestProduct("A")
	s.createTestProduct("B")
	s.createTestProduct("C")

	list, err := s.store.FindAll(s.ctx)
	require.NoError(s.T(), err)
	require.Len(s.T(), list, 3)
	assert.Equal(s.T(), "A", list[0].ProductID)
	assert.Equal(s.T(), "B", list[1].ProductID)
	assert.Equal(s.T(), "C", list[2].ProductID)
}

func (s *InMemoryStoreSuite) TestFindAll_ReturnsCopies() {
	s.createTestProduct("P002")

	list, err := s.store.FindAll(s.ctx)
	require.NoError(s.T(), err)
	list[0].Name = "mutated"

	found, err := s.store.FindByKey(s.ctx, "P002")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Miso", found.Name, "callers must not be able to mutate stored records")
}

func (s *InMemoryStoreSuite) TestFindByKey() {
	created := s.createTestProduct("P002")

	byID, err := s.store.FindByKey(s.ctx, created.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), *created, *byID)

	byProductID, err := s.store.FindByKey(s.ctx, "P002")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), *created, *byProductID)

	_, err = s.store.FindByKey(s.ctx, "nonexistent-key")
	require.ErrorIs(s.T(), err, perrors.ErrProductNotFound)
}

func (s *InMemoryStoreSuite) TestFindByKey_DuplicateProductIDFirstMatchWins() {
	first := s.createTestProduct("DUP")
	s.createTestProduct("DUP")

	found, err := s.store.FindByKey(s.ctx, "DUP")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), first.ID, found.ID)
}

func (s *InMemoryStoreSuite) TestFindByKey_IDTakesPrecedenceOverProductID() {
	target := s.createTestProduct("P100")
	// a later record whose business id collides with the first record's generated id
	s.createTestProduct(target.ID)

	found, err := s.store.FindByKey(s.ctx, target.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "P100", found.ProductID)
}

func (s *InMemoryStoreSuite) TestUpdateByKey_ChangesOnlySetFields() {
	created := s.createTestProduct("P002")

	updated, err := s.store.UpdateByKey(s.ctx, "P002", model.ProductPatch{Price: model.Some[int64](950)})
	require.NoError(s.T(), err)

	want := *created
	want.Price = 950
	assert.Equal(s.T(), want, *updated)

	found, err := s.store.FindByKey(s.ctx, created.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), want, *found)
}

func (s *InMemoryStoreSuite) TestUpdateByKey_ZeroValuesAreApplied() {
	created := s.createTestProduct("P002")

	updated, err := s.store.UpdateByKey(s.ctx, created.ID, model.ProductPatch{
		Description: model.Some(""),
		Price:       model.Some[int64](0),
	})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "", updated.Description)
	assert.Equal(s.T(), int64(0), updated.Price)
	assert.Equal(s.T(), created.Name, updated.Name)
}

func (s *InMemoryStoreSuite) TestUpdateByKey_EmptyPatchLeavesStoreUnchanged() {
	s.createTestProduct("P002")
	before, err := s.store.FindAll(s.ctx)
	require.NoError(s.T(), err)

	_, err = s.store.UpdateByKey(s.ctx, "P002", model.ProductPatch{})
	require.ErrorIs(s.T(), err, perrors.ErrNothingToUpdate)

	after, err := s.store.FindAll(s.ctx)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), before, after)
}

func (s *InMemoryStoreSuite) TestUpdateByKey_EmptyPatchCheckedBeforeLookup() {
	_, err := s.store.UpdateByKey(s.ctx, "missing", model.ProductPatch{})
	require.ErrorIs(s.T(), err, perrors.ErrNothingToUpdate)
}

func (s *InMemoryStoreSuite) TestUpdateByKey_NotFound() {
	_, err := s.store.UpdateByKey(s.ctx, "missing", model.ProductPatch{Name: model.Some("x")})
	require.ErrorIs(s.T(), err, perrors.ErrProductNotFound)
}

func (s *InMemoryStoreSuite) TestDeleteByKey() {
	byID := s.createTestProduct("P010")
	s.createTestProduct("P011")
	s.createTestProduct("P012")

	removed, err := s.store.DeleteByKey(s.ctx, byID.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), *byID, *removed)
	removed, err = s.store.DeleteByKey(s.ctx, "P012")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "P012", removed.ProductID)

	_, err = s.store.FindByKey(s.ctx, byID.ID)
	require.ErrorIs(s.T(), err, perrors.ErrProductNotFound)
	_, err = s.store.FindByKey(s.ctx, "P012")
	require.ErrorIs(s.T(), err, perrors.ErrProductNotFound)

	list, err := s.store.FindAll(s.ctx)
	require.NoError(s.T(), err)
	require.Len(s.T(), list, 1)
	assert.Equal(s.T(), "P011", list[0].ProductID)
}

func (s *InMemoryStoreSuite) TestDeleteByKey_NotFound() {
	removed, err := s.store.DeleteByKey(s.ctx, "missing")
	require.ErrorIs(s.T(), err, perrors.ErrProductNotFound)
	require.Nil(s.T(), removed)
}

func (s *InMemoryStoreSuite) TestDeleteByKey_DuplicateProductIDRemovesFirst() {
	first := s.createTestProduct("DUP")
	second := s.createTestProduct("DUP")

	removed, err := s.store.DeleteByKey(s.ctx, "DUP")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), first.ID, removed.ID)

	remaining, err := s.store.FindByKey(s.ctx, "DUP")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), second.ID, remaining.ID)
}

func (s *InMemoryStoreSuite) TestSeed_OnlyWhenEmpty() {
	inserted, err := s.store.Seed(s.ctx, SampleProduct())
	require.NoError(s.T(), err)
	require.True(s.T(), inserted)

	inserted, err = s.store.Seed(s.ctx, SampleProduct())
	require.NoError(s.T(), err)
	require.False(s.T(), inserted, "seed must not be re-applied to a non-empty store")

	list, err := s.store.FindAll(s.ctx)
	require.NoError(s.T(), err)
	require.Len(s.T(), list, 1)
	assert.Equal(s.T(), "P001", list[0].ProductID)
	assert.Equal(s.T(), int64(800), list[0].Price)
}

func (s *InMemoryStoreSuite) TestConcurrentCreates() {
	const workers = 20
	const perWorker = 25

	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range perWorker {
				_, err := s.store.Create(s.ctx, testFields(fmt.Sprintf("W%d-%d", w, i)))
				assert.NoError(s.T(), err)
			}
		}()
	}
	wg.Wait()

	list, err := s.store.FindAll(s.ctx)
	require.NoError(s.T(), err)
	require.Len(s.T(), list, workers*perWorker)
}

func TestNewInMemoryStore_Options(t *testing.T) {
	// given
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("JST", 9*60*60))
	s := NewInMemoryStore(
		WithClock(func() time.Time { return fixed }),
		WithIDGenerator(func() string { return "fixed-id" }),
	)

	// when
	created, err := s.Create(context.Background(), testFields("P002"))

	// then
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", created.ID)
	assert.True(t, fixed.Equal(created.CreatedAt))
	assert.Equal(t, time.UTC, created.CreatedAt.Location())
}
