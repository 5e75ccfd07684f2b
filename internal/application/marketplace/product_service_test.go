package marketplace

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fuadmd/WHH-SBG/internal/domain/directory"
	"github.com/fuadmd/WHH-SBG/internal/domain/identity"
	"github.com/fuadmd/WHH-SBG/internal/domain/shared"
)

type productFixture struct {
	service    *ProductService
	products   *MockProductRepository
	businesses *MockBusinessRepository
	users      *MockUserRepository
	publisher  *MockEventPublisher
}

func newProductFixture() *productFixture {
	f := &productFixture{
		products:   &MockProductRepository{},
		businesses: &MockBusinessRepository{},
		users:      &MockUserRepository{},
		publisher:  &MockEventPublisher{},
	}
	f.service = NewProductService(f.products, f.businesses, f.users, f.publisher)
	return f
}

func newItemFor(t *testing.T, businessID uuid.UUID) *directory.Product {
	t.Helper()
	p, err := directory.NewProduct(businessID, "Jollof Rice Tray", "Food", decimal.NewFromInt(30), "NGN")
	require.NoError(t, err)
	p.ClearDomainEvents()
	return p
}

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("owner can add a product", func(t *testing.T) {
		f := newProductFixture()
		seller := newSeller(t)
		listing := newListingFor(t, seller.ID)

		f.users.On("FindByID", ctx, seller.ID).Return(seller, nil)
		f.businesses.On("FindByID", ctx, listing.ID).Return(listing, nil)
		f.products.On("Save", ctx, mock.AnythingOfType("*directory.Product")).Return(nil)
		f.publisher.On("Publish", ctx, mock.Anything).Return(nil)

		resp, err := f.service.CreateProduct(ctx, seller.ID, listing.ID, &CreateProductRequest{
			Name:     "Jollof Rice Tray",
			Category: "Food",
			Price:    decimal.NewFromInt(30),
			Currency: "NGN",
		})

		require.NoError(t, err)
		assert.Equal(t, listing.ID, resp.BusinessID)
		assert.False(t, resp.IsPublished)
		f.publisher.AssertCalled(t, "Publish", ctx, mock.Anything)
	})

	t.Run("stranger cannot add a product", func(t *testing.T) {
		f := newProductFixture()
		stranger := newSeller(t)
		listing := newListingFor(t, uuid.New())

		f.users.On("FindByID", ctx, stranger.ID).Return(stranger, nil)
		f.businesses.On("FindByID", ctx, listing.ID).Return(listing, nil)

		_, err := f.service.CreateProduct(ctx, stranger.ID, listing.ID, &CreateProductRequest{
			Name: "Planted Item", Category: "Food", Price: decimal.NewFromInt(1),
		})

		assert.ErrorIs(t, err, shared.ErrForbidden)
		f.products.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("negative price is rejected", func(t *testing.T) {
		f := newProductFixture()
		seller := newSeller(t)
		listing := newListingFor(t, seller.ID)

		f.users.On("FindByID", ctx, seller.ID).Return(seller, nil)
		f.businesses.On("FindByID", ctx, listing.ID).Return(listing, nil)

		_, err := f.service.CreateProduct(ctx, seller.ID, listing.ID, &CreateProductRequest{
			Name: "Bad Deal", Category: "Food", Price: decimal.NewFromInt(-5),
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
	})
}

func TestProductLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("publish then unpublish", func(t *testing.T) {
		f := newProductFixture()
		seller := newSeller(t)
		listing := newListingFor(t, seller.ID)
		item := newItemFor(t, listing.ID)

		f.users.On("FindByID", ctx, seller.ID).Return(seller, nil)
		f.businesses.On("FindByID", ctx, listing.ID).Return(listing, nil)
		f.products.On("FindByID", ctx, item.ID).Return(item, nil)
		f.products.On("Save", ctx, item).Return(nil)

		resp, err := f.service.Publish(ctx, seller.ID, item.ID)
		require.NoError(t, err)
		assert.True(t, resp.IsPublished)

		resp, err = f.service.Unpublish(ctx, seller.ID, item.ID)
		require.NoError(t, err)
		assert.False(t, resp.IsPublished)
	})

	t.Run("set stock with quantity", func(t *testing.T) {
		f := newProductFixture()
		seller := newSeller(t)
		listing := newListingFor(t, seller.ID)
		item := newItemFor(t, listing.ID)
		qty := 3

		f.users.On("FindByID", ctx, seller.ID).Return(seller, nil)
		f.businesses.On("FindByID", ctx, listing.ID).Return(listing, nil)
		f.products.On("FindByID", ctx, item.ID).Return(item, nil)
		f.products.On("Save", ctx, item).Return(nil)

		resp, err := f.service.SetStock(ctx, seller.ID, item.ID, &SetStockRequest{
			Status:   directory.StockStatusLimited,
			Quantity: &qty,
		})

		require.NoError(t, err)
		assert.Equal(t, directory.StockStatusLimited, resp.StockStatus)
		require.NotNil(t, resp.Quantity)
		assert.Equal(t, 3, *resp.Quantity)
	})

	t.Run("set price updates currency", func(t *testing.T) {
		f := newProductFixture()
		seller := newSeller(t)
		listing := newListingFor(t, seller.ID)
		item := newItemFor(t, listing.ID)

		f.users.On("FindByID", ctx, seller.ID).Return(seller, nil)
		f.businesses.On("FindByID", ctx, listing.ID).Return(listing, nil)
		f.products.On("FindByID", ctx, item.ID).Return(item, nil)
		f.products.On("Save", ctx, item).Return(nil)

		resp, err := f.service.SetPrice(ctx, seller.ID, item.ID, decimal.NewFromInt(45), "ghs")

		require.NoError(t, err)
		assert.True(t, resp.Price.Equal(decimal.NewFromInt(45)))
		assert.Equal(t, "GHS", resp.Currency)
	})

	t.Run("record sale bumps product and business counters", func(t *testing.T) {
		f := newProductFixture()
		seller := newSeller(t)
		listing := newListingFor(t, seller.ID)
		item := newItemFor(t, listing.ID)

		f.users.On("FindByID", ctx, seller.ID).Return(seller, nil)
		f.businesses.On("FindByID", ctx, listing.ID).Return(listing, nil)
		f.businesses.On("Save", ctx, listing).Return(nil)
		f.products.On("FindByID", ctx, item.ID).Return(item, nil)
		f.products.On("Save", ctx, item).Return(nil)

		resp, err := f.service.RecordSale(ctx, seller.ID, item.ID)

		require.NoError(t, err)
		assert.Equal(t, 1, resp.SalesCount)
		assert.Equal(t, 1, listing.TotalSales)
	})

	t.Run("market-banned owner cannot touch products", func(t *testing.T) {
		f := newProductFixture()
		seller := newSeller(t)
		listing := newListingFor(t, seller.ID)
		item := newItemFor(t, listing.ID)
		require.NoError(t, seller.Ban(identity.BanScopeMarket, "counterfeit goods"))

		f.users.On("FindByID", ctx, seller.ID).Return(seller, nil)
		f.products.On("FindByID", ctx, item.ID).Return(item, nil)

		_, err := f.service.Publish(ctx, seller.ID, item.ID)

		assert.ErrorIs(t, err, shared.ErrForbidden)
		f.products.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestDeleteProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("owner can delete", func(t *testing.T) {
		f := newProductFixture()
		seller := newSeller(t)
		listing := newListingFor(t, seller.ID)
		item := newItemFor(t, listing.ID)

		f.users.On("FindByID", ctx, seller.ID).Return(seller, nil)
		f.businesses.On("FindByID", ctx, listing.ID).Return(listing, nil)
		f.products.On("FindByID", ctx, item.ID).Return(item, nil)
		f.products.On("Delete", ctx, item.ID).Return(nil)

		require.NoError(t, f.service.DeleteProduct(ctx, seller.ID, item.ID))
	})

	t.Run("super admin bypasses ownership", func(t *testing.T) {
		f := newProductFixture()
		admin := newSuperAdmin(t)
		listing := newListingFor(t, uuid.New())
		item := newItemFor(t, listing.ID)

		f.users.On("FindByID", ctx, admin.ID).Return(admin, nil)
		f.businesses.On("FindByID", ctx, listing.ID).Return(listing, nil)
		f.products.On("FindByID", ctx, item.ID).Return(item, nil)
		f.products.On("Delete", ctx, item.ID).Return(nil)

		require.NoError(t, f.service.DeleteProduct(ctx, admin.ID, item.ID))
	})

	t.Run("missing product surfaces not found", func(t *testing.T) {
		f := newProductFixture()
		seller := newSeller(t)

		f.products.On("FindByID", ctx, mock.Anything).Return(nil, shared.ErrNotFound)

		err := f.service.DeleteProduct(ctx, seller.ID, uuid.New())

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
