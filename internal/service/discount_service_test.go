package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/Ranjel272/my-backend-services/internal/dto"
	"github.com/Ranjel272/my-backend-services/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type discountFixture struct {
	svc       DiscountService
	discounts *stubDiscountRepo
	products  *stubProductRepo
	users     *stubUserRepo
}

func newDiscountFixture(t *testing.T) *discountFixture {
	t.Helper()
	f := &discountFixture{
		discounts: newStubDiscountRepo(),
		products:  newStubProductRepo(),
		users:     newStubUserRepo(),
	}
	f.svc = NewDiscountService(f.discounts, f.products, f.users)

	require.NoError(t, f.users.Create(context.Background(), &model.User{
		FullName: "Alice Admin", Username: strPtr("alice"),
		PasswordHash: mustHash(t, "s3cret!"), Role: model.RoleAdmin,
		Email: "alice@example.com",
	}))
	require.NoError(t, f.products.Create(context.Background(), &model.Product{
		Name: "Red Shirt", ProductTypeID: 1, Category: "Apparel",
		Price: decimal.NewFromInt(20),
	}))
	return f
}

func discountRequest(name string) dto.DiscountRequest {
	return dto.DiscountRequest{
		DiscountName:    name,
		ProductName:     "Red Shirt",
		PercentageValue: decimal.NewFromFloat(10.5),
		ValidFrom:       time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		ValidTo:         time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		Username:        "alice",
		Status:          "active",
	}
}

func TestCreateDiscount_ResolvesReferences(t *testing.T) {
	f := newDiscountFixture(t)

	resp, err := f.svc.Create(context.Background(), discountRequest("Summer Sale"))
	require.NoError(t, err)
	assert.Equal(t, "Summer Sale", resp.DiscountName)
	assert.Equal(t, uint(1), resp.ProductID)
	assert.Equal(t, "Red Shirt", resp.ProductName)
	assert.Equal(t, uint(1), resp.UserID)
	assert.False(t, resp.CreatedAt.IsZero())
}

func TestCreateDiscount_UnknownProduct(t *testing.T) {
	f := newDiscountFixture(t)
	req := discountRequest("Summer Sale")
	req.ProductName = "Ghost Product"

	_, err := f.svc.Create(context.Background(), req)
	apiErr := requireStatus(t, err, http.StatusNotFound)
	assert.Contains(t, apiErr.Detail, "Ghost Product")

	// No row may be left behind by the failed create.
	all, listErr := f.discounts.List(context.Background())
	require.NoError(t, listErr)
	assert.Empty(t, all)
}

func TestCreateDiscount_UnknownUsername(t *testing.T) {
	f := newDiscountFixture(t)
	req := discountRequest("Summer Sale")
	req.Username = "nobody"

	_, err := f.svc.Create(context.Background(), req)
	requireStatus(t, err, http.StatusNotFound)
}

func TestCreateDiscount_DuplicateNameCaseInsensitive(t *testing.T) {
	f := newDiscountFixture(t)

	_, err := f.svc.Create(context.Background(), discountRequest("Summer Sale"))
	require.NoError(t, err)

	_, err = f.svc.Create(context.Background(), discountRequest("SUMMER SALE"))
	requireStatus(t, err, http.StatusConflict)
}

func TestCreateDiscount_DateOrdering(t *testing.T) {
	f := newDiscountFixture(t)

	req := discountRequest("Summer Sale")
	req.ValidFrom = req.ValidTo.Add(time.Hour)
	_, err := f.svc.Create(context.Background(), req)
	requireStatus(t, err, http.StatusBadRequest)

	// The boundary case: an empty validity window is rejected too.
	req = discountRequest("Summer Sale")
	req.ValidFrom = req.ValidTo
	_, err = f.svc.Create(context.Background(), req)
	requireStatus(t, err, http.StatusBadRequest)
}

func TestUpdateDiscount_NotFound(t *testing.T) {
	f := newDiscountFixture(t)

	_, err := f.svc.Update(context.Background(), 42, discountRequest("Summer Sale"))
	requireStatus(t, err, http.StatusNotFound)
}

func TestUpdateDiscount_KeepsOwnNameFreesOthers(t *testing.T) {
	f := newDiscountFixture(t)

	created, err := f.svc.Create(context.Background(), discountRequest("Summer Sale"))
	require.NoError(t, err)
	_, err = f.svc.Create(context.Background(), discountRequest("Winter Sale"))
	require.NoError(t, err)

	// Updating without renaming must not trip the uniqueness check on the
	// discount's own row.
	req := discountRequest("Summer Sale")
	req.Status = "inactive"
	resp, err := f.svc.Update(context.Background(), created.DiscountID, req)
	require.NoError(t, err)
	assert.Equal(t, "inactive", resp.Status)

	// Renaming onto another discount's name conflicts.
	req.DiscountName = "winter sale"
	_, err = f.svc.Update(context.Background(), created.DiscountID, req)
	requireStatus(t, err, http.StatusConflict)
}

func TestListDiscounts_NewestFirstWithProductNames(t *testing.T) {
	f := newDiscountFixture(t)

	_, err := f.svc.Create(context.Background(), discountRequest("First"))
	require.NoError(t, err)
	_, err = f.svc.Create(context.Background(), discountRequest("Second"))
	require.NoError(t, err)

	out, err := f.svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Second", out[0].DiscountName)
	assert.Equal(t, "Red Shirt", out[0].ProductName)
	assert.Equal(t, "First", out[1].DiscountName)
}

func TestDeleteDiscount(t *testing.T) {
	f := newDiscountFixture(t)

	created, err := f.svc.Create(context.Background(), discountRequest("Summer Sale"))
	require.NoError(t, err)

	resp, err := f.svc.Delete(context.Background(), created.DiscountID)
	require.NoError(t, err)
	assert.Contains(t, resp.Message, "deleted successfully")

	_, err = f.svc.GetByID(context.Background(), created.DiscountID)
	requireStatus(t, err, http.StatusNotFound)
}
