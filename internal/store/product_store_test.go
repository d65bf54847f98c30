package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace_backend/internal/apperr"
	"marketplace_backend/models"
)

func TestCreateProductStartsPending(t *testing.T) {
	db := testDB(t)
	stores := New(db)
	seller := createUser(t, db, "seller@example.com")

	product, err := stores.Products.CreateProduct(&models.Product{
		Name:      "Espresso machine",
		Price:     80,
		Condition: "used",
		SellerID:  seller.UserID,
		// Whatever the caller sends is overridden.
		Status:        models.ProductSold,
		ApproveStatus: models.ApproveApproved,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ProductAvailable, product.Status)
	assert.Equal(t, models.ApprovePending, product.ApproveStatus)

	_, err = stores.Products.CreateProduct(&models.Product{
		Name: "Orphan", SellerID: 99999,
	})
	assert.True(t, apperr.IsNotFound(err))
}

func TestApproveProduct(t *testing.T) {
	db := testDB(t)
	stores := New(db)
	seller := createUser(t, db, "seller@example.com")

	t.Run("pending becomes approved", func(t *testing.T) {
		product := createProduct(t, db, seller.UserID, "Bike")
		require.NoError(t, stores.Products.ApproveProduct(product.ProductID))

		fresh, err := stores.Products.GetProduct(product.ProductID)
		require.NoError(t, err)
		assert.Equal(t, models.ApproveApproved, fresh.ApproveStatus)
	})

	t.Run("approving twice conflicts", func(t *testing.T) {
		product := createProduct(t, db, seller.UserID, "Helmet")
		require.NoError(t, stores.Products.ApproveProduct(product.ProductID))
		err := stores.Products.ApproveProduct(product.ProductID)
		assert.True(t, apperr.IsConflict(err))
	})

	t.Run("approving rejected conflicts", func(t *testing.T) {
		product := createProduct(t, db, seller.UserID, "Lock")
		require.NoError(t, stores.Products.RejectProduct(product.ProductID, "blurry photos"))
		err := stores.Products.ApproveProduct(product.ProductID)
		assert.True(t, apperr.IsConflict(err))
	})

	t.Run("missing product not found", func(t *testing.T) {
		assert.True(t, apperr.IsNotFound(stores.Products.ApproveProduct(99999)))
	})
}

func TestRejectProduct(t *testing.T) {
	db := testDB(t)
	stores := New(db)
	seller := createUser(t, db, "seller@example.com")

	t.Run("pending gets rejected with reason", func(t *testing.T) {
		product := createProduct(t, db, seller.UserID, "Couch")
		require.NoError(t, stores.Products.RejectProduct(product.ProductID, "prohibited item"))

		fresh, err := stores.Products.GetProduct(product.ProductID)
		require.NoError(t, err)
		assert.Equal(t, models.ApproveRejected, fresh.ApproveStatus)
		assert.Equal(t, "prohibited item", fresh.RejectionReason)
	})

	t.Run("rejecting approved conflicts", func(t *testing.T) {
		product := createProduct(t, db, seller.UserID, "Table")
		require.NoError(t, stores.Products.ApproveProduct(product.ProductID))
		err := stores.Products.RejectProduct(product.ProductID, "late report")
		assert.True(t, apperr.IsConflict(err))
	})

	t.Run("rejecting rejected conflicts", func(t *testing.T) {
		product := createProduct(t, db, seller.UserID, "Rug")
		require.NoError(t, stores.Products.RejectProduct(product.ProductID, "first"))
		err := stores.Products.RejectProduct(product.ProductID, "second")
		assert.True(t, apperr.IsConflict(err))
	})
}

func TestListProducts(t *testing.T) {
	db := testDB(t)
	stores := New(db)
	seller := createUser(t, db, "seller@example.com")

	furniture := models.Category{CategoryName: "Furniture"}
	require.NoError(t, db.Create(&furniture).Error)

	approved := createProduct(t, db, seller.UserID, "Oak table")
	require.NoError(t, db.Model(approved).Updates(map[string]interface{}{
		"approve_status": models.ApproveApproved,
		"category_id":    furniture.CategoryID,
		"price":          120,
	}).Error)

	// Still pending, must not show up.
	createProduct(t, db, seller.UserID, "Pending chair")

	// Approved but sold, must not show up either.
	sold := createProduct(t, db, seller.UserID, "Sold sofa")
	require.NoError(t, db.Model(sold).Updates(map[string]interface{}{
		"approve_status": models.ApproveApproved,
		"status":         models.ProductSold,
	}).Error)

	t.Run("only approved available listings", func(t *testing.T) {
		products, err := stores.Products.ListProducts(ProductFilter{})
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Oak table", products[0].Name)
	})

	t.Run("name filter matches substring", func(t *testing.T) {
		products, err := stores.Products.ListProducts(ProductFilter{Name: "table"})
		require.NoError(t, err)
		assert.Len(t, products, 1)

		products, err = stores.Products.ListProducts(ProductFilter{Name: "sofa"})
		require.NoError(t, err)
		assert.Empty(t, products)
	})

	t.Run("price range filter", func(t *testing.T) {
		min, max := 100.0, 150.0
		products, err := stores.Products.ListProducts(ProductFilter{MinPrice: &min, MaxPrice: &max})
		require.NoError(t, err)
		assert.Len(t, products, 1)

		tooHigh := 200.0
		products, err = stores.Products.ListProducts(ProductFilter{MinPrice: &tooHigh})
		require.NoError(t, err)
		assert.Empty(t, products)
	})

	t.Run("unknown category yields empty slice", func(t *testing.T) {
		ghost := uint(99999)
		products, err := stores.Products.ListProducts(ProductFilter{CategoryID: &ghost})
		require.NoError(t, err)
		assert.NotNil(t, products)
		assert.Empty(t, products)
	})
}

func TestDeleteProductIsSoft(t *testing.T) {
	db := testDB(t)
	stores := New(db)
	seller := createUser(t, db, "seller@example.com")
	product := createProduct(t, db, seller.UserID, "Lamp")

	require.NoError(t, stores.Products.DeleteProduct(product.ProductID))

	fresh, err := stores.Products.GetProduct(product.ProductID)
	require.NoError(t, err)
	assert.Equal(t, models.ProductDeleted, fresh.Status)
}
