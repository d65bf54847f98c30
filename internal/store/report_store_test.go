package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace_backend/internal/apperr"
	"marketplace_backend/models"
)

func TestCreateReport(t *testing.T) {
	db := testDB(t)
	stores := New(db)
	seller := createUser(t, db, "seller@example.com")
	reporter := createUser(t, db, "reporter@example.com")
	product := createProduct(t, db, seller.UserID, "Sketchy speaker")

	report, err := stores.Reports.CreateReport(product.ProductID, reporter.UserID)
	require.NoError(t, err)
	assert.Equal(t, models.ReportPending, report.Status)

	_, err = stores.Reports.CreateReport(99999, reporter.UserID)
	assert.True(t, apperr.IsNotFound(err))

	_, err = stores.Reports.CreateReport(product.ProductID, 99999)
	assert.True(t, apperr.IsNotFound(err))
}

func TestResolveDeleteTakesProductDown(t *testing.T) {
	db := testDB(t)
	stores := New(db)
	seller := createUser(t, db, "seller@example.com")
	reporter := createUser(t, db, "reporter@example.com")
	product := createProduct(t, db, seller.UserID, "Counterfeit jersey")
	require.NoError(t, stores.Products.ApproveProduct(product.ProductID))

	report, err := stores.Reports.CreateReport(product.ProductID, reporter.UserID)
	require.NoError(t, err)

	require.NoError(t, stores.Reports.ResolveDelete(report.ReportID))

	fresh, err := stores.Products.GetProduct(product.ProductID)
	require.NoError(t, err)
	assert.Equal(t, models.ProductRemoved, fresh.Status)
	assert.Equal(t, models.ApproveRejected, fresh.ApproveStatus)

	var stored models.ProductReport
	require.NoError(t, db.First(&stored, report.ReportID).Error)
	assert.Equal(t, models.ReportDeleted, stored.Status)

	// The removed product disappears from the public listing.
	listed, err := stores.Products.ListProducts(ProductFilter{})
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestResolveKeepLeavesProductAlone(t *testing.T) {
	db := testDB(t)
	stores := New(db)
	seller := createUser(t, db, "seller@example.com")
	reporter := createUser(t, db, "reporter@example.com")
	product := createProduct(t, db, seller.UserID, "Fine actually")

	report, err := stores.Reports.CreateReport(product.ProductID, reporter.UserID)
	require.NoError(t, err)

	require.NoError(t, stores.Reports.ResolveKeep(report.ReportID))

	fresh, err := stores.Products.GetProduct(product.ProductID)
	require.NoError(t, err)
	assert.Equal(t, models.ProductAvailable, fresh.Status)

	var stored models.ProductReport
	require.NoError(t, db.First(&stored, report.ReportID).Error)
	assert.Equal(t, models.ReportKept, stored.Status)
}

func TestResolveIsOneShot(t *testing.T) {
	db := testDB(t)
	stores := New(db)
	seller := createUser(t, db, "seller@example.com")
	reporter := createUser(t, db, "reporter@example.com")
	product := createProduct(t, db, seller.UserID, "Disputed drone")

	report, err := stores.Reports.CreateReport(product.ProductID, reporter.UserID)
	require.NoError(t, err)
	require.NoError(t, stores.Reports.ResolveKeep(report.ReportID))

	assert.True(t, apperr.IsConflict(stores.Reports.ResolveKeep(report.ReportID)))
	assert.True(t, apperr.IsConflict(stores.Reports.ResolveDelete(report.ReportID)))

	assert.True(t, apperr.IsNotFound(stores.Reports.ResolveKeep(99999)))
}

func TestListPendingReports(t *testing.T) {
	db := testDB(t)
	stores := New(db)
	seller := createUser(t, db, "seller@example.com")
	reporter := createUser(t, db, "reporter@example.com")

	p1 := createProduct(t, db, seller.UserID, "Open case")
	open, err := stores.Reports.CreateReport(p1.ProductID, reporter.UserID)
	require.NoError(t, err)

	p2 := createProduct(t, db, seller.UserID, "Closed case")
	closed, err := stores.Reports.CreateReport(p2.ProductID, reporter.UserID)
	require.NoError(t, err)
	require.NoError(t, stores.Reports.ResolveKeep(closed.ReportID))

	pending, err := stores.Reports.ListPendingReports()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, open.ReportID, pending[0].ReportID)
	assert.Equal(t, "Open case", pending[0].Product.Name)
}
