package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"marketplace_backend/internal/apperr"
	"marketplace_backend/models"
)

func seedRoles(t *testing.T, db *gorm.DB) (userRole, modRole models.Role) {
	t.Helper()
	userRole = models.Role{RoleName: "user"}
	modRole = models.Role{RoleName: "moderator"}
	require.NoError(t, db.Create(&userRole).Error)
	require.NoError(t, db.Create(&modRole).Error)
	return userRole, modRole
}

func TestCreateUser(t *testing.T) {
	db := testDB(t)
	stores := New(db)
	userRole, _ := seedRoles(t, db)

	address := models.Address{Street: "Campusallee 1", City: "Lemgo", PostalCode: "32657"}
	user, err := stores.Users.CreateUser(&models.UserProfile{
		FirstName: "Mina",
		LastName:  "Khan",
		Email:     "mina@example.com",
		Password:  "hashed",
	}, address, userRole.RoleID)
	require.NoError(t, err)
	require.NotNil(t, user.Address)
	assert.Equal(t, "Lemgo", user.Address.City)
	assert.Equal(t, "user", user.RoleName())

	t.Run("duplicate email conflicts", func(t *testing.T) {
		_, err := stores.Users.CreateUser(&models.UserProfile{
			Email: "mina@example.com", Password: "hashed",
		}, models.Address{}, userRole.RoleID)
		assert.True(t, apperr.IsConflict(err))
	})

	t.Run("unknown role is a validation error", func(t *testing.T) {
		_, err := stores.Users.CreateUser(&models.UserProfile{
			Email: "other@example.com", Password: "hashed",
		}, models.Address{}, 99999)
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})
}

func TestUpdateUserPartial(t *testing.T) {
	db := testDB(t)
	stores := New(db)
	userRole, _ := seedRoles(t, db)

	created, err := stores.Users.CreateUser(&models.UserProfile{
		FirstName: "Mina", LastName: "Khan",
		Email: "mina@example.com", Password: "hashed",
	}, models.Address{City: "Lemgo"}, userRole.RoleID)
	require.NoError(t, err)
	originalAddressID := created.Address.AddressID

	updated, err := stores.Users.UpdateUser(created.UserID, UserUpdate{
		FirstName: "Amina",
		Address:   &models.Address{City: "Detmold", Street: "Hauptstr. 9"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Amina", updated.FirstName)
	assert.Equal(t, "Khan", updated.LastName)
	assert.Equal(t, "mina@example.com", updated.Email)

	// The address row is edited in place, never replaced.
	assert.Equal(t, originalAddressID, updated.Address.AddressID)
	assert.Equal(t, "Detmold", updated.Address.City)

	var count int64
	require.NoError(t, db.Model(&models.Address{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGetModerator(t *testing.T) {
	db := testDB(t)
	stores := New(db)
	userRole, modRole := seedRoles(t, db)

	mod, err := stores.Users.CreateUser(&models.UserProfile{
		Email: "mod@example.com", Password: "hashed",
	}, models.Address{}, modRole.RoleID)
	require.NoError(t, err)

	plain, err := stores.Users.CreateUser(&models.UserProfile{
		Email: "plain@example.com", Password: "hashed",
	}, models.Address{}, userRole.RoleID)
	require.NoError(t, err)

	got, err := stores.Users.GetModerator(mod.UserID)
	require.NoError(t, err)
	assert.Equal(t, mod.UserID, got.UserID)

	_, err = stores.Users.GetModerator(plain.UserID)
	assert.True(t, apperr.IsNotFound(err))
}

func TestFavourites(t *testing.T) {
	db := testDB(t)
	stores := New(db)
	user := createUser(t, db, "buyer@example.com")
	seller := createUser(t, db, "seller@example.com")
	p1 := createProduct(t, db, seller.UserID, "Kettle")
	p2 := createProduct(t, db, seller.UserID, "Toaster")

	t.Run("empty set before any add", func(t *testing.T) {
		favs, err := stores.Users.ListFavourites(user.UserID)
		require.NoError(t, err)
		assert.Empty(t, favs)
	})

	t.Run("add then list", func(t *testing.T) {
		require.NoError(t, stores.Users.AddFavourite(user.UserID, int64(p1.ProductID)))
		require.NoError(t, stores.Users.AddFavourite(user.UserID, int64(p2.ProductID)))

		favs, err := stores.Users.ListFavourites(user.UserID)
		require.NoError(t, err)
		require.Len(t, favs, 2)
		assert.Equal(t, "Kettle", favs[0].Name)
	})

	t.Run("duplicate add conflicts and set is unchanged", func(t *testing.T) {
		err := stores.Users.AddFavourite(user.UserID, int64(p1.ProductID))
		assert.True(t, apperr.IsConflict(err))

		favs, err := stores.Users.ListFavourites(user.UserID)
		require.NoError(t, err)
		assert.Len(t, favs, 2)
	})

	t.Run("remove non-member not found", func(t *testing.T) {
		err := stores.Users.RemoveFavourite(user.UserID, 99999)
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("remove member", func(t *testing.T) {
		require.NoError(t, stores.Users.RemoveFavourite(user.UserID, int64(p1.ProductID)))
		favs, err := stores.Users.ListFavourites(user.UserID)
		require.NoError(t, err)
		require.Len(t, favs, 1)
		assert.Equal(t, "Toaster", favs[0].Name)
	})

	t.Run("dangling product id is skipped", func(t *testing.T) {
		require.NoError(t, db.Delete(&models.Product{}, p2.ProductID).Error)
		favs, err := stores.Users.ListFavourites(user.UserID)
		require.NoError(t, err)
		assert.Empty(t, favs)
	})

	t.Run("unknown ids not found", func(t *testing.T) {
		assert.True(t, apperr.IsNotFound(stores.Users.AddFavourite(99999, int64(p1.ProductID))))
		assert.True(t, apperr.IsNotFound(stores.Users.AddFavourite(user.UserID, 99999)))
	})
}
