package cart

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront-labs/storefront-api/apperrors"
	"github.com/storefront-labs/storefront-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Role{}, &models.Category{},
		&models.Product{}, &models.Cart{}, &models.CartItem{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{
		ID:           uuid.NewString(),
		Username:     strings.SplitN(email, "@", 2)[0],
		Email:        email,
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price, discount string, stock int) models.Product {
	t.Helper()
	p := decimal.RequireFromString(price)
	d := decimal.RequireFromString(discount)
	product := models.Product{
		Name:         name,
		Price:        p,
		Discount:     d,
		SpecialPrice: models.ComputeSpecialPrice(p, d),
		Stock:        stock,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func repriceProduct(t *testing.T, db *gorm.DB, productID uint, price, discount string) {
	t.Helper()
	p := decimal.RequireFromString(price)
	d := decimal.RequireFromString(discount)
	err := db.Model(&models.Product{}).Where("id = ?", productID).Updates(map[string]any{
		"price":         p,
		"discount":      d,
		"special_price": models.ComputeSpecialPrice(p, d),
	}).Error
	require.NoError(t, err)
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(expected).Equal(actual),
		"expected %s, got %s", expected, actual)
}

// loadedTotal re-reads the cart and checks the stored total against the sum
// of quantity times snapshot price over its current lines.
func assertTotalConsistent(t *testing.T, db *gorm.DB, cartID uint) {
	t.Helper()
	var cart models.Cart
	require.NoError(t, db.Preload("Items").First(&cart, "cart_id = ?", cartID).Error)

	sum := decimal.Zero
	for i := range cart.Items {
		sum = sum.Add(cart.Items[i].LineTotal())
	}
	assert.True(t, sum.Equal(cart.TotalPrice),
		"stored total %s drifted from line sum %s", cart.TotalPrice, sum)
}

func TestAddCreatesCartLazilyAndSnapshotsPrice(t *testing.T) {
	db := newTestDB(t)
	engine := NewEngine(db)
	seedUser(t, db, "alice@example.com")
	product := seedProduct(t, db, "Keyboard", "100", "10", 50)

	dto, err := engine.AddProductToCart("alice@example.com", product.ID, 2)
	require.NoError(t, err)

	require.Len(t, dto.Items, 1)
	assert.Equal(t, 2, dto.Items[0].Quantity)
	assertDecimal(t, "90", dto.Items[0].Price)
	assertDecimal(t, "180", dto.TotalPrice)
	assertTotalConsistent(t, db, dto.CartID)
}

func TestAddSameProductMergesIntoOneLine(t *testing.T) {
	db := newTestDB(t)
	engine := NewEngine(db)
	seedUser(t, db, "alice@example.com")
	product := seedProduct(t, db, "Keyboard", "100", "0", 50)

	_, err := engine.AddProductToCart("alice@example.com", product.ID, 2)
	require.NoError(t, err)
	dto, err := engine.AddProductToCart("alice@example.com", product.ID, 3)
	require.NoError(t, err)

	require.Len(t, dto.Items, 1)
	assert.Equal(t, 5, dto.Items[0].Quantity)

	var lines int64
	db.Model(&models.CartItem{}).Where("product_id = ?", product.ID).Count(&lines)
	assert.EqualValues(t, 1, lines)
}

func TestAddFailsOnInsufficientStockAndLeavesCartUnchanged(t *testing.T) {
	db := newTestDB(t)
	engine := NewEngine(db)
	seedUser(t, db, "alice@example.com")
	product := seedProduct(t, db, "Keyboard", "100", "0", 5)

	before, err := engine.AddProductToCart("alice@example.com", product.ID, 3)
	require.NoError(t, err)

	// 3 already in the cart, 3 more would exceed stock 5.
	_, err = engine.AddProductToCart("alice@example.com", product.ID, 3)
	var stockErr *apperrors.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 6, stockErr.Requested)
	assert.Equal(t, 5, stockErr.Available)

	after, err := engine.GetCart("alice@example.com", before.CartID)
	require.NoError(t, err)
	assert.Equal(t, 3, after.Items[0].Quantity)
	assert.True(t, before.TotalPrice.Equal(after.TotalPrice))
	assertTotalConsistent(t, db, before.CartID)
}

func TestAddUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	engine := NewEngine(db)
	seedUser(t, db, "alice@example.com")

	_, err := engine.AddProductToCart("alice@example.com", 999, 1)
	var notFound *apperrors.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Product", notFound.Resource)
}

func TestAddRejectsNonPositiveQuantity(t *testing.T) {
	db := newTestDB(t)
	engine := NewEngine(db)

	for _, qty := range []int{0, -1} {
		_, err := engine.AddProductToCart("alice@example.com", 1, qty)
		var validation *apperrors.ValidationError
		assert.ErrorAs(t, err, &validation, "quantity %d", qty)
	}
}

// The snapshot refresh scenario: price 100 discount 10%, quantity 2 gives a
// 90 snapshot and 180 total; an increment keeps the stale snapshot (270);
// a later add refreshes the snapshot to the current live price.
func TestSnapshotRefreshOnlyOnAdd(t *testing.T) {
	db := newTestDB(t)
	engine := NewEngine(db)
	seedUser(t, db, "alice@example.com")
	product := seedProduct(t, db, "Keyboard", "100", "10", 50)

	dto, err := engine.AddProductToCart("alice@example.com", product.ID, 2)
	require.NoError(t, err)
	assertDecimal(t, "90", dto.Items[0].Price)
	assertDecimal(t, "180", dto.TotalPrice)

	// Catalog price moves; the existing line must not notice.
	repriceProduct(t, db, product.ID, "120", "0")

	dto, err = engine.UpdateProductQuantityInCart("alice@example.com", product.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, dto.Items[0].Quantity)
	assertDecimal(t, "90", dto.Items[0].Price)
	assertDecimal(t, "270", dto.TotalPrice)

	// Add refreshes the snapshot to the live special price.
	dto, err = engine.AddProductToCart("alice@example.com", product.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, dto.Items[0].Quantity)
	assertDecimal(t, "120", dto.Items[0].Price)
	assertDecimal(t, "480", dto.TotalPrice)
	assertTotalConsistent(t, db, dto.CartID)
}

func TestIncrementBeyondStock(t *testing.T) {
	db := newTestDB(t)
	engine := NewEngine(db)
	seedUser(t, db, "alice@example.com")
	product := seedProduct(t, db, "Keyboard", "100", "0", 2)

	_, err := engine.AddProductToCart("alice@example.com", product.ID, 2)
	require.NoError(t, err)

	_, err = engine.UpdateProductQuantityInCart("alice@example.com", product.ID, 1)
	var stockErr *apperrors.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
}

func TestDecrementToZeroRemovesLine(t *testing.T) {
	db := newTestDB(t)
	engine := NewEngine(db)
	seedUser(t, db, "alice@example.com")
	keyboard := seedProduct(t, db, "Keyboard", "100", "0", 10)
	mouse := seedProduct(t, db, "Mouse", "25", "0", 10)

	_, err := engine.AddProductToCart("alice@example.com", keyboard.ID, 1)
	require.NoError(t, err)
	_, err = engine.AddProductToCart("alice@example.com", mouse.ID, 2)
	require.NoError(t, err)

	dto, err := engine.UpdateProductQuantityInCart("alice@example.com", keyboard.ID, -1)
	require.NoError(t, err)

	require.Len(t, dto.Items, 1)
	assert.Equal(t, mouse.ID, dto.Items[0].ProductID)
	assertDecimal(t, "50", dto.TotalPrice)

	// No zero-quantity line left behind.
	var lines int64
	db.Model(&models.CartItem{}).Where("product_id = ?", keyboard.ID).Count(&lines)
	assert.EqualValues(t, 0, lines)
	assertTotalConsistent(t, db, dto.CartID)
}

func TestUpdateQuantityMissingLine(t *testing.T) {
	db := newTestDB(t)
	engine := NewEngine(db)
	seedUser(t, db, "alice@example.com")
	keyboard := seedProduct(t, db, "Keyboard", "100", "0", 10)
	mouse := seedProduct(t, db, "Mouse", "25", "0", 10)

	_, err := engine.AddProductToCart("alice@example.com", keyboard.ID, 1)
	require.NoError(t, err)

	_, err = engine.UpdateProductQuantityInCart("alice@example.com", mouse.ID, 1)
	var notFound *apperrors.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestUpdateQuantityRejectsArbitraryDelta(t *testing.T) {
	db := newTestDB(t)
	engine := NewEngine(db)

	for _, delta := range []int{0, 2, -3} {
		_, err := engine.UpdateProductQuantityInCart("alice@example.com", 1, delta)
		var validation *apperrors.ValidationError
		assert.ErrorAs(t, err, &validation, "delta %d", delta)
	}
}

func TestDeleteProductFromCart(t *testing.T) {
	db := newTestDB(t)
	engine := NewEngine(db)
	seedUser(t, db, "alice@example.com")
	keyboard := seedProduct(t, db, "Keyboard", "100", "0", 10)
	mouse := seedProduct(t, db, "Mouse", "25", "0", 10)

	dto, err := engine.AddProductToCart("alice@example.com", keyboard.ID, 2)
	require.NoError(t, err)
	_, err = engine.AddProductToCart("alice@example.com", mouse.ID, 1)
	require.NoError(t, err)

	status, err := engine.DeleteProductFromCart(dto.CartID, keyboard.ID)
	require.NoError(t, err)
	assert.Contains(t, status, "Keyboard")

	after, err := engine.GetCart("alice@example.com", dto.CartID)
	require.NoError(t, err)
	require.Len(t, after.Items, 1)
	assertDecimal(t, "25", after.TotalPrice)

	// Deleting again reports the line as missing.
	_, err = engine.DeleteProductFromCart(dto.CartID, keyboard.ID)
	var notFound *apperrors.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestGetCartEnforcesOwnership(t *testing.T) {
	db := newTestDB(t)
	engine := NewEngine(db)
	seedUser(t, db, "alice@example.com")
	seedUser(t, db, "bob@example.com")
	product := seedProduct(t, db, "Keyboard", "100", "0", 10)

	aliceCart, err := engine.AddProductToCart("alice@example.com", product.ID, 1)
	require.NoError(t, err)
	_, err = engine.AddProductToCart("bob@example.com", product.ID, 1)
	require.NoError(t, err)

	// Bob requesting Alice's cart id gets nothing, not her data.
	dto, err := engine.GetCart("bob@example.com", aliceCart.CartID)
	assert.Nil(t, dto)
	var notFound *apperrors.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestClearCartIsValidTerminalState(t *testing.T) {
	db := newTestDB(t)
	engine := NewEngine(db)
	seedUser(t, db, "alice@example.com")
	product := seedProduct(t, db, "Keyboard", "100", "0", 10)

	dto, err := engine.AddProductToCart("alice@example.com", product.ID, 2)
	require.NoError(t, err)

	_, err = engine.ClearCart("alice@example.com")
	require.NoError(t, err)

	after, err := engine.GetCart("alice@example.com", dto.CartID)
	require.NoError(t, err)
	assert.Empty(t, after.Items)
	assertDecimal(t, "0", after.TotalPrice)
}

func TestGetAllCarts(t *testing.T) {
	db := newTestDB(t)
	engine := NewEngine(db)

	dtos, err := engine.GetAllCarts()
	require.NoError(t, err)
	assert.Empty(t, dtos)

	seedUser(t, db, "alice@example.com")
	seedUser(t, db, "bob@example.com")
	product := seedProduct(t, db, "Keyboard", "100", "0", 10)

	_, err = engine.AddProductToCart("alice@example.com", product.ID, 1)
	require.NoError(t, err)
	_, err = engine.AddProductToCart("bob@example.com", product.ID, 2)
	require.NoError(t, err)

	dtos, err = engine.GetAllCarts()
	require.NoError(t, err)
	assert.Len(t, dtos, 2)
}

func TestRemoveProductFromAllCarts(t *testing.T) {
	db := newTestDB(t)
	engine := NewEngine(db)
	seedUser(t, db, "alice@example.com")
	seedUser(t, db, "bob@example.com")
	keyboard := seedProduct(t, db, "Keyboard", "100", "0", 10)
	mouse := seedProduct(t, db, "Mouse", "25", "0", 10)

	aliceCart, err := engine.AddProductToCart("alice@example.com", keyboard.ID, 1)
	require.NoError(t, err)
	_, err = engine.AddProductToCart("alice@example.com", mouse.ID, 1)
	require.NoError(t, err)
	bobCart, err := engine.AddProductToCart("bob@example.com", keyboard.ID, 3)
	require.NoError(t, err)

	require.NoError(t, engine.RemoveProductFromAllCarts(keyboard.ID))

	alice, err := engine.GetCart("alice@example.com", aliceCart.CartID)
	require.NoError(t, err)
	require.Len(t, alice.Items, 1)
	assertDecimal(t, "25", alice.TotalPrice)

	bob, err := engine.GetCart("bob@example.com", bobCart.CartID)
	require.NoError(t, err)
	assert.Empty(t, bob.Items)
	assertDecimal(t, "0", bob.TotalPrice)

	assertTotalConsistent(t, db, aliceCart.CartID)
	assertTotalConsistent(t, db, bobCart.CartID)
}
