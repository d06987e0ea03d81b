package cart

import (
	"errors"

	"github.com/storefront-labs/storefront-api/apperrors"
	"github.com/storefront-labs/storefront-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductReader is the engine's read-only view of the catalog: live price,
// discount and stock at decision time.
type ProductReader interface {
	GetProduct(id uint) (*models.Product, error)
}

// Store is the persisted cart state the engine mutates. Implementations are
// bound to a single transaction; the engine never crosses two of them in
// one operation.
type Store interface {
	UserByEmail(email string) (*models.User, error)
	LoadCart(userID string) (*models.Cart, error)
	LoadCartByID(cartID uint) (*models.Cart, error)
	LoadAllCarts() ([]models.Cart, error)
	CreateCart(cart *models.Cart) error
	SaveCart(cart *models.Cart) error
	SaveItem(item *models.CartItem) error
	DeleteLine(cartID, productID uint) error
	DeleteAllLines(cartID uint) error
	DeleteProductLines(productID uint) ([]uint, error)
}

// gormStore implements Store and ProductReader over one gorm transaction.
type gormStore struct {
	tx   *gorm.DB
	lock bool
}

func newGormStore(tx *gorm.DB) *gormStore { return &gormStore{tx: tx, lock: true} }

// newReadStore skips row locks for the read-only projections.
func newReadStore(db *gorm.DB) *gormStore { return &gormStore{tx: db} }

// locked adds a row lock where the dialect supports it. SQLite (tests) has
// no FOR UPDATE; its single-writer model serializes the check anyway.
func (s *gormStore) locked() *gorm.DB {
	if !s.lock || s.tx.Dialector.Name() == "sqlite" {
		return s.tx
	}
	return s.tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func (s *gormStore) GetProduct(id uint) (*models.Product, error) {
	var product models.Product
	if err := s.locked().First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Product", "productId", id)
		}
		return nil, err
	}
	return &product, nil
}

func (s *gormStore) UserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.tx.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("User", "email", email)
		}
		return nil, err
	}
	return &user, nil
}

func (s *gormStore) LoadCart(userID string) (*models.Cart, error) {
	var cart models.Cart
	err := s.locked().Preload("Items.Product").Where("user_id = ?", userID).First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

func (s *gormStore) LoadCartByID(cartID uint) (*models.Cart, error) {
	var cart models.Cart
	err := s.locked().Preload("Items.Product").First(&cart, "cart_id = ?", cartID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Cart", "cartId", cartID)
		}
		return nil, err
	}
	return &cart, nil
}

func (s *gormStore) LoadAllCarts() ([]models.Cart, error) {
	var carts []models.Cart
	if err := s.tx.Preload("Items.Product").Find(&carts).Error; err != nil {
		return nil, err
	}
	return carts, nil
}

func (s *gormStore) CreateCart(cart *models.Cart) error {
	return s.tx.Create(cart).Error
}

func (s *gormStore) SaveCart(cart *models.Cart) error {
	// Items are written through SaveItem/DeleteLine; saving associations
	// here would resurrect deleted lines.
	return s.tx.Omit("Items").Save(cart).Error
}

func (s *gormStore) SaveItem(item *models.CartItem) error {
	return s.tx.Omit("Product").Save(item).Error
}

func (s *gormStore) DeleteLine(cartID, productID uint) error {
	result := s.tx.Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&models.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("Product", "productId", productID)
	}
	return nil
}

func (s *gormStore) DeleteAllLines(cartID uint) error {
	return s.tx.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}

// DeleteProductLines removes a product from every cart and returns the ids
// of the carts that held it, so their totals can be recomputed.
func (s *gormStore) DeleteProductLines(productID uint) ([]uint, error) {
	var cartIDs []uint
	err := s.tx.Model(&models.CartItem{}).Where("product_id = ?", productID).
		Distinct().Pluck("cart_id", &cartIDs).Error
	if err != nil {
		return nil, err
	}
	if len(cartIDs) == 0 {
		return nil, nil
	}
	err = s.tx.Where("product_id = ?", productID).Delete(&models.CartItem{}).Error
	if err != nil {
		return nil, err
	}
	return cartIDs, nil
}
