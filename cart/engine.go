// Package cart holds the consistency rules between a user's cart, live
// product price and stock, and the per-line snapshot price. Every mutation
// runs as one transaction: read, validate stock, write, recompute total.
package cart

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/storefront-labs/storefront-api/apperrors"
	"github.com/storefront-labs/storefront-api/models"
	"gorm.io/gorm"
)

type Engine struct {
	db  *gorm.DB
	now func() time.Time
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db, now: time.Now}
}

// AddProductToCart puts quantity units of a product into the caller's cart,
// creating the cart on first use. An existing line for the product absorbs
// the quantity and has its snapshot price refreshed from the live special
// price; quantity-only updates elsewhere never touch it.
func (e *Engine) AddProductToCart(email string, productID uint, quantity int) (*CartDTO, error) {
	if quantity < 1 {
		return nil, apperrors.Validation("quantity must be at least 1")
	}

	var dto *CartDTO
	err := e.db.Transaction(func(tx *gorm.DB) error {
		store := newGormStore(tx)

		user, err := store.UserByEmail(email)
		if err != nil {
			return err
		}
		product, err := store.GetProduct(productID)
		if err != nil {
			return err
		}

		cart, err := store.LoadCart(user.ID)
		if err != nil {
			return err
		}
		if cart == nil {
			cart = &models.Cart{UserID: user.ID, TotalPrice: decimal.Zero}
			if err := store.CreateCart(cart); err != nil {
				return err
			}
		}

		line := findLine(cart, productID)
		requested := quantity
		if line != nil {
			requested += line.Quantity
		}
		if product.Stock < requested {
			return &apperrors.InsufficientStockError{
				ProductName: product.Name,
				Requested:   requested,
				Available:   product.Stock,
			}
		}

		if line != nil {
			line.Quantity = requested
			line.Price = product.SpecialPrice
			line.Discount = product.Discount
			line.AddedAt = e.now()
			if err := store.SaveItem(line); err != nil {
				return err
			}
		} else {
			item := models.CartItem{
				CartID:    cart.CartID,
				ProductID: product.ID,
				Quantity:  quantity,
				Price:     product.SpecialPrice,
				Discount:  product.Discount,
				AddedAt:   e.now(),
			}
			if err := store.SaveItem(&item); err != nil {
				return err
			}
			item.Product = *product
			cart.Items = append(cart.Items, item)
		}

		cart.TotalPrice = recomputeTotal(cart.Items)
		if err := store.SaveCart(cart); err != nil {
			return err
		}

		dto = toCartDTO(cart)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// UpdateProductQuantityInCart moves an existing line by exactly one unit.
// Decrementing the last unit deletes the line. The snapshot price is left
// alone; only AddProductToCart refreshes it.
func (e *Engine) UpdateProductQuantityInCart(email string, productID uint, delta int) (*CartDTO, error) {
	if delta != 1 && delta != -1 {
		return nil, apperrors.Validation("delta must be +1 or -1")
	}

	var dto *CartDTO
	err := e.db.Transaction(func(tx *gorm.DB) error {
		store := newGormStore(tx)

		user, err := store.UserByEmail(email)
		if err != nil {
			return err
		}
		cart, err := store.LoadCart(user.ID)
		if err != nil {
			return err
		}
		if cart == nil {
			return apperrors.NotFound("Cart", "userId", user.ID)
		}
		product, err := store.GetProduct(productID)
		if err != nil {
			return err
		}

		line := findLine(cart, productID)
		if line == nil {
			return apperrors.NotFound("Product", "productId", productID)
		}

		newQuantity := line.Quantity + delta
		if delta > 0 && product.Stock < newQuantity {
			return &apperrors.InsufficientStockError{
				ProductName: product.Name,
				Requested:   newQuantity,
				Available:   product.Stock,
			}
		}

		if newQuantity <= 0 {
			if err := store.DeleteLine(cart.CartID, productID); err != nil {
				return err
			}
			removeLine(cart, productID)
		} else {
			line.Quantity = newQuantity
			if err := store.SaveItem(line); err != nil {
				return err
			}
		}

		cart.TotalPrice = recomputeTotal(cart.Items)
		if err := store.SaveCart(cart); err != nil {
			return err
		}

		dto = toCartDTO(cart)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// DeleteProductFromCart removes a line outright and returns a confirmation
// message, matching the narrower contract of this endpoint.
func (e *Engine) DeleteProductFromCart(cartID, productID uint) (string, error) {
	var status string
	err := e.db.Transaction(func(tx *gorm.DB) error {
		store := newGormStore(tx)

		cart, err := store.LoadCartByID(cartID)
		if err != nil {
			return err
		}
		line := findLine(cart, productID)
		if line == nil {
			return apperrors.NotFound("Product", "productId", productID)
		}
		name := line.Product.Name

		if err := store.DeleteLine(cartID, productID); err != nil {
			return err
		}
		removeLine(cart, productID)

		cart.TotalPrice = recomputeTotal(cart.Items)
		if err := store.SaveCart(cart); err != nil {
			return err
		}

		status = fmt.Sprintf("Product %s removed from the cart", name)
		return nil
	})
	if err != nil {
		return "", err
	}
	return status, nil
}

// ClearCart drops every line of the caller's cart. An empty cart is a valid
// terminal state, not an error.
func (e *Engine) ClearCart(email string) (string, error) {
	var status string
	err := e.db.Transaction(func(tx *gorm.DB) error {
		store := newGormStore(tx)

		user, err := store.UserByEmail(email)
		if err != nil {
			return err
		}
		cart, err := store.LoadCart(user.ID)
		if err != nil {
			return err
		}
		if cart == nil {
			return apperrors.NotFound("Cart", "userId", user.ID)
		}

		if err := store.DeleteAllLines(cart.CartID); err != nil {
			return err
		}
		cart.Items = nil
		cart.TotalPrice = decimal.Zero
		if err := store.SaveCart(cart); err != nil {
			return err
		}

		status = "Cart cleared"
		return nil
	})
	if err != nil {
		return "", err
	}
	return status, nil
}

// GetCart returns the caller's cart, verifying that the requested cartId is
// the one the caller actually owns. A mismatch reads as not-found rather
// than exposing another user's cart.
func (e *Engine) GetCart(email string, cartID uint) (*CartDTO, error) {
	store := newReadStore(e.db)

	user, err := store.UserByEmail(email)
	if err != nil {
		return nil, err
	}
	cart, err := store.LoadCart(user.ID)
	if err != nil {
		return nil, err
	}
	if cart == nil || cart.CartID != cartID {
		return nil, apperrors.NotFound("Cart", "cartId", cartID)
	}
	return toCartDTO(cart), nil
}

// CartIDFor resolves the caller's own cart id for the get-own-cart route.
func (e *Engine) CartIDFor(email string) (uint, error) {
	store := newReadStore(e.db)

	user, err := store.UserByEmail(email)
	if err != nil {
		return 0, err
	}
	cart, err := store.LoadCart(user.ID)
	if err != nil {
		return 0, err
	}
	if cart == nil {
		return 0, apperrors.NotFound("Cart", "userId", user.ID)
	}
	return cart.CartID, nil
}

// GetAllCarts lists every cart in the store. An empty storefront yields an
// empty list.
func (e *Engine) GetAllCarts() ([]CartDTO, error) {
	carts, err := newReadStore(e.db).LoadAllCarts()
	if err != nil {
		return nil, err
	}
	dtos := make([]CartDTO, 0, len(carts))
	for i := range carts {
		dtos = append(dtos, *toCartDTO(&carts[i]))
	}
	return dtos, nil
}

// RemoveProductFromAllCarts sweeps a product out of every cart and fixes
// the affected totals. The catalog calls this before deleting a product.
func (e *Engine) RemoveProductFromAllCarts(productID uint) error {
	return e.db.Transaction(func(tx *gorm.DB) error {
		store := newGormStore(tx)

		cartIDs, err := store.DeleteProductLines(productID)
		if err != nil {
			return err
		}
		for _, id := range cartIDs {
			cart, err := store.LoadCartByID(id)
			if err != nil {
				return err
			}
			cart.TotalPrice = recomputeTotal(cart.Items)
			if err := store.SaveCart(cart); err != nil {
				return err
			}
		}
		return nil
	})
}

func findLine(cart *models.Cart, productID uint) *models.CartItem {
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			return &cart.Items[i]
		}
	}
	return nil
}

func removeLine(cart *models.Cart, productID uint) {
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			return
		}
	}
}
