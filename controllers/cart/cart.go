package cartControllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/storefront-labs/storefront-api/apperrors"
	"github.com/storefront-labs/storefront-api/cart"
	"github.com/storefront-labs/storefront-api/middleware"
)

// POST /api/carts/products/:productId/quantity/:quantity
func AddProductToCart(engine *cart.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString(middleware.ContextUserEmail)

		productID, err := parseUintParam(c, "productId")
		if err != nil {
			return
		}
		quantity, err := strconv.Atoi(c.Param("quantity"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quantity"})
			return
		}

		dto, addErr := engine.AddProductToCart(email, productID, quantity)
		if addErr != nil {
			c.JSON(apperrors.HTTPStatus(addErr), gin.H{"error": addErr.Error()})
			return
		}
		c.JSON(http.StatusCreated, dto)
	}
}

// PUT /api/cart/products/:productId/quantity/:operation
// The literal operation "delete" (case-insensitive) decrements; anything
// else increments. This mirrors the existing external contract.
func UpdateProductQuantity(engine *cart.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString(middleware.ContextUserEmail)

		productID, err := parseUintParam(c, "productId")
		if err != nil {
			return
		}

		delta := 1
		if strings.EqualFold(c.Param("operation"), "delete") {
			delta = -1
		}

		dto, updateErr := engine.UpdateProductQuantityInCart(email, productID, delta)
		if updateErr != nil {
			c.JSON(apperrors.HTTPStatus(updateErr), gin.H{"error": updateErr.Error()})
			return
		}
		c.JSON(http.StatusOK, dto)
	}
}

// DELETE /api/carts/:cartId/product/:productId
// Returns a plain confirmation message, not the cart projection.
func DeleteProductFromCart(engine *cart.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		cartID, err := parseUintParam(c, "cartId")
		if err != nil {
			return
		}
		productID, err := parseUintParam(c, "productId")
		if err != nil {
			return
		}

		status, deleteErr := engine.DeleteProductFromCart(cartID, productID)
		if deleteErr != nil {
			c.JSON(apperrors.HTTPStatus(deleteErr), gin.H{"error": deleteErr.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": status})
	}
}

// DELETE /api/carts/users/cart
func ClearCart(engine *cart.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString(middleware.ContextUserEmail)

		status, err := engine.ClearCart(email)
		if err != nil {
			c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": status})
	}
}

// GET /api/carts/users/cart
func GetUserCart(engine *cart.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString(middleware.ContextUserEmail)

		cartID, err := engine.CartIDFor(email)
		if err != nil {
			c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		dto, err := engine.GetCart(email, cartID)
		if err != nil {
			c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, dto)
	}
}

// GET /api/carts
func GetAllCarts(engine *cart.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		dtos, err := engine.GetAllCarts()
		if err != nil {
			c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, dtos)
	}
}

func parseUintParam(c *gin.Context, name string) (uint, error) {
	value, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, err
	}
	return uint(value), nil
}
