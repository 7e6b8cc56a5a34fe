package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"supermarket-pos/internal/domain"
)

func openRegisterHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := deps.Registers.Open()
		state, err := deps.Registers.State(id)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusCreated, state)
	}
}

func registerStateHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := deps.Registers.State(c.Param("id"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, state)
	}
}

func closeRegisterHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		deps.Registers.Close(c.Param("id"))
		c.Status(http.StatusNoContent)
	}
}

// respondState replies with the register's fresh state after a mutation so
// the terminal can redraw without a second round trip.
func respondState(c *gin.Context, deps Deps, id string) {
	state, err := deps.Registers.State(id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

type addItemBody struct {
	ProductID int64 `json:"productId" binding:"required"`
}

func addItemHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body addItemBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "productId required"})
			return
		}
		if err := deps.Registers.AddItem(c.Param("id"), body.ProductID); err != nil {
			abortWithError(c, err)
			return
		}
		respondState(c, deps, c.Param("id"))
	}
}

type quantityBody struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func setQuantityHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}
		var body quantityBody
		if err := c.ShouldBindJSON(&body); err != nil || *body.Quantity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be a non-negative integer"})
			return
		}
		if err := deps.Registers.SetQuantity(c.Param("id"), productID, *body.Quantity); err != nil {
			abortWithError(c, err)
			return
		}
		respondState(c, deps, c.Param("id"))
	}
}

func removeItemHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}
		if err := deps.Registers.RemoveItem(c.Param("id"), productID); err != nil {
			abortWithError(c, err)
			return
		}
		respondState(c, deps, c.Param("id"))
	}
}

type customerBody struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func setCustomerHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body customerBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer payload"})
			return
		}
		if err := deps.Registers.SetCustomer(c.Param("id"), body.Name, body.Phone); err != nil {
			abortWithError(c, err)
			return
		}
		respondState(c, deps, c.Param("id"))
	}
}

func beginPaymentHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := deps.Registers.BeginPayment(c.Param("id")); err != nil {
			abortWithError(c, err)
			return
		}
		respondState(c, deps, c.Param("id"))
	}
}

func cancelPaymentHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := deps.Registers.CancelPayment(c.Param("id")); err != nil {
			abortWithError(c, err)
			return
		}
		respondState(c, deps, c.Param("id"))
	}
}

type methodBody struct {
	Method string `json:"method" binding:"required"`
}

func selectMethodHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body methodBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "method required"})
			return
		}
		method, err := domain.ParsePaymentMethod(body.Method)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := deps.Registers.SelectPaymentMethod(c.Param("id"), method); err != nil {
			abortWithError(c, err)
			return
		}
		respondState(c, deps, c.Param("id"))
	}
}

type tenderedBody struct {
	Amount string `json:"amount"`
}

func setTenderedHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body tenderedBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tendered payload"})
			return
		}
		// The amount is free text from the terminal keypad; the engine treats
		// anything unparseable as zero.
		if err := deps.Registers.SetTendered(c.Param("id"), body.Amount); err != nil {
			abortWithError(c, err)
			return
		}
		respondState(c, deps, c.Param("id"))
	}
}

func checkoutHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := deps.Registers.Checkout(c.Request.Context(), currentSession(c).Token, c.Param("id"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
