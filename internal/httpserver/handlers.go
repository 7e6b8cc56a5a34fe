package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"supermarket-pos/internal/cart"
	"supermarket-pos/internal/domain"
)

// statusFor maps domain errors to HTTP statuses. Validation failures are
// client errors; upstream trouble is a bad gateway so the terminal can show a
// retry notice instead of a crash.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrInsufficientTender):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrCheckoutInFlight), errors.Is(err, cart.ErrPhase):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(statusFor(err), gin.H{"error": err.Error()})
}

type loginBody struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func loginHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body loginBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username and password required"})
			return
		}

		token, role, err := deps.Auth.Login(c.Request.Context(), body.Username, body.Password)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
				return
			}
			abortWithError(c, err)
			return
		}

		s := deps.Sessions.Issue(body.Username, role, token)
		c.JSON(http.StatusOK, gin.H{
			"sessionToken": s.ID,
			"username":     s.Username,
			"role":         s.Role,
			"expiresAt":    s.ExpiresAt,
		})
	}
}

// registerUserHandler proxies account creation to the store API. The new
// account gets the cashier role upstream; the operator logs in afterwards.
func registerUserHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body loginBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username and password required"})
			return
		}
		if err := deps.Auth.Register(c.Request.Context(), body.Username, body.Password); err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"username": body.Username})
	}
}

func logoutHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		deps.Sessions.Revoke(currentSession(c).ID)
		c.Status(http.StatusNoContent)
	}
}

func listProductsHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		// First hit after boot has no snapshot yet; fetch one with the
		// operator's token.
		if deps.Catalog.FetchedAt().IsZero() {
			if err := deps.Catalog.Refresh(c.Request.Context(), currentSession(c).Token); err != nil {
				abortWithError(c, err)
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"products":   deps.Catalog.Search(c.Query("search")),
			"categories": deps.Catalog.Categories(),
			"fetchedAt":  deps.Catalog.FetchedAt(),
		})
	}
}

func refreshProductsHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := deps.Catalog.Refresh(c.Request.Context(), currentSession(c).Token); err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"products":  deps.Catalog.Search(""),
			"fetchedAt": deps.Catalog.FetchedAt(),
		})
	}
}

func createProductHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in domain.ProductInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product payload"})
			return
		}
		p, err := deps.Products.CreateProduct(c.Request.Context(), currentSession(c).Token, in)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

func updateProductHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}
		var in domain.ProductInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product payload"})
			return
		}
		p, err := deps.Products.UpdateProduct(c.Request.Context(), currentSession(c).Token, id, in)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func deleteProductHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}
		if err := deps.Products.DeleteProduct(c.Request.Context(), currentSession(c).Token, id); err != nil {
			abortWithError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func statsHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		if snap, ok := deps.Stats.Snapshot(); ok && c.Query("refresh") == "" {
			c.JSON(http.StatusOK, snap)
			return
		}
		snap, err := deps.Stats.Refresh(c.Request.Context(), currentSession(c).Token)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, snap)
	}
}
