package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/belmobile/belmobile-backend/internal/domain"
	"github.com/belmobile/belmobile-backend/internal/store"
)

// PublicHandler serves the public site: catalog reads from the mirrors and
// the three submission forms. Form writes are fire-and-forget against the
// external store; the response reflects the submitted record, not the
// mirror, which may lag until the next snapshot.
type PublicHandler struct {
	log   *zap.Logger
	store *store.Store
}

func NewPublicHandler(log *zap.Logger, st *store.Store) *PublicHandler {
	return &PublicHandler{log: log, store: st}
}

func (h *PublicHandler) CreateReservation(c *gin.Context) {
	var req reservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created := h.store.AddReservation(c.Request.Context(), domain.Reservation{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Device:   req.Device,
		Service:  req.Service,
		Shop:     req.Shop,
		TimeSlot: req.TimeSlot,
	})
	c.JSON(http.StatusAccepted, created)
}

func (h *PublicHandler) CreateQuote(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created := h.store.AddQuote(c.Request.Context(), domain.Quote{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Device:    req.Device,
		Condition: req.Condition,
	})
	c.JSON(http.StatusAccepted, created)
}

func (h *PublicHandler) CreateFranchiseApplication(c *gin.Context) {
	var req franchiseApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created := h.store.AddFranchiseApplication(c.Request.Context(), domain.FranchiseApplication{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		City:    req.City,
		Budget:  req.Budget,
		Message: req.Message,
	})
	c.JSON(http.StatusAccepted, created)
}

func (h *PublicHandler) ListProducts(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Products())
}

func (h *PublicHandler) ListServices(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Services())
}

func (h *PublicHandler) ListShops(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Shops())
}

func (h *PublicHandler) ListBlogPosts(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.BlogPosts())
}

// Register mounts the public routes. limited wraps the submission forms.
func (h *PublicHandler) Register(r gin.IRouter, limited gin.HandlerFunc) {
	if limited == nil {
		limited = func(c *gin.Context) { c.Next() }
	}
	forms := r.Group("/", limited)
	forms.POST("/reservations", h.CreateReservation)
	forms.POST("/quotes", h.CreateQuote)
	forms.POST("/franchise-applications", h.CreateFranchiseApplication)

	r.GET("/products", h.ListProducts)
	r.GET("/services", h.ListServices)
	r.GET("/shops", h.ListShops)
	r.GET("/blog-posts", h.ListBlogPosts)
}
