package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/belmobile/belmobile-backend/internal/domain"
	"github.com/belmobile/belmobile-backend/internal/store"
)

// AdminHandler serves the dashboard views: mirror reads for every
// collection and the admin-only mutations. All writes go through the data
// store's fire-and-forget operations, so responses are 202 and the outcome
// lands in the notification center.
type AdminHandler struct {
	log   *zap.Logger
	store *store.Store
}

func NewAdminHandler(log *zap.Logger, st *store.Store) *AdminHandler {
	return &AdminHandler{log: log, store: st}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func (h *AdminHandler) ListReservations(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Reservations())
}

func (h *AdminHandler) ListQuotes(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Quotes())
}

func (h *AdminHandler) ListFranchiseApplications(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.FranchiseApplications())
}

func (h *AdminHandler) ListProducts(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Products())
}

func (h *AdminHandler) ListServices(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Services())
}

func (h *AdminHandler) ListShops(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Shops())
}

func (h *AdminHandler) ListBlogPosts(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.BlogPosts())
}

func (h *AdminHandler) UpdateReservationStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.store.UpdateReservationStatus(c.Request.Context(), id, domain.ReservationStatus(req.Status))
	c.Status(http.StatusAccepted)
}

func (h *AdminHandler) UpdateQuoteStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.store.UpdateQuoteStatus(c.Request.Context(), id, domain.QuoteStatus(req.Status))
	c.Status(http.StatusAccepted)
}

func (h *AdminHandler) UpdateFranchiseApplicationStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.store.UpdateFranchiseApplicationStatus(c.Request.Context(), id, domain.FranchiseApplicationStatus(req.Status))
	c.Status(http.StatusAccepted)
}

func (h *AdminHandler) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created := h.store.AddProduct(c.Request.Context(), domain.Product{
		Name:      req.Name,
		Category:  req.Category,
		Price:     req.Price,
		Condition: req.Condition,
		Storage:   req.Storage,
		ImageURL:  req.ImageURL,
		InStock:   req.InStock,
	})
	c.JSON(http.StatusAccepted, created)
}

func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.store.UpdateProduct(c.Request.Context(), domain.Product{
		ID:        id,
		Name:      req.Name,
		Category:  req.Category,
		Price:     req.Price,
		Condition: req.Condition,
		Storage:   req.Storage,
		ImageURL:  req.ImageURL,
		InStock:   req.InStock,
	})
	c.Status(http.StatusAccepted)
}

func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	h.store.DeleteProduct(c.Request.Context(), id)
	c.Status(http.StatusAccepted)
}

// UpdateShop is the only shop mutation exposed; there is no create or
// delete.
func (h *AdminHandler) UpdateShop(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req shopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.store.UpdateShop(c.Request.Context(), domain.Shop{
		ID:       id,
		Name:     req.Name,
		Address:  req.Address,
		City:     req.City,
		Phone:    req.Phone,
		Hours:    req.Hours,
		MapsURL:  req.MapsURL,
		ImageURL: req.ImageURL,
	})
	c.Status(http.StatusAccepted)
}

func (h *AdminHandler) CreateBlogPost(c *gin.Context) {
	var req blogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created := h.store.AddBlogPost(c.Request.Context(), domain.BlogPost{
		Title:    req.Title,
		Excerpt:  req.Excerpt,
		Content:  req.Content,
		Author:   req.Author,
		ImageURL: req.ImageURL,
	})
	c.JSON(http.StatusAccepted, created)
}

func (h *AdminHandler) UpdateBlogPost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req blogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Preserve the original publication date.
	date := ""
	for _, p := range h.store.BlogPosts() {
		if p.ID == id {
			date = p.Date
			break
		}
	}

	h.store.UpdateBlogPost(c.Request.Context(), domain.BlogPost{
		ID:       id,
		Title:    req.Title,
		Excerpt:  req.Excerpt,
		Content:  req.Content,
		Author:   req.Author,
		ImageURL: req.ImageURL,
		Date:     date,
	})
	c.Status(http.StatusAccepted)
}

func (h *AdminHandler) DeleteBlogPost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	h.store.DeleteBlogPost(c.Request.Context(), id)
	c.Status(http.StatusAccepted)
}

func (h *AdminHandler) Register(r gin.IRouter) {
	r.GET("/reservations", h.ListReservations)
	r.PATCH("/reservations/:id/status", h.UpdateReservationStatus)

	r.GET("/quotes", h.ListQuotes)
	r.PATCH("/quotes/:id/status", h.UpdateQuoteStatus)

	r.GET("/franchise-applications", h.ListFranchiseApplications)
	r.PATCH("/franchise-applications/:id/status", h.UpdateFranchiseApplicationStatus)

	r.GET("/products", h.ListProducts)
	r.POST("/products", h.CreateProduct)
	r.PUT("/products/:id", h.UpdateProduct)
	r.DELETE("/products/:id", h.DeleteProduct)

	r.GET("/services", h.ListServices)

	r.GET("/shops", h.ListShops)
	r.PUT("/shops/:id", h.UpdateShop)

	r.GET("/blog-posts", h.ListBlogPosts)
	r.POST("/blog-posts", h.CreateBlogPost)
	r.PUT("/blog-posts/:id", h.UpdateBlogPost)
	r.DELETE("/blog-posts/:id", h.DeleteBlogPost)
}
