package http

import "github.com/belmobile/belmobile-backend/internal/api/http/middleware"

// Browser routes the API hands back as redirect targets.
const (
	PathLogin       = middleware.LoginPath
	PathRegister    = "/admin/register"
	PathVerifyEmail = "/admin/verify-email"
	PathDashboard   = "/admin/dashboard"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type reservationRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Device   string `json:"device" binding:"required"`
	Service  string `json:"service" binding:"required"`
	Shop     string `json:"shop"`
	TimeSlot string `json:"timeSlot"`
}

type quoteRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
	Device    string `json:"device" binding:"required"`
	Condition string `json:"condition"`
}

type franchiseApplicationRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	City    string `json:"city" binding:"required"`
	Budget  string `json:"budget"`
	Message string `json:"message"`
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

type productRequest struct {
	Name      string  `json:"name" binding:"required"`
	Category  string  `json:"category"`
	Price     float64 `json:"price"`
	Condition string  `json:"condition"`
	Storage   string  `json:"storage"`
	ImageURL  string  `json:"imageUrl"`
	InStock   bool    `json:"inStock"`
}

type shopRequest struct {
	Name     string `json:"name" binding:"required"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Phone    string `json:"phone"`
	Hours    string `json:"hours"`
	MapsURL  string `json:"mapsUrl"`
	ImageURL string `json:"imageUrl"`
}

type blogPostRequest struct {
	Title    string `json:"title" binding:"required"`
	Excerpt  string `json:"excerpt"`
	Content  string `json:"content" binding:"required"`
	Author   string `json:"author"`
	ImageURL string `json:"imageUrl"`
}
