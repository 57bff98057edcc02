package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/belmobile/belmobile-backend/internal/identity"
	"github.com/belmobile/belmobile-backend/internal/platform"
	"github.com/belmobile/belmobile-backend/internal/session"
)

// AuthHandler serves the login, registration, verify-email and logout
// screens' backing endpoints.
type AuthHandler struct {
	log      *zap.Logger
	auth     *identity.Service
	provider platform.IdentityProvider
	tracker  *session.Tracker
}

func NewAuthHandler(log *zap.Logger, auth *identity.Service, provider platform.IdentityProvider, tracker *session.Tracker) *AuthHandler {
	return &AuthHandler{log: log, auth: auth, provider: provider, tracker: tracker}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, identity.ErrEmailUnverified):
		// Correct credentials, unverified address: the session was already
		// dropped, route to the verification screen with the email.
		c.JSON(http.StatusOK, gin.H{
			"redirect": PathVerifyEmail,
			"email":    req.Email,
		})
	case errors.Is(err, identity.ErrTooManyAttempts):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Password or Email Incorrect"})
	default:
		c.JSON(http.StatusOK, gin.H{
			"redirect": PathDashboard,
			"token":    sess.IDToken,
			"user":     sess,
		})
	}
}

func (h *AuthHandler) RegisterAccount(c *gin.Context) {
	in := identity.RegisterInput{
		Name:            c.PostForm("name"),
		Email:           c.PostForm("email"),
		Password:        c.PostForm("password"),
		ConfirmPassword: c.PostForm("confirmPassword"),
	}

	if file, err := c.FormFile("photo"); err == nil && file != nil {
		f, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable photo upload"})
			return
		}
		defer f.Close()
		in.Photo = f
		in.PhotoContentType = file.Header.Get("Content-Type")
	}

	err := h.auth.Register(c.Request.Context(), in)
	switch {
	case errors.Is(err, identity.ErrPasswordMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Passwords do not match."})
	case errors.Is(err, identity.ErrPasswordTooShort):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password should be at least 6 characters."})
	case errors.Is(err, identity.ErrAccountExists):
		c.JSON(http.StatusConflict, gin.H{
			"error":     "User already exists. Sign in?",
			"signInUrl": PathLogin,
		})
	case err != nil:
		// Other provider errors surface their raw message text.
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusCreated, gin.H{
			"redirect": PathVerifyEmail,
			"email":    in.Email,
		})
	}
}

// VerifyEmail is purely informational: it echoes the address the client
// carried over, or a generic placeholder. It does not poll for completion.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		email = "your email address"
	}
	c.JSON(http.StatusOK, gin.H{
		"email":    email,
		"message":  "We have sent you a verification email. Please click the link in the email to verify your account, then log in to access the dashboard.",
		"loginUrl": PathLogin,
	})
}

// Logout revokes whatever session the caller presents and reports the login
// redirect no matter what; revocation errors are logged only.
func (h *AuthHandler) Logout(c *gin.Context) {
	var sess *platform.Session
	if token := c.GetHeader("Authorization"); len(token) > 7 {
		if s, err := h.provider.VerifyToken(c.Request.Context(), token[7:]); err == nil {
			sess = s
		}
	}
	h.auth.Logout(c.Request.Context(), sess)
	c.JSON(http.StatusOK, gin.H{"redirect": PathLogin})
}

// SessionState exposes the tracker for route-guard decisions: loading means
// unknown and callers must not redirect yet.
func (h *AuthHandler) SessionState(c *gin.Context) {
	state := h.tracker.State()
	resp := gin.H{
		"state":   string(state),
		"isAdmin": h.tracker.IsAdmin(),
	}
	if s := h.tracker.Session(); s != nil {
		resp["user"] = s
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Register(r gin.IRouter) {
	admin := r.Group("/admin")
	admin.POST("/login", h.Login)
	admin.POST("/register", h.RegisterAccount)
	admin.GET("/verify-email", h.VerifyEmail)
	admin.POST("/logout", h.Logout)
	admin.GET("/session", h.SessionState)
}
