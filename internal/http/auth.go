package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"paragraph-titler/internal/apperror"
	"paragraph-titler/internal/domain"
	"paragraph-titler/internal/service"
)

const currentUserKey = "currentUser"

var errNotAuthenticated = apperror.New(apperror.KindAuth, "not_authenticated", "not authenticated")

type registerRequest struct {
	Username  string  `json:"username" binding:"required,min=3,max=50"`
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required,min=6"`
	FirstName *string `json:"first_name" binding:"omitempty,max=50"`
	LastName  *string `json:"last_name" binding:"omitempty,max=50"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	user, err := h.users.Register(c.Request.Context(), service.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.respondWithToken(c, user)
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.respondWithToken(c, user)
}

func (h *Handler) respondWithToken(c *gin.Context, user *domain.User) {
	token, err := h.tokens.Issue(user.ID, user.Username)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        userToResponse(*user),
	})
}

func (h *Handler) me(c *gin.Context) {
	c.JSON(http.StatusOK, userToResponse(*currentUser(c)))
}

// requireAuth resolves the bearer token to an active user and stores it on the context.
func (h *Handler) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			h.writeError(c, errNotAuthenticated)
			return
		}

		claims, err := h.tokens.Verify(token)
		if err != nil {
			h.writeError(c, err)
			return
		}

		user, err := h.users.ResolveActiveUser(c.Request.Context(), claims.UserID)
		if err != nil {
			h.writeError(c, err)
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// currentUser is only valid behind requireAuth.
func currentUser(c *gin.Context) *domain.User {
	return c.MustGet(currentUserKey).(*domain.User)
}
