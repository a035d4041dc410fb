package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/roksva123/go-projecthub-backend/internal/auth"
	"github.com/roksva123/go-projecthub-backend/internal/model"
	"github.com/roksva123/go-projecthub-backend/internal/repository"
)

type AuthHandler struct {
	Reconciler *auth.Reconciler
	Sessions   *auth.SupabaseClient
	Repo       *repository.PostgresRepo
	JWTSecret  string
	Logger     zerolog.Logger
}

func NewAuthHandler(rec *auth.Reconciler, sessions *auth.SupabaseClient, repo *repository.PostgresRepo, jwtSecret string, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		Reconciler: rec,
		Sessions:   sessions,
		Repo:       repo,
		JWTSecret:  jwtSecret,
		Logger:     logger,
	}
}

// Login tries the remote password grant first and falls back to the local
// admin account when the remote auth service is not configured.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	var response model.ResponseApi

	if err := c.ShouldBindJSON(&req); err != nil {
		response.ApiMessage = "Invalid request: " + err.Error()
		c.JSON(http.StatusBadRequest, response)
		return
	}

	if h.Sessions != nil && h.Sessions.Configured() {
		state, err := h.Reconciler.SignInWithPassword(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			response.ApiMessage = "Email or password is incorrect"
			c.JSON(http.StatusUnauthorized, response)
			return
		}
		response.ApiMessage = "Login Successful"
		response.Data = model.LoginResponse{
			Token:   state.Session.AccessToken,
			User:    state.Profile,
			Session: state.Session,
		}
		c.JSON(http.StatusOK, response)
		return
	}

	if h.Repo == nil {
		response.ApiMessage = "No auth backend configured"
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}

	admin, err := h.Repo.GetAdminByUsername(c.Request.Context(), req.Email)
	if err != nil {
		response.ApiMessage = "Email or password is incorrect"
		c.JSON(http.StatusUnauthorized, response)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)) != nil {
		response.ApiMessage = "Email or password is incorrect"
		c.JSON(http.StatusUnauthorized, response)
		return
	}

	claims := jwt.MapClaims{
		"sub": admin.ID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(12 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(h.JWTSecret))
	if err != nil {
		response.ApiMessage = "Failed to generate token"
		c.JSON(http.StatusInternalServerError, response)
		return
	}

	response.ApiMessage = "Login Successful"
	response.Data = model.LoginResponse{Token: tokenString}
	c.JSON(http.StatusOK, response)
}

// OAuthURL returns the provider authorize URL for the redirect flow.
func (h *AuthHandler) OAuthURL(c *gin.Context) {
	provider := c.Param("provider")
	authURL, err := h.Reconciler.SignInWithOAuth(c.Request.Context(), provider)
	if err != nil {
		h.Logger.Warn().Err(err).Str("provider", provider).Msg("oauth url build failed")
		c.JSON(http.StatusBadGateway, model.ResponseApi{ApiMessage: "OAuth provider unavailable"})
		return
	}
	c.JSON(http.StatusOK, model.ResponseApi{
		ApiMessage: "OK",
		Data:       gin.H{"url": authURL},
	})
}

// Callback finishes the OAuth redirect. The frontend forwards the fragment
// parameters as query parameters since fragments never reach the server.
func (h *AuthHandler) Callback(c *gin.Context) {
	state := h.Reconciler.HandleCallback(
		c.Request.Context(),
		c.Query("access_token"),
		c.Query("refresh_token"),
		c.Query("error"),
		c.Query("error_description"),
	)

	if state.Error != "" {
		c.JSON(http.StatusUnauthorized, model.ResponseApi{
			ApiMessage: state.Error,
			Data: gin.H{
				"redirectToLogin": true,
				"redirectDelayMs": h.Reconciler.RedirectDelay().Milliseconds(),
			},
		})
		return
	}
	if !state.IsAuthenticated {
		c.JSON(http.StatusUnauthorized, model.ResponseApi{ApiMessage: "No authentication found"})
		return
	}
	c.JSON(http.StatusOK, model.ResponseApi{ApiMessage: "Authentication successful", Data: state})
}

// Session exposes the reconciler's current view to route guards.
func (h *AuthHandler) Session(c *gin.Context) {
	c.JSON(http.StatusOK, model.ResponseApi{ApiMessage: "OK", Data: h.Reconciler.Snapshot()})
}

// Logout clears the session. Always succeeds from the client's view.
func (h *AuthHandler) Logout(c *gin.Context) {
	state := h.Reconciler.SignOut(c.Request.Context())
	c.JSON(http.StatusOK, model.ResponseApi{ApiMessage: "Logged out", Data: state})
}
