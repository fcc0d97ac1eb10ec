package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/gin-gonic/gin"
)

const (
	msgInvalidBody        = "invalid request body"
	msgInvalidCredentials = "invalid credentials"
	msgUnauthenticated    = "unauthenticated"
	msgInternal           = "internal error"
	msgLoginSuccessful    = "login successful"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (s *HTTPServer) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *HTTPServer) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
		return
	}

	user, err := s.accounts.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		var ve *common.ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusBadRequest, gin.H{"error": ve.Msg})
			return
		}
		s.internalError(c, "register failed", err)
		return
	}

	s.logger.Info(c.Request.Context(), "user registered", "user_id", user.ID)
	c.JSON(http.StatusOK, gin.H{"id": user.ID})
}

func (s *HTTPServer) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
		return
	}

	token, err := s.accounts.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": msgInvalidCredentials})
			return
		}
		s.internalError(c, "login failed", err)
		return
	}

	s.setSessionCookie(c, token, int(s.accounts.SessionTTL().Seconds()))
	c.JSON(http.StatusOK, gin.H{"message": msgLoginSuccessful})
}

// logout always succeeds from the client's point of view and always clears
// the cookie.
func (s *HTTPServer) logout(c *gin.Context) {
	if token, err := c.Cookie(s.cookie.Name); err == nil && token != "" {
		if err := s.accounts.Logout(c.Request.Context(), token); err != nil {
			s.logger.Warn(c.Request.Context(), "session revoke failed", "error", err)
		}
	}

	s.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (s *HTTPServer) me(c *gin.Context) {
	user := currentUser(c)
	c.JSON(http.StatusOK, userResponse{ID: user.ID, Username: user.UserName, Email: user.Email})
}

// setSessionCookie writes the session cookie; a negative maxAge deletes it.
func (s *HTTPServer) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.cookie.Name, value, maxAge, "/", "", s.cookie.Secure, true)
}

func (s *HTTPServer) internalError(c *gin.Context, msg string, err error) {
	s.logger.Error(c.Request.Context(), msg, "error", err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": msgInternal})
}

func currentUser(c *gin.Context) *models.User {
	v, _ := c.Get(currentUserKey)
	user, _ := v.(*models.User)
	return user
}
