package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/gin-gonic/gin"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type errorResponse struct {
	Error string      `json:"error"`
	Kind  common.Kind `json:"kind"`
}

type registerResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"userId"`
}

type loginResponse struct {
	Message   string    `json:"message"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type meResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "gophauth",
	})
}

func (s *Server) handleRegister(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, common.ErrorInvalidInput)
		return
	}

	user, err := s.users.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, registerResponse{
		Message: "User registered successfully",
		UserID:  user.ID,
	})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, common.ErrorInvalidInput)
		return
	}

	res, err := s.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		Message:   "Login successful",
		Token:     res.Token,
		ExpiresAt: res.Claims.ExpiresAt,
	})
}

func (s *Server) handleMe(c *gin.Context) {
	user, err := s.users.WhoAmI(c.Request.Context(), c.GetString(tokenContextKey))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, meResponse{
		ID:        user.ID,
		Username:  user.UserName,
		CreatedAt: user.CreatedAt,
	})
}

// writeError maps err onto a status code and the public error body.
func writeError(c *gin.Context, err error) {
	kind := common.KindOf(err)

	code := http.StatusInternalServerError
	switch kind {
	case common.KindInvalidInput:
		code = http.StatusBadRequest
	case common.KindUsernameTaken:
		code = http.StatusConflict
	case common.KindInvalidCredentials, common.KindInvalidToken, common.KindTokenExpired, common.KindUnauthorized:
		code = http.StatusUnauthorized
	}

	if code == http.StatusUnauthorized {
		c.Header("WWW-Authenticate", `Bearer realm="gophauth"`)
	}
	c.JSON(code, errorResponse{Error: common.PublicMessage(err), Kind: kind})
}
