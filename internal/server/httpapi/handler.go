package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/artstore/internal/api"
	"github.com/dmitrijs2005/artstore/internal/common"
	"github.com/dmitrijs2005/artstore/internal/server/models"
	"github.com/dmitrijs2005/artstore/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func (s *Server) Login(c *gin.Context) {
	var req api.LoginRequest
	if !bind(c, &req) {
		return
	}

	user, err := s.store.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		s.fail(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "Logged in", "username", user.UserName)
	c.JSON(http.StatusOK, user.ToAPI())
}

func (s *Server) Register(c *gin.Context) {
	var req api.RegisterRequest
	if !bind(c, &req) {
		return
	}

	user, err := s.store.Register(c.Request.Context(), services.RegisterInput{
		Username:    req.Username,
		DisplayName: req.DisplayName,
		Password:    req.Password,
		PhotoKey:    req.PhotoKey,
	})
	if err != nil {
		s.fail(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "Registered", "username", user.UserName)
	c.JSON(http.StatusCreated, api.MessageResponse{Msg: "user registered"})
}

func (s *Server) Gallery(c *gin.Context) {
	list, err := s.store.Gallery(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toAPIArtworks(list))
}

func (s *Server) Purchase(c *gin.Context) {
	var req api.PurchaseRequest
	if !bind(c, &req) {
		return
	}

	user, err := s.store.Purchase(c.Request.Context(), req.Username, req.ArtworkID)
	if err != nil {
		s.fail(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "Artwork sold", "username", user.UserName, "artwork_id", req.ArtworkID)
	c.JSON(http.StatusOK, api.PurchaseResponse{Msg: "purchase completed", Balance: user.Balance})
}

func (s *Server) Purchased(c *gin.Context) {
	username, ok := usernameParam(c)
	if !ok {
		return
	}

	list, err := s.store.Purchased(c.Request.Context(), username)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toAPIArtworks(list))
}

func (s *Server) Profile(c *gin.Context) {
	username, ok := usernameParam(c)
	if !ok {
		return
	}

	user, err := s.store.Profile(c.Request.Context(), username)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user.ToAPI())
}

func (s *Server) UpdateProfile(c *gin.Context) {
	var req api.UpdateProfileRequest
	if !bind(c, &req) {
		return
	}

	_, err := s.store.UpdateProfile(c.Request.Context(), services.ProfileUpdate{
		Username:        req.Username,
		PasswordConfirm: req.PasswordConfirm,
		NewUsername:     req.NewUsername,
		DisplayName:     req.DisplayName,
		PhotoKey:        req.PhotoKey,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Msg: "profile updated"})
}

func (s *Server) Topup(c *gin.Context) {
	var req api.TopupRequest
	if !bind(c, &req) {
		return
	}

	amount, err := decimal.NewFromString(req.Amount.String())
	if err != nil || !common.AmountWithinBounds(amount) {
		s.fail(c, services.ErrInvalidAmount)
		return
	}

	user, err := s.store.Topup(c.Request.Context(), req.Username, amount)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, api.TopupResponse{Balance: user.Balance})
}

func (s *Server) Presign(c *gin.Context) {
	var req api.PresignRequest
	if !bind(c, &req) {
		return
	}

	key, url, err := s.presigner.PresignPut(c.Request.Context(), req.Folder, req.Filename, req.ContentType)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, api.PresignResponse{UploadURL: url, Key: key})
}

// fail maps a service error onto a status code and an ErrorResponse.
// Unexpected errors are logged and reported without detail.
func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	msg := "internal error"

	switch {
	case errors.Is(err, services.ErrInvalidInput):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, services.ErrInvalidAmount):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, services.ErrInvalidCredentials):
		status, msg = http.StatusUnauthorized, err.Error()
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrArtworkNotFound):
		status, msg = http.StatusNotFound, err.Error()
	case errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrArtworkNotAvailable),
		errors.Is(err, services.ErrInsufficientBalance):
		status, msg = http.StatusConflict, err.Error()
	default:
		s.logger.Error(c.Request.Context(), "request failed", "path", c.Request.URL.Path, "error", err)
	}

	c.AbortWithStatusJSON(status, api.ErrorResponse{Error: msg})
}

func bind(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

func usernameParam(c *gin.Context) (string, bool) {
	username := c.Query("username")
	if username == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, api.ErrorResponse{Error: "username is required"})
		return "", false
	}
	return username, true
}

func toAPIArtworks(list []models.Artwork) []api.Artwork {
	out := make([]api.Artwork, 0, len(list))
	for i := range list {
		out = append(out, list[i].ToAPI())
	}
	return out
}
