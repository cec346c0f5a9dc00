package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/simplexhr/hr-console/internal/core/domain"
	"github.com/simplexhr/hr-console/internal/core/ports"
)

// AuthHandler serves login, logout, and the session probe.
type AuthHandler struct {
	auth ports.AuthService
}

func NewAuthHandler(auth ports.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Authenticated bool `json:"authenticated"`
	JustLoggedIn  bool `json:"just_logged_in"`
}

// Login opens the operator session.
//
// @Summary      Log in with the configured credential pair
// @Tags         auth
// @Accept       json
// @Param        body  body  loginRequest  true  "Credentials"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	if err := h.auth.Login(c.Request().Context(), req.Login, req.Password); err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
		}
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// Logout closes the operator session.
//
// @Summary      Log out
// @Tags         auth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.auth.Logout(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Session reports the session state. just_logged_in is a one-shot: it reads
// true on the first call after a successful login and false afterwards, so
// the first protected screen can show its welcome notice exactly once.
//
// @Summary      Session state and one-shot welcome signal
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	// The route guard already admitted this request.
	return c.JSON(http.StatusOK, sessionResponse{
		Authenticated: true,
		JustLoggedIn:  h.auth.ConsumeWelcome(c.Request().Context()),
	})
}
