package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/wanderhq/wanderlust/internal/service"
	"github.com/wanderhq/wanderlust/internal/util"
)

type UserHandler struct {
	auth    *service.AuthService
	cookies *SessionCookies
}

func RegisterUsers(e *echo.Echo, auth *service.AuthService, cookies *SessionCookies) {
	handler := &UserHandler{auth: auth, cookies: cookies}

	e.GET("/users/signup", handler.signupForm)
	e.POST("/signup", handler.signup)
	e.GET("/users/login", handler.loginForm)
	e.POST("/users/login", handler.login)
	e.POST("/users/login/google", handler.loginGoogle)
	e.GET("/logout", handler.logout)
	e.GET("/users/forgot", handler.forgotForm)
	e.POST("/users/forgot", handler.forgot)
	e.GET("/users/reset", handler.resetForm)
	e.POST("/users/reset", handler.reset)
}

func (h *UserHandler) signupForm(c echo.Context) error {
	return renderPage(c, http.StatusOK, "users/signup", "Sign Up", nil)
}

func (h *UserHandler) signup(c echo.Context) error {
	user, err := h.auth.Register(c.Request().Context(),
		c.FormValue("username"), c.FormValue("email"), c.FormValue("password"))
	if err != nil {
		if errors.Is(err, service.ErrDuplicateUser) {
			flashError(c, "A user with that username or email already exists.")
		} else {
			flashError(c, err.Error())
		}
		return c.Redirect(http.StatusSeeOther, "/users/signup")
	}

	// Auto-login after signup.
	session, err := h.auth.StartSession(c.Request().Context(), user.ID)
	if err != nil {
		flashError(c, "Account created, please log in.")
		return c.Redirect(http.StatusSeeOther, "/users/login")
	}
	if err := h.cookies.write(c, session); err != nil {
		return err
	}
	flashSuccess(c, "Welcome to Wanderlust!")
	return c.Redirect(http.StatusSeeOther, "/listings")
}

func (h *UserHandler) loginForm(c echo.Context) error {
	return renderPage(c, http.StatusOK, "users/login", "Log In", nil)
}

func (h *UserHandler) login(c echo.Context) error {
	user, err := h.auth.Authenticate(c.Request().Context(),
		c.FormValue("username"), c.FormValue("password"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			flashError(c, "Incorrect username or password.")
		} else {
			flashError(c, "Could not log you in, try again.")
		}
		return c.Redirect(http.StatusSeeOther, "/users/login")
	}

	session, err := h.auth.StartSession(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	if err := h.cookies.write(c, session); err != nil {
		return err
	}
	flashSuccess(c, "Welcome back to Wanderlust!")
	return c.Redirect(http.StatusSeeOther, popReturnTo(c))
}

// loginGoogle is the one JSON endpoint: the sign-in widget posts the Google
// ID token and follows the redirect on its own.
func (h *UserHandler) loginGoogle(c echo.Context) error {
	var req struct {
		IDToken string `json:"id_token"`
	}
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.IDToken) == "" {
		return c.JSON(http.StatusBadRequest, util.Error("id_token is required"))
	}

	user, session, err := h.auth.LoginWithGoogle(c.Request().Context(), req.IDToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, util.Error("invalid google token"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("could not sign you in"))
	}
	if err := h.cookies.write(c, session); err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("could not sign you in"))
	}
	flashSuccess(c, "Welcome back to Wanderlust!")
	return c.JSON(http.StatusOK, util.Data("user", user))
}

func (h *UserHandler) logout(c echo.Context) error {
	if token, ok := c.Get(contextTokenKey).(string); ok && token != "" {
		if err := h.auth.EndSession(c.Request().Context(), token); err != nil {
			return err
		}
	}
	h.cookies.clear(c)
	flashSuccess(c, "You are logged out!")
	return c.Redirect(http.StatusSeeOther, "/listings")
}

func (h *UserHandler) forgotForm(c echo.Context) error {
	return renderPage(c, http.StatusOK, "users/forgot", "Forgot Password", nil)
}

func (h *UserHandler) forgot(c echo.Context) error {
	if err := h.auth.RequestPasswordReset(c.Request().Context(), c.FormValue("email")); err != nil {
		flashError(c, "Could not send the reset code, try again later.")
		return c.Redirect(http.StatusSeeOther, "/users/forgot")
	}
	flashSuccess(c, "If that email exists, a reset code is on its way.")
	return c.Redirect(http.StatusSeeOther, "/users/reset")
}

func (h *UserHandler) resetForm(c echo.Context) error {
	return renderPage(c, http.StatusOK, "users/reset", "Reset Password", nil)
}

func (h *UserHandler) reset(c echo.Context) error {
	err := h.auth.ResetPassword(c.Request().Context(),
		c.FormValue("email"), c.FormValue("otp"), c.FormValue("password"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidOTP) {
			flashError(c, "Invalid or expired reset code.")
		} else {
			flashError(c, err.Error())
		}
		return c.Redirect(http.StatusSeeOther, "/users/reset")
	}
	flashSuccess(c, "Password changed, log in with your new password.")
	return c.Redirect(http.StatusSeeOther, "/users/login")
}
