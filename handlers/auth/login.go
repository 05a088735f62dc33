package auth

import (
	"crypto/subtle"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/sahilchouksey/datacat/database"
	"github.com/sahilchouksey/datacat/model"
	"github.com/sahilchouksey/datacat/utils/middleware"
	"github.com/sahilchouksey/datacat/utils/response"
	"gorm.io/gorm"
)

// AuthHandler handles the login page, login submissions and logout
type AuthHandler struct {
	store          database.Storage
	sessions       *session.Store
	implicitSignup bool
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(store database.Storage, sessions *session.Store, implicitSignup bool) *AuthHandler {
	return &AuthHandler{
		store:          store,
		sessions:       sessions,
		implicitSignup: implicitSignup,
	}
}

// LoginPage renders the login form
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	return c.Render("login", fiber.Map{
		"Title": "Login",
	}, "layouts/main")
}

// Login authenticates a name/password pair. When implicit signup is on,
// an unseen name creates the account with the submitted password, so a
// failed login never distinguishes "wrong password" from "no such
// account". Any failure redirects back to the login page.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	name := c.FormValue("name")
	password := c.FormValue("password")
	if name == "" || password == "" {
		return response.Redirect(c, "/login")
	}

	user, err := h.store.GetUser(name)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if !h.implicitSignup {
			return response.Redirect(c, "/login")
		}
		user = model.User{Name: name, Password: password}
		if err := h.store.CreateUser(user); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	if subtle.ConstantTimeCompare([]byte(user.Password), []byte(password)) != 1 {
		return response.Redirect(c, "/login")
	}

	sess, err := h.sessions.Get(c)
	if err != nil {
		return err
	}
	middleware.SetIdentity(sess, user.Name)
	if err := sess.Save(); err != nil {
		return err
	}

	return response.Redirect(c, "/")
}

// Logout clears the session identity
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess, err := h.sessions.Get(c)
	if err != nil {
		return response.Redirect(c, "/login")
	}
	middleware.ClearIdentity(sess)
	if err := sess.Save(); err != nil {
		return err
	}
	return response.Redirect(c, "/login")
}
