package handlers

import (
	applog "tradepost/internal/log"
	"tradepost/internal/services"
	"tradepost/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Auth     *services.AuthService
	Treasury *services.TreasuryService
}

type registerReq struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body", "code": "INVALID_INPUT"})
	}
	email, ok := validate.Email(req.Email)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "email"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid email", "code": "INVALID_INPUT"})
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "name"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name must be 1-20 characters", "code": "INVALID_INPUT"})
	}
	if !validate.Password(req.Password) {
		applog.Security(c, "validation.fail", map[string]any{"field": "password"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "password does not meet requirements", "code": "INVALID_INPUT"})
	}

	p, err := h.Auth.Register(email, name, req.Password)
	if err != nil {
		if err == services.ErrEmailTaken {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "email already registered", "code": "EMAIL_TAKEN"})
		}
		applog.Error(c, "auth.register.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not register", "code": "INTERNAL"})
	}
	applog.Audit(c, "auth.register", map[string]any{"principal": p.ID})
	return c.Status(fiber.StatusCreated).JSON(p)
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body", "code": "INVALID_INPUT"})
	}
	token, p, err := h.Auth.Login(req.Email, req.Password)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"email": req.Email})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid email or password", "code": "BAD_CREDENTIALS"})
	}
	applog.Audit(c, "auth.login", map[string]any{"principal": p.ID})
	return c.JSON(fiber.Map{"token": token, "principal": p})
}

// Me returns the authenticated principal including the live balance.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	p := caller(c)
	balance, err := h.Treasury.Balance(p.ID)
	if err != nil {
		applog.Error(c, "auth.me.balance", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load balance", "code": "INTERNAL"})
	}
	p.Balance = balance
	return c.JSON(p)
}
