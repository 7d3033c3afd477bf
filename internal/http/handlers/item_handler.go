package handlers

import (
	"tradepost/internal/ledger"
	applog "tradepost/internal/log"
	"tradepost/internal/repos"
	"tradepost/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ItemHandler struct {
	Ledger  *ledger.Ledger
	Journal *repos.JournalRepo
}

// reject maps a ledger error to its HTTP status and stable reason code.
func reject(c *fiber.Ctx, err error) error {
	code := ledger.Code(err)
	status := fiber.StatusInternalServerError
	switch code {
	case "NOT_FOUND":
		status = fiber.StatusNotFound
	case "INVALID_STATE":
		status = fiber.StatusConflict
	case "UNAUTHORIZED":
		status = fiber.StatusForbidden
	case "INVALID_INPUT":
		status = fiber.StatusBadRequest
	case "INSUFFICIENT_VALUE", "TRANSFER_FAILED":
		status = fiber.StatusPaymentRequired
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error(), "code": code})
}

type listingReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
}

func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var req listingReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body", "code": "INVALID_INPUT"})
	}
	name, ok := validate.ItemName(req.Name)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "name"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name must be 1-80 characters", "code": "INVALID_INPUT"})
	}
	desc, ok := validate.Description(req.Description)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "description too long", "code": "INVALID_INPUT"})
	}
	if !validate.Price(req.Price) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "price must be a positive amount", "code": "INVALID_INPUT"})
	}

	p := caller(c)
	id, err := h.Ledger.List(name, desc, req.Price, p.ID)
	if err != nil {
		return reject(c, err)
	}
	applog.Audit(c, "item.list", map[string]any{"item_id": id, "price": req.Price})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

func (h *ItemHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ItemID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid item id", "code": "INVALID_INPUT"})
	}
	it, err := h.Ledger.Item(id)
	if err != nil {
		return reject(c, err)
	}
	return c.JSON(it)
}

// Page serves raw history pagination; sold and retired items included.
func (h *ItemHandler) Page(c *fiber.Ctx) error {
	offset, limit := validate.Page(c.Query("offset"), c.Query("limit"))
	items := h.Ledger.Items(offset, limit)
	return c.JSON(fiber.Map{"items": items, "offset": offset, "count": len(items)})
}

func (h *ItemHandler) Count(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"count": h.Ledger.ItemCount()})
}

func (h *ItemHandler) Active(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"items": h.Ledger.ActiveItems()})
}

func (h *ItemHandler) SellerItems(c *fiber.Ctx) error {
	seller, ok := validate.PrincipalID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid seller id", "code": "INVALID_INPUT"})
	}
	return c.JSON(fiber.Map{"items": h.Ledger.SellerItems(seller)})
}

func (h *ItemHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ItemID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid item id", "code": "INVALID_INPUT"})
	}
	var req listingReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body", "code": "INVALID_INPUT"})
	}
	name, ok := validate.ItemName(req.Name)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name must be 1-80 characters", "code": "INVALID_INPUT"})
	}
	desc, ok := validate.Description(req.Description)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "description too long", "code": "INVALID_INPUT"})
	}
	if !validate.Price(req.Price) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "price must be a positive amount", "code": "INVALID_INPUT"})
	}

	p := caller(c)
	if err := h.Ledger.Update(id, name, desc, req.Price, p.ID); err != nil {
		applog.Security(c, "item.update.reject", map[string]any{"item_id": id, "code": ledger.Code(err)})
		return reject(c, err)
	}
	applog.Audit(c, "item.update", map[string]any{"item_id": id})
	return c.JSON(fiber.Map{"ok": true})
}

func (h *ItemHandler) Remove(c *fiber.Ctx) error {
	id, ok := validate.ItemID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid item id", "code": "INVALID_INPUT"})
	}
	p := caller(c)
	if err := h.Ledger.Remove(id, p.ID); err != nil {
		applog.Security(c, "item.remove.reject", map[string]any{"item_id": id, "code": ledger.Code(err)})
		return reject(c, err)
	}
	applog.Audit(c, "item.remove", map[string]any{"item_id": id})
	return c.JSON(fiber.Map{"ok": true})
}

type purchaseReq struct {
	Offer int64 `json:"offer"`
}

func (h *ItemHandler) Purchase(c *fiber.Ctx) error {
	id, ok := validate.ItemID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid item id", "code": "INVALID_INPUT"})
	}
	var req purchaseReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body", "code": "INVALID_INPUT"})
	}
	if req.Offer <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "offer must be a positive amount", "code": "INVALID_INPUT"})
	}

	p := caller(c)
	if err := h.Ledger.Purchase(id, p.ID, req.Offer); err != nil {
		applog.Security(c, "item.purchase.reject", map[string]any{"item_id": id, "code": ledger.Code(err)})
		return reject(c, err)
	}
	applog.Audit(c, "item.purchase", map[string]any{"item_id": id, "offer": req.Offer})
	return c.JSON(fiber.Map{"ok": true})
}

// JournalRecent exposes the durable event stream, newest first.
func (h *ItemHandler) JournalRecent(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	rows, err := h.Journal.Recent(limit)
	if err != nil {
		applog.Error(c, "journal.recent", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load journal", "code": "INTERNAL"})
	}
	return c.JSON(fiber.Map{"entries": rows})
}
