package handlers

import (
	"tradepost/internal/ledger"
	"tradepost/internal/repos"
	"tradepost/internal/validate"

	"github.com/gofiber/fiber/v2"
)

// BrowseHandler serves the read-only HTML pages.
type BrowseHandler struct {
	Ledger  *ledger.Ledger
	Journal *repos.JournalRepo
}

func (h *BrowseHandler) Home(c *fiber.Ctx) error {
	return render(c, "index", fiber.Map{
		"Items": h.Ledger.ActiveItems(),
		"Total": h.Ledger.ItemCount(),
	})
}

func (h *BrowseHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ItemID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This listing does not exist"})
	}
	it, err := h.Ledger.Item(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This listing does not exist"})
	}
	history, err := h.Journal.ByItem(id)
	if err != nil {
		history = nil // page still renders without history
	}
	return render(c, "item", fiber.Map{"Item": it, "History": history})
}
