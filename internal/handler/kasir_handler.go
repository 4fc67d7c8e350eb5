package handler

import (
	"errors"
	"log"

	"kasir-pos/internal/model"
	"kasir-pos/internal/service"
	"kasir-pos/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type KasirHandler struct {
	kasir    service.KasirService
	receipts service.ReceiptService
}

func NewKasirHandler(k service.KasirService, r service.ReceiptService) *KasirHandler {
	return &KasirHandler{kasir: k, receipts: r}
}

type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
}

type CheckoutRequest struct {
	Bayar string `json:"bayar"`
}

type ExportReceiptRequest struct {
	Dir      string `json:"dir"`
	FileName string `json:"file_name" validate:"omitempty,max=255"`
}

// ProductResponse is a listed product plus the text for its button.
type ProductResponse struct {
	model.Product
	Label string `json:"label"`
}

// Register mounts the cashier routes on r.
func (h *KasirHandler) Register(r fiber.Router) {
	r.Get("/products", h.GetProducts)
	r.Get("/cart", h.GetCart)
	r.Post("/cart/items", h.AddItem)
	r.Delete("/cart", h.ResetCart)
	r.Post("/checkout", h.Checkout)
	r.Get("/sales/:id/receipt", h.GetReceipt)
	r.Post("/sales/:id/receipt/pdf", h.ExportReceipt)
}

func toProductResponses(products []model.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, ProductResponse{Product: products[i], Label: products[i].Label()})
	}
	return out
}

func (h *KasirHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.kasir.Products(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toProductResponses(products))
}

func (h *KasirHandler) GetCart(c *fiber.Ctx) error {
	return c.JSON(h.kasir.Cart())
}

func (h *KasirHandler) AddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": errs[0].Error(), "details": errs})
	}

	view, err := h.kasir.AddToCart(c.UserContext(), req.ProductID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(view)
}

func (h *KasirHandler) ResetCart(c *fiber.Ctx) error {
	h.kasir.ResetCart()
	return c.JSON(fiber.Map{"message": "Keranjang dikosongkan", "data": h.kasir.Cart()})
}

func (h *KasirHandler) Checkout(c *fiber.Ctx) error {
	var req CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	result, err := h.kasir.Checkout(c.UserContext(), req.Bayar)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message":  "Transaksi berhasil",
		"data":     result.Sale,
		"receipt":  result.Lines,
		"products": toProductResponses(result.Products),
	})
}

func (h *KasirHandler) GetReceipt(c *fiber.Ctx) error {
	saleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	r, err := h.receipts.Render(c.UserContext(), saleID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": r, "lines": r.Lines()})
}

func (h *KasirHandler) ExportReceipt(c *fiber.Ctx) error {
	saleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	var req ExportReceiptRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
		}
	}
	if err := validator.Check(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	path, err := h.receipts.ExportPDF(c.UserContext(), saleID, req.Dir, req.FileName)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Struk berhasil disimpan", "path": path})
}

// respondError maps service errors to HTTP status codes.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInsufficientPayment), errors.Is(err, service.ErrInsufficientStock):
		return c.Status(422).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrProductNotFound), errors.Is(err, service.ErrSaleNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	default:
		log.Printf("Internal error on %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
}
