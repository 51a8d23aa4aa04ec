package controller

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"sales-assistant-be/internal/dto"
	"sales-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IProductController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
	Categories(ctx *fiber.Ctx) error
	ByCategory(ctx *fiber.Ctx) error
	Add(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	ReduceStock(ctx *fiber.Ctx) error
}

type productController struct {
	service service.IProductService
}

func NewProductController(service service.IProductService) IProductController {
	return &productController{service: service}
}

func (c *productController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/products")
	h.Get("/", c.List)
	h.Get("/search", c.Search)
	h.Get("/categories", c.Categories)
	h.Get("/category/:category", c.ByCategory)
	h.Post("/", c.Add)
	h.Put("/update/:name", c.Update)
	h.Put("/reduce-stock/:name", c.ReduceStock)
	h.Delete("/delete/:name", c.Delete)
}

func (c *productController) List(ctx *fiber.Ctx) error {
	res, err := c.service.List(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *productController) Search(ctx *fiber.Ctx) error {
	name := strings.TrimSpace(ctx.Query("name"))
	if name == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Product name is required"})
	}

	res, err := c.service.Search(ctx.UserContext(), name)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *productController) Categories(ctx *fiber.Ctx) error {
	categories, err := c.service.Categories(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"categories": categories})
}

func (c *productController) ByCategory(ctx *fiber.Ctx) error {
	category, err := decodeParam(ctx, "category")
	if err != nil {
		return err
	}

	res, err := c.service.ByCategory(ctx.UserContext(), category)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *productController) Add(ctx *fiber.Ctx) error {
	var req dto.AddProductRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validate.Struct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": missingProductField(&req)})
	}

	res, err := c.service.Add(ctx.UserContext(), &req)
	if err != nil {
		return productError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(res)
}

func (c *productController) Update(ctx *fiber.Ctx) error {
	name, err := decodeParam(ctx, "name")
	if err != nil {
		return err
	}

	var req dto.UpdateProductRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	res, err := c.service.Update(ctx.UserContext(), name, &req)
	if err != nil {
		return productError(ctx, err)
	}
	return ctx.JSON(res)
}

func (c *productController) Delete(ctx *fiber.Ctx) error {
	name, err := decodeParam(ctx, "name")
	if err != nil {
		return err
	}

	if err := c.service.Delete(ctx.UserContext(), name); err != nil {
		return productError(ctx, err)
	}
	return ctx.JSON(fiber.Map{"message": fmt.Sprintf("Product %q deleted successfully", name)})
}

func (c *productController) ReduceStock(ctx *fiber.Ctx) error {
	name, err := decodeParam(ctx, "name")
	if err != nil {
		return err
	}

	var req dto.ReduceStockRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Amount is required"})
	}

	res, err := c.service.ReduceStock(ctx.UserContext(), name, req.Amount)
	if err != nil {
		return productError(ctx, err)
	}
	return ctx.JSON(res)
}

// Product names arrive URL-encoded in path segments ("laptop%20stand").
func decodeParam(ctx *fiber.Ctx, name string) (string, error) {
	value, err := url.PathUnescape(ctx.Params(name))
	if err != nil {
		return "", ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid path parameter"})
	}
	return value, nil
}

func productError(ctx *fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrProductNotFound) {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	switch {
	case errors.Is(err, service.ErrProductAlreadyExists),
		errors.Is(err, service.ErrNotEnoughStock),
		errors.Is(err, service.ErrAmountNotPositive),
		errors.Is(err, service.ErrNegativeStock),
		errors.Is(err, service.ErrNoUpdateData):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return err
}

func missingProductField(req *dto.AddProductRequest) string {
	switch {
	case req.Name == "":
		return "Missing required field: name"
	case req.Price == nil:
		return "Missing required field: price"
	case req.Category == "":
		return "Missing required field: category"
	case req.Stock == nil:
		return "Missing required field: stock"
	}
	return "Invalid product data"
}
