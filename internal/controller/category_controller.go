package controller

import (
	"auction-marketplace-be/internal/dto"
	"auction-marketplace-be/internal/pkg/apperror"
	"auction-marketplace-be/internal/pkg/serverutils"
	"auction-marketplace-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ICategoryController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	GetTree(ctx *fiber.Ctx) error
	GetPublicParents(ctx *fiber.Ctx) error
	GetPublicChildren(ctx *fiber.Ctx) error
	GetFields(ctx *fiber.Ctx) error
	GetPublicFieldsBySlug(ctx *fiber.Ctx) error
	AddField(ctx *fiber.Ctx) error
	UpdateField(ctx *fiber.Ctx) error
	DeleteField(ctx *fiber.Ctx) error
}

type categoryController struct {
	categoryService service.ICategoryService
	fieldService    service.IFieldService
}

func NewCategoryController(
	categoryService service.ICategoryService,
	fieldService service.IFieldService,
) ICategoryController {
	return &categoryController{
		categoryService: categoryService,
		fieldService:    fieldService,
	}
}

func (c *categoryController) RegisterRoutes(r fiber.Router) {
	// Public browse surface, no auth.
	pub := r.Group("/category/v1")
	pub.Get("/tree", c.GetTree)
	pub.Get("/public/parents", c.GetPublicParents)
	pub.Get("/public/by-slug/:slug/fields", c.GetPublicFieldsBySlug)
	pub.Get("/public/:slug/children", c.GetPublicChildren)

	// Admin surface behind JWT.
	adm := r.Group("/category/v1", serverutils.JwtMiddleware)
	adm.Post("", c.Create)
	adm.Get(":id", c.Show)
	adm.Put(":id", c.Update)
	adm.Delete(":id", c.Delete)
	adm.Get(":id/fields", c.GetFields)
	adm.Post(":id/fields", c.AddField)
	adm.Put(":id/fields/:fieldId", c.UpdateField)
	adm.Delete(":id/fields/:fieldId", c.DeleteField)
}

func parseIdParam(ctx *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(name))
	if err != nil {
		return uuid.Nil, apperror.NewValidation("invalid " + name + " parameter")
	}
	return id, nil
}

func actorIdFromLocals(ctx *fiber.Ctx) *uuid.UUID {
	userIdStr, ok := ctx.Locals("user_id").(string)
	if !ok {
		return nil
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return nil
	}
	return &userId
}

func (c *categoryController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateCategoryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.NewValidation("invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.categoryService.Create(ctx.Context(), actorIdFromLocals(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create category", res))
}

func (c *categoryController) Show(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.categoryService.Show(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show category", res))
}

func (c *categoryController) Update(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateCategoryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.NewValidation("invalid request body")
	}
	req.Id = id

	res, err := c.categoryService.Update(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update category", res))
}

func (c *categoryController) Delete(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.categoryService.Delete(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete category", nil))
}

func (c *categoryController) GetTree(ctx *fiber.Ctx) error {
	res, err := c.categoryService.GetTree(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get category tree", res))
}

func (c *categoryController) GetPublicParents(ctx *fiber.Ctx) error {
	res, err := c.categoryService.GetPublicParents(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get parent categories", res))
}

func (c *categoryController) GetPublicChildren(ctx *fiber.Ctx) error {
	res, err := c.categoryService.GetPublicChildren(ctx.Context(), ctx.Params("slug"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get child categories", res))
}

func (c *categoryController) GetFields(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.fieldService.ResolveEffectiveFields(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get category fields", res))
}

func (c *categoryController) GetPublicFieldsBySlug(ctx *fiber.Ctx) error {
	res, err := c.fieldService.ResolveEffectiveFieldsBySlug(ctx.Context(), ctx.Params("slug"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get category fields", res))
}

func (c *categoryController) AddField(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.AddFieldRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.NewValidation("invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.fieldService.AddField(ctx.Context(), id, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success add field", res))
}

func (c *categoryController) UpdateField(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateFieldRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.NewValidation("invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	// fieldId is resolved by id first, then by name for legacy records, so it
	// is passed through as an opaque string.
	res, err := c.fieldService.UpdateField(ctx.Context(), id, ctx.Params("fieldId"), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update field", res))
}

func (c *categoryController) DeleteField(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	fieldId, err := parseIdParam(ctx, "fieldId")
	if err != nil {
		return err
	}

	if err := c.fieldService.DeleteField(ctx.Context(), id, fieldId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete field", nil))
}
