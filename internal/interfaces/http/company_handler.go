package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/affiliate-portal/internal/application/companies"
	"github.com/tu-usuario/affiliate-portal/internal/application/dto"
	"github.com/tu-usuario/affiliate-portal/internal/domain"
	"github.com/tu-usuario/affiliate-portal/internal/domain/repository"
	"github.com/tu-usuario/affiliate-portal/pkg/logger"
)

// CompanyHandler expone el catálogo de empresas partner.
type CompanyHandler struct {
	uc  *companies.CompanyUseCase
	log *logger.Logger
}

// NewCompanyHandler construye el handler de empresas.
func NewCompanyHandler(uc *companies.CompanyUseCase, log *logger.Logger) *CompanyHandler {
	return &CompanyHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar empresas activas
// @Tags         companies
// @Produce      json
// @Param        category  query  string  false  "categoría exacta"
// @Param        search    query  string  false  "substring en nombre o descripción"
// @Success      200  {array}  dto.CompanyResponse
// @Router       /companies [get]
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	filter := repository.CompanyFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}
	out, err := h.uc.List(c.UserContext(), filter)
	if err != nil {
		return internalError(c, h.log, "listado de empresas", err)
	}
	return c.JSON(out)
}

// Categories godoc
// @Summary      Listar categorías
// @Tags         companies
// @Produce      json
// @Success      200  {array}  string
// @Router       /companies/categories [get]
func (h *CompanyHandler) Categories(c *fiber.Ctx) error {
	out, err := h.uc.Categories(c.UserContext())
	if err != nil {
		return internalError(c, h.log, "listado de categorías", err)
	}
	if out == nil {
		out = []string{}
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de una empresa activa
// @Tags         companies
// @Produce      json
// @Param        id  path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /companies/{id} [get]
func (h *CompanyHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "COMPANY_NOT_FOUND", Message: "la empresa no existe o está inactiva"})
		}
		return internalError(c, h.log, "detalle de empresa", err)
	}
	return c.JSON(out)
}
