package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mei-mentor-api/internal/application/customer"
	"github.com/jhoicas/mei-mentor-api/internal/application/dto"
)

// CustomerHandler administración de clientes (protegido).
type CustomerHandler struct {
	uc *customer.UseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *customer.UseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// List godoc
// @Summary      Listar clientes
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máximo 100"  default(20)
// @Param        offset  query  int  false  "desplazamiento"  default(0)
// @Success      200   {object}  dto.CustomerListResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return WriteError(c, fiber.StatusBadRequest, msgInvalidInput, map[string]string{"query": "limit y offset deben ser enteros"})
	}
	out, err := h.uc.List(c.UserContext(), page)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByTaxID godoc
// @Summary      Detalle de cliente
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        taxId  path  string  true  "CPF"
// @Success      200   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/customers/{taxId} [get]
func (h *CustomerHandler) GetByTaxID(c *fiber.Ctx) error {
	out, err := h.uc.GetByTaxID(c.UserContext(), c.Params("taxId"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// UpdateIncome godoc
// @Summary      Actualizar renta declarada
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        taxId  path  string                    true  "CPF"
// @Param        body   body  dto.UpdateIncomeRequest   true  "declaredIncome >= 0"
// @Success      200   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/customers/{taxId}/income [put]
func (h *CustomerHandler) UpdateIncome(c *fiber.Ctx) error {
	var in dto.UpdateIncomeRequest
	if err := c.BodyParser(&in); err != nil {
		return WriteError(c, fiber.StatusBadRequest, "Malformed request body", nil)
	}
	out, err := h.uc.UpdateDeclaredIncome(c.UserContext(), c.Params("taxId"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
