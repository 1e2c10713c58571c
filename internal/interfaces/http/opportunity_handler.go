package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mei-mentor-api/internal/application/opportunity"
)

// OpportunityHandler expone el análisis de oportunidad, el informe PDF y la exportación de cartera.
type OpportunityHandler struct {
	uc     *opportunity.UseCase
	report *opportunity.ReportUseCase
}

// NewOpportunityHandler construye el handler.
func NewOpportunityHandler(uc *opportunity.UseCase, report *opportunity.ReportUseCase) *OpportunityHandler {
	return &OpportunityHandler{uc: uc, report: report}
}

// Analyze godoc
// @Summary      Analizar oportunidad de formalización MEI
// @Description  Recalcula el análisis del cliente a partir de su historial, lo persiste y lo devuelve.
// @Tags         opportunity
// @Produce      json
// @Param        taxId  path  string  true  "CPF (con o sin puntuación)"
// @Success      200   {object}  dto.OpportunityAnalysisResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/opportunity/{taxId} [get]
func (h *OpportunityHandler) Analyze(c *fiber.Ctx) error {
	out, err := h.uc.AnalyzeByTaxID(c.UserContext(), c.Params("taxId"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Latest godoc
// @Summary      Último análisis persistido
// @Tags         opportunity
// @Security     Bearer
// @Produce      json
// @Param        taxId  path  string  true  "CPF"
// @Success      200   {object}  dto.OpportunityAnalysisResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/opportunity/{taxId}/latest [get]
func (h *OpportunityHandler) Latest(c *fiber.Ctx) error {
	out, err := h.uc.GetLatest(c.UserContext(), c.Params("taxId"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Informe PDF de oportunidad
// @Tags         opportunity
// @Security     Bearer
// @Produce      application/pdf
// @Param        taxId  path  string  true  "CPF"
// @Success      200
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/opportunity/{taxId}/report [get]
func (h *OpportunityHandler) Report(c *fiber.Ctx) error {
	taxID := c.Params("taxId")
	pdf, err := h.report.OpportunityReportPDF(c.UserContext(), taxID)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="oportunidade-%s.pdf"`, pathTaxID(c)))
	return c.Send(pdf)
}

// Export godoc
// @Summary      Exportar cartera analizada (XLSX)
// @Tags         opportunity
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/analyses/export [get]
func (h *OpportunityHandler) Export(c *fiber.Ctx) error {
	xlsx, err := h.report.ExportAnalysesXLSX(c.UserContext())
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="oportunidades-%s.xlsx"`, time.Now().Format("20060102")))
	return c.Send(xlsx)
}
