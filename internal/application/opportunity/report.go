package opportunity

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/mei-mentor-api/internal/application/dto"
	"github.com/jhoicas/mei-mentor-api/internal/application/ports"
	"github.com/jhoicas/mei-mentor-api/internal/domain/repository"
	"github.com/jhoicas/mei-mentor-api/pkg/logger"
)

// recentWindow ventana de actividad reciente mostrada en el informe.
const recentWindow = 90 * 24 * time.Hour

// ReportUseCase genera el informe PDF de un análisis recién calculado y la planilla de cartera.
type ReportUseCase struct {
	analyzer     *UseCase
	transactions repository.TransactionRepository
	analyses     repository.OpportunityAnalysisRepository
	pdf          ports.ReportGenerator
	xlsx         ports.AnalysisExporter
	log          *logger.Logger
	now          func() time.Time
}

// NewReportUseCase construye el caso de uso de informes.
func NewReportUseCase(
	analyzer *UseCase,
	transactions repository.TransactionRepository,
	analyses repository.OpportunityAnalysisRepository,
	pdf ports.ReportGenerator,
	xlsx ports.AnalysisExporter,
	log *logger.Logger,
) *ReportUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ReportUseCase{
		analyzer:     analyzer,
		transactions: transactions,
		analyses:     analyses,
		pdf:          pdf,
		xlsx:         xlsx,
		log:          log.Named("report"),
		now:          time.Now,
	}
}

// OpportunityReportPDF analiza al cliente y devuelve el informe en PDF.
func (uc *ReportUseCase) OpportunityReportPDF(ctx context.Context, rawTaxID string) ([]byte, error) {
	customer, err := uc.analyzer.findCustomer(ctx, rawTaxID)
	if err != nil {
		return nil, err
	}
	analysis, err := uc.analyzer.Analyze(ctx, customer)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	recent, err := uc.transactions.ListByCustomerBetween(ctx, customer.ID, now.Add(-recentWindow), now)
	if err != nil {
		return nil, fmt.Errorf("transacciones recientes: %w", err)
	}
	credits := 0
	for _, tx := range recent {
		if tx.IsCredit() {
			credits++
		}
	}

	report := &dto.OpportunityReport{
		CustomerName:       customer.Name,
		TaxID:              customer.TaxID,
		DeclaredIncome:     customer.DeclaredIncome,
		RecentTransactions: len(recent),
		RecentCredits:      credits,
		Analysis:           *ToResponse(analysis),
		AnnualLoss:         analysis.AnnualLoss(),
		PresenceSummary:    analysis.MarketIntelligence.DigitalPresenceSummary(),
		Maturity:           analysis.MarketIntelligence.MaturityDescription(),
		GeneratedAt:        now,
	}
	out, err := uc.pdf.GenerateOpportunityReport(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("generar PDF: %w", err)
	}
	return out, nil
}

// ExportAnalysesXLSX exporta todos los análisis persistidos con los datos del cliente.
func (uc *ReportUseCase) ExportAnalysesXLSX(ctx context.Context) ([]byte, error) {
	items, err := uc.analyses.ListWithCustomer(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar análisis: %w", err)
	}
	rows := make([]dto.AnalysisExportRow, 0, len(items))
	for _, it := range items {
		a := it.Analysis
		row := dto.AnalysisExportRow{
			CustomerName:      it.CustomerName,
			TaxID:             it.TaxID,
			PotentialScore:    a.PotentialScore,
			IdentifiedRevenue: a.IdentifiedRevenue,
			MonthlyLoss:       a.MonthlyLoss,
			AnnualLoss:        a.AnnualLoss(),
			ShadowLimit:       a.ShadowLimit,
			Recommendation:    a.Recommendation,
			AnalyzedAt:        a.CreatedAt,
		}
		if mi := a.MarketIntelligence; mi != nil {
			if mi.BusinessNiche != nil {
				row.BusinessNiche = *mi.BusinessNiche
			}
			if mi.DigitalPresenceScore != nil {
				row.DigitalPresenceScore = *mi.DigitalPresenceScore
			}
		}
		rows = append(rows, row)
	}
	out, err := uc.xlsx.ExportAnalyses(ctx, rows)
	if err != nil {
		return nil, fmt.Errorf("generar XLSX: %w", err)
	}
	uc.log.Info().Int("rows", len(rows)).Msg("cartera exportada")
	return out, nil
}
