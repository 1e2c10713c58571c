package ports

import (
	"context"

	"github.com/jhoicas/mei-mentor-api/internal/application/dto"
)

// ReportGenerator genera el informe PDF de oportunidad.
type ReportGenerator interface {
	GenerateOpportunityReport(ctx context.Context, report *dto.OpportunityReport) ([]byte, error)
}

// AnalysisExporter genera la planilla XLSX con la cartera analizada.
type AnalysisExporter interface {
	ExportAnalyses(ctx context.Context, rows []dto.AnalysisExportRow) ([]byte, error)
}
