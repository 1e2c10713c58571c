package excel

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/mei-mentor-api/internal/application/dto"
	"github.com/jhoicas/mei-mentor-api/internal/application/ports"
	"github.com/jhoicas/mei-mentor-api/pkg/taxid"
)

var _ ports.AnalysisExporter = (*ExcelizeExporter)(nil)

// SheetName hoja única de la planilla de cartera.
const SheetName = "Oportunidades"

// ExportHeader columnas de la exportación, en orden.
var ExportHeader = []string{
	"Cliente",
	"CPF",
	"Potencial",
	"Faturamento identificado",
	"Perda mensal",
	"Perda anual",
	"Limite pré-aprovado",
	"Nicho",
	"Presença digital",
	"Recomendação",
	"Analisado em",
}

var columnWidths = []float64{30, 16, 11, 22, 15, 15, 20, 26, 16, 70, 18}

// ExcelizeExporter implementa ports.AnalysisExporter con excelize.
type ExcelizeExporter struct{}

// NewExcelizeExporter construye el exportador.
func NewExcelizeExporter() *ExcelizeExporter { return &ExcelizeExporter{} }

// ExportAnalyses genera el XLSX con una fila por análisis. Sin filas genera solo el encabezado.
func (e *ExcelizeExporter) ExportAnalyses(_ context.Context, rows []dto.AnalysisExportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return nil, fmt.Errorf("xlsx: crear hoja: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("xlsx: borrar hoja por defecto: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#006847"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo de encabezado: %w", err)
	}
	moneyFmt := `"R$" #,##0.00`
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo monetario: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &ExportHeader); err != nil {
		return nil, fmt.Errorf("xlsx: encabezado: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(ExportHeader))
	if err := f.SetCellStyle(SheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, fmt.Errorf("xlsx: estilo encabezado: %w", err)
	}
	for i, w := range columnWidths {
		name, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(SheetName, name, name, w); err != nil {
			return nil, fmt.Errorf("xlsx: ancho de columna %s: %w", name, err)
		}
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("xlsx: coordenadas: %w", err)
		}
		values := []any{
			r.CustomerName,
			taxid.FormatCPF(r.TaxID),
			r.PotentialScore,
			r.IdentifiedRevenue.InexactFloat64(),
			r.MonthlyLoss.InexactFloat64(),
			r.AnnualLoss.InexactFloat64(),
			r.ShadowLimit.InexactFloat64(),
			r.BusinessNiche,
			r.DigitalPresenceScore,
			r.Recommendation,
			r.AnalyzedAt.Format("02/01/2006 15:04"),
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+2, err)
		}
	}
	if len(rows) > 0 {
		last := len(rows) + 1
		if err := f.SetCellStyle(SheetName, "D2", fmt.Sprintf("G%d", last), moneyStyle); err != nil {
			return nil, fmt.Errorf("xlsx: estilo monetario: %w", err)
		}
	}
	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("xlsx: fijar encabezado: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}
