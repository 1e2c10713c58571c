// Package pdf genera el informe de oportunidad de formalización MEI.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + fecha de emisión                          │
//	│  CLIENTE: nombre + CPF + renta declarada                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PUNTAJE: potencial (0-100) + límite sombra                 │
//	│  TABLA: ingreso identificado | pérdida mensual | anual      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PRESENCIA DIGITAL: nicho, madurez, resumen                 │
//	│  RECOMENDACIÓN                                              │
//	│  FOOTER: actividad reciente + leyenda                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/mei-mentor-api/internal/application/dto"
	"github.com/jhoicas/mei-mentor-api/internal/application/ports"
	"github.com/jhoicas/mei-mentor-api/pkg/taxid"
)

var _ ports.ReportGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 104, Blue: 71}
	colorAlert   = &props.Color{Red: 180, Green: 40, Blue: 40}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa ports.ReportGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateOpportunityReport genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateOpportunityReport(_ context.Context, r *dto.OpportunityReport) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("pdf: informe vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Relatório de Oportunidade MEI", true).
		WithAuthor("MEI Mentor", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(scoreRow(r))
	m.AddRows(tableHeaderRow())
	m.AddRows(tableValuesRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(presenceRows(r)...)
	m.AddRows(recommendationRows(r)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(r)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(r *dto.OpportunityReport) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("RELATÓRIO DE OPORTUNIDADE MEI", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Análise de formalização e crédito", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Emitido em", props.Text{
				Size: 8, Align: align.Right, Color: colorGray, Top: 1,
			}),
			text.New(r.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 6,
			}),
		),
	)
}

func customerRow(r *dto.OpportunityReport) core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(r.CustomerName, props.Text{
				Style: fontstyle.Bold, Size: 11, Top: 6,
			}),
			text.New(fmt.Sprintf("CPF: %s   |   Renda declarada: %s",
				taxid.FormatCPF(r.TaxID),
				formatBRL(r.DeclaredIncome),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// scoreRow puntaje de potencial (izq) y límite de crédito sombra (der).
func scoreRow(r *dto.OpportunityReport) core.Row {
	limit := "Não disponível"
	limitColor := colorGray
	if r.Analysis.ShadowLimit.IsPositive() {
		limit = formatBRL(r.Analysis.ShadowLimit)
		limitColor = colorPrimary
	}
	return row.New(20).Add(
		col.New(6).Add(
			text.New("POTENCIAL", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorGray, Top: 1}),
			text.New(strconv.Itoa(r.Analysis.PotentialScore)+" / 100", props.Text{
				Style: fontstyle.Bold, Size: 16, Color: colorPrimary, Top: 7,
			}),
		),
		col.New(6).Add(
			text.New("LIMITE PRÉ-APROVADO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorGray, Align: align.Right, Top: 1,
			}),
			text.New(limit, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: limitColor, Align: align.Right, Top: 7,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string) core.Col {
		return col.New(4).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Center,
			Color: colorWhite, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Faturamento identificado"),
		h("Perda mensal (PF)"),
		h("Perda anual projetada"),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableValuesRow(r *dto.OpportunityReport) core.Row {
	v := func(s string, c *props.Color) core.Col {
		return col.New(4).Add(text.New(s, props.Text{
			Size: 10, Align: align.Center, Top: 2, Color: c,
		}))
	}
	lossColor := colorGray
	if r.Analysis.MonthlyLoss.IsPositive() {
		lossColor = colorAlert
	}
	return row.New(9).Add(
		v(formatBRL(r.Analysis.IdentifiedRevenue), nil),
		v(formatBRL(r.Analysis.MonthlyLoss), lossColor),
		v(formatBRL(r.AnnualLoss), lossColor),
	)
}

func presenceRows(r *dto.OpportunityReport) []core.Row {
	niche := "Não identificado"
	score := "-"
	if mi := r.Analysis.MarketIntelligence; mi != nil {
		if mi.BusinessNiche != nil && *mi.BusinessNiche != "" {
			niche = *mi.BusinessNiche
		}
		if mi.DigitalPresenceScore != nil {
			score = strconv.Itoa(*mi.DigitalPresenceScore) + " / 100"
		}
	}
	return []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("INTELIGÊNCIA DE MERCADO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
		row.New(6).Add(
			col.New(6).Add(text.New("Nicho: "+niche, props.Text{Size: 9, Top: 1})),
			col.New(6).Add(text.New("Maturidade: "+r.Maturity, props.Text{Size: 9, Top: 1})),
		),
		row.New(6).Add(
			col.New(6).Add(text.New("Presença digital: "+score, props.Text{Size: 9, Top: 1})),
			col.New(6).Add(text.New(r.PresenceSummary, props.Text{Size: 8, Top: 1, Color: colorGray})),
		),
	}
}

func recommendationRows(r *dto.OpportunityReport) []core.Row {
	c := colorPrimary
	if strings.HasPrefix(r.Analysis.Recommendation, "Alerta") {
		c = colorAlert
	}
	return []core.Row{
		row.New(8).Add(col.New(12).Add(
			text.New("RECOMENDAÇÃO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 3,
			}),
		)),
		row.New(16).Add(col.New(12).Add(
			text.New(r.Analysis.Recommendation, props.Text{Size: 10, Top: 2, Color: c}),
		)),
	}
}

func footerRows(r *dto.OpportunityReport) []core.Row {
	return []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New(fmt.Sprintf("Atividade dos últimos 90 dias: %d transações, %d créditos.",
				r.RecentTransactions, r.RecentCredits),
				props.Text{Size: 8, Color: colorGray, Top: 1}),
		)),
		row.New(8).Add(col.New(12).Add(
			text.New(
				"Estimativa baseada em alíquota efetiva de 27,5% como pessoa física e DAS MEI de R$ 75,00. "+
					"Não substitui a orientação de um contador.",
				props.Text{Size: 6.5, Color: colorGray, Top: 2},
			),
		)),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatBRL formatea en reales: 1234.5 -> "R$ 1.234,50".
func formatBRL(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	return "R$ " + sign + groupThousands(intPart) + "," + frac
}

// groupThousands inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
