package report

import (
	"fmt"
	"strconv"
	"time"

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

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// StockPDF genera el reporte de stock por bodega con los totales globales.
//
//	┌──────────────────────────────────────────────┐
//	│  Título + fecha de generación                │
//	│  Totales: productos / oficina / gerentes     │
//	│  Por bodega: Producto | Unidad | Cantidad    │
//	└──────────────────────────────────────────────┘
func StockPDF(groups []dto.WarehouseStockDTO, stats *dto.StatisticsDTO, generatedAt time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de stock", true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(titleRow(generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	if stats != nil {
		m.AddRows(statsRow(stats))
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	}
	for _, g := range groups {
		m.AddRows(warehouseRow(g))
		m.AddRows(tableHeaderRow())
		for _, it := range g.Items {
			m.AddRows(itemRow(it))
		}
		m.AddRows(line.NewRow(3))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("report: generar pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func titleRow(generatedAt time.Time) core.Row {
	return row.New(14).Add(
		col.New(8).Add(text.New("REPORTE DE STOCK POR BODEGA", props.Text{
			Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 2,
		})),
		col.New(4).Add(text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
			Size: 8, Align: align.Right, Top: 4, Color: colorGray,
		})),
	)
}

func statsRow(s *dto.StatisticsDTO) core.Row {
	cell := func(label string, v int) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1}),
			text.New(strconv.Itoa(v), props.Text{Style: fontstyle.Bold, Size: 11, Top: 5}),
		)
	}
	return row.New(14).Add(
		cell("Productos", s.TotalProducts),
		cell("Stock oficina", s.OfficeStock),
		cell("Stock gerentes", s.ManagerStock),
		cell("Ventas", s.TotalSales),
	)
}

func warehouseRow(g dto.WarehouseStockDTO) core.Row {
	return row.New(9).Add(
		col.New(9).Add(text.New(g.WarehouseName, props.Text{
			Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2,
		})),
		col.New(3).Add(text.New(fmt.Sprintf("%d ud", g.TotalUnits), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
		})),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorGray, Top: 1,
		}))
	}
	return row.New(6).Add(
		h("Producto", 7, align.Left),
		h("Unidad", 2, align.Center),
		h("Cantidad", 3, align.Right),
	)
}

func itemRow(it dto.StockRowDTO) core.Row {
	return row.New(6).Add(
		col.New(7).Add(text.New(it.ProductName, props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(2).Add(text.New(it.Unit, props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(3).Add(text.New(strconv.Itoa(it.Quantity), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)
}
