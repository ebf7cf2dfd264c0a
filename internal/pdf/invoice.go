package pdf

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// InvoiceItem is one printed line of the invoice table.
type InvoiceItem struct {
	Description string
	Quantity    float64
	UnitPrice   float64
	Total       float64
}

// InvoiceData carries everything the invoice document needs.
type InvoiceData struct {
	Name            string
	ExternalOrderID string
	Date            string

	CompanyName  string
	CustomerName string
	Currency     string

	Items []InvoiceItem

	TotalUntaxed float64
	TotalTax     float64
	Total        float64
}

// InvoicePDF renders the customer invoice document and returns its bytes.
func InvoicePDF(d InvoiceData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithLeftMargin(15).
		WithRightMargin(15).
		WithTopMargin(15).
		Build()
	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(8, d.CompanyName, props.Text{Size: 14, Style: fontstyle.Bold}),
		text.NewCol(4, "INVOICE", props.Text{Size: 14, Style: fontstyle.Bold, Align: align.Right}),
	)
	m.AddRow(6, text.NewCol(12, fmt.Sprintf("Invoice: %s", d.Name), props.Text{Size: 10}))
	if d.ExternalOrderID != "" {
		m.AddRow(6, text.NewCol(12, fmt.Sprintf("External Order: %s", d.ExternalOrderID), props.Text{Size: 10}))
	}
	if d.Date != "" {
		m.AddRow(6, text.NewCol(12, fmt.Sprintf("Date: %s", d.Date), props.Text{Size: 10}))
	}
	m.AddRow(8, text.NewCol(12, fmt.Sprintf("Billed to: %s", d.CustomerName), props.Text{Size: 10}))

	m.AddRows(itemTable(d)...)

	m.AddRow(4, line.NewCol(12))
	m.AddRow(6,
		text.NewCol(8, "Untaxed amount", props.Text{Size: 9, Align: align.Right}),
		text.NewCol(4, money(d.TotalUntaxed, d.Currency), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(6,
		text.NewCol(8, "Taxes", props.Text{Size: 9, Align: align.Right}),
		text.NewCol(4, money(d.TotalTax, d.Currency), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(8,
		text.NewCol(8, "Total", props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(4, money(d.Total, d.Currency), props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate invoice pdf %s: %w", d.Name, err)
	}
	return doc.GetBytes(), nil
}

func itemTable(d InvoiceData) []core.Row {
	rows := []core.Row{
		row.New(8).Add(
			text.NewCol(6, "Description", props.Text{Size: 9, Style: fontstyle.Bold}),
			text.NewCol(2, "Qty", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
			text.NewCol(2, "Unit Price", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
			text.NewCol(2, "Total", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
		),
	}
	for _, it := range d.Items {
		desc := it.Description
		if desc == "" {
			desc = "-"
		}
		rows = append(rows, row.New(6).Add(
			text.NewCol(6, desc, props.Text{Size: 9}),
			text.NewCol(2, fmt.Sprintf("%.2f", it.Quantity), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, fmt.Sprintf("%.2f", it.UnitPrice), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, fmt.Sprintf("%.2f", it.Total), props.Text{Size: 9, Align: align.Right}),
		))
	}
	if len(d.Items) == 0 {
		rows = append(rows, row.New(6).Add(
			col.New(12).Add(text.New("No billable lines yet", props.Text{Size: 9})),
		))
	}
	return rows
}

func money(v float64, currency string) string {
	if currency == "" {
		return fmt.Sprintf("%.2f", v)
	}
	return fmt.Sprintf("%.2f %s", v, currency)
}
