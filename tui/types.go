package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/jrwynneiii/linkbudget/report"
	"github.com/rivo/tview"
)

type BudgetTableData struct {
	tview.TableContentReadOnly
	rows         []report.Row
	marginWarnDB float64
	marginCritDB float64
}

type ModCodTableData struct {
	tview.TableContentReadOnly
	rows []report.ModCodRow
}

func (d *BudgetTableData) SetRows(rows []report.Row) {
	d.rows = rows
}

func (d *BudgetTableData) GetRowCount() int {
	return len(d.rows) + 1
}

func (d *BudgetTableData) GetColumnCount() int {
	return 3
}

func (d *BudgetTableData) GetCell(row, column int) *tview.TableCell {
	if row == 0 {
		switch column {
		case 0:
			return tview.NewTableCell("[lightskyblue]Quantity ")
		case 1:
			return tview.NewTableCell("[white]Value ")
		case 2:
			return tview.NewTableCell("[white]Unit")
		}
		return tview.NewTableCell("ERROR")
	}
	if row > len(d.rows) {
		return nil
	}

	r := d.rows[row-1]
	switch column {
	case 0:
		return tview.NewTableCell(fmt.Sprintf("[lightskyblue]%s", r.Label))
	case 1:
		cell := tview.NewTableCell(r.Value).SetAlign(tview.AlignRight)
		if strings.HasPrefix(r.Label, "Margin") && r.Unit == "dB" {
			cell.SetTextColor(d.marginColor(r.Value))
		}
		return cell
	case 2:
		return tview.NewTableCell(r.Unit)
	}
	return tview.NewTableCell("ERROR")
}

func (d *BudgetTableData) marginColor(value string) tcell.Color {
	margin, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return tcell.ColorGray
	}
	switch {
	case margin < d.marginCritDB:
		return tcell.ColorRed
	case margin < d.marginWarnDB:
		return tcell.ColorYellow
	}
	return tcell.ColorGreen
}

func (d *ModCodTableData) GetRowCount() int {
	return len(d.rows) + 1
}

func (d *ModCodTableData) GetColumnCount() int {
	return 4
}

func (d *ModCodTableData) GetCell(row, column int) *tview.TableCell {
	if row == 0 {
		switch column {
		case 0:
			return tview.NewTableCell("[lightskyblue]ModCod ")
		case 1:
			return tview.NewTableCell("[white]bit/s/Hz ")
		case 2:
			return tview.NewTableCell("[white]Eb/No req ")
		case 3:
			return tview.NewTableCell("[green]Throughput")
		}
		return tview.NewTableCell("ERROR")
	}
	if row > len(d.rows) {
		return nil
	}

	r := d.rows[row-1]
	switch column {
	case 0:
		return tview.NewTableCell(fmt.Sprintf("[lightskyblue]%s", r.Name))
	case 1:
		return tview.NewTableCell(fmt.Sprintf("[white]%.2f", r.SpectralEfficiency))
	case 2:
		if r.RequiredEbNoDB == nil {
			return tview.NewTableCell("[red]n/a")
		}
		return tview.NewTableCell(fmt.Sprintf("[white]%.2f dB", *r.RequiredEbNoDB))
	case 3:
		return tview.NewTableCell(fmt.Sprintf("[green]%s", report.SI(r.ThroughputBps, "bps")))
	}
	return tview.NewTableCell("ERROR")
}

// budgetUsedPct expresses a margin as the share of the available Eb/No the
// link needs: 100% at zero margin, 50% at 3 dB. The gauges warn as it rises.
func budgetUsedPct(marginDB float64) float64 {
	if math.IsNaN(marginDB) {
		return 100
	}
	return math.Max(0, math.Min(100, 100*math.Pow(10, -marginDB/10)))
}
