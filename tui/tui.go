package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/jrwynneiii/linkbudget/config"
	"github.com/jrwynneiii/linkbudget/report"
	"github.com/navidys/tvxwidgets"
	"github.com/rivo/tview"
)

// Floor for the waterfall plot, in log10 BER.
const berFloorLog10 = -12.0

var LogOut *tview.TextView

func newMarginGauge(label string, tuiConf config.Tui) *tvxwidgets.UtilModeGauge {
	gauge := tvxwidgets.NewUtilModeGauge()
	gauge.SetLabel(label)
	gauge.SetLabelColor(tcell.ColorLightSkyBlue)
	gauge.SetWarnPercentage(budgetUsedPct(tuiConf.MarginWarnDB))
	gauge.SetCritPercentage(budgetUsedPct(tuiConf.MarginCritDB))
	gauge.SetEmptyColor(tcell.ColorBlack)
	gauge.SetBorder(false)
	return gauge
}

// StartUI shows the link dashboard. refresh is called every tuiConf.RefreshMs
// to re-evaluate the link, so a TLE scenario follows the satellite.
func StartUI(refresh func() (report.Report, error), modcods []report.ModCodRow, curve []report.CurvePoint, tuiConf config.Tui) {
	app := tview.NewApplication()

	LogOut = tview.NewTextView().
		SetDynamicColors(true).
		SetRegions(true).
		SetWordWrap(true)

	budgetData := &BudgetTableData{marginWarnDB: tuiConf.MarginWarnDB, marginCritDB: tuiConf.MarginCritDB}
	modcodData := &ModCodTableData{rows: modcods}
	budgetTable := tview.NewTable().SetContent(budgetData)
	modcodTable := tview.NewTable().SetContent(modcodData)

	uncoded, coded := report.Log10Series(curve, berFloorLog10)
	berPlot := tvxwidgets.NewPlot()
	berPlot.SetLineColor([]tcell.Color{tcell.ColorRed, tcell.ColorLightSkyBlue})
	berPlot.SetMarker(tvxwidgets.PlotMarkerBraille)
	berPlot.SetData([][]float64{uncoded, coded})
	if len(curve) > 0 {
		berPlot.SetTitle(fmt.Sprintf("log10 BER, Eb/No %.0f to %.0f dB (red uncoded, blue coded)", curve[0].EbNoDB, curve[len(curve)-1].EbNoDB))
	}
	berPlot.SetBorder(true)

	codedGauge := newMarginGauge("Eb/No budget used (coded):   ", tuiConf)
	uncodedGauge := newMarginGauge("Eb/No budget used (uncoded): ", tuiConf)

	gaugeBox := tview.NewFlex()
	gaugeBox.SetDirection(tview.FlexRow)
	gaugeBox.AddItem(codedGauge, 0, 1, false)
	gaugeBox.AddItem(uncodedGauge, 0, 1, false)
	gaugeBox.SetTitle("Link Margin")
	gaugeBox.SetBorder(true)

	LogOut.SetChangedFunc(func() {
		LogOut.ScrollToEnd()
		app.Draw()
	})

	LogOut.SetBorder(true).SetTitle("Log Output")
	log.SetOutput(LogOut)
	budgetTable.SetSelectable(false, false).SetBorder(true).SetTitle("Link Budget")
	modcodTable.SetSelectable(false, false).SetBorder(true).SetTitle("DVB-S2 ModCods")

	page := tview.NewFlex().SetDirection(tview.FlexColumn)

	leftCol := tview.NewFlex().SetDirection(tview.FlexRow)
	leftCol.AddItem(budgetTable, 0, 1, false)

	rightCol := tview.NewFlex().SetDirection(tview.FlexRow)
	rightCol.AddItem(gaugeBox, 0, 1, false)
	rightCol.AddItem(berPlot, 0, 3, false)
	rightCol.AddItem(modcodTable, 0, 2, false)
	rightCol.AddItem(LogOut, 0, 1, false)

	page.AddItem(leftCol, 0, 2, false)
	page.AddItem(rightCol, 0, 3, false)

	var warned warnLatch
	update := func() {
		r, err := refresh()
		if err != nil {
			log.Errorf("Could not evaluate link: %v", err)
			return
		}
		if warnings := r.Warnings(); warned.changed(warnings) {
			for _, w := range warnings {
				log.Warn(w)
			}
		}
		app.QueueUpdateDraw(func() {
			budgetData.SetRows(r.Rows())
			codedGauge.SetValue(marginUsage(r.MarginCodedDB))
			uncodedGauge.SetValue(marginUsage(r.MarginDB))
		})
	}

	go func() {
		for {
			update()
			time.Sleep(time.Duration(tuiConf.RefreshMs) * time.Millisecond)
		}
	}()

	if err := app.SetRoot(page, true).EnableMouse(true).Run(); err != nil {
		log.Fatalf("Could not start UI: %v", err)
	}
}

// warnLatch reports a set of warnings only when it differs from the last one.
type warnLatch struct {
	last string
}

func (w *warnLatch) changed(warnings []string) bool {
	key := strings.Join(warnings, "\n")
	if key == w.last {
		return false
	}
	w.last = key
	return true
}

func marginUsage(marginDB *float64) float64 {
	if marginDB == nil {
		return budgetUsedPct(math.NaN())
	}
	return budgetUsedPct(*marginDB)
}
