package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"expenseboard/internal/decision"
	"expenseboard/internal/store"
)

func main() {
	storePath := flag.String("store", "data/expenses.json", "Record store to analyze")
	outImg := flag.String("out_img", "cmd/api/static/decisions.png", "PNG with decision counts")
	spendImg := flag.String("spend_img", "cmd/api/static/spending.png", "PNG with amounts over time")
	outCsv := flag.String("out_csv", "data/summary.csv", "CSV with per-category summary")
	flag.Parse()

	st, err := store.NewFileStore(*storePath)
	if err != nil { fmt.Println("Failed to open store:", err); return }
	recs, err := st.Load()
	if err != nil { fmt.Println("Failed to load records:", err); return }
	if len(recs) == 0 { fmt.Println("Store is empty, nothing to analyze"); return }

	var approved, pending, rejected int
	for _, r := range recs {
		switch r.Decision {
		case decision.Approved:
			approved++
		case decision.Pending:
			pending++
		case decision.Rejected:
			rejected++
		}
	}
	fmt.Printf("records=%d | approved=%d | pending=%d | rejected=%d\n", len(recs), approved, pending, rejected)

	if err := plotDecisions(*outImg, approved, pending, rejected); err != nil {
		fmt.Println("Failed to save decisions PNG:", err)
	} else {
		fmt.Println("Decision chart saved to:", *outImg)
	}

	if err := plotSpending(*spendImg, recs); err != nil {
		fmt.Println("Failed to save spending PNG:", err)
	} else {
		fmt.Println("Spending chart saved to:", *spendImg)
	}

	if err := writeSummaryCSV(*outCsv, recs); err != nil {
		fmt.Println("Failed to save CSV:", err)
	} else {
		fmt.Println("Summary saved to:", *outCsv)
	}
}

func plotDecisions(path string, approved, pending, rejected int) error {
	p := plot.New()
	p.Title.Text = "Expense Decisions"
	p.Y.Label.Text = "Records"
	p.Y.Min = 0

	bars, err := plotter.NewBarChart(plotter.Values{float64(approved), float64(pending), float64(rejected)}, vg.Points(40))
	if err != nil { return err }
	p.Add(bars)
	p.NominalX("Approved", "Pending", "Rejected")

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { return err }
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

func plotSpending(path string, recs []store.Record) error {
	p := plot.New()
	p.Title.Text = "Amounts by Submission Order"
	p.X.Label.Text = "Record"
	p.Y.Label.Text = "Amount"
	p.Y.Min = 0

	pts := make(plotter.XYs, len(recs))
	for i, r := range recs { pts[i].X = float64(i + 1); pts[i].Y = r.Amount }

	if err := plotutil.AddLinePoints(p, "Amount", pts); err != nil { return err }
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { return err }
	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}

type catSummary struct {
	records  int
	total    float64
	approved int
	pending  int
	rejected int
}

func writeSummaryCSV(path string, recs []store.Record) error {
	byCat := map[string]*catSummary{}
	for _, r := range recs {
		s := byCat[r.Category]
		if s == nil { s = &catSummary{}; byCat[r.Category] = s }
		s.records++
		s.total += r.Amount
		switch r.Decision {
		case decision.Approved:
			s.approved++
		case decision.Pending:
			s.pending++
		case decision.Rejected:
			s.rejected++
		}
	}
	cats := make([]string, 0, len(byCat))
	for c := range byCat { cats = append(cats, c) }
	sort.Strings(cats)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { return err }
	f, err := os.Create(path)
	if err != nil { return err }
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()
	if err := w.Write([]string{"category", "records", "total_amount", "avg_amount", "approved", "pending", "rejected"}); err != nil { return err }
	for _, c := range cats {
		s := byCat[c]
		rec := []string{
			c,
			strconv.Itoa(s.records),
			fmt.Sprintf("%.2f", s.total),
			fmt.Sprintf("%.2f", s.total/float64(s.records)),
			strconv.Itoa(s.approved),
			strconv.Itoa(s.pending),
			strconv.Itoa(s.rejected),
		}
		if err := w.Write(rec); err != nil { return err }
	}
	return nil
}
