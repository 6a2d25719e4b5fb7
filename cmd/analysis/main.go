//go:build analysis

// Command analysis sweeps the transform, polynomial and tree layers over a
// range of sizes, collects wall-clock timings through measureutil, and
// writes summary statistics as JSON plus an HTML page of histograms and a
// scaling chart.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"stark-arith/measureutil"
	"stark-arith/merkle"
	"stark-arith/ntt"
	"stark-arith/poly"
	"stark-arith/poseidon"
	"stark-arith/sampling"
)

type summaryStats struct {
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	Std      float64 `json:"std"`
	Min      float64 `json:"min"`
	Q1       float64 `json:"q1"`
	Median   float64 `json:"median"`
	Q3       float64 `json:"q3"`
	Max      float64 `json:"max"`
	IQR      float64 `json:"iqr"`
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis_excess"`
}

// ------------------------------ stats utilities ------------------------------

func computeStats(x []float64) summaryStats {
	n := len(x)
	if n == 0 {
		return summaryStats{}
	}
	cp := append([]float64(nil), x...)
	sort.Float64s(cp)
	minv, maxv := cp[0], cp[n-1]
	median := quantileSorted(cp, 0.5)
	q1 := quantileSorted(cp, 0.25)
	q3 := quantileSorted(cp, 0.75)
	iqr := q3 - q1
	var m float64
	for _, v := range x {
		m += v
	}
	m /= float64(n)
	var m2, m3, m4 float64
	for _, v := range x {
		d := v - m
		d2 := d * d
		m2 += d2
		m3 += d2 * d
		m4 += d2 * d2
	}
	var std float64
	if n > 1 {
		std = math.Sqrt(m2 / float64(n-1))
	}
	var skew, kurtEx float64
	if std > 0 {
		m2n := m2 / float64(n)
		m3n := m3 / float64(n)
		m4n := m4 / float64(n)
		skew = m3n / math.Pow(m2n, 1.5)
		kurtEx = m4n/m2n/m2n - 3.0
	}
	return summaryStats{Count: n, Mean: m, Std: std, Min: minv, Q1: q1, Median: median, Q3: q3, Max: maxv, IQR: iqr, Skewness: skew, Kurtosis: kurtEx}
}

func quantileSorted(sorted []float64, p float64) float64 {
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := p * float64(len(sorted)-1)
	l := int(math.Floor(pos))
	r := int(math.Ceil(pos))
	if l == r {
		return sorted[l]
	}
	w := pos - float64(l)
	return sorted[l]*(1-w) + sorted[r]*w
}

func freedmanDiaconisBins(x []float64) int {
	n := len(x)
	if n < 2 {
		return 1
	}
	cp := append([]float64(nil), x...)
	sort.Float64s(cp)
	iqr := quantileSorted(cp, 0.75) - quantileSorted(cp, 0.25)
	if iqr == 0 {
		if n < 50 {
			return n
		}
		return 50
	}
	bw := 2 * iqr * math.Pow(float64(n), -1.0/3.0)
	if bw <= 0 {
		if n < 50 {
			return n
		}
		return 50
	}
	r := cp[n-1] - cp[0]
	k := int(math.Ceil(r / bw))
	if k < 10 {
		k = 10
	}
	if k > 500 {
		k = 500
	}
	return k
}

func computeHistogram(values []float64, nbins int) (edges []float64, counts []int) {
	if len(values) == 0 {
		return []float64{0, 1}, []int{0}
	}
	cp := append([]float64(nil), values...)
	sort.Float64s(cp)
	minv, maxv := cp[0], cp[len(cp)-1]
	if nbins < 1 {
		nbins = 1
	}
	width := (maxv - minv) / float64(nbins)
	if width <= 0 {
		width = 1
	}
	edges = make([]float64, nbins+1)
	for i := 0; i <= nbins; i++ {
		edges[i] = minv + float64(i)*width
	}
	counts = make([]int, nbins)
	for _, v := range values {
		idx := int(math.Floor((v - minv) / width))
		if idx < 0 {
			idx = 0
		}
		if idx >= nbins {
			idx = nbins - 1
		}
		counts[idx]++
	}
	return
}

// ------------------------- plotting: go-echarts HTML -------------------------

func toBarItems(vals []int) []opts.BarData {
	out := make([]opts.BarData, len(vals))
	for i, v := range vals {
		out[i] = opts.BarData{Value: v}
	}
	return out
}

func newHistogramChart(title string, values []float64, stats summaryStats) *charts.Bar {
	nbins := freedmanDiaconisBins(values)
	edges, counts := computeHistogram(values, nbins)
	xLabels := make([]string, nbins)
	for i := 0; i < nbins; i++ {
		center := 0.5 * (edges[i] + edges[i+1])
		xLabels[i] = fmt.Sprintf("%.2f", center)
	}
	bar := charts.NewBar()
	subtitle := fmt.Sprintf("n=%d, mean=%.3fus, std=%.3f, median=%.3f, IQR=%.3f", stats.Count, stats.Mean, stats.Std, stats.Median, stats.IQR)
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "1200px", Height: "600px"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "inside"}, opts.DataZoom{Type: "slider"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(xLabels).
		AddSeries("count", toBarItems(counts)).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}))
	return bar
}

func newScalingChart(title string, sizes []int, series map[string][]float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: "mean wall time per call, microseconds"}),
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "1200px", Height: "600px"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	xLabels := make([]string, len(sizes))
	for i, n := range sizes {
		xLabels[i] = fmt.Sprintf("%d", n)
	}
	line.SetXAxis(xLabels)
	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		items := make([]opts.LineData, len(series[name]))
		for i, v := range series[name] {
			items[i] = opts.LineData{Value: v}
		}
		line.AddSeries(name, items)
	}
	return line
}

// ------------------------------ JSON and I/O ------------------------------

func saveJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// ------------------------------- sweeps -------------------------------

func sweepTransform(s *sampling.Sampler, logN, runs int) {
	name := fmt.Sprintf("ntt/n=%d", 1<<logN)
	v := s.FieldElements(1 << logN)
	for r := 0; r < runs; r++ {
		measureutil.Time(name, func() {
			evals, err := ntt.Forward(v)
			if err != nil {
				log.Fatalf("forward: %v", err)
			}
			if _, err := ntt.Inverse(evals); err != nil {
				log.Fatalf("inverse: %v", err)
			}
		})
	}
}

func sweepPolyMul(s *sampling.Sampler, logN, runs int) {
	name := fmt.Sprintf("polymul/n=%d", 1<<logN)
	p := poly.New(s.Coefficients(1<<logN - 1))
	q := poly.New(s.Coefficients(1<<logN - 1))
	for r := 0; r < runs; r++ {
		measureutil.Time(name, func() { p.Mul(q) })
	}
}

func sweepTree(s *sampling.Sampler, logN, runs, queries int) {
	buildName := fmt.Sprintf("merkle-build/n=%d", 1<<logN)
	openName := fmt.Sprintf("merkle-open/n=%d", 1<<logN)
	leaves := make([]poseidon.Digest, 1<<logN)
	for i := range leaves {
		leaves[i] = poseidon.HashVarlen(s.FieldElements(poseidon.Rate))
	}
	var tree *merkle.Tree[poseidon.Digest]
	for r := 0; r < runs; r++ {
		measureutil.Time(buildName, func() {
			var err error
			tree, err = merkle.Build[poseidon.Digest](poseidon.Hasher{}, leaves)
			if err != nil {
				log.Fatalf("build: %v", err)
			}
		})
		indices, err := s.Indices(queries, 1<<logN)
		if err != nil {
			log.Fatalf("indices: %v", err)
		}
		measureutil.Time(openName, func() {
			if _, err := tree.AuthenticationStructure(indices); err != nil {
				log.Fatalf("structure: %v", err)
			}
		})
	}
}

// ------------------------------- main routine -------------------------------

func main() {
	runs := flag.Int("runs", 50, "timed runs per size")
	minLog := flag.Int("minlog", 8, "log2 of the smallest sweep size")
	maxLog := flag.Int("maxlog", 16, "log2 of the largest sweep size")
	queries := flag.Int("queries", 40, "opened leaves per tree query")
	seed := flag.String("seed", "analysis", "PRNG seed for the sweep inputs")
	outDir := flag.String("out", "Measure_Reports", "output directory for reports")
	flag.Parse()

	if *minLog < 1 || *maxLog < *minLog || uint64(1)<<*maxLog > ntt.MaxLength {
		log.Fatalf("invalid sweep range [2^%d, 2^%d]", *minLog, *maxLog)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("mkdir: %v", err)
	}
	s := sampling.MustNew([]byte(*seed))

	var sizes []int
	for logN := *minLog; logN <= *maxLog; logN += 2 {
		sizes = append(sizes, 1<<logN)
		log.Printf("[analysis] sweeping n=%d", 1<<logN)
		sweepTransform(s, logN, *runs)
		sweepPolyMul(s, logN, *runs)
		sweepTree(s, logN, *runs, *queries)
	}
	samples := measureutil.SnapshotAndReset()

	outStats := make(map[string]summaryStats, len(samples))
	for name, vals := range samples {
		outStats[name] = computeStats(vals)
	}
	ts := time.Now().Format("20060102_150405")
	jsonPath := filepath.Join(*outDir, fmt.Sprintf("timing_stats_%s.json", ts))
	if err := saveJSON(jsonPath, outStats); err != nil {
		log.Printf("warn: save stats: %v", err)
	}

	// One scaling chart across sizes, then a histogram per measurement.
	scaling := map[string][]float64{}
	for _, kind := range []string{"ntt", "polymul", "merkle-build", "merkle-open"} {
		for _, n := range sizes {
			scaling[kind] = append(scaling[kind], outStats[fmt.Sprintf("%s/n=%d", kind, n)].Mean)
		}
	}
	page := components.NewPage()
	page.AddCharts(newScalingChart("sweep scaling", sizes, scaling))
	names := make([]string, 0, len(samples))
	for name := range samples {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		page.AddCharts(newHistogramChart(name, samples[name], outStats[name]))
	}

	htmlPath := filepath.Join(*outDir, fmt.Sprintf("timing_histograms_%s.html", ts))
	f, err := os.Create(htmlPath)
	if err != nil {
		log.Fatalf("create html: %v", err)
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		log.Fatalf("render html: %v", err)
	}
	fmt.Println("Histogram page:", htmlPath)
	fmt.Println("Stats JSON:", jsonPath)
}
