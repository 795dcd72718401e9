package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"example.com/puzgate/internal/common"
	"example.com/puzgate/internal/manifest"
	"example.com/puzgate/internal/puz"
	"example.com/puzgate/internal/report"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	cmd := os.Args[1]
	switch cmd {
	case "decode":
		decodeCmd(os.Args[2:])
	case "validate":
		validateCmd(os.Args[2:])
	case "report":
		reportCmd(os.Args[2:])
	case "batch":
		batchCmd(os.Args[2:])
	case "manifest":
		manifestCmd(os.Args[2:])
	case "version":
		fmt.Printf("puzctl %s (built %s)\n", version, buildDate)
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Printf(`puzctl %s (built %s) <command> [options]

Commands:
  decode    --in <file.puz> [--out <document.json>] [--pretty]
  validate  --in <file.puz> [--out <findings.jsonl>] [--report <report.json>] [--metrics]
  report    --in <file.puz> --pdf <report.pdf> [--report <report.json>]
  batch     --in <dir> --out-dir <dir> [--concurrency <n>] [--metrics] [--progress]
  manifest  --inputs <comma-separated> --out <manifest.json>
`, version, buildDate)
}

func parseFile(path string) (*puz.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return puz.Parse(data)
}

func decodeCmd(args []string) {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	in := fs.String("in", "", "input .puz file")
	out := fs.String("out", "", "document JSON output (default stdout)")
	pretty := fs.Bool("pretty", false, "indent the JSON output")
	fs.Parse(args)

	if *in == "" {
		fmt.Println("required: --in")
		os.Exit(1)
	}

	res, err := parseFile(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "decode %s: %v\n", *in, err)
		os.Exit(1)
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s: %s\n", w.Code, w.Message)
	}

	doc := report.ExportDocument(res.Puzzle)
	var blob []byte
	if *pretty {
		blob, err = json.MarshalIndent(doc, "", "  ")
	} else {
		blob, err = json.Marshal(doc)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode document: %v\n", err)
		os.Exit(1)
	}
	blob = append(blob, '\n')

	if *out == "" {
		os.Stdout.Write(blob)
		return
	}
	if err := os.WriteFile(*out, blob, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "write %s: %v\n", *out, err)
		os.Exit(1)
	}
	common.Logf("decoded %s (%d warnings) -> %s", *in, len(res.Warnings), *out)
}

func validateCmd(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	in := fs.String("in", "", "input .puz file")
	out := fs.String("out", "", "findings NDJSON output")
	reportPath := fs.String("report", "", "report JSON output")
	metricsFlag := fs.Bool("metrics", false, "print decode throughput metrics")
	fs.Parse(args)

	if *in == "" {
		fmt.Println("required: --in")
		os.Exit(1)
	}

	metrics := common.NewMetrics()
	metrics.Start()
	res, err := parseFile(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "decode %s: %v\n", *in, err)
		os.Exit(1)
	}
	if info, statErr := os.Stat(*in); statErr == nil {
		metrics.AddFile(info.Size(), len(res.Warnings))
	}
	metrics.Stop()

	rep := report.Build(filepath.Base(*in), res)
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "create %s: %v\n", *out, err)
			os.Exit(1)
		}
		err = report.WriteFindingsNDJSON(f, rep.Findings)
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "write %s: %v\n", *out, err)
			os.Exit(1)
		}
	}
	if *reportPath != "" {
		if err := report.SaveJSON(rep, *reportPath); err != nil {
			fmt.Fprintf(os.Stderr, "write %s: %v\n", *reportPath, err)
			os.Exit(1)
		}
	}

	status := "CLEAN"
	if len(res.Warnings) > 0 {
		status = "WARNINGS"
	}
	fmt.Printf("%s: %s (%dx%d, %d clues, %d warnings)\n",
		*in, status, rep.Summary.Width, rep.Summary.Height, rep.Summary.Clues, len(res.Warnings))
	if *metricsFlag {
		printMetrics(metrics.Snapshot())
	}
}

func reportCmd(args []string) {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	in := fs.String("in", "", "input .puz file")
	pdfPath := fs.String("pdf", "", "PDF report output")
	reportPath := fs.String("report", "", "report JSON output")
	fs.Parse(args)

	if *in == "" || *pdfPath == "" {
		fmt.Println("required: --in and --pdf")
		os.Exit(1)
	}

	res, err := parseFile(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "decode %s: %v\n", *in, err)
		os.Exit(1)
	}
	digest, _, err := common.Sha256OfFile(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash %s: %v\n", *in, err)
		os.Exit(1)
	}

	rep := report.Build(filepath.Base(*in), res)
	if *reportPath != "" {
		if err := report.SaveJSON(rep, *reportPath); err != nil {
			fmt.Fprintf(os.Stderr, "write %s: %v\n", *reportPath, err)
			os.Exit(1)
		}
	}
	if err := report.SavePDF(rep, res.Puzzle, digest, *pdfPath); err != nil {
		fmt.Fprintf(os.Stderr, "write %s: %v\n", *pdfPath, err)
		os.Exit(1)
	}
	common.Logf("report for %s -> %s", *in, *pdfPath)
}

func batchCmd(args []string) {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	in := fs.String("in", "", "input directory of .puz files")
	outDir := fs.String("out-dir", "", "output directory")
	concurrency := fs.Int("concurrency", runtime.NumCPU(), "maximum concurrent decodes")
	metricsFlag := fs.Bool("metrics", false, "print batch throughput metrics")
	progressFlag := fs.Bool("progress", false, "display batch progress updates")
	fs.Parse(args)

	if *in == "" || *outDir == "" {
		fmt.Println("required: --in and --out-dir")
		os.Exit(1)
	}
	if *concurrency < 1 {
		*concurrency = 1
	}

	entries, err := os.ReadDir(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", *in, err)
		os.Exit(1)
	}
	var inputs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".puz") {
			inputs = append(inputs, filepath.Join(*in, entry.Name()))
		}
	}
	if len(inputs) == 0 {
		fmt.Fprintf(os.Stderr, "no .puz files under %s\n", *in)
		os.Exit(1)
	}
	if err := os.MkdirAll(*outDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "create %s: %v\n", *outDir, err)
		os.Exit(1)
	}

	metrics := common.NewMetrics()
	metrics.Start()
	metrics.SetTotalFiles(int64(len(inputs)))
	stopProgress := func() {}
	if *progressFlag {
		stopProgress = common.StartProgressPrinter(os.Stderr, metrics, time.Second)
	}

	jobs := make(chan string)
	var wg sync.WaitGroup
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				if err := batchOne(path, *outDir, metrics); err != nil {
					metrics.IncFailure()
					fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
				}
			}
		}()
	}
	for _, path := range inputs {
		jobs <- path
	}
	close(jobs)
	wg.Wait()
	stopProgress()
	metrics.Stop()

	snap := metrics.Snapshot()
	fmt.Printf("batch: %d file(s), %d warning(s), %d failure(s) -> %s\n",
		snap.Files, snap.Warnings, snap.Failures, *outDir)
	if *metricsFlag {
		printMetrics(snap)
	}
	if snap.Failures > 0 {
		os.Exit(1)
	}
}

// batchOne decodes a single file and writes its document, findings and
// report under outDir/<base name without extension>/.
func batchOne(path, outDir string, metrics *common.Metrics) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	res, err := puz.Parse(data)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	metrics.AddFile(int64(len(data)), len(res.Warnings))

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	dir := filepath.Join(outDir, base)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	doc := report.ExportDocument(res.Puzzle)
	blob, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "document.json"), append(blob, '\n'), 0644); err != nil {
		return err
	}

	rep := report.Build(filepath.Base(path), res)
	if err := report.SaveJSON(rep, filepath.Join(dir, "report.json")); err != nil {
		return err
	}

	f, err := os.Create(filepath.Join(dir, "findings.jsonl"))
	if err != nil {
		return err
	}
	err = report.WriteFindingsNDJSON(f, rep.Findings)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return err
}

func manifestCmd(args []string) {
	fs := flag.NewFlagSet("manifest", flag.ExitOnError)
	inputs := fs.String("inputs", "", "comma-separated input files")
	out := fs.String("out", "manifest.json", "manifest output")
	fs.Parse(args)

	if *inputs == "" {
		fmt.Println("required: --inputs")
		os.Exit(1)
	}
	var paths []string
	for _, part := range strings.Split(*inputs, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			paths = append(paths, part)
		}
	}
	if len(paths) == 0 {
		fmt.Println("required: --inputs")
		os.Exit(1)
	}

	m, err := manifest.Build(paths)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build manifest: %v\n", err)
		os.Exit(1)
	}
	if err := manifest.Save(m, *out); err != nil {
		fmt.Fprintf(os.Stderr, "write %s: %v\n", *out, err)
		os.Exit(1)
	}
	common.Logf("manifest for %d file(s) -> %s", len(paths), *out)
}

func printMetrics(snap common.MetricsSnapshot) {
	fmt.Printf("metrics: %d file(s), %s in %s (%s/s)\n",
		snap.Files,
		common.FormatBytes(snap.Bytes),
		snap.Duration.Round(time.Millisecond),
		common.FormatBytes(int64(snap.ThroughputBytesPerSecond())))
}
