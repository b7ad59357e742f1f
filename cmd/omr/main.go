// Command omr проверяет каталог фотографий бланков и пишет ведомость в XLSX или CSV.
package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"omr-bot/config"
	app "omr-bot/internal/application"
	"omr-bot/internal/domain/entity"
	"omr-bot/internal/infrastructure/answerkey"
	"omr-bot/internal/infrastructure/export"
	"omr-bot/internal/infrastructure/rendition"
	"omr-bot/internal/infrastructure/storage"
	"omr-bot/internal/infrastructure/vision"
)

var (
	modeFlag   string
	keyPath    string
	rosterPath string
	debugDir   string
	debug      bool
	outputPath string
	workers    int
)

var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".bmp": true, ".tif": true, ".tiff": true, ".webp": true,
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "omr",
		Short: "Score photographed bubble answer sheets",
	}

	scoreCmd := &cobra.Command{
		Use:   "score [dir]",
		Short: "Score every sheet image in a directory",
		Long: `score grades each image in dir against the answer key and writes a results
file. Files named web_* are renditions from earlier runs and are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: runScore,
	}
	scoreCmd.Flags().StringVar(&modeFlag, "mode", "single", "Grading mode: single or multi")
	scoreCmd.Flags().StringVar(&keyPath, "key", "", "Answer key file (.csv or .xlsx)")
	scoreCmd.Flags().StringVar(&rosterPath, "roster", "", "Student list file (.csv or .xlsx)")
	scoreCmd.Flags().StringVar(&debugDir, "debug-dir", "", "Directory for renditions and debug images (default: OMR_DEBUG_DIR)")
	scoreCmd.Flags().BoolVar(&debug, "debug", false, "Write full-size debug images")
	scoreCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Results file, .xlsx or .csv (default: omr_results_{mode}.xlsx)")
	scoreCmd.Flags().IntVarP(&workers, "workers", "j", 0, "Sheets graded in parallel (default: OMR_WORKERS)")
	_ = scoreCmd.MarkFlagRequired("key")

	keyCmd := &cobra.Command{
		Use:   "check-key [file]",
		Short: "Validate an answer key file",
		Args:  cobra.ExactArgs(1),
		RunE:  runCheckKey,
	}
	keyCmd.Flags().StringVar(&modeFlag, "mode", "single", "Grading mode: single or multi")

	rootCmd.AddCommand(scoreCmd, keyCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	mode, err := entity.ParseMode(modeFlag)
	if err != nil {
		return err
	}
	key, err := answerkey.LoadKey(keyPath, mode)
	if err != nil {
		return fmt.Errorf("load answer key: %w", err)
	}
	var roster entity.Roster
	if rosterPath != "" {
		if roster, err = answerkey.LoadRoster(rosterPath); err != nil {
			return fmt.Errorf("load roster: %w", err)
		}
	}

	uploads, err := readSheets(args[0])
	if err != nil {
		return err
	}
	if len(uploads) == 0 {
		return fmt.Errorf("no sheet images in %s", args[0])
	}

	opts := app.GradingOptions{DebugDir: cfg.DebugDir, Debug: cfg.Debug || debug, Workers: cfg.Workers}
	if debugDir != "" {
		opts.DebugDir = debugDir
	}
	if workers > 0 {
		opts.Workers = workers
	}

	scorer := vision.NewScorer(cfg.OMR, rendition.New(cfg.Rendition))
	svc := app.NewGradingService(app.NewUserService(storage.NewMemoryUserRepository()), scorer, storage.NewMemoryResultRepository(), opts)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sheets, err := svc.GradeBatch(ctx, app.Batch{Mode: mode, Key: key, Roster: roster, Debug: opts.Debug}, uploads)
	if err != nil {
		return fmt.Errorf("grading failed: %w", err)
	}
	sheets = app.OrderResults(sheets)

	out := cmd.OutOrStdout()
	for _, s := range sheets {
		if s.Failed() {
			fmt.Fprintf(out, "%-24s %-14s %s\n", s.FileName, s.StudentID, s.Error)
			continue
		}
		flag := ""
		if s.NeedsReview() {
			flag = "  [review]"
		}
		fmt.Fprintf(out, "%-24s %-14s %-24s %3d/%d%s\n", s.FileName, s.StudentID, s.StudentName(), s.Score, s.Total, flag)
	}

	path := outputPath
	if path == "" {
		path = fmt.Sprintf("omr_results_%s.xlsx", mode)
	}
	if err := writeResults(path, sheets); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Fprintf(out, "Results written to %s\n", path)
	return nil
}

func runCheckKey(cmd *cobra.Command, args []string) error {
	mode, err := entity.ParseMode(modeFlag)
	if err != nil {
		return err
	}
	key, err := answerkey.LoadKey(args[0], mode)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d questions (%s)\n", args[0], key.Len(), key.Mode)
	return nil
}

// readSheets читает изображения каталога в порядке имён.
func readSheets(dir string) ([]app.Upload, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, "web_") || !imageExts[strings.ToLower(filepath.Ext(name))] {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	uploads := make([]app.Upload, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, app.Upload{Name: name, Data: data})
	}
	return uploads, nil
}

func writeResults(path string, sheets []entity.GradedSheet) error {
	var buf bytes.Buffer
	var err error
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		err = export.WriteCSV(&buf, sheets)
	} else {
		err = export.WriteWorkbook(&buf, sheets, app.Questions)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
