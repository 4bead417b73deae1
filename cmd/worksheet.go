package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/wordmath/internal/llm"
	"github.com/abhisek/wordmath/internal/problemgen"
	"github.com/abhisek/wordmath/internal/worksheet"
)

var worksheetCmd = &cobra.Command{
	Use:   "worksheet",
	Short: "Generate a printable PDF worksheet with an answer key",
	RunE:  runWorksheet,
}

func init() {
	worksheetCmd.Flags().IntP("count", "n", 10, "number of problems")
	worksheetCmd.Flags().StringP("output", "o", "worksheet.pdf", "output PDF path")
	worksheetCmd.Flags().String("name", "", "learner name printed in the title")
	worksheetCmd.Flags().Int("concurrency", 4, "parallel generation calls")
}

func runWorksheet(cmd *cobra.Command, args []string) error {
	count, _ := cmd.Flags().GetInt("count")
	output, _ := cmd.Flags().GetString("output")
	name, _ := cmd.Flags().GetString("name")
	concurrency, _ := cmd.Flags().GetInt("concurrency")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	st, err := openEventStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	provider, err := llm.NewProvider(ctx, cfg.LLM, st.EventRepo())
	if err != nil {
		return fmt.Errorf("llm provider: %w", err)
	}
	genCfg := problemgen.DefaultConfig()

	fmt.Fprintf(os.Stderr, "Generating %d problems...\n", count)
	problems, err := worksheet.Build(ctx, problemgen.New(provider, genCfg), count, concurrency)
	if err != nil {
		return fmt.Errorf("generate worksheet: %w", err)
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	ws := &worksheet.Worksheet{Name: name, Topics: genCfg.Topics, Problems: problems}
	if err := worksheet.WritePDF(f, ws, worksheet.DefaultPDFConfig()); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Printf("Wrote %s (%d problems)\n", output, len(problems))
	return nil
}
