package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show practice statistics from the store",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		stats, err := st.ProblemRepo().Stats(cmd.Context())
		if err != nil {
			return fmt.Errorf("query stats: %w", err)
		}

		fmt.Printf("Problems generated:  %d\n", stats.Sessions)
		fmt.Printf("Answers submitted:   %d\n", stats.Submissions)
		fmt.Printf("Answered correctly:  %d\n", stats.Correct)
		if stats.Submissions > 0 {
			fmt.Printf("Accuracy:            %.1f%%\n", float64(stats.Correct)/float64(stats.Submissions)*100)
		}
		return nil
	},
}
