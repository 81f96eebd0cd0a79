package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/getlistd/listd/pkg/cli/internal/output"
	"github.com/getlistd/listd/pkg/quiz"
	"github.com/getlistd/listd/pkg/server"
)

var (
	quizConfigFile string
	quizShuffle    bool
	quizSeed       int64
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Run a quiz round over the configured cards",
	Long: `Ask every open card from the configuration's seeds, reading answers
from stdin. Answers are compared case-insensitively after trimming; a
correct answer scores the card's points.`,
	RunE: runQuiz,
}

func init() {
	quizCmd.Flags().StringVarP(&quizConfigFile, "config", "c", "", "Configuration file (default: $LISTD_CONFIG or ./listd.yaml)")
	quizCmd.Flags().BoolVar(&quizShuffle, "shuffle", false, "Randomize question order")
	quizCmd.Flags().Int64Var(&quizSeed, "seed", 0, "Shuffle seed for a reproducible order (implies --shuffle)")
	rootCmd.AddCommand(quizCmd)
}

func runQuiz(cmd *cobra.Command, args []string) error {
	cfg, path, err := resolveConfig(quizConfigFile)
	if err != nil {
		return describeConfigError(path, err)
	}

	stores, _, err := server.BuildStores(cfg)
	if err != nil {
		return fmt.Errorf("seed lists: %w", err)
	}

	opts := quiz.Options{Shuffle: quizShuffle || quizSeed != 0, Seed: quizSeed}
	result, err := quiz.Run(stores.Cards, os.Stdin, os.Stdout, opts)
	if err != nil {
		return err
	}

	if jsonOutput {
		return output.JSON(result)
	}
	return nil
}
