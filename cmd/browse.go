package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/medevidences/matchengine/internal/logger"
	"github.com/medevidences/matchengine/internal/ranking"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse candidate matches for a job using deterministic scoring only",
	Run: func(cmd *cobra.Command, _ []string) {
		browse(cmd)
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)

	browseCmd.Flags().String("job", "", "path to the job posting JSON file")
	browseCmd.Flags().String("candidates", "", "path to the candidate pool JSON file")
	browseCmd.Flags().IntP("top", "n", 0, "number of results to keep (default from config, 10)")
	browseCmd.Flags().BoolP("auto-approve", "y", false, "print results without asking")
}

// browse runs the cheap employer flow: no pre-filter, no oracle, just the
// deterministic scorer per pair.
func browse(cmd *cobra.Command) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	job, pool := loadJobAndCandidates(cmd, logger)

	batch, err := ranking.NewBatchRanker(nil, logger)
	if err != nil {
		logger.Fatal("building the batch ranker", zap.Error(err))
	}
	engine := ranking.NewEngine(batch, logger)

	results, err := engine.BrowseCandidatesForJob(job, pool, topN(cmd, config))
	if err != nil {
		logger.Fatal("scoring candidates", zap.Error(err))
	}

	logger.Info("browse matching finished",
		zap.String("job_id", job.ID),
		zap.Int("pool_size", pool.Len()),
		zap.Int("results", len(results)),
	)

	if len(results) == 0 {
		logger.Info("exiting", zap.String("reason", "no candidates matched"))
		return
	}

	if err := presentResults(cmd, results, logger); err != nil {
		logger.Fatal("presenting results", zap.Error(err))
	}
}
