package cmd

import (
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/medevidences/matchengine/internal/logger"
	"github.com/medevidences/matchengine/internal/marketplace"
	"github.com/medevidences/matchengine/internal/ranking"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Match job postings against a candidate profile (the \"jobs for me\" flow)",
	Run: func(cmd *cobra.Command, _ []string) {
		match(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().String("candidate", "", "path to the candidate profile JSON file")
	matchCmd.Flags().String("jobs", "", "path to the job postings JSON file")
	matchCmd.Flags().IntP("top", "n", 0, "number of results to keep (default from config, 10)")
	matchCmd.Flags().BoolP("auto-approve", "y", false, "print results without asking")
}

func match(cmd *cobra.Command) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	candidatePath := strings.TrimSpace(cmd.Flag("candidate").Value.String())
	jobsPath := strings.TrimSpace(cmd.Flag("jobs").Value.String())
	if candidatePath == "" || jobsPath == "" {
		logger.Fatal("both --candidate and --jobs files are required")
	}

	candidates, err := marketplace.CandidatesFromFile(candidatePath)
	if err != nil {
		logger.Fatal("loading the candidate profile", zap.Error(err))
	}
	if candidates.Len() != 1 {
		logger.Fatal("the candidate file must contain exactly one profile",
			zap.Int("found", candidates.Len()),
		)
	}
	candidate := candidates.Items[0]

	jobs, err := marketplace.JobsFromFile(jobsPath)
	if err != nil {
		logger.Fatal("loading the job postings", zap.Error(err))
	}

	logger.Info("inputs loaded",
		zap.String("candidate_id", candidate.ID),
		zap.Int("jobs", jobs.Len()),
	)

	batch, err := ranking.NewBatchRanker(nil, logger)
	if err != nil {
		logger.Fatal("building the batch ranker", zap.Error(err))
	}
	engine := ranking.NewEngine(batch, logger)

	results, err := engine.JobsForCandidate(candidate, jobs, topN(cmd, config))
	if err != nil {
		logger.Fatal("matching jobs", zap.Error(err))
	}

	logger.Info("job matching finished",
		zap.String("candidate_id", candidate.ID),
		zap.Int("results", len(results)),
	)

	if len(results) == 0 {
		logger.Info("exiting", zap.String("reason", "no jobs matched"))
		return
	}

	if err := presentResults(cmd, results, logger); err != nil {
		logger.Fatal("presenting results", zap.Error(err))
	}
}
