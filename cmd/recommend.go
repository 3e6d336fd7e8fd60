package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/medevidences/matchengine/internal/ai"
	"github.com/medevidences/matchengine/internal/ai/gemini"
	"github.com/medevidences/matchengine/internal/logger"
	"github.com/medevidences/matchengine/internal/marketplace"
	"github.com/medevidences/matchengine/internal/ranking"
	"github.com/medevidences/matchengine/internal/secrets"
)

const (
	PromptPrint = "Print results"
	PromptDump  = "Dump results to file"
	PromptQuit  = "Quit"
)

var outputPrompt = promptui.Select{
	Label: "Results are ready",
	Items: []string{PromptPrint, PromptDump, PromptQuit},
}

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend top candidates for a job using the AI ranking oracle with a deterministic fallback",
	Run: func(cmd *cobra.Command, _ []string) {
		recommend(cmd)
	},
}

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendCmd.Flags().String("job", "", "path to the job posting JSON file")
	recommendCmd.Flags().String("candidates", "", "path to the candidate pool JSON file")
	recommendCmd.Flags().IntP("top", "n", 0, "number of results to keep (default from config, 10)")
	recommendCmd.Flags().BoolP("auto-approve", "y", false, "print results without asking")
}

func recommend(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the matchengine", zap.String("version", version))

	job, pool := loadJobAndCandidates(cmd, logger)

	engine := buildEngine(ctx, config, logger)

	results, err := engine.TopCandidatesForJob(ctx, job, pool, topN(cmd, config))
	if err != nil {
		logger.Fatal("ranking candidates", zap.Error(err))
	}

	logger.Info("ranking finished",
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

func loadJobAndCandidates(cmd *cobra.Command, logger *zap.Logger) (*marketplace.Job, *marketplace.Candidates) {
	jobPath := strings.TrimSpace(cmd.Flag("job").Value.String())
	candidatesPath := strings.TrimSpace(cmd.Flag("candidates").Value.String())

	if jobPath == "" || candidatesPath == "" {
		logger.Fatal("both --job and --candidates files are required")
	}

	job, err := marketplace.JobFromFile(jobPath)
	if err != nil {
		logger.Fatal("loading the job posting", zap.Error(err))
	}

	pool, err := marketplace.CandidatesFromFile(candidatesPath)
	if err != nil {
		logger.Fatal("loading the candidate pool", zap.Error(err))
	}

	logger.Info("inputs loaded",
		zap.String("job_id", job.ID),
		zap.String("job_title", job.Title),
		zap.Int("candidates", pool.Len()),
	)

	return job, pool
}

// buildEngine wires the ranking engine. When the oracle cannot be
// configured the engine still works: ranking silently degrades to the
// deterministic fallback.
func buildEngine(ctx context.Context, config *Config, logger *zap.Logger) *ranking.Engine {
	var opts []ranking.BatchRankerOption

	ranker, timeout, err := newOracleRanker(ctx, config.AI, logger)
	if err != nil {
		logger.Warn("ranking oracle unavailable, falling back to deterministic scoring", zap.Error(err))
	}
	if timeout > 0 {
		opts = append(opts, ranking.WithOracleTimeout(timeout))
	}

	batch, err := ranking.NewBatchRanker(ranker, logger, opts...)
	if err != nil {
		logger.Fatal("building the batch ranker", zap.Error(err))
	}

	return ranking.NewEngine(batch, logger)
}

func newOracleRanker(ctx context.Context, config *AIConfig, logger *zap.Logger) (ai.Ranker, time.Duration, error) {
	if config == nil || !config.Enabled {
		return nil, 0, fmt.Errorf("ai ranking is not enabled in the configuration")
	}

	provider := strings.TrimSpace(strings.ToLower(config.Provider))
	if provider != "" && provider != "gemini" {
		return nil, 0, fmt.Errorf("unsupported ai provider: %s", config.Provider)
	}

	if config.Gemini == nil {
		return nil, 0, fmt.Errorf("gemini configuration is required when ai ranking is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: config.Gemini.APIKey,
		File:  config.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, config.Gemini.Model)
	if err != nil {
		return nil, 0, err
	}

	rankerLogger := logger.With(
		zap.String("provider", "gemini"),
		zap.String("model", generator.Model()),
	)

	timeout := time.Duration(config.Gemini.TimeoutSeconds) * time.Second

	return gemini.NewRanker(generator, rankerLogger, config.Gemini.MaxLogLength), timeout, nil
}

func topN(cmd *cobra.Command, config *Config) int {
	if flag := cmd.Flag("top"); flag != nil {
		if n, err := cmd.Flags().GetInt("top"); err == nil && n > 0 {
			return n
		}
	}
	return config.TopN
}

func presentResults(cmd *cobra.Command, results []*marketplace.MatchResult, logger *zap.Logger) error {
	if auto, _ := cmd.Flags().GetBool("auto-approve"); auto {
		return printResults(results)
	}

	for {
		_, action, err := outputPrompt.Run()
		if err != nil {
			return fmt.Errorf("prompt failed: %w", err)
		}

		switch action {
		case PromptPrint:
			if err := printResults(results); err != nil {
				return err
			}
		case PromptDump:
			filename, err := marketplace.DumpResultsToTmpFile(results)
			if err != nil {
				return fmt.Errorf("dumping results: %w", err)
			}
			logger.Info("results dumped", zap.String("filename", filename))
		case PromptQuit:
			return nil
		}
	}
}

func printResults(results []*marketplace.MatchResult) error {
	pretty, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	fmt.Println(string(pretty))
	return nil
}
