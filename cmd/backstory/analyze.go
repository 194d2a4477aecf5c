package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/googleinterns/backstory/internal/app"
	"github.com/googleinterns/backstory/internal/config"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <image-file>",
	Short: "Generate a backstory for an image file",
	Long: `Run the full pipeline once for a local image file and print the
resulting backstory. The backstory is also stored in the database.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := cfg.ValidateForPipeline(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	image, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}

	application, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize application: %w", err)
	}
	defer application.Close()

	backstory, err := application.CreateBackstory(ctx, image, http.DetectContentType(image))
	if err != nil {
		return fmt.Errorf("create backstory: %w", err)
	}

	fmt.Printf("labels: %v\n\n", backstory.Labels)
	fmt.Println(backstory.Story)
	return nil
}
