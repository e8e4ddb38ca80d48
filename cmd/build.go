package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nishanthcgit/haystack-website/internal/progress"
	"github.com/nishanthcgit/haystack-website/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render the documentation site",
	Long:  `Renders every page in the docs directory into the output directory, along with the stylesheet, scripts and the build manifest.`,
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().String("output", "", "override the output directory")
	buildCmd.Flags().Bool("no-stars", false, "skip fetching the star count")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if out, _ := cmd.Flags().GetString("output"); out != "" {
		cfg.OutputDir = out
	}

	opts := []site.Option{site.WithProgress(progress.NewReporter())}
	if noStars, _ := cmd.Flags().GetBool("no-stars"); !noStars {
		loader, cache, err := newStarLoader(cfg)
		if err != nil {
			return err
		}
		if cache != nil {
			defer cache.Close()
			opts = append(opts, site.WithStars(loader))
		}
	}

	res, err := site.NewGenerator(cfg, opts...).Generate(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("Built %d pages into %s in %s\n", res.Pages, cfg.OutputDir, res.Duration.Round(time.Millisecond))
	if res.StarCount != nil {
		fmt.Printf("Star count: %d\n", *res.StarCount)
	}
	return nil
}
