package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nishanthcgit/haystack-website/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize docsite configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the documentation site and writes a .docsite.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.RunWizard(cfgFile)
		if err != nil {
			return err
		}
		fmt.Printf("Run `docsite build` to render %s into %s.\n", cfg.DocsDir, cfg.OutputDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
