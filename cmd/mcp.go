package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	mcpserver "github.com/nishanthcgit/haystack-website/internal/mcp"
	"github.com/nishanthcgit/haystack-website/internal/site"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing the page list, page outlines and the star count.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		loader, cache, err := newStarLoader(cfg)
		if err != nil {
			return err
		}
		var src mcpserver.StarSource
		if loader != nil {
			defer cache.Close()
			src = loader
		}

		mcpserver.Version = Version
		slog.Info("MCP server started on stdio", "docs", cfg.DocsDir)

		return mcpserver.NewServer(site.NewGenerator(cfg), src).Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
