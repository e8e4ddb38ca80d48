package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nishanthcgit/haystack-website/internal/outline"
	"github.com/nishanthcgit/haystack-website/internal/site"
)

var outlineCmd = &cobra.Command{
	Use:   "outline <page>",
	Short: "Print the anchor outline of a page",
	Long:  `Prints the headings of a page, relative to the docs directory, grouped the way the "on this page" panel shows them.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runOutline,
}

func init() {
	outlineCmd.Flags().Bool("json", false, "print the grouped outline as JSON")
	rootCmd.AddCommand(outlineCmd)
}

func runOutline(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	headings, err := site.NewGenerator(cfg).Outline(args[0])
	if err != nil {
		return err
	}
	forest := outline.Group(headings)

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		if forest == nil {
			forest = []*outline.Node{}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(forest)
	}

	printNodes(forest, 0)
	return nil
}

func printNodes(nodes []*outline.Node, level int) {
	for _, n := range nodes {
		fmt.Printf("%s%s  #%s\n", strings.Repeat("  ", level), n.Value, outline.AnchorID(n.Value))
		printNodes(n.Children, level+1)
	}
}
