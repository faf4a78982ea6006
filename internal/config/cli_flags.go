package config

import "github.com/spf13/cobra"

// RegisterFlags registers common CLI flags on the provided root command
func RegisterFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress all output except errors")
	cmd.PersistentFlags().Bool("json", false, "Output logs and results as JSON")
	cmd.PersistentFlags().String("proxy", "", "Set HTTP proxy (e.g., http://localhost:8080)")
	cmd.PersistentFlags().String("timeout", DefaultHTTPTimeout.String(), "Timeout for a single page fetch")
	cmd.PersistentFlags().String("user-agent", "", "Custom user agent string")
}

// RegisterScrapeFlags registers the flags of the scrape command
func RegisterScrapeFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	cmd.Flags().StringP("output", "o", "", "Dataset file to append to (default "+DefaultOutputPath+")")
	cmd.Flags().StringP("list", "l", "", "File with one URL per line (# comments allowed)")
	cmd.Flags().Int("min-length", DefaultMinParagraphLen, "Minimum paragraph length in characters")
	cmd.Flags().String("delay", DefaultListDelay.String(), "Pause between successive requests in list mode")
	cmd.Flags().Bool("render", false, "Render pages in headless Chrome before extracting")
	cmd.Flags().Bool("print", false, "Print the extracted paragraphs")
	cmd.Flags().StringArrayP("header", "H", []string{}, "Custom headers (e.g., -H \"Accept-Language: en-GB\")")
	cmd.Flags().StringArray("exclude", []string{}, "Additional exclusion keyword (repeatable)")
}
