package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mikeboe/research-agent/pkg/clients"
	"github.com/mikeboe/research-agent/pkg/config"
	"github.com/mikeboe/research-agent/pkg/research"
	"github.com/mikeboe/research-agent/pkg/research/tools"
)

var (
	query      string
	depth      string
	outputFile string
)

func main() {
	// Setup structured logging
	handler := slog.NewTextHandler(os.Stdout, nil)
	slog.SetDefault(slog.New(handler))

	// Load .env file
	if err := godotenv.Load(); err != nil {
		// It's okay if .env doesn't exist, as long as env vars are set
	}

	rootCmd := &cobra.Command{
		Use:   "research-agent",
		Short: "A terminal-based research agent",
		Long:  `research-agent decomposes a research question into sub-queries, searches the web concurrently, and synthesizes the findings into a structured report. Without API keys it produces deterministic fallback output.`,
		Run: func(cmd *cobra.Command, args []string) {

			if !cmd.Flags().Changed("query") {
				// Interactive Mode
				reader := bufio.NewReader(os.Stdin)

				fmt.Print("Enter research question: ")
				input, _ := reader.ReadString('\n')
				query = strings.TrimSpace(input)
				if query == "" {
					slog.Error("Query cannot be empty")
					os.Exit(1)
				}

				fmt.Printf("Enter depth quick/standard/deep (default: %s): ", depth)
				input, _ = reader.ReadString('\n')
				input = strings.TrimSpace(input)
				if input != "" {
					depth = input
				}
			} else if query == "" {
				slog.Error("--query flag provided but empty")
				os.Exit(1)
			}

			cfg := config.Load()

			var completer research.Completer
			if cfg.AIEnabled() {
				client, err := clients.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.Model)
				if err != nil {
					slog.Error("Failed to init OpenAI client", "error", err)
					os.Exit(1)
				}
				completer = client
			} else {
				slog.Warn("No OPENAI_API_KEY set, using fallback mode")
			}

			var searcher research.Searcher
			if cfg.SearchEnabled() {
				searcher = tools.NewSerperClient(cfg.SerperAPIKey)
			}

			engine := research.NewEngine(completer, searcher, research.NewHistory())

			slog.Info("Starting research", "query", query, "depth", depth)

			record, err := engine.Research(context.Background(), query, depth)
			if err != nil {
				slog.Error("Research failed", "error", err)
				os.Exit(1)
			}

			data, err := json.MarshalIndent(record, "", "  ")
			if err != nil {
				slog.Error("Failed to encode record", "error", err)
				os.Exit(1)
			}

			if outputFile != "" {
				if err := os.WriteFile(outputFile, data, 0644); err != nil {
					slog.Error("Failed to write output file", "file", outputFile, "error", err)
					os.Exit(1)
				}
				slog.Info("Saved research record", "file", outputFile)
				return
			}

			fmt.Println(string(data))
		},
	}

	rootCmd.Flags().StringVarP(&query, "query", "q", "", "The research question")
	rootCmd.Flags().StringVarP(&depth, "depth", "d", research.DepthStandard, "Research depth: quick, standard, or deep")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write the research record JSON to a file instead of stdout")

	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command execution failed", "error", err)
		os.Exit(1)
	}
}
