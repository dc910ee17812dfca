// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/deskrag"
	"github.com/poiesic/deskrag/config"
	"github.com/poiesic/deskrag/core"
	"github.com/poiesic/deskrag/storage"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:      "deskrag",
		Usage:     "Q&A over company policies, menus, and memos",
		ArgsUsage: "[question]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "question",
				Aliases: []string{"q"},
				Usage:   "Question to ask the system",
			},
			&cli.BoolFlag{
				Name:    "interactive",
				Aliases: []string{"i"},
				Usage:   "Run in interactive mode",
			},
			&cli.BoolFlag{
				Name:  "ingest",
				Usage: "Rebuild the document index from the knowledge base",
			},
			&cli.BoolFlag{
				Name:    "full",
				Aliases: []string{"f"},
				Usage:   "Show full detailed answer (default: compact)",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config.yaml",
				Value:   "config.yaml",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
		},
		Before: setupLogger,
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	question := c.Args().First()
	if question == "" {
		question = c.String("question")
	}

	if !c.Bool("ingest") && !c.Bool("interactive") && question == "" {
		cli.ShowAppHelp(c)
		return cli.Exit("", 1)
	}

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	slog.Debug("configuration loaded",
		"knowledge_base", cfg.Paths.KnowledgeBase,
		"index_dir", cfg.Paths.IndexDir,
		"embedding_model", cfg.Models.EmbeddingModel,
		"chat_model", cfg.Models.ChatModel,
		"top_k", cfg.Retrieval.TopK,
		"search_k", cfg.Retrieval.SimilaritySearchK)

	engine, err := deskrag.NewEngine(cfg)
	if err != nil {
		return err
	}
	defer engine.Close()

	ctx := context.Background()

	if c.Bool("ingest") {
		count, err := engine.Ingest(ctx)
		if err != nil {
			return fmt.Errorf("ingestion failed: %w", err)
		}
		fmt.Printf("Indexed %d documents\n", count)
		if !c.Bool("interactive") && question == "" {
			return nil
		}
	} else if err := openOrIngest(ctx, engine); err != nil {
		return err
	}

	compact := !c.Bool("full")

	if c.Bool("interactive") {
		return runInteractive(ctx, engine, compact)
	}

	result, err := engine.Query(ctx, question)
	if err != nil {
		return err
	}
	printAnswer(question, result, compact)
	return nil
}

// openOrIngest loads the existing index, building it first when absent.
func openOrIngest(ctx context.Context, engine *deskrag.Engine) error {
	err := engine.Open()
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrIndexNotFound) {
		return err
	}

	slog.Warn("index not found, ingesting documents")
	count, err := engine.Ingest(ctx)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}
	fmt.Printf("Indexed %d documents\n", count)
	return nil
}

func runInteractive(ctx context.Context, engine *deskrag.Engine, compact bool) error {
	fmt.Println("Interactive mode. Type 'exit', 'quit', or 'q' to stop.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("Your question: ")
		if !scanner.Scan() {
			break
		}

		question := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(question) {
		case "", "exit", "quit", "q":
			return scanner.Err()
		}

		result, err := engine.Query(ctx, question)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		printAnswer(question, result, compact)
		fmt.Println()
	}
	return scanner.Err()
}

func printAnswer(question string, result core.Answer, compact bool) {
	if compact {
		fmt.Println(strings.Repeat("-", 70))
		fmt.Printf("Answer:  %s\n", result.Answer)
		fmt.Printf("Sources: %s\n", strings.Join(result.CitedSources, ", "))
		fmt.Println(strings.Repeat("-", 70))
		return
	}

	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("Question: %s\n", question)
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("\n%s\n\n", result.Answer)
	fmt.Println(strings.Repeat("-", 70))
	fmt.Printf("Reasoning: %s\n", result.Reasoning)
	fmt.Printf("Sources:   %s\n", strings.Join(result.CitedSources, ", "))
	if result.PolicyAllowsRemote != nil {
		fmt.Printf("Policy allows remote: %t\n", *result.PolicyAllowsRemote)
	}
	fmt.Println(strings.Repeat("=", 70))
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
