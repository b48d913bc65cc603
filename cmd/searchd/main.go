// Command searchd is the CLI front door wiring config, logging, the core,
// and the HTTP API together: "serve" hosts a search.Server over HTTP,
// while "ingest" and "query" are thin HTTP clients against a running
// instance, mirroring this lineage's own daemon-plus-client CLI split.
package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"searchengine/api"
	"searchengine/config"
	"searchengine/logger"
	"searchengine/search"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		logger.Fatal("searchd: %v", err)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "searchd",
		Short: "In-memory full-text search engine",
	}
	root.AddCommand(serveCmd(), ingestCmd(), queryCmd())
	return root
}

// serveCmd disables cobra's own flag parsing and hands the raw args
// straight to config.Parse, so config remains the single place the serve
// flags (and their defaults) are declared rather than duplicating that
// declaration on the cobra command itself.
func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:                "serve",
		Short:              "Host a search server over HTTP",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Parse(flag.NewFlagSet("serve", flag.ContinueOnError), args)
			if err != nil {
				return err
			}

			srv, err := search.NewWithShards(cfg.StopWords, cfg.Shards)
			if err != nil {
				return err
			}

			httpServer := &http.Server{
				Addr:    cfg.Addr,
				Handler: api.NewRouter(srv),
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			go func() {
				logger.With(zerolog.InfoLevel).Str("addr", cfg.Addr).Int("shards", cfg.Shards).Msg("searchd: listening")
				if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("searchd: %v", err)
				}
			}()

			<-ctx.Done()
			logger.Info("searchd: shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return httpServer.Shutdown(shutdownCtx)
		},
	}
}

type ingestLine struct {
	ID      int    `json:"id"`
	Text    string `json:"text"`
	Status  int    `json:"status"`
	Ratings []int  `json:"ratings"`
}

func ingestCmd() *cobra.Command {
	var server string
	cmd := &cobra.Command{
		Use:   "ingest <file>",
		Short: "POST each JSON-lines document in file to a running searchd",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			scanner := bufio.NewScanner(f)
			count := 0
			for scanner.Scan() {
				line := scanner.Text()
				if line == "" {
					continue
				}
				var doc ingestLine
				if err := json.Unmarshal([]byte(line), &doc); err != nil {
					return fmt.Errorf("line %d: %w", count+1, err)
				}
				resp, err := http.Post(server+"/api/v1/documents", "application/json", bytes.NewReader([]byte(line)))
				if err != nil {
					return err
				}
				resp.Body.Close()
				if resp.StatusCode != http.StatusCreated {
					return fmt.Errorf("document %d: server returned %s", doc.ID, resp.Status)
				}
				count++
			}
			if err := scanner.Err(); err != nil {
				return err
			}
			logger.Info("searchd: ingested %d documents", count)
			return nil
		},
	}
	cmd.Flags().StringVar(&server, "server", "http://localhost:8085", "searchd base URL")
	return cmd
}

func queryCmd() *cobra.Command {
	var server string
	cmd := &cobra.Command{
		Use:   "query <raw query>",
		Short: "Run a search query against a running searchd and print the results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := http.Get(server + "/api/v1/search?q=" + url.QueryEscape(args[0]))
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("server returned %s", resp.Status)
			}
			var docs []search.Document
			if err := json.NewDecoder(resp.Body).Decode(&docs); err != nil {
				return err
			}
			for _, d := range docs {
				fmt.Printf("%d\t%.6f\t%d\n", d.ID, d.Relevance, d.Rating)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&server, "server", "http://localhost:8085", "searchd base URL")
	return cmd
}
