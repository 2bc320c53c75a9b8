// cmd/weather/main.go
// Terminal client: search a Korean city name through the proxy.

package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"weather-outfit/internal/apiclient"
	"weather-outfit/internal/config"
	"weather-outfit/internal/history"
	"weather-outfit/internal/orchestrator"
	"weather-outfit/internal/render"
	sqliterepo "weather-outfit/internal/repositories/sqlite"
	"weather-outfit/pkg/db"
)

var historyDriver string

func main() {
	var (
		verbose bool
		quiet   bool
		fromIdx int
	)

	rootCmd := &cobra.Command{
		Use:           "weather",
		Short:         "도시 이름으로 날씨와 옷차림 추천을 조회합니다",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if !verbose {
				log.SetOutput(io.Discard)
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "로그 출력")
	rootCmd.PersistentFlags().StringVar(&historyDriver, "history-driver", "", "기록 저장소 (file, sqlite); 기본값 HISTORY_DRIVER")

	searchCmd := &cobra.Command{
		Use:   "search [도시]",
		Short: "도시 날씨 검색 (예: weather search 서울)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOrchestrator(cmd, quiet, func(ctx context.Context, o *orchestrator.Orchestrator) error {
				if cmd.Flags().Changed("history") {
					_, err := o.SearchHistory(ctx, fromIdx)
					return err
				}
				_, err := o.Search(ctx, strings.Join(args, " "))
				return err
			})
		},
	}
	searchCmd.Flags().IntVar(&fromIdx, "history", 0, "최근 검색 목록의 N번째 항목으로 다시 검색")
	searchCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "최종 결과만 출력")

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "최근 검색 목록",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOrchestrator(cmd, false, func(context.Context, *orchestrator.Orchestrator) error {
				return nil // Start already rendered the list
			})
		},
	}
	historyRmCmd := &cobra.Command{
		Use:   "rm <index>",
		Short: "최근 검색 항목 삭제",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("index must be a number: %q", args[0])
			}
			return withOrchestrator(cmd, true, func(ctx context.Context, o *orchestrator.Orchestrator) error {
				if err := o.RemoveHistory(ctx, idx); err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), render.FormatHistory(o.History()))
				return nil
			})
		},
	}
	historyClearCmd := &cobra.Command{
		Use:   "clear",
		Short: "최근 검색 전체 삭제",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOrchestrator(cmd, true, func(ctx context.Context, o *orchestrator.Orchestrator) error {
				if err := o.ClearHistory(ctx); err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), render.FormatHistory(o.History()))
				return nil
			})
		},
	}
	historyCmd.AddCommand(historyRmCmd, historyClearCmd)
	rootCmd.AddCommand(searchCmd, historyCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "오류:", err)
		os.Exit(1)
	}
}

// withOrchestrator builds the client stack, loads history and runs fn.
func withOrchestrator(cmd *cobra.Command, quiet bool, fn func(context.Context, *orchestrator.Orchestrator) error) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadClient()
	if historyDriver != "" {
		cfg.HistoryDriver = historyDriver
	}
	storage, closeStorage, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStorage()

	term := render.NewTerminal(cmd.OutOrStdout())
	term.Quiet = quiet

	client := apiclient.New(cfg.APIBase, cfg.Timeout)
	o := orchestrator.New(orchestrator.Deps{
		Translator: client,
		Forecaster: client,
		Outfitter:  client,
		History:    history.NewStore(storage, history.DefaultKey),
		Renderer:   term,
	})
	o.Start(ctx)
	return fn(ctx, o)
}

func openStorage(ctx context.Context, cfg *config.ClientConfig) (history.Storage, func(), error) {
	switch cfg.HistoryDriver {
	case "sqlite":
		conn, err := db.OpenSQLite(ctx, filepath.Join(cfg.HistoryDir, "history.db"))
		if err != nil {
			return nil, nil, err
		}
		repo := &sqliterepo.HistoryRepo{DB: conn}
		if err := repo.EnsureSchema(ctx); err != nil {
			conn.Close()
			return nil, nil, err
		}
		return repo, func() { conn.Close() }, nil
	case "file", "":
		fs, err := history.NewFileStorage(cfg.HistoryDir)
		if err != nil {
			return nil, nil, err
		}
		return fs, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown HISTORY_DRIVER %q (file, sqlite)", cfg.HistoryDriver)
	}
}
