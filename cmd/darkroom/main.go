package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/darkroom/internal/adapter"
	"github.com/mmcdole/darkroom/internal/adapter/source"
	"github.com/mmcdole/darkroom/internal/domain"
	"github.com/mmcdole/darkroom/internal/service"
	"github.com/mmcdole/darkroom/internal/store"
	"github.com/mmcdole/darkroom/internal/tui"
	"github.com/mmcdole/darkroom/internal/tui/styles"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

func main() {
	var showVersion, reset bool
	var configPath string
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.BoolVar(&reset, "reset", false, "forget the saved access key and search history")
	flag.Parse()

	if showVersion {
		fmt.Printf("darkroom %s\n", Version)
		return
	}

	if reset {
		if err := service.NewSessionService(configPath).Reset(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("✓ Access key and search history cleared.")
		return
	}

	query := strings.TrimSpace(strings.Join(flag.Args(), " "))

	if err := run(configPath, query); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, query string) error {
	cfg, err := adapter.LoadConfigFrom(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, closer, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	} else {
		defer closer.Close()
	}
	slog.SetDefault(logger)

	logger.Info("starting darkroom", "version", Version)

	if !cfg.IsConfigured() {
		return runSetupFlow(cfg, configPath, logger)
	}

	repo, err := source.NewClientFromConfig(cfg, Version, logger)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	historyStore, err := store.NewHistoryStore(cfg.HistoryPath())
	if err != nil {
		// History is optional; keep it in memory for this session
		logger.Warn("history store unavailable", "dir", cfg.HistoryPath(), "error", err)
		historyStore, _ = store.NewHistoryStore("")
	}
	defer historyStore.Close()

	historySvc := service.NewHistoryService(historyStore, cfg.History.MaxEntries, logger)
	searchSvc := service.NewSearchService(repo, historySvc, logger)
	viewer := adapter.NewViewer(cfg.Viewer.Command, cfg.Viewer.Args, logger)

	if query == "" {
		query = cfg.Search.InitialQuery
	}

	model := tui.NewModel(searchSvc, viewer, tui.Options{
		InitialQuery: query,
		GridColumns:  cfg.UI.GridColumns,
		Timeout:      cfg.API.Timeout,
		History:      historySvc,
		Logger:       logger,
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// runSetupFlow asks for an access key, checks it against the API and saves it
func runSetupFlow(cfg *adapter.Config, configPath string, logger *slog.Logger) error {
	fmt.Println()
	fmt.Println("Welcome to darkroom!")
	fmt.Println()
	fmt.Println("An Unsplash access key is required. Create one at https://unsplash.com/developers")
	fmt.Println()

	// Shared across attempts; piped input is buffered ahead of each prompt
	stdin := bufio.NewReader(os.Stdin)

	var key string
	for {
		input, err := readAccessKey(stdin, "Access key: ")
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		key = strings.TrimSpace(input)

		if key == "" {
			fmt.Println("Access key cannot be empty. Please try again.")
			continue
		}

		cfg.API.AccessKey = key
		err = verifyWithSpinner(cfg, logger)
		if errors.Is(err, domain.ErrAuthFailed) {
			fmt.Println("✗ The API rejected this key. Please try again.")
			fmt.Println()
			continue
		}
		if err != nil {
			// Key may still be fine; the API could just be unreachable
			fmt.Printf("! Could not verify key: %v\n", err)
		}
		break
	}

	if err := adapter.SaveConfig(cfg, configPath); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	fmt.Println("Run darkroom again to start searching.")

	return nil
}

// readAccessKey reads a line without echo when stdin is a terminal, else from r
func readAccessKey(r *bufio.Reader, prompt string) (string, error) {
	fmt.Print(prompt)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Println()
		return string(b), err
	}

	return readLine(r)
}

// readLine returns the next line from r, accepting a final line without a newline
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return line, nil
}

// verifyWithSpinner runs a one-photo search with a visual spinner
func verifyWithSpinner(cfg *adapter.Config, logger *slog.Logger) error {
	repo, err := source.NewClientFromConfig(cfg, Version, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	resultCh := make(chan error, 1)
	go func() {
		_, err := repo.SearchPhotos(ctx, domain.CategoryNature.String(), 1, 1)
		resultCh <- err
	}()

	frame := 0
	fmt.Printf("\r%s Checking access key...", styles.SpinnerFrames[frame])

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case err := <-resultCh:
			fmt.Print(clearSpinnerLine)
			if err == nil {
				fmt.Println("✓ Access key works")
			}
			return err

		case <-ticker.C:
			frame++
			fmt.Printf("\r%s Checking access key...", styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])

		case <-ctx.Done():
			fmt.Print(clearSpinnerLine)
			return fmt.Errorf("verification timed out")
		}
	}
}
