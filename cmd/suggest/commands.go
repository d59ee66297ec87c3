package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v2"

	"suggest/internal/config"
	"suggest/internal/eventbus"
	"suggest/internal/logging"
	"suggest/internal/search"
	"suggest/internal/ui"
)

func configService(c *cli.Context) config.ConfigService {
	if path := c.String("config"); path != "" {
		return config.NewConfigServiceAt(path)
	}
	return config.NewConfigService()
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	svc := configService(c)
	cfg, err := svc.Load()
	if err != nil {
		return nil, err
	}
	if seed := c.String("seed"); seed != "" {
		cfg.Search.SeedFile = seed
	}
	logging.Debug("config loaded", "path", svc.Path(), "backend", cfg.Search.Backend)
	return cfg, nil
}

func runCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	b, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	// Closed before the backend so pending use records land
	bus := eventbus.New()
	defer bus.Close()
	b.subscribe(bus)

	var opts []ui.Option
	if c.Bool("once") {
		opts = append(opts, ui.WithExitOnAction())
	}
	model := ui.NewModel(ctx, cfg, b, bus, opts...)
	defer model.Close()

	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if cfg.UI.Mouse {
		progOpts = append(progOpts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(model, progOpts...)
	model.SetProgram(p)

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running program: %w", err)
	}

	if text, ok := model.LastAction(); ok {
		fmt.Fprintln(c.App.Writer, text)
	}
	return nil
}

func indexCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("index needs at least one seed file", 2)
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	path := dbPath(cfg, c.String("db"))
	idx, err := search.OpenIndex(path)
	if err != nil {
		return err
	}
	defer idx.Close()

	total := 0
	for _, file := range c.Args().Slice() {
		items, err := search.LoadSeed(file)
		if err != nil {
			return err
		}
		n, err := idx.Add(c.Context, items)
		if err != nil {
			return fmt.Errorf("failed to index %s: %w", file, err)
		}
		logging.Info("indexed seed file", "file", file, "count", n)
		total += n
	}

	count, err := idx.Count(c.Context)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "indexed %d suggestions into %s (%d total)\n", total, path, count)
	return nil
}

func queryCommand(c *cli.Context) error {
	text := strings.Join(c.Args().Slice(), " ")
	if text == "" {
		return cli.Exit("query needs some text", 2)
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	limit := cfg.Search.Limit
	if c.IsSet("limit") {
		limit = c.Int("limit")
	}

	b, err := openBackend(c.Context, cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	ctx := c.Context
	if cfg.Search.Timeout.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Search.Timeout.Duration)
		defer cancel()
	}

	results, err := b.Search(ctx, text, limit)
	if err != nil {
		return err
	}
	for _, s := range results {
		if detail := s.Field("detail"); detail != "" {
			fmt.Fprintf(c.App.Writer, "%s\t%s\n", s.Title, detail)
			continue
		}
		fmt.Fprintln(c.App.Writer, s.Title)
	}
	return nil
}

func initConfigCommand(c *cli.Context) error {
	svc := configService(c)
	path := svc.Path()

	if _, err := os.Stat(path); err == nil && !c.Bool("force") {
		return cli.Exit(fmt.Sprintf("%s already exists (use --force to overwrite)", path), 1)
	}
	if err := svc.Save(config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "wrote %s\n", path)
	return nil
}
