package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/pr1vateer/libretictactoe/config"
	"github.com/pr1vateer/libretictactoe/xoxo"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

func main() {
	count := flag.Int("count", 0, "self play game count (0 for interactive)")
	asJSON := flag.Bool("json", false, "print states as json")
	cfg, err := config.Parse(flag.CommandLine, os.Args[1:])
	if err == nil {
		err = run(context.Background(), cfg, options{
			count:  *count,
			json:   *asJSON,
			in:     os.Stdin,
			out:    os.Stdout,
			logger: cfg.NewLogger(os.Stderr),
		})
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	count  int
	json   bool
	in     io.Reader
	out    io.Writer
	logger zerolog.Logger
}

func run(ctx context.Context, cfg config.Config, opts options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		// catch signals, canceling context to cause cleanup
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(ch)
		select {
		case <-ctx.Done():
		case sig := <-ch:
			opts.logger.Trace().Str("sig", sig.String()).Msg("caught signal")
			cancel()
		}
		return nil
	})
	eg.Go(func() error {
		defer cancel()
		if opts.count > 0 {
			return selfPlay(ctx, cfg, opts)
		}
		return interactive(ctx, cfg, opts)
	})
	return eg.Wait()
}

func newController(cfg config.Config, r *rand.Rand, opts options) (*xoxo.Controller, error) {
	strategy, err := xoxo.StrategyByName(cfg.Strategy, rand.New(rand.NewSource(r.Int63())))
	if err != nil {
		return nil, err
	}
	return xoxo.New(
		xoxo.WithStrategy(strategy),
		xoxo.WithLogf(func(s string, v ...interface{}) {
			opts.logger.Debug().CallerSkipFrame(1).Msgf(s, v...)
		}),
	), nil
}

// selfPlay plays count games with random clicks standing in for the human.
func selfPlay(ctx context.Context, cfg config.Config, opts options) error {
	r := cfg.Rand()
	results := make(map[xoxo.Status]int)
	for i := 0; i < opts.count; i++ {
		c, err := newController(cfg, r, opts)
		if err != nil {
			return err
		}
		for c.Status() == xoxo.Running {
			if err := ctx.Err(); err != nil {
				return nil
			}
			x, y := r.Float64()*xoxo.BoardSize, r.Float64()*xoxo.BoardSize
			if err := c.OnPointerDown(xoxo.ButtonPrimary, x, y); err != nil {
				return err
			}
		}
		s := c.Snapshot()
		if opts.json {
			if err := printJSON(opts.out, &s); err != nil {
				return err
			}
		}
		opts.logger.Info().
			Int("game", i+1).
			Str("state", s.String()).
			Msg(c.Message())
		results[c.Status()]++
	}
	fmt.Fprintf(
		opts.out, "games: %d won: %d lost: %d draw: %d\n",
		opts.count, results[xoxo.Won], results[xoxo.Lost], results[xoxo.Draw],
	)
	return nil
}

func interactive(ctx context.Context, cfg config.Config, opts options) error {
	r := cfg.Rand()
	lines := make(chan string)
	go readLines(ctx, opts.in, lines)
	next := func(prompt string) (string, bool) {
		fmt.Fprint(opts.out, prompt)
		select {
		case <-ctx.Done():
			return "", false
		case line, ok := <-lines:
			return strings.TrimSpace(line), ok
		}
	}
	for {
		c, err := newController(cfg, r, opts)
		if err != nil {
			return err
		}
		for c.Status() == xoxo.Running {
			if err := show(opts, c); err != nil {
				return err
			}
			line, ok := next("move (row col): ")
			if !ok {
				return nil
			}
			cell, err := parseMove(line)
			if err != nil {
				fmt.Fprintf(opts.out, "invalid input %q: %v\n", line, err)
				continue
			}
			switch err := c.Play(cell); {
			case errors.Is(err, xoxo.ErrInvalidMove):
				fmt.Fprintln(opts.out, "cell taken")
			case err != nil:
				return err
			}
		}
		if err := show(opts, c); err != nil {
			return err
		}
		fmt.Fprintln(opts.out, c.Message())
		line, ok := next("play again? [y/N]: ")
		if !ok || !strings.EqualFold(line, "y") {
			return nil
		}
	}
}

func readLines(ctx context.Context, in io.Reader, lines chan<- string) {
	defer close(lines)
	s := bufio.NewScanner(in)
	for s.Scan() {
		select {
		case <-ctx.Done():
			return
		case lines <- s.Text():
		}
	}
}

// parseMove parses a 1-based "row col" pair into a cell index.
func parseMove(line string) (int, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return -1, fmt.Errorf("expected row and col")
	}
	var v [2]int
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return -1, err
		}
		if n < 1 || xoxo.CellsPerSide < n {
			return -1, fmt.Errorf("%w: %d", xoxo.ErrOutOfBounds, n)
		}
		v[i] = n - 1
	}
	return v[0]*xoxo.CellsPerSide + v[1], nil
}

func show(opts options, c *xoxo.Controller) error {
	s := c.Snapshot()
	if opts.json {
		return printJSON(opts.out, &s)
	}
	var sb strings.Builder
	sb.WriteString("  1 2 3\n")
	for row := 0; row < xoxo.CellsPerSide; row++ {
		sb.WriteString(strconv.Itoa(row + 1))
		for col := 0; col < xoxo.CellsPerSide; col++ {
			sb.WriteString(" " + s.Cells[row*xoxo.CellsPerSide+col].String())
		}
		sb.WriteString("\n")
	}
	_, err := io.WriteString(opts.out, sb.String())
	return err
}

func printJSON(w io.Writer, s *xoxo.Snapshot) error {
	buf, err := s.Marshal()
	if err != nil {
		return fmt.Errorf("unable to marshal state: %w", err)
	}
	_, err = w.Write(buf)
	return err
}
