package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/pr1vateer/libretictactoe/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func testConfig(strategy string) config.Config {
	cfg := config.Default()
	cfg.Strategy = strategy
	cfg.Seed = 3
	return cfg
}

func TestInteractiveWin(t *testing.T) {
	out := new(bytes.Buffer)
	err := run(context.Background(), testConfig("none"), options{
		in:     strings.NewReader("1 1\n1 1\nfoo\n1 2\n4 1\n1 3\nn\n"),
		out:    out,
		logger: zerolog.Nop(),
	})
	require.NoError(t, err)
	s := out.String()
	require.Contains(t, s, "cell taken")
	require.Contains(t, s, `invalid input "foo"`)
	require.Contains(t, s, `invalid input "4 1"`)
	require.Contains(t, s, "1 X X X\n")
	require.Contains(t, s, "You won\n")
	require.Contains(t, s, "play again? [y/N]: ")
}

func TestInteractivePlayAgain(t *testing.T) {
	out := new(bytes.Buffer)
	err := run(context.Background(), testConfig("none"), options{
		in:     strings.NewReader("1 1\n2 2\n3 3\ny\n2 2\n"),
		out:    out,
		logger: zerolog.Nop(),
	})
	require.NoError(t, err)
	s := out.String()
	require.Equal(t, 1, strings.Count(s, "You won"))
	// fresh board after the rematch
	require.Contains(t, s, "y/N]: "+"  1 2 3\n1 . . .\n2 . . .\n3 . . .\n")
	require.Equal(t, 1, strings.Count(s, "1 . . .\n2 . X .\n3 . . .\n"))
}

func TestInteractiveAI(t *testing.T) {
	out := new(bytes.Buffer)
	err := run(context.Background(), testConfig("random"), options{
		in:     strings.NewReader("2 2\n"),
		out:    out,
		logger: zerolog.Nop(),
		json:   true,
	})
	require.NoError(t, err)
	sc := bufio.NewScanner(out)
	var moves []int
	for sc.Scan() {
		line := sc.Text()
		if i := strings.Index(line, "{"); i >= 0 {
			var v struct {
				Cells  []string `json:"cells"`
				Status string   `json:"status"`
				Moves  int      `json:"moves"`
			}
			require.NoError(t, json.Unmarshal([]byte(line[i:]), &v))
			require.Equal(t, "running", v.Status)
			moves = append(moves, v.Moves)
			if v.Moves == 2 {
				require.Equal(t, "X", v.Cells[4])
				require.Equal(t, 1, count(v.Cells, "O"))
			}
		}
	}
	require.Equal(t, []int{0, 2}, moves)
}

func count(v []string, s string) int {
	n := 0
	for _, c := range v {
		if c == s {
			n++
		}
	}
	return n
}

func TestSelfPlay(t *testing.T) {
	out := new(bytes.Buffer)
	err := run(context.Background(), testConfig("random"), options{
		count:  20,
		out:    out,
		logger: zerolog.Nop(),
	})
	require.NoError(t, err)
	var games, won, lost, draw int
	_, err = fmt.Sscanf(out.String(), "games: %d won: %d lost: %d draw: %d\n", &games, &won, &lost, &draw)
	require.NoError(t, err)
	require.Equal(t, 20, games)
	require.Equal(t, 20, won+lost+draw)
}

func TestParseMove(t *testing.T) {
	tests := []struct {
		line string
		exp  int
		err  bool
	}{
		{"1 1", 0, false},
		{"1 2", 1, false},
		{" 3   3 ", 8, false},
		{"2 1", 3, false},
		{"0 1", -1, true},
		{"1 4", -1, true},
		{"1", -1, true},
		{"a b", -1, true},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			cell, err := parseMove(tt.line)
			if tt.err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.exp, cell)
		})
	}
}
