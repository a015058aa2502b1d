package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/hangman/internal/game"
)

func TestPlayTerminalWin(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("p\n\nab\n-\nr\nx\ni\nn\nt\n")

	status, err := playTerminal(game.New("print"), in, &out)
	require.NoError(t, err)
	assert.Equal(t, game.StatusWon, status)
	assert.Equal(t, 3, strings.Count(out.String(), "Invalid guess"))
	assert.Contains(t, out.String(), "p r i n t\nCongratulations, you win!")
}

func TestPlayTerminalLoss(t *testing.T) {
	var out bytes.Buffer
	status, err := playTerminal(game.New("order"), strings.NewReader("a\nb\nc\nf\ng\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, game.StatusLost, status)
	assert.Contains(t, out.String(), `Sorry, you lost! The phrase was "order".`)
}

func TestPlayTerminalEOF(t *testing.T) {
	var out bytes.Buffer
	status, err := playTerminal(game.New("order"), strings.NewReader("o\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, game.StatusInProgress, status)
}

func TestPlayCommand(t *testing.T) {
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader("l\na\ny\ne\nr\n"))
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"play", "--phrase", "layer"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "you win")
}

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "LEADERBOARD_DRIVER", "GAME_TTL", "REDIS_DB", "GAME_SWEEP_INTERVAL", "HANDLER_TIMEOUT"} {
		t.Setenv(k, "")
	}
	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "5175", cfg.Port)
	assert.Equal(t, "sqlite", cfg.Driver)
	assert.Equal(t, time.Duration(0), cfg.GameTTL)
	assert.Equal(t, time.Minute, cfg.SweepInterval)
	assert.Equal(t, 10*time.Second, cfg.HandlerTimeout)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("LEADERBOARD_DRIVER", "redis")
	t.Setenv("GAME_TTL", "30m")
	t.Setenv("REDIS_DB", "2")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "redis", cfg.Driver)
	assert.Equal(t, 30*time.Minute, cfg.GameTTL)
	assert.Equal(t, 2, cfg.RedisDB)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Setenv("GAME_TTL", "soon")
	_, err := loadConfig()
	assert.ErrorContains(t, err, "GAME_TTL")

	t.Setenv("GAME_TTL", "-1m")
	_, err = loadConfig()
	assert.ErrorContains(t, err, "GAME_TTL")

	t.Setenv("GAME_TTL", "")
	t.Setenv("REDIS_DB", "zero")
	_, err = loadConfig()
	assert.ErrorContains(t, err, "REDIS_DB")
}
