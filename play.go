package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/words"
)

func playCmd() *cobra.Command {
	var phrase string
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play one game in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if phrase == "" {
				phrase = words.RandomPhrase()
			}
			_, err := playTerminal(game.New(phrase), cmd.InOrStdin(), cmd.OutOrStdout())
			return err
		},
	}
	cmd.Flags().StringVar(&phrase, "phrase", "", "phrase to guess (default: random from the pool)")
	cmd.Flags().Lookup("phrase").Hidden = true
	return cmd
}

// playTerminal runs the interactive loop until the game ends or input runs out.
func playTerminal(g *game.Game, in io.Reader, out io.Writer) (game.Status, error) {
	sc := bufio.NewScanner(in)
	next := func() (string, bool) {
		fmt.Fprint(out, "Enter your guess: ")
		if !sc.Scan() {
			return "", false
		}
		return strings.TrimSpace(sc.Text()), true
	}

	for !g.IsGameOver() {
		fmt.Fprintf(out, "%s   (tries %d/%d)\n", game.Spaced(g.DisplayPhrase()), g.Tries(), game.MaximumTries)

		text, ok := next()
		for ok && !g.IsGuessValid(text) {
			fmt.Fprintln(out, "Invalid guess entered, please try again.")
			text, ok = next()
		}
		if !ok {
			fmt.Fprintln(out)
			return g.Status(), sc.Err()
		}
		if _, err := g.Guess(text); err != nil {
			return g.Status(), err
		}
	}

	fmt.Fprintln(out, game.Spaced(g.DisplayPhrase()))
	if g.IsGameWon() {
		fmt.Fprintln(out, "Congratulations, you win!")
	} else {
		fmt.Fprintf(out, "Sorry, you lost! The phrase was %q.\n", g.Phrase())
	}
	return g.Status(), nil
}
