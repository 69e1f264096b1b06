package story

import (
	"strconv"

	"novel/internal/game"
)

// ScriptFunc is a choice action written in Go, referenced from YAML by
// name with string arguments.
type ScriptFunc func(c *game.Controller, args map[string]string) game.Outcome

type Scripts map[string]ScriptFunc

// DefaultScripts are the actions every story may reference.
func DefaultScripts() Scripts {
	return Scripts{
		"use-item": useItem,
		"notice":   notice,
		"pay":      pay,
	}
}

// useItem consumes args["item"]. On success it shows args["message"]
// and follows the choice; otherwise it shows args["missing"] and goes to
// args["else"] or stays.
func useItem(c *game.Controller, args map[string]string) game.Outcome {
	if !c.Player().UseItem(args["item"]) {
		if msg := args["missing"]; msg != "" {
			c.ShowMessage(msg)
		}
		if alt := args["else"]; alt != "" {
			return game.ProceedTo(alt)
		}
		return game.Handled()
	}
	if msg := args["message"]; msg != "" {
		c.ShowMessage(msg)
	}
	return game.Proceed()
}

// notice shows args["text"] on the top line.
func notice(c *game.Controller, args map[string]string) game.Outcome {
	c.ShowTopMessage(args["text"])
	return game.Proceed()
}

// pay takes args["coins"] if the player has them, else shows
// args["missing"] and stays.
func pay(c *game.Controller, args map[string]string) game.Outcome {
	n, err := strconv.Atoi(args["coins"])
	if err != nil || n < 0 {
		return game.Handled()
	}
	st := c.Player()
	if st.Money < n {
		if msg := args["missing"]; msg != "" {
			c.ShowMessage(msg)
		}
		return game.Handled()
	}
	st.AddMoney(-n)
	return game.Proceed()
}
