// cmd/cgsim/script.go
package main

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/opd-ai/go-freecg/pkg/engine"
	"github.com/opd-ai/go-freecg/pkg/entity"
	"github.com/opd-ai/go-freecg/pkg/level"
	"github.com/opd-ai/go-freecg/pkg/render"
)

// command is one line of a flight script: "<time> <verb> [arg]"
type command struct {
	At   float64
	Verb string
	Arg  string
	Line int
}

// parseScript reads a flight script. Blank lines and lines starting with
// '#' are skipped. Commands are returned in time order; commands at the
// same time keep their file order.
//
//	0.0 thrust on
//	0.8 turn right
//	1.0 turn none
//	2.5 key 1
//	4.0 kill
func parseScript(r io.Reader) ([]command, error) {
	var cmds []command
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 || len(fields) > 3 {
			return nil, fmt.Errorf("line %d: expected \"<time> <command> [arg]\", got %q", n, line)
		}
		at, err := strconv.ParseFloat(fields[0], 64)
		if err != nil || at < 0 {
			return nil, fmt.Errorf("line %d: bad time %q", n, fields[0])
		}
		c := command{At: at, Verb: fields[1], Line: n}
		if len(fields) == 3 {
			c.Arg = fields[2]
		}
		if err := c.check(); err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		cmds = append(cmds, c)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	sort.SliceStable(cmds, func(i, j int) bool { return cmds[i].At < cmds[j].At })
	return cmds, nil
}

func (c command) check() error {
	switch c.Verb {
	case "thrust":
		if c.Arg != "on" && c.Arg != "off" {
			return fmt.Errorf("thrust takes on or off, got %q", c.Arg)
		}
	case "turn":
		if _, ok := turns[c.Arg]; !ok {
			return fmt.Errorf("turn takes left, right or none, got %q", c.Arg)
		}
	case "key":
		i, err := strconv.Atoi(c.Arg)
		if err != nil || i < 1 || i > entity.NumKeys {
			return fmt.Errorf("key takes 1 to %d, got %q", entity.NumKeys, c.Arg)
		}
	case "kill":
		if c.Arg != "" {
			return fmt.Errorf("kill takes no argument")
		}
	default:
		return fmt.Errorf("unknown command %q", c.Verb)
	}
	return nil
}

var turns = map[string]int{"left": -1, "none": 0, "right": 1}

// pilot replays a script against a game
type pilot struct {
	game     *engine.Game
	cmds     []command
	next     int
	controls engine.Controls
}

// apply issues every command due at time t
func (p *pilot) apply(t float64) {
	kill := false
	for p.next < len(p.cmds) && p.cmds[p.next].At <= t {
		c := p.cmds[p.next]
		p.next++
		switch c.Verb {
		case "thrust":
			p.controls.Thrust = c.Arg == "on"
		case "turn":
			p.controls.Turn = turns[c.Arg]
		case "key":
			i, _ := strconv.Atoi(c.Arg)
			p.controls.ToggleKeys[i-1] = !p.controls.ToggleKeys[i-1]
		case "kill":
			kill = true
		}
	}
	p.game.Apply(p.controls)
	p.controls.ToggleKeys = [entity.NumKeys]bool{}
	if kill {
		p.game.KillShip()
	}
}

// result summarises a finished simulation
type result struct {
	Time   float64
	Status level.Status
	Frames int
	Line   string
}

// simulate steps the game every dt seconds until duration has passed or
// grace seconds after the game ended, calling r for every frame.
func simulate(game *engine.Game, cmds []command, dt, duration, grace float64, r render.Renderer) (result, error) {
	p := &pilot{game: game, cmds: cmds}
	var res result
	ended := -1.0
	for i := 1; ; i++ {
		t := float64(i) * dt
		if t > duration || (ended >= 0 && t > ended+grace) {
			break
		}
		p.apply(t)
		game.Step(t)

		var err error
		game.Do(func(l *level.Level) {
			res.Time = l.Time
			res.Status = l.Status
			err = r.Render(l)
		})
		if err != nil {
			return res, err
		}
		res.Frames++
		if ended < 0 && res.Status != level.Alive {
			ended = t
		}
	}
	game.Do(func(l *level.Level) { res.Line = render.StatusLine(l) })
	return res, nil
}
