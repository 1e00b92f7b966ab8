// cmd/klondike/main.go
//
// Thin interactive host for the engine: reads configuration from the
// environment, owns one session, and translates text commands into moves.
// With KLONDIKE_RELAY_URL set it also relays applied moves to a peer and
// feeds received ones into the same session.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/cardkit/klondike/engine"
	"github.com/cardkit/klondike/internal/relay"
	"github.com/cardkit/klondike/internal/session"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	if lvl, err := logrus.ParseLevel(envOr("KLONDIKE_LOG_LEVEL", "warn")); err == nil {
		logrus.SetLevel(lvl)
	}

	seed, err := configSeed()
	if err != nil {
		fmt.Fprintf(os.Stderr, "bad KLONDIKE_SEED: %v\n", err)
		os.Exit(1)
	}
	rules, err := configRules()
	if err != nil {
		fmt.Fprintf(os.Stderr, "bad configuration: %v\n", err)
		os.Exit(1)
	}

	sess := session.New(seed, rules)

	var peer *relay.Client
	if url := os.Getenv("KLONDIKE_RELAY_URL"); url != "" {
		var token string
		if secret := os.Getenv("KLONDIKE_RELAY_SECRET"); secret != "" {
			token, err = relay.PeerToken([]byte(secret), sess.ID.String())
			if err != nil {
				fmt.Fprintf(os.Stderr, "relay: %v\n", err)
				os.Exit(1)
			}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		peer, err = relay.Dial(ctx, url, token)
		cancel()
		if err != nil {
			fmt.Fprintf(os.Stderr, "relay: %v\n", err)
			os.Exit(1)
		}
		defer peer.Close()
		go func() {
			err := peer.Listen(context.Background(), func(m engine.Move, _ uint64) {
				if _, err := sess.Propose(m); err == nil {
					render(sess)
				}
			})
			logrus.WithError(err).Info("relay listener stopped")
		}()
	}

	fmt.Printf("klondike — seed %d (commands: draw, recycle, move <card> <pile>, moves, show, new <seed>, quit)\n", seed)
	render(sess)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		var move *engine.Move
		switch fields[0] {
		case "quit", "exit":
			return

		case "show":
			render(sess)
			continue

		case "status":
			fmt.Println(sess.State())
			continue

		case "moves":
			for _, m := range sess.LegalMoves() {
				fmt.Println(" ", m)
			}
			continue

		case "new":
			if len(fields) != 2 {
				fmt.Println("usage: new <seed>")
				continue
			}
			newSeed, err := session.ParseSeed(fields[1])
			if err != nil {
				fmt.Println(err)
				continue
			}
			sess.Reset(newSeed)
			render(sess)
			continue

		case "draw":
			m := engine.DrawMove()
			move = &m

		case "recycle":
			m := engine.RecycleMove()
			move = &m

		case "move":
			m, err := parseMoveCommand(sess, fields[1:])
			if err != nil {
				fmt.Println(err)
				continue
			}
			move = &m

		default:
			fmt.Printf("unknown command %q\n", fields[0])
			continue
		}

		out, err := sess.Propose(*move)
		if err != nil {
			fmt.Println("rejected:", err)
			continue
		}
		if peer != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := peer.Send(ctx, *move, sess.Seq()); err != nil {
				logrus.WithError(err).Warn("relay send failed")
			}
			cancel()
		}
		render(sess)
		switch out.Status {
		case engine.Won:
			fmt.Println("you won!")
			return
		case engine.NoLegalMoves:
			fmt.Println("no legal moves left")
		}
	}
}

// parseMoveCommand handles "move <card> <pile>": the source pile is located
// from the card itself.
func parseMoveCommand(sess *session.Session, args []string) (engine.Move, error) {
	if len(args) != 2 {
		return engine.Move{}, fmt.Errorf("usage: move <card> <pile>, e.g. move 7H T3")
	}
	card, err := engine.ParseCard(strings.ToUpper(args[0]))
	if err != nil {
		return engine.Move{}, err
	}
	to, err := engine.ParsePile(strings.ToUpper(args[1]))
	if err != nil {
		return engine.Move{}, err
	}
	from, ok := sess.Locate(card)
	if !ok {
		return engine.Move{}, fmt.Errorf("card %s not in play", card)
	}
	return engine.NewMove(card, from, to)
}

// renderMu keeps table printouts whole when the relay listener goroutine
// renders concurrently with the command loop.
var renderMu sync.Mutex

// render prints the table: foundations and stock/waste on top, tableaus below.
func render(sess *session.Session) {
	renderMu.Lock()
	defer renderMu.Unlock()

	var tops []string
	for suit := uint8(0); suit < engine.NumFoundations; suit++ {
		views := sess.Pile(engine.Foundation(suit))
		top := "--"
		if len(views) > 0 {
			top = views[len(views)-1].String()
		}
		tops = append(tops, fmt.Sprintf("F%s:%s", engine.SuitString(suit), top))
	}
	waste := sess.Pile(engine.Waste)
	wasteTop := "--"
	if len(waste) > 0 {
		wasteTop = waste[len(waste)-1].String()
	}
	fmt.Printf("%s  S:%d  W:%s\n", strings.Join(tops, " "), len(sess.Pile(engine.Stock)), wasteTop)

	for i := uint8(0); i < engine.NumTableaus; i++ {
		var cells []string
		for _, v := range sess.Pile(engine.Tableau(i)) {
			cells = append(cells, v.String())
		}
		fmt.Printf("T%d: %s\n", i, strings.Join(cells, " "))
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// configSeed reads KLONDIKE_SEED, defaulting to the current time.
func configSeed() (uint64, error) {
	raw := os.Getenv("KLONDIKE_SEED")
	if raw == "" {
		return uint64(time.Now().UnixNano()), nil
	}
	return session.ParseSeed(raw)
}

// configRules builds the rule set from the environment.
func configRules() (engine.Rules, error) {
	rules := engine.DefaultRules()

	if raw := os.Getenv("KLONDIKE_DRAW_COUNT"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 8)
		if err != nil || n == 0 {
			return rules, fmt.Errorf("KLONDIKE_DRAW_COUNT: want a small positive integer, got %q", raw)
		}
		rules.DrawCount = uint8(n)
	}
	if raw := os.Getenv("KLONDIKE_MAX_RECYCLES"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 16)
		if err != nil {
			return rules, fmt.Errorf("KLONDIKE_MAX_RECYCLES: want an integer (0 = unlimited), got %q", raw)
		}
		rules.MaxRecycles = uint16(n)
	}
	switch strings.ToLower(os.Getenv("KLONDIKE_EMPTY_TABLEAU")) {
	case "", "kings":
		rules.EmptyTableau = engine.EmptyTableauKingsOnly
	case "any":
		rules.EmptyTableau = engine.EmptyTableauAnyCard
	default:
		return rules, fmt.Errorf("KLONDIKE_EMPTY_TABLEAU: want \"kings\" or \"any\"")
	}
	return rules, nil
}
