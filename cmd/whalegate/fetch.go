package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"whalecopy/whalegate/pkg/cli"
	"whalecopy/whalegate/pkg/config"
	"whalecopy/whalegate/pkg/normalize"
	"whalecopy/whalegate/pkg/polymarket"
	"whalecopy/whalegate/pkg/proxy"
	"whalecopy/whalegate/pkg/proxy/handlers"
	"whalecopy/whalegate/pkg/telemetry/logging"
	"whalecopy/whalegate/pkg/validation"
)

// maxBookLevels is how many price levels per side the text order book shows.
const maxBookLevels = 10

var fetchFlags struct {
	format string
}

var fetchCmd = &cobra.Command{
	Use:   "fetch <endpoint> [key=value...]",
	Short: "Call an endpoint directly",
	Long: `Validate the parameters, call the upstream API and print the normalized
response. No origin or bearer check is applied.

Examples:
  # Top ten traders
  whalegate fetch leaderboard limit=10

  # Order book as a table
  whalegate fetch orderbook tokenId=7132... --format text

  # Raw JSON for an event
  whalegate fetch event slug=us-election --format json`,
	Args:      cobra.MinimumNArgs(1),
	ValidArgs: endpointNames(),
	RunE:      runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringVarP(&fetchFlags.format, "format", "o", "json", "output format: text, json")
}

func endpointNames() []string {
	var names []string
	for _, e := range polymarket.Endpoints() {
		names = append(names, string(e))
	}
	return names
}

func runFetch(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(fetchFlags.format)
	if err != nil {
		return err
	}

	call, err := parseFetchArgs(args)
	if err != nil {
		return err
	}

	cfg, err := config.LoadClientConfig(cfgFile)
	if err != nil {
		return cli.NewConfigError(cfgFile, err)
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}
	logger, err := logging.New(&cfg.Telemetry.Logging, os.Stderr)
	if err != nil {
		return cli.NewConfigError(cfgFile, err)
	}

	client := polymarket.NewClient(cfg.Upstreams,
		polymarket.WithLogger(logger),
		polymarket.WithMaxBodyLog(cfg.Telemetry.Logging.MaxBodyLog),
	)
	normalizer := normalize.New(normalize.Options{
		CanonicalTraders: cfg.Normalize.CanonicalTraders,
		CanonicalMarkets: cfg.Normalize.CanonicalMarkets,
	})
	gateway := handlers.NewGateway(client, normalizer, handlers.WithLogger(logger))

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

	raw, err := gateway.Serve(ctx, call)
	if err != nil {
		return cli.NewCommandError("fetch", err)
	}

	out := cmd.OutOrStdout()
	if format == cli.FormatJSON {
		return cli.WriteJSON(out, raw)
	}
	return renderText(out, polymarket.Endpoint(call.Endpoint), raw)
}

// parseFetchArgs turns "<endpoint> key=value..." into a call.
func parseFetchArgs(args []string) (*proxy.Call, error) {
	call := &proxy.Call{Endpoint: args[0], Params: validation.Params{}}
	for _, arg := range args[1:] {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q: expected key=value", arg)
		}
		call.Params[key] = value
	}
	return call, nil
}

// renderText prints raw as a table for the endpoints that have a natural
// tabular form and as indented JSON otherwise.
func renderText(w io.Writer, endpoint polymarket.Endpoint, raw json.RawMessage) error {
	switch endpoint {
	case polymarket.OrderBook:
		book, err := normalize.ParseOrderBook(raw)
		if err != nil {
			return err
		}
		return renderOrderBook(w, book)

	case polymarket.Leaderboard, polymarket.Search:
		if traders, ok := normalize.ResolveTraders(raw); ok {
			return renderTraders(w, traders)
		}

	case polymarket.Markets, polymarket.Trending:
		if events, ok := normalize.ResolveEvents(raw); ok {
			return renderEvents(w, events)
		}
	}
	return cli.WriteJSON(w, raw)
}

func renderOrderBook(w io.Writer, book *normalize.OrderBook) error {
	fmt.Fprintf(w, "Market:   %s\n", book.Market)
	fmt.Fprintf(w, "Asset:    %s\n", book.AssetID)
	if bid, ok := book.BestBid(); ok {
		fmt.Fprintf(w, "Best bid: %s x %s\n", bid.Price, bid.Size)
	}
	if ask, ok := book.BestAsk(); ok {
		fmt.Fprintf(w, "Best ask: %s x %s\n", ask.Price, ask.Size)
	}
	if spread, ok := book.Spread(); ok {
		fmt.Fprintf(w, "Spread:   %s\n", spread)
	}
	if mid, ok := book.Midpoint(); ok {
		fmt.Fprintf(w, "Midpoint: %s\n", mid)
	}
	fmt.Fprintln(w)

	table := &cli.Table{Headers: []string{"BID SIZE", "BID", "ASK", "ASK SIZE"}}
	for i := 0; i < maxBookLevels && (i < len(book.Bids) || i < len(book.Asks)); i++ {
		row := make([]string, 4)
		if i < len(book.Bids) {
			row[0], row[1] = book.Bids[i].Size.String(), book.Bids[i].Price.String()
		}
		if i < len(book.Asks) {
			row[2], row[3] = book.Asks[i].Price.String(), book.Asks[i].Size.String()
		}
		table.Append(row...)
	}
	if err := table.Render(w); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nDepth: %s bid / %s ask\n", normalize.Depth(book.Bids), normalize.Depth(book.Asks))
	return err
}

func renderTraders(w io.Writer, traders []normalize.Trader) error {
	table := &cli.Table{Headers: []string{"#", "ADDRESS", "NAME", "PNL", "VOLUME"}}
	for i, t := range traders {
		rank := t.Rank
		if rank == 0 {
			rank = i + 1
		}
		table.Append(fmt.Sprint(rank), t.Address, t.Name, t.PnL.StringFixed(2), t.Volume.StringFixed(2))
	}
	return table.Render(w)
}

func renderEvents(w io.Writer, events []normalize.Event) error {
	table := &cli.Table{Headers: []string{"SLUG", "MARKETS", "VOLUME", "LIQUIDITY", "TITLE"}}
	for _, e := range events {
		table.Append(e.Slug, fmt.Sprint(len(e.Markets)), e.Volume.StringFixed(0), e.Liquidity.StringFixed(0), e.Title)
	}
	return table.Render(w)
}
