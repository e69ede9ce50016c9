package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"fundflow/internal/adapter/events"
	"fundflow/internal/adapter/state"
	"fundflow/internal/crowdfund"
	"fundflow/internal/domain"
	"fundflow/internal/infra"
	"fundflow/internal/middleware"
)

const usage = `usage: fundflowctl [-store uri] [-token jwt | -as address] [-o text|json|yaml] <command> [args]

commands:
  create -title T [-description D] -goal N
  donate <campaign-id> <amount>
  get <campaign-id>
  list [-expand]
  close <campaign-id>
  stats
  token [-ttl 24h]`

func main() {
	infra.LoadDotEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		stop()
		exitWithError(err)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("fundflowctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprintln(stderr, usage) }

	var (
		storeFlag   string
		asFlag      string
		tokenFlag   string
		outputFlag  string
		langFlag    string
		verboseFlag bool
	)
	fs.StringVar(&storeFlag, "store", envOr("FUNDFLOW_STORE", "sqlite:./fundflow.db"), "state store: memory, sqlite:<path> or a postgres:// URL")
	fs.StringVar(&asFlag, "as", os.Getenv("FUNDFLOW_AS"), "address acting as the caller, trusted as given")
	fs.StringVar(&tokenFlag, "token", os.Getenv("FUNDFLOW_TOKEN"), "bearer token; the caller is its verified subject")
	fs.StringVar(&outputFlag, "o", "text", "output format: text, json or yaml")
	fs.StringVar(&langFlag, "lang", "en", "locale used to group digits in text output")
	fs.BoolVar(&verboseFlag, "v", false, "log engine activity and published events to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}

	rest := fs.Args()
	if len(rest) == 0 {
		return errors.New(usage)
	}
	format := strings.ToLower(strings.TrimSpace(outputFlag))
	switch format {
	case formatText, formatJSON, formatYAML:
	default:
		return fmt.Errorf("unsupported output format %q", outputFlag)
	}
	tag, err := language.Parse(langFlag)
	if err != nil {
		return fmt.Errorf("invalid -lang: %w", err)
	}
	cmd, cmdArgs := rest[0], rest[1:]
	if cmd == "token" {
		return runToken(cmdArgs, domain.Address(strings.TrimSpace(asFlag)), stdout)
	}
	caller, err := resolveCaller(asFlag, tokenFlag)
	if err != nil {
		return err
	}

	logger := zerolog.Nop()
	if verboseFlag {
		logger = infra.NewLoggerTo("cli", stderr).With().Str("cmd", "fundflowctl").Logger()
	}

	cfg := &infra.Config{}
	if err := state.ApplyStoreURI(cfg, storeFlag); err != nil {
		return err
	}
	store, closeStore, err := state.Open(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer closeStore()

	c := &cli{
		svc: crowdfund.NewService(store, crowdfund.ContextAuthenticator{},
			crowdfund.WithLogger(logger),
			crowdfund.WithEventSink(events.NewLogSink(logger)),
		),
		out:     stdout,
		format:  format,
		printer: message.NewPrinter(tag),
	}
	ctx = crowdfund.WithInvoker(ctx, caller)

	switch cmd {
	case "create":
		return c.create(ctx, cmdArgs)
	case "donate":
		return c.donate(ctx, cmdArgs)
	case "get":
		return c.get(ctx, cmdArgs)
	case "list":
		return c.list(ctx, cmdArgs)
	case "close":
		return c.close(ctx, cmdArgs)
	case "stats":
		return c.stats(ctx)
	default:
		return fmt.Errorf("unknown command %q\n%s", cmd, usage)
	}
}

type cli struct {
	svc     *crowdfund.Service
	out     io.Writer
	format  string
	printer *message.Printer
}

func (c *cli) create(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	title := fs.String("title", "", "campaign title")
	description := fs.String("description", "", "campaign description")
	goal := fs.Int64("goal", 0, "funding goal (> 0)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := c.svc.CreateCampaign(ctx, *title, *description, domain.Amount(*goal))
	if err != nil {
		return err
	}
	return c.render(map[string]any{"campaign_id": id}, func(w io.Writer) {
		fmt.Fprintf(w, "created campaign %d\n", id)
	})
}

func (c *cli) donate(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: donate <campaign-id> <amount>")
	}
	id, err := parseCampaignID(args[0])
	if err != nil {
		return err
	}
	amount, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", args[1], err)
	}
	raised, err := c.svc.Donate(ctx, id, domain.Amount(amount))
	if err != nil {
		return err
	}
	return c.render(map[string]any{"campaign_id": id, "raised": raised}, func(w io.Writer) {
		c.printer.Fprintf(w, "campaign %s raised %d\n", fmt.Sprint(id), int64(raised))
	})
}

func (c *cli) get(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: get <campaign-id>")
	}
	id, err := parseCampaignID(args[0])
	if err != nil {
		return err
	}
	campaign, err := c.svc.GetCampaign(ctx, id)
	if err != nil {
		return err
	}
	view := newCampaignView(campaign)
	return c.render(view, func(w io.Writer) { c.writeCampaign(w, view) })
}

func (c *cli) list(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	expand := fs.Bool("expand", false, "print full campaign records")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !*expand {
		ids, err := c.svc.ListCampaigns(ctx)
		if err != nil {
			return err
		}
		return c.render(map[string]any{"campaign_ids": ids}, func(w io.Writer) {
			for _, id := range ids {
				fmt.Fprintln(w, id)
			}
		})
	}
	campaigns, err := c.svc.ListCampaignDetails(ctx)
	if err != nil {
		return err
	}
	views := make([]campaignView, 0, len(campaigns))
	for _, campaign := range campaigns {
		views = append(views, newCampaignView(campaign))
	}
	return c.render(views, func(w io.Writer) {
		for _, v := range views {
			c.writeCampaignLine(w, v)
		}
	})
}

func (c *cli) close(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: close <campaign-id>")
	}
	id, err := parseCampaignID(args[0])
	if err != nil {
		return err
	}
	if err := c.svc.CloseCampaign(ctx, id); err != nil {
		return err
	}
	return c.render(map[string]any{"campaign_id": id, "state": domain.CampaignStateClosed}, func(w io.Writer) {
		fmt.Fprintf(w, "campaign %d closed\n", id)
	})
}

func (c *cli) stats(ctx context.Context) error {
	stats, err := c.svc.Stats(ctx)
	if err != nil {
		return err
	}
	return c.render(stats, func(w io.Writer) {
		fmt.Fprintf(w, "campaigns: %d (%d active)\n", stats.TotalCampaigns, stats.ActiveCampaigns)
		c.printer.Fprintf(w, "raised:    %d\n", int64(stats.TotalRaised))
	})
}

// resolveCaller picks the acting address. A token is verified against
// JWT_SECRET and its subject wins; -as alone is taken on trust, as for any
// operator holding direct access to the store.
func resolveCaller(as, token string) (domain.Address, error) {
	as, token = strings.TrimSpace(as), strings.TrimSpace(token)
	if token == "" {
		return domain.Address(as), nil
	}
	claims, err := middleware.VerifyJWT(os.Getenv("JWT_SECRET"), envOr("JWT_ISSUER", "fundflow"), token)
	if err != nil {
		return "", err
	}
	if as != "" && as != claims.Subject {
		return "", fmt.Errorf("-as %q does not match token subject %q", as, claims.Subject)
	}
	return domain.Address(claims.Subject), nil
}

func runToken(args []string, caller domain.Address, out io.Writer) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	ttl := fs.Duration("ttl", 24*time.Hour, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if caller == "" {
		return errors.New("-as is required to mint a token")
	}
	token, err := middleware.SignJWT(os.Getenv("JWT_SECRET"), envOr("JWT_ISSUER", "fundflow"), caller, *ttl)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, token)
	return nil
}

func parseCampaignID(raw string) (domain.CampaignID, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid campaign id %q", raw)
	}
	return domain.CampaignID(n), nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
