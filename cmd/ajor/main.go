package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jessevdk/go-flags"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/Decentr-net/logrus/sentry"

	"github.com/ajor-finance/ajor/internal/chain"
	"github.com/ajor-finance/ajor/internal/health"
)

// nolint:lll,gochecknoglobals
var opts = struct {
	SentryDSN string `long:"sentry.dsn" env:"SENTRY_DSN" description:"sentry dsn"`
	LogLevel  string `long:"log.level" env:"LOG_LEVEL" default:"warning" description:"Log level" choice:"debug" choice:"info" choice:"warning" choice:"error"`

	BlockchainOpts
	DBOpts
}{}

// nolint:gochecknoglobals
var commands = []struct {
	name  string
	short string
	data  flags.Commander
}{
	{"create-cooperative", "Create cooperative with initial members and tokens", &createCooperativeCommand{}},
	{"fund", "Contribute token to cooperative", &fundCommand{}},
	{"borrow", "Borrow token against collaterals", &borrowCommand{}},
	{"repay", "Repay loan", &repayCommand{}},
	{"withdraw", "Withdraw contribution and reward", &withdrawCommand{}},
	{"update-price", "Set usd price of token", &updatePriceCommand{}},
	{"increase-allowance", "Allow the contract to spend cw20 token", &increaseAllowanceCommand{}},
	{"propose", "Submit proposal", &proposeCommand{}},
	{"vote", "Vote on proposal", &voteCommand{}},
	{"withdraw-weight", "Release weight bonded to proposal", &withdrawWeightCommand{}},
	{"execute-proposal", "Apply proposal", &executeProposalCommand{}},
	{"cooperatives", "List cooperative names", &cooperativesCommand{}},
	{"cooperative", "Show cooperative", &cooperativeCommand{}},
	{"member", "Show member of cooperative", &memberCommand{}},
	{"contribution", "Show member's contributions, shares and loans", &contributionCommand{}},
	{"tokens", "List whitelisted tokens of cooperative", &tokensCommand{}},
	{"token-id", "Show numeric id of token", &tokenIDCommand{}},
	{"proposal", "Show proposal", &proposalCommand{}},
	{"history", "List journal of executed actions", &historyCommand{}},
	{"serve", "Run read-only http gateway", &serveCommand{}},
	{"status", "Check connection to the node and the journal", &statusCommand{}},
}

func main() {
	parser := flags.NewParser(&opts, flags.Default)
	parser.ShortDescription = "Ajor"
	parser.LongDescription = "Ajor is a client of the cooperative lending contract"

	for _, c := range commands {
		if _, err := parser.AddCommand(c.name, c.short, c.short, c.data); err != nil {
			logrus.WithError(err).Fatalf("failed to add %s command", c.name)
		}
	}

	parser.CommandHandler = func(command flags.Commander, args []string) error {
		setupLogger()
		return command.Execute(args)
	}

	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
			os.Exit(2)
		}

		logrus.WithError(err).Fatal("command failed")
	}
}

func setupLogger() {
	lvl, _ := logrus.ParseLevel(opts.LogLevel) // err will always be nil
	logrus.SetLevel(lvl)

	if opts.SentryDSN != "" {
		hook, err := sentry.NewHook(sentry.Options{
			Dsn:              opts.SentryDSN,
			AttachStacktrace: true,
			Release:          health.GetVersion(),
		}, logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel)

		if err != nil {
			logrus.WithError(err).Fatal("failed to init sentry")
		}

		logrus.AddHook(hook)
	} else {
		logrus.Debug("empty sentry dsn, skip sentry initialization")
	}
}

// signalContext returns context which is cancelled on termination signals.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
}

type txOutput struct {
	Hash   string `json:"hash"`
	Height int64  `json:"height"`
}

func printTx(res *chain.TxResult) error {
	return printJSON(txOutput{Hash: res.Hash, Height: res.Height})
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
