// Command rotaportal-admin is the operator CLI for the route video portal.
// It covers the database lifecycle (migrate, reset, seed) and voucher
// management for the access gate.
package main

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/srl-logistica/rotaportal/config"
	redisadapter "github.com/srl-logistica/rotaportal/internal/adapters/redis"
	"github.com/srl-logistica/rotaportal/internal/bootstrap"
	"github.com/srl-logistica/rotaportal/internal/data"
	"github.com/srl-logistica/rotaportal/internal/data/pgxutil"
	"github.com/srl-logistica/rotaportal/internal/devseed"
	"github.com/srl-logistica/rotaportal/internal/ports"
	"github.com/srl-logistica/rotaportal/internal/service"
	"github.com/srl-logistica/rotaportal/internal/util"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
}

const (
	defaultCommandTimeout = 5 * time.Minute
	maxIssueBatch         = 100
)

func main() {
	logger := bootstrap.InitLogger()

	if len(os.Args) < 2 {
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			logger.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	cmdCtx := &commandContext{
		Ctx:    context.Background(),
		Logger: logger,
		Config: cfg,
	}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		logger.ErrorContext(cmdCtx.Ctx, "command failed", "command", cmdName, "error", runErr)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func commands() map[string]command {
	return map[string]command{
		"migrate": {
			name:        "migrate",
			description: "Run database migrations",
			run:         runMigrate,
		},
		"db-reset": {
			name:        "db-reset",
			description: "Drop the database schema, run migrations, and optionally seed data",
			run:         runDBReset,
		},
		"db-seed": {
			name:        "db-seed",
			description: "Run database migrations and seed the stock video catalog",
			run:         runDBSeed,
		},
		"issue-voucher": {
			name:        "issue-voucher",
			description: "Issue one or more single-use access vouchers",
			run:         runIssueVoucher,
		},
		"list-vouchers": {
			name:        "list-vouchers",
			description: "List unredeemed access vouchers",
			run:         runListVouchers,
		},
		"revoke-voucher": {
			name:        "revoke-voucher",
			description: "Revoke an unredeemed access voucher by code",
			run:         runRevokeVoucher,
		},
	}
}

func printUsage() error {
	if err := writef(os.Stdout, "Usage: rotaportal-admin <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(os.Stdout, "Available commands:\n"); err != nil {
		return err
	}
	for _, c := range commands() {
		if err := writef(os.Stdout, "  %-18s %s\n", c.name, c.description); err != nil {
			return err
		}
	}
	return nil
}

type migrateOptions struct {
	Timeout time.Duration
}

type dbResetOptions struct {
	Timeout     time.Duration
	Yes         bool
	Seed        bool
	AllowRemote bool
}

type dbSeedOptions struct {
	Timeout     time.Duration
	AllowRemote bool
}

type issueOptions struct {
	Count   int
	Timeout time.Duration
}

type revokeOptions struct {
	Code    string
	Timeout time.Duration
}

func runMigrate(cmdCtx *commandContext, args []string) error {
	opts, err := parseMigrateFlags(args)
	if err != nil {
		return err
	}

	return withDatabase(cmdCtx, opts.Timeout, func(ctx context.Context, db *sql.DB) error {
		cmdCtx.Logger.Info("running database migrations")
		if migrateErr := data.RunMigrations(ctx, db); migrateErr != nil {
			return fmt.Errorf("run migrations: %w", migrateErr)
		}
		cmdCtx.Logger.Info("migrations completed successfully")
		return nil
	})
}

func runDBReset(cmdCtx *commandContext, args []string) error {
	opts, err := parseDBResetFlags(args)
	if err != nil {
		return err
	}

	if guardErr := guardRemoteHost(cmdCtx, opts.AllowRemote); guardErr != nil {
		return guardErr
	}

	target := fmt.Sprintf(
		"database %q on %s:%d",
		cmdCtx.Config.Postgres.Name,
		cmdCtx.Config.Postgres.Host,
		cmdCtx.Config.Postgres.Port,
	)
	if confirmErr := confirmAction(opts.Yes, "reset database schema", target); confirmErr != nil {
		return confirmErr
	}

	return withDatabase(cmdCtx, opts.Timeout, func(ctx context.Context, db *sql.DB) error {
		cmdCtx.Logger.Info("dropping public schema", "database", cmdCtx.Config.Postgres.Name)
		if resetErr := resetDatabase(ctx, db, &cmdCtx.Config.Postgres, cmdCtx.Logger); resetErr != nil {
			return resetErr
		}

		cmdCtx.Logger.Info("re-running database migrations")
		if migrateErr := data.RunMigrations(ctx, db); migrateErr != nil {
			return fmt.Errorf("run migrations: %w", migrateErr)
		}

		if opts.Seed {
			cmdCtx.Logger.Info("seeding stock catalog after reset")
			if seedErr := devseed.Run(ctx, db, cmdCtx.Logger); seedErr != nil {
				return fmt.Errorf("seed data: %w", seedErr)
			}
		}

		cmdCtx.Logger.Info("database reset completed successfully")
		return nil
	})
}

func runDBSeed(cmdCtx *commandContext, args []string) error {
	opts, err := parseDBSeedFlags(args)
	if err != nil {
		return err
	}

	if guardErr := guardRemoteHost(cmdCtx, opts.AllowRemote); guardErr != nil {
		return guardErr
	}

	return withDatabase(cmdCtx, opts.Timeout, func(ctx context.Context, db *sql.DB) error {
		cmdCtx.Logger.Info("ensuring database migrations are current")
		if migrateErr := data.RunMigrations(ctx, db); migrateErr != nil {
			return fmt.Errorf("run migrations: %w", migrateErr)
		}

		cmdCtx.Logger.Info("seeding stock video catalog")
		if seedErr := devseed.Run(ctx, db, cmdCtx.Logger); seedErr != nil {
			return fmt.Errorf("seed data: %w", seedErr)
		}

		cmdCtx.Logger.Info("database seeding completed successfully")
		return nil
	})
}

func runIssueVoucher(cmdCtx *commandContext, args []string) error {
	opts, err := parseIssueFlags(args)
	if err != nil {
		return err
	}

	return withVoucherService(cmdCtx, opts.Timeout, func(ctx context.Context, vouchers *service.VoucherService) error {
		for i := 0; i < opts.Count; i++ {
			v, issueErr := vouchers.Issue(ctx)
			if issueErr != nil {
				return fmt.Errorf("issue voucher: %w", issueErr)
			}
			if writeErr := writef(os.Stdout, "%s\n", v.Code); writeErr != nil {
				return fmt.Errorf("print voucher code: %w", writeErr)
			}
		}
		return nil
	})
}

func runListVouchers(cmdCtx *commandContext, args []string) error {
	opts, err := parseTimeoutFlags("list-vouchers", args)
	if err != nil {
		return err
	}

	return withVoucherService(cmdCtx, opts.Timeout, func(ctx context.Context, vouchers *service.VoucherService) error {
		list, listErr := vouchers.List(ctx)
		if listErr != nil {
			return fmt.Errorf("list vouchers: %w", listErr)
		}

		if len(list) == 0 {
			return writef(os.Stdout, "No unredeemed vouchers.\n")
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		if writeErr := writef(tw, "CODE\tCREATED\tEXPIRES\tSHELF LIFE\n"); writeErr != nil {
			return fmt.Errorf("print voucher header: %w", writeErr)
		}
		for _, v := range list {
			if writeErr := writef(
				tw,
				"%s\t%s\t%s\t%s\n",
				v.Code,
				v.CreatedAt.Local().Format(time.RFC3339),
				v.ExpiresAt.Local().Format(time.RFC3339),
				util.FormatTTL(time.Until(v.ExpiresAt)),
			); writeErr != nil {
				return fmt.Errorf("print voucher row: %w", writeErr)
			}
		}
		if flushErr := tw.Flush(); flushErr != nil {
			return fmt.Errorf("flush voucher table: %w", flushErr)
		}
		return writef(os.Stdout, "\nTotal: %d\n", len(list))
	})
}

func runRevokeVoucher(cmdCtx *commandContext, args []string) error {
	opts, err := parseRevokeFlags(args)
	if err != nil {
		return err
	}

	return withVoucherService(cmdCtx, opts.Timeout, func(ctx context.Context, vouchers *service.VoucherService) error {
		removed, revokeErr := vouchers.Revoke(ctx, opts.Code)
		if revokeErr != nil {
			return fmt.Errorf("revoke voucher: %w", revokeErr)
		}
		if !removed {
			return fmt.Errorf("voucher %q not found (already redeemed, revoked, or never issued)", opts.Code)
		}
		return writef(os.Stdout, "Revoked %s\n", strings.ToUpper(strings.TrimSpace(opts.Code)))
	})
}

func parseMigrateFlags(args []string) (migrateOptions, error) {
	return parseTimeoutFlags("migrate", args)
}

func parseTimeoutFlags(name string, args []string) (migrateOptions, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := migrateOptions{Timeout: defaultCommandTimeout}
	fs.DurationVar(&opts.Timeout, "timeout", defaultCommandTimeout, "Maximum duration to wait for the command to complete")

	if err := fs.Parse(args); err != nil {
		return migrateOptions{}, err
	}
	if opts.Timeout <= 0 {
		return migrateOptions{}, errors.New("--timeout must be greater than zero")
	}
	return opts, nil
}

func parseDBResetFlags(args []string) (dbResetOptions, error) {
	fs := flag.NewFlagSet("db-reset", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := dbResetOptions{Timeout: defaultCommandTimeout}
	fs.DurationVar(&opts.Timeout, "timeout", defaultCommandTimeout, "Maximum duration to wait for reset operations to complete")
	fs.BoolVar(&opts.Yes, "yes", false, "Skip confirmation prompt")
	fs.BoolVar(&opts.Seed, "seed", false, "Seed the stock video catalog after reset completes")
	fs.BoolVar(&opts.AllowRemote, "allow-remote", false, "Permit running against database hosts that do not look local")

	if err := fs.Parse(args); err != nil {
		return dbResetOptions{}, err
	}
	if opts.Timeout <= 0 {
		return dbResetOptions{}, errors.New("--timeout must be greater than zero")
	}
	return opts, nil
}

func parseDBSeedFlags(args []string) (dbSeedOptions, error) {
	fs := flag.NewFlagSet("db-seed", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := dbSeedOptions{Timeout: defaultCommandTimeout}
	fs.DurationVar(&opts.Timeout, "timeout", defaultCommandTimeout, "Maximum duration to wait for seeding to complete")
	fs.BoolVar(&opts.AllowRemote, "allow-remote", false, "Permit running against database hosts that do not look local")

	if err := fs.Parse(args); err != nil {
		return dbSeedOptions{}, err
	}
	if opts.Timeout <= 0 {
		return dbSeedOptions{}, errors.New("--timeout must be greater than zero")
	}
	return opts, nil
}

func parseIssueFlags(args []string) (issueOptions, error) {
	fs := flag.NewFlagSet("issue-voucher", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := issueOptions{Count: 1, Timeout: defaultCommandTimeout}
	fs.IntVar(&opts.Count, "n", 1, "Number of vouchers to issue")
	fs.DurationVar(&opts.Timeout, "timeout", defaultCommandTimeout, "Maximum duration to wait for issuance to complete")

	if err := fs.Parse(args); err != nil {
		return issueOptions{}, err
	}
	if opts.Count < 1 || opts.Count > maxIssueBatch {
		return issueOptions{}, fmt.Errorf("-n must be between 1 and %d", maxIssueBatch)
	}
	if opts.Timeout <= 0 {
		return issueOptions{}, errors.New("--timeout must be greater than zero")
	}
	return opts, nil
}

func parseRevokeFlags(args []string) (revokeOptions, error) {
	fs := flag.NewFlagSet("revoke-voucher", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := revokeOptions{Timeout: defaultCommandTimeout}
	fs.DurationVar(&opts.Timeout, "timeout", defaultCommandTimeout, "Maximum duration to wait for revocation to complete")

	if err := fs.Parse(args); err != nil {
		return revokeOptions{}, err
	}
	if fs.NArg() != 1 {
		return revokeOptions{}, errors.New("usage: revoke-voucher [flags] <code>")
	}
	opts.Code = fs.Arg(0)
	if opts.Timeout <= 0 {
		return revokeOptions{}, errors.New("--timeout must be greater than zero")
	}
	return opts, nil
}

func withDatabase(
	cmdCtx *commandContext,
	timeout time.Duration,
	f func(context.Context, *sql.DB) error,
) error {
	ctx, stop := signal.NotifyContext(cmdCtx.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	db, err := bootstrap.ConnectDB(bootstrap.DatabaseConfig{
		DBConfig: cmdCtx.Config.Postgres,
		Logger:   cmdCtx.Logger,
	})
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			cmdCtx.Logger.Warn("db close failed", "error", closeErr)
		}
	}()

	return f(ctx, db)
}

// withVoucherService wires a VoucherService over live connections. Redis is
// optional here: voucher mutations publish a refresh signal when the
// broadcaster is available, but the CLI still works without Redis running.
func withVoucherService(
	cmdCtx *commandContext,
	timeout time.Duration,
	f func(context.Context, *service.VoucherService) error,
) error {
	return withDatabase(cmdCtx, timeout, func(ctx context.Context, db *sql.DB) error {
		var broadcast ports.Broadcaster
		rdb, redisErr := bootstrap.ConnectRedis(bootstrap.DatabaseConfig{
			RedisConfig: cmdCtx.Config.Redis,
			Logger:      cmdCtx.Logger,
		})
		if redisErr != nil {
			cmdCtx.Logger.Warn("redis unavailable; connected portals will not refresh", "error", redisErr)
		} else {
			broadcast = redisadapter.NewBroadcaster(rdb)
			defer func() {
				if closeErr := rdb.Close(); closeErr != nil {
					cmdCtx.Logger.Warn("redis close failed", "error", closeErr)
				}
			}()
		}

		vouchers := service.NewVoucherService(service.VoucherServiceOptions{
			Repo:      data.NewVoucherRepo(db),
			Broadcast: broadcast,
			Config:    cmdCtx.Config.Access,
		})
		return f(ctx, vouchers)
	})
}

func guardRemoteHost(cmdCtx *commandContext, allow bool) error {
	if !isLikelyRemoteHost(cmdCtx.Config.Postgres.Host) {
		return nil
	}
	if !allow {
		return fmt.Errorf(
			"refusing to run against potentially remote database host %q; re-run with --allow-remote if this is intentional",
			cmdCtx.Config.Postgres.Host,
		)
	}
	return nil
}

func resetDatabase(ctx context.Context, db *sql.DB, cfg *config.DBConfig, logger *slog.Logger) error {
	statements := []string{
		"DROP SCHEMA public CASCADE",
		"CREATE SCHEMA public",
		"GRANT ALL ON SCHEMA public TO public",
	}
	if user := strings.TrimSpace(cfg.User); user != "" && !strings.EqualFold(user, "public") {
		statements = append(statements, "GRANT ALL ON SCHEMA public TO "+quoteIdentifier(user))
	}

	// Schema DDL is transactional in Postgres, so the reset is all or nothing.
	return pgxutil.WithPgxTx(ctx, db, pgxutil.TxConfig{
		Fn: func(tx pgx.Tx) error {
			for _, stmt := range statements {
				if logger != nil {
					logger.DebugContext(ctx, "executing reset statement", "sql", stmt)
				}
				if _, err := tx.Exec(ctx, stmt); err != nil {
					return fmt.Errorf("exec %q: %w", stmt, err)
				}
			}
			return nil
		},
	})
}

func quoteIdentifier(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func isLikelyRemoteHost(host string) bool {
	h := strings.ToLower(strings.TrimSpace(host))
	if h == "" {
		return false
	}
	if h == "localhost" || h == "127.0.0.1" || h == "::1" {
		return false
	}
	if strings.HasSuffix(h, ".local") {
		return false
	}
	if ip := net.ParseIP(host); ip != nil {
		return !ip.IsLoopback()
	}
	return true
}

func confirmAction(yes bool, action, target string) error {
	if yes {
		return nil
	}

	if err := writef(os.Stdout, "About to %s for %s.\n", action, target); err != nil {
		return fmt.Errorf("print confirmation message: %w", err)
	}
	if err := writef(os.Stdout, "Continue? [y/N]: "); err != nil {
		return fmt.Errorf("print confirmation prompt: %w", err)
	}

	reader := bufio.NewReader(os.Stdin)
	resp, err := reader.ReadString('\n')
	if err != nil {
		return errors.New("aborted by user")
	}
	resp = strings.ToLower(strings.TrimSpace(resp))
	if resp == "y" || resp == "yes" {
		return nil
	}
	return errors.New("aborted by user")
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}
