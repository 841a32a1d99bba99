package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/noah-isme/automated-attendance/internal/apiclient"
	"github.com/noah-isme/automated-attendance/internal/auth"
	"github.com/noah-isme/automated-attendance/internal/course"
	"github.com/noah-isme/automated-attendance/internal/dashboard"
	"github.com/noah-isme/automated-attendance/internal/models"
	"github.com/noah-isme/automated-attendance/internal/roster"
	"github.com/noah-isme/automated-attendance/internal/session"
	"github.com/noah-isme/automated-attendance/pkg/config"
	"github.com/noah-isme/automated-attendance/pkg/storage"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp          = errors.New("help provided")
	errAdminRequired = errors.New("admin session required, run: attendctl login -id <admin id>")
)

type commandLine struct {
	out       io.Writer
	logger    *zap.Logger
	api       *apiclient.Client
	resolver  *auth.Resolver
	roster    *roster.Roster
	editor    *course.Editor
	collector *dashboard.Collector
	exports   *storage.LocalStorage
}

func newCommandLine(cfg config.ClientConfig, admin config.AdminConfig, out io.Writer, logger *zap.Logger) (*commandLine, error) {
	store, err := session.NewFileStore(cfg.SessionDir, logger)
	if err != nil {
		return nil, err
	}
	mirror, err := session.NewMirror(store, []byte(cfg.SessionHashKey), logger)
	if err != nil {
		return nil, err
	}
	exports, err := storage.NewLocalStorage(cfg.ExportDir)
	if err != nil {
		return nil, err
	}

	api := apiclient.New(apiclient.Config{
		BaseURL:       cfg.APIURL,
		AdminID:       admin.ID,
		AdminPassword: admin.Password,
		LoginTimeout:  cfg.LoginTimeout,
		Logger:        logger,
	})

	return &commandLine{
		out:       out,
		logger:    logger,
		api:       api,
		resolver:  auth.NewResolver(api, mirror, nil, auth.Config{AdminID: admin.ID, AdminPassword: admin.Password, Logger: logger}),
		roster:    roster.New(api, logger),
		editor:    course.NewEditor(api, logger),
		collector: dashboard.NewCollector(api, logger),
		exports:   exports,
	}, nil
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  login -id ID                      - sign in as admin, instructor or student (password is prompted)")
	fmt.Fprintln(cli.out, "  logout                            - end the current session")
	fmt.Fprintln(cli.out, "  whoami                            - show the current session")
	fmt.Fprintln(cli.out, "  users list [-q QUERY]             - list students and instructors")
	fmt.Fprintln(cli.out, "  users edit -id _ID -idnumber ID -name NAME")
	fmt.Fprintln(cli.out, "  users delete -id _ID")
	fmt.Fprintln(cli.out, "  signup -type student|instructor -idnumber ID -name NAME")
	fmt.Fprintln(cli.out, "  courses list")
	fmt.Fprintln(cli.out, "  courses save [-id _ID] -code CODE -name NAME -instructor ID [-schedule \"Monday 8:00 AM-9:30 AM\" ...]")
	fmt.Fprintln(cli.out, "  courses delete -id _ID")
	fmt.Fprintln(cli.out, "  courses sync-ids")
	fmt.Fprintln(cli.out, "  courses export -format csv|pdf|xlsx")
	fmt.Fprintln(cli.out, "  dashboard [-server] [-export csv|pdf|xlsx]")
}

func (cli *commandLine) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

// restore loads the mirrored session. Admin sessions reuse their bearer token.
func (cli *commandLine) restore() session.Snapshot {
	snap, err := cli.resolver.Restore()
	if err != nil {
		cli.logger.Warn("session restore failed", zap.Error(err))
		return session.Snapshot{}
	}
	if snap.Role == models.RoleAdmin {
		cli.api.SetToken(snap.Token)
	}
	return snap
}

func (cli *commandLine) requireAdmin() error {
	if !cli.resolver.State().IsAdmin() {
		return errAdminRequired
	}
	return nil
}

func (cli *commandLine) run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}
	cli.restore()

	switch args[1] {
	case "login":
		return cli.login(ctx, args[2:])
	case "logout":
		return cli.logout(ctx)
	case "whoami":
		return cli.whoami()
	case "users":
		return cli.users(ctx, args[2:])
	case "signup":
		return cli.signup(ctx, args[2:])
	case "courses":
		return cli.courses(ctx, args[2:])
	case "dashboard":
		return cli.dashboard(ctx, args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) promptPassword() (string, error) {
	fmt.Fprint(cli.out, "Enter password:")
	pwd, err := readPasswordFunc(int(os.Stdin.Fd()))
	fmt.Fprintln(cli.out)
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}

func (cli *commandLine) login(ctx context.Context, args []string) error {
	fs := cli.flagSet("login")
	id := fs.String("id", "", "Admin, instructor or student ID. The password will be prompted next.")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*id) == "" {
		fs.Usage()
		return errHelp
	}
	pwd, err := cli.promptPassword()
	if err != nil {
		return err
	}

	outcome, err := cli.resolver.Resolve(ctx, *id, pwd)
	if err != nil {
		return err
	}

	if outcome.Role == models.RoleAdmin {
		res, err := cli.api.AdminLogin(ctx, *id, pwd)
		if err != nil {
			cli.logger.Warn("admin token unavailable, using header credentials", zap.Error(err))
		} else if err := cli.resolver.AttachToken(res.Token); err != nil {
			cli.logger.Warn("admin token not mirrored", zap.Error(err))
		}
		fmt.Fprintln(cli.out, "Login successful: Admin")
		return nil
	}
	fmt.Fprintf(cli.out, "Login successful: %s %s (%s)\n", outcome.Role.Label(), outcome.Identity.FullName, outcome.Identity.IDNumber)
	return nil
}

// logout always clears the mirror, so leftover session files are removed
// even when nothing restored from them.
func (cli *commandLine) logout(ctx context.Context) error {
	loggedIn := cli.resolver.State().Snapshot().LoggedIn()
	if err := cli.resolver.Logout(ctx); err != nil {
		return err
	}
	cli.api.SetToken("")
	if !loggedIn {
		fmt.Fprintln(cli.out, "Not logged in")
		return nil
	}
	fmt.Fprintln(cli.out, "Logged out")
	return nil
}

func (cli *commandLine) whoami() error {
	snap := cli.resolver.State().Snapshot()
	switch {
	case !snap.LoggedIn():
		fmt.Fprintln(cli.out, "Not logged in")
	case snap.Role == models.RoleAdmin:
		fmt.Fprintln(cli.out, "Admin")
	default:
		fmt.Fprintf(cli.out, "%s %s (%s)\n", snap.Role.Label(), snap.Identity.FullName, snap.Identity.IDNumber)
	}
	return nil
}
