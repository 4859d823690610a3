package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"os/signal"
	"slices"
	"strconv"
	"strings"
	"syscall"

	"github.com/loganlanou/ciber-client/internal/api"
	"github.com/loganlanou/ciber-client/service"
)

type app struct {
	svc *service.Service
	out io.Writer
}

type command struct {
	name  string
	usage string
	run   func(ctx context.Context, a *app, args []string) error
}

type action func(ctx context.Context, a *app, args []string) error

var commands []command

func init() {
	commands = []command{
		{"login", "login -email E -password P", runLogin},
		{"register", "register -name N -email E -password P", runRegister},
		{"logout", "logout", runLogout},
		{"whoami", "whoami", runWhoami},
		{"me", "me [-name N] [-current-password P -new-password P] [-image FILE]", runMe},
		{"users", "users list|role|delete", runUsers},
		{"projects", "projects all|mine|user|get|create|update|delete", runProjects},
		{"profiles", "profiles all|me|user|save|delete", runProfiles},
		{"schedules", "schedules all|programmer|create|delete", runSchedules},
		{"advisories", "advisories programmer|user|create|status|stats", runAdvisories},
		{"dashboard", "dashboard [-id PROGRAMMER]", runDashboard},
		{"demo-projects", "demo-projects list|mine|add|update|delete", runDemoProjects},
	}
}

func main() {
	config, err := service.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	setupLogging(config.LogLevel)

	if len(os.Args) < 2 || os.Args[1] == "help" || os.Args[1] == "-h" {
		usage(os.Stderr)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	svc := service.Open(config)

	err = run(ctx, &app{svc: svc, out: os.Stdout}, os.Args[1:])

	svc.Close()
	stop()

	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		slog.Debug("command failed", "command", os.Args[1], "error", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, a *app, args []string) error {
	for _, c := range commands {
		if c.name == args[0] {
			return c.run(ctx, a, args[1:])
		}
	}
	return fmt.Errorf("unknown command %q, run \"ciber help\"", args[0])
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: ciber <command> [arguments]")
	fmt.Fprintln(w)
	for _, c := range commands {
		fmt.Fprintf(w, "  %s\n", c.usage)
	}
}

func dispatch(ctx context.Context, a *app, group string, actions map[string]action, args []string) error {
	names := strings.Join(slices.Sorted(maps.Keys(actions)), "|")
	if len(args) == 0 {
		return fmt.Errorf("%s: missing action (%s)", group, names)
	}
	act, ok := actions[args[0]]
	if !ok {
		return fmt.Errorf("%s: unknown action %q (%s)", group, args[0], names)
	}
	return act(ctx, a, args[1:])
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}

// visited returns the names of flags set on the command line.
func visited(fs *flag.FlagSet) map[string]bool {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

func requireID(name string, id int64) error {
	if id <= 0 {
		return fmt.Errorf("-%s is required", name)
	}
	return nil
}

// sessionID returns the numeric id of the logged in user.
func (a *app) sessionID(ctx context.Context) (int64, error) {
	s, err := a.svc.API.CurrentUser(ctx)
	if err != nil {
		return 0, err
	}
	if s == nil {
		return 0, errors.New("not logged in")
	}
	id, err := strconv.ParseInt(string(s.ID), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("session id %q is not numeric", s.ID)
	}
	return id, nil
}

func (a *app) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseModality(s string) api.Modality {
	return api.Modality(strings.ToUpper(strings.TrimSpace(s)))
}
