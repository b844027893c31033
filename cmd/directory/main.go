// Command directory is a thin console client for the electrician directory.
// It composes one DataManager backend at startup: the embedded local store by
// default, or the remote API when -remote names a host.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/sparkconnect/directory/internal/core/ports"
	"github.com/sparkconnect/directory/internal/infrastructure/config"
	"github.com/sparkconnect/directory/internal/store/local"
	"github.com/sparkconnect/directory/internal/store/remote"
	"github.com/sparkconnect/directory/pkg/logger"
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: directory [-remote host] <command> [args]")
	fmt.Fprintln(os.Stderr, "\nCommands:")
	fmt.Fprintln(os.Stderr, "  list                       list all electricians")
	fmt.Fprintln(os.Stderr, "  get <id>                   show one listing")
	fmt.Fprintln(os.Stderr, "  login <identifier> [pass]  open a session")
	fmt.Fprintln(os.Stderr, "  me                         show the session user")
	fmt.Fprintln(os.Stderr, "  logout                     close the session")
	fmt.Fprintln(os.Stderr, "\nOptions:")
	fmt.Fprintln(os.Stderr, "  -remote host   talk to the REST API on host instead of the local store")
}

func main() {
	var remoteHost string
	flag.StringVar(&remoteHost, "remote", "", "API host to target instead of the local store")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	_ = godotenv.Load()
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	ctx := context.Background()

	var dm ports.DataManager
	if remoteHost != "" {
		client, err := remote.New(remote.ResolveBaseURL(remoteHost), logger.Component("remote"))
		if err != nil {
			log.Fatal().Err(err).Msg("remote backend init failed")
		}
		dm = client
	} else {
		store, err := local.Open(cfg.LocalDBPath, logger.Component("local"))
		if err != nil {
			log.Fatal().Err(err).Msg("local store open failed")
		}
		defer func() { _ = store.Close() }()
		dm = store
	}

	if err := run(ctx, dm, flag.Args(), os.Stdout); err != nil {
		log.Fatal().Err(err).Str("command", flag.Arg(0)).Msg("command failed")
	}
}

func run(ctx context.Context, dm ports.DataManager, args []string, out io.Writer) error {
	switch args[0] {
	case "list":
		listings, degraded := dm.ListAll(ctx)
		if degraded {
			fmt.Fprintln(os.Stderr, "warning: directory unavailable, showing empty result")
		}
		return printJSON(out, listings)
	case "get":
		if len(args) < 2 {
			return fmt.Errorf("get: missing id")
		}
		id, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("get: invalid id %q", args[1])
		}
		listing, err := dm.GetByID(ctx, id)
		if err != nil {
			return err
		}
		return printJSON(out, listing)
	case "login":
		if len(args) < 2 {
			return fmt.Errorf("login: missing identifier")
		}
		password := ""
		if len(args) > 2 {
			password = args[2]
		}
		user, err := dm.Login(ctx, args[1], password)
		if err != nil {
			return err
		}
		return printJSON(out, user)
	case "me":
		user, err := dm.CurrentUser(ctx)
		if err != nil {
			return err
		}
		return printJSON(out, user)
	case "logout":
		return dm.Logout(ctx)
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
