package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/DrumilPatell/sms-system/core/auth"
	"github.com/DrumilPatell/sms-system/core/session"
)

var (
	readTokenFunc = term.ReadPassword // mockable

	errHelp        = errors.New("help provided")
	errLoginFailed = errors.New("login failed")
)

type commandLine struct {
	store   *session.Store
	backend authBackend
	auth    *auth.Handler
}

// authBackend is the slice of the API client the CLI needs on top of the
// callback handler's own dependency.
type authBackend interface {
	ProviderLoginURL(ctx context.Context, provider string) (string, error)
	Logout(ctx context.Context) error
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  session                 - print the current session")
	fmt.Println("  clearsession            - clear the persisted session")
	fmt.Println("  login -provider NAME    - sign in via google|microsoft|github")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	loginCmd := flag.NewFlagSet("login", flag.ExitOnError)
	loginProvider := loginCmd.String("provider", "", "The identity provider. The callback token will be prompted next.")

	switch args[1] {
	case "session":
		return cli.showSession()
	case "clearsession":
		return cli.clearSession()
	case "login":
		if err := loginCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *loginProvider == "" {
			loginCmd.Usage()
			return errHelp
		}
		return cli.login(*loginProvider)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) showSession() error {
	sess := cli.store.Read()
	if !sess.IsAuthenticated() {
		fmt.Println("not authenticated")
		return nil
	}
	fmt.Printf("%s <%s> role=%s token len=%d\n", sess.User.FullName, sess.User.Email, sess.User.Role, len(sess.Token))
	return nil
}

func (cli *commandLine) clearSession() error {
	if err := cli.store.ClearAuth(); err != nil {
		return err
	}
	fmt.Println("session cleared")
	return nil
}

// login walks the provider flow by hand: print the authorization URL, then
// accept the token from the redirect the browser lands on and run the same
// callback handshake the web console uses.
func (cli *commandLine) login(provider string) error {
	ctx := context.Background()

	authURL, err := cli.backend.ProviderLoginURL(ctx, provider)
	if err != nil {
		return err
	}
	fmt.Printf("Open in a browser:\n  %s\n", authURL)

	fmt.Print("Paste callback token:")
	token, err := readTokenFunc(syscall.Stdin)
	fmt.Println()
	if err != nil {
		return err
	}
	if len(token) == 0 {
		return errHelp
	}

	res := cli.auth.Handle(ctx, string(token), "")
	if res.Failed() {
		fmt.Println(res.Reason)
		if res.TokenDetail != "" {
			fmt.Println(res.TokenDetail)
		}
		return errLoginFailed
	}
	fmt.Printf("signed in as %s <%s> role=%s\n", res.User.FullName, res.User.Email, res.User.Role)
	return nil
}
