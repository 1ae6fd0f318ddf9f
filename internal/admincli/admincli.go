// Package admincli implements the interactive administrator bootstrap tool.
// It is the only way to create accounts: the HTTP API has no registration.
package admincli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/labsite/internal/common"
	"github.com/dmitrijs2005/labsite/internal/flagx"
	"github.com/dmitrijs2005/labsite/internal/server/models"
	"github.com/dmitrijs2005/labsite/internal/server/services"
)

// PasswordEnv supplies the password non-interactively.
const PasswordEnv = "ADMIN_PASSWORD"

const msgDuplicate = "Admin with this email already exists"

// AdminCreator is satisfied by *services.AccountService.
type AdminCreator interface {
	CreateAdmin(ctx context.Context, name, email, password string) (*models.Account, error)
}

// Options are answers given up front. Empty fields are prompted for.
type Options struct {
	Name     string
	Email    string
	Password string
}

// ParseOptions reads -name and -email from args, ignoring flags owned by the
// server configuration, and the password from getenv(PasswordEnv).
func ParseOptions(args []string, getenv func(string) string) (Options, error) {
	var o Options

	fs := flag.NewFlagSet("createadmin", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&o.Name, "name", "", "admin display name")
	fs.StringVar(&o.Email, "email", "", "admin email")

	if err := fs.Parse(flagx.FilterArgs(args, []string{"-name", "--name", "-email", "--email"})); err != nil {
		return Options{}, err
	}
	o.Password = getenv(PasswordEnv)
	return o, nil
}

type App struct {
	in      *bufio.Reader
	out     io.Writer
	creator AdminCreator
}

func NewApp(in io.Reader, out io.Writer, creator AdminCreator) *App {
	return &App{in: bufio.NewReader(in), out: out, creator: creator}
}

// Run collects the missing answers, validates them and creates the account.
// Problems are printed and returned.
func (a *App) Run(ctx context.Context, o Options) error {
	fmt.Fprint(a.out, "\nAdmin User Creation\n\n================================\n\n")

	account, err := a.run(ctx, o)
	if err != nil {
		fmt.Fprintf(a.out, "\nError: %s\n", describe(err))
		return err
	}

	fmt.Fprint(a.out, "\nAdmin user created successfully!\n\n")
	fmt.Fprintf(a.out, "Email: %s\n", account.Email)
	fmt.Fprintf(a.out, "Name:  %s\n", account.Name)
	fmt.Fprint(a.out, "\nPlease save these credentials securely!\n")
	return nil
}

func (a *App) run(ctx context.Context, o Options) (*models.Account, error) {
	var err error

	if o.Name == "" {
		if o.Name, err = GetSimpleText(a.in, "Enter admin name: ", a.out); err != nil {
			return nil, fmt.Errorf("read name: %w", err)
		}
	}
	if o.Email == "" {
		if o.Email, err = GetSimpleText(a.in, "Enter admin email: ", a.out); err != nil {
			return nil, fmt.Errorf("read email: %w", err)
		}
	}

	confirm := o.Password
	if o.Password == "" {
		if o.Password, err = GetPassword(a.in, "Enter admin password: ", a.out); err != nil {
			return nil, fmt.Errorf("read password: %w", err)
		}
		if confirm, err = GetPassword(a.in, "Confirm password: ", a.out); err != nil {
			return nil, fmt.Errorf("read password: %w", err)
		}
	}

	if err := services.ValidateNewAdmin(o.Name, o.Email, o.Password, confirm); err != nil {
		return nil, err
	}

	fmt.Fprint(a.out, "\nHashing password...\n")
	return a.creator.CreateAdmin(ctx, o.Name, o.Email, o.Password)
}

func describe(err error) string {
	var verr *common.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Message
	case errors.Is(err, common.ErrDuplicateEmail):
		return msgDuplicate
	default:
		return err.Error()
	}
}
