package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/99minutos/auth-gateway/internal/core/domain"
)

type identifierFlags struct {
	cpf   string
	email string
}

func (f *identifierFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.cpf, "cpf", "", "CPF, formatted or digits only")
	cmd.Flags().StringVar(&f.email, "email", "", "e-mail address")
}

func (f *identifierFlags) data() map[string]string {
	d := map[string]string{}
	if f.cpf != "" {
		d["cpf"] = f.cpf
	}
	if f.email != "" {
		d["email"] = f.email
	}
	return d
}

func newRootCmd(out io.Writer) *cobra.Command {
	var (
		baseURL = envOr("AUTHGW_URL", "http://localhost:8080")
		timeout = 30 * time.Second
	)
	cl := &client{HTTP: &http.Client{Timeout: timeout}}

	root := &cobra.Command{
		Use:           "authctl",
		Short:         "Operator tool for the auth gateway",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cl.BaseURL = baseURL
		},
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&baseURL, "url", baseURL, "gateway base URL (env AUTHGW_URL)")

	root.AddCommand(deriveCmd(out), pingCmd(out, cl), signInCmd(out, cl), signUpCmd(out, cl))
	return root
}

// deriveCmd prints the username and password the gateway would send to the
// identity provider, without contacting anything.
func deriveCmd(out io.Writer) *cobra.Command {
	var (
		ids  identifierFlags
		hash string
	)
	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Show the provider username and password for an identifier",
		RunE: func(cmd *cobra.Command, args []string) error {
			hasher, err := domain.HasherByName(hash)
			if err != nil {
				return err
			}
			var (
				cpf   *domain.CPF
				email *domain.Email
			)
			if ids.cpf != "" {
				c, err := domain.NewCPF(ids.cpf)
				if err != nil {
					return err
				}
				cpf = &c
			}
			if ids.email != "" {
				e, err := domain.NewEmail(ids.email)
				if err != nil {
					return err
				}
				email = &e
			}
			acc := domain.NewAccount("", domain.RoleNone, cpf, email, hasher)
			username, kind, err := acc.Identifier()
			if err != nil {
				return err
			}
			password, err := acc.Password()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "identifier: %s\nusername:   %s\npassword:   %s\n", kind, username, password)
			return nil
		},
	}
	ids.register(cmd)
	cmd.Flags().StringVar(&hash, "hash", "md5", "password digest: md5|sha256")
	return cmd
}

func pingCmd(out io.Writer, cl *client) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Send a Ping action to the gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, out, cl, "Ping", nil)
		},
	}
}

func signInCmd(out io.Writer, cl *client) *cobra.Command {
	var ids identifierFlags
	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Sign in an existing user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if ids.cpf == "" && ids.email == "" {
				return errors.New("--cpf or --email is required")
			}
			return run(cmd, out, cl, "SignIn", ids.data())
		},
	}
	ids.register(cmd)
	return cmd
}

func signUpCmd(out io.Writer, cl *client) *cobra.Command {
	var (
		ids  identifierFlags
		name string
		role string
	)
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register a new user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if ids.cpf == "" && ids.email == "" {
				return errors.New("--cpf or --email is required")
			}
			if name == "" {
				return errors.New("--name is required")
			}
			d := ids.data()
			d["name"] = name
			d["role"] = role
			return run(cmd, out, cl, "SignUp", d)
		},
	}
	ids.register(cmd)
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&role, "role", "CUSTOMER", "CUSTOMER|ADMIN|APP")
	return cmd
}

func run(cmd *cobra.Command, out io.Writer, cl *client, action string, data any) error {
	status, body, err := cl.call(cmd.Context(), action, data)
	if err != nil {
		return err
	}
	if status/100 != 2 {
		return fmt.Errorf("%s failed: status=%d body=%s", action, status, string(body))
	}
	printBody(out, body)
	return nil
}
