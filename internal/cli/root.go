package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roxiler/storerating-client/internal/core/domain"
	"github.com/roxiler/storerating-client/internal/forms"
	"github.com/roxiler/storerating-client/pkg/logger"
)

// Exit codes.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitAuthExpired = 2
	ExitUsage       = 64
)

// Execute runs the CLI with args and returns the process exit code. The
// process logger lives for one invocation only.
func Execute(ctx context.Context, args []string, opts Options) int {
	defer logger.Reset()
	opts = opts.withDefaults()
	a := &app{opts: opts}

	root := newRootCommand(a)
	root.SetArgs(args)
	root.SetIn(opts.Stdin)
	root.SetOut(opts.Stdout)
	root.SetErr(opts.Stderr)

	err := root.ExecuteContext(ctx)
	if cerr := a.close(); cerr != nil {
		log := logger.Get()
		log.Warn().Err(cerr).Msg("shutdown")
	}
	return report(a, err)
}

func report(a *app, err error) int {
	if err == nil {
		return ExitOK
	}
	out := a.opts.Stderr

	var usage *usageError
	var route *routeError
	switch {
	case errors.Is(err, domain.ErrAuthExpired):
		f, _ := domain.AsFailure(err)
		msg := f.Message
		var cmdErr *commandError
		if errors.As(err, &cmdErr) && cmdErr.shown != "" {
			msg = cmdErr.shown
		}
		fmt.Fprintf(out, "Error: %s\n", msg)
		fmt.Fprintf(out, "Redirecting to %s\n", f.Redirect)
		return ExitAuthExpired
	case errors.As(err, &route):
		fmt.Fprintf(out, "Error: %s\n", route)
		return ExitFailure
	case errors.As(err, &usage):
		fmt.Fprintf(out, "Error: %s\n", usage.msg)
		return ExitUsage
	}

	msg := forms.Describe(err, err.Error())
	var cmdErr *commandError
	if errors.As(err, &cmdErr) {
		msg = cmdErr.message()
	}
	fmt.Fprintf(out, "Error: %s\n", msg)
	return ExitFailure
}

// commandError attaches the text a command shows for a failure: either a
// notice already rendered by a service, or a fallback used when the failure
// carries no message of its own.
type commandError struct {
	err      error
	fallback string
	shown    string
}

func (e *commandError) Error() string { return e.err.Error() }

func (e *commandError) message() string {
	if e.shown != "" {
		return e.shown
	}
	return forms.Describe(e.err, e.fallback)
}

func (e *commandError) Unwrap() error { return e.err }

func failed(err error, fallback string) error {
	if err == nil {
		return nil
	}
	return &commandError{err: err, fallback: fallback}
}

// noticed reports err with the text of a notice set by the service. An
// expired session is reported as such instead.
func noticed(err error, n *forms.Notice) error {
	if err == nil {
		return nil
	}
	ce := &commandError{err: err, fallback: err.Error()}
	if errors.Is(err, domain.ErrAuthExpired) {
		return ce
	}
	if level, text := n.Get(); level == forms.NoticeError {
		ce.shown = text
	}
	return ce
}

type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "storerating",
		Short:         "Browse and rate stores, and administer the store rating platform",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.Context())
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usagef("%v", err)
	})

	root.AddCommand(
		newLoginCommand(a),
		newSignupCommand(a),
		newLogoutCommand(a),
		newWhoamiCommand(a),
		newPasswordCommand(a),
		newStoresCommand(a),
		newRateCommand(a),
		newAdminCommand(a),
		newOwnerCommand(a),
	)
	return root
}

// exactArgs wraps cobra.ExactArgs so arity errors become usage errors.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usagef("%v", err)
		}
		return nil
	}
}

// secret returns the flag value or reads one line from stdin.
func secret(cmd *cobra.Command, value, prompt string) (string, error) {
	if value != "" {
		return value, nil
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s: ", prompt)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", usagef("%s is required", strings.ToLower(prompt))
	}
	return strings.TrimRight(line, "\r\n"), nil
}
