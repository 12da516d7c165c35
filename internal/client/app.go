package client

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/MKhiriev/postdesk/internal/logger"
	"github.com/MKhiriev/postdesk/models"
)

const usage = `usage: postdesk <command> [flags]

commands:
  login          -email -password
  register       -email -password [-first-name] [-last-name]
  logout
  whoami
  reset-request  -email
  reset          -link -password -confirm
  settings       [-wordpress-key] [-webflow-key]   (prints, or saves when a key is given)
  posts          [-page] [-per-page]
  delete-post    <id>
  version
`

// App runs one CLI command against the API.
type App struct {
	api      API
	sessions *SessionStore
	args     []string
	out      io.Writer

	logger *logger.Logger
}

func NewApp(api API, sessions *SessionStore, args []string, out io.Writer, logger *logger.Logger) *App {
	return &App{
		api:      api,
		sessions: sessions,
		args:     args,
		out:      out,
		logger:   logger,
	}
}

func (a *App) Run(ctx context.Context) error {
	if len(a.args) == 0 {
		fmt.Fprint(a.out, usage)
		return nil
	}

	command, args := a.args[0], a.args[1:]
	switch command {
	case "login":
		return a.login(ctx, args)
	case "register":
		return a.register(ctx, args)
	case "logout":
		return a.logout(ctx)
	case "whoami":
		return a.whoami(ctx)
	case "reset-request":
		return a.resetRequest(ctx, args)
	case "reset":
		return a.reset(ctx, args)
	case "settings":
		return a.settings(ctx, args)
	case "posts":
		return a.posts(ctx, args)
	case "delete-post":
		return a.deletePost(ctx, args)
	case "version":
		return a.version(ctx)
	case "help", "-h", "--help":
		fmt.Fprint(a.out, usage)
		return nil
	default:
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("%w: %q", ErrUnknownCommand, command)
	}
}

func (a *App) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

func (a *App) login(ctx context.Context, args []string) error {
	fs := a.flags("login")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *password == "" {
		return ErrPasswordRequired
	}

	session, err := a.api.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	if err = a.sessions.Save(session); err != nil {
		return err
	}

	a.logger.Debug().Str("user_id", session.User.ID).Time("expires_at", session.ExpiresAt).Msg("session stored")
	fmt.Fprintf(a.out, "Signed in as %s\n", session.User.Email)
	return nil
}

func (a *App) register(ctx context.Context, args []string) error {
	fs := a.flags("register")
	var req models.SignUpRequest
	fs.StringVar(&req.Email, "email", "", "account email")
	fs.StringVar(&req.Password, "password", "", "account password")
	fs.StringVar(&req.FirstName, "first-name", "", "first name")
	fs.StringVar(&req.LastName, "last-name", "", "last name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resp, err := a.api.Register(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, resp.Message)
	return nil
}

func (a *App) logout(ctx context.Context) error {
	session, err := a.sessions.Load()
	if err != nil && !errors.Is(err, ErrSessionExpired) {
		return err
	}
	if err == nil {
		if err = a.api.Logout(ctx, session); err != nil {
			a.logger.Warn().Err(err).Msg("server logout failed, clearing local session anyway")
		}
	}

	if err = a.sessions.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) whoami(ctx context.Context) error {
	session, err := a.sessions.Load()
	if err != nil {
		return err
	}

	resp, err := a.api.CheckAuth(ctx, session)
	if err != nil {
		return err
	}

	name := strings.TrimSpace(resp.UserMetadata.FirstName() + " " + resp.UserMetadata.LastName())
	if name == "" {
		name = "-"
	}
	fmt.Fprintf(a.out, "email: %s\nname: %s\nsession expires: %s\n", resp.Email, name, session.ExpiresAt.Format("2006-01-02 15:04:05"))
	return nil
}

func (a *App) resetRequest(ctx context.Context, args []string) error {
	fs := a.flags("reset-request")
	email := fs.String("email", "", "account email")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.api.RequestPasswordReset(ctx, *email); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Password reset link sent to your email. Please check your inbox.")
	return nil
}

func (a *App) reset(ctx context.Context, args []string) error {
	fs := a.flags("reset")
	link := fs.String("link", "", "reset link from the email")
	password := fs.String("password", "", "new password")
	confirm := fs.String("confirm", "", "new password again")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if recovery, err := ParseRecoveryLink(*link); err == nil {
		if email := RecoveryEmail(recovery); email != "" {
			fmt.Fprintf(a.out, "Resetting password for %s\n", email)
		}
	}

	if err := a.api.ResetPassword(ctx, *link, *password, *confirm); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Password reset successful. You can now sign in.")
	return nil
}

func (a *App) settings(ctx context.Context, args []string) error {
	fs := a.flags("settings")
	wordpress := fs.String("wordpress-key", "", "WordPress API key")
	webflow := fs.String("webflow-key", "", "Webflow API key")
	if err := fs.Parse(args); err != nil {
		return err
	}

	session, err := a.sessions.Load()
	if err != nil {
		return err
	}

	var settings models.Settings
	if *wordpress != "" || *webflow != "" {
		settings, err = a.api.SaveSettings(ctx, session, *wordpress, *webflow)
	} else {
		settings, err = a.api.GetSettings(ctx, session)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "wordpress: %s\nwebflow: %s\n", mask(settings.WordpressAPIKey), mask(settings.WebflowAPIKey))
	return nil
}

// mask keeps the last four characters of a key.
func mask(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}

func (a *App) posts(ctx context.Context, args []string) error {
	fs := a.flags("posts")
	page := fs.Int("page", 1, "page number")
	perPage := fs.Int("per-page", 10, "posts per page")
	if err := fs.Parse(args); err != nil {
		return err
	}

	session, err := a.sessions.Load()
	if err != nil {
		return err
	}

	list, err := a.api.ListPosts(ctx, session, *page, *perPage)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tSTATUS\tCREATED")
	for _, p := range list.Posts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, p.Title, p.Status, p.CreatedAt.Format("2006-01-02"))
	}
	if err = tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "page %d, %d of %d posts\n", list.Page, len(list.Posts), list.Total)
	return nil
}

func (a *App) deletePost(ctx context.Context, args []string) error {
	if len(args) != 1 || args[0] == "" {
		return errors.New("usage: delete-post <id>")
	}

	session, err := a.sessions.Load()
	if err != nil {
		return err
	}
	if err = a.api.DeletePost(ctx, session, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Post deleted")
	return nil
}

func (a *App) version(ctx context.Context) error {
	info, err := a.api.Version(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "server version: %s\nbuild date: %s\ncommit: %s\n", info.Version, info.Date, info.Commit)
	return nil
}
