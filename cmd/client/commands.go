package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/MKhiriev/go-upload-desk/internal/adapter"
	"github.com/MKhiriev/go-upload-desk/models"
)

var errUsage = errors.New("usage")

const usage = `usage: upload-desk <command> [flags]

commands:
  register  -username -email -password [-first-name -last-name]
  login     -username -password
  logout
  profile   [-email -first-name -last-name]
  perms
  upload    <path>
  list
  get       <id>
  download  <id> [-o path]
  delete    <id>
  search    <query>
  suggest   <query>
  version

The API token is read from UPLOAD_DESK_TOKEN.
`

type command func(ctx context.Context, args []string) error

type cli struct {
	api    adapter.ServerAdapter
	stdout io.Writer
	stderr io.Writer

	commands map[string]command
}

func newCLI(api adapter.ServerAdapter, stdout, stderr io.Writer) *cli {
	c := &cli{api: api, stdout: stdout, stderr: stderr}
	c.commands = map[string]command{
		"register": c.register,
		"login":    c.login,
		"logout":   c.logout,
		"profile":  c.profile,
		"perms":    c.permissions,
		"upload":   c.upload,
		"list":     c.list,
		"get":      c.get,
		"download": c.download,
		"delete":   c.delete,
		"search":   c.search,
		"suggest":  c.suggest,
		"version":  c.version,
	}
	return c
}

func (c *cli) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(c.stderr, usage)
		return errUsage
	}

	cmd, ok := c.commands[args[0]]
	if !ok {
		fmt.Fprint(c.stderr, usage)
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
	return cmd(ctx, args[1:])
}

func (c *cli) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	return fs
}

func (c *cli) register(ctx context.Context, args []string) error {
	var req models.RegisterRequest
	fs := c.flagSet("register")
	fs.StringVar(&req.Username, "username", "", "username")
	fs.StringVar(&req.Email, "email", "", "email")
	fs.StringVar(&req.Password, "password", "", "password")
	fs.StringVar(&req.FirstName, "first-name", "", "first name")
	fs.StringVar(&req.LastName, "last-name", "", "last name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	req.PasswordConfirm = req.Password

	resp, err := c.api.Register(ctx, req)
	if err != nil {
		return err
	}
	return c.printAuth(resp)
}

func (c *cli) login(ctx context.Context, args []string) error {
	var req models.LoginRequest
	fs := c.flagSet("login")
	fs.StringVar(&req.Username, "username", "", "username")
	fs.StringVar(&req.Password, "password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resp, err := c.api.Login(ctx, req)
	if err != nil {
		return err
	}
	return c.printAuth(resp)
}

func (c *cli) printAuth(resp models.AuthResponse) error {
	fmt.Fprintln(c.stdout, resp.Message)
	fmt.Fprintf(c.stdout, "export UPLOAD_DESK_TOKEN=%s\n", resp.Token)
	return nil
}

func (c *cli) logout(ctx context.Context, _ []string) error {
	if err := c.api.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, "Logout successful")
	return nil
}

// profile prints the profile, updating it first when any flag is given.
func (c *cli) profile(ctx context.Context, args []string) error {
	var email, first, last string
	fs := c.flagSet("profile")
	fs.StringVar(&email, "email", "", "new email")
	fs.StringVar(&first, "first-name", "", "new first name")
	fs.StringVar(&last, "last-name", "", "new last name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var update models.ProfileUpdate
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "email":
			update.Email = &email
		case "first-name":
			update.FirstName = &first
		case "last-name":
			update.LastName = &last
		}
	})

	var (
		user models.User
		err  error
	)
	if fs.NFlag() > 0 {
		user, err = c.api.UpdateProfile(ctx, update)
	} else {
		user, err = c.api.Profile(ctx)
	}
	if err != nil {
		return err
	}
	return c.printJSON(user)
}

func (c *cli) permissions(ctx context.Context, _ []string) error {
	resp, err := c.api.Permissions(ctx)
	if err != nil {
		return err
	}
	return c.printJSON(resp)
}

func (c *cli) upload(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: upload <path>", errUsage)
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open %s: %w", args[0], err)
	}
	defer f.Close()

	resp, err := c.api.UploadFile(ctx, filepath.Base(args[0]), f)
	if err != nil {
		return err
	}
	return c.printJSON(resp)
}

func (c *cli) list(ctx context.Context, _ []string) error {
	resp, err := c.api.ListFiles(ctx)
	if err != nil {
		return err
	}
	return c.printJSON(resp)
}

func (c *cli) get(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}

	file, err := c.api.GetFile(ctx, id)
	if err != nil {
		return err
	}
	return c.printJSON(file)
}

func (c *cli) download(ctx context.Context, args []string) error {
	var out string
	fs := c.flagSet("download")
	fs.StringVar(&out, "o", "", "output path (default stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	id, err := parseID(fs.Args())
	if err != nil {
		return err
	}

	if out == "" {
		_, err = c.api.DownloadFile(ctx, id, c.stdout)
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	if _, err = c.api.DownloadFile(ctx, id, f); err != nil {
		_ = f.Close()
		_ = os.Remove(out)
		return err
	}
	return f.Close()
}

func (c *cli) delete(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}

	if err = c.api.DeleteFile(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, "File deleted successfully.")
	return nil
}

func (c *cli) search(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: search <query>", errUsage)
	}

	resp, err := c.api.Search(ctx, args[0])
	if err != nil {
		return err
	}
	return c.printJSON(resp.Results)
}

func (c *cli) suggest(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: suggest <query>", errUsage)
	}

	resp, err := c.api.Autocomplete(ctx, args[0])
	if err != nil {
		return err
	}
	return c.printJSON(resp.Suggestions)
}

func (c *cli) version(ctx context.Context, _ []string) error {
	printBuildInfo(c.stdout)

	info, err := c.api.Version(ctx)
	if err != nil {
		return err
	}
	return c.printJSON(info)
}

func (c *cli) printJSON(v any) error {
	enc := json.NewEncoder(c.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%w: expected a single file id", errUsage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid file id %q", errUsage, args[0])
	}
	return id, nil
}
