package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/docker/go-units"
	"github.com/pterm/pterm"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/tmaxmax/ccprofile/pkg/buildconfig"
	"github.com/tmaxmax/ccprofile/pkg/toolchain"
	_ "github.com/tmaxmax/ccprofile/pkg/toolchain/gcc"
	_ "github.com/tmaxmax/ccprofile/pkg/toolchain/intel"
	_ "github.com/tmaxmax/ccprofile/pkg/toolchain/msvc"
)

const usage = `Usage: toolchain [flags] <command> [arguments]

Commands:
  list [--all]                 list the toolchains for the host platform
  show [id]                    show a toolchain and where its compiler was found
  detect                       list the toolchains whose compiler is installed
  command <id> <role> [args]   print the command line a build would run for a role

Roles: compiler, compiler_so, compiler_cxx, archiver, linker_exe, linker_so

Flags:
`

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, pflag.ErrHelp) {
			pterm.Error.Println(err)
		}
		os.Exit(1)
	}
}

type app struct {
	cfg      *buildconfig.Config
	resolver *toolchain.Resolver
	stdout   io.Writer
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var (
		configPath string
		id         string
		mode       string
		platform   string
		verbose    bool
	)

	fs := pflag.NewFlagSet("toolchain", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SetInterspersed(false)
	fs.StringVarP(&configPath, "config", "c", "", "build configuration file (default $"+buildconfig.EnvConfig+")")
	fs.StringVarP(&id, "toolchain", "t", "", "toolchain identifier, overrides the configuration")
	fs.StringVarP(&mode, "mode", "m", "", "build mode: release or debug")
	fs.StringVar(&platform, "platform", "", "host platform: posix or windows")
	fs.BoolVarP(&verbose, "verbose", "v", false, "log every executable probe")
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if id != "" {
		cfg.Toolchain = id
	}
	if mode != "" {
		cfg.Mode = mode
	}
	if platform != "" {
		cfg.Platform = platform
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	resolver, err := cfg.Resolver(nil)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	resolver.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	a := &app{cfg: cfg, resolver: resolver, stdout: stdout}

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return pflag.ErrHelp
	}

	switch rest[0] {
	case "list":
		return a.list(rest[1:])
	case "show":
		return a.show(rest[1:])
	case "detect":
		return a.detect(ctx)
	case "command":
		return a.command(ctx, rest[1:])
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", rest[0])
	}
}

func loadConfig(path string) (*buildconfig.Config, error) {
	switch {
	case path != "":
		return buildconfig.LoadFile(path)
	case os.Getenv(buildconfig.EnvConfig) != "":
		return buildconfig.Load()
	default:
		return buildconfig.Default(), nil
	}
}

func (a *app) list(args []string) error {
	var all bool

	fs := pflag.NewFlagSet("list", pflag.ContinueOnError)
	fs.BoolVarP(&all, "all", "a", false, "include toolchains for other platforms")
	if err := fs.Parse(args); err != nil {
		return err
	}

	registry := toolchain.Default()

	profiles := registry.All()
	if !all {
		platform, _ := a.cfg.HostPlatform()
		profiles = registry.Profiles(platform)
	}

	data := pterm.TableData{{"ID", "Platform", "Arch", "Candidates", "Description"}}
	for _, p := range profiles {
		data = append(data, []string{
			p.ID(),
			p.Platform().String(),
			p.Arch().String(),
			strings.Join(p.Candidates(), ", "),
			p.Description(),
		})
	}

	return a.render(data, true)
}

type profileView struct {
	ID          string            `yaml:"id"`
	Description string            `yaml:"description"`
	Platform    string            `yaml:"platform"`
	Arch        string            `yaml:"arch"`
	Mode        string            `yaml:"mode"`
	Candidates  []string          `yaml:"candidates"`
	Executable  string            `yaml:"executable,omitempty"`
	Size        string            `yaml:"size,omitempty"`
	Flags       []string          `yaml:"flags,flow"`
	Commands    map[string]string `yaml:"commands"`
}

func (a *app) show(args []string) error {
	var output string

	fs := pflag.NewFlagSet("show", pflag.ContinueOnError)
	fs.StringVarP(&output, "output", "o", "table", "output format: table or yaml")
	if err := fs.Parse(args); err != nil {
		return err
	}

	id := a.cfg.Toolchain
	if fs.NArg() > 0 {
		id = fs.Arg(0)
	}

	t, err := a.resolver.Use(id)
	if err != nil {
		return err
	}

	p := t.Profile()
	mode, _ := a.cfg.BuildMode()
	flags, err := a.cfg.Flags(p)
	if err != nil {
		return err
	}

	view := profileView{
		ID:          p.ID(),
		Description: p.Description(),
		Platform:    p.Platform().String(),
		Arch:        p.Arch().String(),
		Mode:        mode.String(),
		Candidates:  p.Candidates(),
		Flags:       flags,
		Commands:    map[string]string{},
	}

	if path, err := t.Executable(); err == nil {
		view.Executable = path
		if info, err := os.Stat(path); err == nil {
			view.Size = units.HumanSize(float64(info.Size()))
		}
	}

	exes := p.Executables()
	for r := toolchain.RoleCompiler; r <= toolchain.RoleLinkerSO; r++ {
		c, _ := exes.Command(r)
		view.Commands[r.String()] = c.String()
	}

	switch output {
	case "yaml":
		enc := yaml.NewEncoder(a.stdout)
		enc.SetIndent(2)
		if err := enc.Encode(view); err != nil {
			return err
		}
		return enc.Close()
	case "table":
	default:
		return fmt.Errorf("unknown output format %q", output)
	}

	executable := view.Executable
	if executable == "" {
		executable = "not found"
	} else if view.Size != "" {
		executable += " (" + view.Size + ")"
	}

	data := pterm.TableData{
		{"ID", view.ID},
		{"Description", view.Description},
		{"Platform", view.Platform + "/" + view.Arch},
		{"Mode", view.Mode},
		{"Candidates", strings.Join(view.Candidates, ", ")},
		{"Executable", executable},
		{"Flags", strings.Join(view.Flags, " ")},
	}
	for r := toolchain.RoleCompiler; r <= toolchain.RoleLinkerSO; r++ {
		data = append(data, []string{r.String(), view.Commands[r.String()]})
	}

	return a.render(data, false)
}

func (a *app) detect(ctx context.Context) error {
	found, err := a.resolver.DetectToolchains(ctx)
	if err != nil {
		return err
	}

	if len(found) == 0 {
		platform, _ := a.cfg.HostPlatform()
		return &toolchain.NotFoundError{Platform: platform}
	}

	data := pterm.TableData{{"ID", "Found", "Executable"}}
	for _, t := range found {
		path, _ := t.Executable()
		data = append(data, []string{t.Profile().ID(), t.Found(), path})
	}

	return a.render(data, true)
}

func (a *app) command(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("command: expected a toolchain identifier and a role")
	}

	role, err := toolchain.ParseRole(args[1])
	if err != nil {
		return err
	}

	t, err := a.resolver.Use(args[0])
	if err != nil {
		return err
	}

	mode, _ := a.cfg.BuildMode()

	extra := args[2:]
	if role == toolchain.RoleCompiler || role == toolchain.RoleCompilerSO || role == toolchain.RoleCompilerCXX {
		extra = append(append([]string(nil), a.cfg.ExtraFlags...), extra...)
	}

	cmd, err := t.Command(ctx, role, mode, extra...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(a.stdout, strings.Join(cmd.Args, " "))
	return err
}

func (a *app) render(data pterm.TableData, header bool) error {
	out, err := pterm.DefaultTable.WithHasHeader(header).WithData(data).Srender()
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(a.stdout, out)
	return err
}
