package cli

import (
	"context"
	"os"

	"github.com/fyntora/fyn/internal/aggregate"
	"github.com/fyntora/fyn/internal/aur"
	"github.com/fyntora/fyn/internal/config"
	"github.com/fyntora/fyn/internal/installer"
	"github.com/fyntora/fyn/internal/models"
	"github.com/fyntora/fyn/internal/official"
	"github.com/fyntora/fyn/internal/runner"
	"github.com/fyntora/fyn/internal/signer"
	"github.com/fyntora/fyn/internal/ui"
	"github.com/fyntora/fyn/internal/vcs"
	"github.com/sirupsen/logrus"
)

// app wires the components once configuration is known
type app struct {
	opts Options

	cfg      *models.Config
	console  *ui.Console
	runner   runner.Runner
	aur      *aur.Client
	official *official.Searcher
	tty      bool
}

func (a *app) setup(ctx context.Context, path string, noColor bool) error {
	cfg, err := config.LoadWithEnv(path, a.opts.LookupEnv)
	if err != nil {
		return err
	}
	a.cfg = cfg
	logrus.Debugf("Configuration: %+v", *cfg)

	if f, ok := a.opts.Out.(*os.File); ok {
		a.tty = ui.IsTerminal(f)
	}

	a.console = ui.NewConsole(a.opts.In, a.opts.Out, cfg.Color && !noColor && a.tty)
	a.console.SetContext(ctx)
	if cfg.Pager && a.tty {
		f := a.opts.Out.(*os.File)
		a.console.SetPager(ui.NewTermPager(int(f.Fd()), f))
	}

	a.runner = a.opts.Runner
	if a.runner == nil {
		a.runner = runner.NewExec(cfg.Sudo)
	}

	a.aur = aur.NewClient(cfg.AURURL,
		aur.WithTimeout(cfg.HTTPTimeout),
		aur.WithUserAgent("fyn/"+Version),
	)
	a.official = official.NewSearcher(a.runner, cfg.Pacman)
	return nil
}

// search queries every source, showing progress on terminals
func (a *app) search(ctx context.Context, query string) ([]models.Package, error) {
	agg := aggregate.New(a.official, a.aur)

	if a.tty && !logrus.IsLevelEnabled(logrus.DebugLevel) {
		progress := ui.NewProgress(agg.SourceCount(), os.Stderr)
		agg.OnSource = progress.Step
		defer progress.Done()
	}

	return agg.Aggregate(ctx, query)
}

func (a *app) orchestrator() (*installer.Orchestrator, error) {
	syncer := a.opts.Syncer
	if syncer == nil {
		s, err := vcs.New(a.cfg.VCS, a.runner, a.cfg.Git)
		if err != nil {
			return nil, models.NewError(models.ErrInvalidConfig, "", err)
		}
		syncer = s
	}

	orch := installer.New(a.cfg, a.runner, a.aur, syncer, a.console)

	if a.cfg.Keyring != "" {
		v, err := signer.NewKeyringVerifier(a.cfg.Keyring)
		if err != nil {
			// Verification only feeds the post-build report
			logrus.Warnf("Package signatures will not be checked: %v", err)
		} else {
			orch.SetVerifier(v)
		}
	}

	return orch, nil
}

func (a *app) printResults(packages []models.Package) {
	a.console.Printf("Found %d package(s)\n\n", len(packages))
	for _, pkg := range packages {
		a.console.Printf("%s\n", pkg.Label())
		a.console.Printf("    %s\n", pkg.Description)
	}
}
