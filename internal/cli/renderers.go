package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/stepbook/flownote/internal/config"
	"github.com/stepbook/flownote/pkg/domain"
)

// RunRenderers prints the registered MIME types and their ranks, lowest
// (most preferred) first.
func RunRenderers(w io.Writer, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	app, err := buildApp(cfg, createLogger(cfg.LogLevel, false), domain.ProvisionHooks{})
	if err != nil {
		return err
	}

	regs := app.Renderers().Registrations()
	sort.Slice(regs, func(i, j int) bool { return regs[i].Rank < regs[j].Rank })

	for _, reg := range regs {
		fmt.Fprintf(w, "%4d  %s\n", reg.Rank, reg.MimeType)
	}
	return nil
}
