package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/wareki/internal/eraconfig"
	"github.com/mesh-intelligence/wareki/internal/paths"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize wareki configuration and the era catalog",
		Long: "Create the configuration directory with config.yaml and eras.yaml, then create\n" +
			"the era catalog in the data directory and import eras.yaml into it.\n" +
			"Existing files are left alone.",
		Args: args(cobra.NoArgs),
		RunE: a.runInit,
	}
}

func (a *app) runInit(cmd *cobra.Command, argv []string) error {
	if err := os.MkdirAll(a.configDir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, a.cfg.GetString(cfgKeyDataDir), a.configDir)
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}
	wrote, err := writeConfigIfMissing(a.configDir, dataDir)
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if wrote {
		// Pick up the file just written.
		if a.cfg, err = loadConfig(a.configDir); err != nil {
			return err
		}
	}
	if err := eraconfig.WriteDefaultIfMissing(filepath.Join(a.configDir, paths.ErasFileName)); err != nil {
		return fmt.Errorf("write era config: %w", err)
	}

	cfg, err := a.config()
	if err != nil {
		return err
	}
	erasPath := cfg.ErasFile
	if erasPath == "" {
		erasPath = filepath.Join(a.configDir, paths.ErasFileName)
	}
	records, err := eraconfig.Load(erasPath)
	if err != nil {
		return err
	}

	catalog, err := attachCatalog(cfg)
	if err != nil {
		return err
	}
	defer catalog.Detach()

	added, err := catalog.Import(records)
	if err != nil {
		return fmt.Errorf("import %s: %w", erasPath, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "config: %s\n", a.configDir)
	fmt.Fprintf(out, "data:   %s\n", cfg.DataDir)
	fmt.Fprintf(out, "wareki initialized (%d eras imported)\n", added)
	return nil
}
