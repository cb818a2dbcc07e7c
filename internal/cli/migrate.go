package cmd

import (
	"fmt"
	"os"

	"github.com/rohmanhakim/element-locator/internal/workflow"
	"github.com/spf13/cobra"
)

var (
	migrateBackup  bool
	migratePattern string
)

var migrateCmd = &cobra.Command{
	Use:   "migrate <workflow.json | directory>",
	Short: "Convert JSON workflows to YAML",
	Long: `migrate writes a YAML copy of a JSON workflow next to it. With --backup
the original is kept as <name>.json.bak and the JSON file is removed.

Given a directory, every file matching --pattern is migrated and the
directory's metadata.json index is pointed at the new files.`,
	Args: cobra.ExactArgs(1),
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateBackup, "backup", true, "keep a .bak copy and remove the JSON file")
	migrateCmd.Flags().StringVar(&migratePattern, "pattern", workflow.DefaultMigratePattern, "file pattern for directory migration")
}

func resetMigrateFlags() {
	migrateBackup = true
	migratePattern = workflow.DefaultMigratePattern
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := InitConfigWithError()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	target := args[0]

	info, err := os.Stat(target)
	if err != nil {
		return err
	}

	if info.IsDir() {
		result, err := workflow.MigrateDirectory(target, migratePattern, cfg.DryRun(), migrateBackup)
		for _, m := range result.Migrated {
			fmt.Fprintf(out, "%s -> %s\n", m.Source, m.YAMLPath)
		}
		for _, p := range result.Planned {
			fmt.Fprintf(out, "would migrate %s\n", p)
		}
		fmt.Fprintln(out, result.String())
		return err
	}

	if cfg.DryRun() {
		fmt.Fprintf(out, "would migrate %s\n", target)
		return nil
	}
	result, err := workflow.Migrate(target, migrateBackup)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s -> %s\n", result.Source, result.YAMLPath)
	if result.BackupPath != "" {
		fmt.Fprintf(out, "backup: %s\n", result.BackupPath)
	}
	return nil
}
