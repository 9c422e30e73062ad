package cmd

import (
	"fmt"

	"enum-sync/core/config"
	"enum-sync/core/enumdef"

	"github.com/spf13/cobra"
)

// validateCmd parses a manifest and runs every definition through validation.
var validateCmd = &cobra.Command{
	Use:   "validate [manifest]",
	Short: "Validate an enum manifest",
	Long: `Parse a manifest file and validate every definition in it: table names
must be plain identifiers and member ids and names must be unique. No database
is touched.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	RootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	} else if cfg, err := config.LoadConfig("."); err == nil {
		path = cfg.Manifest.Path
	}
	if path == "" {
		return fmt.Errorf("no manifest to validate: pass a path or set manifest.path")
	}

	defs, err := enumdef.LoadManifestFile(path)
	if err != nil {
		return err
	}

	fmt.Println("\n--- Manifest ---")
	for _, def := range defs {
		fmt.Printf("%-32s %d members\n", def.Table(), def.Len())
	}
	fmt.Println("----------------")
	fmt.Printf("Manifest is valid: %d enums\n", len(defs))

	return nil
}
