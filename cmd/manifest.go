package cmd

import (
	"fmt"
	"io"
	"os"

	"enum-sync/core/config"
	"enum-sync/core/enumdef"
	"enum-sync/core/logger"
	"enum-sync/core/storage"

	"github.com/minio/minio-go/v7"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var manifestOutput string

// manifestCmd groups the manifest lifecycle commands.
var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Manage the enum manifest in object storage",
	Long: `Push, pull and inspect the JSON manifest that declares the enum tables
and their members. The manifest lives in the configured storage bucket so every
environment synchronizes from the same source.`,
}

// manifestPushCmd uploads a validated manifest to the bucket.
var manifestPushCmd = &cobra.Command{
	Use:   "push [file]",
	Short: "Validate a manifest file and upload it",
	Args:  cobra.ExactArgs(1),
	RunE:  runManifestPush,
}

// manifestPullCmd downloads the current manifest.
var manifestPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Download the manifest from object storage",
	RunE:  runManifestPull,
}

// manifestShowCmd prints the resolved definitions.
var manifestShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved enum definitions",
	RunE:  runManifestShow,
}

func init() {
	manifestPullCmd.Flags().StringVarP(&manifestOutput, "output", "o", "", "Write to file instead of stdout")
	manifestShowCmd.Flags().StringVar(&manifestFile, "manifest", "", "Path to a local manifest file (overrides config)")

	manifestCmd.AddCommand(manifestPushCmd, manifestPullCmd, manifestShowCmd)
	RootCmd.AddCommand(manifestCmd)
}

func runManifestPush(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Refuse to upload a manifest that would not load back
	defs, err := enumdef.LoadManifestFile(args[0])
	if err != nil {
		return fmt.Errorf("manifest is not valid: %w", err)
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to connect to storage: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", cfg.Storage.Bucket, err)
	}
	if !exists {
		logg.Info("Creating bucket", zap.String("bucket", cfg.Storage.Bucket))
		if err := client.MakeBucket(ctx, cfg.Storage.Bucket, minio.MakeBucketOptions{Region: cfg.Storage.Region}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", cfg.Storage.Bucket, err)
		}
	}

	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open manifest: %w", err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat manifest: %w", err)
	}

	_, err = client.PutObject(ctx, cfg.Storage.Bucket, cfg.Manifest.Object, file, stat.Size(),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("failed to upload manifest: %w", err)
	}

	logg.Info("Manifest uploaded",
		zap.String("bucket", cfg.Storage.Bucket),
		zap.String("object", cfg.Manifest.Object),
		zap.Int("enums", len(defs)))
	return nil
}

func runManifestPull(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to connect to storage: %w", err)
	}

	reader, err := client.GetObject(ctx, cfg.Storage.Bucket, cfg.Manifest.Object, minio.GetObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to get manifest object: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("failed to read manifest object: %w", err)
	}

	if manifestOutput != "" {
		if err := os.WriteFile(manifestOutput, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", manifestOutput, err)
		}
		fmt.Printf("Manifest written to %s\n", manifestOutput)
		return nil
	}

	fmt.Println(string(data))
	return nil
}

func runManifestShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	svc, err := buildSyncService(cmd, logg, cfg)
	if err != nil {
		return err
	}

	defs, err := svc.Definitions(ctx)
	if err != nil {
		return err
	}

	fmt.Println("\n--- Enum Definitions ---")
	for _, def := range defs {
		fmt.Printf("%-32s %d members\n", def.Table(), def.Len())
		for _, row := range def.Rows() {
			fmt.Printf("  %6d  %s\n", row.ID, row.Name)
		}
	}
	fmt.Println("------------------------")

	return nil
}
