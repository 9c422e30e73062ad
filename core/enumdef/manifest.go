package enumdef

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"enum-sync/core/storage"

	"github.com/minio/minio-go/v7"
)

// manifestFile is the on-disk shape of a declarative enum manifest:
//
//	{"enums": [{"table": "order_status", "values": [{"id": 1, "name": "PLACED"}]}]}
type manifestFile struct {
	Enums []manifestEnum `json:"enums"`
}

type manifestEnum struct {
	Table  string `json:"table"`
	Values []Row  `json:"values"`
}

// ParseManifest parses a JSON manifest into validated definitions. Each
// entry passes the same validation as New; a table claimed twice fails.
func ParseManifest(data []byte) ([]*Definition, error) {
	var mf manifestFile
	if err := json.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("failed to parse manifest JSON: %w", err)
	}
	if len(mf.Enums) == 0 {
		return nil, fmt.Errorf("manifest declares no enums")
	}

	seen := make(map[string]struct{}, len(mf.Enums))
	defs := make([]*Definition, 0, len(mf.Enums))
	for _, entry := range mf.Enums {
		if _, dup := seen[entry.Table]; dup {
			return nil, fmt.Errorf("manifest declares table %s twice", entry.Table)
		}
		def, err := New(entry.Table, entry.Values)
		if err != nil {
			return nil, err
		}
		seen[entry.Table] = struct{}{}
		defs = append(defs, def)
	}
	return defs, nil
}

// LoadManifestFile reads and parses a manifest from the local filesystem.
func LoadManifestFile(path string) ([]*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	return ParseManifest(data)
}

// LoadManifestObject downloads and parses a manifest from object storage.
func LoadManifestObject(ctx context.Context, client storage.Client, bucket, object string) ([]*Definition, error) {
	reader, err := client.GetObject(ctx, bucket, object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get manifest object: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest object: %w", err)
	}
	return ParseManifest(data)
}
