package enumdef

// Config holds configuration for locating the enum manifest.
type Config struct {
	// Path points to a manifest file on disk. When set it takes
	// precedence over the object store.
	Path string `mapstructure:"path" default:""`
	// Object is the key of the manifest inside the storage bucket.
	Object string `mapstructure:"object" default:"enums.json"`
}
