package lock

// File represents depot.lock.yaml.
type File struct {
	Version     int               `yaml:"version"`
	Name        string            `yaml:"name"`
	GeneratedAt string            `yaml:"generated_at"`
	ToolVersion string            `yaml:"tool_version"`
	Revisions   map[string]string `yaml:"revisions"`
}
