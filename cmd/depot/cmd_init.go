package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/fbkclanna/depot/internal/manifest"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init <name>",
		Short: "Create a project manifest in the project directory",
		Args:  cobra.ExactArgs(1),
		RunE:  runInit,
	}
	cmd.Flags().String("version", "0.1.0", "Initial project version (semantic version)")
	cmd.Flags().String("format", "", "Manifest format: yaml, json, toml, or hcl (default from manifest_file)")
	cmd.Flags().Bool("force", false, "Overwrite an existing manifest")
	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(args[0])
	ver, _ := cmd.Flags().GetString("version")
	format, _ := cmd.Flags().GetString("format")
	force, _ := cmd.Flags().GetBool("force")

	if name == "" {
		return fmt.Errorf("project name must not be empty")
	}
	v, err := semver.NewVersion(ver)
	if err != nil {
		return fmt.Errorf("invalid --version %q: %w", ver, err)
	}

	root, cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	fileName := cfg.ManifestFile
	if format != "" {
		f, err := manifest.ParseFormat(format)
		if err != nil {
			return err
		}
		fileName = manifest.FileName(f)
	}

	fs := afero.NewOsFs()
	store := manifest.NewStore(fs)
	if existing, err := store.Locate(root); err == nil && !force {
		return fmt.Errorf("project already initialized: %s exists (use --force to overwrite)", existing)
	} else if err != nil && !errors.Is(err, manifest.ErrNotFound) {
		return err
	}

	if err := fs.MkdirAll(root, 0755); err != nil {
		return fmt.Errorf("creating project directory: %w", err)
	}
	path := filepath.Join(root, fileName)
	p := &manifest.Project{Name: name, Version: v.String()}
	if err := store.Save(p, path); err != nil {
		return err
	}

	if err := ensureGitignore(fs, root, cfg.WorkspaceDir); err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: updating .gitignore: %v\n", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Project %q created at %s\n", name, path)
	return nil
}

// ensureGitignore adds the dependency directory to root/.gitignore.
func ensureGitignore(fs afero.Fs, root, dirName string) error {
	entry := strings.TrimSuffix(dirName, "/") + "/"
	path := filepath.Join(root, ".gitignore")

	data, err := afero.ReadFile(fs, path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == entry {
			return nil
		}
	}
	content := string(data)
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return afero.WriteFile(fs, path, []byte(content+entry+"\n"), 0644)
}
