package templates

import (
	"embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/toddself/site-gen/internal/logfields"
)

//go:embed defaults/*.tmpl
var embeddedTemplates embed.FS

// resolveBody returns a user override from templateDir when present and
// non-blank, falling back to the embedded default for name.
func resolveBody(templateDir, name string) (string, Source, error) {
	if templateDir != "" {
		path := filepath.Join(templateDir, name+".tmpl")
		// #nosec G304 - path is a known template name under the configured directory
		if b, err := os.ReadFile(path); err == nil && strings.TrimSpace(string(b)) != "" {
			slog.Debug("Loaded template override", logfields.Template(name), logfields.Path(path))
			return string(b), Source{Kind: "file", Path: path}, nil
		}
	}

	b, err := embeddedTemplates.ReadFile("defaults/" + name + ".tmpl")
	if err != nil {
		return "", Source{}, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	return string(b), Source{Kind: "embedded"}, nil
}

// WriteDefaults copies the embedded default templates into dir so they can
// be customized. Existing files are only overwritten when force is set.
func WriteDefaults(dir string, force bool) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create template directory: %w", err)
	}

	for _, name := range Names {
		path := filepath.Join(dir, name+".tmpl")
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("template already exists: %s (use --force to overwrite)", path)
		}

		b, err := embeddedTemplates.ReadFile("defaults/" + name + ".tmpl")
		if err != nil {
			return fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
		}
		if err := os.WriteFile(path, b, 0644); err != nil {
			return fmt.Errorf("failed to write template file: %w", err)
		}
	}

	return nil
}
