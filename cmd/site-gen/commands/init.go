package commands

import (
	"fmt"
	"log/slog"

	"github.com/toddself/site-gen/internal/config"
	"github.com/toddself/site-gen/internal/logfields"
	"github.com/toddself/site-gen/internal/templates"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force       bool   `help:"Overwrite existing configuration and template files"`
	TemplateDir string `short:"t" name:"template-dir" default:"templates" help:"Directory to write the default templates into"`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	slog.Info("Initializing configuration", logfields.Path(root.Config), slog.Bool("force", i.Force))
	if err := config.Init(root.Config, i.Force); err != nil {
		return err
	}
	if err := templates.WriteDefaults(i.TemplateDir, i.Force); err != nil {
		return err
	}

	fmt.Printf("Wrote %s and default templates to %s\n", root.Config, i.TemplateDir)
	return nil
}
