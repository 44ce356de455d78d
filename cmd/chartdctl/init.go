package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/manifoldco/promptui"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// InitCommand creates an interactive wizard for generating python.d.conf,
// mirroring the teacher's InitCommand/promptui wizard but scoped to a
// single global config file instead of per-job INI sections.
type InitCommand struct {
	Output string `long:"output" short:"o" description:"Output file path" default:"/etc/netdata/python.d.conf"`
}

// Execute runs the wizard, or writes sane defaults unattended when stdin
// isn't a terminal (exactly the check the teacher's cli/progress.go makes
// before deciding whether to prompt at all).
func (c *InitCommand) Execute(_ []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return c.writeDefaults()
	}

	if _, err := os.Stat(c.Output); err == nil {
		if !c.confirmOverwrite() {
			fmt.Println("Setup canceled")
			return nil
		}
	}

	doc := map[string]any{
		"enabled": true,
		"debug":   false,
	}

	enablePrompt := promptui.Prompt{Label: "Enable the plugin", IsConfirm: true, Default: "Y"}
	if _, err := enablePrompt.Run(); err != nil {
		doc["enabled"] = false
	}

	debugPrompt := promptui.Prompt{Label: "Enable debug logging", IsConfirm: true, Default: "n"}
	if _, err := debugPrompt.Run(); err == nil {
		doc["debug"] = true
	}

	updateEveryPrompt := promptui.Prompt{
		Label:   "Default update_every (seconds)",
		Default: "1",
		Validate: func(input string) error {
			n, err := strconv.Atoi(input)
			if err != nil || n <= 0 {
				return fmt.Errorf("must be a positive integer")
			}
			return nil
		},
	}
	if v, err := updateEveryPrompt.Run(); err == nil {
		n, _ := strconv.Atoi(v)
		doc["update_every"] = n
	}

	for {
		addModulePrompt := promptui.Prompt{Label: "Disable a module by name (blank to finish)"}
		name, err := addModulePrompt.Run()
		if err != nil || name == "" {
			break
		}
		doc[name] = false
	}

	if err := c.save(doc); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Printf("Configuration saved to: %s\n", c.Output)
	return nil
}

func (c *InitCommand) confirmOverwrite() bool {
	prompt := promptui.Prompt{
		Label:     fmt.Sprintf("File %s already exists. Overwrite", c.Output),
		IsConfirm: true,
		Default:   "n",
	}
	_, err := prompt.Run()
	return err == nil
}

func (c *InitCommand) writeDefaults() error {
	return c.save(map[string]any{"enabled": true, "debug": false})
}

func (c *InitCommand) save(doc map[string]any) error {
	dir := filepath.Dir(c.Output)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create directory %q: %w", dir, err)
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(c.Output, out, 0o640)
}
