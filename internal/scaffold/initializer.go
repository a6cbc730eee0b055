// Package scaffold creates the initial taskatlas project layout: a
// default taskatlas.yml pointing at the WORKBank dataset.
package scaffold

import (
	"embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed templates/*
var templatesFS embed.FS

// ConfigFile is the file Initialize creates in the working directory
const ConfigFile = "taskatlas.yml"

// CheckExisting returns an error if taskatlas.yml already exists, so a
// plain `taskatlas init` never clobbers a configured project.
func CheckExisting() error {
	if _, err := os.Stat(ConfigFile); err == nil {
		return fmt.Errorf("project already initialized\n\nFound existing: %s\n\nUse 'taskatlas init --force' to reinitialize (this will overwrite existing configuration)", ConfigFile)
	}
	return nil
}

// Initialize writes the default taskatlas.yml.
// If force is true, an existing file is removed first.
func Initialize(force bool) error {
	if force {
		if _, err := os.Stat(ConfigFile); err == nil {
			fmt.Printf("⚠️  Removing existing %s...\n", ConfigFile)
			if err := os.Remove(ConfigFile); err != nil {
				return fmt.Errorf("failed to remove %s: %w", ConfigFile, err)
			}
		}
	}

	content, err := templatesFS.ReadFile("templates/taskatlas.yml.tmpl")
	if err != nil {
		return fmt.Errorf("failed to read taskatlas.yml template: %w", err)
	}

	if err := os.WriteFile(ConfigFile, content, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", ConfigFile, err)
	}

	return validateCreatedFile()
}

// validateCreatedFile confirms the scaffolded config is valid YAML
func validateCreatedFile() error {
	content, err := os.ReadFile(ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to read created %s: %w", ConfigFile, err)
	}

	var yamlData interface{}
	if err := yaml.Unmarshal(content, &yamlData); err != nil {
		return fmt.Errorf("created %s is not valid YAML: %w", ConfigFile, err)
	}

	return nil
}

// PrintSuccess prints the post-init summary and next steps
func PrintSuccess() {
	fmt.Println("\n✅ Successfully initialized taskatlas project!")
	fmt.Println("\nCreated:")
	fmt.Println("  ✓ taskatlas.yml")
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Adjust taskatlas.yml if your dataset or columns differ")
	fmt.Println("  2. Run 'taskatlas generate' to build the report")
	fmt.Println("  3. Run 'taskatlas serve' to preview it locally")
}
