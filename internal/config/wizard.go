package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// docsDirCandidates are directories checked, in order, for existing markdown.
var docsDirCandidates = []string{"docs", "doc", "documentation", "content"}

// detectDocsDir returns the first candidate directory containing markdown.
func detectDocsDir() string {
	for _, dir := range docsDirCandidates {
		matches, _ := filepath.Glob(filepath.Join(dir, "*.md"))
		if len(matches) > 0 {
			return dir
		}
	}
	return "docs"
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to docreader! Let's configure your documentation site.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Docs directory.
	docsPrompt := promptui.Prompt{
		Label:   "Markdown directory",
		Default: detectDocsDir(),
	}
	docsDir, err := docsPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("docs dir: %w", err)
	}
	cfg.DocsDir = docsDir
	if _, err := os.Stat(docsDir); os.IsNotExist(err) {
		fmt.Printf("Note: %s does not exist yet.\n", docsDir)
	}

	// 2. Site title.
	titlePrompt := promptui.Prompt{
		Label:   "Site title",
		Default: cfg.SiteTitle,
	}
	if cfg.SiteTitle, err = titlePrompt.Run(); err != nil {
		return nil, fmt.Errorf("site title: %w", err)
	}

	// 3. Theme.
	themePrompt := promptui.Select{
		Label: "Default theme",
		Items: []string{"system", "light", "dark"},
	}
	if _, cfg.DefaultTheme, err = themePrompt.Run(); err != nil {
		return nil, fmt.Errorf("theme selection: %w", err)
	}

	// 4. Server port.
	portPrompt := promptui.Prompt{
		Label:    "Server port",
		Default:  strconv.Itoa(cfg.Server.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("server port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	// 5. Extra exclude patterns.
	excludePrompt := promptui.Prompt{
		Label:   "Extra exclude patterns (comma-separated, leave blank for defaults)",
		Default: "",
	}
	excludeStr, err := excludePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}
	if excludeStr != "" {
		cfg.Exclude = append(append([]string{}, DefaultExcludes...), splitAndTrim(excludeStr)...)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func validatePort(s string) error {
	port, err := strconv.Atoi(s)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("enter a port between 1 and 65535")
	}
	return nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
