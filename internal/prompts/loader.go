// Package prompts provides the externalized LLM prompt templates. Prompts are
// stored as JSON files and embedded at compile time.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

// The embedded set is fixed at compile time, so all files are parsed once.
var (
	loadOnce sync.Once
	loaded   map[string]map[string]string
	loadErr  error
)

func load() (map[string]map[string]string, error) {
	loadOnce.Do(func() {
		entries, err := promptFiles.ReadDir(".")
		if err != nil {
			loadErr = err
			return
		}
		loaded = make(map[string]map[string]string, len(entries))
		for _, entry := range entries {
			data, err := promptFiles.ReadFile(entry.Name())
			if err != nil {
				loadErr = fmt.Errorf("failed to read prompt file %s: %w", entry.Name(), err)
				return
			}
			var prompts map[string]string
			if err := json.Unmarshal(data, &prompts); err != nil {
				loadErr = fmt.Errorf("failed to parse prompt file %s: %w", entry.Name(), err)
				return
			}
			loaded[entry.Name()] = prompts
		}
	})
	return loaded, loadErr
}

// Get retrieves a prompt by filename and key. The filename carries no path
// (e.g. "generate.json"). Returns an error if the file or key is not found.
func Get(filename, key string) (string, error) {
	files, err := load()
	if err != nil {
		return "", err
	}

	prompts, exists := files[filename]
	if !exists {
		return "", fmt.Errorf("prompt file %s not found", filename)
	}
	prompt, exists := prompts[key]
	if !exists {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return prompt, nil
}

// MustGet retrieves a prompt by filename and key, panicking if not found.
// Use this for prompts that are required at initialization time.
func MustGet(filename, key string) string {
	prompt, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// Format replaces template placeholders in the form {{.Key}} with values from
// data. Placeholders without a value are left untouched.
func Format(template string, data map[string]string) string {
	result := template
	for key, value := range data {
		placeholder := fmt.Sprintf("{{.%s}}", key)
		result = strings.ReplaceAll(result, placeholder, value)
	}
	return result
}
