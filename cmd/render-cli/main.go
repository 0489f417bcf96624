package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-render/pkg/render"
	"github.com/goliatone/go-render/pkg/render/pongo"
)

func main() {
	template := flag.String("template", "", "template name to render")
	templatesDir := flag.String("templates", "templates", "template directory")
	data := flag.String("data", "", "model file (.json, .yaml or .yml)")
	locale := flag.String("locale", render.DefaultLocale.String(), "locale for locale-sensitive formatting")
	encoding := flag.String("encoding", render.DefaultEncoding, "template source and output encoding")
	output := flag.String("output", "", "output file (stdout if empty)")
	interactive := flag.Bool("interactive", false, "prompt for model values when no data file is given")
	flag.Parse()

	if *template == "" {
		log.Fatalf("missing -template")
	}

	tag, err := language.Parse(*locale)
	if err != nil {
		log.Fatalf("invalid locale %q: %v", *locale, err)
	}

	model, err := buildModel(*data, *interactive)
	if err != nil {
		log.Fatalf("Failed to load model: %v", err)
	}

	engine, err := pongo.DefaultDir(*templatesDir)
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}

	if *output == "" {
		if err := engine.Render(*template, model, tag, *encoding, os.Stdout); err != nil {
			log.Fatalf("Failed to render template: %v", err)
		}
		return
	}

	file, err := os.Create(*output)
	if err != nil {
		log.Fatalf("Failed to create output file: %v", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Printf("close output: %v", err)
		}
	}()

	if err := engine.Render(*template, model, tag, *encoding, file); err != nil {
		log.Fatalf("Failed to render template: %v", err)
	}
	fmt.Printf("Rendered %s to %s\n", *template, *output)
}

func buildModel(path string, interactive bool) (map[string]any, error) {
	if path != "" {
		return decodeModelFile(path)
	}
	if interactive {
		return promptModel()
	}
	return map[string]any{}, nil
}

// decodeModelFile reads a JSON or YAML model file into a flat-or-nested map.
func decodeModelFile(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model file: %w", err)
	}

	model := map[string]any{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(raw, &model); err != nil {
			return nil, fmt.Errorf("decode JSON model: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &model); err != nil {
			return nil, fmt.Errorf("decode YAML model: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported model format %q (want .json, .yaml or .yml)", filepath.Ext(path))
	}
	return model, nil
}

// promptModel collects key=value pairs from the terminal until an empty entry.
func promptModel() (map[string]any, error) {
	model := map[string]any{}
	for {
		var entry string
		prompt := &survey.Input{
			Message: "Model entry (key=value, empty to finish):",
			Help:    "Values are stored as strings; repeat a key to overwrite it.",
		}
		if err := survey.AskOne(prompt, &entry); err != nil {
			return nil, fmt.Errorf("prompt model entry: %w", err)
		}

		entry = strings.TrimSpace(entry)
		if entry == "" {
			return model, nil
		}
		key, value, ok := strings.Cut(entry, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			fmt.Println("expected key=value")
			continue
		}
		model[key] = strings.TrimSpace(value)
	}
}
