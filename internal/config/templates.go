package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Stock Evaluator Configuration

[ui]
# Enable colored output
color_enabled = true
# Date label format for chart candles
date_format = "01-02"

[analysis]
# LLM model used for the combined analysis and the risk report
model = "gpt-4o"
# Image model used for the illustrative stock image
image_model = "dall-e-3"
# Temperature for analysis responses (0.0 - 2.0)
temperature = 0.5
# Maximum tokens for analysis responses
max_tokens = 2048
# Request an illustrative image alongside the analysis
generate_image = true
# Request a dedicated risk report alongside the analysis
generate_report = true

# Fallback values substituted when a template field is missing from the
# analysis response. Arbitrary placeholders, not domain truth.
[analysis.defaults]
price = 100.0
score = 80
signal = "Hold"
risk = "Medium"

[chart]
# Number of simulated candles rendered on the dashboard
days = 30
`

const credentialsTemplate = `# Stock Evaluator Credentials
# WARNING: Keep this file secure! Do not commit to version control.
# The OPENAI_API_KEY environment variable takes precedence over this file.

[openai]
api_key = ""
`

func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}

	return nil
}

func createTemplateCredentials(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "credentials.toml")
	// Use restricted permissions for credentials file
	if err := os.WriteFile(path, []byte(credentialsTemplate), 0600); err != nil {
		return fmt.Errorf("writing credentials template: %w", err)
	}

	return nil
}
