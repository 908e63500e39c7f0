package e2e

import (
	"bytes"
	"fmt"
	"os"
	"text/template"
)

// appConfigOptions is used to fill in a .env template with details unique to
// a specific test environment. Keep this as small as possible so the input
// remains as close to a "real" .env file as we can make it.
//
// Fields are exported so we can use them in templates.
type appConfigOptions struct {
	SMTPHost   string
	SMTPPort   int
	Username   string
	Password   string
	AdminEmail string
}

// envKeys are the variables createAppConfig writes. Tests clear them from
// the process environment, which would otherwise win over the file.
var envKeys = []string{
	"SMTP_HOST",
	"SMTP_PORT",
	"SMTP_USER",
	"SMTP_PASSWORD",
	"FROM_EMAIL",
	"FROM_NAME",
	"ADMIN_EMAIL",
	"SMTP_INSECURE_SKIP_VERIFY",
}

// createAppConfig writes a .env file to the given path.
// Use this configuration to start the e2e test environment
func createAppConfig(path string, opts appConfigOptions) error {
	configTemplate := `# Test relay
SMTP_HOST={{ .SMTPHost }}
SMTP_PORT={{ .SMTPPort }}
SMTP_USER={{ .Username }}
SMTP_PASSWORD="{{ .Password }}"
FROM_EMAIL=noreply@fombinatower.com
ADMIN_EMAIL={{ .AdminEmail }}
# the test relay uses a self-signed cert
SMTP_INSECURE_SKIP_VERIFY=true
`

	tmpl, err := template.New("conf").Parse(configTemplate)

	// This means the config template string was written incorrectly. Not
	// an issue with the application itself.
	if err != nil {
		return fmt.Errorf("couldn't parse the application config template: %v", err)
	}

	var config bytes.Buffer

	err = tmpl.Execute(&config, opts)

	// This is an issue with the test environment, not the application
	if err != nil {
		return fmt.Errorf("couldn't populate the application config template: %v", err)
	}

	if err := os.WriteFile(path, config.Bytes(), 0600); err != nil {
		return fmt.Errorf("couldn't write the config file: %v", err)
	}

	return nil
}
