package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nbrandt/habitual/internal/keyring"
	"github.com/nbrandt/habitual/internal/models"
	"github.com/nbrandt/habitual/internal/storage"
)

type ConfigCmd struct {
	Timezone   ConfigTimezoneCmd   `cmd:"" help:"Show or set the timezone used for due-date evaluation."`
	Connection ConfigConnectionCmd `cmd:"" help:"Manage the database connection string in the OS keyring."`
}

type ConfigTimezoneCmd struct {
	Zone string `arg:"" optional:"" help:"IANA timezone name (e.g. America/New_York), or 'Local' for the system zone."`
}

func (c *ConfigTimezoneCmd) Run(ctx *Context) error {
	if c.Zone == "" {
		settings, err := ctx.Store.GetSettings()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		fmt.Printf("Timezone: %s\n", settings.Timezone)
		return nil
	}

	if c.Zone != "Local" {
		if _, err := time.LoadLocation(c.Zone); err != nil {
			return fmt.Errorf("invalid timezone %q: %w", c.Zone, err)
		}
	}

	if err := ctx.Store.SaveSettings(models.Settings{Timezone: c.Zone}); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Printf("Timezone set to: %s\n", c.Zone)
	return nil
}

type ConfigConnectionCmd struct {
	Set    ConfigConnectionSetCmd    `cmd:"" help:"Store a connection string in the OS keyring."`
	Show   ConfigConnectionShowCmd   `cmd:"" help:"Show the stored connection string (password masked)."`
	Delete ConfigConnectionDeleteCmd `cmd:"" help:"Remove the connection string from the OS keyring."`
}

type ConfigConnectionSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store in keyring."`
}

func (c *ConfigConnectionSetCmd) Run(ctx *Context) error {
	if !storage.IsPostgres(c.ConnectionString) && !strings.Contains(c.ConnectionString, "host=") {
		return errors.New("connection string must be a valid PostgreSQL connection string")
	}

	if storage.HasEmbeddedCredentials(c.ConnectionString) {
		// The keyring is encrypted, so embedded credentials are acceptable
		// here, unlike on the command line.
		fmt.Println("Note: connection string contains embedded credentials; it will be stored in the encrypted OS keyring.")
	}

	if err := keyring.SetConnectionString(c.ConnectionString); err != nil {
		return fmt.Errorf("failed to store connection string in keyring: %w", err)
	}

	fmt.Println("Connection string stored in OS keyring")
	fmt.Println("You can now use habitual without the --config flag")
	return nil
}

type ConfigConnectionShowCmd struct{}

func (c *ConfigConnectionShowCmd) Run(ctx *Context) error {
	connStr, err := keyring.GetConnectionString()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring. Use 'habitual config connection set' to store one")
		}
		return fmt.Errorf("failed to retrieve connection string from keyring: %w", err)
	}

	fmt.Println(maskPassword(connStr))
	return nil
}

type ConfigConnectionDeleteCmd struct{}

func (c *ConfigConnectionDeleteCmd) Run(ctx *Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return fmt.Errorf("failed to delete connection string from keyring: %w", err)
	}

	fmt.Println("Connection string deleted from OS keyring")
	return nil
}

// maskPassword masks passwords in connection strings for display
func maskPassword(connStr string) string {
	if storage.IsPostgres(connStr) {
		if idx := strings.Index(connStr, "://"); idx != -1 {
			remaining := connStr[idx+3:]
			if atIdx := strings.LastIndex(remaining, "@"); atIdx != -1 {
				userInfo := remaining[:atIdx]
				if colonIdx := strings.Index(userInfo, ":"); colonIdx != -1 {
					return connStr[:idx+3] + userInfo[:colonIdx] + ":****" + connStr[idx+3+atIdx:]
				}
			}
		}
		return connStr
	}

	if strings.Contains(connStr, "password=") {
		var masked []string
		for _, part := range strings.Fields(connStr) {
			if strings.HasPrefix(part, "password=") {
				masked = append(masked, "password=****")
			} else {
				masked = append(masked, part)
			}
		}
		return strings.Join(masked, " ")
	}

	return connStr
}
