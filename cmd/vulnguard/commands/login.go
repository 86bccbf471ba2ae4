package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vulnguard-io/vulnguard-client/internal/constants"
	"github.com/vulnguard-io/vulnguard-client/pkg/vgclient"
	"github.com/vulnguard-io/vulnguard-client/pkg/vulnguard"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// cliConfig is the on-disk shape of ~/.vulnguard/config.yml.
type cliConfig struct {
	Token   string `yaml:"token,omitempty"`
	API     string `yaml:"api,omitempty"`
	RestAPI string `yaml:"rest_api,omitempty"`
	Output  string `yaml:"output,omitempty"`
}

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store an API token",
		Long:  "Verify an API token against the service and store it in the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if token == "" {
				_, err := os.Stdout.WriteString("API Token: ")
				if err != nil {
					return fmt.Errorf("failed to write prompt: %w", err)
				}

				tokenBytes, err := term.ReadPassword(syscall.Stdin)
				if err != nil {
					return fmt.Errorf("failed to read token: %w", err)
				}

				token = string(tokenBytes)

				_, _ = os.Stdout.WriteString("\n")
			}

			if token == "" {
				return ErrTokenNotConfigured
			}

			// Verify the token before persisting it
			client, err := vgclient.New(&vulnguard.Config{
				Token:           token,
				APIEndpoint:     viper.GetString("api"),
				RestAPIEndpoint: viper.GetString("rest_api"),
				SkipTLSVerify:   viper.GetBool("insecure"),
			})
			if err != nil {
				return err
			}

			orgs, err := client.Organizations().List(context.Background(), nil)
			if err != nil {
				return fmt.Errorf("verifying token: %w", err)
			}

			err = saveConfig(cliConfig{
				Token:   token,
				API:     viper.GetString("api"),
				RestAPI: viper.GetString("rest_api"),
				Output:  viper.GetString("output"),
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(os.Stdout, "Logged in. Token has access to %d organization(s).\n", len(orgs))

			return nil
		},
	}

	cmd.Flags().StringVarP(&token, "token", "t", "", "API token (prompted when omitted)")

	return cmd
}

// saveConfig writes the config file, creating ~/.vulnguard when needed.
func saveConfig(config cliConfig) error {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}

		configDir := filepath.Join(home, ".vulnguard")

		err = os.MkdirAll(configDir, constants.ConfigDirPerm)
		if err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}

		configFile = filepath.Join(configDir, "config.yml")
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
