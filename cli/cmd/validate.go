package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	ecd "github.com/silinternational/ecs-canary-deploy"
)

var (
	validationURL      string
	validationAttempts int
	validationInterval int
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Send test traffic through the canary rule and check for a 2xx response",
	Long: `Command sends GET requests carrying the canary HTTP header to the validation URL,
retrying on a fixed interval until a 2xx response or the attempts run out`,
	Run: func(cmd *cobra.Command, args []string) {
		initAwsCfg()

		config, err := ecd.ConfigFromEnv()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		if validationURL != "" {
			config.ValidationURL = validationURL
		}
		if headerName != "" {
			config.HeaderName = headerName
		}
		if len(headerValues) != 0 {
			config.HeaderValues = headerValues
		}
		if validationAttempts != 0 {
			config.ValidationAttempts = validationAttempts
		}
		if validationInterval != 0 {
			config.ValidationInterval = time.Duration(validationInterval) * time.Second
		}

		if config.ValidationURL == "" {
			fmt.Println("a validation URL is required, set --url or $VALIDATION_URL")
			os.Exit(1)
		}

		shifter, err := ecd.NewShifter(AwsCfg, config)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		if err := shifter.ValidateTestEndpoint(context.Background()); err != nil {
			fmt.Printf("Validation failed: %s", err)
			os.Exit(1)
		}

		fmt.Printf("Validation succeeded for %s\n", config.ValidationURL)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.PersistentFlags().StringVar(&validationURL, "url", "",
		"Validation URL (default is $VALIDATION_URL)")
	validateCmd.PersistentFlags().StringVar(&headerName, "header-name", "",
		"Canary HTTP header name (default is $HTTP_HEADER_NAME)")
	validateCmd.PersistentFlags().StringSliceVar(&headerValues, "header-value", nil,
		"Canary HTTP header values (default is $HTTP_HEADER_VALUE)")
	validateCmd.PersistentFlags().IntVar(&validationAttempts, "attempts", 0,
		"Number of validation attempts before giving up (default is $VALIDATION_ATTEMPTS, else 5)")
	validateCmd.PersistentFlags().IntVar(&validationInterval, "interval-seconds", 0,
		"Number of seconds between validation attempts (default is $VALIDATION_INTERVAL, else 5s)")
}
