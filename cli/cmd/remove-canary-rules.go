package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	ecd "github.com/silinternational/ecs-canary-deploy"
)

// removeCanaryRulesCmd represents the remove-canary-rules command
var removeCanaryRulesCmd = &cobra.Command{
	Use:   "remove-canary-rules",
	Short: "Remove rules matching the canary HTTP header from the prod listener",
	Long:  "",
	Run: func(cmd *cobra.Command, args []string) {
		initAwsCfg()

		config, err := ecd.ConfigFromEnv()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		if listenerARN != "" {
			config.ProdListenerARN = listenerARN
		}
		if headerName != "" {
			config.HeaderName = headerName
		}

		shifter, err := ecd.NewShifter(AwsCfg, config)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		removed, err := shifter.RemoveCanaryRules(context.Background())
		if err != nil {
			fmt.Printf("Error removing canary rules: %s", err)
			os.Exit(1)
		}

		fmt.Printf("Removed %v canary rules\n", len(removed))
		for _, arn := range removed {
			fmt.Println(arn)
		}
	},
}

func init() {
	rootCmd.AddCommand(removeCanaryRulesCmd)

	removeCanaryRulesCmd.PersistentFlags().StringVar(&listenerARN, "listener", "",
		"Prod listener ARN (default is $ALB_PROD_LISTENER)")
	removeCanaryRulesCmd.PersistentFlags().StringVar(&headerName, "header-name", "",
		"Canary HTTP header name (default is $HTTP_HEADER_NAME)")
}
