package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	ecd "github.com/silinternational/ecs-canary-deploy"
)

// removeRulesCmd represents the remove-rules command
var removeRulesCmd = &cobra.Command{
	Use:   "remove-rules",
	Short: "Remove all non-default rules from the prod listener",
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

		shifter, err := ecd.NewShifter(AwsCfg, config)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		removed, err := shifter.RemoveNonDefaultRules(context.Background())
		if err != nil {
			fmt.Printf("Error removing rules: %s", err)
			os.Exit(1)
		}

		fmt.Printf("Removed %v rules\n", len(removed))
		for _, arn := range removed {
			fmt.Println(arn)
		}
	},
}

func init() {
	rootCmd.AddCommand(removeRulesCmd)

	removeRulesCmd.PersistentFlags().StringVar(&listenerARN, "listener", "",
		"Prod listener ARN (default is $ALB_PROD_LISTENER)")
}
