package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	ecd "github.com/silinternational/ecs-canary-deploy"
)

var (
	headerName   string
	headerValues []string
	targetGroup  string
	rulePriority int
)

// createCanaryRuleCmd represents the create-canary-rule command
var createCanaryRuleCmd = &cobra.Command{
	Use:   "create-canary-rule",
	Short: "Create the canary rule routing test traffic to the green target group",
	Long: `Removes all non-default rules from the prod listener, then creates a single rule
forwarding requests that carry the canary HTTP header to the green target group`,
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
		if len(headerValues) != 0 {
			config.HeaderValues = headerValues
		}
		if targetGroup != "" {
			config.GreenTargetGroupARN = targetGroup
		}
		if rulePriority != 0 {
			config.RulePriority = rulePriority
		}

		shifter, err := ecd.NewShifter(AwsCfg, config)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		rule, err := shifter.CreateCanaryRule(context.Background())
		if err != nil {
			fmt.Printf("Error creating canary rule: %s", err)
			os.Exit(1)
		}

		fmt.Printf("Canary rule created for header \"%s\":\n\n", config.HeaderName)
		jb, _ := json.MarshalIndent(rule, "", "  ")
		fmt.Printf("%s\n", string(jb))
	},
}

func init() {
	rootCmd.AddCommand(createCanaryRuleCmd)

	// Here you will define your flags and configuration settings.

	// Cobra supports Persistent Flags which will work for this command
	// and all subcommands, e.g.:
	// createCanaryRuleCmd.PersistentFlags().String("foo", "", "A help for foo")

	// Cobra supports local flags which will only run when this command
	// is called directly, e.g.:
	// createCanaryRuleCmd.Flags().BoolP("toggle", "t", false, "Help message for toggle")
	createCanaryRuleCmd.PersistentFlags().StringVar(&listenerARN, "listener", "",
		"Prod listener ARN (default is $ALB_PROD_LISTENER)")
	createCanaryRuleCmd.PersistentFlags().StringVar(&headerName, "header-name", "",
		"Canary HTTP header name (default is $HTTP_HEADER_NAME)")
	createCanaryRuleCmd.PersistentFlags().StringSliceVar(&headerValues, "header-value", nil,
		"Canary HTTP header values (default is $HTTP_HEADER_VALUE)")
	createCanaryRuleCmd.PersistentFlags().StringVar(&targetGroup, "target-group", "",
		"Green target group ARN (default is $GREEN_TARGET_GROUP)")
	createCanaryRuleCmd.PersistentFlags().IntVar(&rulePriority, "priority", 0,
		"Rule priority, 0 picks the lowest free priority")
}
