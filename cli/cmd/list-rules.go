package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/aws/aws-sdk-go-v2/aws"
	elbv2types "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2/types"
	"github.com/spf13/cobra"

	ecd "github.com/silinternational/ecs-canary-deploy"
)

var listenerARN string

// listRulesCmd represents the list-rules command
var listRulesCmd = &cobra.Command{
	Use:   "list-rules",
	Short: "List all rules on the prod listener",
	Long:  "Command returns every rule on the prod listener along with its conditions and target groups",
	Run: func(cmd *cobra.Command, args []string) {
		listRules()
	},
}

func init() {
	rootCmd.AddCommand(listRulesCmd)

	// Here you will define your flags and configuration settings.

	// Cobra supports Persistent Flags which will work for this command
	// and all subcommands, e.g.:
	// listRulesCmd.PersistentFlags().String("foo", "", "A help for foo")

	// Cobra supports local flags which will only run when this command
	// is called directly, e.g.:
	// listRulesCmd.Flags().BoolP("toggle", "t", false, "Help message for toggle")
	listRulesCmd.PersistentFlags().StringVar(&listenerARN, "listener", "",
		"Prod listener ARN (default is $ALB_PROD_LISTENER)")
}

func listRules() {
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

	rules, err := shifter.ListRules(context.Background())
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	fmt.Printf("\nFound %v rules on listener %s\n\n", len(rules), config.ProdListenerARN)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 1, ' ', tabwriter.Debug)
	_, _ = fmt.Fprintln(w, "Priority \t Default \t Conditions \t Forwards To")

	for _, r := range rules {
		_, _ = fmt.Fprintf(w, "%s \t %t \t %s \t %s\n",
			aws.ToString(r.Priority), aws.ToBool(r.IsDefault), conditionSummary(r.Conditions),
			strings.Join(ecd.ForwardTargetGroups(r), ", "))
	}
	_ = w.Flush()
	fmt.Println("")
}

func conditionSummary(conditions []elbv2types.RuleCondition) string {
	var parts []string
	for _, c := range conditions {
		switch {
		case c.HttpHeaderConfig != nil:
			parts = append(parts, fmt.Sprintf("%s: %s",
				aws.ToString(c.HttpHeaderConfig.HttpHeaderName),
				strings.Join(c.HttpHeaderConfig.Values, "|")))
		case c.PathPatternConfig != nil:
			parts = append(parts, "path: "+strings.Join(c.PathPatternConfig.Values, "|"))
		case c.Field != nil:
			parts = append(parts, aws.ToString(c.Field))
		}
	}

	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, "; ")
}
