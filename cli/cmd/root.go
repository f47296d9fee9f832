package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	homedir "github.com/mitchellh/go-homedir"

	"github.com/spf13/cobra"

	"github.com/spf13/viper"
)

var (
	AwsCfg  aws.Config
	cfgFile string
	Profile string
	Region  string

	// The following vars are updated by build process

	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
	BuiltBy = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ecs-canary-deploy",
	Short: "Manage ALB canary rules around blue/green ECS deployments",
	Long: `A CLI, library, and set of CodeDeploy lifecycle hook Lambdas for routing test traffic
to the green task set of a blue/green ECS deployment via a custom HTTP header rule`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Here you will define your flags and configuration settings.
	// Cobra supports persistent flags, which, if defined here,
	// will be global for your application.

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.ecs-canary-deploy.yaml)")
	rootCmd.PersistentFlags().StringVarP(&Profile, "profile", "p", "", "AWS shared credentials profile to use")
	rootCmd.PersistentFlags().StringVarP(&Region, "region", "r", "us-east-1", "AWS region")

	// Cobra also supports local flags, which will only run
	// when this action is called directly.
	rootCmd.Flags().BoolP("toggle", "t", false, "Help message for toggle")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".ecs-canary-deploy" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".ecs-canary-deploy")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

func initAwsCfg() {
	var cfgOpts []func(options *config.LoadOptions) error

	if cfgFile != "" {
		cfgOpts = append(cfgOpts, config.WithSharedConfigFiles([]string{cfgFile}))
	}
	if Profile != "" {
		cfgOpts = append(cfgOpts, config.WithSharedConfigProfile(Profile))
	}
	if Region != "" {
		cfgOpts = append(cfgOpts, config.WithRegion(Region))
	}

	var err error
	AwsCfg, err = config.LoadDefaultConfig(context.TODO(), cfgOpts...)
	if err != nil {
		log.Printf("failed to load config with profile %s", Profile)
	}
}
