package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/iotaledger/tangle-engine/adapters"
	"github.com/iotaledger/tangle-engine/global"
	"github.com/iotaledger/tangle-engine/ids"
	"github.com/iotaledger/tangle-engine/sim"
	"github.com/iotaledger/tangle-engine/tangle"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "tangle-sim",
	Short: "drives the tangle core with gossip, local-issuance and milestone producers",
	RunE:  run,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./.tangle-sim.yaml)")
	rootCmd.Flags().Float64("tps-in", 2, "ingestion producer rate, messages/s")
	rootCmd.Flags().Float64("tps-out", 1, "local issuance producer rate, messages/s")
	rootCmd.Flags().Float64("milestone-interval", 10, "milestone interval, seconds")
	rootCmd.Flags().String("log-level", "info", "logger level")
	rootCmd.Flags().String("trace-tags", "", "comma-separated subsystem trace tags to enable (insert, prop_state, confirm, update rsi, get_score, select_tip, lifecycle)")
	_ = viper.BindPFlag("sim.tps_in", rootCmd.Flags().Lookup("tps-in"))
	_ = viper.BindPFlag("sim.tps_out", rootCmd.Flags().Lookup("tps-out"))
	_ = viper.BindPFlag("sim.milestone_interval", rootCmd.Flags().Lookup("milestone-interval"))
	_ = viper.BindPFlag("logger.level", rootCmd.Flags().Lookup("log-level"))
	_ = viper.BindPFlag("logger.trace_tags", rootCmd.Flags().Lookup("trace-tags"))
}

func initConfig() {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".tangle-sim")
		viper.SetConfigType("yaml")
	}
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

func run(_ *cobra.Command, _ []string) error {
	log := global.NewFromConfig()

	cfg := tangle.DefaultConfig()
	engine := tangle.Init(cfg, tangle.WithLogger(log))
	defer tangle.Teardown()

	engine.AddSolidEntrypoint(ids.MessageIdFromBytes([]byte("genesis")), ids.GenesisMilestoneIndex)

	simCfg := sim.DefaultConfig()
	if v := viper.GetFloat64("sim.tps_in"); v > 0 {
		simCfg.TPSIn = v
	}
	if v := viper.GetFloat64("sim.tps_out"); v > 0 {
		simCfg.TPSOut = v
	}
	if v := viper.GetFloat64("sim.milestone_interval"); v > 0 {
		simCfg.MilestoneIntervalSeconds = v
	}

	driver := sim.NewDriver(engine, simCfg, log, adapters.NewMathRandSource(1))

	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Log().Info("received shutdown signal")
		cancel()
	}()

	driver.Run(ctx)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
