package cmd

import (
	"os"

	"github.com/codingforme/bingolink-cli/color"
	"github.com/codingforme/bingolink-cli/config"
	"github.com/codingforme/bingolink-cli/style"
	"github.com/codingforme/bingolink-cli/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.Flags().BoolP("set-only", "s", false, "Show only variables that are set")
	envCmd.Flags().BoolP("unset-only", "u", false, "Show only variables that are unset")
	envCmd.MarkFlagsMutuallyExclusive("set-only", "unset-only")
	envCmd.SetOut(os.Stdout)
}

// envVars lists every environment variable the application reads, sorted.
func envVars() []string {
	vars := lo.Map(lo.Values(config.Default), func(f config.Field, _ int) string { return f.Env() })
	vars = append(vars, where.EnvConfigPath)
	slices.Sort(vars)
	return vars
}

// envCmd shows the supported environment variables and their values.
var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Show the supported environment variables",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		setOnly := lo.Must(cmd.Flags().GetBool("set-only"))
		unsetOnly := lo.Must(cmd.Flags().GetBool("unset-only"))

		for _, env := range envVars() {
			value, present := os.LookupEnv(env)
			if (setOnly && !present) || (unsetOnly && present) {
				continue
			}

			cmd.Print(style.New().Bold(true).Foreground(color.Purple).Render(env), "=")
			if present {
				cmd.Println(style.Fg(color.Green)(value))
			} else {
				cmd.Println(style.Fg(color.Red)("unset"))
			}
		}
	},
}
