package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/codingforme/bingolink-cli/auth"
	"github.com/codingforme/bingolink-cli/color"
	"github.com/codingforme/bingolink-cli/icon"
	"github.com/codingforme/bingolink-cli/style"
	"github.com/spf13/cobra"
	"github.com/zalando/go-keyring"
)

func init() {
	rootCmd.AddCommand(authCmd)
}

// authCmd manages the GitHub token used against the releases API.
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the GitHub token used to query releases",
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authLoginCmd.Flags().StringP("token", "t", "", "Token to store instead of prompting for it")
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store a GitHub token in the system keyring",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		token, _ := cmd.Flags().GetString("token")

		if token == "" {
			handleErr(survey.AskOne(&survey.Password{
				Message: "GitHub token",
				Help:    "A token without scopes is enough, it only raises the API rate limit",
			}, &token, survey.WithValidator(survey.Required)))
		}

		handleErr(auth.SetToken(strings.TrimSpace(token)))
		fmt.Printf("%s token saved\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}

func init() {
	authCmd.AddCommand(authLogoutCmd)
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored GitHub token",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		err := auth.DeleteToken()
		if errors.Is(err, keyring.ErrNotFound) {
			fmt.Printf("%s no token stored\n", icon.Get(icon.Info))
			return
		}
		handleErr(err)
		fmt.Printf("%s token removed\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}

func init() {
	authCmd.AddCommand(authStatusCmd)
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Tell whether a GitHub token is available",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		_, err := auth.GetToken()
		switch {
		case err == nil:
			fmt.Printf("%s token stored in the system keyring\n", style.Fg(color.Green)(icon.Get(icon.Success)))
		case errors.Is(err, keyring.ErrNotFound):
			fmt.Printf("%s no token stored, requests are anonymous\n", icon.Get(icon.Info))
		default:
			handleErr(err)
		}
	},
}
