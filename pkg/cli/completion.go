package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion <shell>",
	Short: "Generate shell completion scripts",
	Long: `Generate a completion script for your shell.

Examples:
  # Bash
  listd completion bash > /etc/bash_completion.d/listd

  # Zsh
  listd completion zsh > "${fpath[1]}/_listd"

  # Fish
  listd completion fish > ~/.config/fish/completions/listd.fish`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"bash", "zsh", "fish"},
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletionV2(os.Stdout, true)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		default:
			return fmt.Errorf("unknown shell: %s (supported: bash, zsh, fish)", args[0])
		}
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
