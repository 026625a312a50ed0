package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

// writeCompletion prints the completion script for shell (--completion).
func writeCompletion(cmd *cobra.Command, shell string) error {
	root, out := cmd.Root(), cmd.OutOrStdout()
	switch shell {
	case "bash":
		return root.GenBashCompletionV2(out, true)
	case "zsh":
		return root.GenZshCompletion(out)
	case "fish":
		return root.GenFishCompletion(out, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(out)
	}
	return fmt.Errorf("unsupported shell %q, use one of %s", shell, strings.Join(completionShells, ", "))
}

func shellCompletion(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return completionShells, cobra.ShellCompDirectiveNoFileComp
}

// envFileCompletion suggests dotenv files for the two path arguments and
// falls back to regular file completion when none match.
func envFileCompletion(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) >= 2 {
		// labels are free text
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	matches, err := filepath.Glob(toComplete + "*")
	if err != nil {
		return nil, cobra.ShellCompDirectiveDefault
	}
	var candidates []string
	for _, m := range matches {
		if isEnvFile(m) {
			candidates = append(candidates, m)
		}
	}
	if len(candidates) == 0 {
		return nil, cobra.ShellCompDirectiveDefault
	}
	return candidates, cobra.ShellCompDirectiveNoFileComp
}

func isEnvFile(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".env") || strings.HasSuffix(base, ".env")
}
