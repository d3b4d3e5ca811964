package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/apimgr/moviesaver/src/store"
)

// shellSupport knows how to emit a completion script for one shell and the line
// that loads it from an rc file
type shellSupport struct {
	complete func(cmd *cobra.Command, w io.Writer) error
	// loader is a format string taking the binary name
	loader string
}

var shells = map[string]shellSupport{
	"bash": {
		complete: func(c *cobra.Command, w io.Writer) error { return c.GenBashCompletionV2(w, true) },
		loader:   "source <(%s shell completions bash)",
	},
	"zsh": {
		complete: func(c *cobra.Command, w io.Writer) error { return c.GenZshCompletion(w) },
		loader:   "source <(%s shell completions zsh)",
	},
	"fish": {
		complete: func(c *cobra.Command, w io.Writer) error { return c.GenFishCompletion(w, true) },
		loader:   "%s shell completions fish | source",
	},
	"powershell": {
		complete: func(c *cobra.Command, w io.Writer) error { return c.GenPowerShellCompletionWithDesc(w) },
		loader:   "Invoke-Expression (& %s shell completions powershell)",
	},
}

func shellNames() []string {
	names := make([]string, 0, len(shells))
	for name := range shells {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// lookupShell accepts pwsh and Windows executable names as aliases
func lookupShell(name string) (shellSupport, error) {
	key := strings.TrimSuffix(strings.ToLower(name), ".exe")
	if key == "pwsh" {
		key = "powershell"
	}
	if s, ok := shells[key]; ok {
		return s, nil
	}
	return shellSupport{}, fmt.Errorf("unsupported shell: %s\nSupported: %s", name, strings.Join(shellNames(), ", "))
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Tab completion for commands, flags and catalog indexes",
}

var completionsCmd = &cobra.Command{
	Use:   "completions [shell]",
	Short: "Print the completion script for a shell",
	Long: `Print the completion script for a shell (default: $SHELL).
Besides commands and flags, "delete" completes the indexes of the movies in
the configured catalog.

Example:
  ` + getBinaryName() + ` shell completions fish > ~/.config/fish/completions/` + getBinaryName() + `.fish`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"bash", "zsh", "fish", "powershell", "pwsh"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return printCompletions(cmd.OutOrStdout(), shellArg(args))
	},
}

var initCmd = &cobra.Command{
	Use:   "init [shell]",
	Short: "Print the line that loads completions, for your rc file",
	Long: `Print the line that loads completions (default shell: $SHELL).

  eval "$(` + getBinaryName() + ` shell init)"`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"bash", "zsh", "fish", "powershell", "pwsh"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return printInit(cmd.OutOrStdout(), shellArg(args))
	},
}

func init() {
	shellCmd.AddCommand(completionsCmd, initCmd)
	rootCmd.AddCommand(shellCmd)
	deleteCmd.ValidArgsFunction = completeIndexes
}

func shellArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return detectShell()
}

// detectShell returns the base name of $SHELL, bash when unset
func detectShell() string {
	shellPath := os.Getenv("SHELL")
	if shellPath == "" {
		return "bash"
	}
	// $SHELL may carry Windows separators
	base := filepath.Base(shellPath)
	if idx := strings.LastIndex(base, "\\"); idx >= 0 {
		base = base[idx+1:]
	}
	return base
}

func printCompletions(w io.Writer, shell string) error {
	s, err := lookupShell(shell)
	if err != nil {
		return err
	}
	return s.complete(rootCmd, w)
}

func printInit(w io.Writer, shell string) error {
	s, err := lookupShell(shell)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, s.loader+"\n", getBinaryName())
	return err
}

// completeIndexes offers "<index>\t<title> (<year>)" for each stored movie. It
// reads the store directly so completion never journals or snapshots.
func completeIndexes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	s, err := store.Open(getStoreConfig())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	movies, err := s.Load(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var out []string
	for i, m := range movies {
		index := strconv.Itoa(i + 1)
		if strings.HasPrefix(index, toComplete) {
			out = append(out, fmt.Sprintf("%s\t%s (%d)", index, m.Title, m.Year))
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
