package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// resolutionOptions are the requirement resolution flags shared by the
// transaction and build-dependencies commands. The flags are not bound to
// viper; resolve reads the config keys itself.
type resolutionOptions struct {
	SkipMissing bool
	PreferRepos []string
}

func (o *resolutionOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.SkipMissing, "skip-missing", false, "Report unresolved requirements instead of failing")
	cmd.Flags().StringArrayVar(&o.PreferRepos, "prefer-repo", nil, "Repository to prefer for installs (repeatable)")
}

// resolve merges the flags of cmd with the skip_missing and prefer_repos
// config keys. A flag set on the command line wins.
func (o resolutionOptions) resolve(cmd *cobra.Command) (bool, []string) {
	return resolveBool(cmd, o.SkipMissing, "skip_missing", "skip-missing"),
		resolveStrings(cmd, o.PreferRepos, "prefer_repos", "prefer-repo")
}

func resolveStrings(cmd *cobra.Command, values []string, key string, flagName string) []string {
	if flagChanged(cmd, flagName) || (cmd == nil && len(values) > 0) {
		return values
	}
	return viper.GetStringSlice(key)
}

func resolveBool(cmd *cobra.Command, value bool, key string, flagName string) bool {
	if cmd == nil || flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetBool(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || name == "" {
		return false
	}
	flag := cmd.Flags().Lookup(name)
	return flag != nil && flag.Changed
}
