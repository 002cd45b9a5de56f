package cli

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/printerm/printerm/internal/version"
	"github.com/printerm/printerm/pkg/cobrax/topics"
	"github.com/printerm/printerm/pkg/config"
	"github.com/printerm/printerm/pkg/history"
	"github.com/printerm/printerm/pkg/logging"
	"github.com/printerm/printerm/pkg/paths"
	"github.com/printerm/printerm/pkg/render"
	"github.com/printerm/printerm/pkg/scripts"
	"github.com/printerm/printerm/pkg/templates"
	"github.com/printerm/printerm/pkg/ui"
)

//go:embed help
var helpFiles embed.FS

// app carries the dependencies every command shares. Paths resolve on
// first use so commands that never touch the filesystem (version,
// help) keep working in broken environments.
type app struct {
	output ui.Format
	paths  paths.Paths
}

func (a *app) init() error {
	if a.paths != nil {
		return nil
	}
	p, err := paths.New()
	if err != nil {
		return err
	}
	a.paths = p
	return nil
}

// config loads the effective configuration. It is re-read on every
// call so settings changes apply without restarting.
func (a *app) config() (*config.Config, error) {
	if err := a.init(); err != nil {
		return nil, err
	}
	return config.LoadFromPath(a.paths.ConfigFilePath())
}

func (a *app) store() (*templates.Store, error) {
	if err := a.init(); err != nil {
		return nil, err
	}
	return templates.NewStore(a.paths.TemplatesDir()), nil
}

func (a *app) renderer(cfg *config.Config) *render.Renderer {
	return render.NewRenderer(scripts.NewRunner(cfg.ScriptTimeout()))
}

// openHistory opens the job history database, or returns nil when
// history is disabled. Callers must Close a non-nil store.
func (a *app) openHistory(cfg *config.Config) (*history.Store, error) {
	if !cfg.History.Enabled {
		return nil, nil
	}
	if err := a.init(); err != nil {
		return nil, err
	}
	return history.Open(a.paths.HistoryDBPath())
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var (
		verbosity int
		output    string
	)
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "printerm",
		Short: MsgRootShort,
		Long: `printerm renders small documents from templates and prints them on a
networked ESC/POS thermal printer: work tickets, shopping lists, notes,
the week's agenda. Every document can be previewed on screen before
paper is spent.`,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Setup logging based on verbosity
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")

			format, err := ui.ParseFormat(output)
			if err != nil {
				return err
			}
			a.output = format.Resolve(os.Stdout)
			return nil
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", FlagVerboseDesc)
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "auto", FlagOutputDesc)

	// Disable automatic help command (we'll use our custom one from topics)
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	// Add all commands
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newPrintCmd(a))
	rootCmd.AddCommand(newPreviewCmd(a))
	rootCmd.AddCommand(newTemplatesCmd(a))
	rootCmd.AddCommand(newSettingsCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newHistoryCmd(a))
	rootCmd.AddCommand(newWebCmd(a))
	rootCmd.AddCommand(newUpdateCheckCmd(a))

	// Initialize topic-based help system: embedded guides first, user
	// topic files shadow them when present
	if builtin, err := fs.Sub(helpFiles, "help"); err == nil {
		sources := []fs.FS{builtin}
		if p, err := paths.New(); err == nil {
			if _, err := os.Stat(p.TopicsDir()); err == nil {
				sources = append(sources, os.DirFS(p.TopicsDir()))
			}
		}
		_ = topics.InitializeWithOptions(rootCmd, topics.Options{
			Renderer: topics.NewGlamourRenderer(),
		}, sources...)
	}

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Long:  `Print detailed version information including commit hash and build date`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("printerm version %s\n", version.Version)
			if version.Commit != "" && version.Commit != "unknown" {
				fmt.Printf("Commit: %s\n", version.Commit)
			}
			if version.Date != "" && version.Date != "unknown" {
				fmt.Printf("Built:  %s\n", version.Date)
			}
		},
	}
}

// completeTemplateNames offers template names for the first positional
// argument.
func completeTemplateNames(a *app) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) != 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		store, err := a.store()
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		names, err := store.Names()
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	}
}
