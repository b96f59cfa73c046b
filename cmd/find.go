package main

import (
	"encoding/json"
	"errors"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/profile-finder/internal/config"
	"github.com/sells-group/profile-finder/internal/model"
)

// errNoProfile marks a resolution that finished without a match. It maps to
// exit code 2 so scripts can tell "not found" from a failure.
var errNoProfile = errors.New("no profile found")

var (
	findCompany  string
	findJobTitle string
	findKeywords []string
	findDelay    float64
	findSemantic bool
)

var findCmd = &cobra.Command{
	Use:   "find <name> | <name company>",
	Short: "Resolve one person to a profile URL",
	Long: `Resolves a single person and prints the result as JSON.

With --company the arguments are the person's full name. Without it they are
read as free text whose last word is the company ("Jane Doe Acme"); a single
word is a name-only query.

Exits 2 when no profile validates.

Examples:
  profile-finder find "Jane Doe" --company Acme --job-title CTO
  profile-finder find Jane Doe Acme --keyword fintech`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		applyFinderFlags(cmd, cfg)

		env, err := initFinder(ctx, cfg, "find")
		if err != nil {
			return err
		}
		defer env.Close()

		q := buildFindQuery(strings.Join(args, " "))
		result := env.Resolver.Resolve(ctx, q)

		zap.L().Debug("find complete",
			zap.String("name", q.Name),
			zap.Bool("success", result.Success),
			zap.String("error", string(result.Error)),
		)

		if err := writeResultJSON(cmd.OutOrStdout(), result); err != nil {
			return err
		}
		return resultError(result)
	},
}

func init() {
	findCmd.Flags().StringVar(&findCompany, "company", "", "company the person works at")
	findCmd.Flags().StringVar(&findJobTitle, "job-title", "", "the person's job title")
	findCmd.Flags().StringArrayVar(&findKeywords, "keyword", nil, "extra search keyword (repeatable)")
	addFinderFlags(findCmd, &findDelay, &findSemantic)
	rootCmd.AddCommand(findCmd)
}

// addFinderFlags registers the tuning flags shared by find and batch.
func addFinderFlags(cmd *cobra.Command, delay *float64, semantic *bool) {
	cmd.Flags().Float64Var(delay, "delay", 0, "seconds between search requests (default from config)")
	cmd.Flags().BoolVar(semantic, "semantic", false, "validate names with the configured LLM judge")
}

// applyFinderFlags copies explicitly set tuning flags onto c.
func applyFinderFlags(cmd *cobra.Command, c *config.Config) {
	if cmd.Flags().Changed("delay") {
		if v, err := cmd.Flags().GetFloat64("delay"); err == nil {
			c.Finder.DelayBetweenRequests = v
		}
	}
	if cmd.Flags().Changed("semantic") {
		if v, err := cmd.Flags().GetBool("semantic"); err == nil {
			c.Finder.UseSemanticValidation = v
		}
	}
}

// buildFindQuery turns the positional text and flags into a query.
func buildFindQuery(arg string) model.Query {
	var q model.Query
	if findCompany != "" {
		q = model.Query{Name: strings.Join(strings.Fields(arg), " "), Company: findCompany}
	} else {
		q = model.ParseFreeQuery(arg)
	}
	if findJobTitle != "" {
		q.JobTitle = findJobTitle
	}
	if len(findKeywords) > 0 {
		q.Keywords = append(q.Keywords, findKeywords...)
	}
	return q
}

func writeResultJSON(w io.Writer, result model.SearchResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(result), "encode result")
}

// resultError converts an unsuccessful result into a command error.
func resultError(result model.SearchResult) error {
	switch {
	case result.Success:
		return nil
	case result.Error == model.ErrNotFound:
		return errNoProfile
	default:
		return eris.Errorf("resolve failed: %s", result.Error)
	}
}

// exitCode maps a command error to a process exit status.
func exitCode(err error) int {
	if errors.Is(err, errNoProfile) {
		return 2
	}
	return 1
}
