package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/carbonroots/carbonroots/internal/cli/pagination"
	"github.com/carbonroots/carbonroots/internal/greenops"
	"github.com/carbonroots/carbonroots/internal/migration"
	"github.com/carbonroots/carbonroots/internal/usagelog"
)

func newLogCmd(env *appEnv) *cobra.Command {
	cmd := &cobra.Command{Use: "log", Short: "Usage log commands"}
	cmd.AddCommand(newLogShowCmd(env), newLogMigrateCmd(env))
	return cmd
}

func newLogMigrateCmd(env *appEnv) *cobra.Command {
	var (
		to        string
		assumeYes bool
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Copy the usage log into another file or backend",
		Long: `Copies every entry of the configured usage log, in order, to the log
given by --to. The extension of --to picks the backend (.csv, .xlsx, .db).
Entries already in the destination are kept ahead of the copied ones. The
source log is not modified.`,
		Example: `  # Move from the spreadsheet log to SQLite
  carbonroots --usage-log CarbonRoots_User_Data.xlsx log migrate --to carbonroots.db`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			src, err := env.openStore()
			if err != nil {
				return err
			}
			defer func() { _ = src.Close() }()

			dst, err := usagelog.Open(to, env.cfg.UsageLogOptions())
			if err != nil {
				return err
			}
			defer func() { _ = dst.Close() }()

			return migration.RunMigration(cmd.Context(), cmd.OutOrStdout(), cmd.InOrStdin(), src, dst, assumeYes)
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "destination usage log (required)")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "do not ask for confirmation")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newLogShowCmd(env *appEnv) *cobra.Command {
	var (
		outFormat string
		user      string
		page      pagination.Params
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the usage log in the order calculations were made",
		Example: `  carbonroots log show
  carbonroots log show --user "Ada Lovelace" --output json
  carbonroots log show --page 2 --page-size 20`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkOutputFormat(outFormat); err != nil {
				return err
			}
			if err := page.Validate(); err != nil {
				return err
			}

			store, err := env.openStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			entries, err := store.Entries(cmd.Context())
			if err != nil {
				return err
			}
			entries = filterByUser(entries, user)
			total := len(entries)
			entries = pagination.Apply(entries, page)

			if outFormat == outputJSON {
				return writeJSON(cmd.OutOrStdout(), entries)
			}
			if err = writeLogTable(cmd.OutOrStdout(), entries); err != nil {
				return err
			}
			if pages := page.TotalPages(total); pages > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "\nPage %d of %d (%d entries)\n", page.Page, pages, total)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outFormat, "output", "o", outputText, "output format: text or json")
	cmd.Flags().StringVar(&user, "user", "", "only show entries for this user (case-insensitive)")
	page.AddFlags(cmd)
	return cmd
}

func filterByUser(entries []usagelog.Entry, user string) []usagelog.Entry {
	user = strings.TrimSpace(user)
	if user == "" {
		return entries
	}
	filtered := make([]usagelog.Entry, 0, len(entries))
	for _, e := range entries {
		if strings.EqualFold(e.User, user) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

func writeLogTable(w io.Writer, entries []usagelog.Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No calculations logged yet.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, strings.Join(usagelog.Columns, "\t"))
	fmt.Fprintln(tw, "----\t------------\t-------------\t-----\t------------------")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			e.User,
			e.TreeSpecies,
			strconv.Itoa(e.TreesPlanted),
			strconv.Itoa(e.Years),
			greenops.FormatKg(e.CO2SequesteredKg),
		)
	}
	return tw.Flush()
}
