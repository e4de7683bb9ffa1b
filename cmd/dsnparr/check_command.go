package main

import (
	"context"
	"fmt"
	"html"
	"io"
	"os"
	"os/signal"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amaumene/dsnparr/internal/app"
	"github.com/amaumene/dsnparr/internal/controllers"
	"github.com/amaumene/dsnparr/internal/models"
	"github.com/amaumene/dsnparr/internal/tracing"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var (
		raw     models.RawFilters
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "check <url>",
		Short: "Check in which regions a movie or series is available",
		Long: `Sweep every region of the content's service (or the --regions list) and
print the report each time it changes.

Examples:
  dsnparr check https://www.disneyplus.com/movies/soul/77zlWrb9vRZp --quality UHD
  dsnparr check https://www.disneyplus.com/series/loki/6pARMvILBGzF --seasons 1-2 --slang en
  dsnparr check https://dsny.pl/Loki --regions us,pl,fr`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := ctx.ensure()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			tp := tracing.NewProvider(logger)
			defer tp.Shutdown(context.Background())

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			cli := app.InitializeCLI(cfg, logger)
			if refresh {
				if err := cli.Catalog.Refresh(runCtx); err != nil {
					logger.WithError(err).Warn("Using compiled-in region list")
				}
			}

			_, err = cli.Checks.Check(runCtx, args[0], raw, newTerminalDelivery(cmd.OutOrStdout()))
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&raw.Quality, "quality", "", "Required quality (SD, HD or UHD)")
	flags.StringVar(&raw.Audio, "alang", "", "Required audio languages, comma separated")
	flags.StringVar(&raw.Subtitles, "slang", "", "Required subtitle languages, comma separated")
	flags.StringVar(&raw.Seasons, "seasons", "", "Season or season range (N or N-M)")
	flags.StringVar(&raw.Regions, "regions", "", "Only check these regions, comma separated")
	flags.StringVar(&raw.MetaLang, "mlang", "", "Metadata language (default en)")
	flags.BoolVar(&refresh, "refresh", false, "Fetch the current region list before checking")

	return cmd
}

// terminalDelivery prints every report as plain text
type terminalDelivery struct {
	out   io.Writer
	count int
}

func newTerminalDelivery(out io.Writer) controllers.Delivery {
	return &terminalDelivery{out: out}
}

func (d *terminalDelivery) Deliver(_ context.Context, text string) error {
	if d.count > 0 {
		fmt.Fprintln(d.out)
	}
	d.count++
	_, err := fmt.Fprintln(d.out, plainText(text))
	return err
}

var (
	linkExpr = regexp.MustCompile(`<a href="([^"]*)">(.*?)</a>`)
	tagExpr  = regexp.MustCompile(`<[^>]+>`)
)

// plainText turns an HTML report into terminal text. Links keep their
// target next to the label.
func plainText(report string) string {
	text := linkExpr.ReplaceAllString(report, "$2 <$1>")
	text = tagExpr.ReplaceAllStringFunc(text, func(tag string) string {
		if strings.HasPrefix(tag, "<http") {
			return tag
		}
		return ""
	})
	return html.UnescapeString(text)
}
