package cli

import (
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"signal-trader/internal/feed"
	"signal-trader/internal/models"
	"signal-trader/internal/trading"
	"signal-trader/pkg/utils"
)

func newWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Process a live stream of chat messages from stdin",
		Long: `Watch reads chat messages from stdin, one per line, and runs each
through the full pipeline. Lines without a signal are skipped quietly.
Pipe a chat export or a live tail into it:

  tail -f chat.log | signal-trader watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx := cmd.Context()

			processor := trading.NewProcessor(app.Broker, app.Journal, app.Config.RiskSettings(), app.Logger)
			f := feed.New(processor, app.Logger)
			events := f.Subscribe()
			f.Start(ctx)
			defer f.Stop()

			var wg sync.WaitGroup
			wg.Add(1)
			go func() {
				defer wg.Done()
				for ev := range events {
					printEvent(output, ev)
				}
			}()

			err := f.ReadFrom(ctx, os.Stdin)

			// Let queued messages drain before reporting.
			for f.GetMetrics().Processed < f.GetMetrics().Received && ctx.Err() == nil {
				time.Sleep(10 * time.Millisecond)
			}
			f.Stop()
			wg.Wait()

			m := f.GetMetrics()
			output.Dim("Processed %d messages, %d signals", m.Processed, m.Signals)
			return err
		},
	}
}

func printEvent(output *Output, ev feed.Event) {
	if ev.Err != nil {
		output.Error("%v", ev.Err)
		return
	}
	result := ev.Result
	if result.Signal == nil {
		return
	}
	if output.IsJSON() {
		output.JSON(result)
		return
	}
	printSignal(output, result.Signal)
	if result.SkipReason != "" {
		output.Warn("Skipped: %s", result.SkipReason)
		return
	}
	for _, o := range result.Orders {
		price := o.Price
		if o.Type == models.OrderTypeStopLoss {
			price = o.TriggerPrice
		}
		output.Success("Placed %s %s %s x%d @ %s [%s]",
			o.Side, o.Type, o.Symbol, o.Quantity, utils.FormatUSD(price), o.Status)
	}
}
