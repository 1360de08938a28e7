package cli

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"signal-trader/internal/models"
	"signal-trader/internal/signal"
	"signal-trader/internal/sizing"
	"signal-trader/internal/trading"
	"signal-trader/pkg/utils"
)

// messageFromArgs returns the message text from the command arguments,
// falling back to stdin when no argument is given.
func messageFromArgs(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(bufio.NewReader(os.Stdin))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func newParseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "parse [message]",
		Short: "Parse a chat message for an order signal",
		Long: `Parse scans a chat message for a single order signal and prints the
extracted fields. Reads from stdin when no message argument is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			text, err := messageFromArgs(cmd, args)
			if err != nil {
				return err
			}

			sig := signal.Parse(text)
			if sig == nil {
				if output.IsJSON() {
					return output.JSON(map[string]interface{}{"signal": nil})
				}
				output.Dim("No signal")
				return nil
			}

			if output.IsJSON() {
				return output.JSON(sig)
			}
			printSignal(output, sig)
			return nil
		},
	}
}

func newPlanCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "plan [message]",
		Short: "Parse a message and derive order sizing",
		Long: `Plan parses a chat message and, for an open signal, derives the
purchase quantity, buy limit price, and stop-loss price from the
configured risk settings. Nothing is placed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			text, err := messageFromArgs(cmd, args)
			if err != nil {
				return err
			}

			sig := signal.Parse(text)
			if sig == nil {
				if output.IsJSON() {
					return output.JSON(map[string]interface{}{"signal": nil})
				}
				output.Dim("No signal")
				return nil
			}

			if !sig.IsOpen() {
				if output.IsJSON() {
					return output.JSON(map[string]interface{}{"signal": sig})
				}
				printSignal(output, sig)
				output.Dim("Close signal: sizing depends on the live position quantity")
				return nil
			}

			plan, err := sizing.OpenPlan(sig, app.Config.RiskSettings())
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(map[string]interface{}{"signal": sig, "plan": plan})
			}
			printSignal(output, sig)
			output.Printf("Quantity:        %d\n", plan.Quantity)
			output.Printf("Buy limit:       %s\n", utils.FormatUSD(plan.BuyLimitPrice))
			output.Printf("Stop loss:       %s (%.1f%%)\n", utils.FormatUSD(plan.StopLossPrice), plan.StopLossPercent*100)
			if plan.Quantity == 0 {
				output.Warn("Purchase quantity is 0: order too small under current settings")
			}
			return nil
		},
	}
}

func newProcessCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "process [message]",
		Short: "Parse a message and execute the resulting orders",
		Long: `Process runs the full pipeline: parse the message, derive sizing, and
place the resulting orders against the configured broker.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			text, err := messageFromArgs(cmd, args)
			if err != nil {
				return err
			}

			processor := trading.NewProcessor(app.Broker, app.Journal, app.Config.RiskSettings(), app.Logger)
			result, err := processor.ProcessMessage(cmd.Context(), text)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(result)
			}
			if result.Signal == nil {
				output.Dim("No signal")
				return nil
			}
			printSignal(output, result.Signal)
			if result.SkipReason != "" {
				output.Warn("Skipped: %s", result.SkipReason)
				return nil
			}
			for _, o := range result.Orders {
				price := o.Price
				if o.Type == models.OrderTypeStopLoss {
					price = o.TriggerPrice
				}
				output.Success("Placed %s %s %s x%d @ %s [%s]",
					o.Side, o.Type, o.Symbol, o.Quantity, utils.FormatUSD(price), o.Status)
			}
			return nil
		},
	}
}

func newJournalCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Show recently processed signals",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Journal == nil {
				output.Error("Signal journal is unavailable")
				return nil
			}
			limit, _ := cmd.Flags().GetInt("limit")
			records, err := app.Journal.ListSignals(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(records)
			}
			if len(records) == 0 {
				output.Dim("No signals journaled yet")
				return nil
			}
			for _, r := range records {
				output.Printf("%s  %s %s %s%s %s @%s\n",
					r.ReceivedAt.Format("2006-01-02 15:04"),
					r.Instruction, r.Ticker, r.StrikePrice, r.ContractType,
					r.Expiration, r.ContractPrice)
			}
			return nil
		},
	}
	cmd.Flags().Int("limit", 20, "maximum number of signals to show")
	return cmd
}

func printSignal(output *Output, sig *models.OrderSignal) {
	side := "CALL"
	if sig.ContractType == models.ContractPut {
		side = "PUT"
	}
	output.Printf("%s %s %s %s exp %s @ %s\n",
		sig.Instruction, sig.Ticker, sig.StrikePrice, side, sig.Expiration, sig.ContractPrice)
	if sig.Open != nil {
		if sig.Open.StopLoss != "" {
			output.Printf("Stop loss:       %s\n", sig.Open.StopLoss)
		}
		if sig.Open.HighRisk {
			output.Warn("High risk entry")
		}
	}
	if sig.HasReduce() {
		output.Printf("Reduce position: %d%%\n", sig.Close.ReducePercent)
	}
}
