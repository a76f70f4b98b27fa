package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"shipquickr/internal/core/config"
	courieradapters "shipquickr/internal/features/couriers/adapters"
	markupdomain "shipquickr/internal/features/markup/domain"
	"shipquickr/internal/features/rates/domain"
	"shipquickr/internal/features/rates/ports"
	"shipquickr/internal/features/rates/service"

	"github.com/spf13/cobra"
)

type quoteOptions struct {
	from          string
	to            string
	weight        float64
	dims          string
	mode          string
	declared      float64
	collectable   float64
	floor         float64
	rateCards     string
	freightMarkup string
	codMarkup     string
	format        string
}

func newQuoteCmd() *cobra.Command {
	opts := &quoteOptions{}

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price a shipment against the rate card couriers",
		Long: `Price a shipment against every manual courier in the rate card file.

Markup is given as "fixed:<amount>" or "percentage:<amount>" and defaults to none.

Examples:
  shipquickr quote --from 110001 --to 400001 --weight 0.3 --dims 10x10x10 --mode COD --collectable 500 \
    --freight-markup fixed:10 --cod-markup fixed:5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuote(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.from, "from", "", "pickup pincode")
	f.StringVar(&opts.to, "to", "", "destination pincode")
	f.Float64VarP(&opts.weight, "weight", "w", 0, "actual weight in kg")
	f.StringVarP(&opts.dims, "dims", "d", "", "dimensions in cm as LxWxH")
	f.StringVarP(&opts.mode, "mode", "m", string(domain.PaymentModePrepaid), "payment mode (COD, Prepaid)")
	f.Float64Var(&opts.declared, "declared", 0, "declared value")
	f.Float64Var(&opts.collectable, "collectable", 0, "amount to collect on delivery (COD only)")
	f.Float64Var(&opts.floor, "declared-floor", 50, "minimum declared value")
	f.StringVar(&opts.rateCards, "rate-cards", "ratecards.yaml", "rate card file")
	f.StringVar(&opts.freightMarkup, "freight-markup", "", "freight markup, e.g. fixed:10")
	f.StringVar(&opts.codMarkup, "cod-markup", "", "COD markup, e.g. percentage:2")
	f.StringVarP(&opts.format, "format", "f", "table", "output format (table, json)")

	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func runQuote(ctx context.Context, out io.Writer, opts *quoteOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	dims, err := parseDims(opts.dims)
	if err != nil {
		return err
	}

	spec, err := domain.NewShipmentSpec(domain.ShipmentInput{
		OriginPincode:      opts.from,
		DestinationPincode: opts.to,
		ActualWeightKg:     opts.weight,
		Dimensions:         dims,
		PaymentMode:        opts.mode,
		DeclaredValue:      opts.declared,
		CollectableValue:   opts.collectable,
	}, opts.floor)
	if err != nil {
		return err
	}

	rule, err := parseMarkup(opts.freightMarkup, opts.codMarkup)
	if err != nil {
		return err
	}

	cards, err := config.LoadRateCards(opts.rateCards)
	if err != nil {
		return err
	}

	var adapters []ports.CourierAdapter
	for _, c := range courieradapters.Manual(cards) {
		adapters = append(adapters, c)
	}
	if len(adapters) == 0 {
		return fmt.Errorf("no manual couriers in %s", opts.rateCards)
	}

	svc := service.NewRateService(service.NewOrchestrator(adapters), staticMarkup{rule: rule}, nil, 0)
	quotes, err := svc.GetRates(ctx, spec)
	if err != nil {
		return err
	}

	switch opts.format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(quotes)
	case "table":
		return printTable(out, quotes)
	default:
		return fmt.Errorf("unknown format %q", opts.format)
	}
}

// staticMarkup serves one rule given on the command line.
type staticMarkup struct {
	rule *markupdomain.MarkupRule
}

func (s staticMarkup) ActiveRule(ctx context.Context) (*markupdomain.MarkupRule, error) {
	return s.rule, nil
}

func parseDims(s string) (domain.Dimensions, error) {
	if s == "" {
		return domain.Dimensions{}, nil
	}
	parts := strings.Split(strings.ToLower(s), "x")
	if len(parts) != 3 {
		return domain.Dimensions{}, fmt.Errorf("dimensions must be LxWxH, got %q", s)
	}
	var v [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return domain.Dimensions{}, fmt.Errorf("invalid dimension %q: %w", p, err)
		}
		v[i] = f
	}
	return domain.Dimensions{LengthCm: v[0], WidthCm: v[1], HeightCm: v[2]}, nil
}

// parseMarkup returns nil when neither markup is given.
func parseMarkup(freight, cod string) (*markupdomain.MarkupRule, error) {
	if freight == "" && cod == "" {
		return nil, nil
	}
	ft, fa, err := parseCharge(freight)
	if err != nil {
		return nil, fmt.Errorf("freight markup: %w", err)
	}
	ct, ca, err := parseCharge(cod)
	if err != nil {
		return nil, fmt.Errorf("cod markup: %w", err)
	}
	return markupdomain.NewMarkupRule(ft, fa, ct, ca)
}

func parseCharge(s string) (markupdomain.ChargeType, float64, error) {
	if s == "" {
		return markupdomain.ChargeTypeFixed, 0, nil
	}
	kind, amount, ok := strings.Cut(s, ":")
	if !ok {
		return "", 0, fmt.Errorf("expected <type>:<amount>, got %q", s)
	}
	v, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return "", 0, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	return markupdomain.ChargeType(strings.ToLower(kind)), v, nil
}

func printTable(out io.Writer, quotes []domain.FinalQuote) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COURIER\tSERVICE\tWEIGHT\tFREIGHT\tCOD\tTOTAL\tETA")
	for _, q := range quotes {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\t%.2f\t%.2f\t%s\n",
			q.CourierName, q.ServiceType, q.ChargeableWeightKg,
			q.FinalFreightCharge, q.FinalCodCharge, q.FinalTotalPrice, q.ExpectedDeliveryDays)
	}
	return w.Flush()
}
