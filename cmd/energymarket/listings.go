package main

import (
	"encoding/json"
	"fmt"
	"os"

	"energy-marketplace/internal/adapter/http/dto"
	"energy-marketplace/internal/core/domain"
	"energy-marketplace/internal/core/market"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	viewerAccount string
	browseQuery   dto.BrowseQuery
	maxPrice      int64
	nearestLimit  int
)

func init() {
	listingsCmd.Flags().StringVar(&viewerAccount, "account", "", "viewing account, its own listings are hidden")
	listingsCmd.Flags().StringVar(&browseQuery.EnergyType, "energy-type", "", "solar, wind, hydro or grid")
	listingsCmd.Flags().Int64Var(&maxPrice, "max-price", -1, "maximum price per kWh")
	listingsCmd.Flags().StringVar(&browseQuery.Location, "location", "", "case-insensitive location substring")
	listingsCmd.Flags().StringVar(&browseQuery.Origin, "origin", "", `your location as "lat, lon", enables distances`)
	listingsCmd.Flags().StringVar(&browseQuery.Sort, "sort", "price_asc", "price_asc, newest or distance")

	nearestCmd.Flags().StringVar(&viewerAccount, "account", "", "viewing account, its own listings are hidden")
	nearestCmd.Flags().IntVar(&nearestLimit, "limit", 5, "number of peers to show")
}

var listingsCmd = &cobra.Command{
	Use:   "listings",
	Short: "Print the active listings as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		if browseQuery.EnergyType != "" {
			if _, ok := domain.ParseEnergyType(browseQuery.EnergyType); !ok {
				return fmt.Errorf("unknown energy type %q", browseQuery.EnergyType)
			}
		}
		if _, ok := market.ParseSortKey(browseQuery.Sort); !ok {
			return fmt.Errorf("unknown sort %q", browseQuery.Sort)
		}
		if cmd.Flags().Changed("max-price") {
			browseQuery.MaxPrice = &maxPrice
		}

		a, err := newApp(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer a.close()

		res, err := a.marketSvc.Browse(cmd.Context(), uuid.Nil, viewerAccount, browseQuery.Query())
		if err != nil {
			return err
		}
		if res.Loading {
			a.log.Warn().Msg("some discovery sources did not answer in time, the list may be incomplete")
		}
		return printJSON(dto.NewRankedResponses(res.Listings))
	},
}

var nearestCmd = &cobra.Command{
	Use:   "nearest <lat, lon>",
	Short: "Print the listings nearest to a location as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		origin := dto.ParseOrigin(args[0])
		if origin == nil {
			return fmt.Errorf("%q is not a coordinate pair", args[0])
		}
		if nearestLimit < 1 {
			return fmt.Errorf("limit must be positive")
		}

		a, err := newApp(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer a.close()

		ranked, err := a.marketSvc.Nearest(cmd.Context(), uuid.Nil, viewerAccount, origin, nearestLimit)
		if err != nil {
			return err
		}
		return printJSON(dto.NewRankedResponses(ranked))
	},
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
