package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"geocache-finder/api"
	"geocache-finder/client"
	"geocache-finder/geo"
	"geocache-finder/logger"
	"geocache-finder/util"
)

var (
	serverURL  string
	lat        string
	lng        string
	distance   string
	cacheType  string
	difficulty string
	exact      bool
	mapFile    string
	photos     bool
	timeout    time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "geosearch",
	Short: "Search geocaches within a radius of a point",
	Long: `Search the geocache server for caches within --distance miles of --lat/--lng,
optionally filtered by cache type id and difficulty. Blank or invalid values fall back
to the defaults of the search form.`,
	SilenceUsage: true,
	RunE:         runSearch,
}

func init() {
	rootCmd.Flags().StringVarP(&serverURL, "server", "s", "http://localhost:8080", "Geocache server base URL")
	rootCmd.Flags().StringVar(&lat, "lat", "", "Center latitude")
	rootCmd.Flags().StringVar(&lng, "lng", "", "Center longitude")
	rootCmd.Flags().StringVarP(&distance, "distance", "d", "", "Search radius in miles")
	rootCmd.Flags().StringVarP(&cacheType, "type", "t", "", "Cache type id")
	rootCmd.Flags().StringVar(&difficulty, "difficulty", "", "Difficulty rating")
	rootCmd.Flags().BoolVar(&exact, "exact", false, "Drop results outside the true circle")
	rootCmd.Flags().StringVarP(&mapFile, "map", "m", "", "Write an HTML map of the results to this file")
	rootCmd.Flags().BoolVarP(&photos, "photos", "p", false, "List photos near the first result")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 15*time.Second, "Request timeout")
}

func main() {
	logger.Setup()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	view := client.NewSearchView(client.NewGeocacheClient(api.NewHTTPClient(serverURL, timeout)))
	view.SetExactCircle(exact)

	err := view.Submit(ctx, geo.RawCriteria{
		Lat:        lat,
		Lng:        lng,
		Distance:   distance,
		CacheType:  cacheType,
		Difficulty: difficulty,
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	out := cmd.OutOrStdout()
	criteria, box := view.Criteria()
	fmt.Fprintf(out, "Center %s, radius %.0f m, %d results\n\n",
		util.FormatLocation(criteria.Center.Lat, criteria.Center.Lng), criteria.RadiusMeters, len(view.Rows()))
	printTable(out, view.Rows())

	if mapFile != "" {
		f, err := os.Create(mapFile)
		if err != nil {
			return fmt.Errorf("failed to create map file: %w", err)
		}
		defer f.Close()
		if err := util.PlotSearchResults(f, criteria.Center, box, view.Records()); err != nil {
			return err
		}
		fmt.Fprintf(out, "\nMap written to %s\n", mapFile)
	}

	if photos && len(view.Rows()) > 0 {
		popup, err := view.OpenPopup(ctx, 0)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\n%s (%s)\n", popup.Title, popup.Location)
		if popup.PhotoMessage != "" {
			fmt.Fprintln(out, popup.PhotoMessage)
		}
		for _, p := range popup.Photos {
			fmt.Fprintf(out, "  %s  %s\n", p.ThumbnailURL, p.Title)
		}
	}
	return nil
}

func printTable(out io.Writer, rows []client.TableRow) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CACHE TYPE\tDIFFICULTY\tLOCATION")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.CacheType, r.Difficulty, r.Location)
	}
	w.Flush()
}
