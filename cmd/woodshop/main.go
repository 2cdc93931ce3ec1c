// Command woodshop is a console client for the marketplace backend: sign in,
// browse and filter the storefront, and inspect vendor stats.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"text/tabwriter"

	"woodshop/internal/adapter/rest"
	"woodshop/internal/adapter/tokenfile"
	"woodshop/internal/app"
	"woodshop/internal/config"
	"woodshop/internal/domain"

	"go.uber.org/zap"
)

func main() {
	var (
		email    = flag.String("login", "", "sign in with this email before browsing")
		password = flag.String("password", "", "password for -login")
		logout   = flag.Bool("logout", false, "sign out and exit")
		search   = flag.String("search", "", "case-insensitive name filter")
		category = flag.String("category", "", "exact category filter")
		material = flag.String("material", "", "exact material filter")
		sortKey  = flag.String("sort", "name", "sort key: name, price, stock, rating, sales")
		desc     = flag.Bool("desc", false, "sort descending")
		stats    = flag.Bool("stats", false, "show aggregates for the filtered view")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := zap.NewNop()
	if cfg.Debug {
		if log, err = zap.NewDevelopment(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	defer func() { _ = log.Sync() }()

	tokens, err := tokenStore(cfg)
	if err != nil {
		log.Fatal("token store", zap.Error(err))
	}

	client, err := rest.New(cfg.API.BaseURL,
		rest.WithTokenSource(app.TokenSource(tokens)),
		rest.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
		rest.WithLogger(log),
	)
	if err != nil {
		log.Fatal("api client", zap.Error(err))
	}

	ctx := context.Background()
	session := app.NewSessionManager(client, tokens)
	session.Bootstrap(ctx)

	if *logout {
		session.Logout()
		fmt.Println("signed out")
		return
	}

	if *email != "" {
		if err := session.Login(ctx, *email, *password); err != nil {
			log.Debug("login failed", zap.Error(err))
			fmt.Fprintln(os.Stderr, session.LastError())
			os.Exit(1)
		}
	}

	user := session.CurrentUser()
	if user == nil {
		fmt.Fprintln(os.Stderr, "not signed in; use -login and -password")
		os.Exit(1)
	}
	fmt.Printf("signed in as %s (%s)\n", user.Email, user.Role)

	direction := domain.Ascending
	if *desc {
		direction = domain.Descending
	}
	query, err := domain.NewQuery(*search, *category, *material, domain.SortKey(*sortKey), direction)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	catalog := app.NewCatalogService(client)
	if err := catalog.Load(ctx); err != nil {
		log.Fatal("load catalog", zap.Error(err))
	}

	view := catalog.View(query)
	printProducts(view)
	fmt.Printf("%d of %d products\n", len(view), len(catalog.Products()))

	if *stats {
		printStats(view)
	}
}

func tokenStore(cfg *config.Config) (*tokenfile.Store, error) {
	if cfg.Token.Path != "" {
		return tokenfile.New(cfg.Token.Path), nil
	}
	return tokenfile.Default()
}

func printProducts(products []domain.Product) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tCATEGORY\tMATERIAL\tVENDOR\tSTOCK\tRATING\tSALES")
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\t%s\t%s\t%d\t%.1f\t%d\n",
			p.ID, p.Name, p.Price, p.Category, p.Material, p.Vendor, p.Stock, p.Rating, p.Sales)
	}
	_ = w.Flush()
}

func printStats(products []domain.Product) {
	s := app.Summarize(products)
	fmt.Printf("revenue %.2f, avg rating %.2f, low stock %d\n", s.Revenue, s.AverageRating, s.LowStock)
	for _, c := range app.ByCategory(products) {
		fmt.Printf("  %s: %.2f\n", c.Category, c.Revenue)
	}
}
