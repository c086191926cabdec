package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	domprod "github.com/dbhs-alumni/merchstore/internal/domain/product"
	memberrepo "github.com/dbhs-alumni/merchstore/internal/repository/member"
	productrepo "github.com/dbhs-alumni/merchstore/internal/repository/product"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load products, alumni and admins from a YAML file",
	Long: `Seed upserts every product in the file, adds the listed addresses to the
alumni records and grants the listed admins. Products are stamped so the
first entry in the file is the newest.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", filepath.Join("config", "catalog.yaml"), "seed file")
	rootCmd.AddCommand(seedCmd)
}

// seedProduct is one catalog entry in the seed file.
type seedProduct struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Subtitle    string   `yaml:"subtitle"`
	Category    string   `yaml:"category"`
	Code        string   `yaml:"code"`
	PriceJMD    float64  `yaml:"price_jmd"`
	Rating      float64  `yaml:"rating"`
	ReviewCount int      `yaml:"review_count"`
	StockQty    int      `yaml:"stock_qty"`
	Active      *bool    `yaml:"active"`
	Description string   `yaml:"description"`
	Sizes       []string `yaml:"sizes"`
	Details     []string `yaml:"details"`
}

// seedData is the seed file layout.
type seedData struct {
	Products []seedProduct `yaml:"products"`
	Alumni   []string      `yaml:"alumni"`
	Admins   []string      `yaml:"admins"`
}

func parseSeed(data []byte) (seedData, error) {
	var sd seedData
	if err := yaml.Unmarshal(data, &sd); err != nil {
		return seedData{}, fmt.Errorf("parse seed: %w", err)
	}
	return sd, nil
}

// products validates every entry. The first entry gets the newest timestamp.
func (sd *seedData) products(now time.Time) ([]domprod.Product, error) {
	seen := make(map[string]struct{}, len(sd.Products))
	out := make([]domprod.Product, 0, len(sd.Products))
	base := now.UnixMilli()
	for i, sp := range sd.Products {
		if _, dup := seen[sp.ID]; dup {
			return nil, fmt.Errorf("product %d: duplicate id %q", i, sp.ID)
		}
		seen[sp.ID] = struct{}{}

		active := true
		if sp.Active != nil {
			active = *sp.Active
		}
		p, err := domprod.New(sp.ID, domprod.Attributes{
			Name:        sp.Name,
			Subtitle:    sp.Subtitle,
			Category:    sp.Category,
			Code:        sp.Code,
			Price:       sp.PriceJMD,
			Rating:      sp.Rating,
			ReviewCount: sp.ReviewCount,
			StockQty:    sp.StockQty,
			Active:      active,
			Description: sp.Description,
			Sizes:       sp.Sizes,
			Details:     sp.Details,
		}, base-int64(i))
		if err != nil {
			return nil, fmt.Errorf("product %d (%s): %w", i, sp.ID, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func runSeed(cmd *cobra.Command, _ []string) error {
	data, err := os.ReadFile(filepath.Clean(seedFile))
	if err != nil {
		return fmt.Errorf("read %s: %w", seedFile, err)
	}
	sd, err := parseSeed(data)
	if err != nil {
		return err
	}
	products, err := sd.products(time.Now())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if len(products) > 0 {
		if err := productrepo.New(current.store).Upsert(ctx, products); err != nil {
			return err
		}
	}
	members := memberrepo.New(current.store)
	if len(sd.Alumni) > 0 {
		if err := members.AddAlumni(ctx, sd.Alumni...); err != nil {
			return err
		}
	}
	if len(sd.Admins) > 0 {
		if err := members.GrantAdmin(ctx, sd.Admins...); err != nil {
			return err
		}
	}

	current.logger.Info("Seed loaded",
		zap.String("file", seedFile),
		zap.Int("products", len(products)),
		zap.Int("alumni", len(sd.Alumni)),
		zap.Int("admins", len(sd.Admins)),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d products, %d alumni, %d admins\n",
		len(products), len(sd.Alumni), len(sd.Admins))
	return nil
}
