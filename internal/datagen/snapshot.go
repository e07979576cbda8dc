//-------------------------------------------------------------------------
//
// pgEdge Olist Loader
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pgEdge/pgedge-olist/internal/logging"
	"github.com/pgEdge/pgedge-olist/internal/olist"
)

// SnapshotConfig controls the size and shape of a generated snapshot.
type SnapshotConfig struct {
	// Orders is the number of orders; every other table scales from it.
	Orders int

	// Seed makes the snapshot reproducible. 0 picks a random seed.
	Seed uint64

	// ShortRowRate is the probability of emitting a truncated line after
	// a geolocation or review row. The loader skips such lines.
	ShortRowRate float64
}

// DefaultSnapshotConfig returns a small snapshot configuration.
func DefaultSnapshotConfig() SnapshotConfig {
	return SnapshotConfig{
		Orders:       1000,
		ShortRowRate: 0.01,
	}
}

// Headers as they appear in the published dataset, typos included.
var headers = map[string][]string{
	olist.Categories:    {"product_category_name", "product_category_name_english"},
	olist.Geolocation:   {"geolocation_zip_code_prefix", "geolocation_lat", "geolocation_lng", "geolocation_city", "geolocation_state"},
	olist.Customers:     {"customer_id", "customer_unique_id", "customer_zip_code_prefix", "customer_city", "customer_state"},
	olist.Sellers:       {"seller_id", "seller_zip_code_prefix", "seller_city", "seller_state"},
	olist.Products:      {"product_id", "product_category_name", "product_name_lenght", "product_description_lenght", "product_photos_qty", "product_weight_g", "product_length_cm", "product_height_cm", "product_width_cm"},
	olist.Orders:        {"order_id", "customer_id", "order_status", "order_purchase_timestamp", "order_approved_at", "order_delivered_carrier_date", "order_delivered_customer_date", "order_estimated_delivery_date"},
	olist.OrderItems:    {"order_id", "order_item_id", "product_id", "seller_id", "shipping_limit_date", "price", "freight_value"},
	olist.OrderPayments: {"order_id", "payment_sequential", "payment_type", "payment_installments", "payment_value"},
	olist.OrderReviews:  {"review_id", "order_id", "review_score", "review_comment_title", "review_comment_message", "review_creation_date", "review_answer_timestamp"},
}

var (
	snapshotStart = time.Date(2016, 9, 4, 0, 0, 0, 0, time.UTC)
	snapshotEnd   = time.Date(2018, 10, 17, 0, 0, 0, 0, time.UTC)
)

// csvFile writes one table's CSV file and counts the rows the loader will
// accept from it.
type csvFile struct {
	table string
	path  string
	f     *os.File
	w     *csv.Writer
	rows  int64
	short int64
}

func createCSV(dir, table string) (*csvFile, error) {
	tbl, ok := olist.Lookup(table)
	if !ok || tbl.File == "" {
		return nil, fmt.Errorf("no data file for table %s", table)
	}
	path := filepath.Join(dir, tbl.File)
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	c := &csvFile{table: table, path: path, f: f, w: csv.NewWriter(f)}
	if err := c.w.Write(headers[table]); err != nil {
		f.Close()
		return nil, err
	}
	return c, nil
}

func (c *csvFile) row(fields ...string) error {
	c.rows++
	return c.w.Write(fields)
}

// shortRow writes a line with too few fields.
func (c *csvFile) shortRow(fields ...string) error {
	c.short++
	return c.w.Write(fields[:len(fields)/2])
}

func (c *csvFile) close() error {
	c.w.Flush()
	if err := c.w.Error(); err != nil {
		c.f.Close()
		return fmt.Errorf("failed to write %s: %w", c.path, err)
	}
	if err := c.f.Close(); err != nil {
		return err
	}
	logging.Debug().
		Str("table", c.table).
		Str("file", c.path).
		Int64("rows", c.rows).
		Int64("short_rows", c.short).
		Msg("Wrote data file")
	return nil
}

// snapshot holds the keys shared between files while generating.
type snapshot struct {
	f   *Faker
	cfg SnapshotConfig
	dir string

	counts map[string]int64

	zips      []string
	zipPlaces map[string]Place
	customers []string
	sellers   []string
	products  []string
}

// WriteSnapshot writes the nine Olist CSV files into dir (created if
// needed) and returns the number of rows the loader should load into each
// table, including the fixed STATES rows.
func WriteSnapshot(dir string, cfg SnapshotConfig) (map[string]int64, error) {
	if cfg.Orders < 1 {
		return nil, fmt.Errorf("orders must be at least 1")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	f := NewFaker()
	if cfg.Seed != 0 {
		f = NewFakerWithSeed(cfg.Seed)
	}

	s := &snapshot{
		f:         f,
		cfg:       cfg,
		dir:       dir,
		counts:    map[string]int64{olist.States: int64(len(olist.BrazilianStates))},
		zipPlaces: make(map[string]Place),
	}

	steps := []func() error{
		s.writeCategories,
		s.writeGeolocation,
		s.writeCustomers,
		s.writeSellers,
		s.writeProducts,
		s.writeOrders,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}

	logging.Info().
		Str("dir", dir).
		Int("orders", cfg.Orders).
		Msg("Sample snapshot written")

	return s.counts, nil
}

// write creates table's file, runs fill, and records the row count.
func (s *snapshot) write(table string, fill func(c *csvFile) error) error {
	c, err := createCSV(s.dir, table)
	if err != nil {
		return err
	}
	if err := fill(c); err != nil {
		c.f.Close()
		return fmt.Errorf("failed to generate %s: %w", table, err)
	}
	if err := c.close(); err != nil {
		return err
	}
	s.counts[table] = c.rows
	return nil
}

func (s *snapshot) scaled(divisor, minimum int) int {
	return max(s.cfg.Orders/divisor, minimum)
}

func (s *snapshot) writeCategories() error {
	return s.write(olist.Categories, func(c *csvFile) error {
		for _, cat := range categories {
			if err := c.row(cat.Portuguese, cat.English); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *snapshot) writeGeolocation() error {
	f := s.f
	n := s.scaled(5, 10)
	return s.write(olist.Geolocation, func(c *csvFile) error {
		for range n {
			zip := f.Digits(5)
			if _, dup := s.zipPlaces[zip]; dup {
				continue
			}
			place := f.Place()
			s.zips = append(s.zips, zip)
			s.zipPlaces[zip] = place

			// The published file repeats prefixes with nearby points.
			for range f.Int(1, 3) {
				lat, lng := f.Coordinates(place)
				city := place.City
				if f.Chance(0.1) {
					city += ", centro"
				}
				fields := []string{zip, FormatCoord(lat), FormatCoord(lng), city, place.State}
				if err := c.row(fields...); err != nil {
					return err
				}
				if f.Chance(s.cfg.ShortRowRate) {
					if err := c.shortRow(fields...); err != nil {
						return err
					}
				}
			}
		}
		return nil
	})
}

func (s *snapshot) location() (string, Place) {
	zip := Choose(s.f, s.zips)
	return zip, s.zipPlaces[zip]
}

func (s *snapshot) writeCustomers() error {
	f := s.f
	return s.write(olist.Customers, func(c *csvFile) error {
		var unique string
		for range s.cfg.Orders {
			id := f.ID()
			// Repeat buyers share a unique id across customer ids.
			if unique == "" || !f.Chance(0.03) {
				unique = f.ID()
			}
			zip, place := s.location()
			if err := c.row(id, unique, zip, place.City, place.State); err != nil {
				return err
			}
			s.customers = append(s.customers, id)
		}
		return nil
	})
}

func (s *snapshot) writeSellers() error {
	f := s.f
	return s.write(olist.Sellers, func(c *csvFile) error {
		for range s.scaled(30, 1) {
			id := f.ID()
			zip, place := s.location()
			if err := c.row(id, zip, place.City, place.State); err != nil {
				return err
			}
			s.sellers = append(s.sellers, id)
		}
		return nil
	})
}

func (s *snapshot) writeProducts() error {
	f := s.f
	return s.write(olist.Products, func(c *csvFile) error {
		for range s.scaled(3, 1) {
			id := f.ID()
			var fields []string
			if f.Chance(0.02) {
				// Uncategorised products have no descriptive attributes.
				fields = []string{id, "NULL", "", "", ""}
			} else {
				cat := Choose(f, categories)
				fields = []string{
					id, cat.Portuguese,
					strconv.Itoa(f.Int(5, 76)),
					strconv.Itoa(f.Int(4, 3992)),
					strconv.Itoa(f.Int(1, 20)),
				}
			}
			fields = append(fields,
				strconv.Itoa(f.Int(50, 30000)),
				strconv.Itoa(f.Int(7, 105)),
				strconv.Itoa(f.Int(2, 105)),
				strconv.Itoa(f.Int(6, 118)),
			)
			if err := c.row(fields...); err != nil {
				return err
			}
			s.products = append(s.products, id)
		}
		return nil
	})
}

// writeOrders writes ORDERS and the three files that hang off each order.
func (s *snapshot) writeOrders() error {
	files := make(map[string]*csvFile)
	for _, table := range []string{olist.Orders, olist.OrderItems, olist.OrderPayments, olist.OrderReviews} {
		c, err := createCSV(s.dir, table)
		if err != nil {
			for _, open := range files {
				open.f.Close()
			}
			return err
		}
		files[table] = c
	}

	err := func() error {
		for i := range s.cfg.Orders {
			if err := s.writeOrder(files, s.customers[i]); err != nil {
				return err
			}
		}
		return nil
	}()

	for table, c := range files {
		if cerr := c.close(); cerr != nil && err == nil {
			err = cerr
		}
		s.counts[table] = c.rows
	}
	if err != nil {
		return fmt.Errorf("failed to generate orders: %w", err)
	}
	return nil
}

func (s *snapshot) writeOrder(files map[string]*csvFile, customer string) error {
	f := s.f
	orderID := f.ID()
	status := ChooseWeighted(f, orderStatuses, orderStatusWeights)

	purchased := f.DateRange(snapshotStart, snapshotEnd)
	approved := purchased.Add(time.Duration(f.Int(10, 48*60)) * time.Minute)
	carrier := approved.Add(time.Duration(f.Int(1, 5)) * 24 * time.Hour)
	delivered := carrier.Add(time.Duration(f.Int(1, 20)) * 24 * time.Hour)
	estimated := purchased.AddDate(0, 0, f.Int(10, 40)).Truncate(24 * time.Hour)

	approvedAt, carrierAt, deliveredAt := FormatTimestamp(approved), FormatTimestamp(carrier), FormatTimestamp(delivered)
	switch status {
	case "canceled", "unavailable":
		approvedAt, carrierAt, deliveredAt = f.NullableString(approvedAt, 0.5), "", ""
	case "invoiced", "processing":
		carrierAt, deliveredAt = "", ""
	case "shipped":
		deliveredAt = ""
	}

	if err := files[olist.Orders].row(orderID, customer, status,
		FormatTimestamp(purchased), approvedAt, carrierAt, deliveredAt, FormatTimestamp(estimated)); err != nil {
		return err
	}

	var total float64
	items := ChooseWeighted(f, []int{1, 2, 3}, []int{85, 10, 5})
	for seq := 1; seq <= items; seq++ {
		price := f.Price(5, 900)
		freight := f.Price(0, 80)
		total += price + freight
		if err := files[olist.OrderItems].row(orderID, strconv.Itoa(seq),
			Choose(f, s.products), Choose(f, s.sellers),
			FormatTimestamp(approved.Add(6*24*time.Hour)),
			FormatMoney(price), FormatMoney(freight)); err != nil {
			return err
		}
	}

	payments := 1
	if f.Chance(0.05) {
		payments = 2
	}
	for seq := 1; seq <= payments; seq++ {
		kind := ChooseWeighted(f, paymentTypes, paymentTypeWeights)
		installments := 1
		if kind == "credit_card" {
			installments = f.Int(1, 10)
		}
		if err := files[olist.OrderPayments].row(orderID, strconv.Itoa(seq), kind,
			strconv.Itoa(installments), FormatMoney(total/float64(payments))); err != nil {
			return err
		}
	}

	if f.Chance(0.03) {
		return nil
	}
	created := estimated.Add(24 * time.Hour)
	message := ""
	if f.Chance(0.4) {
		// Free-text answers often contain commas, which forces quoting.
		message = f.Sentence(6) + ", " + f.Sentence(4)
	}
	fields := []string{
		f.ID(), orderID,
		strconv.Itoa(ChooseWeighted(f, reviewScores, reviewScoreWeights)),
		f.NullableString(Choose(f, reviewTitles), 0.88),
		message,
		FormatTimestamp(created),
		FormatTimestamp(created.Add(time.Duration(f.Int(60, 72*60)) * time.Minute)),
	}
	if err := files[olist.OrderReviews].row(fields...); err != nil {
		return err
	}
	if f.Chance(s.cfg.ShortRowRate) {
		return files[olist.OrderReviews].shortRow(fields...)
	}
	return nil
}
