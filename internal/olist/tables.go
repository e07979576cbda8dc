//-------------------------------------------------------------------------
//
// pgEdge Olist Loader
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package olist describes the Brazilian e-commerce (Olist) schema: its ten
// tables, the CSV files that feed them, and the phases in which they must
// be loaded so that foreign keys are always satisfied.
package olist

import "fmt"

// Table describes how one dataset table is populated.
type Table struct {
	// Name is the table name.
	Name string

	// File is the CSV file name within the data directory. Empty for
	// tables whose rows are defined in code.
	File string

	// Columns are the insert columns, in CSV field order.
	Columns []string

	// Static holds the rows for tables that are not CSV-driven.
	Static [][]string
}

// Width is the number of insert columns, which is also the minimum number
// of fields a CSV line must have to be loaded.
func (t Table) Width() int {
	return len(t.Columns)
}

// Phase is an ordered group of tables sharing a dependency depth.
type Phase struct {
	// Number is the 1-based phase number.
	Number int

	// Name is a short label for the dependency tier.
	Name string

	// Tables are loaded in this order.
	Tables []Table
}

// Table names.
const (
	States        = "STATES"
	Geolocation   = "GEOLOCATION"
	Categories    = "CATEGORIES"
	Customers     = "CUSTOMERS"
	Sellers       = "SELLERS"
	Products      = "PRODUCTS"
	Orders        = "ORDERS"
	OrderItems    = "ORDER_ITEMS"
	OrderPayments = "ORDER_PAYMENTS"
	OrderReviews  = "ORDER_REVIEWS"
)

var (
	statesTable = Table{
		Name:    States,
		Columns: []string{"state_code", "state_name", "region"},
		Static:  BrazilianStates,
	}

	categoriesTable = Table{
		Name:    Categories,
		File:    "product_category_name_translation.csv",
		Columns: []string{"category_name_portuguese", "category_name_english"},
	}

	geolocationTable = Table{
		Name: Geolocation,
		File: "olist_geolocation_dataset.csv",
		Columns: []string{
			"zip_code_prefix", "geolocation_lat", "geolocation_lng",
			"geolocation_city", "geolocation_state",
		},
	}

	customersTable = Table{
		Name: Customers,
		File: "olist_customers_dataset.csv",
		Columns: []string{
			"customer_id", "customer_unique_id", "customer_zip_code_prefix",
			"customer_city", "customer_state",
		},
	}

	sellersTable = Table{
		Name: Sellers,
		File: "olist_sellers_dataset.csv",
		Columns: []string{
			"seller_id", "seller_zip_code_prefix", "seller_city", "seller_state",
		},
	}

	productsTable = Table{
		Name: Products,
		File: "olist_products_dataset.csv",
		Columns: []string{
			"product_id", "category_name_portuguese", "product_name_length",
			"product_description_length", "product_photos_qty", "product_weight_g",
			"product_length_cm", "product_height_cm", "product_width_cm",
		},
	}

	ordersTable = Table{
		Name: Orders,
		File: "olist_orders_dataset.csv",
		Columns: []string{
			"order_id", "customer_id", "order_status", "order_purchase_timestamp",
			"order_approved_at", "order_delivered_carrier_date",
			"order_delivered_customer_date", "order_estimated_delivery_date",
		},
	}

	orderItemsTable = Table{
		Name: OrderItems,
		File: "olist_order_items_dataset.csv",
		Columns: []string{
			"order_id", "order_item_seq", "product_id", "seller_id",
			"shipping_limit_date", "price", "freight_value",
		},
	}

	orderPaymentsTable = Table{
		Name: OrderPayments,
		File: "olist_order_payments_dataset.csv",
		Columns: []string{
			"order_id", "payment_sequential", "payment_type",
			"payment_installments", "payment_value",
		},
	}

	orderReviewsTable = Table{
		Name: OrderReviews,
		File: "olist_order_reviews_dataset.csv",
		Columns: []string{
			"review_id", "order_id", "review_score", "review_comment_title",
			"review_comment_message", "review_creation_date", "review_answer_timestamp",
		},
	}
)

// Phases lists the load phases in dependency order.
var Phases = []Phase{
	{Number: 1, Name: "reference", Tables: []Table{statesTable, categoriesTable, geolocationTable}},
	{Number: 2, Name: "entity", Tables: []Table{customersTable, sellersTable, productsTable}},
	{Number: 3, Name: "transaction", Tables: []Table{ordersTable}},
	{Number: 4, Name: "relationship", Tables: []Table{orderItemsTable, orderPaymentsTable, orderReviewsTable}},
}

// GetPhase returns the phase with the given number.
func GetPhase(n int) (Phase, error) {
	if n < 1 || n > len(Phases) {
		return Phase{}, fmt.Errorf("unknown phase %d (valid: 1-%d)", n, len(Phases))
	}
	return Phases[n-1], nil
}

// LoadOrder returns every table in the order it must be populated.
func LoadOrder() []Table {
	var tables []Table
	for _, p := range Phases {
		tables = append(tables, p.Tables...)
	}
	return tables
}

// ClearOrder returns every table name in the order rows must be deleted:
// the exact reverse of LoadOrder.
func ClearOrder() []string {
	load := LoadOrder()
	names := make([]string, len(load))
	for i, t := range load {
		names[len(load)-1-i] = t.Name
	}
	return names
}

// Lookup returns the table with the given name.
func Lookup(name string) (Table, bool) {
	for _, t := range LoadOrder() {
		if t.Name == name {
			return t, true
		}
	}
	return Table{}, false
}

// PhaseOf returns the number of the phase that loads the named table, or 0
// if no phase does.
func PhaseOf(name string) int {
	for _, p := range Phases {
		for _, t := range p.Tables {
			if t.Name == name {
				return p.Number
			}
		}
	}
	return 0
}
