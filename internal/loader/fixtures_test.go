//-------------------------------------------------------------------------
//
// pgEdge Olist Loader
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package loader

import (
	"context"
	"errors"
	"testing"

	"github.com/pgEdge/pgedge-olist/internal/olist"
	"github.com/pgEdge/pgedge-olist/internal/store"
	"github.com/pgEdge/pgedge-olist/internal/store/sqlite"
	"github.com/pgEdge/pgedge-olist/internal/testutil"
)

// fixtureCounts are the rows writeFixtures produces per table.
var fixtureCounts = map[string]int64{
	olist.States:        27,
	olist.Categories:    3,
	olist.Geolocation:   4,
	olist.Customers:     3,
	olist.Sellers:       2,
	olist.Products:      3,
	olist.Orders:        3,
	olist.OrderItems:    4,
	olist.OrderPayments: 4,
	olist.OrderReviews:  3,
}

// writeFixtures writes a small, referentially consistent dataset and
// returns its directory.
func writeFixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	testutil.WriteCSV(t, dir, "product_category_name_translation.csv",
		"product_category_name,product_category_name_english",
		"beleza_saude,health_beauty",
		"informatica_acessorios,computers_accessories",
		"cama_mesa_banho,bed_bath_table",
	)
	testutil.WriteCSV(t, dir, "olist_geolocation_dataset.csv",
		"geolocation_zip_code_prefix,geolocation_lat,geolocation_lng,geolocation_city,geolocation_state",
		"01037,-23.545621,-46.639292,sao paulo,SP",
		"01037,-23.546081,-46.644820,sao paulo,SP",
		"69900,-9.974,-67.807,rio branco,AC\r",
		`20020,-22.9,-43.17,"rio de janeiro, centro",RJ`,
		"99999,-1.0",
	)
	testutil.WriteCSV(t, dir, "olist_customers_dataset.csv",
		"customer_id,customer_unique_id,customer_zip_code_prefix,customer_city,customer_state",
		"c1,u1,01037,sao paulo,SP",
		"c2,u2,69900,rio branco,AC",
		"c3,u3,20020,rio de janeiro,RJ",
	)
	testutil.WriteCSV(t, dir, "olist_sellers_dataset.csv",
		"seller_id,seller_zip_code_prefix,seller_city,seller_state",
		"s1,01037,sao paulo,SP",
		"s2,20020,rio de janeiro,RJ",
	)
	testutil.WriteCSV(t, dir, "olist_products_dataset.csv",
		"product_id,product_category_name,product_name_lenght,product_description_lenght,product_photos_qty,product_weight_g,product_length_cm,product_height_cm,product_width_cm",
		"p1,beleza_saude,40,287,1,225,16,10,14",
		"p2,NULL,,,,500,20,15,10",
		"p3,informatica_acessorios,50,100,2,1000,30,20,20",
	)
	testutil.WriteCSV(t, dir, "olist_orders_dataset.csv",
		"order_id,customer_id,order_status,order_purchase_timestamp,order_approved_at,order_delivered_carrier_date,order_delivered_customer_date,order_estimated_delivery_date",
		"o1,c1,delivered,2017-10-02 10:56:33,2017-10-02 11:07:15,2017-10-04 19:55:00,2017-10-10 21:25:13,2017-10-18 00:00:00",
		"o2,c2,shipped,2018-01-10 09:00:00,2018-01-10 09:30:00,2018-01-12 12:00:00,,2018-01-30 00:00:00",
		"o3,c3,canceled,2018-03-01 08:00:00,NULL,NULL,NULL,2018-03-20 00:00:00",
	)
	testutil.WriteCSV(t, dir, "olist_order_items_dataset.csv",
		"order_id,order_item_id,product_id,seller_id,shipping_limit_date,price,freight_value",
		"o1,1,p1,s1,2017-10-06 11:07:15,29.99,8.72",
		"o2,1,p2,s2,2018-01-15 09:30:00,118.70,22.76",
		"o3,1,p3,s1,2018-03-05 08:00:00,159.90,19.22",
		"o3,2,p1,s2,2018-03-05 08:00:00,29.99,8.72",
	)
	testutil.WriteCSV(t, dir, "olist_order_payments_dataset.csv",
		"order_id,payment_sequential,payment_type,payment_installments,payment_value",
		"o1,1,credit_card,1,38.71",
		"o2,1,boleto,1,141.46",
		"o3,1,voucher,1,50.00",
		"o3,2,credit_card,3,167.06",
	)
	testutil.WriteCSV(t, dir, "olist_order_reviews_dataset.csv",
		"review_id,order_id,review_score,review_comment_title,review_comment_message,review_creation_date,review_answer_timestamp",
		`r1,o1,4,,"Chegou antes do prazo, recomendo",2017-10-11 00:00:00,2017-10-12 03:43:48`,
		"r2,o2,1,Péssimo,NULL,2018-02-01 00:00:00,2018-02-02 10:00:00",
		"r3,o3,5,,,2018-03-21 00:00:00,2018-03-22 00:00:00",
	)
	return dir
}

var (
	errInsert   = errors.New("insert failed")
	errRollback = errors.New("rollback failed")
)

// fakeStore fails in configurable ways and counts transaction calls.
type fakeStore struct {
	execErr     error
	commitErr   error
	rollbackErr error

	begins    int
	commits   int
	rollbacks int
	execs     int
}

func (f *fakeStore) Exec(_ context.Context, _ string, _ ...any) (int64, error) {
	f.execs++
	return 0, f.execErr
}

func (f *fakeStore) Dialect() store.Dialect { return sqlite.Dialect{} }

func (f *fakeStore) Begin(_ context.Context) (store.Tx, error) {
	f.begins++
	return &fakeTx{f: f}, nil
}

func (f *fakeStore) QueryRow(_ context.Context, _ string, _ ...any) store.Row {
	return fakeRow{}
}

func (f *fakeStore) Query(_ context.Context, _ string, _ ...any) (store.Rows, error) {
	return nil, errors.New("not supported")
}

func (f *fakeStore) Close(_ context.Context) error { return nil }

type fakeTx struct {
	f    *fakeStore
	done bool
}

func (t *fakeTx) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	return t.f.Exec(ctx, sql, args...)
}

func (t *fakeTx) Commit(_ context.Context) error {
	t.f.commits++
	if t.f.commitErr != nil {
		return t.f.commitErr
	}
	t.done = true
	return nil
}

func (t *fakeTx) Rollback(_ context.Context) error {
	if t.done {
		return nil
	}
	t.f.rollbacks++
	return t.f.rollbackErr
}

type fakeRow struct{}

func (fakeRow) Scan(dest ...any) error {
	for _, d := range dest {
		if p, ok := d.(*int64); ok {
			*p = 0
		}
	}
	return nil
}
