//-------------------------------------------------------------------------
//
// pgEdge Olist Loader
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package olist

import (
	"context"
	"fmt"

	"github.com/pgEdge/pgedge-olist/internal/store"
)

// MetadataTable holds load history. It is not part of the dataset and is
// never cleared by the loader.
const MetadataTable = "olist_load_metadata"

// PostgreSQL schema.
var postgresSchema = []string{
	// STATES: Brazilian states and the Federal District
	`CREATE TABLE IF NOT EXISTS STATES (
    state_code  CHAR(2) PRIMARY KEY,
    state_name  VARCHAR(50) NOT NULL,
    region      VARCHAR(20) NOT NULL
)`,

	// CATEGORIES: product category translations
	`CREATE TABLE IF NOT EXISTS CATEGORIES (
    category_id              SERIAL PRIMARY KEY,
    category_name_portuguese VARCHAR(100) NOT NULL UNIQUE,
    category_name_english    VARCHAR(100)
)`,

	// GEOLOCATION: zip prefixes repeat, so rows get a surrogate key
	`CREATE TABLE IF NOT EXISTS GEOLOCATION (
    geolocation_id    SERIAL PRIMARY KEY,
    zip_code_prefix   VARCHAR(5) NOT NULL,
    geolocation_lat   DOUBLE PRECISION,
    geolocation_lng   DOUBLE PRECISION,
    geolocation_city  VARCHAR(100),
    geolocation_state CHAR(2)
)`,

	`CREATE TABLE IF NOT EXISTS CUSTOMERS (
    customer_id              VARCHAR(32) PRIMARY KEY,
    customer_unique_id       VARCHAR(32) NOT NULL,
    customer_zip_code_prefix VARCHAR(5),
    customer_city            VARCHAR(100),
    customer_state           CHAR(2)
)`,

	`CREATE TABLE IF NOT EXISTS SELLERS (
    seller_id              VARCHAR(32) PRIMARY KEY,
    seller_zip_code_prefix VARCHAR(5),
    seller_city            VARCHAR(100),
    seller_state           CHAR(2)
)`,

	`CREATE TABLE IF NOT EXISTS PRODUCTS (
    product_id                 VARCHAR(32) PRIMARY KEY,
    category_name_portuguese   VARCHAR(100),
    product_name_length        INTEGER,
    product_description_length INTEGER,
    product_photos_qty         INTEGER,
    product_weight_g           INTEGER,
    product_length_cm          INTEGER,
    product_height_cm          INTEGER,
    product_width_cm           INTEGER
)`,

	`CREATE TABLE IF NOT EXISTS ORDERS (
    order_id                      VARCHAR(32) PRIMARY KEY,
    customer_id                   VARCHAR(32) NOT NULL REFERENCES CUSTOMERS(customer_id),
    order_status                  VARCHAR(20) NOT NULL,
    order_purchase_timestamp      TIMESTAMP,
    order_approved_at             TIMESTAMP,
    order_delivered_carrier_date  TIMESTAMP,
    order_delivered_customer_date TIMESTAMP,
    order_estimated_delivery_date TIMESTAMP
)`,

	`CREATE TABLE IF NOT EXISTS ORDER_ITEMS (
    order_id            VARCHAR(32) NOT NULL REFERENCES ORDERS(order_id),
    order_item_seq      INTEGER NOT NULL,
    product_id          VARCHAR(32) NOT NULL REFERENCES PRODUCTS(product_id),
    seller_id           VARCHAR(32) NOT NULL REFERENCES SELLERS(seller_id),
    shipping_limit_date TIMESTAMP,
    price               NUMERIC(10,2),
    freight_value       NUMERIC(10,2),
    PRIMARY KEY (order_id, order_item_seq)
)`,

	`CREATE TABLE IF NOT EXISTS ORDER_PAYMENTS (
    order_id             VARCHAR(32) NOT NULL REFERENCES ORDERS(order_id),
    payment_sequential   INTEGER NOT NULL,
    payment_type         VARCHAR(20),
    payment_installments INTEGER,
    payment_value        NUMERIC(10,2),
    PRIMARY KEY (order_id, payment_sequential)
)`,

	`CREATE TABLE IF NOT EXISTS ORDER_REVIEWS (
    review_id               VARCHAR(32) PRIMARY KEY,
    order_id                VARCHAR(32) NOT NULL REFERENCES ORDERS(order_id),
    review_score            INTEGER CHECK (review_score BETWEEN 1 AND 5),
    review_comment_title    VARCHAR(255),
    review_comment_message  TEXT,
    review_creation_date    TIMESTAMP,
    review_answer_timestamp TIMESTAMP
)`,

	`CREATE INDEX IF NOT EXISTS idx_geolocation_zip ON GEOLOCATION(zip_code_prefix)`,
	`CREATE INDEX IF NOT EXISTS idx_customers_zip ON CUSTOMERS(customer_zip_code_prefix)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_customer ON ORDERS(customer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_order_items_product ON ORDER_ITEMS(product_id)`,
	`CREATE INDEX IF NOT EXISTS idx_order_items_seller ON ORDER_ITEMS(seller_id)`,
	`CREATE INDEX IF NOT EXISTS idx_order_reviews_order ON ORDER_REVIEWS(order_id)`,

	`CREATE TABLE IF NOT EXISTS ` + MetadataTable + ` (
    key   VARCHAR(100) PRIMARY KEY,
    value TEXT NOT NULL
)`,
}

// SQLite schema. Column types follow SQLite affinity rules.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS STATES (
    state_code  TEXT PRIMARY KEY NOT NULL,
    state_name  TEXT NOT NULL,
    region      TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS CATEGORIES (
    category_id              INTEGER PRIMARY KEY AUTOINCREMENT,
    category_name_portuguese TEXT NOT NULL UNIQUE,
    category_name_english    TEXT
)`,
	`CREATE TABLE IF NOT EXISTS GEOLOCATION (
    geolocation_id    INTEGER PRIMARY KEY AUTOINCREMENT,
    zip_code_prefix   TEXT NOT NULL,
    geolocation_lat   REAL,
    geolocation_lng   REAL,
    geolocation_city  TEXT,
    geolocation_state TEXT
)`,
	`CREATE TABLE IF NOT EXISTS CUSTOMERS (
    customer_id              TEXT PRIMARY KEY NOT NULL,
    customer_unique_id       TEXT NOT NULL,
    customer_zip_code_prefix TEXT,
    customer_city            TEXT,
    customer_state           TEXT
)`,
	`CREATE TABLE IF NOT EXISTS SELLERS (
    seller_id              TEXT PRIMARY KEY NOT NULL,
    seller_zip_code_prefix TEXT,
    seller_city            TEXT,
    seller_state           TEXT
)`,
	`CREATE TABLE IF NOT EXISTS PRODUCTS (
    product_id                 TEXT PRIMARY KEY NOT NULL,
    category_name_portuguese   TEXT,
    product_name_length        INTEGER,
    product_description_length INTEGER,
    product_photos_qty         INTEGER,
    product_weight_g           INTEGER,
    product_length_cm          INTEGER,
    product_height_cm          INTEGER,
    product_width_cm           INTEGER
)`,
	`CREATE TABLE IF NOT EXISTS ORDERS (
    order_id                      TEXT PRIMARY KEY NOT NULL,
    customer_id                   TEXT NOT NULL REFERENCES CUSTOMERS(customer_id),
    order_status                  TEXT NOT NULL,
    order_purchase_timestamp      TEXT,
    order_approved_at             TEXT,
    order_delivered_carrier_date  TEXT,
    order_delivered_customer_date TEXT,
    order_estimated_delivery_date TEXT
)`,
	`CREATE TABLE IF NOT EXISTS ORDER_ITEMS (
    order_id            TEXT NOT NULL REFERENCES ORDERS(order_id),
    order_item_seq      INTEGER NOT NULL,
    product_id          TEXT NOT NULL REFERENCES PRODUCTS(product_id),
    seller_id           TEXT NOT NULL REFERENCES SELLERS(seller_id),
    shipping_limit_date TEXT,
    price               NUMERIC,
    freight_value       NUMERIC,
    PRIMARY KEY (order_id, order_item_seq)
)`,
	`CREATE TABLE IF NOT EXISTS ORDER_PAYMENTS (
    order_id             TEXT NOT NULL REFERENCES ORDERS(order_id),
    payment_sequential   INTEGER NOT NULL,
    payment_type         TEXT,
    payment_installments INTEGER,
    payment_value        NUMERIC,
    PRIMARY KEY (order_id, payment_sequential)
)`,
	`CREATE TABLE IF NOT EXISTS ORDER_REVIEWS (
    review_id               TEXT PRIMARY KEY NOT NULL,
    order_id                TEXT NOT NULL REFERENCES ORDERS(order_id),
    review_score            INTEGER CHECK (review_score BETWEEN 1 AND 5),
    review_comment_title    TEXT,
    review_comment_message  TEXT,
    review_creation_date    TEXT,
    review_answer_timestamp TEXT
)`,
	`CREATE INDEX IF NOT EXISTS idx_geolocation_zip ON GEOLOCATION(zip_code_prefix)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_customer ON ORDERS(customer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_order_items_product ON ORDER_ITEMS(product_id)`,
	`CREATE INDEX IF NOT EXISTS idx_order_reviews_order ON ORDER_REVIEWS(order_id)`,
	`CREATE TABLE IF NOT EXISTS ` + MetadataTable + ` (
    key   TEXT PRIMARY KEY NOT NULL,
    value TEXT NOT NULL
)`,
}

// SQL Server schema.
var sqlserverSchema = []string{
	`IF OBJECT_ID('STATES', 'U') IS NULL CREATE TABLE STATES (
    state_code  CHAR(2) NOT NULL PRIMARY KEY,
    state_name  NVARCHAR(50) NOT NULL,
    region      VARCHAR(20) NOT NULL
)`,
	`IF OBJECT_ID('CATEGORIES', 'U') IS NULL CREATE TABLE CATEGORIES (
    category_id              INT IDENTITY(1,1) PRIMARY KEY,
    category_name_portuguese NVARCHAR(100) NOT NULL UNIQUE,
    category_name_english    NVARCHAR(100)
)`,
	`IF OBJECT_ID('GEOLOCATION', 'U') IS NULL CREATE TABLE GEOLOCATION (
    geolocation_id    INT IDENTITY(1,1) PRIMARY KEY,
    zip_code_prefix   VARCHAR(5) NOT NULL,
    geolocation_lat   FLOAT,
    geolocation_lng   FLOAT,
    geolocation_city  NVARCHAR(100),
    geolocation_state CHAR(2)
)`,
	`IF OBJECT_ID('CUSTOMERS', 'U') IS NULL CREATE TABLE CUSTOMERS (
    customer_id              VARCHAR(32) NOT NULL PRIMARY KEY,
    customer_unique_id       VARCHAR(32) NOT NULL,
    customer_zip_code_prefix VARCHAR(5),
    customer_city            NVARCHAR(100),
    customer_state           CHAR(2)
)`,
	`IF OBJECT_ID('SELLERS', 'U') IS NULL CREATE TABLE SELLERS (
    seller_id              VARCHAR(32) NOT NULL PRIMARY KEY,
    seller_zip_code_prefix VARCHAR(5),
    seller_city            NVARCHAR(100),
    seller_state           CHAR(2)
)`,
	`IF OBJECT_ID('PRODUCTS', 'U') IS NULL CREATE TABLE PRODUCTS (
    product_id                 VARCHAR(32) NOT NULL PRIMARY KEY,
    category_name_portuguese   NVARCHAR(100),
    product_name_length        INT,
    product_description_length INT,
    product_photos_qty         INT,
    product_weight_g           INT,
    product_length_cm          INT,
    product_height_cm          INT,
    product_width_cm           INT
)`,
	`IF OBJECT_ID('ORDERS', 'U') IS NULL CREATE TABLE ORDERS (
    order_id                      VARCHAR(32) NOT NULL PRIMARY KEY,
    customer_id                   VARCHAR(32) NOT NULL REFERENCES CUSTOMERS(customer_id),
    order_status                  VARCHAR(20) NOT NULL,
    order_purchase_timestamp      DATETIME2,
    order_approved_at             DATETIME2,
    order_delivered_carrier_date  DATETIME2,
    order_delivered_customer_date DATETIME2,
    order_estimated_delivery_date DATETIME2
)`,
	`IF OBJECT_ID('ORDER_ITEMS', 'U') IS NULL CREATE TABLE ORDER_ITEMS (
    order_id            VARCHAR(32) NOT NULL REFERENCES ORDERS(order_id),
    order_item_seq      INT NOT NULL,
    product_id          VARCHAR(32) NOT NULL REFERENCES PRODUCTS(product_id),
    seller_id           VARCHAR(32) NOT NULL REFERENCES SELLERS(seller_id),
    shipping_limit_date DATETIME2,
    price               DECIMAL(10,2),
    freight_value       DECIMAL(10,2),
    PRIMARY KEY (order_id, order_item_seq)
)`,
	`IF OBJECT_ID('ORDER_PAYMENTS', 'U') IS NULL CREATE TABLE ORDER_PAYMENTS (
    order_id             VARCHAR(32) NOT NULL REFERENCES ORDERS(order_id),
    payment_sequential   INT NOT NULL,
    payment_type         VARCHAR(20),
    payment_installments INT,
    payment_value        DECIMAL(10,2),
    PRIMARY KEY (order_id, payment_sequential)
)`,
	`IF OBJECT_ID('ORDER_REVIEWS', 'U') IS NULL CREATE TABLE ORDER_REVIEWS (
    review_id               VARCHAR(32) NOT NULL PRIMARY KEY,
    order_id                VARCHAR(32) NOT NULL REFERENCES ORDERS(order_id),
    review_score            INT CHECK (review_score BETWEEN 1 AND 5),
    review_comment_title    NVARCHAR(255),
    review_comment_message  NVARCHAR(MAX),
    review_creation_date    DATETIME2,
    review_answer_timestamp DATETIME2
)`,
	`IF OBJECT_ID('` + MetadataTable + `', 'U') IS NULL CREATE TABLE ` + MetadataTable + ` (
    [key]   VARCHAR(100) NOT NULL PRIMARY KEY,
    [value] NVARCHAR(MAX) NOT NULL
)`,
}

func schemaFor(d store.Dialect) ([]string, error) {
	switch d.Name() {
	case "postgres":
		return postgresSchema, nil
	case "sqlite":
		return sqliteSchema, nil
	case "sqlserver":
		return sqlserverSchema, nil
	default:
		return nil, fmt.Errorf("no schema for dialect %s", d.Name())
	}
}

// CreateSchema creates the dataset tables and the metadata table if they
// do not already exist.
func CreateSchema(ctx context.Context, st store.Store) error {
	stmts, err := schemaFor(st.Dialect())
	if err != nil {
		return err
	}
	for _, stmt := range stmts {
		if _, err := st.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// DropSchema drops every dataset table, dependents first, and the
// metadata table.
func DropSchema(ctx context.Context, st store.Store) error {
	tables := append(ClearOrder(), MetadataTable)
	for _, name := range tables {
		if _, err := st.Exec(ctx, "DROP TABLE IF EXISTS "+name); err != nil {
			return fmt.Errorf("drop %s: %w", name, err)
		}
	}
	return nil
}
