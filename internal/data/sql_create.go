package data

const SQLCreate = `
PRAGMA encoding = 'UTF-8';

CREATE TABLE IF NOT EXISTS partners
(
    partner_id    INTEGER PRIMARY KEY AUTOINCREMENT,
    name          TEXT    NOT NULL,
    partner_type  TEXT    NOT NULL,
    rating        INTEGER NOT NULL CHECK (rating >= 0),
    address       TEXT,
    director_name TEXT,
    phone         TEXT,
    email         TEXT
);

CREATE TABLE IF NOT EXISTS products
(
    product_id      INTEGER PRIMARY KEY AUTOINCREMENT,
    name            TEXT    NOT NULL,
    product_type_id INTEGER NOT NULL,
    param1          REAL    NOT NULL CHECK (param1 > 0),
    param2          REAL    NOT NULL CHECK (param2 > 0)
);

CREATE TABLE IF NOT EXISTS sales
(
    sale_id    INTEGER PRIMARY KEY AUTOINCREMENT,
    partner_id INTEGER NOT NULL,
    product_id INTEGER NOT NULL,
    quantity   INTEGER NOT NULL CHECK (quantity > 0),
    sale_date  TEXT    NOT NULL,
    FOREIGN KEY (partner_id) REFERENCES partners (partner_id) ON DELETE RESTRICT,
    FOREIGN KEY (product_id) REFERENCES products (product_id) ON DELETE RESTRICT
);

CREATE INDEX IF NOT EXISTS sales_partner_id ON sales (partner_id);
`
