package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS recurring_items (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    amount      TEXT NOT NULL,
    category    TEXT NOT NULL,
    kind        TEXT NOT NULL,
    is_active   INTEGER NOT NULL DEFAULT 1,
    created_at  TEXT NOT NULL,
    updated_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS finance_settings (
    id                  INTEGER PRIMARY KEY CHECK (id = 1),
    salary_payment_day  INTEGER NOT NULL,
    funding_target      TEXT NOT NULL,
    monthly_allocation  TEXT NOT NULL,
    already_funded      TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS goals (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    cost        TEXT NOT NULL,
    completed   INTEGER NOT NULL DEFAULT 0,
    created_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS monthly_validations (
    month                 TEXT PRIMARY KEY,
    confirmed_expenses    INTEGER NOT NULL DEFAULT 0,
    confirmed_income      INTEGER NOT NULL DEFAULT 0,
    unplanned_expenses    TEXT NOT NULL,
    unplanned_income      TEXT NOT NULL,
    actual_total_income   TEXT NOT NULL,
    actual_total_expenses TEXT NOT NULL,
    validated_at          TEXT
);

CREATE INDEX IF NOT EXISTS idx_items_kind ON recurring_items(kind);
`
