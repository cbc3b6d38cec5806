package mysql

// Reservation ids on the hotel row live in a JSON column, mirroring the
// flat-file layout where the hotel record embeds its reservation list.

// One statement per entry: the driver only batches multiple statements
// per Exec when the DSN opts into multiStatements, so Migrate runs them
// one at a time.
var schemaSQL = []string{
	`CREATE TABLE IF NOT EXISTS hotels (
  id           BIGINT PRIMARY KEY,
  name         VARCHAR(255) NOT NULL DEFAULT '',
  location     VARCHAR(255) NOT NULL DEFAULT '',
  rooms        INT NOT NULL DEFAULT 0,
  reservations JSON NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS customers (
  id    BIGINT PRIMARY KEY,
  name  VARCHAR(255) NOT NULL DEFAULT '',
  email VARCHAR(255) NOT NULL DEFAULT ''
)`,
	`CREATE TABLE IF NOT EXISTS reservations (
  id          BIGINT PRIMARY KEY,
  customer_id BIGINT NOT NULL,
  hotel_id    BIGINT NOT NULL,
  KEY idx_reservations_hotel (hotel_id)
)`,
}

const upsertHotelSQL = `
INSERT INTO hotels (id, name, location, rooms, reservations)
VALUES (?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  name         = VALUES(name),
  location     = VALUES(location),
  rooms        = VALUES(rooms),
  reservations = VALUES(reservations)
`

// COALESCE keeps the stored value when a patch field is absent.
const updateHotelSQL = `
UPDATE hotels
SET name     = COALESCE(?, name),
    location = COALESCE(?, location),
    rooms    = COALESCE(?, rooms)
WHERE id = ?
`

const upsertCustomerSQL = `
INSERT INTO customers (id, name, email)
VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE
  name  = VALUES(name),
  email = VALUES(email)
`

const updateCustomerSQL = `
UPDATE customers
SET name  = COALESCE(?, name),
    email = COALESCE(?, email)
WHERE id = ?
`

const insertReservationSQL = `
INSERT INTO reservations (id, customer_id, hotel_id)
VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE
  customer_id = VALUES(customer_id),
  hotel_id    = VALUES(hotel_id)
`

const getHotelSQL = `SELECT id, name, location, rooms, reservations FROM hotels WHERE id = ?`

const listHotelsSQL = `SELECT id, name, location, rooms, reservations FROM hotels ORDER BY id`
