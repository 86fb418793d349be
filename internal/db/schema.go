package db

import (
	"database/sql"
	"fmt"
	"log"
)

// schemaStatements create the full schema on a fresh database. Statements
// are idempotent so bootstrap can run on every start.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		email VARCHAR(255) NOT NULL UNIQUE,
		phone_number VARCHAR(20) NOT NULL UNIQUE,
		full_name VARCHAR(255) NOT NULL,
		user_type VARCHAR(20) NOT NULL DEFAULT 'COMMUTER',
		password_hash VARCHAR(255) NOT NULL,
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		is_verified TINYINT(1) NOT NULL DEFAULT 0,
		date_joined DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS otp_codes (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		code CHAR(6) NOT NULL,
		is_used TINYINT(1) NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		expires_at DATETIME NOT NULL,
		KEY idx_otp_user (user_id, is_used, expires_at),
		CONSTRAINT fk_otp_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS user_profiles (
		user_id BIGINT UNSIGNED PRIMARY KEY,
		first_name VARCHAR(100) NULL,
		last_name VARCHAR(100) NULL,
		phone_number VARCHAR(20) NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		CONSTRAINT fk_profile_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS saccos (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		registration_number VARCHAR(50) NOT NULL UNIQUE,
		owner_id BIGINT UNSIGNED NOT NULL,
		base_town VARCHAR(100) NOT NULL DEFAULT '',
		contact_phone VARCHAR(20) NOT NULL DEFAULT '',
		status VARCHAR(20) NOT NULL DEFAULT 'ACTIVE',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		CONSTRAINT fk_sacco_owner FOREIGN KEY (owner_id) REFERENCES users(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS locations (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		latitude DECIMAL(9,6) NOT NULL,
		longitude DECIMAL(9,6) NOT NULL,
		address VARCHAR(255) NOT NULL DEFAULT '',
		KEY idx_location_name (name),
		KEY idx_location_latlng (latitude, longitude)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS routes (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		start_location_id BIGINT UNSIGNED NOT NULL,
		end_location_id BIGINT UNSIGNED NOT NULL,
		estimated_duration INT NOT NULL DEFAULT 0,
		is_saved TINYINT(1) NOT NULL DEFAULT 0,
		created_by BIGINT UNSIGNED NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT fk_route_start FOREIGN KEY (start_location_id) REFERENCES locations(id),
		CONSTRAINT fk_route_end FOREIGN KEY (end_location_id) REFERENCES locations(id),
		CONSTRAINT fk_route_user FOREIGN KEY (created_by) REFERENCES users(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS route_stops (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		route_id BIGINT UNSIGNED NOT NULL,
		location_id BIGINT UNSIGNED NOT NULL,
		sequence INT NOT NULL,
		estimated_time INT NOT NULL DEFAULT 0,
		KEY idx_stop_route (route_id, sequence),
		CONSTRAINT fk_stop_route FOREIGN KEY (route_id) REFERENCES routes(id) ON DELETE CASCADE,
		CONSTRAINT fk_stop_location FOREIGN KEY (location_id) REFERENCES locations(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS vehicles (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		sacco_id BIGINT UNSIGNED NOT NULL,
		fleet_number VARCHAR(50) NOT NULL,
		plate_number VARCHAR(20) NOT NULL UNIQUE,
		capacity INT NOT NULL DEFAULT 14,
		route_id BIGINT UNSIGNED NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'ACTIVE',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_vehicle_fleet (sacco_id, fleet_number),
		CONSTRAINT fk_vehicle_sacco FOREIGN KEY (sacco_id) REFERENCES saccos(id) ON DELETE CASCADE,
		CONSTRAINT fk_vehicle_route FOREIGN KEY (route_id) REFERENCES routes(id) ON DELETE SET NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS trips (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		route_id BIGINT UNSIGNED NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'SCHEDULED',
		scheduled_time DATETIME NOT NULL,
		estimated_arrival_time DATETIME NULL,
		actual_arrival_time DATETIME NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		KEY idx_trip_user_status (user_id, status, scheduled_time),
		CONSTRAINT fk_trip_user FOREIGN KEY (user_id) REFERENCES users(id),
		CONSTRAINT fk_trip_route FOREIGN KEY (route_id) REFERENCES routes(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

var requiredTables = []string{
	"users", "otp_codes", "user_profiles", "saccos",
	"locations", "routes", "route_stops", "vehicles", "trips",
}

// EnsureSchema creates missing tables and brings older databases up to the
// current shape. Safe to run on every boot.
func EnsureSchema(db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	for _, table := range requiredTables {
		if !HasTable(db, table) {
			return fmt.Errorf("table %s missing after bootstrap", table)
		}
	}

	// vehicles tables created before route assignment lack the column
	if !HasColumn(db, "vehicles", "route_id") {
		if _, err := db.Exec(`ALTER TABLE vehicles ADD COLUMN route_id BIGINT UNSIGNED NULL`); err != nil {
			return err
		}
	}

	log.Println("schema bootstrap OK")
	return nil
}
