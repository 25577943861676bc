package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

// DBConfig holds database connection parameters
type DBConfig struct {
	DSN string
}

// LoadDBConfig loads database configuration from environment variables
func LoadDBConfig() (*DBConfig, error) {
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")

	if dbHost == "" || dbPort == "" || dbUser == "" || dbName == "" {
		return nil, fmt.Errorf("database environment variables not set (DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME)")
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPassword, dbName)

	return &DBConfig{DSN: dsn}, nil
}

// ConnectDB establishes a connection to the PostgreSQL database
func ConnectDB(cfg *DBConfig) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool
	var err error

	// Retry connecting to the database a few times
	maxRetries := 5
	retryInterval := 5 * time.Second

	for i := 0; i < maxRetries; i++ {
		pool, err = pgxpool.New(context.Background(), cfg.DSN)
		if err == nil {
			err = pool.Ping(context.Background())
			if err == nil {
				logrus.Info("Successfully connected to PostgreSQL")
				return pool, nil
			}
		}
		logrus.WithError(err).Warnf("Failed to connect to database (attempt %d/%d), retrying in %v", i+1, maxRetries, retryInterval)
		time.Sleep(retryInterval)
	}
	return nil, fmt.Errorf("unable to connect to database after %d attempts: %w", maxRetries, err)
}

// AutoMigrate creates tables if they don't exist
func AutoMigrate(db *pgxpool.Pool) error {
	sql := `
	CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL CHECK (role IN ('user', 'admin')) DEFAULT 'user',
		name TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		license_number TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS cars (
		id SERIAL PRIMARY KEY,
		make VARCHAR(100) NOT NULL,
		model VARCHAR(100) NOT NULL,
		year INT NOT NULL,
		type VARCHAR(50) NOT NULL,
		fuel_type VARCHAR(50) NOT NULL,
		transmission VARCHAR(50) NOT NULL CHECK (transmission IN ('manual', 'automatic')),
		seating_capacity INT NOT NULL,
		price_per_day BIGINT NOT NULL, -- in smallest currency unit (e.g., cents)
		available BOOLEAN NOT NULL DEFAULT TRUE,
		registration_number TEXT UNIQUE NOT NULL,
		image TEXT,
		features TEXT[] NOT NULL DEFAULT '{}',
		description TEXT,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS bookings (
		id BIGSERIAL PRIMARY KEY,
		reference UUID UNIQUE NOT NULL,
		user_id INT NOT NULL,
		car_id INT NOT NULL,
		start_date TIMESTAMP WITH TIME ZONE NOT NULL,
		end_date TIMESTAMP WITH TIME ZONE NOT NULL,
		total_price BIGINT NOT NULL,
		status VARCHAR(20) NOT NULL CHECK (status IN ('pending', 'confirmed', 'cancelled', 'completed')) DEFAULT 'pending',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
		FOREIGN KEY (car_id) REFERENCES cars(id) ON DELETE CASCADE
	);

	-- Indexes for performance
	CREATE INDEX IF NOT EXISTS idx_bookings_user_id ON bookings(user_id);
	CREATE INDEX IF NOT EXISTS idx_bookings_car_id ON bookings(car_id);
	CREATE INDEX IF NOT EXISTS idx_bookings_status ON bookings(status);
	CREATE INDEX IF NOT EXISTS idx_cars_type ON cars(type);
	CREATE INDEX IF NOT EXISTS idx_cars_available ON cars(available);

    -- Function to update updated_at column
    CREATE OR REPLACE FUNCTION update_updated_at_column()
    RETURNS TRIGGER AS $$
    BEGIN
       NEW.updated_at = NOW();
       RETURN NEW;
    END;
    $$ language 'plpgsql';

    DO $$
    DECLARE
        tbl TEXT;
    BEGIN
        FOREACH tbl IN ARRAY ARRAY['users', 'cars', 'bookings'] LOOP
            IF NOT EXISTS (
                SELECT 1
                FROM pg_trigger
                WHERE tgname = 'set_' || tbl || '_updated_at' AND tgrelid = tbl::regclass
            ) THEN
                EXECUTE format('CREATE TRIGGER set_%s_updated_at BEFORE UPDATE ON %s FOR EACH ROW EXECUTE FUNCTION update_updated_at_column()', tbl, tbl);
            END IF;
        END LOOP;
    END
    $$;
	`
	_, err := db.Exec(context.Background(), sql)
	if err != nil {
		return fmt.Errorf("unable to apply migrations: %w", err)
	}

	logrus.Info("AutoMigrate applied successfully")
	return nil
}

// SeedCars inserts a small starter catalog when the cars table is empty.
func SeedCars(db *pgxpool.Pool) error {
	var count int
	if err := db.QueryRow(context.Background(), `SELECT COUNT(*) FROM cars`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count cars for seeding: %w", err)
	}
	if count > 0 {
		return nil
	}

	sql := `INSERT INTO cars (make, model, year, type, fuel_type, transmission, seating_capacity, price_per_day, registration_number, features, description)
	        VALUES
	        ('Toyota', 'Corolla', 2022, 'sedan', 'petrol', 'automatic', 5, 4500, 'KA-01-AB-1234', '{"air conditioning","bluetooth"}', 'Reliable everyday sedan'),
	        ('Honda', 'CR-V', 2023, 'suv', 'hybrid', 'automatic', 5, 7500, 'KA-02-CD-5678', '{"air conditioning","cruise control","rear camera"}', 'Comfortable family SUV'),
	        ('Suzuki', 'Swift', 2021, 'hatchback', 'petrol', 'manual', 5, 3000, 'KA-03-EF-9012', '{"bluetooth"}', 'Compact city runabout')`

	if _, err := db.Exec(context.Background(), sql); err != nil {
		return fmt.Errorf("failed to seed car catalog: %w", err)
	}
	logrus.Info("Seeded starter car catalog")
	return nil
}
