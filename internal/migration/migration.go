package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"

	authdomain "github.com/menuku/menuku/internal/auth/domain"
	businessdomain "github.com/menuku/menuku/internal/business/domain"
	categorydomain "github.com/menuku/menuku/internal/category/domain"
	contactdomain "github.com/menuku/menuku/internal/contact/domain"
	itemdomain "github.com/menuku/menuku/internal/item/domain"
	orderdomain "github.com/menuku/menuku/internal/order/domain"
	plandomain "github.com/menuku/menuku/internal/plan/domain"
	roledomain "github.com/menuku/menuku/internal/role/domain"
	subscriptiondomain "github.com/menuku/menuku/internal/subscription/domain"
)

// RunMigrations applies the embedded SQL migrations. Postgres only; other
// dialects go through AutoMigrate.
func RunMigrations(db *sql.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	upErr := migrator.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", upErr)
	}
	// Do not close the migrator here; it would close the shared *sql.DB.

	return nil
}

// AutoMigrate builds the schema from the models. Used for sqlite and mysql
// where the embedded migrations do not apply.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&roledomain.Role{},
		&authdomain.User{},
		&contactdomain.MessagingContact{},
		&businessdomain.Business{},
		&categorydomain.Category{},
		&itemdomain.Item{},
		&plandomain.SubscriptionPlan{},
		&subscriptiondomain.UserSubscriptionPlan{},
		&orderdomain.Order{},
		&orderdomain.OrderLine{},
	)
}
