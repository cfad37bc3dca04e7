package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"carencia/internal/database"
	"carencia/internal/domain"
	"carencia/internal/repository"
)

func setupCatalogEnv(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}
	require.NoError(t, database.Migrate(db))

	// nil cache client: caching disabled, reads go straight to the db
	return NewService(repository.NewVehicleRepository(db), nil), db
}

func seedVehicle(t *testing.T, db *gorm.DB, v domain.Vehicle) domain.Vehicle {
	t.Helper()
	require.NoError(t, db.Create(&v).Error)
	return v
}

func TestListFilters(t *testing.T) {
	svc, db := setupCatalogEnv(t)
	ctx := context.Background()

	seedVehicle(t, db, domain.Vehicle{Make: "Chevrolet", Model: "Onix", Year: 2022, Price: 78900, Available: true})
	seedVehicle(t, db, domain.Vehicle{Make: "Toyota", Model: "Corolla", Year: 2023, Price: 142500, Available: true})
	seedVehicle(t, db, domain.Vehicle{Make: "Toyota", Model: "Hilux", Year: 2021, Price: 230000, Available: false})

	t.Run("only available by default", func(t *testing.T) {
		vehicles, total, err := svc.List(ctx, repository.VehicleFilter{})
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		assert.Len(t, vehicles, 2)
	})

	t.Run("filter by make", func(t *testing.T) {
		vehicles, total, err := svc.List(ctx, repository.VehicleFilter{Make: "toyota"})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, vehicles, 1)
		assert.Equal(t, "Corolla", vehicles[0].Model)
	})

	t.Run("price ceiling", func(t *testing.T) {
		vehicles, _, err := svc.List(ctx, repository.VehicleFilter{PriceMax: 100000})
		require.NoError(t, err)
		require.Len(t, vehicles, 1)
		assert.Equal(t, "Onix", vehicles[0].Model)
	})
}

func TestGetByID(t *testing.T) {
	svc, db := setupCatalogEnv(t)
	ctx := context.Background()

	v := seedVehicle(t, db, domain.Vehicle{Make: "Fiat", Model: "Argo", Year: 2022, Price: 72900, Available: true})

	got, err := svc.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "Argo", got.Model)

	_, err = svc.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrVehicleNotFound)
}

func TestFeatured(t *testing.T) {
	svc, db := setupCatalogEnv(t)
	ctx := context.Background()

	seedVehicle(t, db, domain.Vehicle{Make: "Chevrolet", Model: "Onix", Year: 2022, Price: 78900, Available: true, Featured: true})
	seedVehicle(t, db, domain.Vehicle{Make: "Toyota", Model: "Corolla", Year: 2023, Price: 142500, Available: true})

	featured, err := svc.Featured(ctx, 10)
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, "Onix", featured[0].Model)
}
