package main

import (
	"context"
	"log"
	"os"
	"time"

	"auction-marketplace-be/internal/entity"
	"auction-marketplace-be/internal/repository/contract"
	"auction-marketplace-be/internal/repository/specification"
	"auction-marketplace-be/internal/repository/unitofwork"
	"auction-marketplace-be/pkg/database"
	"auction-marketplace-be/pkg/slugify"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Seeds a small demo taxonomy: two roots, one subcategory with inherited
// fields. Safe to re-run, existing names are skipped.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)
	repo := uow.CategoryRepository()

	brandId := uuid.New()
	tractors := seedCategory(ctx, repo, &entity.Category{
		Id:              uuid.New(),
		Name:            "Tractors",
		Slug:            slugify.Make("Tractors"),
		Level:           0,
		Order:           0,
		IsActive:        true,
		InheritedFields: true,
		Fields: []entity.FieldDefinition{
			{
				Id:        &brandId,
				Name:      "brand",
				Label:     "Brand",
				FieldType: entity.FieldTypeText,
				Required:  true,
				Order:     0,
				IsActive:  true,
			},
		},
		CreatedAt: time.Now(),
	})

	capacityId := uuid.New()
	if tractors != nil {
		seedCategory(ctx, repo, &entity.Category{
			Id:              uuid.New(),
			Name:            "Compact Tractors",
			Slug:            slugify.Make("Compact Tractors"),
			ParentId:        &tractors.Id,
			Level:           1,
			Order:           0,
			IsActive:        true,
			InheritedFields: true,
			Fields: []entity.FieldDefinition{
				{
					Id:        &capacityId,
					Name:      "capacity",
					Label:     "Lifting Capacity",
					FieldType: entity.FieldTypeNumber,
					Unit:      "kg",
					Order:     1,
					IsActive:  true,
				},
			},
			CreatedAt: time.Now(),
		})
	}

	seedCategory(ctx, repo, &entity.Category{
		Id:              uuid.New(),
		Name:            "Heavy Trucks",
		Slug:            slugify.Make("Heavy  Trucks!!"),
		Level:           0,
		Order:           1,
		IsActive:        true,
		InheritedFields: true,
		Fields:          []entity.FieldDefinition{},
		CreatedAt:       time.Now(),
	})

	log.Println("Seeding completed")
}

func seedCategory(ctx context.Context, repo contract.CategoryRepository, category *entity.Category) *entity.Category {
	existing, err := repo.FindOne(ctx, specification.ByName{Name: category.Name})
	if err != nil {
		log.Fatalf("Error: failed to check existing category %s: %v", category.Name, err)
	}
	if existing != nil {
		log.Printf("Skip: category %s already exists", category.Name)
		return existing
	}

	if err := repo.Create(ctx, category); err != nil {
		log.Fatalf("Error: failed to seed category %s: %v", category.Name, err)
	}
	log.Printf("Seeded category %s", category.Name)
	return category
}
