package main

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"medimart-backend/internal/apperr"
	"medimart-backend/internal/config"
	"medimart-backend/internal/models"
	"medimart-backend/internal/service"
	"medimart-backend/internal/store"
)

type seedProduct struct {
	name        string
	description string
	price       float64
	mrp         float64
	stock       int
	category    string
	featured    bool
}

var seedCategories = []service.CategoryInput{
	{Name: "First Aid", Featured: true, DisplayOrder: 1},
	{Name: "Diagnostics", Featured: true, DisplayOrder: 2},
	{Name: "Mobility Aids", DisplayOrder: 3},
	{Name: "Personal Protective Equipment", DisplayOrder: 4},
}

var seedProducts = []seedProduct{
	{"Adhesive Bandages 100pc", "Sterile assorted-size bandages", 149, 199, 120, "first-aid", true},
	{"Antiseptic Solution 500ml", "Chlorhexidine wound cleanser", 220, 260, 80, "first-aid", false},
	{"Digital Thermometer", "Fast-read oral thermometer, 10s", 399, 549, 60, "diagnostics", true},
	{"Blood Pressure Monitor", "Automatic upper-arm BP monitor", 2199, 2799, 25, "diagnostics", true},
	{"Pulse Oximeter", "Fingertip SpO2 and pulse monitor", 1299, 1699, 40, "diagnostics", false},
	{"Folding Walking Stick", "Height-adjustable aluminium cane", 749, 999, 30, "mobility-aids", false},
	{"Wheelchair Standard", "Foldable self-propelled wheelchair", 7499, 8999, 8, "mobility-aids", false},
	{"N95 Respirator 20pc", "NIOSH-approved particulate masks", 899, 1199, 200, "personal-protective-equipment", true},
	{"Nitrile Gloves 100pc", "Powder-free examination gloves", 549, 699, 150, "personal-protective-equipment", false},
}

// seed loads an admin account, the category tree and a sample catalog.
// Rerunning skips anything that already exists.
func seed(ctx context.Context, cfg *config.Config, stores *store.Stores, adminEmail, adminPassword string) error {
	accounts := service.NewAccountService(stores.Users, &cfg.JWT)
	catalog := service.NewCatalogService(stores.Products, stores.Categories, stores.Users)

	admin, err := accounts.Register(ctx, service.RegisterInput{
		Name:     "Administrator",
		Email:    adminEmail,
		Password: adminPassword,
	})
	switch {
	case err == nil:
		admin.Role = models.RoleAdmin
		if err := stores.Users.Update(ctx, admin); err != nil {
			return err
		}
		zap.L().Info("admin account created", zap.String("email", adminEmail))
	case apperr.KindOf(err) == apperr.KindConflict:
		zap.L().Info("admin account already exists", zap.String("email", adminEmail))
	default:
		return err
	}

	for _, input := range seedCategories {
		_, err := catalog.CreateCategory(ctx, input)
		if err != nil && apperr.KindOf(err) != apperr.KindConflict {
			return err
		}
	}

	for _, sp := range seedProducts {
		category, err := stores.Categories.GetBySlug(ctx, sp.category)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				zap.L().Warn("seed category missing", zap.String("slug", sp.category))
				continue
			}
			return err
		}
		existing, err := stores.Products.List(ctx, store.ProductFilter{Search: sp.name})
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			continue
		}
		_, err = catalog.CreateProduct(ctx, service.ProductInput{
			Name:        sp.name,
			Description: sp.description,
			Price:       sp.price,
			MRP:         sp.mrp,
			Stock:       sp.stock,
			CategoryID:  category.ID,
			Featured:    sp.featured,
		})
		if err != nil {
			return err
		}
	}
	zap.L().Info("seed complete")
	return nil
}
