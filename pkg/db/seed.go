package db

import (
	"context"
	"fmt"

	"github.com/desrlabs/desr-backend/pkg/db/models"
	dbtypes "github.com/desrlabs/desr-backend/pkg/db/types"
	"github.com/desrlabs/desr-backend/pkg/enums"
	"github.com/desrlabs/desr-backend/pkg/logger"
	"gorm.io/gorm"
)

// Seed populates the default menu catalog and table range when the store
// is empty. Both seeds are run-once-on-empty: reruns against a populated
// store are no-ops.
func Seed(ctx context.Context, conn *gorm.DB, tableCount int, logg *logger.Logger) error {
	seeded, err := seedDefaultMenu(ctx, conn)
	if err != nil {
		return fmt.Errorf("seeding menu: %w", err)
	}
	if seeded && logg != nil {
		logg.Info(ctx, "default menu items seeded")
	}

	seeded, err = seedDefaultTables(ctx, conn, tableCount)
	if err != nil {
		return fmt.Errorf("seeding tables: %w", err)
	}
	if seeded && logg != nil {
		logg.Info(logg.WithField(ctx, "table_count", tableCount), "default tables seeded")
	}
	return nil
}

func seedDefaultMenu(ctx context.Context, conn *gorm.DB) (bool, error) {
	var count int64
	if err := conn.WithContext(ctx).Model(&models.MenuItem{}).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	items := defaultMenuItems()
	if err := conn.WithContext(ctx).Create(&items).Error; err != nil {
		return false, err
	}
	return true, nil
}

func seedDefaultTables(ctx context.Context, conn *gorm.DB, tableCount int) (bool, error) {
	if tableCount <= 0 {
		return false, nil
	}

	var count int64
	if err := conn.WithContext(ctx).Model(&models.Table{}).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	tables := make([]models.Table, 0, tableCount)
	for number := 1; number <= tableCount; number++ {
		tables = append(tables, models.Table{
			Number: number,
			Status: enums.TableStatusAvailable,
		})
	}
	if err := conn.WithContext(ctx).Create(&tables).Error; err != nil {
		return false, err
	}
	return true, nil
}

func defaultMenuItems() []models.MenuItem {
	smallDish := &dbtypes.ModelConfig{
		Position: &dbtypes.Vec3{X: 0, Y: -0.1, Z: -0.8},
		Scale:    &dbtypes.Vec3{X: 0.2, Y: 0.2, Z: 0.2},
	}
	wideDish := &dbtypes.ModelConfig{
		Position: &dbtypes.Vec3{X: 0, Y: -0.15, Z: -1.2},
		Scale:    &dbtypes.Vec3{X: 0.25, Y: 0.25, Z: 0.25},
	}
	largeDish := &dbtypes.ModelConfig{
		Position: &dbtypes.Vec3{X: 0, Y: -0.1, Z: -0.8},
		Scale:    &dbtypes.Vec3{X: 0.6, Y: 0.6, Z: 0.6},
	}

	return []models.MenuItem{
		{
			ID:            "menu_1",
			ModelKey:      "meal",
			NameEN:        "Miso Ramen",
			NameJA:        strptr("味噌ラーメン"),
			DescriptionEN: strptr("Rich miso-based broth with tender chashu pork"),
			DescriptionJA: strptr("濃厚な味噌ベースのスープとチャーシュー"),
			Price:         1000,
			ModelPath:     strptr("meal_draco.glb"),
			ModelConfig:   smallDish,
			Category:      strptr("ramen"),
			Available:     true,
		},
		{
			ID:            "menu_2",
			ModelKey:      "meal2",
			NameEN:        "Spicy Ramen",
			NameJA:        strptr("辛味噌ラーメン"),
			DescriptionEN: strptr("Fiery spicy miso with extra chili oil"),
			DescriptionJA: strptr("特製辛味噌と自家製ラー油"),
			Price:         1200,
			ModelPath:     strptr("meal2_draco.glb"),
			ModelConfig:   wideDish,
			Category:      strptr("ramen"),
			Available:     true,
		},
		{
			ID:            "menu_3",
			ModelKey:      "meal3",
			NameEN:        "Tonkotsu Ramen",
			NameJA:        strptr("豚骨ラーメン"),
			DescriptionEN: strptr("Creamy pork bone broth simmered for 12 hours"),
			DescriptionJA: strptr("12時間煮込んだ濃厚豚骨スープ"),
			Price:         950,
			ModelPath:     strptr("meal3_draco.glb"),
			ModelConfig:   largeDish,
			Category:      strptr("ramen"),
			Available:     true,
		},
		{
			ID:            "menu_4",
			ModelKey:      "meal4",
			NameEN:        "Shoyu Ramen",
			NameJA:        strptr("醤油ラーメン"),
			DescriptionEN: strptr("Classic soy sauce based ramen"),
			DescriptionJA: strptr("伝統的な醤油ベースのラーメン"),
			Price:         1100,
			ModelPath:     strptr("meal4_draco.glb"),
			ModelConfig:   largeDish,
			Category:      strptr("ramen"),
			Available:     true,
		},
		{
			ID:            "menu_5",
			ModelKey:      "meal5",
			NameEN:        "Special Ramen",
			NameJA:        strptr("特製ラーメン"),
			DescriptionEN: strptr("Chef special with all toppings"),
			DescriptionJA: strptr("シェフ特製全部乗せ"),
			Price:         1300,
			ModelPath:     strptr("meal5_draco.glb"),
			ModelConfig:   largeDish,
			Category:      strptr("ramen"),
			Available:     true,
		},
		{
			ID:            "menu_6",
			ModelKey:      "meal6",
			NameEN:        "Premium Ramen",
			NameJA:        strptr("プレミアムラーメン"),
			DescriptionEN: strptr("Premium wagyu beef ramen"),
			DescriptionJA: strptr("プレミアム和牛ラーメン"),
			Price:         1400,
			ModelPath:     strptr("meal6_draco.glb"),
			ModelConfig:   largeDish,
			Category:      strptr("ramen"),
			Available:     true,
		},
	}
}

func strptr(s string) *string {
	return &s
}
