package seeders

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/bazaar/app/models"
)

func init() {
	Register("products", SeedProducts)
}

// SeedProducts inserts a small starter catalogue. Existing SKUs are
// left untouched so the seeder is safe to re-run.
func SeedProducts(db *gorm.DB) error {
	products := []models.Product{
		{Name: "Mechanical Keyboard", Description: "87-key hot-swappable board", Price: 89.99, Stock: 40, SKU: "KB-87-BLK"},
		{Name: "Wireless Mouse", Description: "2.4 GHz, 6 buttons", Price: 24.50, Stock: 120, SKU: "MS-24-GRY"},
		{Name: "USB-C Hub", Description: "7-in-1 with HDMI and PD", Price: 39.00, Stock: 75, SKU: "HB-7C-SLV"},
		{Name: "27\" Monitor", Description: "1440p IPS, 144 Hz", Price: 279.00, Stock: 15, SKU: "MN-27-144"},
		{Name: "Laptop Stand", Description: "Aluminium, adjustable height", Price: 31.75, Stock: 90, SKU: "LS-AL-ADJ"},
	}
	for _, p := range products {
		var existing models.Product
		err := db.Where("sku = ?", p.SKU).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		if err := db.Create(&p).Error; err != nil {
			return err
		}
	}
	return nil
}
