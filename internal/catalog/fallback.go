package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/Ahmedmamdouh007/lala-store/internal/domain"
)

// Bundled demo catalog, the last resort when the backend yields nothing.
// Mirrors the backend's seed data so an offline storefront still shows the
// same products a fresh install would.

func p(id int64, name, desc string, cents int64, image string, catID int64, catName string, gender domain.Gender, stock int) domain.Product {
	return domain.Product{
		ID:            id,
		Name:          name,
		Description:   desc,
		Price:         decimal.New(cents, -2),
		ImageURL:      image,
		CategoryID:    catID,
		CategoryName:  catName,
		Gender:        gender,
		StockQuantity: stock,
	}
}

var fallbackProducts = []domain.Product{
	p(1, "Classic White T-Shirt", "Comfortable cotton t-shirt for everyday wear", 1999, "https://via.placeholder.com/300x400?text=White+T-Shirt", 1, "T-Shirts", domain.GenderMen, 50),
	p(2, "Blue Denim Jeans", "Classic fit blue jeans", 4999, "https://via.placeholder.com/300x400?text=Blue+Jeans", 2, "Jeans", domain.GenderMen, 30),
	p(3, "Summer Dress", "Light and airy summer dress", 3999, "https://via.placeholder.com/300x400?text=Summer+Dress", 3, "Dresses", domain.GenderWomen, 25),
	p(4, "Leather Jacket", "Stylish black leather jacket", 8999, "https://via.placeholder.com/300x400?text=Leather+Jacket", 4, "Jackets", domain.GenderMen, 15),
	p(5, "Floral Print Dress", "Beautiful floral print dress", 4599, "https://via.placeholder.com/300x400?text=Floral+Dress", 3, "Dresses", domain.GenderWomen, 20),
	p(6, "Sneakers", "Comfortable running sneakers", 5999, "https://via.placeholder.com/300x400?text=Sneakers", 5, "Shoes", domain.GenderUnisex, 40),
	p(7, "Casual Shirt", "Button-down casual shirt", 3499, "https://via.placeholder.com/300x400?text=Casual+Shirt", 1, "T-Shirts", domain.GenderMen, 35),
	p(8, "Maxi Dress", "Elegant long maxi dress", 5599, "https://via.placeholder.com/300x400?text=Maxi+Dress", 3, "Dresses", domain.GenderWomen, 18),
	p(9, "Diadora Geometric Print T-Shirt", "Men's white short-sleeve crew-neck t-shirt with a bold abstract geometric and serpentine graphic in teal, orange and black. Regular fit.", 2999, "/images/men/diadora-geometric-tshirt.png", 1, "T-Shirts", domain.GenderMen, 40),
	p(10, "Mercedes-AMG Petronas F1 T-Shirt", "White crew-neck t-shirt with official Mercedes-AMG Petronas Formula One Team branding: three-pointed star and AMG PETRONAS FORMULA ONE TEAM text.", 3499, "/images/men/mercedes-amg-petronas-tshirt.png", 1, "T-Shirts", domain.GenderMen, 35),
	p(11, "Remember Who You Wanted To Be T-Shirt", "Black short-sleeve t-shirt with motivational slogan in stacked grey and white text: REMEMBER WHO YOU WANTED TO BE. Soft fabric, round neck.", 2499, "/images/men/remember-who-you-wanted-tshirt.png", 1, "T-Shirts", domain.GenderMen, 50),
	p(12, "Abstract Grayscale Button-Down Shirt", "Men's short-sleeve button-down with striking abstract wavy diagonal stripes in black, grey and white. Spread collar, chest pocket, relaxed fit.", 4999, "/images/men/abstract-grayscale-shirt.png", 1, "T-Shirts", domain.GenderMen, 25),
	p(13, "Palm Tree Resort Shirt", "Dark grey Hawaiian-style short-sleeve button-down with white vertical panel and black palm tree and bird silhouettes. Relaxed fit, ideal for summer.", 4499, "/images/men/palm-tree-resort-shirt.png", 1, "T-Shirts", domain.GenderMen, 30),
}

var fallbackCategories = []domain.Category{
	{ID: 1, Name: "T-Shirts", Description: "Comfortable and stylish t-shirts"},
	{ID: 2, Name: "Jeans", Description: "Classic denim jeans"},
	{ID: 3, Name: "Dresses", Description: "Elegant dresses for every occasion"},
	{ID: 4, Name: "Jackets", Description: "Warm and fashionable jackets"},
	{ID: 5, Name: "Shoes", Description: "Comfortable footwear"},
}

// FallbackProducts returns a copy of the bundled demo set.
func FallbackProducts() []domain.Product {
	out := make([]domain.Product, len(fallbackProducts))
	copy(out, fallbackProducts)
	return out
}

// FallbackCategories returns a copy of the bundled category set.
func FallbackCategories() []domain.Category {
	out := make([]domain.Category, len(fallbackCategories))
	copy(out, fallbackCategories)
	return out
}
