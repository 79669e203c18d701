package domain

// SampleRestaurants is the fixed seed set for POST /restaurants/sample.
func SampleRestaurants() []Restaurant {
	return []Restaurant{
		{ID: "rest001", Name: "Pizza Palace", BannerImage: "https://picsum.photos/200/300.jpg"},
		{ID: "rest002", Name: "Burger Bonanza", BannerImage: "https://picsum.photos/200/400.jpg"},
		{ID: "rest003", Name: "Sushi Supreme", BannerImage: "https://picsum.photos/200/200.jpg"},
	}
}

// SampleMenu returns four items per restaurant, each tagged with the restaurant's business key.
func SampleMenu(restaurants []Restaurant) []MenuItem {
	items := make([]MenuItem, 0, len(restaurants)*4)
	for _, rest := range restaurants {
		items = append(items,
			MenuItem{
				RestaurantID: rest.ID,
				Name:         "Margherita Pizza",
				Description:  "Classic tomato and mozzarella pizza",
				Price:        10.99,
				Category:     "Pizza",
				Image:        "https://picsum.photos/200/300.jpg",
			},
			MenuItem{
				RestaurantID: rest.ID,
				Name:         "Caesar Salad",
				Description:  "Romaine lettuce with Caesar dressing and croutons",
				Price:        7.99,
				Category:     "Salad",
				Image:        "https://picsum.photos/200/200.jpg",
			},
			MenuItem{
				RestaurantID: rest.ID,
				Name:         "Spaghetti Bolognese",
				Description:  "Spaghetti with meat sauce",
				Price:        13.99,
				Category:     "Pasta",
				Image:        "https://picsum.photos/200/400.jpg",
			},
			MenuItem{
				RestaurantID: rest.ID,
				Name:         "Chocolate Cake",
				Description:  "Rich chocolate layer cake",
				Price:        6.99,
				Category:     "Dessert",
				Image:        "https://picsum.photos/200/600.jpg",
			},
		)
	}
	return items
}
