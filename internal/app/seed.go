package app

import "easybooking/internal/domain"

var seedListings = []domain.Listing{
	{Title: "Luxury Hotel Room", Description: "Premium room with city view", Location: "Almaty", PricePerNight: 70000, Stars: 5, Rooms: 40, Amenities: "WiFi, Breakfast, Spa, Gym", ContactPhone: "+7 700 111 22 33"},
	{Title: "Cozy Apartment", Description: "2-bedroom apartment near center", Location: "Astana", PricePerNight: 55000, Stars: 4, Rooms: 12, Amenities: "WiFi, Kitchen, Parking", ContactPhone: "+7 701 222 33 44"},
	{Title: "Beach Resort", Description: "All-inclusive resort near beach", Location: "Aktau", PricePerNight: 120000, Stars: 5, Rooms: 90, Amenities: "Pool, Beach, WiFi, All-inclusive", ContactPhone: "+7 702 333 44 55"},
	{Title: "Business Hotel", Description: "Comfort stay for business trips", Location: "Astana", PricePerNight: 65000, Stars: 4, Rooms: 60, Amenities: "WiFi, Breakfast, Conference hall", ContactPhone: "+7 703 444 55 66"},
	{Title: "Family Apartment", Description: "Spacious apartment for families", Location: "Almaty", PricePerNight: 60000, Stars: 4, Rooms: 18, Amenities: "WiFi, Kitchen, Washer", ContactPhone: "+7 704 555 66 77"},

	{Title: "Mountain Lodge", Description: "Quiet lodge near mountains", Location: "Almaty", PricePerNight: 80000, Stars: 5, Rooms: 25, Amenities: "WiFi, Sauna, Fireplace", ContactPhone: "+7 705 111 11 11"},
	{Title: "City Hostel", Description: "Budget hostel in downtown", Location: "Astana", PricePerNight: 18000, Stars: 2, Rooms: 30, Amenities: "WiFi, Shared kitchen", ContactPhone: "+7 705 222 22 22"},
	{Title: "Lake House", Description: "House near lake with terrace", Location: "Burabay", PricePerNight: 90000, Stars: 5, Rooms: 10, Amenities: "WiFi, BBQ, Lake view", ContactPhone: "+7 705 333 33 33"},
	{Title: "Boutique Hotel", Description: "Stylish boutique rooms", Location: "Shymkent", PricePerNight: 50000, Stars: 4, Rooms: 22, Amenities: "WiFi, Breakfast, Cafe", ContactPhone: "+7 705 444 44 44"},
	{Title: "Airport Inn", Description: "Close to airport, quick stay", Location: "Almaty", PricePerNight: 35000, Stars: 3, Rooms: 45, Amenities: "WiFi, Shuttle, Breakfast", ContactPhone: "+7 705 555 55 55"},

	{Title: "Central Suites", Description: "Suites in city center", Location: "Astana", PricePerNight: 75000, Stars: 5, Rooms: 35, Amenities: "WiFi, Gym, Parking", ContactPhone: "+7 706 111 22 33"},
	{Title: "Old Town Hotel", Description: "Classic hotel near old town", Location: "Turkistan", PricePerNight: 42000, Stars: 3, Rooms: 28, Amenities: "WiFi, Breakfast", ContactPhone: "+7 706 222 33 44"},
	{Title: "Riverside Apartment", Description: "Apartment near river walk", Location: "Pavlodar", PricePerNight: 38000, Stars: 3, Rooms: 14, Amenities: "WiFi, Kitchen", ContactPhone: "+7 706 333 44 55"},
	{Title: "Steppe Hotel", Description: "Simple comfortable rooms", Location: "Karaganda", PricePerNight: 32000, Stars: 3, Rooms: 50, Amenities: "WiFi, Parking", ContactPhone: "+7 706 444 55 66"},
	{Title: "Green Park Resort", Description: "Nature resort with park", Location: "Kokshetau", PricePerNight: 85000, Stars: 5, Rooms: 55, Amenities: "Pool, WiFi, Spa", ContactPhone: "+7 706 555 66 77"},

	{Title: "Budget Stay", Description: "Good for short trips", Location: "Aktobe", PricePerNight: 25000, Stars: 2, Rooms: 35, Amenities: "WiFi", ContactPhone: "+7 707 111 00 11"},
	{Title: "Premium Suites", Description: "Premium suites with services", Location: "Almaty", PricePerNight: 140000, Stars: 5, Rooms: 20, Amenities: "WiFi, Spa, Butler", ContactPhone: "+7 707 222 00 22"},
	{Title: "Family Resort", Description: "Resort for families & kids", Location: "Aktau", PricePerNight: 110000, Stars: 4, Rooms: 75, Amenities: "Kids zone, Pool, WiFi", ContactPhone: "+7 707 333 00 33"},
	{Title: "Student Rooms", Description: "Affordable rooms near uni", Location: "Almaty", PricePerNight: 20000, Stars: 2, Rooms: 80, Amenities: "WiFi, Shared kitchen", ContactPhone: "+7 707 444 00 44"},
	{Title: "Conference Hotel", Description: "Hotel with conference center", Location: "Astana", PricePerNight: 95000, Stars: 5, Rooms: 120, Amenities: "WiFi, Conference halls, Breakfast", ContactPhone: "+7 707 555 00 55"},
}

// SeedListings returns a copy of the listings inserted into an empty store.
func SeedListings() []domain.Listing {
	out := make([]domain.Listing, len(seedListings))
	copy(out, seedListings)
	return out
}
