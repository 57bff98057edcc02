package domain

// Built-in sample records written on first run when the store is empty.

var SeedProducts = []Product{
	{ID: 1, Name: "iPhone 13", Category: "smartphone", Price: 549, Condition: "Grade A", Storage: "128GB", ImageURL: "https://images.belmobile.be/products/iphone-13.jpg", InStock: true},
	{ID: 2, Name: "iPhone 12", Category: "smartphone", Price: 419, Condition: "Grade A", Storage: "64GB", ImageURL: "https://images.belmobile.be/products/iphone-12.jpg", InStock: true},
	{ID: 3, Name: "Samsung Galaxy S22", Category: "smartphone", Price: 479, Condition: "Grade B", Storage: "256GB", ImageURL: "https://images.belmobile.be/products/galaxy-s22.jpg", InStock: true},
	{ID: 4, Name: "iPad Air (4th gen)", Category: "tablet", Price: 389, Condition: "Grade A", Storage: "64GB", ImageURL: "https://images.belmobile.be/products/ipad-air-4.jpg", InStock: false},
	{ID: 5, Name: "Google Pixel 7", Category: "smartphone", Price: 399, Condition: "Grade A", Storage: "128GB", ImageURL: "https://images.belmobile.be/products/pixel-7.jpg", InStock: true},
}

var SeedServices = []Service{
	{ID: 1, Name: "Screen replacement", Description: "Cracked or unresponsive display replaced with an original-quality panel.", PriceRange: "€49 - €329", Duration: "45 min", Icon: "screen"},
	{ID: 2, Name: "Battery replacement", Description: "Worn battery swapped for a new cell with a 12-month warranty.", PriceRange: "€39 - €99", Duration: "30 min", Icon: "battery"},
	{ID: 3, Name: "Water damage treatment", Description: "Ultrasonic cleaning and board-level inspection after liquid contact.", PriceRange: "€59 - €149", Duration: "24 h", Icon: "water"},
	{ID: 4, Name: "Charging port repair", Description: "Loose or dead charging connector re-soldered or replaced.", PriceRange: "€45 - €89", Duration: "1 h", Icon: "charging"},
	{ID: 5, Name: "Data recovery", Description: "Photos and contacts recovered from phones that no longer boot.", PriceRange: "on quote", Duration: "48 h", Icon: "data"},
}

var SeedShops = []Shop{
	{ID: 1, Name: "Belmobile Brussels Center", Address: "Rue Neuve 87", City: "Brussels", Phone: "+32 2 555 01 10", Hours: "Mon-Sat 10:00-18:30", MapsURL: "https://maps.google.com/?q=Rue+Neuve+87+Brussels", ImageURL: "https://images.belmobile.be/shops/brussels-center.jpg"},
	{ID: 2, Name: "Belmobile Antwerp", Address: "Meir 124", City: "Antwerp", Phone: "+32 3 555 02 20", Hours: "Mon-Sat 10:00-18:00", MapsURL: "https://maps.google.com/?q=Meir+124+Antwerp", ImageURL: "https://images.belmobile.be/shops/antwerp.jpg"},
	{ID: 3, Name: "Belmobile Ghent", Address: "Veldstraat 33", City: "Ghent", Phone: "+32 9 555 03 30", Hours: "Tue-Sat 10:00-18:00", MapsURL: "https://maps.google.com/?q=Veldstraat+33+Ghent", ImageURL: "https://images.belmobile.be/shops/ghent.jpg"},
}

var SeedBlogPosts = []BlogPost{
	{ID: 1, Title: "Five signs your phone battery needs replacing", Excerpt: "Sudden shutdowns and bulging cases are not quirks, they are warnings.", Content: "A lithium battery is a consumable. After roughly 500 charge cycles capacity drops below 80% and the phone starts compensating...", Author: "Belmobile Team", ImageURL: "https://images.belmobile.be/blog/battery-signs.jpg", Date: "2024-11-04"},
	{ID: 2, Title: "Refurbished vs new: what you actually give up", Excerpt: "Spoiler: mostly the box.", Content: "Every refurbished device we sell passes a 40-point inspection covering screen, battery health, cameras, radios and housing...", Author: "Belmobile Team", ImageURL: "https://images.belmobile.be/blog/refurb-vs-new.jpg", Date: "2024-12-12"},
	{ID: 3, Title: "What your cracked screen is worth in trade-in", Excerpt: "Broken glass lowers the price less than you think.", Content: "Buyback pricing is driven by the board, the battery and the display, in that order. A cracked front glass over an intact panel...", Author: "Belmobile Team", ImageURL: "https://images.belmobile.be/blog/cracked-tradein.jpg", Date: "2025-01-20"},
}

var SeedReservations = []Reservation{
	{ID: 1, Name: "Maya Peeters", Email: "maya.peeters@example.com", Phone: "+32 470 11 22 33", Device: "iPhone 12", Service: "Screen replacement", Shop: "Belmobile Brussels Center", TimeSlot: "10:30", Date: "2025-02-14", Status: ReservationPending},
	{ID: 2, Name: "Jonas Claes", Email: "jonas.claes@example.com", Phone: "+32 471 44 55 66", Device: "Galaxy S21", Service: "Battery replacement", Shop: "Belmobile Antwerp", TimeSlot: "14:00", Date: "2025-02-15", Status: ReservationApproved},
}

var SeedQuotes = []Quote{
	{ID: 1, Name: "Lotte Maes", Email: "lotte.maes@example.com", Phone: "+32 472 77 88 99", Device: "iPhone 13 Pro 256GB", Condition: "Minor scratches, battery 86%", Date: "2025-02-10", Status: QuoteNew},
	{ID: 2, Name: "Arthur Dubois", Email: "arthur.dubois@example.com", Phone: "+32 473 12 34 56", Device: "Pixel 6", Condition: "Cracked back glass, otherwise fine", Date: "2025-02-11", Status: QuoteProcessing},
}

var SeedFranchiseApplications = []FranchiseApplication{
	{ID: 1, Name: "Sofie Janssens", Email: "sofie.janssens@example.com", Phone: "+32 474 98 76 54", City: "Leuven", Budget: "€50k - €100k", Message: "Former telecom shop owner looking to convert an existing location.", Date: "2025-01-28", Status: FranchiseNew},
}
